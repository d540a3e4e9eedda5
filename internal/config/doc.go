// Package config provides configuration for the icon fetcher.
//
// Settings can come from a YAML file, with command-line flags layered
// on top by the CLI. A missing config file silently falls back to
// defaults:
//
//	settings, err := config.Load("fetch-icons.yml")
//	// 8 workers, 8s per-request timeout, backups on
//
// Example config file:
//
//	output_dir: /home/New_tab/icons
//	workers: 4
//	timeout_seconds: 15
//	relative_paths: true
package config
