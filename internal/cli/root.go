package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/AnDsergey13/New-tab/internal/config"
	"github.com/AnDsergey13/New-tab/internal/pipeline"
	"github.com/AnDsergey13/New-tab/internal/tui"
)

// Options holds the command-line flags.
type Options struct {
	Input      string
	OutDir     string
	ConfigPath string
	Workers    int
	Timeout    int
	NoBackup   bool
	Relative   bool
	NoProgress bool
	Verbose    bool
}

// NewRootCommand creates the fetch-icons command.
func NewRootCommand() *cobra.Command {
	opts := &Options{}

	cmd := &cobra.Command{
		Use:   "fetch-icons",
		Short: "Download bookmark icons and replace icon URLs with local paths",
		Long: `fetch-icons reads a JSON bookmarks file (array of objects with title,
url and icon fields), downloads each icon into a local directory, and
rewrites the icon fields to point at the downloaded files.

Bookmarks whose icon cannot be fetched keep their original URL. The
input file is backed up to <input>.bak and replaced atomically.`,
		Example: `  fetch-icons --input bookmarks.json --outdir /home/New_tab/icons/
  fetch-icons -i bookmarks.json -o icons/ --relative --workers 4`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(opts)
			settings, err := loadSettings(cmd, opts)
			if err != nil {
				return err
			}
			return run(cmd.Context(), settings, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Input, "input", "i", "", "path to the bookmarks JSON file")
	cmd.Flags().StringVarP(&opts.OutDir, "outdir", "o", "", "directory to save icons into")
	cmd.Flags().StringVar(&opts.ConfigPath, "config", "fetch-icons.yml", "path to YAML config file")
	cmd.Flags().IntVarP(&opts.Workers, "workers", "w", 0, "concurrent downloads (default 8)")
	cmd.Flags().IntVar(&opts.Timeout, "timeout", 0, "HTTP timeout in seconds per request (default 8)")
	cmd.Flags().BoolVar(&opts.NoBackup, "no-backup", false, "do not create a .bak backup")
	cmd.Flags().BoolVar(&opts.Relative, "relative", false, "store paths relative to the bookmarks file")
	cmd.Flags().BoolVar(&opts.NoProgress, "no-progress", false, "disable the progress bar")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")

	cmd.MarkFlagRequired("input")
	cmd.MarkFlagRequired("outdir")

	return cmd
}

func setupLogging(opts *Options) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	switch {
	case opts.Verbose:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case !opts.NoProgress:
		// Keep stderr quiet while the progress bar owns the screen.
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	}
}

// loadSettings layers flag values over the config file over defaults.
func loadSettings(cmd *cobra.Command, opts *Options) (*config.Settings, error) {
	settings, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	settings.OutputDir = opts.OutDir
	if cmd.Flags().Changed("workers") {
		settings.Workers = opts.Workers
	}
	if cmd.Flags().Changed("timeout") {
		settings.TimeoutSeconds = opts.Timeout
	}
	if opts.NoBackup {
		settings.Backup = false
	}
	if opts.Relative {
		settings.RelativePaths = true
	}

	if settings.Workers < 1 {
		return nil, fmt.Errorf("invalid workers: %d (must be >= 1)", settings.Workers)
	}
	if settings.TimeoutSeconds < 1 {
		return nil, fmt.Errorf("invalid timeout: %d (must be >= 1)", settings.TimeoutSeconds)
	}
	return settings, nil
}

func run(ctx context.Context, settings *config.Settings, opts *Options) error {
	if opts.NoProgress {
		return runPlain(ctx, settings, opts)
	}
	return runWithProgress(ctx, settings, opts)
}

// runPlain prints leveled progress lines to stdout, no screen control.
func runPlain(ctx context.Context, settings *config.Settings, opts *Options) error {
	coordinator := pipeline.NewCoordinator(settings, opts.Input, func(event pipeline.ProgressEvent) {
		if event.Level == pipeline.LevelVerbose && !opts.Verbose {
			return
		}
		prefix := "[INFO] "
		switch event.Level {
		case pipeline.LevelWarning:
			prefix = "[WARN] "
		case pipeline.LevelError:
			prefix = "[ERROR] "
		case pipeline.LevelSuccess:
			prefix = "[DONE] "
		}
		fmt.Println(prefix + event.Message)
	})

	_, err := coordinator.Run(ctx)
	return err
}

// runWithProgress drives the run under the Bubble Tea progress bar.
func runWithProgress(ctx context.Context, settings *config.Settings, opts *Options) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	program := tea.NewProgram(tui.NewModel(cancel))

	coordinator := pipeline.NewCoordinator(settings, opts.Input, func(event pipeline.ProgressEvent) {
		program.Send(tui.EventMsg{Event: event})
	})

	done := make(chan tui.DoneMsg, 1)
	go func() {
		summary, err := coordinator.Run(ctx)
		msg := tui.DoneMsg{Summary: summary, Err: err}
		done <- msg
		program.Send(msg)
	}()

	if _, err := program.Run(); err != nil {
		cancel()
		<-done
		return fmt.Errorf("progress display: %w", err)
	}
	cancel()

	result := <-done
	if result.Err != nil {
		return result.Err
	}
	if result.Summary != nil {
		fmt.Printf("Success: %d, Fail: %d. Updated %s\n",
			result.Summary.Succeeded, result.Summary.Failed, opts.Input)
	}
	return nil
}
