// Package ioutils provides file system utilities for the icon fetcher.
//
// This package contains:
//   - Filename sanitization with Unicode support and an ASCII fallback
//   - A collision-safe streaming Writer for downloaded icons
//   - File copying, atomic replacement and directory creation helpers
//
// # Filename Sanitization
//
// SanitizeUnicode keeps letters of any script while stripping path
// separators, control characters and everything else unsafe in a file
// name. ASCIIFallback is the second line of defense for filesystems
// that refuse Unicode names:
//
//	base := ioutils.SanitizeUnicode("Мой сайт")  // "Мой_сайт"
//	safe := ioutils.ASCIIFallback("Мой сайт")    // "file"
//
// Both functions are pure and total: any input, including the empty
// string, produces a usable non-empty name.
//
// # Collision-Safe Writing
//
// The Writer never overwrites an existing file. When "Example.ico" is
// taken it writes "Example_1.ico", then "Example_2.ico", and so on:
//
//	w := ioutils.NewWriter("/home/New_tab/icons")
//	path, err := w.Write(ctx, "Example", ".ico", resp.Body)
package ioutils
