package ioutils

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// CopyFile copies a file from src to dst, creating or truncating dst.
//
// Used for the pre-run backup of the bookmarks file. The copy is plain
// byte-for-byte; metadata is not preserved.
//
// Example:
//
//	err := CopyFile(ctx, "bookmarks.json", "bookmarks.json.bak")
func CopyFile(ctx context.Context, src, dst string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	destFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer destFile.Close()

	_, err = io.Copy(destFile, sourceFile)
	return err
}

// ReplaceFile atomically replaces the file at path with data.
//
// The data is written to a temporary file in the same directory and
// renamed over the target, so the original is never left truncated or
// absent if the write fails partway. The temporary file is removed on
// failure.
//
// Example:
//
//	err := ReplaceFile(ctx, "bookmarks.json", serialized)
func ReplaceFile(ctx context.Context, path string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

// EnsureDir creates a directory and all parent directories if they
// don't exist. Directories are created with mode 0755.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}

// RelativeTo expresses target relative to the directory containing
// anchorFile. When target is not under that directory (a ../ form, a
// different volume) the absolute target path is returned instead, so
// stored paths never climb out of the bookmarks file's tree.
func RelativeTo(anchorFile, target string) string {
	rel, err := filepath.Rel(filepath.Dir(anchorFile), target)
	if err != nil {
		return target
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return target
	}
	return rel
}
