package ioutils

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// writeChunkSize is the buffer size used when streaming icon bytes to disk.
const writeChunkSize = 8192

// Writer saves byte streams under a directory, picking file names that
// do not collide with existing entries.
//
// Name selection appends a numeric suffix (_1, _2, ...) to the base name
// until a free path is found. The existence check and the subsequent
// create are not atomic with respect to other processes or goroutines
// targeting the same base name; two tasks deriving identical names can
// in rare cases race past the check. See the pipeline docs for why this
// is accepted.
//
// If the filesystem rejects the chosen name (Unicode names on
// restrictive filesystems), the write is retried exactly once under
// ASCIIFallback(baseName).
type Writer struct {
	dir string
}

// NewWriter creates a Writer targeting dir. The directory is not
// created here; call EnsureDir first.
func NewWriter(dir string) *Writer {
	return &Writer{dir: dir}
}

// Write streams src to a new file named baseName+ext under the writer's
// directory and returns the absolute path of the file it created.
//
// On any OS-level write failure the partially written file is removed,
// the name is recomputed with ASCIIFallback and the write is retried
// once. A second failure is returned to the caller; no partial file is
// left behind at either path.
func (w *Writer) Write(ctx context.Context, baseName, ext string, src io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path := w.claimPath(baseName, ext)
	err := w.writeFile(path, src)
	if err == nil {
		return absPath(path), nil
	}

	fallbackPath := w.claimPath(ASCIIFallback(baseName), ext)
	if retryErr := w.writeFile(fallbackPath, src); retryErr != nil {
		return "", fmt.Errorf("write %s: %w", filepath.Base(path), retryErr)
	}
	return absPath(fallbackPath), nil
}

// claimPath finds the first free path for baseName+ext, appending _N
// suffixes while an entry already occupies the candidate.
func (w *Writer) claimPath(baseName, ext string) string {
	candidate := filepath.Join(w.dir, baseName+ext)
	for n := 1; pathExists(candidate); n++ {
		candidate = filepath.Join(w.dir, fmt.Sprintf("%s_%d%s", baseName, n, ext))
	}
	return candidate
}

// writeFile streams src to path in fixed-size chunks. On failure the
// file is closed and removed before the error is returned.
func (w *Writer) writeFile(path string, src io.Reader) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}

	buf := make([]byte, writeChunkSize)
	if _, err := io.CopyBuffer(file, src, buf); err != nil {
		file.Close()
		os.Remove(path)
		return err
	}

	if err := file.Close(); err != nil {
		os.Remove(path)
		return err
	}
	return nil
}

// pathExists reports whether an entry is confirmed to occupy path.
// Stat errors other than "not exist" (permission, a file where a
// directory was expected) count as free: claiming such a path keeps
// the suffix search finite, and the create that follows surfaces the
// real error.
func pathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func absPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}
