package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	ioutils "github.com/AnDsergey13/New-tab/internal/io"
	"github.com/AnDsergey13/New-tab/internal/model"
)

// ErrNotArray is returned by Load when the top level of the bookmarks
// file is not a JSON array.
var ErrNotArray = errors.New("bookmarks file must be a JSON array of objects")

// Load reads the bookmarks file at path. A missing file and a
// malformed top-level shape are both fatal conditions for the run.
func Load(path string) ([]model.Bookmark, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read bookmarks: %w", err)
	}

	// The first token must open an array. Checking it directly also
	// catches documents like a bare null, which would otherwise
	// unmarshal into a nil slice without complaint.
	tok, err := json.NewDecoder(bytes.NewReader(data)).Token()
	if err != nil {
		return nil, fmt.Errorf("parse bookmarks: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '[' {
		return nil, ErrNotArray
	}

	var records []model.Bookmark
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse bookmarks: %w", err)
	}
	return records, nil
}

// Backup copies the bookmarks file aside to <path>.bak before any
// mutation, returning the backup path.
func Backup(ctx context.Context, path string) (string, error) {
	bak := path + ".bak"
	if err := ioutils.CopyFile(ctx, path, bak); err != nil {
		return "", fmt.Errorf("backup bookmarks: %w", err)
	}
	log.Debug().Str("backup", bak).Msg("backup created")
	return bak, nil
}

// Save serializes records and atomically replaces the file at path.
//
// Non-ASCII text is written verbatim (no \uXXXX escaping) so Cyrillic
// and other non-Latin titles survive a round trip byte-for-byte. The
// write goes to a temporary file first; the original is never left
// truncated if serialization or the write fails partway.
func Save(ctx context.Context, path string, records []model.Bookmark) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("encode bookmarks: %w", err)
	}

	if err := ioutils.ReplaceFile(ctx, path, buf.Bytes()); err != nil {
		return fmt.Errorf("save bookmarks: %w", err)
	}
	return nil
}
