package fetch

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	httpclient "github.com/AnDsergey13/New-tab/internal/http"
	ioutils "github.com/AnDsergey13/New-tab/internal/io"
	"github.com/AnDsergey13/New-tab/internal/model"
)

// Fetcher is the network capability a Task depends on. It is satisfied
// by httpclient.Client and by test fakes.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*httpclient.Response, error)
}

// Task downloads one bookmark's icon and persists it through a
// collision-safe writer. Tasks are stateless and safe for concurrent
// use; the pipeline runs many of them over a shared Fetcher and Writer.
type Task struct {
	fetcher Fetcher
	writer  *ioutils.Writer
}

// NewTask creates a Task using fetcher for network access and writer
// for persistence.
func NewTask(fetcher Fetcher, writer *ioutils.Writer) *Task {
	return &Task{fetcher: fetcher, writer: writer}
}

// Run processes the bookmark at index and returns its tagged outcome.
//
// Bookmarks without an icon URL fail immediately as FailureNoIconURL
// and never touch the network. Transport errors, non-200 statuses and
// write failures are each classified on the outcome; Run itself never
// returns an error and never mutates the bookmark. A panic escaping
// the fetch path is converted to FailureTransport so a single bad task
// cannot abort the run.
func (t *Task) Run(ctx context.Context, index int, bm model.Bookmark) (outcome model.Outcome) {
	defer func() {
		if r := recover(); r != nil {
			outcome = model.Failure(index, model.FailureTransport, fmt.Errorf("task panic: %v", r))
		}
	}()

	iconURL := bm.IconURL()
	if iconURL == "" {
		return model.Failure(index, model.FailureNoIconURL, nil)
	}

	resp, err := t.fetcher.Fetch(ctx, iconURL)
	if err != nil {
		return model.Failure(index, model.FailureTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return model.HTTPFailure(index, resp.StatusCode)
	}

	ext := ChooseExtension(resp.Header.Get("Content-Type"), iconURL)
	path, err := t.writer.Write(ctx, BaseName(bm), ext, resp.Body)
	if err != nil {
		return model.Failure(index, model.FailureWrite, err)
	}
	return model.Success(index, path)
}

// BaseName derives the sanitized file base name for a bookmark: the
// trimmed title, else the hostname of the bookmark's page URL, else
// "bookmark".
func BaseName(bm model.Bookmark) string {
	base := strings.TrimSpace(bm.Title)
	if base == "" {
		base = hostnameOf(bm.URL)
	}
	if base == "" {
		base = "bookmark"
	}
	return ioutils.SanitizeUnicode(base)
}

func hostnameOf(rawURL string) string {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return ""
	}
	return parsed.Hostname()
}
