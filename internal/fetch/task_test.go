package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpclient "github.com/AnDsergey13/New-tab/internal/http"
	ioutils "github.com/AnDsergey13/New-tab/internal/io"
	"github.com/AnDsergey13/New-tab/internal/model"
)

type panickyFetcher struct{}

func (panickyFetcher) Fetch(context.Context, string) (*httpclient.Response, error) {
	panic("boom")
}

type countingFetcher struct {
	calls int
}

func (f *countingFetcher) Fetch(context.Context, string) (*httpclient.Response, error) {
	f.calls++
	panic("must not be reached")
}

func newTestTask(t *testing.T, fetcher Fetcher) (*Task, string) {
	t.Helper()
	dir := t.TempDir()
	return NewTask(fetcher, ioutils.NewWriter(dir)), dir
}

func TestTask_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, httpclient.UserAgent, r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "image/x-icon")
		w.Write([]byte("ICONDATA"))
	}))
	defer srv.Close()

	task, dir := newTestTask(t, httpclient.NewClient(2*time.Second))
	bm := model.Bookmark{Title: "Example", URL: "http://example.com", Icon: srv.URL + "/favicon.ico"}

	outcome := task.Run(context.Background(), 3, bm)

	require.True(t, outcome.OK(), "outcome: %s", outcome)
	assert.Equal(t, 3, outcome.Index)
	assert.Equal(t, "Example.ico", filepath.Base(outcome.Path))
	assert.Equal(t, dir, filepath.Dir(outcome.Path))

	got, err := os.ReadFile(outcome.Path)
	require.NoError(t, err)
	assert.Equal(t, "ICONDATA", string(got))
}

func TestTask_HTTPStatusFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	task, dir := newTestTask(t, httpclient.NewClient(2*time.Second))
	bm := model.Bookmark{Title: "Gone", Icon: srv.URL + "/missing.png"}

	outcome := task.Run(context.Background(), 0, bm)

	assert.Equal(t, model.FailureHTTPStatus, outcome.Kind)
	assert.Equal(t, 404, outcome.StatusCode)
	assert.Equal(t, "http_404", outcome.String())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "no file should be created on a non-200 response")
}

func TestTask_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	task, _ := newTestTask(t, httpclient.NewClient(time.Second))
	bm := model.Bookmark{Title: "Down", Icon: srv.URL + "/icon.png"}

	outcome := task.Run(context.Background(), 0, bm)

	assert.Equal(t, model.FailureTransport, outcome.Kind)
	assert.Error(t, outcome.Err)
}

func TestTask_EmptyIconSkipsNetwork(t *testing.T) {
	fetcher := &countingFetcher{}
	task, _ := newTestTask(t, fetcher)

	for _, icon := range []string{"", "   ", "\t\n"} {
		outcome := task.Run(context.Background(), 0, model.Bookmark{Title: "t", Icon: icon})
		assert.Equal(t, model.FailureNoIconURL, outcome.Kind)
	}
	assert.Zero(t, fetcher.calls)
}

func TestTask_PanicBecomesTransportFailure(t *testing.T) {
	task, _ := newTestTask(t, panickyFetcher{})

	outcome := task.Run(context.Background(), 7, model.Bookmark{Title: "t", Icon: "http://x/i.png"})

	assert.Equal(t, model.FailureTransport, outcome.Kind)
	assert.Equal(t, 7, outcome.Index)
	require.Error(t, outcome.Err)
	assert.Contains(t, outcome.Err.Error(), "boom")
}

func TestBaseName(t *testing.T) {
	tests := []struct {
		name string
		bm   model.Bookmark
		want string
	}{
		{"from title", model.Bookmark{Title: "My Site", URL: "http://a.com"}, "My_Site"},
		{"title trimmed", model.Bookmark{Title: "  Example  "}, "Example"},
		{"hostname fallback", model.Bookmark{URL: "http://sub.example.com/page"}, "sub.example.com"},
		{"bookmark fallback", model.Bookmark{}, "bookmark"},
		{"cyrillic title", model.Bookmark{Title: "Пример"}, "Пример"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BaseName(tt.bm))
		})
	}
}
