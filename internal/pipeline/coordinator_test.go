package pipeline

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnDsergey13/New-tab/internal/config"
	"github.com/AnDsergey13/New-tab/internal/model"
)

func newIconServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/favicon.ico", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/x-icon")
		w.Write([]byte("ICON"))
	})
	mux.HandleFunc("/logo.png", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write([]byte("PNGDATA"))
	})
	mux.HandleFunc("/missing.png", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func writeBookmarks(t *testing.T, records []model.Bookmark) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bookmarks.json")
	data, err := json.Marshal(records)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func testSettings(t *testing.T, workers int) *config.Settings {
	t.Helper()
	s := config.DefaultSettings()
	s.OutputDir = filepath.Join(t.TempDir(), "icons")
	s.Workers = workers
	return s
}

func loadBack(t *testing.T, path string) []model.Bookmark {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var records []model.Bookmark
	require.NoError(t, json.Unmarshal(data, &records))
	return records
}

func TestCoordinator_Run(t *testing.T) {
	srv := newIconServer(t)
	input := []model.Bookmark{
		{Title: "Example", URL: "http://example.com", Icon: srv.URL + "/favicon.ico"},
		{Title: "No Icon", URL: "http://noicon.example", Icon: ""},
		{Title: "Gone", URL: "http://gone.example", Icon: srv.URL + "/missing.png"},
		{Title: "Пример", URL: "http://пример.рф", Icon: srv.URL + "/logo.png"},
	}
	path := writeBookmarks(t, input)
	settings := testSettings(t, 3)

	coordinator := NewCoordinator(settings, path, nil)
	summary, err := coordinator.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, StateDone, coordinator.State())
	assert.Equal(t, 4, summary.Total)
	assert.Equal(t, 3, summary.Dispatched)
	assert.Equal(t, 2, summary.Succeeded)
	assert.Equal(t, 2, summary.Failed)

	// Backup holds the pre-run content.
	require.FileExists(t, summary.BackupPath)
	backup := loadBack(t, summary.BackupPath)
	assert.Equal(t, input, backup)

	output := loadBack(t, path)
	require.Len(t, output, 4)

	// Order and non-icon fields unchanged.
	for i := range input {
		assert.Equal(t, input[i].Title, output[i].Title)
		assert.Equal(t, input[i].URL, output[i].URL)
	}

	// Successful records point at existing files with the fetched bytes.
	assert.Equal(t, "Example.ico", filepath.Base(output[0].Icon))
	got, err := os.ReadFile(output[0].Icon)
	require.NoError(t, err)
	assert.Equal(t, "ICON", string(got))

	assert.Equal(t, "Пример.png", filepath.Base(output[3].Icon))
	got, err = os.ReadFile(output[3].Icon)
	require.NoError(t, err)
	assert.Equal(t, "PNGDATA", string(got))

	// Failed records keep their input icon value byte for byte.
	assert.Equal(t, "", output[1].Icon)
	assert.Equal(t, srv.URL+"/missing.png", output[2].Icon)
}

func TestCoordinator_DuplicateTitlesGetDistinctFiles(t *testing.T) {
	srv := newIconServer(t)
	input := []model.Bookmark{
		{Title: "Example", URL: "http://a.example", Icon: srv.URL + "/favicon.ico"},
		{Title: "Example", URL: "http://b.example", Icon: srv.URL + "/favicon.ico"},
	}
	path := writeBookmarks(t, input)

	// One worker makes the collision handling deterministic for the
	// assertion; concurrent same-name claims are documented best-effort.
	settings := testSettings(t, 1)

	coordinator := NewCoordinator(settings, path, nil)
	summary, err := coordinator.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Succeeded)

	output := loadBack(t, path)
	assert.Equal(t, "Example.ico", filepath.Base(output[0].Icon))
	assert.Equal(t, "Example_1.ico", filepath.Base(output[1].Icon))
	assert.NotEqual(t, output[0].Icon, output[1].Icon)

	for _, record := range output {
		data, err := os.ReadFile(record.Icon)
		require.NoError(t, err)
		assert.Equal(t, "ICON", string(data))
	}
}

func TestCoordinator_RelativePaths(t *testing.T) {
	srv := newIconServer(t)
	path := writeBookmarks(t, []model.Bookmark{
		{Title: "Example", Icon: srv.URL + "/favicon.ico"},
	})

	settings := testSettings(t, 2)
	// Icons next to the bookmarks file so a relative form exists.
	settings.OutputDir = filepath.Join(filepath.Dir(path), "icons")
	settings.RelativePaths = true

	coordinator := NewCoordinator(settings, path, nil)
	_, err := coordinator.Run(context.Background())
	require.NoError(t, err)

	output := loadBack(t, path)
	require.False(t, filepath.IsAbs(output[0].Icon))
	assert.Equal(t, filepath.Join("icons", "Example.ico"), output[0].Icon)
	assert.FileExists(t, filepath.Join(filepath.Dir(path), output[0].Icon))
}

func TestCoordinator_NoBackup(t *testing.T) {
	srv := newIconServer(t)
	path := writeBookmarks(t, []model.Bookmark{
		{Title: "Example", Icon: srv.URL + "/favicon.ico"},
	})
	settings := testSettings(t, 2)
	settings.Backup = false

	coordinator := NewCoordinator(settings, path, nil)
	summary, err := coordinator.Run(context.Background())
	require.NoError(t, err)

	assert.Empty(t, summary.BackupPath)
	assert.NoFileExists(t, path+".bak")
}

func TestCoordinator_MissingInputIsFatal(t *testing.T) {
	settings := testSettings(t, 2)
	coordinator := NewCoordinator(settings, filepath.Join(t.TempDir(), "absent.json"), nil)

	_, err := coordinator.Run(context.Background())
	require.Error(t, err)
	assert.Equal(t, StateFailed, coordinator.State())
}

func TestCoordinator_NotArrayIsFatal(t *testing.T) {
	for _, content := range []string{`{"title":"x"}`, `null`} {
		path := filepath.Join(t.TempDir(), "bookmarks.json")
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))

		settings := testSettings(t, 2)
		coordinator := NewCoordinator(settings, path, nil)

		_, err := coordinator.Run(context.Background())
		require.Error(t, err, "content %s", content)
		assert.Equal(t, StateFailed, coordinator.State())

		// The original file is untouched.
		data, readErr := os.ReadFile(path)
		require.NoError(t, readErr)
		assert.Equal(t, content, string(data))
	}
}

func TestCoordinator_ProgressEvents(t *testing.T) {
	srv := newIconServer(t)
	path := writeBookmarks(t, []model.Bookmark{
		{Title: "Example", Icon: srv.URL + "/favicon.ico"},
		{Title: "Gone", Icon: srv.URL + "/missing.png"},
	})
	settings := testSettings(t, 2)

	// The callback fires from worker goroutines; guard the slice.
	var mu sync.Mutex
	var events []ProgressEvent
	coordinator := NewCoordinator(settings, path, func(event ProgressEvent) {
		mu.Lock()
		events = append(events, event)
		mu.Unlock()
	})
	_, err := coordinator.Run(context.Background())
	require.NoError(t, err)

	var warned, succeeded bool
	var lastDone, lastTotal int
	for _, event := range events {
		if event.Level == LevelWarning {
			warned = true
		}
		if event.Level == LevelSuccess {
			succeeded = true
		}
		if event.Total > 0 {
			lastDone, lastTotal = event.Done, event.Total
		}
	}
	assert.True(t, warned, "the 404 should surface as a warning event")
	assert.True(t, succeeded, "the final tally should be a success event")
	assert.Equal(t, 2, lastTotal)
	assert.Equal(t, 2, lastDone)
}

func TestCoordinator_PreservesUnicodeInFile(t *testing.T) {
	srv := newIconServer(t)
	path := writeBookmarks(t, []model.Bookmark{
		{Title: "Пример", URL: "http://пример.рф", Icon: srv.URL + "/missing.png"},
	})
	settings := testSettings(t, 2)

	coordinator := NewCoordinator(settings, path, nil)
	_, err := coordinator.Run(context.Background())
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Пример")
	assert.Contains(t, string(data), "пример.рф")
}
