package pipeline

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/AnDsergey13/New-tab/internal/config"
	"github.com/AnDsergey13/New-tab/internal/fetch"
	httpclient "github.com/AnDsergey13/New-tab/internal/http"
	ioutils "github.com/AnDsergey13/New-tab/internal/io"
	"github.com/AnDsergey13/New-tab/internal/model"
	"github.com/AnDsergey13/New-tab/internal/store"
)

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents a pipeline progress update. Done and Total
// track completed fetch tasks for progress displays.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
	Done    int
	Total   int
}

// State identifies the phase a run is in. Phases advance strictly in
// order; StateFailed is reached from any phase on a fatal I/O error
// around the bookmarks file itself.
type State int

const (
	StateLoading State = iota
	StateBackingUp
	StateFetching
	StateMerging
	StatePersisting
	StateDone
	StateFailed
)

// String returns the phase name for logs.
func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateBackingUp:
		return "backing_up"
	case StateFetching:
		return "fetching"
	case StateMerging:
		return "merging"
	case StatePersisting:
		return "persisting"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Summary is the observational tally of a completed run.
type Summary struct {
	// Total is the number of bookmarks in the input file.
	Total int

	// Dispatched is how many bookmarks had an icon URL and were fetched.
	Dispatched int

	// Succeeded and Failed partition Total. Bookmarks without an icon
	// URL count as failed.
	Succeeded int
	Failed    int

	// BackupPath is where the original file was copied, "" if backups
	// were disabled.
	BackupPath string
}

// Coordinator runs the whole icon-fetching pipeline over one bookmarks
// file: load, back up, fetch under a bounded worker pool, merge
// outcomes back in input order, and atomically rewrite the file.
//
// Bookmarks are read-only during the parallel fetch phase and mutated
// only in the single-threaded merge phase, so no per-record locking is
// needed. Outcomes land in a slice slot owned by exactly one task.
type Coordinator struct {
	settings  *config.Settings
	inputPath string
	task      *fetch.Task

	state State
	runID string

	fetched    atomic.Int32
	dispatched int

	onProgress func(ProgressEvent)
}

// NewCoordinator creates a Coordinator for the bookmarks file at
// inputPath. The onProgress callback may be nil; when set it receives
// leveled events suitable for console output or a progress bar.
func NewCoordinator(settings *config.Settings, inputPath string, onProgress func(ProgressEvent)) *Coordinator {
	client := httpclient.NewClient(settings.Timeout())
	writer := ioutils.NewWriter(settings.OutputDir)

	return &Coordinator{
		settings:   settings,
		inputPath:  inputPath,
		task:       fetch.NewTask(client, writer),
		runID:      uuid.NewString(),
		onProgress: onProgress,
	}
}

// State returns the phase the last (or current) run reached.
func (c *Coordinator) State() State {
	return c.state
}

// Run executes the pipeline once and returns the tally.
//
// Per-bookmark failures never abort the run; only problems with the
// bookmarks file itself (missing input, malformed shape, backup or
// final write failure) are fatal and returned as an error. On a fatal
// persistence error the original file is left intact.
func (c *Coordinator) Run(ctx context.Context) (*Summary, error) {
	c.setState(StateLoading)
	records, err := store.Load(c.inputPath)
	if err != nil {
		return nil, c.fail(err)
	}
	if err := ioutils.EnsureDir(c.settings.OutputDir); err != nil {
		return nil, c.fail(fmt.Errorf("create output dir: %w", err))
	}

	summary := &Summary{Total: len(records)}

	if c.settings.Backup {
		c.setState(StateBackingUp)
		bak, err := store.Backup(ctx, c.inputPath)
		if err != nil {
			return nil, c.fail(err)
		}
		summary.BackupPath = bak
		c.progress(ProgressEvent{Message: "Backup created: " + bak, Level: LevelInfo})
	}

	c.setState(StateFetching)
	outcomes := c.fetchAll(ctx, records)
	summary.Dispatched = c.dispatched

	c.setState(StateMerging)
	c.merge(records, outcomes, summary)

	c.setState(StatePersisting)
	if err := store.Save(ctx, c.inputPath, records); err != nil {
		return nil, c.fail(err)
	}

	c.setState(StateDone)
	c.progress(ProgressEvent{
		Message: fmt.Sprintf("Success: %d, Fail: %d. Updated %s", summary.Succeeded, summary.Failed, c.inputPath),
		Level:   LevelSuccess,
		Done:    c.dispatched,
		Total:   c.dispatched,
	})
	log.Info().
		Str("run_id", c.runID).
		Int("succeeded", summary.Succeeded).
		Int("failed", summary.Failed).
		Msg("run complete")
	return summary, nil
}

// fetchAll runs fetch tasks over all bookmarks under the bounded pool
// and returns one outcome per bookmark, indexed by position.
//
// Bookmarks without an icon URL are recorded immediately and never
// dispatched. Tasks complete in arbitrary order; ordering is restored
// by the index-keyed outcome slice, not by completion order.
func (c *Coordinator) fetchAll(ctx context.Context, records []model.Bookmark) []model.Outcome {
	outcomes := make([]model.Outcome, len(records))

	var pending []int
	for i, bm := range records {
		if !bm.HasIcon() {
			outcomes[i] = model.Failure(i, model.FailureNoIconURL, nil)
			continue
		}
		pending = append(pending, i)
	}
	c.dispatched = len(pending)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.settings.Workers)

	for _, i := range pending {
		i := i
		bm := records[i]
		g.Go(func() error {
			outcome := c.task.Run(ctx, i, bm)
			outcomes[i] = outcome

			done := int(c.fetched.Add(1))
			if outcome.OK() {
				c.progress(ProgressEvent{
					Message: fmt.Sprintf("Downloaded: %s", outcome.Path),
					Level:   LevelVerbose,
					Done:    done,
					Total:   c.dispatched,
				})
			} else {
				log.Warn().
					Str("run_id", c.runID).
					Int("index", i).
					Str("icon", bm.IconURL()).
					Str("reason", outcome.String()).
					Msg("icon fetch failed")
				c.progress(ProgressEvent{
					Message: fmt.Sprintf("Failed %s: %s", bm.IconURL(), outcome),
					Level:   LevelWarning,
					Done:    done,
					Total:   c.dispatched,
				})
			}
			return nil
		})
	}

	// Tasks never return errors; Wait only blocks until all complete.
	_ = g.Wait()
	return outcomes
}

// merge applies outcomes to the records in input order. Successful
// outcomes rewrite the icon field; failures leave it byte-identical to
// the input. Runs on the coordinator goroutine only.
func (c *Coordinator) merge(records []model.Bookmark, outcomes []model.Outcome, summary *Summary) {
	for i := range records {
		outcome := outcomes[i]
		if !outcome.OK() {
			summary.Failed++
			continue
		}
		path := outcome.Path
		if c.settings.RelativePaths {
			path = ioutils.RelativeTo(c.inputPath, path)
		}
		records[i].Icon = path
		summary.Succeeded++
	}
}

func (c *Coordinator) setState(state State) {
	c.state = state
	log.Debug().Str("run_id", c.runID).Stringer("state", state).Msg("state change")
}

func (c *Coordinator) fail(err error) error {
	c.state = StateFailed
	log.Error().Str("run_id", c.runID).Err(err).Msg("run failed")
	c.progress(ProgressEvent{Message: err.Error(), Level: LevelError})
	return err
}

func (c *Coordinator) progress(event ProgressEvent) {
	if c.onProgress != nil {
		c.onProgress(event)
	}
}
