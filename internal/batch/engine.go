// Package batch orchestrates the three document-reorganization modes over a
// filesystem tree, reporting progress to the caller and honoring
// cooperative cancellation between units of work.
package batch

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ldmerino/organizadorArchivos/internal/identity"
)

// Mode selects the batch operation.
type Mode string

const (
	// ModeSplit writes one single-page PDF per page of a multi-page source.
	ModeSplit Mode = "split"
	// ModeRename copies single-document PDFs under identity-based names.
	ModeRename Mode = "rename"
	// ModeOrganize regroups already-renamed documents into per-identity folders.
	ModeOrganize Mode = "organize"
)

// Config describes one batch run. It is caller-owned and read-only for the
// engine.
type Config struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`
	Mode        Mode   `json:"mode"`
}

// State is the lifecycle of a run: Idle -> Running -> terminal.
type State int32

const (
	StateIdle State = iota
	StateRunning
	StateCompleted
	StateCancelled
	StateFailed
)

// String renders the state for logs.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	case StateCancelled:
		return "cancelled"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// EventType discriminates run events.
type EventType int

const (
	// EventProgress carries a 0-100 percentage, monotonically non-decreasing
	// within a run.
	EventProgress EventType = iota
	// EventStatus carries a human-readable progress message.
	EventStatus
	// EventResults carries the full result list, emitted once after all
	// units have been processed.
	EventResults
	// EventCompleted marks a successful run; no further events follow.
	EventCompleted
	// EventError marks a fatally failed run; no further events follow.
	EventError
)

// Event is one notification delivered to the caller.
type Event struct {
	Type     EventType
	Progress int
	Status   string
	Results  []ProcessResult
	Err      string
}

// TextExtractor supplies page text for a PDF. Satisfied by
// *extract.Extractor; tests substitute stubs.
type TextExtractor interface {
	Text(path string, pageIndex int) string
}

// Engine runs batch operations. One engine may start any number of runs;
// each run gets its own worker goroutine and event stream. Concurrent runs
// against the same destination are not coordinated, callers must serialize
// per destination.
type Engine struct {
	extractor   TextExtractor
	names       *identity.Extractor
	maxFileSize int64
	logger      *zap.Logger
}

// NewEngine creates a batch engine. A nil identity extractor selects the
// default pattern set; a nil logger disables logging. maxFileSize bounds
// the size of source PDFs; zero or negative disables the limit.
func NewEngine(extractor TextExtractor, names *identity.Extractor, maxFileSize int64, logger *zap.Logger) *Engine {
	if names == nil {
		names = identity.NewExtractor(nil)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{extractor: extractor, names: names, maxFileSize: maxFileSize, logger: logger}
}

// checkFileSize rejects source files larger than the configured limit
// before any parser touches them.
func (e *Engine) checkFileSize(size int64) error {
	if e.maxFileSize > 0 && size > e.maxFileSize {
		return fmt.Errorf("file size %d exceeds limit of %d bytes", size, e.maxFileSize)
	}
	return nil
}

const eventBuffer = 128

// Run is the handle for one in-flight batch operation.
type Run struct {
	ID uuid.UUID

	cfg          Config
	events       chan Event
	cancelled    atomic.Bool
	state        atomic.Int32
	lastProgress int // worker-goroutine only
}

// Events returns the run's event stream. The channel is closed once the run
// reaches a terminal state; callers must drain it.
func (r *Run) Events() <-chan Event { return r.events }

// Cancel requests cooperative cancellation. It is idempotent and safe to
// call at any time, including after completion. The run stops at the next
// check between units of work and delivers no results.
func (r *Run) Cancel() { r.cancelled.Store(true) }

// State returns the run's current lifecycle state.
func (r *Run) State() State { return State(r.state.Load()) }

// Start launches a run for the given configuration and returns its handle
// immediately. Setup problems (unknown mode, missing source) surface as a
// single error event on the handle, not as a synchronous error.
func (e *Engine) Start(ctx context.Context, cfg Config) *Run {
	r := &Run{
		ID:     uuid.New(),
		cfg:    cfg,
		events: make(chan Event, eventBuffer),
	}
	go e.run(ctx, r)
	return r
}

func (e *Engine) run(ctx context.Context, r *Run) {
	defer close(r.events)

	r.state.Store(int32(StateRunning))
	e.logger.Info("run started",
		zap.String("run_id", r.ID.String()),
		zap.String("mode", string(r.cfg.Mode)),
		zap.String("source", r.cfg.Source))

	if r.interrupted(ctx) {
		r.state.Store(int32(StateCancelled))
		e.logger.Info("run cancelled before start", zap.String("run_id", r.ID.String()))
		return
	}

	var results []ProcessResult
	var err error

	switch r.cfg.Mode {
	case ModeSplit:
		results, err = e.runSplit(ctx, r)
	case ModeRename:
		results, err = e.runRename(ctx, r)
	case ModeOrganize:
		results, err = e.runOrganize(ctx, r)
	default:
		err = fmt.Errorf("unknown mode: %q", r.cfg.Mode)
	}

	if err != nil {
		r.state.Store(int32(StateFailed))
		e.logger.Error("run failed", zap.String("run_id", r.ID.String()), zap.Error(err))
		r.emit(Event{Type: EventError, Err: err.Error()})
		return
	}
	if r.interrupted(ctx) {
		r.state.Store(int32(StateCancelled))
		e.logger.Info("run cancelled", zap.String("run_id", r.ID.String()))
		return
	}

	r.emit(Event{Type: EventResults, Results: results})
	r.emit(Event{Type: EventCompleted})
	r.state.Store(int32(StateCompleted))
	e.logger.Info("run completed",
		zap.String("run_id", r.ID.String()),
		zap.Int("results", len(results)))
}

// interrupted is the cooperative cancellation check, consulted between
// units of work, never mid-unit.
func (r *Run) interrupted(ctx context.Context) bool {
	return r.cancelled.Load() || ctx.Err() != nil
}

func (r *Run) emit(ev Event) {
	r.events <- ev
}

// progress emits a percentage, clamped so values never decrease within a run.
func (r *Run) progress(pct int) {
	if pct < r.lastProgress {
		pct = r.lastProgress
	}
	if pct > 100 {
		pct = 100
	}
	r.lastProgress = pct
	r.emit(Event{Type: EventProgress, Progress: pct})
}

func (r *Run) status(msg string) {
	r.emit(Event{Type: EventStatus, Status: msg})
}

// ensureSourceDir verifies the source exists and is a directory.
func ensureSourceDir(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("source folder does not exist: %s", path)
	}
	if err != nil {
		return fmt.Errorf("cannot access source folder: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("source path is not a directory: %s", path)
	}
	return nil
}

// listPDFs returns the names of the *.pdf entries directly inside dir, in
// the sorted order of os.ReadDir. This order pins the deterministic
// behavior of collision counters and last-write-wins indexing.
func listPDFs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot read directory: %w", err)
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
			names = append(names, entry.Name())
		}
	}
	return names, nil
}

// copyFile copies src to dst (which must not exist), preserving the source
// file mode. The originals are never moved or modified, so reprocessing is
// always safe.
func copyFile(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("cannot stat source: %w", err)
	}
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("cannot open source: %w", err)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("cannot create destination: %w", err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copy failed: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close failed: %w", err)
	}
	return nil
}
