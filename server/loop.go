// Loop implements §5's concurrency model: one event-loop goroutine plus N
// worker goroutines, communicating over the two Mailbox channels and an
// internal job queue. Grounded on
// original_source/crates/star_ls/src/main_loop.rs's `run`/`recv`/
// `handle_event` split and `global_state.rs`'s `changes`/
// `diagnostic_changes` dirty sets (SPEC_FULL.md §C.2), which this repo
// carries as dirtyFiles/dirtyDiagnostics. The sets are recorded but not
// consulted for scheduling: every SetFileText dispatches its own job, the
// Cancel that follows each write aborts jobs still running on older
// snapshots, and handleResult drops results older than the newest
// dispatched revision. Subscriptions
// (original_source's subscriptions.rs, SPEC_FULL.md §C.3) gate which
// paths actually get diagnostics computed and published.
package server

import (
	"context"
	"errors"
	"log/slog"

	"github.com/star-ls/star-ls-go/cache"
)

// PublishFunc delivers a path's current diagnostics to the editor (§6
// outbound boundary). Implementations must not block for long: the event
// loop calls it synchronously from handleResult.
type PublishFunc func(path string, diagnostics []PublishedDiagnostic)

// job is one unit of work dispatched from the event loop to a worker: a
// path to compute diagnostics for, under a fixed snapshot.
type job struct {
	path string
	snap *cache.Snapshot
}

// Loop owns the cache, the mailbox, and the worker pool's job queue. The
// event loop goroutine (Run) is the cache's only writer (§4.4.3, §5).
type Loop struct {
	cache   *cache.Cache
	mailbox *Mailbox
	jobs    chan job
	workers int
	publish PublishFunc
	log     *slog.Logger

	subscriptions    map[string]bool
	dirtyFiles       map[string]bool
	dirtyDiagnostics map[string]bool
	fileRevision     map[string]uint64
}

// NewLoop creates a Loop with the given worker pool size (clamped to ≥1).
func NewLoop(c *cache.Cache, mailbox *Mailbox, workers int, publish PublishFunc, log *slog.Logger) *Loop {
	if workers < 1 {
		workers = 1
	}
	if log == nil {
		log = slog.Default()
	}
	return &Loop{
		cache:            c,
		mailbox:          mailbox,
		jobs:             make(chan job, workers),
		workers:          workers,
		publish:          publish,
		log:              log,
		subscriptions:    make(map[string]bool),
		dirtyFiles:       make(map[string]bool),
		dirtyDiagnostics: make(map[string]bool),
		fileRevision:     make(map[string]uint64),
	}
}

// Run starts the worker pool and blocks, draining the mailbox with a
// select over both channels, until ctx is cancelled or EditorIn is closed
// (§5 "a select over both is the main loop body").
func (l *Loop) Run(ctx context.Context) {
	for i := 0; i < l.workers; i++ {
		go l.worker(ctx)
	}
	for {
		select {
		case <-ctx.Done():
			close(l.jobs)
			return
		case msg, ok := <-l.mailbox.EditorIn:
			if !ok {
				close(l.jobs)
				return
			}
			l.handleEditorMessage(msg)
		case res := <-l.mailbox.WorkerOut:
			l.handleResult(res)
		}
	}
}

// worker pulls jobs until the queue is closed or ctx is cancelled, and
// never mutates the cache — only the event loop writes to it (§4.4.3).
func (l *Loop) worker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case j, ok := <-l.jobs:
			if !ok {
				return
			}
			l.runJob(j)
		}
	}
}

// runJob forces the parse query on j's snapshot and reports the result.
// A Cancelled error means the worker's task was aborted mid-flight: per §7
// it drops the task and exits cleanly without sending anything back.
func (l *Loop) runJob(j job) {
	rev, ok := j.snap.FileRevision(j.path)
	if !ok {
		return
	}
	result, err := j.snap.Parse(j.path)
	if err != nil {
		if errors.Is(err, cache.ErrCancelled) {
			l.log.Warn("worker observed cancellation", "path", j.path)
			return
		}
		l.mailbox.WorkerOut <- Result{Path: j.path, Revision: rev, Err: err}
		return
	}
	l.mailbox.WorkerOut <- Result{Path: j.path, Revision: rev, Diagnostics: result.Diagnostics}
}

// handleEditorMessage applies one inbound request. It must never block or
// force a query itself (§4.4.3, §5) — diagnostic computation is always
// dispatched to a worker via scheduleDiagnostics.
func (l *Loop) handleEditorMessage(msg EditorMessage) {
	switch msg.Kind {
	case SetFileText:
		l.log.Info("set_file_text", "path", msg.Path)
		l.cache.SetFileText(msg.Path, msg.Text)
		l.cache.Cancel()
		l.dirtyFiles[msg.Path] = true
		l.dirtyDiagnostics[msg.Path] = true
		l.scheduleDiagnostics(msg.Path)
	case RemoveFile:
		l.log.Info("remove_file", "path", msg.Path)
		l.cache.RemoveFile(msg.Path)
		delete(l.subscriptions, msg.Path)
		delete(l.dirtyFiles, msg.Path)
		delete(l.dirtyDiagnostics, msg.Path)
		delete(l.fileRevision, msg.Path)
	case Subscribe:
		l.log.Info("subscribe", "path", msg.Path)
		l.subscriptions[msg.Path] = true
		l.scheduleDiagnostics(msg.Path)
	case Unsubscribe:
		l.log.Info("unsubscribe", "path", msg.Path)
		delete(l.subscriptions, msg.Path)
	}
}

// scheduleDiagnostics dispatches a job for path if it is subscribed,
// capturing a fresh snapshot so the worker's result carries an accurate
// revision for handleResult's staleness check. The send onto l.jobs
// happens in its own goroutine so a full queue never blocks the event
// loop (§4.4.3 "must remain non-blocking").
func (l *Loop) scheduleDiagnostics(path string) {
	if !l.subscriptions[path] {
		return
	}
	snap := l.cache.Snapshot()
	rev, ok := snap.FileRevision(path)
	if !ok {
		return
	}
	l.fileRevision[path] = rev
	l.log.Debug("scheduling diagnostics", "path", path, "revision", rev)
	go func() { l.jobs <- job{path: path, snap: snap} }()
}

// handleResult applies a worker's report, dropping it if it is stale (a
// newer write landed on path since the job was dispatched) or the path
// was unsubscribed in the meantime.
func (l *Loop) handleResult(res Result) {
	if res.Err != nil {
		l.log.Warn("worker error", "path", res.Path, "err", res.Err)
		return
	}
	current, tracked := l.fileRevision[res.Path]
	if !tracked || res.Revision < current {
		l.log.Debug("dropping stale diagnostics", "path", res.Path, "revision", res.Revision)
		return
	}
	if !l.subscriptions[res.Path] {
		return
	}

	snap := l.cache.Snapshot()
	lines, err := snap.Lines(res.Path)
	if err != nil {
		l.log.Warn("failed to compute line index for publish", "path", res.Path, "err", err)
		return
	}
	l.publish(res.Path, ToPublishedAll(res.Diagnostics, lines))
	delete(l.dirtyDiagnostics, res.Path)
}
