// This file implements §4.4's query cache: a mutex-guarded inputs map plus
// a monotone revision counter and cancellation epoch, grounded on
// original_source/crates/star_ls/src/global_state.rs's
// `content: RwLock<HashMap<Url, Arc<(String, Lines)>>>` (the revision and
// epoch counters have no direct salsa analogue there — salsa tracks this
// internally — so they are named directly from spec.md §4.4.2/§4.4.3's own
// vocabulary instead).
package cache

import (
	"errors"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"
)

// ErrCancelled is raised by Snapshot.Force when the cache's cancellation
// epoch has advanced past the snapshot's captured epoch (§4.4.2, §7).
var ErrCancelled = errors.New("cache: cancelled")

// Cache owns the inputs map, the memo table, and the cancellation epoch.
// The event-loop goroutine is the only writer; workers only read through
// Snapshot (§4.4.3, §5).
type Cache struct {
	mu       sync.RWMutex
	files    map[string]*File
	revision uint64

	epoch atomic.Uint64

	memoMu sync.Mutex
	memo   map[memoKey]any

	group singleflight.Group
}

// New creates an empty cache.
func New() *Cache {
	return &Cache{files: make(map[string]*File)}
}

// SetFileText replaces (or creates) a file's text and bumps the global
// revision counter (§4.4.2). Entries memoized against the old revision
// become unreachable (a new memoKey is produced at the new revision) but
// are not actively evicted — the memo table is unbounded by design.
func (c *Cache) SetFileText(path, text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.revision++
	if f, ok := c.files[path]; ok {
		f.Text = text
		f.Revision = c.revision
		return
	}
	c.files[path] = &File{Path: path, Text: text, Revision: c.revision}
}

// RemoveFile deletes a file's input entry and bumps the revision.
func (c *Cache) RemoveFile(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.revision++
	delete(c.files, path)
}

// Cancel advances the cancellation epoch. Snapshots taken before this call
// will raise ErrCancelled the next time Force checks in (§4.4.2, §5).
func (c *Cache) Cancel() {
	c.epoch.Add(1)
}

// Snapshot returns a read-only view bound to the revisions current at the
// moment of the call. A snapshot is cheap: it copies only the small File
// value structs, never their text twice (string headers are copied, not
// backing arrays), and does not block writers for longer than the copy
// itself (§4.4.2 "cheap to clone").
func (c *Cache) Snapshot() *Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	files := make(map[string]File, len(c.files))
	for path, f := range c.files {
		files[path] = *f
	}
	return &Snapshot{cache: c, files: files, epoch: c.epoch.Load()}
}

func (c *Cache) lookupMemo(key memoKey) (any, bool) {
	c.memoMu.Lock()
	defer c.memoMu.Unlock()
	v, ok := c.memo[key]
	return v, ok
}

func (c *Cache) storeMemo(key memoKey, value any) {
	c.memoMu.Lock()
	defer c.memoMu.Unlock()
	if c.memo == nil {
		c.memo = make(map[memoKey]any)
	}
	c.memo[key] = value
}
