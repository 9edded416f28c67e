// Snapshot implements §4.4.2's "revision-bound read view": a cheap,
// immutable copy of the inputs map plus the cancellation epoch captured at
// creation time, grounded on original_source/crates/star_db/src/lib.rs's
// `db.snapshot()` pattern (a salsa `Snapshot<DB>` that sees a frozen set of
// revisions regardless of later writes on the main database).
package cache

import "fmt"

// Snapshot is a read-only, revision-consistent view of a Cache. Multiple
// snapshots may coexist and do not observe writes made after they were
// taken (§4.4.2, §8 property 5).
type Snapshot struct {
	cache *Cache
	files map[string]File
	epoch uint64
}

// file returns the snapshot's frozen copy of a file's state.
func (s *Snapshot) file(path string) (File, bool) {
	f, ok := s.files[path]
	return f, ok
}

// FileRevision returns the revision the snapshot observed for path, so a
// caller (the event loop) can attach it to a dispatched job and later tell
// a stale result from a current one (§5 "revision epoch attached to the
// mailbox message").
func (s *Snapshot) FileRevision(path string) (uint64, bool) {
	f, ok := s.files[path]
	return f.Revision, ok
}

// checkCancelled compares the snapshot's captured epoch against the
// cache's current one (§4.4.2, §4.4.3's "periodically compares").
func (s *Snapshot) checkCancelled() error {
	if s.cache.epoch.Load() != s.epoch {
		return ErrCancelled
	}
	return nil
}

// Force resolves a query by id, returning a memoized value if one exists
// at this snapshot's revision of the file, or computing it under
// single-flight otherwise (§4.4.2, §8 property 6). It is the only
// operation that may block or be cancelled (§4.4.3).
func (s *Snapshot) Force(query queryID, path string) (any, error) {
	if err := s.checkCancelled(); err != nil {
		return nil, err
	}
	f, ok := s.file(path)
	if !ok {
		return nil, fmt.Errorf("cache: unknown file %q", path)
	}
	key := memoKey{query: query, path: path, revision: f.Revision}
	if v, ok := s.cache.lookupMemo(key); ok {
		return v, nil
	}

	sfKey := fmt.Sprintf("%d:%s:%d", query, path, f.Revision)
	v, err, _ := s.cache.group.Do(sfKey, func() (any, error) {
		if err := s.checkCancelled(); err != nil {
			return nil, err
		}
		result, err := runQuery(query, f.Text)
		if err != nil {
			return nil, err
		}
		s.cache.storeMemo(key, result)
		return result, nil
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}
