// This file ports the salsa `#[salsa::input] File` shape of
// original_source/crates/star_db/src/lib.rs to a plain Go struct: an owned
// text plus a monotone revision counter, bumped on every write (§4.4.1).
package cache

// File is an input handle: a path's current text plus the revision at
// which it was last written. Revisions are process-global and monotone
// (Cache.revision), never per-file, so comparing two files' revisions
// across writes is always meaningful.
type File struct {
	Path     string
	Text     string
	Revision uint64
}
