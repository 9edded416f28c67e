// Mailbox implements §5's two mailbox channels: one from the editor
// transport, one from the worker pool. Grounded on
// original_source/crates/star_ls/src/main_loop.rs's `recv` method, which
// `select!`s over `self.connection.receiver` (LSP messages) and
// `self.thread_pool_receiver` (worker task results) — Go's `select` over
// two channels is the direct translation of `crossbeam_channel::select!`.
package server

import "github.com/star-ls/star-ls-go/syntax"

// MessageKind names one editor-boundary request (§6 inbound boundary).
type MessageKind int

const (
	SetFileText MessageKind = iota
	RemoveFile
	Subscribe
	Unsubscribe
)

// EditorMessage is one inbound request from the editor transport.
type EditorMessage struct {
	Kind MessageKind
	Path string
	Text string // only meaningful for SetFileText
}

// Result is one outbound report from a worker: the diagnostics computed
// for Path as of Revision, or a non-nil Err if the query could not be
// completed (§4.4.2, §7).
type Result struct {
	Path        string
	Revision    uint64
	Diagnostics []*syntax.Diagnostic
	Err         error
}

// Mailbox holds the channel pair the event loop selects over.
type Mailbox struct {
	EditorIn  chan EditorMessage
	WorkerOut chan Result
}

// NewMailbox creates a mailbox with the given per-channel buffer size.
func NewMailbox(buffer int) *Mailbox {
	return &Mailbox{
		EditorIn:  make(chan EditorMessage, buffer),
		WorkerOut: make(chan Result, buffer),
	}
}
