package documents

import (
	"fmt"
	"sync"
	"time"

	"bennypowers.dev/svls/internal/patterns"
)

// Document is an open text document with its edit history. History entries
// are full-text snapshots. Methods are safe for concurrent use.
//
// Server-side edits (ReplaceToken, Undo, Redo) reach the client through
// workspace/applyEdit and come back as didChange notifications. Until then
// the client's text lags behind content; each such edit counts as one
// version ahead of the client.
type Document struct {
	mu         sync.Mutex
	uri        string
	languageID string
	content    string
	dirty      bool

	// client and version are the text and version the client last reported.
	client  string
	version int
	// echoes are the texts the client will report once it applies the
	// server-side edits, oldest first.
	echoes []string

	undo     []string
	redo     []string
	recorded string
	pending  Coalescer
}

// NewDocument creates a new document
func NewDocument(uri, languageID string, version int, content string) *Document {
	return &Document{
		uri:        uri,
		languageID: languageID,
		version:    version,
		content:    content,
		client:     content,
		recorded:   content,
	}
}

// URI returns the document's URI
func (d *Document) URI() string {
	return d.uri
}

// LanguageID returns the document's language identifier
func (d *Document) LanguageID() string {
	return d.languageID
}

// Version returns the document's version: the client's version plus the
// server-side edits it has yet to report.
func (d *Document) Version() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.current()
}

func (d *Document) current() int {
	return d.version + len(d.echoes)
}

// Content returns the document's current content
func (d *Document) Content() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.content
}

// Snapshot returns the content and version read together.
func (d *Document) Snapshot() (string, int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.content, d.current()
}

// ClientContent returns the text the client last reported. Incremental
// changes from the client apply to this text.
func (d *Document) ClientContent() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.client
}

// Dirty reports whether the document changed since it was opened or last
// marked clean.
func (d *Document) Dirty() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.dirty
}

// MarkClean clears the dirty flag, e.g. after the host saved the text.
func (d *Document) MarkClean() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.dirty = false
}

// SetHistoryDelay sets the idle gap used to coalesce free-text edits.
func (d *Document) SetHistoryDelay(delay time.Duration) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pending.Delay = delay
}

// CanUndo reports whether Undo would change the document.
func (d *Document) CanUndo() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.undo) > 0
}

// CanRedo reports whether Redo would change the document.
func (d *Document) CanRedo() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.redo) > 0
}

// SetContent applies an update from the client at now. An update matching
// the oldest outstanding server-side edit acknowledges it; any other update
// is a free-text edit and makes the client's text authoritative.
// Returns an error if the provided version is older than the last one the
// client reported, preventing stale updates from being applied.
func (d *Document) SetContent(content string, version int, now time.Time) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if version < d.version {
		return fmt.Errorf("%w: document version is %d but update version is %d", ErrStaleVersion, d.version, version)
	}
	d.version = version
	d.client = content
	if len(d.echoes) > 0 && d.echoes[0] == content {
		d.echoes = d.echoes[1:]
		return nil
	}
	d.echoes = nil
	d.edit(content, now)
	return nil
}

// Edit applies a free-text edit at now. It is recorded in history only once
// edits pause for the history delay; see Tick.
func (d *Document) Edit(content string, now time.Time) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.edit(content, now)
}

func (d *Document) edit(content string, now time.Time) {
	if content == d.content {
		return
	}
	d.content = content
	d.dirty = true
	d.pending.Touch(now)
}

// Tick records the pending free-text edits as one history entry when they
// have been idle for the history delay. It reports whether an entry was
// recorded, and otherwise how long until one could be.
func (d *Document) Tick(now time.Time) (bool, time.Duration) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.pending.Due(now) {
		return false, d.pending.Remaining(now)
	}
	return d.flush(), 0
}

// Flush records pending free-text edits immediately.
func (d *Document) Flush() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.flush()
}

func (d *Document) flush() bool {
	if state, _ := d.pending.State(); state == Idle {
		return false
	}
	d.pending.Reset()
	if d.content == d.recorded {
		return false
	}
	d.undo = append(d.undo, d.recorded)
	d.redo = nil
	d.recorded = d.content
	return true
}

// ReplaceToken replaces the bytes in r with text and returns the range the
// text now occupies. Everything outside r is left untouched. Pending
// free-text edits are recorded first, so they undo separately.
func (d *Document) ReplaceToken(r patterns.Span, text string) (patterns.Span, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if r.Start < 0 || r.Start > r.End || r.End > len(d.content) {
		return r, fmt.Errorf("%w: [%d, %d) in text of length %d", ErrInvalidRange, r.Start, r.End, len(d.content))
	}
	d.flush()
	d.undo = append(d.undo, d.content)
	d.redo = nil
	d.content = d.content[:r.Start] + text + d.content[r.End:]
	d.recorded = d.content
	d.dirty = true
	d.echoes = append(d.echoes, d.content)
	return patterns.Span{Start: r.Start, End: r.Start + len(text)}, nil
}

// Undo restores the previous snapshot. Free-text edits still pending are
// not recorded; Redo brings them back.
func (d *Document) Undo() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.undo) == 0 {
		return false
	}
	d.pending.Reset()
	d.redo = append(d.redo, d.content)
	d.restore(&d.undo)
	return true
}

// Redo reapplies the snapshot most recently undone.
func (d *Document) Redo() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.redo) == 0 {
		return false
	}
	d.pending.Reset()
	d.undo = append(d.undo, d.content)
	d.restore(&d.redo)
	return true
}

// restore pops the top of stack into the current text.
func (d *Document) restore(stack *[]string) {
	s := *stack
	d.content = s[len(s)-1]
	*stack = s[:len(s)-1]
	d.recorded = d.content
	d.dirty = true
	d.echoes = append(d.echoes, d.content)
}

func (d *Document) pendingState() (CoalescerState, time.Time) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending.State()
}
