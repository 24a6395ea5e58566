package documents

import (
	"fmt"
	"sync"
	"time"

	"bennypowers.dev/svls/internal/log"
	"bennypowers.dev/svls/internal/patterns"
	"bennypowers.dev/svls/internal/position"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Manager manages text documents for the language server. Free-text changes
// are recorded in each document's history by an idle timer.
type Manager struct {
	documents map[string]*Document
	timers    map[string]*time.Timer
	delay     time.Duration
	now       func() time.Time
	closed    bool
	mu        sync.RWMutex
}

// NewManager creates a new document manager
func NewManager() *Manager {
	return &Manager{
		documents: make(map[string]*Document),
		timers:    make(map[string]*time.Timer),
		delay:     DefaultHistoryDelay,
		now:       time.Now,
	}
}

// SetHistoryDelay sets the idle gap used to coalesce free-text edits, for
// open documents and those opened later.
func (m *Manager) SetHistoryDelay(d time.Duration) {
	if d <= 0 {
		d = DefaultHistoryDelay
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.delay = d
	for _, doc := range m.documents {
		doc.SetHistoryDelay(d)
	}
}

// Get retrieves a document by URI
func (m *Manager) Get(uri string) *Document {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.documents[uri]
}

// GetAll returns all managed documents
func (m *Manager) GetAll() []*Document {
	m.mu.RLock()
	defer m.mu.RUnlock()

	docs := make([]*Document, 0, len(m.documents))
	for _, doc := range m.documents {
		docs = append(docs, doc)
	}
	return docs
}

// DidOpen handles the textDocument/didOpen notification
func (m *Manager) DidOpen(uri, languageID string, version int, content string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	doc := NewDocument(uri, languageID, version, content)
	doc.SetHistoryDelay(m.delay)
	m.stopTimer(uri)
	m.documents[uri] = doc
	return nil
}

// DidClose handles the textDocument/didClose notification
func (m *Manager) DidClose(uri string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.documents[uri]; !exists {
		return fmt.Errorf("%w: %s", ErrNotFound, uri)
	}

	m.stopTimer(uri)
	delete(m.documents, uri)
	return nil
}

// DidChange handles the textDocument/didChange notification
func (m *Manager) DidChange(uri string, version int, changes []protocol.TextDocumentContentChangeEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	doc, exists := m.documents[uri]
	if !exists {
		return fmt.Errorf("%w: %s", ErrNotFound, uri)
	}

	newContent, err := applyChanges(doc.ClientContent(), changes)
	if err != nil {
		return fmt.Errorf("failed to apply changes: %w", err)
	}

	if err := doc.SetContent(newContent, version, m.now()); err != nil {
		return fmt.Errorf("failed to set document content: %w", err)
	}
	if state, _ := doc.pendingState(); state == Pending {
		m.schedule(uri, m.delay)
	}
	return nil
}

// Replace replaces the bytes in r of the document with text, as one history
// entry. version must be the document's current version. It returns the
// edit to send to the client.
func (m *Manager) Replace(uri string, version int, r patterns.Span, text string) ([]Edit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	doc, err := m.current(uri, version)
	if err != nil {
		return nil, err
	}
	if _, err := doc.ReplaceToken(r, text); err != nil {
		return nil, err
	}
	m.stopTimer(uri)
	return []Edit{{Span: r, Text: text}}, nil
}

// Undo restores the document's previous snapshot and returns the edits
// that bring the client's copy to it. Nothing to undo yields no edits.
func (m *Manager) Undo(uri string) ([]Edit, error) {
	return m.swap(uri, (*Document).Undo)
}

// Redo reapplies the last undone snapshot; see Undo.
func (m *Manager) Redo(uri string) ([]Edit, error) {
	return m.swap(uri, (*Document).Redo)
}

func (m *Manager) swap(uri string, op func(*Document) bool) ([]Edit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	doc, exists := m.documents[uri]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, uri)
	}
	before := doc.Content()
	if !op(doc) {
		return nil, nil
	}
	m.stopTimer(uri)
	return Diff(before, doc.Content()), nil
}

// Close stops every pending history timer. Pending edits are recorded.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	for uri := range m.timers {
		m.stopTimer(uri)
		if doc, ok := m.documents[uri]; ok {
			doc.Flush()
		}
	}
}

func (m *Manager) current(uri string, version int) (*Document, error) {
	doc, exists := m.documents[uri]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, uri)
	}
	if v := doc.Version(); v != version {
		return nil, fmt.Errorf("%w: %s is at version %d, not %d", ErrStaleVersion, uri, v, version)
	}
	return doc, nil
}

// schedule (re)arms the idle timer of uri. Callers hold m.mu.
func (m *Manager) schedule(uri string, after time.Duration) {
	if m.closed {
		return
	}
	m.stopTimer(uri)
	var t *time.Timer
	t = time.AfterFunc(after, func() { m.tick(uri, t) })
	m.timers[uri] = t
}

func (m *Manager) stopTimer(uri string) {
	if t, ok := m.timers[uri]; ok {
		t.Stop()
		delete(m.timers, uri)
	}
}

// tick runs when the timer t of uri fires. A timer replaced or stopped
// after firing finds itself no longer registered and does nothing.
func (m *Manager) tick(uri string, t *time.Timer) {
	m.mu.Lock()
	defer m.mu.Unlock()

	doc, ok := m.documents[uri]
	if !ok || m.closed || m.timers[uri] != t {
		return
	}
	delete(m.timers, uri)
	recorded, remaining := doc.Tick(m.now())
	switch {
	case recorded:
		log.Debug("Recorded history entry for %s", uri)
	case remaining > 0:
		m.schedule(uri, remaining)
	}
}

// applyChanges applies a list of content changes to the document
func applyChanges(content string, changes []protocol.TextDocumentContentChangeEvent) (string, error) {
	result := content

	for _, change := range changes {
		// If no range is provided, this is a full document update
		if change.Range == nil {
			result = change.Text
			continue
		}

		span, err := position.NewIndex(result).Span(*change.Range)
		if err != nil {
			return "", err
		}
		result = result[:span.Start] + change.Text + result[span.End:]
	}

	return result, nil
}
