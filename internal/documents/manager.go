package documents

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"bennypowers.dev/cpsort/internal/position"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// ErrNotFound is returned for URIs that are not open
var ErrNotFound = errors.New("document not found")

// Manager tracks the documents open in the editor
type Manager struct {
	documents map[string]*Document
	mu        sync.RWMutex
}

// NewManager creates a new document manager
func NewManager() *Manager {
	return &Manager{
		documents: make(map[string]*Document),
	}
}

// Get retrieves a document by URI, or nil
func (m *Manager) Get(uri string) *Document {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.documents[uri]
}

// URIs returns the URIs of all open documents, sorted
func (m *Manager) URIs() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	uris := make([]string, 0, len(m.documents))
	for uri := range m.documents {
		uris = append(uris, uri)
	}
	slices.Sort(uris)
	return uris
}

// DidOpen starts tracking a document, replacing any previous copy
func (m *Manager) DidOpen(uri, languageID string, version int32, content string) *Document {
	m.mu.Lock()
	defer m.mu.Unlock()

	doc := NewDocument(uri, languageID, version, content)
	m.documents[uri] = doc
	return doc
}

// DidClose stops tracking a document
func (m *Manager) DidClose(uri string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.documents[uri]; !exists {
		return fmt.Errorf("%w: %s", ErrNotFound, uri)
	}
	delete(m.documents, uri)
	return nil
}

// DidChange applies content changes in order. Each change is either a
// protocol.TextDocumentContentChangeEventWhole or a ranged
// protocol.TextDocumentContentChangeEvent.
func (m *Manager) DidChange(uri string, version int32, changes []any) (*Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	doc, exists := m.documents[uri]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, uri)
	}

	content := doc.Content()
	for _, change := range changes {
		var err error
		content, err = applyChange(content, change)
		if err != nil {
			return nil, fmt.Errorf("failed to apply changes: %w", err)
		}
	}

	if err := doc.setContent(content, version); err != nil {
		return nil, err
	}
	return doc, nil
}

func applyChange(content string, change any) (string, error) {
	switch c := change.(type) {
	case protocol.TextDocumentContentChangeEventWhole:
		return c.Text, nil
	case *protocol.TextDocumentContentChangeEventWhole:
		return c.Text, nil
	case protocol.TextDocumentContentChangeEvent:
		return applyRangeChange(content, c.Range, c.Text)
	case *protocol.TextDocumentContentChangeEvent:
		return applyRangeChange(content, c.Range, c.Text)
	}
	return "", fmt.Errorf("unknown content change %T", change)
}

// applyRangeChange splices text into content. Range positions are UTF-16 based.
func applyRangeChange(content string, r *protocol.Range, text string) (string, error) {
	if r == nil {
		return text, nil
	}
	start, err := position.Offset(content, r.Start.Line, r.Start.Character)
	if err != nil {
		return "", fmt.Errorf("start: %w", err)
	}
	end, err := position.Offset(content, r.End.Line, r.End.Character)
	if err != nil {
		return "", fmt.Errorf("end: %w", err)
	}
	if end < start {
		return "", fmt.Errorf("range end %d:%d precedes start %d:%d",
			r.End.Line, r.End.Character, r.Start.Line, r.Start.Character)
	}

	var b strings.Builder
	b.Grow(len(content) - (end - start) + len(text))
	b.WriteString(content[:start])
	b.WriteString(text)
	b.WriteString(content[end:])
	return b.String(), nil
}
