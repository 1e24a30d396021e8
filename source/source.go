package source

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/g2crowd/json-schema-tools/ir"
)

var (
	ErrNotFound = errors.New("schema not found")
	ErrNotAMap  = errors.New("schema document must be an object")
)

// Source supplies raw schema documents by name.
type Source interface {
	// LoadRaw returns the raw document named name. The caller owns the
	// returned node. It fails with ErrNotFound if no document matches.
	LoadRaw(name string) (*ir.Node, error)

	// ListNames returns the names of all available documents.
	ListNames() ([]string, error)
}

// Map is an in-memory Source.
type Map struct {
	mu   sync.RWMutex
	docs map[string]*ir.Node
}

// NewMap returns a Map holding copies of docs.
func NewMap(docs map[string]*ir.Node) *Map {
	m := &Map{docs: make(map[string]*ir.Node, len(docs))}
	for name, doc := range docs {
		m.docs[name] = doc.Clone()
	}
	return m
}

// Add stores a copy of doc under name, replacing any previous document.
func (m *Map) Add(name string, doc *ir.Node) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.docs == nil {
		m.docs = map[string]*ir.Node{}
	}
	m.docs[name] = doc.Clone()
}

func (m *Map) LoadRaw(name string) (*ir.Node, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	doc, ok := m.docs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return doc.Clone(), nil
}

func (m *Map) ListNames() ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Sorted(maps.Keys(m.docs)), nil
}
