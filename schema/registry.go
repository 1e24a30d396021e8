package schema

import (
	"maps"
	"slices"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Registry caches resolved schemas by name. It is safe for concurrent
// use. At most one resolution of a name runs at a time per registry,
// whichever readers ask for it.
type Registry struct {
	mu      sync.RWMutex
	schemas map[string]*Schema

	flights singleflight.Group
	fmu     sync.Mutex
	owners  map[string]*session
}

func NewRegistry() *Registry {
	return &Registry{
		schemas: make(map[string]*Schema),
		owners:  make(map[string]*session),
	}
}

var shared = NewRegistry()

// Shared returns the process wide registry used by readers in
// ScopeShared, the default.
func Shared() *Registry { return shared }

// ResetShared empties the process wide registry.
func ResetShared() { shared.Reset() }

// Get looks up a schema by name. It never triggers resolution.
func (r *Registry) Get(name string) (*Schema, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.schemas[name]
	return s, ok
}

// Put stores s under name, replacing any previous entry.
func (r *Registry) Put(name string, s *Schema) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.schemas[name] = s
}

// loadOrStore stores s under name unless an entry exists, and returns the
// entry now in the registry.
func (r *Registry) loadOrStore(name string, s *Schema) (*Schema, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if prev, ok := r.schemas[name]; ok {
		return prev, true
	}
	r.schemas[name] = s
	return s, false
}

func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	clear(r.schemas)
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.schemas)
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.schemas))
}

// All returns every registered schema, sorted by name.
func (r *Registry) All() []*Schema {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := slices.Sorted(maps.Keys(r.schemas))
	res := make([]*Schema, len(names))
	for i, name := range names {
		res[i] = r.schemas[name]
	}
	return res
}

// resolve returns the schema name, running build as the one resolution
// of name in progress and storing its result. A session joining the
// resolution of another one fails with a CycleError instead when that
// resolution waits, directly or through other sessions, on ses.
func (r *Registry) resolve(ses *session, name string, build func() (*Schema, error)) (*Schema, error) {
	if err := r.wait(ses, name); err != nil {
		return nil, err
	}
	defer r.setWaiting(ses, "")
	v, err, _ := r.flights.Do(name, func() (any, error) {
		if s, ok := r.Get(name); ok {
			return s, nil
		}
		r.own(ses, name)
		defer r.disown(name)
		s, err := build()
		if err != nil {
			return nil, err
		}
		s, _ = r.loadOrStore(name, s)
		return s, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Schema), nil
}

// wait records that ses is about to wait on the resolution of name,
// unless the sessions waiting on one another lead back to ses.
func (r *Registry) wait(ses *session, name string) error {
	r.fmu.Lock()
	defer r.fmu.Unlock()
	seen := map[*session]bool{}
	for n := name; n != ""; {
		o := r.owners[n]
		if o == nil || seen[o] {
			break
		}
		if o == ses {
			return &CycleError{Chain: append(slices.Clone(ses.chain), Ref{Target: name}.String())}
		}
		seen[o] = true
		n = o.waiting
	}
	ses.waiting = name
	return nil
}

func (r *Registry) setWaiting(ses *session, name string) {
	r.fmu.Lock()
	defer r.fmu.Unlock()
	ses.waiting = name
}

func (r *Registry) own(ses *session, name string) {
	r.fmu.Lock()
	defer r.fmu.Unlock()
	r.owners[name] = ses
	ses.waiting = ""
}

func (r *Registry) disown(name string) {
	r.fmu.Lock()
	defer r.fmu.Unlock()
	delete(r.owners, name)
}
