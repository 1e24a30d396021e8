package schema

import (
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/g2crowd/json-schema-tools/debug"
	"github.com/g2crowd/json-schema-tools/ir"
	"github.com/g2crowd/json-schema-tools/source"

	"github.com/prometheus/client_golang/prometheus"
)

// Scope selects the registry a Reader resolves through.
type Scope int

const (
	ScopeShared Scope = iota
	ScopePrivate
)

func (s Scope) String() string {
	switch s {
	case ScopeShared:
		return "shared"
	case ScopePrivate:
		return "private"
	}
	return fmt.Sprintf("Scope(%d)", int(s))
}

type readerOpts struct {
	scope   Scope
	reg     *Registry
	log     *slog.Logger
	metrics prometheus.Registerer
}

type ReaderOption func(*readerOpts)

func WithScope(s Scope) ReaderOption {
	return func(o *readerOpts) { o.scope = s }
}

// WithRegistry makes the Reader resolve through reg, whatever the scope.
func WithRegistry(reg *Registry) ReaderOption {
	return func(o *readerOpts) { o.reg = reg }
}

func WithLogger(l *slog.Logger) ReaderOption {
	return func(o *readerOpts) { o.log = l }
}

// WithMetrics registers read and resolution metrics with reg. Readers
// given the same reg share the collectors.
func WithMetrics(reg prometheus.Registerer) ReaderOption {
	return func(o *readerOpts) { o.metrics = reg }
}

// Reader resolves schemas from a source into a Registry. It is safe for
// concurrent use. Concurrent reads of one unresolved name through one
// Registry, from this Reader or any other, wait for a single resolution.
type Reader struct {
	src     source.Source
	reg     *Registry
	log     *slog.Logger
	metrics *metrics
}

func NewReader(src source.Source, opts ...ReaderOption) *Reader {
	o := &readerOpts{log: slog.Default()}
	for _, opt := range opts {
		opt(o)
	}
	if src == nil {
		src = source.NewMap(nil)
	}
	r := &Reader{src: src, reg: o.reg, log: o.log}
	if r.reg == nil {
		switch o.scope {
		case ScopePrivate:
			r.reg = NewRegistry()
		default:
			r.reg = Shared()
		}
	}
	if o.metrics != nil {
		r.metrics = newMetrics(o.metrics)
	}
	return r
}

func (r *Reader) Registry() *Registry { return r.reg }

// Read returns the schema name, resolving it from the source unless it
// is already in the registry.
func (r *Reader) Read(name string) (*Schema, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: empty schema name", ErrInvalidArgument)
	}
	return r.read(name, nil)
}

// ReadRaw is like Read but resolves raw in place of the source document.
// raw must be an object. When name is already registered the registered
// schema is returned and raw is ignored.
func (r *Reader) ReadRaw(name string, raw *ir.Node) (*Schema, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: empty schema name", ErrInvalidArgument)
	}
	if raw == nil || raw.Type != ir.ObjectType {
		return nil, fmt.Errorf("%w: raw schema %q must be an object", ErrInvalidArgument, name)
	}
	return r.read(name, raw.Clone())
}

// ReadValue is like ReadRaw for a native Go value such as a
// map[string]any.
func (r *Reader) ReadValue(name string, v any) (*Schema, error) {
	if v == nil {
		return nil, fmt.Errorf("%w: raw schema %q is nil", ErrInvalidArgument, name)
	}
	raw, err := ir.FromAny(v)
	if err != nil {
		return nil, fmt.Errorf("%w: raw schema %q: %w", ErrInvalidArgument, name, err)
	}
	return r.ReadRaw(name, raw)
}

// ReadAll reads every schema the source lists, in name order.
func (r *Reader) ReadAll() ([]*Schema, error) {
	names, err := r.src.ListNames()
	if err != nil {
		return nil, err
	}
	names = slices.Clone(names)
	slices.Sort(names)
	res := make([]*Schema, 0, len(names))
	for _, name := range names {
		s, err := r.Read(name)
		if err != nil {
			return nil, err
		}
		res = append(res, s)
	}
	return res, nil
}

func (r *Reader) read(name string, raw *ir.Node) (*Schema, error) {
	if s, ok := r.reg.Get(name); ok {
		r.metrics.read(true)
		if debug.Cache() {
			debug.Logf("cache: hit %q\n", name)
		}
		return s, nil
	}
	r.metrics.read(false)
	ses := newSession(r)
	return r.reg.resolve(ses, name, func() (*Schema, error) {
		return r.resolve(ses, name, raw)
	})
}

func (r *Reader) resolve(ses *session, name string, raw *ir.Node) (*Schema, error) {
	start := time.Now()
	s, err := r.build(ses, name, raw)
	r.metrics.resolved(start, err)
	if err != nil {
		r.log.Debug("schema resolution failed", "name", name, "error", err)
		return nil, err
	}
	r.log.Debug("schema resolved", "name", name, "properties", s.props.Len(), "duration", time.Since(start))
	return s, nil
}

func (r *Reader) build(ses *session, name string, raw *ir.Node) (*Schema, error) {
	if raw == nil {
		var err error
		raw, err = ses.document(name)
		if err != nil {
			return nil, fmt.Errorf("reading schema %q: %w", name, err)
		}
	}
	return ses.build(name, raw)
}

// Read reads name from src through the shared registry.
func Read(src source.Source, name string) (*Schema, error) {
	return NewReader(src).Read(name)
}

// ReadValue reads name from the native value v through the shared
// registry.
func ReadValue(src source.Source, name string, v any) (*Schema, error) {
	return NewReader(src).ReadValue(name, v)
}

// ReadAll reads every schema of src through the shared registry.
func ReadAll(src source.Source) ([]*Schema, error) {
	return NewReader(src).ReadAll()
}
