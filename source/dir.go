package source

import (
	"fmt"
	"io/fs"
	"log/slog"
	"maps"
	"os"
	"slices"
	"strings"
	"sync"

	"github.com/g2crowd/json-schema-tools/debug"
	"github.com/g2crowd/json-schema-tools/format"
	"github.com/g2crowd/json-schema-tools/ir"
	"github.com/g2crowd/json-schema-tools/parse"

	lru "github.com/hashicorp/golang-lru/v2"
)

const DefaultCacheSize = 256

// Dir is a Source reading schema documents from a directory tree. A
// document's name is its file name without the format suffix, whichever
// sub-directory holds it.
type Dir struct {
	fsys  fs.FS
	label string
	log   *slog.Logger

	mu    sync.Mutex
	index map[string]string
	docs  *lru.Cache[string, *ir.Node]
}

type dirOpts struct {
	cacheSize int
	log       *slog.Logger
}

type DirOption func(*dirOpts)

// WithCacheSize bounds the number of parsed documents kept in memory.
func WithCacheSize(n int) DirOption {
	return func(o *dirOpts) { o.cacheSize = n }
}

func WithLogger(l *slog.Logger) DirOption {
	return func(o *dirOpts) { o.log = l }
}

// NewDir returns a Dir rooted at the directory root.
func NewDir(root string, opts ...DirOption) (*Dir, error) {
	st, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("schema dir: %w", err)
	}
	if !st.IsDir() {
		return nil, fmt.Errorf("schema dir: %s is not a directory", root)
	}
	d, err := NewFS(os.DirFS(root), opts...)
	if err != nil {
		return nil, err
	}
	d.label = root
	return d, nil
}

// NewFS returns a Dir over fsys.
func NewFS(fsys fs.FS, opts ...DirOption) (*Dir, error) {
	o := &dirOpts{cacheSize: DefaultCacheSize, log: slog.Default()}
	for _, f := range opts {
		f(o)
	}
	docs, err := lru.New[string, *ir.Node](o.cacheSize)
	if err != nil {
		return nil, fmt.Errorf("schema dir cache: %w", err)
	}
	return &Dir{fsys: fsys, label: ".", log: o.log, docs: docs}, nil
}

// Rescan forgets the file index and all parsed documents, so that files
// added or changed since are seen by the next load.
func (d *Dir) Rescan() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.index = nil
	d.docs.Purge()
}

func (d *Dir) ListNames() ([]string, error) {
	idx, err := d.getIndex()
	if err != nil {
		return nil, err
	}
	return slices.Sorted(maps.Keys(idx)), nil
}

func (d *Dir) LoadRaw(name string) (*ir.Node, error) {
	idx, err := d.getIndex()
	if err != nil {
		return nil, err
	}
	path, ok := idx[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q in %s", ErrNotFound, name, d.label)
	}
	if doc, ok := d.docs.Get(path); ok {
		return doc.Clone(), nil
	}
	data, err := fs.ReadFile(d.fsys, path)
	if err != nil {
		return nil, fmt.Errorf("could not read %s: %w", path, err)
	}
	f, _ := format.FromPath(path)
	doc, err := parse.Parse(data, parse.ParseFormat(f), parse.WithFilename(path))
	if err != nil {
		return nil, err
	}
	if doc.Type != ir.ObjectType {
		return nil, fmt.Errorf("%w: %s holds %s", ErrNotAMap, path, doc.Type)
	}
	if debug.Source() {
		debug.Logf("source: loaded %q from %s\n", name, path)
	}
	d.docs.Add(path, doc)
	return doc.Clone(), nil
}

func (d *Dir) getIndex() (map[string]string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.index != nil {
		return d.index, nil
	}
	idx := map[string]string{}
	err := fs.WalkDir(d.fsys, ".", func(path string, e fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if e.IsDir() {
			if path != "." && strings.HasPrefix(e.Name(), ".") {
				return fs.SkipDir
			}
			return nil
		}
		if _, ok := format.FromPath(path); !ok {
			return nil
		}
		name := format.TrimSuffix(path)
		if prev, dup := idx[name]; dup {
			d.log.Warn("duplicate schema name ignored", "name", name, "path", path, "using", prev)
			return nil
		}
		idx[name] = path
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", d.label, err)
	}
	d.index = idx
	return idx, nil
}
