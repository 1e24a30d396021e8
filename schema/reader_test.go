package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/g2crowd/json-schema-tools/ir"
	"github.com/g2crowd/json-schema-tools/parse"
	"github.com/g2crowd/json-schema-tools/source"

	"github.com/google/go-cmp/cmp"
)

type countingSource struct {
	source.Source

	mu    sync.Mutex
	loads map[string]int
}

func (c *countingSource) LoadRaw(name string) (*ir.Node, error) {
	c.mu.Lock()
	c.loads[name]++
	c.mu.Unlock()
	return c.Source.LoadRaw(name)
}

func (c *countingSource) count(name string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loads[name]
}

func (c *countingSource) total() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, v := range c.loads {
		n += v
	}
	return n
}

func testSource(t *testing.T) *countingSource {
	t.Helper()
	d, err := source.NewDir("testdata/schemas")
	if err != nil {
		t.Fatal(err)
	}
	return &countingSource{Source: d, loads: map[string]int{}}
}

func mapSource(t *testing.T, docs map[string]string) *countingSource {
	t.Helper()
	m := source.NewMap(nil)
	for name, d := range docs {
		m.Add(name, mustJSON(t, d))
	}
	return &countingSource{Source: m, loads: map[string]int{}}
}

func mustJSON(t *testing.T, s string) *ir.Node {
	t.Helper()
	n, err := parse.ParseString(s, parse.ParseJSON())
	if err != nil {
		t.Fatalf("parsing %s: %v", s, err)
	}
	return n
}

func checkNode(t *testing.T, what string, got *ir.Node, want string) {
	t.Helper()
	w := mustJSON(t, want)
	if got == nil {
		t.Errorf("%s: missing, want %s", what, want)
		return
	}
	if !ir.Equal(got, w) {
		t.Errorf("%s mismatch (-want +got):\n%s", what, cmp.Diff(ir.ToAny(w), ir.ToAny(got)))
	}
}

// directives lists the positions of $ref and extends keys left in n
// whose values are not mappings.
func directives(n *ir.Node) []string {
	var res []string
	n.Visit(func(y *ir.Node, isPost bool) (bool, error) {
		if isPost || y.Type != ir.ObjectType {
			return true, nil
		}
		for _, k := range []string{RefKey, ExtendsKey} {
			if v := ir.Get(y, k); v != nil && v.Type != ir.ObjectType {
				res = append(res, y.Path()+"."+k)
			}
		}
		return true, nil
	})
	return res
}

func TestReadSingle(t *testing.T) {
	src := testSource(t)
	r := NewReader(src, WithScope(ScopePrivate))
	s, err := r.Read("page")
	if err != nil {
		t.Fatal(err)
	}
	if s.Name() != "page" {
		t.Errorf("Name() = %q", s.Name())
	}
	if got := s.Field("name"); got == nil || got.String != "page" {
		t.Errorf("name field = %v", got)
	}
	if diff := cmp.Diff([]string{"id", "title", "body", "tags"}, s.Properties().Keys()); diff != "" {
		t.Errorf("keys (-want +got):\n%s", diff)
	}
	checkNode(t, "tags", s.Properties().Get("tags"), `{"type": "array", "items": [{"type": "string", "maxLength": 50}]}`)
	if r.Registry().Len() == 0 {
		t.Error("registry is empty after read")
	}
}

func TestReadCached(t *testing.T) {
	src := testSource(t)
	r := NewReader(src, WithScope(ScopePrivate))
	a, err := r.Read("page")
	if err != nil {
		t.Fatal(err)
	}
	loads := src.total()
	b, err := r.Read("page")
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Error("second read returned a different schema")
	}
	if src.count("page") != 1 || src.total() != loads {
		t.Errorf("second read loaded documents: %v", src.loads)
	}
}

func TestReadInheritance(t *testing.T) {
	r := NewReader(testSource(t), WithScope(ScopePrivate))
	s, err := r.Read("lead")
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"contact", "lead"} {
		if _, ok := r.Registry().Get(name); !ok {
			t.Errorf("%s not registered", name)
		}
	}
	want := []string{"id", "first_name", "last_name", "email", "lead_source"}
	if diff := cmp.Diff(want, s.Properties().Keys()); diff != "" {
		t.Errorf("keys (-want +got):\n%s", diff)
	}
	checkNode(t, "first_name", s.Properties().Get("first_name"), `{"type": "string", "maxLength": 50}`)
	checkNode(t, "email", s.Properties().Get("email"), `{"type": "string", "format": "email"}`)
	if s.Field(ExtendsKey) != nil {
		t.Error("extends survived")
	}
	contact, _ := r.Registry().Get("contact")
	checkNode(t, "contact email", contact.Properties().Get("email"), `{"type": "string"}`)
}

func TestReadReferenceOverride(t *testing.T) {
	r := NewReader(testSource(t), WithScope(ScopePrivate))
	s, err := r.Read("includes_basic_definitions")
	if err != nil {
		t.Fatal(err)
	}
	if n := s.Properties().Len(); n != 3 {
		t.Errorf("%d properties, want 3", n)
	}
	id := s.Properties().Get("id")
	checkNode(t, "id", id, `{"type": "integer", "description": "some description", "readonly": true}`)
	if ir.Get(id, RefKey) != nil {
		t.Error("$ref survived")
	}
	checkNode(t, "created_at", s.Properties().Get("created_at"),
		`{"type": "string", "format": "date-time", "description": "Date the object was created"}`)
}

func TestReadDeepNestedRefs(t *testing.T) {
	r := NewReader(testSource(t), WithScope(ScopePrivate))
	s, err := r.Read("includes_deep_nested_refs")
	if err != nil {
		t.Fatal(err)
	}
	if s.Properties().Len() == 0 {
		t.Fatal("no properties")
	}
	checkNode(t, "id", s.Properties().Get("id"), `{"type": "integer", "description": "id of the contact", "readonly": true}`)
	contacts := s.Properties().Get("contacts")
	p, _ := ir.ParsePointer("/items/properties/id")
	checkNode(t, "contacts id", contacts.Lookup(p),
		`{"type": "integer", "description": "The object identifier", "readonly": true}`)
	if d := directives(s.Document()); len(d) != 0 {
		t.Errorf("directives left: %v", d)
	}
}

func TestReadSubFolder(t *testing.T) {
	r := NewReader(testSource(t), WithScope(ScopePrivate))
	s, err := r.Read("person")
	if err != nil {
		t.Fatal(err)
	}
	if got := s.Field("name").String; got != "person" {
		t.Errorf("name = %q", got)
	}
	want := []string{"id", "first_name", "last_name", "email", "birthday", "extends"}
	if diff := cmp.Diff(want, s.Properties().Keys()); diff != "" {
		t.Errorf("keys (-want +got):\n%s", diff)
	}
}

func TestReadAllNoDirectives(t *testing.T) {
	src := testSource(t)
	r := NewReader(src, WithScope(ScopePrivate))
	all, err := r.ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	names, _ := src.ListNames()
	if len(all) != len(names) || len(all) != r.Registry().Len() {
		t.Errorf("ReadAll returned %d schemas, %d names, registry has %d", len(all), len(names), r.Registry().Len())
	}
	for i, s := range all {
		if s.Name() != names[i] {
			t.Errorf("schema %d is %q, want %q", i, s.Name(), names[i])
		}
		if d := directives(s.Document()); len(d) != 0 {
			t.Errorf("%s: directives left: %v", s.Name(), d)
		}
	}
	client, ok := Lookup(r.Registry(), Sym("client"))
	if !ok {
		t.Fatal("client not registered")
	}
	if got := client.ToMap()["name"]; got != "client" {
		t.Errorf(`ToMap()["name"] = %v`, got)
	}
	checkNode(t, "client address", client.Properties().Get("address"),
		`{"type": "string", "maxLength": 100, "description": "City of the head office"}`)
}

func numbers() map[string]any {
	return map[string]any{
		"properties": map[string]any{
			"numbers": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "number"},
			},
		},
	}
}

func TestReadValue(t *testing.T) {
	src := testSource(t)
	r := NewReader(src, WithScope(ScopePrivate))
	s, err := r.ReadValue("numbers", numbers())
	if err != nil {
		t.Fatal(err)
	}
	if s.Name() != "numbers" || s.Field("name").String != "numbers" {
		t.Errorf("name = %q, field %v", s.Name(), s.Field("name"))
	}
	if Prop(s, Sym("numbers")) == nil {
		t.Error("numbers property missing")
	}
	if got, _ := r.Registry().Get("numbers"); got != s {
		t.Error("override not registered")
	}
	if src.total() != 0 {
		t.Errorf("override read loaded documents: %v", src.loads)
	}
	d, err := json.Marshal(s)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"name":"numbers","properties":{"numbers":{"items":{"type":"number"},"type":"array"}}}`
	if string(d) != want {
		t.Errorf("MarshalJSON = %s, want %s", d, want)
	}
}

func TestReadValueUsesRegistryAndSource(t *testing.T) {
	r := NewReader(testSource(t), WithScope(ScopePrivate))
	if _, err := r.ReadValue("numbers", numbers()); err != nil {
		t.Fatal(err)
	}
	s, err := r.ReadValue("vip", map[string]any{
		"extends": "contact",
		"properties": map[string]any{
			"numbers": map[string]any{"$ref": "numbers#/properties/numbers"},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"id", "first_name", "last_name", "email", "numbers"}
	if diff := cmp.Diff(want, s.Properties().Keys()); diff != "" {
		t.Errorf("keys (-want +got):\n%s", diff)
	}
	checkNode(t, "numbers", s.Properties().Get("numbers"), `{"items": {"type": "number"}, "type": "array"}`)
}

func TestReadInvalidArgument(t *testing.T) {
	src := testSource(t)
	r := NewReader(src, WithScope(ScopePrivate))
	tests := []struct {
		name string
		read func() (*Schema, error)
	}{
		{"empty slice", func() (*Schema, error) { return r.ReadValue("contact", []any{}) }},
		{"nil", func() (*Schema, error) { return r.ReadValue("contact", nil) }},
		{"scalar", func() (*Schema, error) { return r.ReadValue("contact", 3) }},
		{"channel", func() (*Schema, error) { return r.ReadValue("contact", make(chan int)) }},
		{"nil node", func() (*Schema, error) { return r.ReadRaw("contact", nil) }},
		{"array node", func() (*Schema, error) { return r.ReadRaw("contact", ir.FromSlice(nil)) }},
		{"empty name", func() (*Schema, error) { return r.Read("") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := tt.read()
			if !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("error = %v, want ErrInvalidArgument", err)
			}
			if s != nil {
				t.Error("got a schema")
			}
		})
	}
	if r.Registry().Len() != 0 {
		t.Errorf("registry holds %v", r.Registry().Names())
	}
	if src.total() != 0 {
		t.Errorf("documents loaded: %v", src.loads)
	}
}

func TestPrivateScope(t *testing.T) {
	ResetShared()
	t.Cleanup(ResetShared)
	r := NewReader(testSource(t), WithScope(ScopePrivate))
	s, err := r.Read("client")
	if err != nil {
		t.Fatal(err)
	}
	if s.Field("name").String != "client" || s.Properties().Len() == 0 {
		t.Errorf("unexpected client schema: %v", s.Document())
	}
	if _, err := r.Read("address"); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"address", "client"}, r.Registry().Names()); diff != "" {
		t.Errorf("names (-want +got):\n%s", diff)
	}
	if n := Shared().Len(); n != 0 {
		t.Errorf("shared registry holds %v", Shared().Names())
	}
	other := NewReader(testSource(t), WithScope(ScopePrivate))
	if other.Registry() == r.Registry() {
		t.Error("private readers share a registry")
	}
}

func TestSharedScopeReset(t *testing.T) {
	ResetShared()
	t.Cleanup(ResetShared)
	src := testSource(t)
	a, err := Read(src, "contact")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := Shared().Get("contact"); !ok {
		t.Fatal("contact not in shared registry")
	}
	b, err := NewReader(src).Read("contact")
	if err != nil {
		t.Fatal(err)
	}
	if a != b || src.count("contact") != 1 {
		t.Errorf("shared readers resolved twice, loads %d", src.count("contact"))
	}
	ResetShared()
	if Shared().Len() != 0 {
		t.Fatal("reset left entries")
	}
	c, err := Read(src, "contact")
	if err != nil {
		t.Fatal(err)
	}
	if c == a || src.count("contact") != 2 {
		t.Errorf("read after reset did not resolve again, loads %d", src.count("contact"))
	}
}

func TestPackageReadAll(t *testing.T) {
	ResetShared()
	t.Cleanup(ResetShared)
	all, err := ReadAll(testSource(t))
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != Shared().Len() {
		t.Errorf("ReadAll returned %d schemas, registry has %d", len(all), Shared().Len())
	}
	s, err := ReadValue(nil, "numbers", numbers())
	if err != nil {
		t.Fatal(err)
	}
	if got, _ := Shared().Get("numbers"); got != s {
		t.Error("numbers not in shared registry")
	}
}

func TestReadCycles(t *testing.T) {
	tests := []struct {
		name string
		read string
		docs map[string]string
	}{
		{
			name: "self reference",
			read: "self",
			docs: map[string]string{
				"self": `{"properties": {"me": {"$ref": "self"}}}`,
			},
		},
		{
			name: "through definition",
			read: "a",
			docs: map[string]string{
				"a": `{"properties": {"x": {"$ref": "b#/definitions/y"}}}`,
				"b": `{"definitions": {"y": {"type": "object", "properties": {"back": {"$ref": "a"}}}}}`,
			},
		},
		{
			name: "local definitions",
			read: "local",
			docs: map[string]string{
				"local": `{
					"definitions": {"p": {"$ref": "#/definitions/q"}, "q": {"$ref": "#/definitions/p"}},
					"properties": {"x": {"$ref": "#/definitions/p"}}
				}`,
			},
		},
		{
			name: "whole document",
			read: "whole",
			docs: map[string]string{
				"whole": `{"properties": {"x": {"$ref": "#"}}}`,
			},
		},
		{
			name: "extends",
			read: "e1",
			docs: map[string]string{
				"e1": `{"extends": "e2", "properties": {}}`,
				"e2": `{"extends": "e3"}`,
				"e3": `{"extends": "e1"}`,
			},
		},
		{
			name: "extends self",
			read: "s",
			docs: map[string]string{
				"s": `{"extends": "s"}`,
			},
		},
		{
			name: "extends through reference",
			read: "r1",
			docs: map[string]string{
				"r1": `{"properties": {"x": {"$ref": "r2"}}}`,
				"r2": `{"extends": "r1"}`,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewReader(mapSource(t, tt.docs), WithScope(ScopePrivate))
			_, err := r.Read(tt.read)
			if !errors.Is(err, ErrCyclicReference) {
				t.Fatalf("error = %v, want ErrCyclicReference", err)
			}
			var ce *CycleError
			if !errors.As(err, &ce) || len(ce.Chain) < 2 {
				t.Errorf("no cycle chain in %v", err)
			}
			if r.Registry().Len() != 0 {
				t.Errorf("registry holds %v", r.Registry().Names())
			}
		})
	}
}

func TestReadErrors(t *testing.T) {
	docs := map[string]string{
		"defs":          `{"definitions": {"typename": "string", "id": {"type": "integer"}}}`,
		"missing_doc":   `{"properties": {"x": {"$ref": "nowhere#/definitions/id"}}}`,
		"missing_frag":  `{"properties": {"x": {"$ref": "defs#/definitions/name"}}}`,
		"bad_pointer":   `{"properties": {"x": {"$ref": "defs#/definitions/~2"}}}`,
		"scalar_merge":  `{"properties": {"x": {"$ref": "defs#/definitions/typename", "description": "d"}}}`,
		"orphan":        `{"extends": "nobody", "properties": {}}`,
		"grand_orphan":  `{"extends": "orphan"}`,
		"two_parents":   `{"extends": ["defs", "orphan"]}`,
		"parent_broken": `{"extends": "missing_doc"}`,
		"number_ref":    `{"properties": {"x": {"$ref": 42, "type": "string"}}}`,
		"null_ref":      `{"properties": {"x": {"$ref": null}}}`,
		"bool_extends":  `{"properties": {"y": {"extends": true, "type": "string"}}}`,
		"number_parent": `{"extends": 7}`,
	}
	tests := []struct {
		read string
		want []error
		ref  bool
	}{
		{read: "absent", want: []error{ErrSchemaNotFound}},
		{read: "missing_doc", want: []error{ErrUnresolvedReference}, ref: true},
		{read: "missing_frag", want: []error{ErrUnresolvedReference}, ref: true},
		{read: "bad_pointer", want: []error{ErrUnresolvedReference, ir.ErrPointer}, ref: true},
		{read: "scalar_merge", want: []error{ErrUnresolvedReference}, ref: true},
		{read: "orphan", want: []error{ErrUnresolvedParent, ErrSchemaNotFound}},
		{read: "grand_orphan", want: []error{ErrUnresolvedParent, ErrSchemaNotFound}},
		{read: "two_parents", want: []error{ErrInvalidArgument}},
		{read: "parent_broken", want: []error{ErrUnresolvedReference}, ref: true},
		{read: "number_ref", want: []error{ErrUnresolvedReference}, ref: true},
		{read: "null_ref", want: []error{ErrUnresolvedReference}, ref: true},
		{read: "bool_extends", want: []error{ErrInvalidArgument}},
		{read: "number_parent", want: []error{ErrInvalidArgument}},
	}
	for _, tt := range tests {
		t.Run(tt.read, func(t *testing.T) {
			r := NewReader(mapSource(t, docs), WithScope(ScopePrivate))
			_, err := r.Read(tt.read)
			if err == nil {
				t.Fatal("no error")
			}
			for _, w := range tt.want {
				if !errors.Is(err, w) {
					t.Errorf("error %v does not match %v", err, w)
				}
			}
			var re *RefError
			if got := errors.As(err, &re); got != tt.ref {
				t.Errorf("RefError = %v, want %v: %v", got, tt.ref, err)
			}
			if errors.Is(err, ErrCyclicReference) {
				t.Errorf("unexpected cycle: %v", err)
			}
			if _, ok := r.Registry().Get(tt.read); ok {
				t.Errorf("%s registered after failure", tt.read)
			}
		})
	}
}

func TestReadScalarReference(t *testing.T) {
	src := mapSource(t, map[string]string{
		"defs": `{"definitions": {"typename": "string"}}`,
		"user": `{"properties": {"login": {"type": {"$ref": "defs#/definitions/typename"}}}}`,
	})
	r := NewReader(src, WithScope(ScopePrivate))
	s, err := r.Read("user")
	if err != nil {
		t.Fatal(err)
	}
	checkNode(t, "login", Prop(s, "login"), `{"type": "string"}`)
}

func TestReadExtendsInReference(t *testing.T) {
	src := mapSource(t, map[string]string{
		"base": `{"properties": {"id": {"type": "integer"}}}`,
		"defs": `{"definitions": {"item": {"extends": "base", "properties": {"label": {"type": "string"}}}}}`,
		"list": `{"properties": {"item": {"$ref": "defs#/definitions/item", "description": "one item"}}}`,
	})
	r := NewReader(src, WithScope(ScopePrivate))
	s, err := r.Read("list")
	if err != nil {
		t.Fatal(err)
	}
	checkNode(t, "item", s.Properties().Get("item"), `{
		"properties": {"id": {"type": "integer"}, "label": {"type": "string"}},
		"description": "one item"
	}`)
	if _, ok := r.Registry().Get("base"); !ok {
		t.Error("parent base not registered")
	}
}

func TestReadConcurrent(t *testing.T) {
	src := testSource(t)
	r := NewReader(src, WithScope(ScopePrivate))
	const n = 16
	res := make([]*Schema, n)
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res[i], errs[i] = r.Read("lead")
		}()
	}
	wg.Wait()
	for i := range n {
		if errs[i] != nil {
			t.Fatal(errs[i])
		}
		if res[i] != res[0] {
			t.Errorf("reader %d got a different schema", i)
		}
	}
	if src.count("lead") != 1 || src.count("contact") != 1 {
		t.Errorf("loads: %v", src.loads)
	}
}

func TestReaderLogs(t *testing.T) {
	buf := bytes.NewBuffer(nil)
	log := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	r := NewReader(testSource(t), WithScope(ScopePrivate), WithLogger(log))
	if _, err := r.Read("lead"); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"schema resolved", "name=lead", "parent schema resolved", "name=contact"} {
		if !strings.Contains(out, want) {
			t.Errorf("log lacks %q:\n%s", want, out)
		}
	}
}

func TestWithRegistry(t *testing.T) {
	reg := NewRegistry()
	a := NewReader(testSource(t), WithRegistry(reg))
	b := NewReader(testSource(t), WithRegistry(reg), WithScope(ScopePrivate))
	sa, err := a.Read("address")
	if err != nil {
		t.Fatal(err)
	}
	sb, err := b.Read("address")
	if err != nil {
		t.Fatal(err)
	}
	if sa != sb {
		t.Error("readers on one registry resolved twice")
	}
}

func TestPropertiesAccess(t *testing.T) {
	r := NewReader(testSource(t), WithScope(ScopePrivate))
	s, err := r.Read("lead")
	if err != nil {
		t.Fatal(err)
	}
	var keys []string
	for k, v := range s.Properties().All() {
		keys = append(keys, k)
		v.Set("mutated", ir.FromBool(true))
	}
	if diff := cmp.Diff(s.Properties().Keys(), keys); diff != "" {
		t.Errorf("All order (-Keys +All):\n%s", diff)
	}
	if ir.Get(s.Properties().Get("email"), "mutated") != nil {
		t.Error("schema mutated through All")
	}
	doc := s.Document()
	doc.Set("name", ir.FromString("changed"))
	if s.Field("name").String != "lead" {
		t.Error("schema mutated through Document")
	}
	if !ir.Equal(Prop(s, "email"), Prop(s, Sym("email"))) {
		t.Error("string and symbol keys differ")
	}
	if !s.Properties().Has("lead_source") || s.Properties().Has("nope") {
		t.Error("Has is wrong")
	}
	if Prop(s, Sym("nope")) != nil {
		t.Error("unknown property found")
	}
}

func TestAccessorCopiesAreDetached(t *testing.T) {
	src := mapSource(t, map[string]string{
		"a": `{"properties": {"x": {"type": "string"}}}`,
	})
	r := NewReader(src, WithScope(ScopePrivate))
	s, err := r.Read("a")
	if err != nil {
		t.Fatal(err)
	}
	x := s.Properties().Get("x")
	props := s.Field("properties")
	if x.Parent != nil || props.Parent != nil {
		t.Fatal("accessor copy points into the schema")
	}
	for _, v := range s.Properties().All() {
		if v.Parent != nil {
			t.Fatal("All copy points into the schema")
		}
	}
	props.Set("x", ir.FromString("changed"))
	x.Set("type", ir.FromString("integer"))
	again, err := r.Read("a")
	if err != nil {
		t.Fatal(err)
	}
	if again != s {
		t.Fatal("schema read twice")
	}
	if got, err := again.MarshalJSON(); err != nil || string(got) != `{"name":"a","properties":{"x":{"type":"string"}}}` {
		t.Errorf("schema now %s, %v", got, err)
	}
}

type slowSource struct {
	*countingSource
	delay time.Duration
}

func (s slowSource) LoadRaw(name string) (*ir.Node, error) {
	time.Sleep(s.delay)
	return s.countingSource.LoadRaw(name)
}

func TestSharedScopeSingleResolution(t *testing.T) {
	ResetShared()
	t.Cleanup(ResetShared)
	src := slowSource{
		countingSource: mapSource(t, map[string]string{
			"base": `{"properties": {"id": {"type": "integer"}}}`,
			"a":    `{"extends": "base", "properties": {"x": {"type": "string"}}}`,
			"b":    `{"extends": "base", "properties": {"y": {"type": "string"}}}`,
		}),
		delay: 20 * time.Millisecond,
	}
	const n = 8
	res := make([]*Schema, 2*n)
	errs := make([]error, 2*n)
	var wg sync.WaitGroup
	for i := range 2 * n {
		name := "a"
		if i >= n {
			name = "b"
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			res[i], errs[i] = Read(src, name)
		}()
	}
	wg.Wait()
	for i := range 2 * n {
		if errs[i] != nil {
			t.Fatal(errs[i])
		}
	}
	for i := range n {
		if res[i] != res[0] || res[n+i] != res[n] {
			t.Errorf("read %d got a different schema", i)
		}
	}
	for _, name := range []string{"a", "b", "base"} {
		if got := src.count(name); got != 1 {
			t.Errorf("%s loaded %d times", name, got)
		}
	}
}

func TestCrossReaderExtendsCycle(t *testing.T) {
	reg := NewRegistry()
	src := slowSource{
		countingSource: mapSource(t, map[string]string{
			"x": `{"extends": "y"}`,
			"y": `{"extends": "x"}`,
		}),
		delay: 20 * time.Millisecond,
	}
	names := []string{"x", "y", "x", "y"}
	errs := make([]error, len(names))
	done := make(chan struct{})
	go func() {
		defer close(done)
		var wg sync.WaitGroup
		for i, name := range names {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, errs[i] = NewReader(src, WithRegistry(reg)).Read(name)
			}()
		}
		wg.Wait()
	}()
	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("readers deadlocked")
	}
	for i, err := range errs {
		if !errors.Is(err, ErrCyclicReference) {
			t.Errorf("read %s: %v", names[i], err)
		}
	}
	if reg.Len() != 0 {
		t.Errorf("registered after cycle: %v", reg.Names())
	}
}
