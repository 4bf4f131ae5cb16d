package catalog

import (
	"fmt"
	"strings"

	"github.com/tidwall/btree"
)

// The operator catalog, ie the static table describing every operator the
// byoo executor understands. The builder consults it for arity and file
// usage, nothing else. A catalog is never mutated after it is constructed,
// so one instance can be shared by any number of builders/goroutines.

const (
	ChildNone = iota
	ChildAny
	ChildExact
)

type ChildCount struct {
	Kind int
	N    int // only meaningful when Kind is ChildExact
}

func None() ChildCount       { return ChildCount{Kind: ChildNone} }
func Any() ChildCount        { return ChildCount{Kind: ChildAny} }
func Exact(n int) ChildCount { return ChildCount{Kind: ChildExact, N: n} }

// Accept reports whether n children satisfy the constraint
func (self ChildCount) Accept(n int) bool {
	switch self.Kind {
	case ChildNone:
		return n == 0
	case ChildAny:
		return true
	default:
		return n == self.N
	}
}

func (self ChildCount) String() string {
	switch self.Kind {
	case ChildNone:
		return "none"
	case ChildAny:
		return "any"
	default:
		return fmt.Sprintf("%d", self.N)
	}
}

type Entry struct {
	Name       string
	ChildCount ChildCount
	InputFile  bool
	OutputFile bool
}

// HasFile returns true when the operator reads or writes a file, which makes
// the *file* option mandatory for it.
func (self *Entry) HasFile() bool {
	return self.InputFile || self.OutputFile
}

type Catalog struct {
	entries *btree.Map[string, *Entry]
}

// Normalize maps an operator name to its canonical spelling. Underscores and
// spaces are the same thing, hash_join is hash join.
func Normalize(name string) string {
	return strings.ReplaceAll(name, "_", " ")
}

func New(entries ...Entry) (*Catalog, error) {
	c := &Catalog{
		entries: btree.NewMap[string, *Entry](0),
	}
	for _, e := range entries {
		e := e
		e.Name = Normalize(e.Name)
		if e.Name == "" {
			return nil, fmt.Errorf("operator with empty name")
		}
		if e.ChildCount.Kind == ChildExact && e.ChildCount.N < 0 {
			return nil, fmt.Errorf("operator %q has negative child count", e.Name)
		}
		if _, ok := c.entries.Get(e.Name); ok {
			return nil, fmt.Errorf("operator %q is defined more than once", e.Name)
		}
		c.entries.Set(e.Name, &e)
	}
	return c, nil
}

func (self *Catalog) Lookup(name string) (*Entry, bool) {
	e, ok := self.entries.Get(Normalize(name))
	if !ok {
		return nil, false
	}
	cp := *e
	return &cp, true
}

// Names returns the canonical operator names in ascending order
func (self *Catalog) Names() []string {
	out := make([]string, 0, self.entries.Len())
	self.entries.Scan(func(k string, _ *Entry) bool {
		out = append(out, k)
		return true
	})
	return out
}

func (self *Catalog) Len() int { return self.entries.Len() }

var defaultEntries = []Entry{
	{Name: "csv read", ChildCount: None(), InputFile: true},
	{Name: "columnar read", ChildCount: None(), InputFile: true},
	{Name: "project", ChildCount: Exact(1)},
	{Name: "filter", ChildCount: Exact(1)},
	{Name: "sort", ChildCount: Exact(1)},
	{Name: "union", ChildCount: Any()},
	{Name: "loop join", ChildCount: Exact(2)},
	{Name: "merge join", ChildCount: Exact(2)},
	{Name: "hash join", ChildCount: Exact(2)},
	{Name: "hashed groupby", ChildCount: Exact(1)},
	{Name: "sorted groupby", ChildCount: Exact(1)},
	{Name: "all rows groupby", ChildCount: Exact(1)},
	{Name: "csv out", ChildCount: Exact(1), OutputFile: true},
	{Name: "columnar out", ChildCount: Exact(1), OutputFile: true},
}

// Default returns the operator set shipped with the byoo executor
func Default() *Catalog {
	c, err := New(defaultEntries...)
	if err != nil {
		panic(err)
	}
	return c
}
