package plan

import (
	"fmt"

	"github.com/dianpeng/byoo/catalog"
)

// Construction of a byoo operator tree. Every operator is created through the
// Builder, which validates the name and the number of children against the
// catalog. Options can be attached afterwards, the file requirement is only
// checked during serialization since the file option is normally set after
// the node is created.

const (
	OptionTypes = "types"
	OptionFile  = "file"
)

type Builder struct {
	catalog *catalog.Catalog
}

func NewBuilder(c *catalog.Catalog) *Builder {
	return &Builder{
		catalog: c,
	}
}

func (self *Builder) Catalog() *catalog.Catalog { return self.catalog }

type Node struct {
	op       string
	entry    *catalog.Entry
	children []*Node
	options  *Options
	parent   *Node
}

// Create makes a new operator node, the node takes ownership of children. A
// plan is a tree, so a node already owned by another one, or passed twice,
// is rejected and nothing is attached.
func (self *Builder) Create(op string, children ...*Node) (*Node, error) {
	entry, ok := self.catalog.Lookup(op)
	if !ok {
		return nil, &UnknownOperatorError{Op: op}
	}
	if !entry.ChildCount.Accept(len(children)) {
		return nil, &InvalidChildCountError{
			Op:       entry.Name,
			Expected: entry.ChildCount,
			Actual:   len(children),
		}
	}
	seen := map[*Node]bool{}
	for idx, c := range children {
		if c == nil {
			return nil, fmt.Errorf("operator %s has nil child at %d", entry.Name, idx)
		}
		if c.parent != nil || seen[c] {
			return nil, &ChildOwnedError{Op: entry.Name, Child: c.op, Index: idx}
		}
		seen[c] = true
	}

	n := &Node{
		op:       entry.Name,
		entry:    entry,
		children: append([]*Node(nil), children...),
		options:  NewOptions(),
	}
	for _, c := range children {
		c.parent = n
	}
	return n, nil
}

// Parent returns the node owning this one, nil for a root
func (self *Node) Parent() *Node { return self.parent }

func (self *Node) Op() string           { return self.op }
func (self *Node) Entry() catalog.Entry { return *self.entry }
func (self *Node) Options() *Options    { return self.options.DeepClone() }
func (self *Node) Children() []*Node    { return append([]*Node(nil), self.children...) }

func (self *Node) Option(key string) (interface{}, bool) {
	v, ok := self.options.Get(key)
	return cloneValue(v), ok
}

var typeCode = map[rune]string{
	'i': "INTEGER",
	'r': "REAL",
	't': "TEXT",
	'b': "BLOB",
}

// expandTypes turns the compact per column code, ie "iitr", into the type
// name list. Unknown characters are skipped.
func expandTypes(code string) []string {
	out := []string{}
	for _, c := range code {
		if t, ok := typeCode[c]; ok {
			out = append(out, t)
		}
	}
	return out
}

func (self *Node) types(value interface{}) ([]string, error) {
	switch v := value.(type) {
	case string:
		return expandTypes(v), nil
	case []string:
		return append([]string{}, v...), nil
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, x := range v {
			s, ok := x.(string)
			if !ok {
				return nil, &InvalidOptionError{
					Op:     self.op,
					Key:    OptionTypes,
					Reason: fmt.Sprintf("type name must be string, got %T", x),
				}
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, &InvalidOptionError{
			Op:     self.op,
			Key:    OptionTypes,
			Reason: fmt.Sprintf("expect a type code string or a list of type name, got %T", value),
		}
	}
}

// SetOption attaches an option to the node. Two keys are special, *types*
// which accepts the compact type code and *file* which is only allowed for
// operator reading or writing a file.
func (self *Node) SetOption(key string, value interface{}) (*Node, error) {
	switch key {
	case OptionTypes:
		t, err := self.types(value)
		if err != nil {
			return nil, err
		}
		self.options.Set(key, t)
		break

	case OptionFile:
		if !self.entry.HasFile() {
			return nil, &OperatorFileError{Op: self.op, Expected: false}
		}
		path, ok := value.(string)
		if !ok {
			return nil, &InvalidOptionError{
				Op:     self.op,
				Key:    OptionFile,
				Reason: fmt.Sprintf("file must be a string path, got %T", value),
			}
		}
		self.options.Set(key, path)
		break

	default:
		self.options.Set(key, cloneValue(value))
		break
	}
	return self, nil
}

func (self *Node) File(path string) (*Node, error) {
	return self.SetOption(OptionFile, path)
}

func (self *Node) Types(value interface{}) (*Node, error) {
	return self.SetOption(OptionTypes, value)
}

// Serialize generates the IR of the whole tree. It is computed every time, so
// a node modified after serialization produces the new state.
func (self *Node) Serialize() (*IR, error) {
	hasFile := self.options.Has(OptionFile)
	if self.entry.HasFile() && !hasFile {
		return nil, &OperatorFileError{Op: self.op, Expected: true}
	} else if !self.entry.HasFile() && hasFile {
		return nil, &OperatorFileError{Op: self.op, Expected: false}
	}

	out := &IR{
		Op: self.op,
	}
	if self.options.Len() > 0 {
		out.Options = self.options.DeepClone()
	}
	for _, c := range self.children {
		ir, err := c.Serialize()
		if err != nil {
			return nil, err
		}
		out.Input = append(out.Input, ir)
	}
	return out, nil
}
