package plan

import (
	"strings"

	"github.com/tidwall/btree"
)

// Database maps a relation name to the file storing it and knows how to build
// the reader sub plan of a relation, which depends on the file format.
type Database struct {
	b         *Builder
	relations *btree.Map[string, string]
}

func NewDatabase(b *Builder) *Database {
	return &Database{
		b:         b,
		relations: btree.NewMap[string, string](0),
	}
}

func (self *Database) AddRelation(name, file string) error {
	if _, ok := self.relations.Get(name); ok {
		return &DuplicateRelationError{Name: name}
	}
	self.relations.Set(name, file)
	return nil
}

func (self *Database) File(name string) (string, bool) {
	return self.relations.Get(name)
}

// Relations returns the relation names in ascending order
func (self *Database) Relations() []string {
	out := make([]string, 0, self.relations.Len())
	self.relations.Scan(func(k, _ string) bool {
		out = append(out, k)
		return true
	})
	return out
}

// ReaderFor builds the plan reading the columns of a relation. A csv file is
// read entirely and projected, a columnar file gets one reader per column
// glued together by union.
func (self *Database) ReaderFor(name string, columns []int) (*Node, error) {
	file, ok := self.relations.Get(name)
	if !ok {
		return nil, &UnknownRelationError{Name: name}
	}

	switch {
	case strings.HasSuffix(file, "csv"):
		csv, err := self.b.Create("csv read")
		if err != nil {
			return nil, err
		}
		if _, err := csv.File(file); err != nil {
			return nil, err
		}
		proj, err := self.b.Create("project", csv)
		if err != nil {
			return nil, err
		}
		return proj.SetOption("cols", append([]int{}, columns...))

	case strings.HasSuffix(file, "byoo"):
		readers := make([]*Node, 0, len(columns))
		for _, c := range columns {
			r, err := self.b.Create("columnar read")
			if err != nil {
				return nil, err
			}
			if _, err := r.File(file); err != nil {
				return nil, err
			}
			if _, err := r.SetOption("col", c); err != nil {
				return nil, err
			}
			readers = append(readers, r)
		}
		return self.b.Create("union", readers...)

	default:
		return nil, &UnknownFileTypeError{File: file}
	}
}
