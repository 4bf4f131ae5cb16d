package predicate

import (
	"sort"
	"strings"
)

// Queries used by the join order search to reason about a predicate. All of
// them are read only.

const (
	JoinNone  = iota // not a join predicate for the pair
	JoinTheta        // join predicate, but not an equijoin
	JoinEqui         // equijoin predicate
)

func collectColumns(n Node, out map[string]struct{}) error {
	if n == nil {
		return &UnclassifiablePredicateError{Reason: "missing node"}
	}

	switch n.Type() {
	case NodeComparison:
		for _, c := range n.(*Comparison).Columns() {
			out[c] = struct{}{}
		}
		return nil

	case NodeLogical:
		l := n.(*Logical)
		if err := collectColumns(l.L, out); err != nil {
			return err
		}
		return collectColumns(l.R, out)

	case NodeNot:
		return collectColumns(n.(*Not).Child, out)

	default:
		return &UnclassifiablePredicateError{Reason: "unknown node type"}
	}
}

func splitColumn(col string) (string, string, bool) {
	idx := strings.IndexByte(col, '.')
	if idx <= 0 || idx == len(col)-1 || strings.IndexByte(col[idx+1:], '.') >= 0 {
		return "", "", false
	}
	return col[:idx], col[idx+1:], true
}

// Validate checks the predicate can be analyzed. A predicate produced by Parse
// always passes.
func (self *Predicate) Validate() error {
	cols := map[string]struct{}{}
	if err := collectColumns(self.root, cols); err != nil {
		return err
	}
	for c := range cols {
		if _, _, ok := splitColumn(c); !ok {
			return &UnclassifiablePredicateError{
				Reason: "column " + c + " is not in format of table.column",
			}
		}
	}
	return nil
}

// RequiredColumns returns every column referenced by the predicate
func (self *Predicate) RequiredColumns() map[string]struct{} {
	out := map[string]struct{}{}
	if err := collectColumns(self.root, out); err != nil {
		return map[string]struct{}{}
	}
	return out
}

// RequiredColumnList is RequiredColumns in ascending order
func (self *Predicate) RequiredColumnList() []string {
	cols := self.RequiredColumns()
	out := make([]string, 0, len(cols))
	for c := range cols {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

func (self *Predicate) tableSet() (map[string]struct{}, error) {
	if err := self.Validate(); err != nil {
		return nil, err
	}
	out := map[string]struct{}{}
	for c := range self.RequiredColumns() {
		t, _, _ := splitColumn(c)
		out[t] = struct{}{}
	}
	return out, nil
}

// Tables returns the distinct relations referenced, in ascending order
func (self *Predicate) Tables() []string {
	set, err := self.tableSet()
	if err != nil {
		return nil
	}
	out := make([]string, 0, len(set))
	for t := range set {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// JoinKind classifies the predicate against the relation pair. Only a
// predicate whose root is a bare eq comparison is an equijoin, a conjunction
// carrying an eq term between the 2 relations is still JoinTheta.
func (self *Predicate) JoinKind(relA, relB string) (int, error) {
	set, err := self.tableSet()
	if err != nil {
		return JoinNone, err
	}

	want := map[string]struct{}{relA: {}, relB: {}}
	if len(set) != len(want) {
		return JoinNone, nil
	}
	for t := range want {
		if _, ok := set[t]; !ok {
			return JoinNone, nil
		}
	}

	if self.root.Type() == NodeComparison && self.root.(*Comparison).Op == OpEq {
		return JoinEqui, nil
	}
	return JoinTheta, nil
}

// IsJoinPredicateFor returns true when the relations referenced are exactly
// relA and relB
func (self *Predicate) IsJoinPredicateFor(relA, relB string) bool {
	k, err := self.JoinKind(relA, relB)
	return err == nil && k != JoinNone
}

func (self *Predicate) IsEquijoinPredicateFor(relA, relB string) bool {
	k, err := self.JoinKind(relA, relB)
	return err == nil && k == JoinEqui
}
