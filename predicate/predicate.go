package predicate

import (
	"bytes"
	"encoding/json"
)

// Predicate is a compiled predicate expression. It never changes after it is
// built, so it can be shared freely.
type Predicate struct {
	root Node
}

// New wraps an already built AST. The tree is owned by the predicate
// afterwards and must not be modified.
func New(root Node) *Predicate {
	return &Predicate{root: root}
}

func (self *Predicate) Root() Node { return self.root }

func (self *Predicate) String() string { return PrintNode(self.root) }

// IR form of the predicate, field order is fixed so the output is stable.
type colColJSON struct {
	Op   string `json:"op"`
	Col1 string `json:"col1"`
	Col2 string `json:"col2"`
}

type colLitJSON struct {
	Op  string `json:"op"`
	Col string `json:"col"`
	Val string `json:"val"`
}

type groupJSON struct {
	Op       string        `json:"op"`
	Children []interface{} `json:"children"`
}

func toJSONValue(n Node) (interface{}, error) {
	if n == nil {
		return nil, &UnclassifiablePredicateError{Reason: "missing node"}
	}

	switch n.Type() {
	case NodeComparison:
		c := n.(*Comparison)
		if c.Operand == OperandColCol {
			return &colColJSON{Op: CompOpName(c.Op), Col1: c.Col1, Col2: c.Col2}, nil
		}
		return &colLitJSON{Op: CompOpName(c.Op), Col: c.Col, Val: c.Val}, nil

	case NodeLogical:
		l := n.(*Logical)
		lv, err := toJSONValue(l.L)
		if err != nil {
			return nil, err
		}
		rv, err := toJSONValue(l.R)
		if err != nil {
			return nil, err
		}
		return &groupJSON{Op: LogicOpName(l.Op), Children: []interface{}{lv, rv}}, nil

	case NodeNot:
		cv, err := toJSONValue(n.(*Not).Child)
		if err != nil {
			return nil, err
		}
		return &groupJSON{Op: "not", Children: []interface{}{cv}}, nil

	default:
		return nil, &UnclassifiablePredicateError{Reason: "unknown node type"}
	}
}

// ToJson encodes the predicate into its IR, ie
//
//	{"op":"eq","col1":"t1.0","col2":"t2.1"}
//	{"op":"gt","col":"t1.3","val":"8"}
//	{"op":"not","children":[...]}
func (self *Predicate) ToJson() ([]byte, error) {
	v, err := toJSONValue(self.root)
	if err != nil {
		return nil, err
	}

	// literal may carry < > &, which must not be html escaped
	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func (self *Predicate) MarshalJSON() ([]byte, error) {
	return self.ToJson()
}
