package predicate

import (
	"fmt"
	"strings"
)

// The compiled predicate. Three node types, a comparison which is always a
// leaf, a binary logical node and a unary not node. Every consumer switches on
// Type() and handles all three.

const (
	NodeComparison = iota
	NodeLogical
	NodeNot
)

const (
	OpEq = iota
	OpGt
	OpGte
	OpLt
	OpLte
	OpContains
)

const (
	OpAnd = iota
	OpOr
)

const (
	OperandColCol = iota // col1 op col2
	OperandColLit        // col op literal
)

func CompOpName(op int) string {
	switch op {
	case OpEq:
		return "eq"
	case OpGt:
		return "gt"
	case OpGte:
		return "gte"
	case OpLt:
		return "lt"
	case OpLte:
		return "lte"
	case OpContains:
		return "contains"
	default:
		return "unknown"
	}
}

// symbol used in the predicate text
func CompOpSymbol(op int) string {
	switch op {
	case OpEq:
		return "="
	case OpGt:
		return ">"
	case OpGte:
		return ">="
	case OpLt:
		return "<"
	case OpLte:
		return "<="
	case OpContains:
		return "contains"
	default:
		return "?"
	}
}

func compOpFromText(text string) (int, bool) {
	switch strings.ToLower(text) {
	case "=":
		return OpEq, true
	case ">":
		return OpGt, true
	case ">=":
		return OpGte, true
	case "<":
		return OpLt, true
	case "<=":
		return OpLte, true
	case "contains":
		return OpContains, true
	default:
		return -1, false
	}
}

func LogicOpName(op int) string {
	switch op {
	case OpAnd:
		return "and"
	case OpOr:
		return "or"
	default:
		return "unknown"
	}
}

func logicOpFromText(text string) (int, bool) {
	switch strings.ToLower(text) {
	case "and":
		return OpAnd, true
	case "or":
		return OpOr, true
	default:
		return -1, false
	}
}

type Node interface {
	Type() int
	String() string
}

type Comparison struct {
	Op      int
	Operand int

	// OperandColCol
	Col1 string
	Col2 string

	// OperandColLit, Val is the raw literal text
	Col string
	Val string
}

type Logical struct {
	Op int
	L  Node
	R  Node
}

type Not struct {
	Child Node
}

func (self *Comparison) Type() int { return NodeComparison }
func (self *Logical) Type() int    { return NodeLogical }
func (self *Not) Type() int        { return NodeNot }

func (self *Comparison) String() string { return PrintNode(self) }
func (self *Logical) String() string    { return PrintNode(self) }
func (self *Not) String() string        { return PrintNode(self) }

// Columns returns the column references of the comparison, 1 or 2 of them
func (self *Comparison) Columns() []string {
	if self.Operand == OperandColCol {
		return []string{self.Col1, self.Col2}
	}
	return []string{self.Col}
}

func NewColCol(op int, col1, col2 string) *Comparison {
	return &Comparison{
		Op:      op,
		Operand: OperandColCol,
		Col1:    col1,
		Col2:    col2,
	}
}

func NewColLit(op int, col, val string) *Comparison {
	return &Comparison{
		Op:      op,
		Operand: OperandColLit,
		Col:     col,
		Val:     val,
	}
}

// Stringify the AST. The output is fully parenthesized and parses back into
// the very same tree.
func doPrintNode(n Node, buf *strings.Builder) {
	if n == nil {
		buf.WriteString("<nil>")
		return
	}

	switch n.Type() {
	case NodeComparison:
		c := n.(*Comparison)
		if c.Operand == OperandColCol {
			buf.WriteString(fmt.Sprintf("%s %s %s", c.Col1, CompOpSymbol(c.Op), c.Col2))
		} else {
			buf.WriteString(fmt.Sprintf("%s %s %s", c.Col, CompOpSymbol(c.Op), c.Val))
		}
		break

	case NodeLogical:
		l := n.(*Logical)
		buf.WriteString("(")
		doPrintNode(l.L, buf)
		buf.WriteString(" ")
		buf.WriteString(LogicOpName(l.Op))
		buf.WriteString(" ")
		doPrintNode(l.R, buf)
		buf.WriteString(")")
		break

	case NodeNot:
		buf.WriteString("not ")
		doPrintNode(n.(*Not).Child, buf)
		break

	default:
		panic("unreachable")
	}
}

func PrintNode(n Node) string {
	buf := &strings.Builder{}
	doPrintNode(n, buf)
	return buf.String()
}
