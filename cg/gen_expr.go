package cg

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dianpeng/byoo/predicate"
	"github.com/pkg/errors"
)

// expression generation, every sub expression is parenthesized so the awk
// precedence never matters
type exprCodeGen struct {
	table string
	o     strings.Builder
}

// table.N maps to the awk field $(N+1)
func (self *exprCodeGen) field(col string) (string, error) {
	table, column, ok := strings.Cut(col, ".")
	if !ok || table != self.table {
		return "", errors.Errorf("column %s does not belong to relation %s", col, self.table)
	}
	idx, err := strconv.Atoi(column)
	if err != nil || idx < 0 {
		return "", errors.Errorf("column %s must be a non-negative column index", col)
	}
	return fmt.Sprintf("$%d", idx+1), nil
}

func isNumeric(v string) bool {
	v = strings.TrimPrefix(v, "-")
	whole, frac, hasFrac := strings.Cut(v, ".")
	if !isDigits(whole) {
		return false
	}
	return !hasFrac || isDigits(frac)
}

func isDigits(v string) bool {
	if v == "" {
		return false
	}
	for _, c := range v {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// A literal is kept raw when numeric, a quoted literal loses its quotes and
// becomes an awk string, any other bare word is quoted as well.
func literal(v string) string {
	if isNumeric(v) {
		return v
	}
	if len(v) >= 2 && (v[0] == '\'' || v[0] == '"') && v[len(v)-1] == v[0] {
		return awkString(v[1 : len(v)-1])
	}
	return awkString(v)
}

func awkCompOp(op int) (string, error) {
	switch op {
	case predicate.OpEq:
		return "==", nil
	case predicate.OpGt:
		return ">", nil
	case predicate.OpGte:
		return ">=", nil
	case predicate.OpLt:
		return "<", nil
	case predicate.OpLte:
		return "<=", nil
	default:
		return "", errors.Errorf("unknown comparison operator %d", op)
	}
}

func (self *exprCodeGen) genComparison(c *predicate.Comparison) error {
	var lhs, rhs string
	var err error

	if c.Operand == predicate.OperandColCol {
		if lhs, err = self.field(c.Col1); err != nil {
			return err
		}
		if rhs, err = self.field(c.Col2); err != nil {
			return err
		}
	} else {
		if lhs, err = self.field(c.Col); err != nil {
			return err
		}
		rhs = literal(c.Val)
	}

	if c.Op == predicate.OpContains {
		self.o.WriteString(fmt.Sprintf("(index(%s, %s) > 0)", lhs, rhs))
		return nil
	}

	op, err := awkCompOp(c.Op)
	if err != nil {
		return err
	}
	self.o.WriteString(fmt.Sprintf("(%s %s %s)", lhs, op, rhs))
	return nil
}

func (self *exprCodeGen) gen(n predicate.Node) error {
	if n == nil {
		return errors.New("missing predicate node")
	}

	switch n.Type() {
	case predicate.NodeComparison:
		return self.genComparison(n.(*predicate.Comparison))

	case predicate.NodeLogical:
		l := n.(*predicate.Logical)
		op := "&&"
		if l.Op == predicate.OpOr {
			op = "||"
		}
		self.o.WriteString("(")
		if err := self.gen(l.L); err != nil {
			return err
		}
		self.o.WriteString(" " + op + " ")
		if err := self.gen(l.R); err != nil {
			return err
		}
		self.o.WriteString(")")
		return nil

	case predicate.NodeNot:
		self.o.WriteString("!")
		return self.gen(n.(*predicate.Not).Child)

	default:
		return errors.Errorf("unknown predicate node type %d", n.Type())
	}
}
