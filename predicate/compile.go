package predicate

// Lowering of the parse tree into the AST. It is a single depth first walk
// which maintains a stack of attach point. Every new node is attached to the
// current top of the stack, a logical/not node is pushed while its operands
// are walked and popped afterwards. Parenthesis does not generate anything.

type compiler struct {
	root  Node
	stack []Node
}

func (self *compiler) top() Node {
	if len(self.stack) == 0 {
		return nil
	}
	return self.stack[len(self.stack)-1]
}

func (self *compiler) push(n Node) { self.stack = append(self.stack, n) }
func (self *compiler) pop()        { self.stack = self.stack[:len(self.stack)-1] }

func (self *compiler) attach(n Node) error {
	top := self.top()
	if top == nil {
		if self.root != nil {
			return &UnclassifiablePredicateError{Reason: "more than one root"}
		}
		self.root = n
		return nil
	}

	switch top.Type() {
	case NodeLogical:
		l := top.(*Logical)
		if l.L == nil {
			l.L = n
		} else if l.R == nil {
			l.R = n
		} else {
			return &UnclassifiablePredicateError{Reason: "logical node has more than 2 operands"}
		}
		break

	case NodeNot:
		not := top.(*Not)
		if not.Child != nil {
			return &UnclassifiablePredicateError{Reason: "not node has more than 1 operand"}
		}
		not.Child = n
		break

	default:
		return &UnclassifiablePredicateError{Reason: "comparison cannot have operand"}
	}
	return nil
}

func (self *compiler) compileTerm(t *Term) (Node, error) {
	op, ok := compOpFromText(t.Op)
	if !ok {
		return nil, &UnclassifiablePredicateError{Reason: "unknown comparison operator " + t.Op}
	}
	if t.RhsIsCol {
		return NewColCol(op, t.Col, t.Rhs), nil
	}
	return NewColLit(op, t.Col, t.Rhs), nil
}

func (self *compiler) walk(n *ParseNode) error {
	switch n.Type {
	case ParseTerm:
		c, err := self.compileTerm(n.Term)
		if err != nil {
			return err
		}
		return self.attach(c)

	case ParseParen:
		return self.walk(n.L)

	case ParseNot:
		not := &Not{}
		if err := self.attach(not); err != nil {
			return err
		}
		self.push(not)
		if err := self.walk(n.L); err != nil {
			return err
		}
		self.pop()
		return nil

	case ParseBinary:
		op, ok := logicOpFromText(n.Op)
		if !ok {
			return &UnclassifiablePredicateError{Reason: "unknown logical operator " + n.Op}
		}
		l := &Logical{Op: op}
		if err := self.attach(l); err != nil {
			return err
		}
		self.push(l)
		if err := self.walk(n.L); err != nil {
			return err
		}
		if err := self.walk(n.R); err != nil {
			return err
		}
		self.pop()
		return nil

	default:
		return &UnclassifiablePredicateError{Reason: "unknown parse node"}
	}
}

func compile(tree *ParseNode) (Node, error) {
	c := &compiler{}
	if err := c.walk(tree); err != nil {
		return nil, err
	}
	if c.root == nil {
		return nil, &UnclassifiablePredicateError{Reason: "empty predicate"}
	}
	return c.root, nil
}

// Parse compiles the predicate text into a Predicate
func Parse(text string) (*Predicate, error) {
	tree, err := newParser(text).Parse()
	if err != nil {
		return nil, err
	}
	root, err := compile(tree)
	if err != nil {
		return nil, err
	}
	return &Predicate{root: root}, nil
}
