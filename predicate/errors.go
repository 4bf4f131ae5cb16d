package predicate

import (
	"fmt"
)

type SyntaxError struct {
	Pos   int    // byte offset of the offending token
	Line  int    // 1 based
	Col   int    // 1 based
	Token string // text of the offending token
	Msg   string
}

func (self *SyntaxError) Error() string {
	return fmt.Sprintf(
		"around position(%d: %d): %s, near %q",
		self.Line,
		self.Col,
		self.Msg,
		self.Token,
	)
}

// Predicate that cannot be reasoned about, ie a hand built tree with a
// missing operand or a column that is not table.column
type UnclassifiablePredicateError struct {
	Reason string
}

func (self *UnclassifiablePredicateError) Error() string {
	return fmt.Sprintf("unclassifiable predicate: %s", self.Reason)
}
