package predicate

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

// dump the parse tree in a lisp like form, parenthesis kept
func dumpParseTree(n *ParseNode) string {
	switch n.Type {
	case ParseTerm:
		return n.Term.Col + " " + n.Term.Op + " " + n.Term.Rhs
	case ParseNot:
		return "(not " + dumpParseTree(n.L) + ")"
	case ParseParen:
		return "[" + dumpParseTree(n.L) + "]"
	default:
		return "(" + n.Op + " " + dumpParseTree(n.L) + ", " + dumpParseTree(n.R) + ")"
	}
}

func doTestParse(expect, src string, assert *assert.Assertions) {
	tree, err := newParser(src).Parse()
	if !assert.NoError(err, src) {
		return
	}
	assert.Equal(expect, dumpParseTree(tree), src)
}

func TestParseTerm(t *testing.T) {
	assert := assert.New(t)
	doTestParse("t1.0 = t2.1", "t1.0 = t2.1", assert)
	doTestParse("t1.3 > 8", "t1.3 > 8", assert)
	doTestParse("t1.3 >= 8", "t1.3>=8", assert)
	doTestParse("t1.name contains 'abc'", "t1.name contains 'abc'", assert)

	tree, err := newParser("t1.0 = t2.1").Parse()
	assert.NoError(err)
	assert.True(tree.Term.RhsIsCol)

	tree, err = newParser("t1.0 = 1").Parse()
	assert.NoError(err)
	assert.False(tree.Term.RhsIsCol)
}

func TestParseAssociativity(t *testing.T) {
	assert := assert.New(t)
	doTestParse("(or (and a.1 = 1, a.2 = 2), a.3 = 3)", "a.1 = 1 and a.2 = 2 or a.3 = 3", assert)
	doTestParse("(and (or a.1 = 1, a.2 = 2), a.3 = 3)", "a.1 = 1 or a.2 = 2 and a.3 = 3", assert)
	doTestParse("(and (and a.1 = 1, a.2 = 2), a.3 = 3)", "a.1 = 1 and a.2 = 2 and a.3 = 3", assert)
	doTestParse("(and a.1 = 1, [(or a.2 = 2, a.3 = 3)])", "a.1 = 1 and (a.2 = 2 or a.3 = 3)", assert)
}

func TestParseNotPrecedence(t *testing.T) {
	assert := assert.New(t)
	doTestParse("(or (not t1.1 = t2.1), t1.2 = t2.2)", "not t1.1 = t2.1 or t1.2 = t2.2", assert)
	doTestParse("(not [(or t1.1 = t2.1, t1.2 = t2.2)])", "not (t1.1 = t2.1 or t1.2 = t2.2)", assert)
	doTestParse("(not (not a.1 = 1))", "not not a.1 = 1", assert)
	doTestParse("(and a.1 = 1, (not a.2 = 2))", "a.1 = 1 and not a.2 = 2", assert)
}

func TestParseNesting(t *testing.T) {
	assert := assert.New(t)
	doTestParse("[[[a.1 = 1]]]", "(((a.1 = 1)))", assert)

	src := ""
	expect := ""
	for i := 0; i < 500; i++ {
		src += "not ("
		expect += "(not ["
	}
	src += "a.1 = 1"
	expect += "a.1 = 1"
	for i := 0; i < 500; i++ {
		src += ")"
		expect += "])"
	}
	doTestParse(expect, src, assert)
}

func TestParseCodeInfo(t *testing.T) {
	assert := assert.New(t)
	tree, err := newParser("  not (a.1 = 1) or b.2 < 3 ").Parse()
	assert.NoError(err)
	assert.Equal("not (a.1 = 1) or b.2 < 3", tree.CodeInfo.Snippet)
	assert.Equal("not (a.1 = 1)", tree.L.CodeInfo.Snippet)
	assert.Equal("(a.1 = 1)", tree.L.L.CodeInfo.Snippet)
	assert.Equal("b.2 < 3", tree.R.CodeInfo.Snippet)
}

func TestParseError(t *testing.T) {
	assert := assert.New(t)

	one := func(src string, token string, col int) {
		_, err := newParser(src).Parse()
		var se *SyntaxError
		if !assert.True(errors.As(err, &se), src) {
			return
		}
		assert.Equal(token, se.Token, src)
		assert.Equal(col, se.Col, src)
		assert.Equal(1, se.Line, src)
	}

	one("", "<eof>", 1)
	one("   ", "<eof>", 4)
	one("t1.0", "<eof>", 5)
	one("t1.0 =", "<eof>", 7)
	one("t1.0 = and", "and", 8)
	one("8 = t1.0", "8", 1)
	one("t1.0 t2.0", "t2.0", 6)
	one("(t1.0 = 1", "<eof>", 10)
	one("t1.0 = 1)", ")", 9)
	one("t1.0 = 1 and", "<eof>", 13)
	one("t1.0 = 1 t1.2 = 3", "t1.2", 10)
	one("not", "<eof>", 4)
	one("t1.0 = @", "@", 8)
	one("()", ")", 2)
}
