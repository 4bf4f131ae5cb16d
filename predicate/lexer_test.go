package predicate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLexParen(t *testing.T) {
	assert := assert.New(t)
	l := newLexer(" ( ) ")
	assert.Equal(TkLPar, l.Next())
	assert.Equal(TkRPar, l.Next())
	assert.Equal(TkEof, l.Next())
	assert.Equal(TkEof, l.Next())
}

func TestLexCOp(t *testing.T) {
	assert := assert.New(t)
	l := newLexer("= > >= < <= contains CONTAINS >=<")

	for _, expect := range []string{"=", ">", ">=", "<", "<=", "contains", "contains", ">="} {
		assert.Equal(TkCOp, l.Next())
		assert.Equal(expect, l.Lexeme.Text)
	}
	assert.Equal(TkCOp, l.Next())
	assert.Equal("<", l.Lexeme.Text)
	assert.Equal(TkEof, l.Next())
}

func TestLexKeyword(t *testing.T) {
	assert := assert.New(t)
	l := newLexer("not and or NOT And OR notx andy")

	assert.Equal(TkNot, l.Next())
	assert.Equal(TkLOp, l.Next())
	assert.Equal("and", l.Lexeme.Text)
	assert.Equal(TkLOp, l.Next())
	assert.Equal("or", l.Lexeme.Text)
	assert.Equal(TkNot, l.Next())
	assert.Equal(TkLOp, l.Next())
	assert.Equal("and", l.Lexeme.Text)
	assert.Equal(TkLOp, l.Next())
	assert.Equal("or", l.Lexeme.Text)

	// keyword prefix is just a bare literal
	assert.Equal(TkLiteral, l.Next())
	assert.Equal("notx", l.Lexeme.Text)
	assert.Equal(TkLiteral, l.Next())
	assert.Equal("andy", l.Lexeme.Text)
	assert.Equal(TkEof, l.Next())
}

func TestLexColAndLiteral(t *testing.T) {
	assert := assert.New(t)
	l := newLexer(`t1.0 T2.Name 8 -3 1.5 -2.25 abc 'x y' "z"`)

	assert.Equal(TkCol, l.Next())
	assert.Equal("t1.0", l.Lexeme.Text)
	assert.Equal(TkCol, l.Next())
	assert.Equal("T2.Name", l.Lexeme.Text)

	for _, expect := range []string{"8", "-3", "1.5", "-2.25", "abc", "'x y'", `"z"`} {
		assert.Equal(TkLiteral, l.Next())
		assert.Equal(expect, l.Lexeme.Text)
	}
	assert.Equal(TkEof, l.Next())
}

func TestLexPosition(t *testing.T) {
	assert := assert.New(t)
	l := newLexer("t1.0\n  = 5")
	assert.Equal(TkCol, l.Next())
	assert.Equal(0, l.Start)
	assert.Equal(TkCOp, l.Next())
	assert.Equal(7, l.Start)

	line, col := position(l.Source, l.Start)
	assert.Equal(2, line)
	assert.Equal(3, col)
}

func TestLexError(t *testing.T) {
	assert := assert.New(t)

	for _, src := range []string{
		"@",
		"!",
		"-",
		"t1.",
		"t1.0.1",
		"1.2.3",
		"-1x",
		"'open",
		"\xff",
	} {
		l := newLexer(src)
		assert.Equal(TkError, l.Next(), src)
	}
}
