package predicate

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	TkLPar = iota
	TkRPar
	TkNot
	TkCOp // comparison operator, lexeme holds one of = > >= < <= contains
	TkLOp // logical operator, lexeme holds and/or
	TkLiteral
	TkCol

	TkError
	TkEof
)

func tokenName(tk int) string {
	switch tk {
	case TkLPar:
		return "'('"
	case TkRPar:
		return "')'"
	case TkNot:
		return "NOT"
	case TkCOp:
		return "C_OP"
	case TkLOp:
		return "L_OP"
	case TkLiteral:
		return "LITERAL"
	case TkCol:
		return "COL"
	case TkError:
		return "<error>"
	default:
		return "<eof>"
	}
}

type Lexeme struct {
	Text string
}

type Lexer struct {
	Source string
	Cursor int
	Start  int // start offset of the current token
	Token  int
	Lexeme Lexeme
}

func newLexer(source string) *Lexer {
	return &Lexer{
		Source: source,
		Cursor: 0,
		Token:  TkError,
	}
}

func (self *Lexer) nextRune() (rune, int) {
	if self.Cursor >= len(self.Source) {
		return utf8.RuneError, 0
	}
	return utf8.DecodeRuneInString(self.Source[self.Cursor:])
}

func (self *Lexer) peekRune(off int) rune {
	if self.Cursor+off >= len(self.Source) {
		return utf8.RuneError
	}
	r, _ := utf8.DecodeRuneInString(self.Source[self.Cursor+off:])
	return r
}

func (self *Lexer) yield(tk int, sz int) int {
	self.Token = tk
	self.Lexeme.Text = self.Source[self.Cursor : self.Cursor+sz]
	self.Cursor += sz
	return tk
}

func (self *Lexer) eof() int {
	self.Token = TkEof
	self.Lexeme.Text = ""
	return TkEof
}

// position translate a byte offset into 1 based line and column
func position(source string, where int) (int, int) {
	line := 1
	col := 1
	for idx, r := range source {
		if idx >= where {
			break
		}
		if r == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return line, col
}

func (self *Lexer) err(msg string) int {
	self.Lexeme.Text = msg
	self.Token = TkError
	return TkError
}

func (self *Lexer) errUtf8() int {
	return self.err("invalid utf8 character")
}

func (self *Lexer) isIdChar(r rune) bool {
	return r == '_' || (r < utf8.RuneSelf && (unicode.IsLetter(r) || unicode.IsDigit(r)))
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func (self *Lexer) scanWord(from int) int {
	c := from
	for c < len(self.Source) {
		r, sz := utf8.DecodeRuneInString(self.Source[c:])
		if !self.isIdChar(r) {
			break
		}
		c += sz
	}
	return c
}

// Quoted literal, the lexeme keeps the quote, since the literal is handed over
// to the executor verbatim without any coercion.
func (self *Lexer) lexStr(quote rune) int {
	c := self.Cursor + 1
	for {
		if c >= len(self.Source) {
			return self.err("string literal is not closed by quote properly")
		}
		r, sz := utf8.DecodeRuneInString(self.Source[c:])
		if r == utf8.RuneError && sz == 1 {
			return self.errUtf8()
		}
		c += sz
		if r == quote {
			break
		}
	}
	return self.yield(TkLiteral, c-self.Cursor)
}

// -?digits(.digits)?
func (self *Lexer) lexNum() int {
	c := self.Cursor
	if self.Source[c] == '-' {
		c++
	}
	end := self.scanWord(c)
	if !isDigits(self.Source[c:end]) {
		return self.err("malformed numeric literal")
	}
	if end < len(self.Source) && self.Source[end] == '.' {
		frac := self.scanWord(end + 1)
		if !isDigits(self.Source[end+1 : frac]) {
			return self.err("malformed numeric literal")
		}
		end = frac
	}
	if end < len(self.Source) && self.Source[end] == '.' {
		return self.err("malformed numeric literal")
	}
	return self.yield(TkLiteral, end-self.Cursor)
}

func (self *Lexer) keyword(w string) (int, bool) {
	switch strings.ToLower(w) {
	case "not":
		return TkNot, true
	case "and", "or":
		return TkLOp, true
	case "contains":
		return TkCOp, true
	default:
		return TkError, false
	}
}

// A word is either a keyword, a dotted column reference, a number or a bare
// literal. Column references are exactly table.column.
func (self *Lexer) lexWord() int {
	end := self.scanWord(self.Cursor)
	word := self.Source[self.Cursor:end]

	if end < len(self.Source) && self.Source[end] == '.' {
		next := self.scanWord(end + 1)
		if next == end+1 {
			return self.err("expect a column name after '.'")
		}
		if next < len(self.Source) && self.Source[next] == '.' {
			return self.err("column reference must be in format of table.column")
		}
		if isDigits(word) && isDigits(self.Source[end+1:next]) {
			return self.yield(TkLiteral, next-self.Cursor)
		}
		return self.yield(TkCol, next-self.Cursor)
	}

	if tk, ok := self.keyword(word); ok {
		self.yield(tk, end-self.Cursor)
		self.Lexeme.Text = strings.ToLower(self.Lexeme.Text)
		return tk
	}
	return self.yield(TkLiteral, end-self.Cursor)
}

func (self *Lexer) Next() int {
	if self.Token == TkEof {
		return TkEof
	}
	return self.next()
}

func (self *Lexer) next() int {
	for {
		self.Start = self.Cursor
		c, sz := self.nextRune()
		if c == utf8.RuneError {
			if sz == 0 {
				return self.eof()
			} else {
				return self.errUtf8()
			}
		}

		switch c {
		case '(':
			return self.yield(TkLPar, 1)
		case ')':
			return self.yield(TkRPar, 1)

		case '=':
			return self.yield(TkCOp, 1)

		case '>', '<':
			if self.peekRune(1) == '=' {
				return self.yield(TkCOp, 2)
			}
			return self.yield(TkCOp, 1)

		case '\'', '"':
			return self.lexStr(c)

		case '-':
			if r := self.peekRune(1); r >= '0' && r <= '9' {
				return self.lexNum()
			}
			return self.err("unexpected character '-'")

		case ' ', '\r', '\t', '\n', '\b', '\v', '\f':
			self.Cursor += sz
			break

		default:
			if self.isIdChar(c) {
				return self.lexWord()
			}
			return self.err(fmt.Sprintf("unexpected character %q", c))
		}
	}
}

// text of the current token, used by diagnostic
func (self *Lexer) tokenText() string {
	if self.Token == TkEof {
		return tokenName(TkEof)
	}
	end := self.Cursor
	if self.Token == TkError {
		_, sz := utf8.DecodeRuneInString(self.Source[self.Start:])
		end = self.Start + sz
	}
	if end > len(self.Source) {
		end = len(self.Source)
	}
	return self.Source[self.Start:end]
}
