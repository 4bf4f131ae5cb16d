package predicate

// Parser of the predicate language. The grammar is tiny, described as following
// EBNF
//
// term      := COL C_OP COL | COL C_OP LITERAL
// predicate := unary (L_OP unary)*
// unary     := NOT unary | '(' predicate ')' | term
//
// C_OP := '=' | '>' | '>=' | '<' | '<=' | CONTAINS
// L_OP := AND | OR
//
// AND and OR share one precedence level and are left associative, ie
// a and b or c is (a and b) or c. NOT is a prefix operator that only takes the
// next unary, so not a or b is (not a) or b. The binary part is written as
// precedence climbing, so adding a new level only needs a new entry inside of
// binPrec.
//
// The parser produces a parse tree, which keeps the parenthesis, the compiler
// then lowers it into the AST.

const (
	ParseTerm = iota
	ParseNot
	ParseParen
	ParseBinary
)

type CodeInfo struct {
	Start   int
	End     int
	Snippet string
}

type Term struct {
	Col      string
	Op       string
	Rhs      string
	RhsIsCol bool
}

type ParseNode struct {
	Type     int
	Term     *Term      // ParseTerm
	Op       string     // ParseBinary, and/or
	L        *ParseNode // ParseBinary, ParseNot and ParseParen
	R        *ParseNode // ParseBinary
	CodeInfo CodeInfo
}

type Parser struct {
	L *Lexer
}

func newParser(xx string) *Parser {
	return &Parser{
		L: newLexer(xx),
	}
}

func NewParser(xx string) *Parser {
	return newParser(xx)
}

func (self *Parser) posStart() int {
	return self.L.Start
}

func (self *Parser) snippet(start, end int) string {
	if start >= end {
		start = end
	}
	return self.L.Source[start:end]
}

func (self *Parser) codeInfo(start, end int) CodeInfo {
	return CodeInfo{
		Start:   start,
		End:     end,
		Snippet: self.snippet(start, end),
	}
}

func (self *Parser) err(msg string) error {
	line, col := position(self.L.Source, self.L.Start)
	e := &SyntaxError{
		Pos:   self.L.Start,
		Line:  line,
		Col:   col,
		Token: self.L.tokenText(),
		Msg:   msg,
	}
	if self.L.Token == TkError {
		e.Msg = self.L.Lexeme.Text
	}
	return e
}

func (self *Parser) expect(tk int) error {
	if self.L.Token == tk {
		self.L.Next()
		return nil
	} else {
		return self.err("unexpected token, expect " + tokenName(tk))
	}
}

func (self *Parser) Parse() (*ParseNode, error) {
	self.L.Next()
	if self.L.Token == TkEof {
		return nil, self.err("empty predicate")
	}

	n, _, err := self.parsePredicate()
	if err != nil {
		return nil, err
	}
	if self.L.Token != TkEof {
		return nil, self.err("dangling token after the predicate is finished")
	}
	return n, nil
}

func (self *Parser) parsePredicate() (*ParseNode, int, error) {
	return self.doParseBin(0)
}

const maxOpPrec = 1
const invalidOpPrec = -1

func (self *Parser) binPrec(tk int) int {
	switch tk {
	case TkLOp:
		return 0
	default:
		return invalidOpPrec
	}
}

// Binary parsing, precedence climbing
func (self *Parser) doParseBin(prec int) (*ParseNode, int, error) {
	if prec == maxOpPrec {
		return self.parseUnary()
	}

	start := self.posStart()

	l, end, err := self.parseUnary()
	if err != nil {
		return nil, 0, err
	}

	return self.doParseBinRest(l, prec, start, end)
}

func (self *Parser) doParseBinRest(lhs *ParseNode,
	prec int,
	start int,
	end int,
) (*ParseNode, int, error) {

	for {
		tk := self.L.Token
		nextPrec := self.binPrec(tk)

		if nextPrec == invalidOpPrec {
			break
		} else if nextPrec < prec {
			break
		}

		op := self.L.Lexeme.Text
		self.L.Next() // eat the operator token

		rhs, rend, err := self.doParseBin(nextPrec + 1)
		if err != nil {
			return nil, 0, err
		}
		end = rend

		lhs = &ParseNode{
			Type:     ParseBinary,
			Op:       op,
			L:        lhs,
			R:        rhs,
			CodeInfo: self.codeInfo(start, end),
		}
	}

	return lhs, end, nil
}

func (self *Parser) parseUnary() (*ParseNode, int, error) {
	start := self.posStart()

	switch self.L.Token {
	case TkNot:
		self.L.Next()
		operand, end, err := self.parseUnary()
		if err != nil {
			return nil, 0, err
		}
		return &ParseNode{
			Type:     ParseNot,
			L:        operand,
			CodeInfo: self.codeInfo(start, end),
		}, end, nil

	case TkLPar:
		self.L.Next()
		inner, _, err := self.parsePredicate()
		if err != nil {
			return nil, 0, err
		}
		end := self.L.Cursor
		if err := self.expect(TkRPar); err != nil {
			return nil, 0, err
		}
		return &ParseNode{
			Type:     ParseParen,
			L:        inner,
			CodeInfo: self.codeInfo(start, end),
		}, end, nil

	case TkCol:
		return self.parseTerm()

	default:
		return nil, 0, self.err("expect a column reference, 'not' or '('")
	}
}

func (self *Parser) parseTerm() (*ParseNode, int, error) {
	start := self.posStart()
	term := &Term{
		Col: self.L.Lexeme.Text,
	}

	if self.L.Next() != TkCOp {
		return nil, 0, self.err("expect a comparison operator after column reference")
	}
	term.Op = self.L.Lexeme.Text

	switch self.L.Next() {
	case TkCol:
		term.Rhs = self.L.Lexeme.Text
		term.RhsIsCol = true
		break
	case TkLiteral:
		term.Rhs = self.L.Lexeme.Text
		break
	default:
		return nil, 0, self.err("expect a column reference or a literal after comparison operator")
	}

	end := self.L.Cursor
	self.L.Next()

	return &ParseNode{
		Type:     ParseTerm,
		Term:     term,
		CodeInfo: self.codeInfo(start, end),
	}, end, nil
}
