package cg

import (
	"fmt"
	"strings"
)

// A tiny writer used to lay out the awk program. Every rule is emitted on its
// own line so the output is easy to read and diff.
type awkWriter struct {
	buf *strings.Builder
}

func newAwkWriter() *awkWriter {
	return &awkWriter{
		buf: &strings.Builder{},
	}
}

func (self *awkWriter) Line(format string, args ...interface{}) {
	self.buf.WriteString(fmt.Sprintf(format, args...))
	self.buf.WriteString("\n")
}

// Rule writes a pattern action pair, an empty pattern matches every record
func (self *awkWriter) Rule(pattern string, action string) {
	if pattern == "" {
		self.Line("{ %s }", action)
	} else {
		self.Line("%s { %s }", pattern, action)
	}
}

func (self *awkWriter) String() string {
	return self.buf.String()
}

// awk string literal, only the escape sequences known by every awk are used
func awkString(s string) string {
	buf := strings.Builder{}
	buf.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\\':
			buf.WriteString(`\\`)
		case '"':
			buf.WriteString(`\"`)
		case '\n':
			buf.WriteString(`\n`)
		case '\t':
			buf.WriteString(`\t`)
		case '\r':
			buf.WriteString(`\r`)
		default:
			buf.WriteRune(r)
		}
	}
	buf.WriteByte('"')
	return buf.String()
}
