package plan

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Printing the plan out, for debugging and visualization purpose. Each operator
// takes one line, children are indented below their parent.
//
//	project cols=[0 5]
//	  hash join left_cols=[0] right_cols=[0]
//	    csv read file=res/inputs/test1.csv types=iitir
//	    csv read file=res/inputs/test2.csv types=it

type printer struct {
	w   io.Writer
	op  *color.Color
	key *color.Color
}

func newPrinter(w io.Writer, colors bool) *printer {
	p := &printer{
		w:   w,
		op:  color.New(color.Bold, color.FgGreen),
		key: color.New(color.FgCyan),
	}
	if colors {
		p.op.EnableColor()
		p.key.EnableColor()
	} else {
		p.op.DisableColor()
		p.key.DisableColor()
	}
	return p
}

var typeName = map[string]rune{
	"INTEGER": 'i',
	"REAL":    'r',
	"TEXT":    't',
	"BLOB":    'b',
}

// compactTypes folds the type list back into its code form when possible
func compactTypes(v interface{}) string {
	list, ok := v.([]string)
	if !ok {
		return fmt.Sprintf("%v", v)
	}
	buf := strings.Builder{}
	for _, t := range list {
		c, ok := typeName[t]
		if !ok {
			return fmt.Sprintf("%v", list)
		}
		buf.WriteRune(c)
	}
	return buf.String()
}

func formatOption(o Option) string {
	if o.Key == OptionTypes {
		return compactTypes(o.Value)
	}
	return fmt.Sprintf("%v", o.Value)
}

func (self *printer) print(ir *IR, ind int) error {
	buf := strings.Builder{}
	buf.WriteString(strings.Repeat("  ", ind))
	buf.WriteString(self.op.Sprint(ir.Op))
	for _, o := range ir.Options.List() {
		buf.WriteString(" ")
		buf.WriteString(self.key.Sprint(o.Key))
		buf.WriteString("=")
		buf.WriteString(formatOption(o))
	}
	buf.WriteString("\n")

	if _, err := io.WriteString(self.w, buf.String()); err != nil {
		return err
	}
	for _, in := range ir.Input {
		if err := self.print(in, ind+1); err != nil {
			return err
		}
	}
	return nil
}

func Print(ir *IR, w io.Writer, colors bool) error {
	return newPrinter(w, colors).print(ir, 0)
}

func PrintString(ir *IR) string {
	buf := &strings.Builder{}
	Print(ir, buf, false)
	return buf.String()
}
