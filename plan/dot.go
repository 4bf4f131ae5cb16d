package plan

import (
	"fmt"
	"html"
	"strings"
)

// Dot renders the plan as a graphviz digraph, data flows bottom up, ie from
// the readers to the root.
func Dot(ir *IR) string {
	labels := &strings.Builder{}
	edges := &strings.Builder{}
	id := 0

	var visit func(*IR) int
	visit = func(n *IR) int {
		me := id
		id++

		label := &strings.Builder{}
		label.WriteString(fmt.Sprintf("<b>%s</b> (%d)<br/>", html.EscapeString(n.Op), me))
		for _, o := range n.Options.List() {
			label.WriteString(html.EscapeString(fmt.Sprintf("%s: %s", o.Key, formatOption(o))))
			label.WriteString("<br/>")
		}
		labels.WriteString(fmt.Sprintf("op%d [label=<%s>, shape=box];\n", me, label.String()))

		for _, in := range n.Input {
			child := visit(in)
			edges.WriteString(fmt.Sprintf("op%d -> op%d;\n", child, me))
		}
		return me
	}
	visit(ir)

	return fmt.Sprintf("digraph G {\nrankdir=BT;\n%s\n\n%s\n}\n", labels.String(), edges.String())
}
