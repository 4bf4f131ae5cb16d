package cg

import (
	"github.com/benhoyt/goawk/parser"
	"github.com/dianpeng/byoo/predicate"
	"github.com/pkg/errors"
)

const DefaultSeparator = ","

type Config struct {
	Separator string
}

// GenFilter renders a single relation predicate as an awk program printing
// the matching records of the relation's csv file.
//
//	BEGIN { FS = "," }
//	(($1 > 8) && (index($2, "an") > 0)) { print }
//
// The program is parsed with goawk before it is returned.
func GenFilter(p *predicate.Predicate, config *Config) (string, error) {
	sep := DefaultSeparator
	if config != nil && config.Separator != "" {
		sep = config.Separator
	}

	if err := p.Validate(); err != nil {
		return "", err
	}
	tables := p.Tables()
	if len(tables) != 1 {
		return "", errors.Errorf(
			"awk filter needs a predicate on exactly one relation, got %d",
			len(tables),
		)
	}

	g := &exprCodeGen{
		table: tables[0],
	}
	if err := g.gen(p.Root()); err != nil {
		return "", err
	}

	w := newAwkWriter()
	w.Rule("BEGIN", "FS = "+awkString(sep))
	w.Rule(g.o.String(), "print")
	code := w.String()

	if _, err := parser.ParseProgram([]byte(code), nil); err != nil {
		return "", errors.Wrap(err, "generated awk program is invalid")
	}
	return code, nil
}
