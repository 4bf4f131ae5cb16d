package predicate

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, src string) *Predicate {
	t.Helper()
	p, err := Parse(src)
	require.NoError(t, err, src)
	return p
}

func toJson(t *testing.T, p *Predicate) string {
	t.Helper()
	data, err := p.ToJson()
	require.NoError(t, err)
	return string(data)
}

func TestCompileColCol(t *testing.T) {
	assert := assert.New(t)
	p := mustParse(t, "t1.0 = t2.1")

	assert.Equal(`{"op":"eq","col1":"t1.0","col2":"t2.1"}`, toJson(t, p))
	assert.Equal(map[string]struct{}{"t1.0": {}, "t2.1": {}}, p.RequiredColumns())
	assert.True(p.IsJoinPredicateFor("t1", "t2"))
	assert.True(p.IsJoinPredicateFor("t2", "t1"))
	assert.True(p.IsEquijoinPredicateFor("t1", "t2"))

	c, ok := p.Root().(*Comparison)
	assert.True(ok)
	assert.Equal(OperandColCol, c.Operand)
	assert.Equal(OpEq, c.Op)
}

func TestCompileColLit(t *testing.T) {
	assert := assert.New(t)
	p := mustParse(t, "t1.3 > 8")

	assert.Equal(`{"op":"gt","col":"t1.3","val":"8"}`, toJson(t, p))
	assert.Equal([]string{"t1.3"}, p.RequiredColumnList())
	assert.False(p.IsJoinPredicateFor("t1", "t2"))
	assert.False(p.IsEquijoinPredicateFor("t1", "t2"))
	assert.Equal([]string{"t1"}, p.Tables())
}

func TestCompileOps(t *testing.T) {
	assert := assert.New(t)
	one := func(src, expect string) {
		assert.Equal(expect, toJson(t, mustParse(t, src)), src)
	}
	one("a.1 >= 2", `{"op":"gte","col":"a.1","val":"2"}`)
	one("a.1 < -2.5", `{"op":"lt","col":"a.1","val":"-2.5"}`)
	one("a.1 <= b.1", `{"op":"lte","col1":"a.1","col2":"b.1"}`)
	one("a.1 contains 'x<y'", `{"op":"contains","col":"a.1","val":"'x<y'"}`)
	one("a.1 CONTAINS foo", `{"op":"contains","col":"a.1","val":"foo"}`)
}

func TestCompileNot(t *testing.T) {
	assert := assert.New(t)
	p := mustParse(t, "not (t1.1 = t2.1)")
	assert.Equal(
		`{"op":"not","children":[{"op":"eq","col1":"t1.1","col2":"t2.1"}]}`,
		toJson(t, p),
	)
	assert.True(p.IsJoinPredicateFor("t1", "t2"))
	assert.False(p.IsEquijoinPredicateFor("t1", "t2"))
}

func TestCompileLogical(t *testing.T) {
	assert := assert.New(t)
	p := mustParse(t, "t1.1 = t2.1 and t1.2 > 3")
	assert.Equal(
		`{"op":"and","children":[{"op":"eq","col1":"t1.1","col2":"t2.1"},{"op":"gt","col":"t1.2","val":"3"}]}`,
		toJson(t, p),
	)
	assert.True(p.IsJoinPredicateFor("t1", "t2"))
	assert.False(p.IsEquijoinPredicateFor("t1", "t2"))

	k, err := p.JoinKind("t1", "t2")
	assert.NoError(err)
	assert.Equal(JoinTheta, k)
}

func TestCompileLeftNested(t *testing.T) {
	assert := assert.New(t)
	p := mustParse(t, "a.1 = 1 or a.2 = 2 or a.3 = 3")

	root, ok := p.Root().(*Logical)
	assert.True(ok)
	assert.Equal(OpOr, root.Op)

	inner, ok := root.L.(*Logical)
	assert.True(ok)
	assert.Equal(OpOr, inner.Op)
	assert.Equal(NodeComparison, inner.L.Type())
	assert.Equal(NodeComparison, inner.R.Type())
	assert.Equal(NodeComparison, root.R.Type())
}

func TestCompilePrecedence(t *testing.T) {
	assert := assert.New(t)
	p := mustParse(t, "not t1.1 = t2.1 or t1.2 = t2.2")

	root, ok := p.Root().(*Logical)
	if !assert.True(ok) {
		return
	}
	assert.Equal(OpOr, root.Op)

	not, ok := root.L.(*Not)
	assert.True(ok)
	assert.Equal(NodeComparison, not.Child.Type())
	assert.Equal(NodeComparison, root.R.Type())

	assert.Equal(
		`{"op":"or","children":[{"op":"not","children":[{"op":"eq","col1":"t1.1","col2":"t2.1"}]},{"op":"eq","col1":"t1.2","col2":"t2.2"}]}`,
		toJson(t, p),
	)
}

func TestCompileParenTransparent(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(
		toJson(t, mustParse(t, "t1.0 = t2.1")),
		toJson(t, mustParse(t, "((t1.0 = t2.1))")),
	)
}

func TestJoinClassification(t *testing.T) {
	assert := assert.New(t)

	p := mustParse(t, "t1.1 = t2.1 and t3.1 = t1.2")
	assert.False(p.IsJoinPredicateFor("t1", "t2"))
	assert.Equal([]string{"t1", "t2", "t3"}, p.Tables())

	p = mustParse(t, "t1.1 = t1.2")
	assert.False(p.IsJoinPredicateFor("t1", "t2"))
	assert.True(p.IsJoinPredicateFor("t1", "t1"))
	assert.True(p.IsEquijoinPredicateFor("t1", "t1"))

	p = mustParse(t, "t1.1 > t2.1")
	assert.True(p.IsJoinPredicateFor("t1", "t2"))
	assert.False(p.IsEquijoinPredicateFor("t1", "t2"))
	assert.False(p.IsJoinPredicateFor("t1", "t3"))
}

func TestRequiredColumnsDedup(t *testing.T) {
	assert := assert.New(t)
	p := mustParse(t, "t1.5 = 6 or t1.5 = 7 and not (t1.7 > t2.7 or t1.8 < t1.9)")
	assert.Equal(
		[]string{"t1.5", "t1.7", "t1.8", "t1.9", "t2.7"},
		p.RequiredColumnList(),
	)
}

func TestIdempotentJson(t *testing.T) {
	assert := assert.New(t)
	p := mustParse(t, "t1.5 = 6 or not t1.5 = 7")
	assert.Equal(toJson(t, p), toJson(t, p))

	data, err := json.Marshal(map[string]*Predicate{"where": p})
	assert.NoError(err)
	assert.Contains(string(data), `"where":{"op":"or"`)
}

func TestStringRoundTrip(t *testing.T) {
	assert := assert.New(t)
	for _, src := range []string{
		"t1.0 = t2.1",
		"not t1.1 = t2.1 or t1.2 = t2.2",
		"not (t1.1 = t2.1 or t1.2 = t2.2)",
		"a.1 = 1 and (a.2 = 2 or a.3 contains 'x')",
		"not not a.1 >= -1.5",
	} {
		p := mustParse(t, src)
		again := mustParse(t, p.String())
		assert.Equal(toJson(t, p), toJson(t, again), src)
	}
	assert.Equal("(not t1.1 = t2.1 or t1.2 = t2.2)", mustParse(t, "not t1.1 = t2.1 or t1.2 = t2.2").String())
}

func TestUnclassifiable(t *testing.T) {
	assert := assert.New(t)

	one := func(p *Predicate) {
		var ue *UnclassifiablePredicateError
		assert.True(errors.As(p.Validate(), &ue))
		_, err := p.JoinKind("a", "b")
		assert.True(errors.As(err, &ue))
		assert.False(p.IsJoinPredicateFor("a", "b"))
		assert.False(p.IsEquijoinPredicateFor("a", "b"))
		assert.Nil(p.Tables())
		_, err = p.ToJson()
		if err != nil {
			assert.True(errors.As(err, &ue))
		}
	}

	one(New(nil))
	one(New(&Logical{Op: OpAnd, L: NewColCol(OpEq, "a.1", "b.1")}))
	one(New(&Not{}))
	one(New(NewColCol(OpEq, "a1", "b.1")))
	one(New(NewColLit(OpEq, "a.1.2", "3")))

	assert.Empty(New(nil).RequiredColumns())
	assert.NoError(mustParse(t, "a.1 = b.1").Validate())
}

func TestParseSyntaxError(t *testing.T) {
	assert := assert.New(t)
	p, err := Parse("t1.0 = ")
	assert.Nil(p)
	var se *SyntaxError
	assert.True(errors.As(err, &se))
	assert.Contains(err.Error(), "around position(1: 8)")
}
