package plan

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertGolden(t *testing.T, name string, ir *IR) {
	t.Helper()
	data, err := ir.Indent()
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, data)
}

// the sample plan of the byoo frontend
func hashJoinPlan(t *testing.T, b *Builder) *Node {
	scan1 := mustCreate(t, b, "csv_read")
	mustSet(t, scan1, "file", "res/inputs/test1.csv")
	mustSet(t, scan1, "types", "iitir")

	scan2 := mustCreate(t, b, "csv_read")
	mustSet(t, scan2, "file", "res/inputs/test2.csv")
	mustSet(t, scan2, "types", "it")

	hj := mustCreate(t, b, "hash_join", scan1, scan2)
	mustSet(t, hj, "left_cols", []int{0})
	mustSet(t, hj, "right_cols", []int{0})

	proj := mustCreate(t, b, "project", hj)
	mustSet(t, proj, "cols", []int{0, 5})
	return proj
}

func TestGoldenHashJoinPlan(t *testing.T) {
	ir, err := hashJoinPlan(t, newTestBuilder()).Serialize()
	require.NoError(t, err)
	assertGolden(t, "hash_join_plan", ir)
}

func TestDecodeRoundTrip(t *testing.T) {
	assert := assert.New(t)
	b := newTestBuilder()

	ir, err := hashJoinPlan(t, b).Serialize()
	assert.NoError(err)

	n, err := b.Decode(ir)
	assert.NoError(err)
	again, err := n.Serialize()
	assert.NoError(err)
	assert.Equal(ir, again)

	data, err := ir.MarshalJSON()
	assert.NoError(err)
	n, err = b.Parse(data)
	assert.NoError(err)
	again, err = n.Serialize()
	assert.NoError(err)
	assert.Equal(compact(t, ir), compact(t, again))
}

func TestParseYAMLPlan(t *testing.T) {
	assert := assert.New(t)
	b := newTestBuilder()

	n, err := b.Parse([]byte(`
op: csv out
options:
  file: out.csv
input:
  - op: filter
    options:
      predicate: t1.3 > 8
    input:
      - op: csv read
        options:
          file: in.csv
          types: it
`))
	assert.NoError(err)
	ir, err := n.Serialize()
	assert.NoError(err)
	assert.Equal(
		`{"op":"csv out","options":{"file":"out.csv"},"input":[{"op":"filter","options":{"predicate":"t1.3 > 8"},"input":[{"op":"csv read","options":{"file":"in.csv","types":["INTEGER","TEXT"]}}]}]}`,
		compact(t, ir),
	)
}

func TestParseRejects(t *testing.T) {
	assert := assert.New(t)
	b := newTestBuilder()

	for _, src := range []string{
		``,
		`[]`,
		`{"options": {}}`,
		`{"op": ["x"]}`,
		`{"op": "union", "options": []}`,
		`{"op": "union", "input": {}}`,
		`{"op": "union", "extra": 1}`,
		`{"op": "union", "input": [1]}`,
		`{"op": "union", "input": [`,
	} {
		_, err := ParseIR([]byte(src))
		assert.Error(err, src)
	}

	// builder rules are applied while decoding
	for _, src := range []string{
		`{"op": "nonexistent"}`,
		`{"op": "project"}`,
		`{"op": "csv read"}`,
		`{"op": "union", "options": {"file": "x.csv"}}`,
		`{"op": "csv read", "options": {"file": "x.csv", "types": 3}}`,
	} {
		n, err := b.Parse([]byte(src))
		if err == nil {
			_, err = n.Serialize()
		}
		assert.Error(err, src)
	}
}

func TestParseJSONEscape(t *testing.T) {
	assert := assert.New(t)
	b := newTestBuilder()

	n, err := b.Parse([]byte(`{"op":"csv read","options":{"file":"res\/a.csv"}}`))
	assert.NoError(err)
	v, _ := n.Option("file")
	assert.Equal("res/a.csv", v)
}

func TestParseJSONNumberKept(t *testing.T) {
	assert := assert.New(t)
	b := newTestBuilder()

	src := `{"op":"sort","options":{"x":1.0,"y":1e2,"z":-0.50,"n":{"b":2.0,"a":[1.5e-3,7]}},"input":[{"op":"union"}]}`
	ir, err := ParseIR([]byte(src))
	assert.NoError(err)
	assert.Equal(src, compact(t, ir))

	n, err := b.Decode(ir)
	assert.NoError(err)
	again, err := n.Serialize()
	assert.NoError(err)
	assert.Equal(src, compact(t, again))

	// leading blanks still select the json reader
	ir, err = ParseIR([]byte("\n\t  " + src))
	assert.NoError(err)
	assert.Equal(src, compact(t, ir))
}

func TestParseJSONRejects(t *testing.T) {
	assert := assert.New(t)
	for _, src := range []string{
		`{"op": "union"} {"op": "union"}`,
		`{"op": "union"} x`,
		`{"op": "union", "options": {"a": [1, }}`,
		`{"op": "union", "options": "a"}`,
		`{"op": "union", "input": [{"op": "union"}, []]}`,
		`{"op": 1}`,
	} {
		_, err := ParseIR([]byte(src))
		assert.Error(err, src)
	}
}

func TestUnmarshalJSON(t *testing.T) {
	assert := assert.New(t)
	ir := &IR{}
	assert.NoError(ir.UnmarshalJSON([]byte(`{"op":"sort","options":{"b":1,"a":2},"input":[{"op":"union"}]}`)))
	assert.Equal("sort", ir.Op)
	assert.Equal([]string{"b", "a"}, ir.Options.Keys())
	assert.Len(ir.Input, 1)
	assert.Equal(`{"op":"sort","options":{"b":1,"a":2},"input":[{"op":"union"}]}`, compact(t, ir))
}
