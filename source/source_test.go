package source_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/cstpack"
	"github.com/reoring/cstpack/source"
	"github.com/reoring/cstpack/timesheet"
)

const listDump = `
grammar:
  trivia:
    "*": [ws]
    list: [ws, comma]
nodes:
  - rule: list
    start: 0
    end: 5
    line: 1
    column: 1
    text: "a, b"
    children:
      - {rule: item, start: 0, end: 1, line: 1, column: 1, text: a}
      - {rule: comma, start: 1, end: 2, line: 1, column: 2, text: ","}
      - {rule: ws, start: 2, end: 3, line: 1, column: 3, text: " "}
      - {rule: item, start: 3, end: 4, line: 1, column: 4, text: b}
`

func decodeYAML(t *testing.T, s string) *source.Dump {
	t.Helper()
	d, err := source.YAML().Decode(strings.NewReader(s))
	require.NoError(t, err)
	return d
}

func TestRule_TriviaFallsBackToDefault(t *testing.T) {
	g := &source.Grammar{Trivia: map[string][]string{"*": {"ws"}, "list": {"ws", "comma"}}}

	assert.Equal(t, []source.Rule{g.Rule("ws"), g.Rule("comma")}, g.Rule("list").Trivia())
	assert.Equal(t, []source.Rule{g.Rule("ws")}, g.Rule("item").Trivia())
	assert.Equal(t, g.Rule("item"), g.Rule("item"))
	assert.NotEqual(t, g.Rule("item"), (&source.Grammar{}).Rule("item"), "rules of different grammars differ")
	assert.Equal(t, "list", g.Rule("list").String())
}

func TestGrammar_Rules(t *testing.T) {
	g := &source.Grammar{Trivia: map[string][]string{"*": {"ws"}, "list": {"comma"}}}
	var names []string
	for _, r := range g.Rules() {
		names = append(names, r.String())
	}
	assert.Equal(t, []string{"comma", "list", "ws"}, names)
}

func TestDump_ForestBuildsWithTrivia(t *testing.T) {
	d := decodeYAML(t, listDump)
	forest, err := d.Forest()
	require.NoError(t, err)
	require.Len(t, forest, 1)

	n := cstpack.Build(forest[0])
	assert.Equal(t, cstpack.ChildrenMany, n.Children.Kind())
	require.Len(t, n.Values(), 2)
	assert.Equal(t, "a", n.Values()[0].Trimmed())
	assert.Equal(t, 3, n.Values()[1].Provenance.Span.Start)
	assert.Equal(t, 4, n.Values()[1].Provenance.Span.Column)
}

func TestDump_Pack(t *testing.T) {
	d := decodeYAML(t, listDump)

	tree, err := d.Pack("list")
	require.NoError(t, err)
	assert.Equal(t, "list", tree.Rule)
	require.Len(t, tree.Children, 2)
	assert.Equal(t, "b", tree.Children[1].Text)

	var out bytes.Buffer
	require.NoError(t, tree.Outline(&out))
	assert.Equal(t, "list [many]\n  item [none] \"a\"\n  item [none] \"b\"\n", out.String())

	_, err = d.Pack("item")
	pe, ok := cstpack.AsPackingError[source.Rule](err)
	require.True(t, ok, "expected a packing error, got %v", err)
	assert.Equal(t, cstpack.CodeWrongSequence, pe.Code())
}

func TestDump_Invalid(t *testing.T) {
	_, err := (&source.Dump{}).Forest()
	assert.Error(t, err)

	d := decodeYAML(t, `
grammar: {trivia: {}}
nodes:
  - {rule: x, start: 4, end: 2, line: 1, column: 1, text: ""}
`)
	_, err = d.Forest()
	assert.ErrorContains(t, err, "before start")

	_, err = source.YAML().Decode(strings.NewReader("grammar: {}\nbogus: 1\n"))
	assert.Error(t, err, "unknown fields are rejected")
}

func TestDrivers_RoundTripThroughCapture(t *testing.T) {
	d := decodeYAML(t, listDump)
	forest, err := d.Forest()
	require.NoError(t, err)
	captured := source.Capture(forest)
	assert.Equal(t, []string{"comma", "ws"}, captured.Grammar.Trivia["list"])
	assert.Equal(t, []string{"ws"}, captured.Grammar.Trivia["item"])

	for _, format := range []string{"json", "yaml"} {
		t.Run(format, func(t *testing.T) {
			drv, err := source.DriverFor(format)
			require.NoError(t, err)
			var buf bytes.Buffer
			require.NoError(t, drv.Encode(&buf, captured))

			back, err := drv.Decode(&buf)
			require.NoError(t, err)
			assert.Equal(t, captured.Nodes, back.Nodes)

			tree, err := back.Pack("list")
			require.NoError(t, err)
			assert.Len(t, tree.Children, 2)
		})
	}
}

func TestDrivers_RoundTripTabs(t *testing.T) {
	forest, err := timesheet.ParseRaw("2024-01-08\nMON\n\tWORK 30m | review\n\tBREAK 10m | \tcoffee\n")
	require.NoError(t, err)
	captured := source.Capture(forest)

	for _, format := range []string{"json", "yaml"} {
		t.Run(format, func(t *testing.T) {
			drv, err := source.DriverFor(format)
			require.NoError(t, err)
			var buf bytes.Buffer
			require.NoError(t, drv.Encode(&buf, captured))

			back, err := drv.Decode(&buf)
			require.NoError(t, err)
			assert.Equal(t, captured.Nodes, back.Nodes)

			tree, err := back.Pack("body")
			require.NoError(t, err)
			assert.Equal(t, "body", tree.Rule)
		})
	}
}

func TestDriverFor_Unknown(t *testing.T) {
	_, err := source.DriverFor("xml")
	assert.ErrorContains(t, err, "unsupported")
}

func TestReadFileAndLoadGrammar(t *testing.T) {
	dir := t.TempDir()
	dumpPath := filepath.Join(dir, "list.yaml")
	require.NoError(t, os.WriteFile(dumpPath, []byte(listDump), 0o644))
	grammarPath := filepath.Join(dir, "grammar.yml")
	require.NoError(t, os.WriteFile(grammarPath, []byte("trivia:\n  \"*\": [ws, comma]\n"), 0o644))

	d, err := source.ReadFile(dumpPath)
	require.NoError(t, err)
	require.Len(t, d.Nodes, 1)

	g, err := source.LoadGrammar(grammarPath)
	require.NoError(t, err)
	assert.Equal(t, []source.Rule{g.Rule("ws"), g.Rule("comma")}, g.Rule("item").Trivia())

	_, err = source.LoadGrammar(filepath.Join(dir, "missing.yml"))
	assert.Error(t, err)
}
