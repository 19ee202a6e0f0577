package source

import (
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/reoring/cstpack"
)

// Dump is the serialised form of a parse: a grammar and the top-level nodes.
type Dump struct {
	Grammar *Grammar   `json:"grammar" yaml:"grammar"`
	Nodes   []NodeDump `json:"nodes" yaml:"nodes"`
}

// NodeDump is one raw node. Trivia nodes are kept; they are elided when the
// forest is built.
type NodeDump struct {
	Rule     string     `json:"rule" yaml:"rule"`
	Start    int        `json:"start" yaml:"start"`
	End      int        `json:"end" yaml:"end"`
	Line     int        `json:"line" yaml:"line"`
	Column   int        `json:"column" yaml:"column"`
	Text     string     `json:"text" yaml:"text"`
	Children []NodeDump `json:"children,omitempty" yaml:"children,omitempty"`
}

// MarshalYAML writes text double-quoted. Block scalars cannot start a line
// with a tab, which trivia and indented source lines do.
func (n NodeDump) MarshalYAML() (any, error) {
	type plain NodeDump
	var node yaml.Node
	if err := node.Encode(plain(n)); err != nil {
		return nil, err
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == "text" {
			node.Content[i+1].Style = yaml.DoubleQuotedStyle
		}
	}
	return &node, nil
}

// Forest returns the top-level nodes as raw nodes over the dump's grammar.
func (d *Dump) Forest() ([]cstpack.RawNode[Rule], error) {
	if d.Grammar == nil {
		return nil, fmt.Errorf("dump has no grammar")
	}
	out := make([]cstpack.RawNode[Rule], 0, len(d.Nodes))
	for i := range d.Nodes {
		n, err := d.raw(&d.Nodes[i])
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

func (d *Dump) raw(n *NodeDump) (cstpack.RawNode[Rule], error) {
	if n.Rule == "" {
		return nil, fmt.Errorf("node at %d:%d has no rule", n.Line, n.Column)
	}
	if n.End < n.Start {
		return nil, fmt.Errorf("node %s at %d:%d: end %d before start %d", n.Rule, n.Line, n.Column, n.End, n.Start)
	}
	kids := make([]cstpack.RawNode[Rule], 0, len(n.Children))
	for i := range n.Children {
		k, err := d.raw(&n.Children[i])
		if err != nil {
			return nil, err
		}
		kids = append(kids, k)
	}
	span := cstpack.Span{Start: n.Start, End: n.End, Line: n.Line, Column: n.Column}
	return cstpack.NewRaw(d.Grammar.Rule(n.Rule), span, n.Text, kids...), nil
}

// Capture converts a raw forest of any grammar into a Dump. The grammar
// records the trivia of every rule that occurs in the forest.
func Capture[R cstpack.Rule[R]](forest []cstpack.RawNode[R]) *Dump {
	g := &Grammar{Trivia: map[string][]string{}}
	d := &Dump{Grammar: g, Nodes: make([]NodeDump, 0, len(forest))}
	for _, n := range forest {
		d.Nodes = append(d.Nodes, capture(g, n))
	}
	return d
}

func capture[R cstpack.Rule[R]](g *Grammar, n cstpack.RawNode[R]) NodeDump {
	name := n.Rule().String()
	if _, ok := g.Trivia[name]; !ok {
		trivia := make([]string, 0, len(n.Rule().Trivia()))
		for _, t := range n.Rule().Trivia() {
			trivia = append(trivia, t.String())
		}
		slices.Sort(trivia)
		g.Trivia[name] = trivia
	}
	span := n.Span()
	out := NodeDump{
		Rule:   name,
		Start:  span.Start,
		End:    span.End,
		Line:   span.Line,
		Column: span.Column,
		Text:   n.Text(),
	}
	for _, c := range n.Children() {
		out.Children = append(out.Children, capture(g, c))
	}
	return out
}
