package source

import (
	"fmt"
	"io"
	"strings"

	"github.com/reoring/cstpack"
)

// Tree is the generic packed form of a node of a dynamic grammar.
type Tree struct {
	Rule     string               `json:"rule" yaml:"rule"`
	Kind     cstpack.ChildrenKind `json:"-" yaml:"-"`
	Text     string               `json:"text" yaml:"text"`
	At       cstpack.Span         `json:"at" yaml:"at"`
	Children []Tree               `json:"children,omitempty" yaml:"children,omitempty"`
}

// TreeOf returns a packer accepting nodes tagged root. Children of any rule
// are packed recursively; trivia are already gone at that point.
func TreeOf(root Rule) cstpack.Func[Rule, Tree] {
	return cstpack.Define(root, func(n cstpack.Node[Rule]) (Tree, error) {
		kids, err := cstpack.PackEachChild[Rule, Tree](n, root, anyChild{})
		if err != nil {
			return Tree{}, err
		}
		return Tree{
			Rule:     root.String(),
			Kind:     n.Children.Kind(),
			Text:     n.Trimmed(),
			At:       n.Provenance.Span,
			Children: kids,
		}, nil
	})
}

type anyChild struct{}

func (anyChild) Rule() Rule { return Rule{name: AnyRule} }

func (anyChild) Pack(n cstpack.Node[Rule]) (Tree, error) { return TreeOf(n.Rule).Pack(n) }

// Outline writes one line per node, indented by depth.
func (t Tree) Outline(w io.Writer) error {
	return t.outline(w, 0)
}

func (t Tree) outline(w io.Writer, depth int) error {
	line := fmt.Sprintf("%s%s [%s]", strings.Repeat("  ", depth), t.Rule, t.Kind)
	if t.Kind == cstpack.ChildrenNone {
		line += fmt.Sprintf(" %q", t.Text)
	}
	if _, err := fmt.Fprintln(w, line); err != nil {
		return err
	}
	for _, c := range t.Children {
		if err := c.outline(w, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// Pack builds the dump's forest and packs its single top-level node, which
// must be tagged root.
func (d *Dump) Pack(root string) (Tree, error) {
	forest, err := d.Forest()
	if err != nil {
		return Tree{}, err
	}
	return cstpack.PackRoot(forest, TreeOf(d.Grammar.Rule(root)))
}
