package cstpack

import "slices"

// RawNode is the input contract from an external grammar parser: a rule, the
// span and substring it matched, and its children in source order.
type RawNode[R any] interface {
	Rule() R
	Span() Span
	Text() string
	Children() []RawNode[R]
}

// Raw is a plain RawNode implementation for front ends that have no tree
// type of their own.
type Raw[R any] struct {
	Kind   R
	At     Span
	Source string
	Inner  []RawNode[R]
}

// NewRaw builds a Raw node.
func NewRaw[R any](kind R, at Span, source string, inner ...RawNode[R]) *Raw[R] {
	return &Raw[R]{Kind: kind, At: at, Source: source, Inner: inner}
}

func (r *Raw[R]) Rule() R                { return r.Kind }
func (r *Raw[R]) Span() Span             { return r.At }
func (r *Raw[R]) Text() string           { return r.Source }
func (r *Raw[R]) Children() []RawNode[R] { return r.Inner }

// ChildrenKind classifies the number of non-trivia children of a node.
type ChildrenKind uint8

const (
	ChildrenNone ChildrenKind = iota // leaf
	ChildrenOne                      // exactly one child
	ChildrenMany                     // two or more children
)

func (k ChildrenKind) String() string {
	switch k {
	case ChildrenNone:
		return "none"
	case ChildrenOne:
		return "one"
	default:
		return "many"
	}
}

// Children is the tagged union None | One(node) | Many(nodes). The variant
// is derived from the number of nodes, so Many never holds fewer than two.
type Children[R any] struct {
	nodes []Node[R]
}

// NewChildren classifies nodes into None, One or Many, preserving order.
func NewChildren[R any](nodes ...Node[R]) Children[R] {
	if len(nodes) == 0 {
		return Children[R]{}
	}
	return Children[R]{nodes: nodes}
}

// Kind reports which variant c holds.
func (c Children[R]) Kind() ChildrenKind {
	switch len(c.nodes) {
	case 0:
		return ChildrenNone
	case 1:
		return ChildrenOne
	default:
		return ChildrenMany
	}
}

// Len returns the number of children.
func (c Children[R]) Len() int { return len(c.nodes) }

// One returns the sole child when c is One.
func (c Children[R]) One() (Node[R], bool) {
	if len(c.nodes) != 1 {
		return Node[R]{}, false
	}
	return c.nodes[0], true
}

// Many returns the children when c is Many.
func (c Children[R]) Many() ([]Node[R], bool) {
	if len(c.nodes) < 2 {
		return nil, false
	}
	return c.nodes, true
}

// Values returns every child in source order (empty for None).
func (c Children[R]) Values() []Node[R] { return c.nodes }

// Node is one parsed production after trivia elision.
type Node[R any] struct {
	Rule       R
	Provenance Provenance
	Children   Children[R]
}

// Trimmed returns the node's matched text without surrounding whitespace.
func (n Node[R]) Trimmed() string { return n.Provenance.Trimmed() }

// Values returns the node's children in source order.
func (n Node[R]) Values() []Node[R] { return n.Children.Values() }

// Build converts a raw node and all its descendants into a Node, dropping
// every child whose rule is in the trivia set of its parent's rule. It
// cannot fail.
func Build[R Rule[R]](raw RawNode[R]) Node[R] {
	rule := raw.Rule()
	trivia := rule.Trivia()

	var kept []Node[R]
	for _, child := range raw.Children() {
		if slices.Contains(trivia, child.Rule()) {
			continue
		}
		kept = append(kept, Build(child))
	}

	return Node[R]{
		Rule:       rule,
		Provenance: Provenance{Span: raw.Span(), Text: raw.Text()},
		Children:   NewChildren(kept...),
	}
}

// BuildForest builds every top-level raw node in order.
func BuildForest[R Rule[R]](forest []RawNode[R]) []Node[R] {
	out := make([]Node[R], 0, len(forest))
	for _, raw := range forest {
		out = append(out, Build(raw))
	}
	return out
}
