package cstpack

import "slices"

// UnpackSingle returns the only child in children. Zero children yields
// NoChildrenFound, two or more TooMany. When expected rules are given and
// the single child matches none of them the result is WrongSequence.
// Errors are returned unsigned; callers tag them with their own rule.
func UnpackSingle[R Rule[R]](children Children[R], expected ...R) (Node[R], error) {
	exp := expectedOrNil(expected)
	switch children.Kind() {
	case ChildrenNone:
		return Node[R]{}, NewError[R](NoChildrenFound[R]{Expected: exp})
	case ChildrenMany:
		return Node[R]{}, NewError[R](TooMany[R]{Present: foundAll(children.Values()), Expected: exp, ExpectedCount: 1})
	}
	child, _ := children.One()
	if exp != nil && !slices.Contains(exp, child.Rule) {
		return Node[R]{}, NewError[R](WrongSequence[R]{Found: []Found[R]{found(child)}, Expected: exp})
	}
	return child, nil
}

// LeafText returns the trimmed text of n, which must be tagged with rule and
// have no children.
func LeafText[R Rule[R]](n Node[R], rule R) (string, error) {
	if err := expectRule(n, rule); err != nil {
		return withRuleAt("", err, rule, n.Provenance)
	}
	if n.Children.Kind() != ChildrenNone {
		err := NewError[R](TooMany[R]{Present: foundAll(n.Values()), ExpectedCount: 0})
		return withRuleAt("", error(err), rule, n.Provenance)
	}
	return n.Trimmed(), nil
}

// PackOneChild checks n is tagged with rule and packs its sole child with p.
func PackOneChild[R Rule[R], T any](n Node[R], rule R, p Packer[R, T]) (T, error) {
	v, err := packOneChild(n, rule, p)
	return withRuleAt(v, err, rule, n.Provenance)
}

func packOneChild[R Rule[R], T any](n Node[R], rule R, p Packer[R, T]) (T, error) {
	var zero T
	if err := expectRule(n, rule); err != nil {
		return zero, err
	}
	child, err := UnpackSingle(n.Children)
	if err != nil {
		return zero, err
	}
	return p.Pack(child)
}

// PackTwoChildren checks n is tagged with rule and has exactly two children,
// packing the first with pa and the second with pb.
func PackTwoChildren[R Rule[R], A any, B any](n Node[R], rule R, pa Packer[R, A], pb Packer[R, B]) (A, B, error) {
	a, b, err := packTwoChildren(n, rule, pa, pb)
	if err != nil {
		var za A
		var zb B
		_, err = withRuleAt(struct{}{}, err, rule, n.Provenance)
		return za, zb, err
	}
	return a, b, nil
}

func packTwoChildren[R Rule[R], A any, B any](n Node[R], rule R, pa Packer[R, A], pb Packer[R, B]) (A, B, error) {
	var za A
	var zb B
	if err := expectRule(n, rule); err != nil {
		return za, zb, err
	}
	if err := expectCount(n.Children, 2, 2, pa.Rule(), pb.Rule()); err != nil {
		return za, zb, err
	}
	kids := n.Values()
	a, err := pa.Pack(kids[0])
	if err != nil {
		return za, zb, err
	}
	b, err := pb.Pack(kids[1])
	if err != nil {
		return za, zb, err
	}
	return a, b, nil
}

// PackOptionalSecond checks n is tagged with rule and has one or two
// children. The first is packed with pa; the second, when present, with pb.
func PackOptionalSecond[R Rule[R], A any, B any](n Node[R], rule R, pa Packer[R, A], pb Packer[R, B]) (A, *B, error) {
	a, b, err := packOptionalSecond(n, rule, pa, pb)
	if err != nil {
		var za A
		_, err = withRuleAt(struct{}{}, err, rule, n.Provenance)
		return za, nil, err
	}
	return a, b, nil
}

func packOptionalSecond[R Rule[R], A any, B any](n Node[R], rule R, pa Packer[R, A], pb Packer[R, B]) (A, *B, error) {
	var za A
	if err := expectRule(n, rule); err != nil {
		return za, nil, err
	}
	if err := expectCount(n.Children, 1, 2, pa.Rule(), pb.Rule()); err != nil {
		return za, nil, err
	}
	kids := n.Values()
	a, err := pa.Pack(kids[0])
	if err != nil {
		return za, nil, err
	}
	if len(kids) == 1 {
		return a, nil, nil
	}
	b, err := pb.Pack(kids[1])
	if err != nil {
		return za, nil, err
	}
	return a, &b, nil
}

// PackEachChild checks n is tagged with rule and packs every child with p.
// The first failure aborts the list; later siblings are not attempted and no
// partial result is returned.
func PackEachChild[R Rule[R], T any](n Node[R], rule R, p Packer[R, T]) ([]T, error) {
	if err := expectRule(n, rule); err != nil {
		return withRuleAt[[]T](nil, err, rule, n.Provenance)
	}
	kids := n.Values()
	out := make([]T, 0, len(kids))
	for _, child := range kids {
		v, err := p.Pack(child)
		if err != nil {
			return withRuleAt[[]T](nil, err, rule, n.Provenance)
		}
		out = append(out, v)
	}
	return out, nil
}

func expectRule[R Rule[R]](n Node[R], rule R) error {
	if n.Rule == rule {
		return nil
	}
	return NewError[R](WrongSequence[R]{Found: []Found[R]{found(n)}, Expected: []R{rule}})
}

// expectCount checks lo <= len(children) <= hi, reporting NoChildrenFound,
// TooFew or TooMany against the expected rules.
func expectCount[R Rule[R]](children Children[R], lo, hi int, expected ...R) error {
	count := children.Len()
	switch {
	case count == 0 && lo > 0:
		return NewError[R](NoChildrenFound[R]{Expected: expected})
	case count < lo:
		return NewError[R](TooFew[R]{Present: foundAll(children.Values()), Expected: expected, ExpectedCount: lo})
	case count > hi:
		return NewError[R](TooMany[R]{Present: foundAll(children.Values()), Expected: expected, ExpectedCount: hi})
	}
	return nil
}

func expectedOrNil[R any](rules []R) []R {
	if len(rules) == 0 {
		return nil
	}
	return rules
}

