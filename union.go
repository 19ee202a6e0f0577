package cstpack

// Choice is one candidate of an alternation: a rule and how to pack a node
// tagged with it into the sum type T.
type Choice[R any, T any] struct {
	rule R
	pack func(Node[R]) (T, error)
}

// Alt makes a Choice from a packer for the variant type V and the function
// wrapping V into the sum type T.
func Alt[R any, T any, V any](p Packer[R, V], wrap func(V) T) Choice[R, T] {
	return Choice[R, T]{
		rule: p.Rule(),
		pack: func(n Node[R]) (T, error) {
			v, err := p.Pack(n)
			if err != nil {
				var zero T
				return zero, err
			}
			return wrap(v), nil
		},
	}
}

// Rule returns the rule the choice is selected by.
func (c Choice[R, T]) Rule() R { return c.rule }

// PackAlternatives checks n is tagged with rule, takes its sole child and
// dispatches to the first choice whose rule matches the child. No other
// choice is invoked. When none matches the result is WrongAlternative naming
// every candidate rule in priority order.
func PackAlternatives[R Rule[R], T any](n Node[R], rule R, choices ...Choice[R, T]) (T, error) {
	v, err := packAlternatives(n, rule, choices)
	return withRuleAt(v, err, rule, n.Provenance)
}

func packAlternatives[R Rule[R], T any](n Node[R], rule R, choices []Choice[R, T]) (T, error) {
	var zero T
	if err := expectRule(n, rule); err != nil {
		return zero, err
	}
	child, err := UnpackSingle(n.Children)
	if err != nil {
		return zero, err
	}
	for _, c := range choices {
		if child.Rule == c.rule {
			return c.pack(child)
		}
	}
	expected := make([]R, 0, len(choices))
	for _, c := range choices {
		expected = append(expected, c.rule)
	}
	return zero, NewError[R](WrongAlternative[R]{Found: found(child), Expected: expected})
}
