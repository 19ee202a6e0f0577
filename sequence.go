package cstpack

// Seq pulls the children of a node one at a time for domain types shaped as
// a fixed heterogeneous tuple. Failures are signed with the node's rule.
//
//	seq, err := cstpack.Sequence(n, RuleDay)
//	name, err := cstpack.Next(seq, dayName)
//	logs, err := cstpack.Next(seq, logs)
//	err = seq.Done()
type Seq[R Rule[R]] struct {
	node Node[R]
	rule R
	kids []Node[R]
	pos  int
}

// Sequence checks n is tagged with rule and starts pulling its children.
func Sequence[R Rule[R]](n Node[R], rule R) (*Seq[R], error) {
	if err := expectRule(n, rule); err != nil {
		return withRuleAt[*Seq[R]](nil, err, rule, n.Provenance)
	}
	return &Seq[R]{node: n, rule: rule, kids: n.Values()}, nil
}

// Next packs the next child with p. It fails with TooFew when the children
// are exhausted; the expected count is the position of the missing child.
func Next[R Rule[R], T any](s *Seq[R], p Packer[R, T]) (T, error) {
	var zero T
	if s.pos >= len(s.kids) {
		err := NewError[R](TooFew[R]{
			Present:       foundAll(s.kids),
			Expected:      []R{p.Rule()},
			ExpectedCount: s.pos + 1,
		})
		return withRuleAt(zero, error(err), s.rule, s.node.Provenance)
	}
	child := s.kids[s.pos]
	s.pos++
	v, err := p.Pack(child)
	return withRuleAt(v, err, s.rule, s.node.Provenance)
}

// Done fails with TooMany when children remain unconsumed. The expected
// count is the number of children pulled.
func (s *Seq[R]) Done() error {
	if s.pos >= len(s.kids) {
		return nil
	}
	err := NewError[R](TooMany[R]{Present: foundAll(s.kids[s.pos:]), ExpectedCount: s.pos})
	return err.WithRuleAt(s.rule, s.node.Provenance)
}
