package cstpack

// Packer builds a T from a node tagged with Rule().
type Packer[R any, T any] interface {
	Rule() R
	Pack(n Node[R]) (T, error)
}

// Func is a Packer made of a rule and a pack function.
type Func[R any, T any] struct {
	rule R
	fn   func(Node[R]) (T, error)
}

// Define declares that T is built from rule by fn.
func Define[R any, T any](rule R, fn func(Node[R]) (T, error)) Func[R, T] {
	return Func[R, T]{rule: rule, fn: fn}
}

func (f Func[R, T]) Rule() R                   { return f.rule }
func (f Func[R, T]) Pack(n Node[R]) (T, error) { return f.fn(n) }

// IsPackable reports whether n is tagged with p's rule.
func IsPackable[R Rule[R], T any](p Packer[R, T], n Node[R]) bool {
	return n.Rule == p.Rule()
}

// Leaf packs a childless node tagged with rule into its trimmed text.
func Leaf[R Rule[R]](rule R) Func[R, string] {
	return Define(rule, func(n Node[R]) (string, error) {
		return LeafText(n, rule)
	})
}

// OneChild packs a node tagged with rule whose sole child is packed by inner.
func OneChild[R Rule[R], T any](rule R, inner Packer[R, T]) Func[R, T] {
	return Define(rule, func(n Node[R]) (T, error) {
		return PackOneChild(n, rule, inner)
	})
}

// Each packs every child of a node tagged with rule using elem.
func Each[R Rule[R], T any](rule R, elem Packer[R, T]) Func[R, []T] {
	return Define(rule, func(n Node[R]) ([]T, error) {
		return PackEachChild(n, rule, elem)
	})
}

// Alternatives packs a node tagged with rule whose sole child is one of
// choices, tried in order.
func Alternatives[R Rule[R], T any](rule R, choices ...Choice[R, T]) Func[R, T] {
	return Define(rule, func(n Node[R]) (T, error) {
		return PackAlternatives(n, rule, choices...)
	})
}

// Map converts the result of p with an infallible fn, keeping p's rule.
func Map[R any, A any, B any](p Packer[R, A], fn func(A) B) Func[R, B] {
	return Define(p.Rule(), func(n Node[R]) (B, error) {
		a, err := p.Pack(n)
		if err != nil {
			var zero B
			return zero, err
		}
		return fn(a), nil
	})
}

// Repack packs an intermediate value with p and refines it with fn. A
// failure of fn becomes LeafTransformFailed with an empty context; the
// caller signs it with its own rule as usual.
func Repack[R any, A any, B any](p Packer[R, A], fn func(A) (B, error)) Func[R, B] {
	return Define(p.Rule(), func(n Node[R]) (B, error) {
		var zero B
		a, err := p.Pack(n)
		if err != nil {
			return zero, err
		}
		b, err := fn(a)
		if err != nil {
			if pe, ok := AsPackingError[R](err); ok {
				return zero, pe
			}
			return zero, NewError[R](LeafTransformFailed{Err: err})
		}
		return b, nil
	})
}
