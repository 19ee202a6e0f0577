package cstpack

// PackRoot builds the parser's top-level forest and packs it with p. Exactly
// one top-level node is required; zero or several fail with the same arity
// errors as any other node (NoChildrenFound / TooMany / WrongSequence when
// the single node is not tagged with p's rule).
func PackRoot[R Rule[R], T any](forest []RawNode[R], p Packer[R, T]) (T, error) {
	return PackTrees(BuildForest(forest), p)
}

// PackTrees is PackRoot for already built nodes.
func PackTrees[R Rule[R], T any](trees []Node[R], p Packer[R, T]) (T, error) {
	root, err := UnpackSingle(NewChildren(trees...), p.Rule())
	if err != nil {
		var zero T
		return zero, err
	}
	return p.Pack(root)
}
