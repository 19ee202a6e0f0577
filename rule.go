package cstpack

import "fmt"

// Rule is the contract a grammar's rule identifier must satisfy. R is the
// rule type itself, so a grammar declares
//
//	type Rule int
//	func (r Rule) String() string { ... }
//	func (r Rule) Trivia() []Rule { ... }
//
// and the engine is instantiated as cstpack.Build[Rule].
type Rule[R any] interface {
	comparable
	fmt.Stringer
	// Trivia lists the rules elided wherever they appear as children of a
	// node tagged with the receiver.
	Trivia() []R
}
