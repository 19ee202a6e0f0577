// Package cstpack provides:
//
// - A uniform concrete syntax tree (Node) built from any rule-tagged parser output (RawNode)
// - Trivia elision driven by the grammar's Rule type (Rule.Trivia)
// - Generic packers that turn nodes into typed domain values (Packer, Define, combinators)
// - A closed error model (PackingError) whose context trail records every rule it passed through
// - Repacking: a fallible second stage that refines an already packed value (Repack)
//
// Design policy:
// - Keep the engine in the root package; grammar front ends and consumers live elsewhere.
// - Place message dictionaries under i18n/, reusable repack transforms under codec/,
//   raw forest loaders under source/, and the sample timesheet language under timesheet/.
// - The engine is synchronous and fail-fast: the first failure aborts the pass.
//
// Typical usage:
//
//	hours := cstpack.OneChild(RuleHours, number)
//	minutes := cstpack.OneChild(RuleMinutes, number)
//	pair := cstpack.Define(RulePair, func(n cstpack.Node[Rule]) (Pair, error) {
//	    h, m, err := cstpack.PackTwoChildren(n, RulePair, hours, minutes)
//	    return Pair{h, m}, err
//	})
//	v, err := cstpack.PackRoot(forest, pair)
//
//	var pe *cstpack.PackingError[Rule]
//	if errors.As(err, &pe) {
//	    fmt.Println(pe.Code(), pe.Context())
//	}
package cstpack
