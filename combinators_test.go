package cstpack_test

import (
	"errors"
	"strconv"
	"testing"

	"github.com/reoring/cstpack"
)

func TestUnpackSingle(t *testing.T) {
	one := built(leaf(ruleNum, "1"))
	two := built(leaf(ruleNum, "2"))
	other := built(leaf(ruleOther, "?"))

	if _, err := cstpack.UnpackSingle(cstpack.NewChildren[rule]()); asPacking(err).Code() != cstpack.CodeNoChildrenFound {
		t.Fatalf("zero children: %v", err)
	}

	_, err := cstpack.UnpackSingle(cstpack.NewChildren(one, two), ruleNum)
	pe := asPacking(err)
	if pe == nil || pe.Code() != cstpack.CodeTooMany {
		t.Fatalf("two children: %v", err)
	}
	if v := pe.Variant().(cstpack.TooMany[rule]); v.ExpectedCount != 1 || len(v.Present) != 2 {
		t.Fatalf("unexpected TooMany: %+v", v)
	}
	if len(pe.Context()) != 0 {
		t.Fatalf("UnpackSingle must not sign: %v", pe.Context())
	}

	got, err := cstpack.UnpackSingle(cstpack.NewChildren(one), ruleNum)
	if err != nil || got.Trimmed() != "1" {
		t.Fatalf("one child: %v %v", got, err)
	}

	_, err = cstpack.UnpackSingle(cstpack.NewChildren(other), ruleNum)
	if asPacking(err).Code() != cstpack.CodeWrongSequence {
		t.Fatalf("wrong rule: %v", err)
	}
}

func TestLeafText(t *testing.T) {
	s, err := cstpack.LeafText(built(leaf(ruleNum, " 42 ")), ruleNum)
	if err != nil || s != "42" {
		t.Fatalf("leaf: %q %v", s, err)
	}

	_, err = cstpack.LeafText(built(leaf(ruleOther, "x")), ruleNum)
	pe := asPacking(err)
	if pe.Code() != cstpack.CodeWrongSequence || !sameRules(pe.Context(), []rule{ruleNum}) {
		t.Fatalf("wrong rule: %v", err)
	}

	_, err = cstpack.LeafText(built(hoursNode("8")), ruleHours)
	pe = asPacking(err)
	if pe.Code() != cstpack.CodeTooMany {
		t.Fatalf("leaf with children: %v", err)
	}
	if v := pe.Variant().(cstpack.TooMany[rule]); v.ExpectedCount != 0 || v.Expected != nil {
		t.Fatalf("unexpected TooMany: %+v", v)
	}
}

func TestPackOneChild(t *testing.T) {
	h, err := hoursP.Pack(built(hoursNode("8")))
	if err != nil || h != 8 {
		t.Fatalf("hours: %d %v", h, err)
	}

	_, err = hoursP.Pack(built(tree(ruleHours, "h")))
	pe := asPacking(err)
	if pe.Code() != cstpack.CodeNoChildrenFound || !sameRules(pe.Context(), []rule{ruleHours}) {
		t.Fatalf("no children: %v", err)
	}
}

func TestPackTwoChildren(t *testing.T) {
	d, err := pairP.Pack(built(tree(rulePair, "08 30", hoursNode("08"), minutesNode("30"))))
	if err != nil || d != (duration{8, 30}) {
		t.Fatalf("pair: %+v %v", d, err)
	}

	// children are bound positionally, not by rule
	swapped := cstpack.Define(rulePair, func(n cstpack.Node[rule]) (duration, error) {
		h, m, err := cstpack.PackTwoChildren(n, rulePair, hoursP, hoursP)
		return duration{h, minutes(m)}, err
	})
	d, err = swapped.Pack(built(tree(rulePair, "30 08", hoursNode("30"), hoursNode("08"))))
	if err != nil || d != (duration{30, 8}) {
		t.Fatalf("swapped: %+v %v", d, err)
	}

	_, err = pairP.Pack(built(tree(rulePair, "08", hoursNode("08"))))
	pe := asPacking(err)
	if pe.Code() != cstpack.CodeTooFew {
		t.Fatalf("one child: %v", err)
	}
	if v := pe.Variant().(cstpack.TooFew[rule]); v.ExpectedCount != 2 || !sameRules(v.Expected, []rule{ruleHours, ruleMinutes}) {
		t.Fatalf("unexpected TooFew: %+v", v)
	}

	_, err = pairP.Pack(built(tree(rulePair, "1 2 3", hoursNode("1"), minutesNode("2"), minutesNode("3"))))
	pe = asPacking(err)
	if pe.Code() != cstpack.CodeTooMany {
		t.Fatalf("three children: %v", err)
	}
	if v := pe.Variant().(cstpack.TooMany[rule]); v.ExpectedCount != 2 {
		t.Fatalf("unexpected TooMany: %+v", v)
	}
	if !sameRules(pe.Context(), []rule{rulePair}) {
		t.Fatalf("pair must sign exactly once: %v", pe.Context())
	}
}

func TestPackOptionalSecond(t *testing.T) {
	p := func(n cstpack.Node[rule]) (hours, *minutes, error) {
		return cstpack.PackOptionalSecond(n, rulePair, hoursP, minutesP)
	}

	h, m, err := p(built(tree(rulePair, "8", hoursNode("8"))))
	if err != nil || h != 8 || m != nil {
		t.Fatalf("first only: %d %v %v", h, m, err)
	}

	h, m, err = p(built(tree(rulePair, "8 15", hoursNode("8"), minutesNode("15"))))
	if err != nil || h != 8 || m == nil || *m != 15 {
		t.Fatalf("both: %d %v %v", h, m, err)
	}

	_, _, err = p(built(tree(rulePair, "")))
	if asPacking(err).Code() != cstpack.CodeNoChildrenFound {
		t.Fatalf("none: %v", err)
	}
}

func TestPackEachChild_FailFast(t *testing.T) {
	calls := 0
	probe := counting(number, &calls)
	list := cstpack.Each(ruleList, probe)

	got, err := list.Pack(built(tree(ruleList, "1 2 3", leaf(ruleNum, "1"), leaf(ruleNum, "2"), leaf(ruleNum, "3"))))
	if err != nil || len(got) != 3 || got[2] != 3 {
		t.Fatalf("all good: %v %v", got, err)
	}

	calls = 0
	got, err = list.Pack(built(tree(ruleList, "1 x 3", leaf(ruleNum, "1"), leaf(ruleNum, "x"), leaf(ruleNum, "3"))))
	if err == nil || got != nil {
		t.Fatalf("expected failure without partial result, got %v", got)
	}
	if calls != 2 {
		t.Fatalf("expected packing to stop at the second element, ran %d times", calls)
	}
	pe := asPacking(err)
	if pe.Code() != cstpack.CodeLeafTransformFailed || !sameRules(pe.Context(), []rule{ruleList}) {
		t.Fatalf("unexpected error: %v", err)
	}
	var numErr *strconv.NumError
	if !errors.As(err, &numErr) {
		t.Fatalf("cause lost: %v", err)
	}

	empty, err := list.Pack(built(tree(ruleList, "")))
	if err != nil || len(empty) != 0 {
		t.Fatalf("empty list: %v %v", empty, err)
	}
}

// TestContextAccumulatesInnermostFirst packs A -> B -> C where C fails and
// checks every level signs once.
func TestContextAccumulatesInnermostFirst(t *testing.T) {
	c := cstpack.OneChild(ruleC, number)
	b := cstpack.OneChild(ruleB, c)
	a := cstpack.OneChild(ruleA, b)

	_, err := a.Pack(built(tree(ruleA, "", tree(ruleB, "", tree(ruleC, "")))))
	pe := asPacking(err)
	if pe == nil || pe.Code() != cstpack.CodeNoChildrenFound {
		t.Fatalf("unexpected error: %v", err)
	}
	if !sameRules(pe.Context(), []rule{ruleC, ruleB, ruleA}) {
		t.Fatalf("context: %v", pe.Context())
	}

	v, err := a.Pack(built(tree(ruleA, "7", tree(ruleB, "7", tree(ruleC, "7", leaf(ruleNum, "7"))))))
	if err != nil || v != 7 {
		t.Fatalf("success path: %d %v", v, err)
	}
}

func TestIsPackable(t *testing.T) {
	if !cstpack.IsPackable[rule, int](number, built(leaf(ruleNum, "1"))) {
		t.Fatalf("NUM should be packable by number")
	}
	if cstpack.IsPackable[rule, int](number, built(leaf(ruleOther, "1"))) {
		t.Fatalf("other should not be packable by number")
	}
}
