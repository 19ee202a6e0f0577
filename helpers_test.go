package cstpack_test

import (
	"strconv"

	"github.com/reoring/cstpack"
)

// rule is a small grammar used across the engine tests.
type rule int

const (
	ruleList rule = iota
	ruleNum
	ruleHours
	ruleMinutes
	rulePair
	ruleA
	ruleB
	ruleC
	ruleR1
	ruleR2
	ruleR3
	ruleOther
	ruleWS
	ruleComma
)

var ruleNames = map[rule]string{
	ruleList:    "list",
	ruleNum:     "NUM",
	ruleHours:   "HOURS",
	ruleMinutes: "MINUTES",
	rulePair:    "pair",
	ruleA:       "a",
	ruleB:       "b",
	ruleC:       "c",
	ruleR1:      "r1",
	ruleR2:      "r2",
	ruleR3:      "r3",
	ruleOther:   "other",
	ruleWS:      "WS",
	ruleComma:   "COMMA",
}

func (r rule) String() string { return ruleNames[r] }

// WS is trivia everywhere; COMMA only inside lists.
func (r rule) Trivia() []rule {
	if r == ruleList {
		return []rule{ruleWS, ruleComma}
	}
	return []rule{ruleWS}
}

func leaf(r rule, text string) *cstpack.Raw[rule] {
	return cstpack.NewRaw(r, cstpack.Span{End: len(text), Line: 1, Column: 1}, text)
}

func tree(r rule, text string, kids ...cstpack.RawNode[rule]) *cstpack.Raw[rule] {
	return cstpack.NewRaw(r, cstpack.Span{End: len(text), Line: 1, Column: 1}, text, kids...)
}

func built(raw cstpack.RawNode[rule]) cstpack.Node[rule] { return cstpack.Build[rule](raw) }

// number packs NUM leaves into ints through the repacking stage.
var number = cstpack.Repack(cstpack.Leaf(ruleNum), strconv.Atoi)

type hours int
type minutes int

var hoursP = cstpack.Map(cstpack.OneChild(ruleHours, number), func(v int) hours { return hours(v) })
var minutesP = cstpack.Map(cstpack.OneChild(ruleMinutes, number), func(v int) minutes { return minutes(v) })

type duration struct {
	H hours
	M minutes
}

var pairP = cstpack.Define(rulePair, func(n cstpack.Node[rule]) (duration, error) {
	h, m, err := cstpack.PackTwoChildren(n, rulePair, hoursP, minutesP)
	return duration{h, m}, err
})

func hoursNode(text string) *cstpack.Raw[rule] {
	return tree(ruleHours, text+"h", leaf(ruleNum, text))
}

func minutesNode(text string) *cstpack.Raw[rule] {
	return tree(ruleMinutes, text+"m", leaf(ruleNum, text))
}

// counting wraps p and counts how often it is invoked.
func counting[T any](p cstpack.Packer[rule, T], calls *int) cstpack.Func[rule, T] {
	return cstpack.Define(p.Rule(), func(n cstpack.Node[rule]) (T, error) {
		*calls++
		return p.Pack(n)
	})
}

func asPacking(err error) *cstpack.PackingError[rule] {
	pe, _ := cstpack.AsPackingError[rule](err)
	return pe
}

func sameRules(got, want []rule) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}
