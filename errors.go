package cstpack

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/reoring/cstpack/i18n"
)

// Error codes (one per variant; stable for tests, i18n and JSON output).
const (
	CodeWrongSequence       = "wrong_sequence"
	CodeWrongAlternative    = "wrong_alternative"
	CodeTooFew              = "too_few"
	CodeTooMany             = "too_many"
	CodeNoChildrenFound     = "no_children_found"
	CodeLeafTransformFailed = "leaf_transform_failed"
)

// Found pairs a rule with the text it matched.
type Found[R any] struct {
	Rule R
	Text string
}

func (f Found[R]) String() string { return fmt.Sprintf("%v(%s)", f.Rule, f.Text) }

func found[R any](n Node[R]) Found[R] {
	return Found[R]{Rule: n.Rule, Text: n.Provenance.Text}
}

func foundAll[R any](nodes []Node[R]) []Found[R] {
	out := make([]Found[R], 0, len(nodes))
	for _, n := range nodes {
		out = append(out, found(n))
	}
	return out
}

// Variant is the closed set of packing failures. A nil Expected slice in a
// variant means the expected rules are not known at that point.
type Variant[R any] interface {
	Code() string
	describe(b *strings.Builder)
	fields() map[string]any
}

// WrongSequence: the children found do not form the expected sequence.
type WrongSequence[R any] struct {
	Found    []Found[R]
	Expected []R
}

// WrongAlternative: a node matched none of the candidate rules.
type WrongAlternative[R any] struct {
	Found    Found[R]
	Expected []R
}

// TooFew: fewer children than ExpectedCount were present.
type TooFew[R any] struct {
	Present       []Found[R]
	Expected      []R
	ExpectedCount int
}

// TooMany: more children than ExpectedCount were present.
type TooMany[R any] struct {
	Present       []Found[R]
	Expected      []R
	ExpectedCount int
}

// NoChildrenFound: a node had no children where at least one was required.
type NoChildrenFound[R any] struct {
	Expected []R
}

// LeafTransformFailed: a repack transform rejected an already packed value.
type LeafTransformFailed struct {
	Err error
}

func (WrongSequence[R]) Code() string    { return CodeWrongSequence }
func (WrongAlternative[R]) Code() string { return CodeWrongAlternative }
func (TooFew[R]) Code() string           { return CodeTooFew }
func (TooMany[R]) Code() string          { return CodeTooMany }
func (NoChildrenFound[R]) Code() string  { return CodeNoChildrenFound }
func (LeafTransformFailed) Code() string { return CodeLeafTransformFailed }

func (v WrongSequence[R]) describe(b *strings.Builder) {
	header(b, v.Code(), nil)
	section(b, i18n.LabelExpectedSequence, v.Expected)
	section(b, i18n.LabelFoundSequence, v.Found)
}

func (v WrongAlternative[R]) describe(b *strings.Builder) {
	header(b, v.Code(), nil)
	section(b, i18n.LabelExpectedAny, v.Expected)
	fmt.Fprintf(b, "  %s %s\n", i18n.T(i18n.LabelFoundRule, nil), v.Found)
}

func (v TooFew[R]) describe(b *strings.Builder) {
	header(b, v.Code(), map[string]string{"count": strconv.Itoa(v.ExpectedCount)})
	section(b, i18n.LabelPresent, v.Present)
	section(b, i18n.LabelExpected, v.Expected)
}

func (v TooMany[R]) describe(b *strings.Builder) {
	header(b, v.Code(), map[string]string{"count": strconv.Itoa(v.ExpectedCount)})
	section(b, i18n.LabelPresent, v.Present)
	section(b, i18n.LabelExpected, v.Expected)
}

func (v NoChildrenFound[R]) describe(b *strings.Builder) {
	header(b, v.Code(), nil)
	section(b, i18n.LabelExpected, v.Expected)
}

func (v LeafTransformFailed) describe(b *strings.Builder) {
	header(b, v.Code(), nil)
	if v.Err != nil {
		fmt.Fprintf(b, "  %v\n", v.Err)
	}
}

func (v WrongSequence[R]) fields() map[string]any {
	return map[string]any{"found": foundNames(v.Found), "expected": ruleNames(v.Expected)}
}

func (v WrongAlternative[R]) fields() map[string]any {
	return map[string]any{"found": v.Found.String(), "expected": ruleNames(v.Expected)}
}

func (v TooFew[R]) fields() map[string]any {
	return map[string]any{"present": foundNames(v.Present), "expected": ruleNames(v.Expected), "expected_count": v.ExpectedCount}
}

func (v TooMany[R]) fields() map[string]any {
	return map[string]any{"present": foundNames(v.Present), "expected": ruleNames(v.Expected), "expected_count": v.ExpectedCount}
}

func (v NoChildrenFound[R]) fields() map[string]any {
	return map[string]any{"expected": ruleNames(v.Expected)}
}

func (v LeafTransformFailed) fields() map[string]any {
	if v.Err == nil {
		return nil
	}
	return map[string]any{"cause": v.Err.Error()}
}

func ruleNames[R any](rules []R) []string {
	if rules == nil {
		return nil
	}
	out := make([]string, 0, len(rules))
	for _, r := range rules {
		out = append(out, fmt.Sprint(r))
	}
	return out
}

func foundNames[R any](fs []Found[R]) []string {
	out := make([]string, 0, len(fs))
	for _, f := range fs {
		out = append(out, f.String())
	}
	return out
}

func header(b *strings.Builder, code string, data map[string]string) {
	b.WriteString(i18n.T(code, data))
	b.WriteString(":\n")
}

func section[T any](b *strings.Builder, label string, values []T) {
	fmt.Fprintf(b, "  %s:\n    ", i18n.T(label, nil))
	if values == nil {
		b.WriteString(i18n.T(i18n.LabelNoRules, nil))
		b.WriteString("\n")
		return
	}
	for i, v := range values {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprint(b, v)
	}
	b.WriteString("\n")
}

type frame[R any] struct {
	rule R
	at   *Provenance
}

// PackingError is the single error type produced by the engine: a variant
// plus the trail of rules it crossed on its way out, innermost first.
type PackingError[R any] struct {
	variant Variant[R]
	trail   []frame[R]
}

// NewError returns an error with an empty context.
func NewError[R any](v Variant[R]) *PackingError[R] {
	return &PackingError[R]{variant: v}
}

// WithRule returns a copy of e with rule appended to the context.
func (e *PackingError[R]) WithRule(rule R) *PackingError[R] {
	return e.with(frame[R]{rule: rule})
}

// WithRuleAt is WithRule that also records where the rule was attempted.
func (e *PackingError[R]) WithRuleAt(rule R, at Provenance) *PackingError[R] {
	return e.with(frame[R]{rule: rule, at: &at})
}

func (e *PackingError[R]) with(f frame[R]) *PackingError[R] {
	trail := make([]frame[R], len(e.trail), len(e.trail)+1)
	copy(trail, e.trail)
	return &PackingError[R]{variant: e.variant, trail: append(trail, f)}
}

// Variant returns the failure variant.
func (e *PackingError[R]) Variant() Variant[R] { return e.variant }

// Code returns the variant's code.
func (e *PackingError[R]) Code() string { return e.variant.Code() }

// Context returns the rule trail in accumulation order (innermost first).
func (e *PackingError[R]) Context() []R {
	out := make([]R, 0, len(e.trail))
	for _, f := range e.trail {
		out = append(out, f.rule)
	}
	return out
}

func (e *PackingError[R]) Error() string {
	b := &strings.Builder{}
	b.WriteString(i18n.T(i18n.LabelHeader, nil))
	b.WriteString("\n")
	e.variant.describe(b)
	if len(e.trail) == 0 {
		return b.String()
	}
	fmt.Fprintf(b, "%s:\n", i18n.T(i18n.LabelContext, nil))
	for i, f := range e.trail {
		fmt.Fprintf(b, "  %d. %v", i+1, f.rule)
		if f.at != nil {
			fmt.Fprintf(b, " (%s)", f.at)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Unwrap exposes the cause of a LeafTransformFailed.
func (e *PackingError[R]) Unwrap() error {
	if v, ok := e.variant.(LeafTransformFailed); ok {
		return v.Err
	}
	return nil
}

type errorJSON struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Context []string       `json:"context"`
	Detail  map[string]any `json:"detail,omitempty"`
}

// MarshalJSON renders the error for machine consumption. Rules are rendered
// with their String method.
func (e *PackingError[R]) MarshalJSON() ([]byte, error) {
	out := errorJSON{
		Code:    e.Code(),
		Message: e.Error(),
		Context: make([]string, 0, len(e.trail)),
	}
	for _, f := range e.trail {
		out.Context = append(out.Context, fmt.Sprint(f.rule))
	}
	out.Detail = e.variant.fields()
	return json.Marshal(out)
}

// AsPackingError extracts a PackingError from err using errors.As.
func AsPackingError[R any](err error) (*PackingError[R], bool) {
	if err == nil {
		return nil, false
	}
	var pe *PackingError[R]
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}

// WithRule lifts (*PackingError).WithRule over a result: on success v is
// returned untouched, on failure the error is signed with rule. Errors that
// are not PackingErrors are wrapped as LeafTransformFailed first.
func WithRule[T any, R any](v T, err error, rule R) (T, error) {
	if err == nil {
		return v, nil
	}
	var zero T
	return zero, asPacking[R](err).WithRule(rule)
}

// withRuleAt is WithRule recording the node the rule was attempted on.
func withRuleAt[T any, R any](v T, err error, rule R, at Provenance) (T, error) {
	if err == nil {
		return v, nil
	}
	var zero T
	return zero, asPacking[R](err).WithRuleAt(rule, at)
}

func asPacking[R any](err error) *PackingError[R] {
	if pe, ok := AsPackingError[R](err); ok {
		return pe
	}
	return NewError[R](LeafTransformFailed{Err: err})
}
