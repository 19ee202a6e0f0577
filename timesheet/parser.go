package timesheet

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"

	"github.com/reoring/cstpack"
)

// SyntaxError reports input the parser could not recognise.
type SyntaxError struct {
	Pos     lexer.Position
	Message string
}

func (e *SyntaxError) Error() string {
	if e.Pos.Line == 0 {
		return "syntax error: " + e.Message
	}
	return fmt.Sprintf("syntax error at %d:%d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}

type node = cstpack.RawNode[Rule]

type parser struct {
	src  string
	toks []token
	pos  int
}

// ParseRaw parses a whole timesheet into its raw forest: a single body node.
func ParseRaw(src string) ([]cstpack.RawNode[Rule], error) {
	return ParseRule(src, RuleBody)
}

// ParseRule parses src as a single rule. Supported entry rules are body,
// time_period, TIME and time_range_end.
func ParseRule(src string, rule Rule) ([]cstpack.RawNode[Rule], error) {
	toks, err := tokenize(src)
	if err != nil {
		return nil, err
	}
	p := &parser{src: src, toks: toks}

	var n node
	switch rule {
	case RuleBody:
		n, err = p.body()
	case RuleTimePeriod:
		n, err = p.timePeriod()
	case RuleTime:
		n, err = p.time()
	case RuleTimeRangeEnd:
		n, err = p.timeRangeEnd()
	default:
		return nil, fmt.Errorf("timesheet: %s is not an entry rule", rule)
	}
	if err != nil {
		return nil, err
	}
	if rule != RuleBody {
		if t := p.peek(); t.kind != tokEOF {
			return nil, p.unexpected(t, "end of input")
		}
	}
	return []cstpack.RawNode[Rule]{n}, nil
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) unexpected(t token, want string) error {
	found := t.kind.String()
	if t.value != "" && t.kind != tokNewline && t.kind != tokTab {
		found = fmt.Sprintf("%q", t.value)
	}
	return &SyntaxError{Pos: t.pos, Message: fmt.Sprintf("expected %s, found %s", want, found)}
}

func (p *parser) expect(kind tokenKind) (token, error) {
	t := p.peek()
	if t.kind != kind {
		return t, p.unexpected(t, kind.String())
	}
	return p.next(), nil
}

// leaf makes a node for a whole token.
func (p *parser) leaf(rule Rule, t token) node {
	return p.span(rule, t.pos, t.end())
}

func (p *parser) span(rule Rule, at lexer.Position, end int, kids ...node) node {
	sp := cstpack.Span{Start: at.Offset, End: end, Line: at.Line, Column: at.Column}
	return cstpack.NewRaw(rule, sp, p.src[at.Offset:end], kids...)
}

// wrap makes a node spanning its children, which must not be empty.
func (p *parser) wrap(rule Rule, kids ...node) node {
	first, last := kids[0].Span(), kids[len(kids)-1].Span()
	at := lexer.Position{Offset: first.Start, Line: first.Line, Column: first.Column}
	return p.span(rule, at, last.End, kids...)
}

// empty makes a childless node at the current position.
func (p *parser) empty(rule Rule) node {
	t := p.peek()
	return p.span(rule, t.pos, t.pos.Offset)
}

// layout consumes blank lines, returning them as trivia nodes.
func (p *parser) layout() []node {
	var out []node
	for {
		t := p.peek()
		switch {
		case t.kind == tokNewline:
			out = append(out, p.leaf(RuleNewline, p.next()))
		case t.kind == tokTab && p.toks[p.pos+1].kind == tokNewline:
			out = append(out, p.leaf(RuleTab, p.next()), p.leaf(RuleNewline, p.next()))
		default:
			return out
		}
	}
}

// lineEnd accepts a newline or the end of input.
func (p *parser) lineEnd(kids []node) ([]node, error) {
	t := p.peek()
	switch t.kind {
	case tokNewline:
		return append(kids, p.leaf(RuleNewline, p.next())), nil
	case tokEOF:
		return kids, nil
	}
	return nil, p.unexpected(t, "end of line")
}

func (p *parser) body() (node, error) {
	weeks, err := p.weeks()
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.kind != tokEOF {
		return nil, p.unexpected(t, "date")
	}
	eoi := p.empty(RuleEOI)
	return p.span(RuleBody, lexer.Position{Line: 1, Column: 1}, len(p.src), weeks, eoi), nil
}

func (p *parser) weeks() (node, error) {
	kids := p.layout()
	for p.peek().kind == tokDate {
		w, err := p.week()
		if err != nil {
			return nil, err
		}
		kids = append(kids, w)
		kids = append(kids, p.layout()...)
	}
	if len(kids) == 0 {
		return p.empty(RuleWeeks), nil
	}
	return p.wrap(RuleWeeks, kids...), nil
}

func (p *parser) week() (node, error) {
	date, err := p.expect(tokDate)
	if err != nil {
		return nil, err
	}
	kids, err := p.lineEnd([]node{p.leaf(RuleDate, date)})
	if err != nil {
		return nil, err
	}
	days, err := p.days()
	if err != nil {
		return nil, err
	}
	return p.wrap(RuleWeek, append(kids, days)...), nil
}

func (p *parser) days() (node, error) {
	kids := p.layout()
	for p.peek().kind == tokDayName {
		d, err := p.day()
		if err != nil {
			return nil, err
		}
		kids = append(kids, d)
		kids = append(kids, p.layout()...)
	}
	if len(kids) == 0 {
		return p.empty(RuleDays), nil
	}
	return p.wrap(RuleDays, kids...), nil
}

func (p *parser) day() (node, error) {
	name, err := p.expect(tokDayName)
	if err != nil {
		return nil, err
	}
	kids, err := p.lineEnd([]node{p.leaf(RuleDayName, name)})
	if err != nil {
		return nil, err
	}
	logs, err := p.logs()
	if err != nil {
		return nil, err
	}
	return p.wrap(RuleDay, append(kids, logs)...), nil
}

func (p *parser) logs() (node, error) {
	kids := p.layout()
	for p.peek().kind == tokTab {
		l, err := p.log()
		if err != nil {
			return nil, err
		}
		kids = append(kids, l)
		kids = append(kids, p.layout()...)
	}
	if len(kids) == 0 {
		return p.empty(RuleLogs), nil
	}
	return p.wrap(RuleLogs, kids...), nil
}

func (p *parser) log() (node, error) {
	tab, err := p.expect(tokTab)
	if err != nil {
		return nil, err
	}
	event, err := p.logEvent()
	if err != nil {
		return nil, err
	}
	kids, err := p.lineEnd([]node{p.leaf(RuleTab, tab), event})
	if err != nil {
		return nil, err
	}
	return p.wrap(RuleLog, kids...), nil
}

var eventRules = map[string]Rule{
	"WORKING DAY": RuleWorkingDay,
	"WORK":        RuleWork,
	"LUNCH":       RuleLunch,
	"BREAK":       RuleBreak,
	"LEAVE":       RuleLeave,
}

func (p *parser) logEvent() (node, error) {
	kw := p.peek()
	rule, ok := eventRules[kw.value]
	if kw.kind != tokKeyword || !ok {
		return nil, p.unexpected(kw, "WORK, WORKING DAY, LUNCH, BREAK or LEAVE")
	}
	p.next()
	period, err := p.timePeriod()
	if err != nil {
		return nil, err
	}
	kids := []node{period}
	if p.peek().kind == tokSummary {
		kids = append(kids, p.summary(p.next()))
	}
	event := p.span(rule, kw.pos, kids[len(kids)-1].Span().End, kids...)
	return p.wrap(RuleLogEvent, event), nil
}

// summary drops the leading bar; the text keeps its surrounding spaces.
func (p *parser) summary(t token) node {
	at := t.pos
	at.Offset++
	at.Column++
	return p.span(RuleSummary, at, t.end())
}

func (p *parser) timePeriod() (node, error) {
	var inner node
	var err error
	switch t := p.peek(); t.kind {
	case tokTime:
		inner, err = p.timeRange()
	case tokHours, tokMinutes:
		inner, err = p.period()
	default:
		return nil, p.unexpected(t, "period or time range")
	}
	if err != nil {
		return nil, err
	}
	return p.wrap(RuleTimePeriod, inner), nil
}

func (p *parser) period() (node, error) {
	t := p.next()
	var inner node
	switch t.kind {
	case tokMinutes:
		inner = p.unit(RulePeriodMinutes, t)
	case tokHours:
		kids := []node{p.unit(RulePeriodHours, t)}
		if p.peek().kind == tokMinutes {
			kids = append(kids, p.unit(RulePeriodMinutes, p.next()))
		}
		inner = p.wrap(RulePeriodHoursMinutes, kids...)
	default:
		return nil, p.unexpected(t, "period")
	}
	return p.wrap(RulePeriod, inner), nil
}

// unit splits "90m" into a PERIOD_MINUTES node over a numbers leaf.
func (p *parser) unit(rule Rule, t token) node {
	digits := strings.TrimRight(t.value, "hm")
	num := p.span(RuleNumbers, t.pos, t.pos.Offset+len(digits))
	return p.span(rule, t.pos, t.end(), num)
}

func (p *parser) time() (node, error) {
	t, err := p.expect(tokTime)
	if err != nil {
		return nil, err
	}
	return p.leaf(RuleTime, t), nil
}

func (p *parser) timeRange() (node, error) {
	start, err := p.time()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokDash); err != nil {
		return nil, err
	}
	end, err := p.timeRangeEnd()
	if err != nil {
		return nil, err
	}
	return p.wrap(RuleTimeRange, start, end), nil
}

func (p *parser) timeRangeEnd() (node, error) {
	t := p.peek()
	var inner node
	switch {
	case t.kind == tokTime:
		inner = p.leaf(RuleTime, p.next())
	case t.kind == tokKeyword && t.value == "NOW":
		inner = p.leaf(RuleNow, p.next())
	default:
		return nil, p.unexpected(t, "time or NOW")
	}
	return p.wrap(RuleTimeRangeEnd, inner), nil
}
