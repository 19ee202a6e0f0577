package timesheet

import (
	"errors"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

var definition = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `#[^\n]*`},
	{Name: "Date", Pattern: `\d{4}-\d{2}-\d{2}`},
	{Name: "Time", Pattern: `\d{2}:\d{2}`},
	{Name: "Hours", Pattern: `\d+h`},
	{Name: "Minutes", Pattern: `\d+m`},
	{Name: "Keyword", Pattern: `WORKING DAY|WORK|LUNCH|BREAK|LEAVE|NOW`},
	{Name: "DayName", Pattern: `MON|TUE|WED|THU|FRI|SAT|SUN`},
	{Name: "Dash", Pattern: `-`},
	{Name: "Summary", Pattern: `\|[^\n]*`},
	{Name: "Tab", Pattern: `\t`},
	{Name: "Newline", Pattern: `\r?\n`},
	{Name: "Space", Pattern: ` +`},
})

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokDate
	tokTime
	tokHours
	tokMinutes
	tokKeyword
	tokDayName
	tokDash
	tokSummary
	tokTab
	tokNewline
)

var tokenKinds = map[string]tokenKind{
	"Date":    tokDate,
	"Time":    tokTime,
	"Hours":   tokHours,
	"Minutes": tokMinutes,
	"Keyword": tokKeyword,
	"DayName": tokDayName,
	"Dash":    tokDash,
	"Summary": tokSummary,
	"Tab":     tokTab,
	"Newline": tokNewline,
}

func (k tokenKind) String() string {
	switch k {
	case tokEOF:
		return "end of input"
	case tokDate:
		return "date"
	case tokTime:
		return "time"
	case tokHours:
		return "hours"
	case tokMinutes:
		return "minutes"
	case tokKeyword:
		return "keyword"
	case tokDayName:
		return "day name"
	case tokDash:
		return `"-"`
	case tokSummary:
		return "summary"
	case tokTab:
		return "tab"
	default:
		return "newline"
	}
}

type token struct {
	kind  tokenKind
	value string
	pos   lexer.Position
}

func (t token) end() int { return t.pos.Offset + len(t.value) }

// tokenize lexes src, dropping spaces and comments.
func tokenize(src string) ([]token, error) {
	lex, err := definition.LexString("", src)
	if err != nil {
		return nil, lexError(err)
	}
	raw, err := lexer.ConsumeAll(lex)
	if err != nil {
		return nil, lexError(err)
	}
	names := map[lexer.TokenType]string{}
	for name, typ := range definition.Symbols() {
		names[typ] = name
	}
	out := make([]token, 0, len(raw))
	for _, t := range raw {
		if t.EOF() {
			out = append(out, token{kind: tokEOF, pos: t.Pos})
			break
		}
		kind, ok := tokenKinds[names[t.Type]]
		if !ok {
			continue
		}
		out = append(out, token{kind: kind, value: t.Value, pos: t.Pos})
	}
	return out, nil
}

func lexError(err error) error {
	var lerr *lexer.Error
	if errors.As(err, &lerr) {
		return &SyntaxError{Pos: lerr.Pos, Message: strings.TrimSpace(lerr.Msg)}
	}
	return &SyntaxError{Message: err.Error()}
}
