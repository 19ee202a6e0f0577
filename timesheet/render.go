package timesheet

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/muesli/termenv"
)

// Defaults used by Renderer when its fields are zero.
const (
	DefaultWeeksShown = 4
	DefaultLunch      = 30 * time.Minute
)

type tone int

const (
	plain tone = iota
	credit
	deficit
)

// Cell is one row of a block: a short figure and a comment.
type Cell struct {
	Figure  string
	Comment string
	tone    tone
}

// Segment is a group of cells; segments of a block are divided by a rule.
type Segment []Cell

// Block is a boxed group of segments.
type Block []Segment

// Column is the whole report.
type Column []Block

// Renderer lays out a TotalDelta as a column of boxes.
type Renderer struct {
	// Weeks is how many of the latest weeks are shown.
	Weeks int
	// Lunch is added to the deadlines when today has no lunch logged.
	Lunch time.Duration
	Now   func() time.Time
}

// Render writes the report for t to out. Figures are coloured when out's
// profile supports it.
func (r Renderer) Render(out *termenv.Output, t TotalDelta) error {
	shown := r.weeks()
	if len(t.Weeks) > shown {
		if _, err := io.WriteString(out, "\n      . . .   Previous weeks truncated\n\n"); err != nil {
			return err
		}
	}
	_, err := io.WriteString(out, r.Column(t).Render(out))
	return err
}

// Column builds the blocks of the report: the latest weeks, the totals and
// the deadlines.
func (r Renderer) Column(t TotalDelta) Column {
	weeks := t.Weeks
	if n := r.weeks(); len(weeks) > n {
		weeks = weeks[len(weeks)-n:]
	}
	col := make(Column, 0, len(weeks)+2)
	for _, w := range weeks {
		col = append(col, weekBlock(w))
	}
	col = append(col, Block{
		{deltaCell(t.TotalExcludingToday, fmt.Sprintf("TOTAL %s BEFORE TODAY", creditWord(t.TotalExcludingToday)))},
		{deltaCell(t.Total, fmt.Sprintf("TOTAL %s NOW", creditWord(t.Total)))},
	})
	return append(col, r.deadlines(t))
}

func weekBlock(w WeekDelta) Block {
	days := make(Segment, 0, len(w.Days))
	for _, d := range w.Days {
		days = append(days, deltaCell(d.Delta, string(d.Weekday)))
	}
	return Block{
		{deltaCell(w.Delta, fmt.Sprintf("Week starting %s", w.StartingDate))},
		days,
	}
}

func (r Renderer) deadlines(t TotalDelta) Block {
	var today, lunch time.Duration
	if d, ok := t.Today(); ok {
		today = d.Delta
		if !d.HadLunch {
			lunch = r.lunch()
		}
	}
	now := r.now()
	return Block{
		deadline(now.Add(-t.Total), lunch, "EARLIEST FINISH TIME"),
		deadline(now.Add(-today), lunch, "RETAIN CREDIT"),
	}
}

func deadline(at time.Time, lunch time.Duration, label string) Segment {
	seg := Segment{{Figure: at.Format("15:04"), Comment: label}}
	if lunch > 0 {
		seg = append(seg, Cell{Figure: at.Add(lunch).Format("15:04"), Comment: label + " + LUNCH"})
	}
	return seg
}

func deltaCell(d time.Duration, comment string) Cell {
	c := Cell{Figure: FormatDelta(d), Comment: comment, tone: credit}
	if d < 0 {
		c.tone = deficit
	}
	return c
}

func creditWord(d time.Duration) string {
	if d > 0 {
		return "CREDIT"
	}
	return "DEFICIT"
}

// FormatDelta renders d as a signed figure: "+15m", "-1:05". Seconds are
// truncated.
func FormatDelta(d time.Duration) string {
	minutes := int64(d / time.Minute)
	sign := '+'
	if minutes < 0 {
		sign = '-'
		minutes = -minutes
	}
	h, m := minutes/60, minutes%60
	var s string
	if h == 0 {
		s = fmt.Sprintf("%dm", m)
	} else {
		s = fmt.Sprintf("%d:%02d", h, m)
	}
	return fmt.Sprintf("%c%-4s", sign, s)
}

// Render draws the column. out only decides colouring; nil means none.
func (c Column) Render(out *termenv.Output) string {
	var b strings.Builder
	for _, block := range c {
		b.WriteString("    ┌───────┐\n")
		for i, seg := range block {
			if i > 0 {
				b.WriteString("    ├───────┤\n")
			}
			for _, cell := range seg {
				fmt.Fprintf(&b, "    │ %s │ %s\n", paint(out, fmt.Sprintf("%-5s", cell.Figure), cell.tone), cell.Comment)
			}
		}
		b.WriteString("    └───────┘\n")
	}
	return b.String()
}

func paint(out *termenv.Output, s string, t tone) string {
	if out == nil || t == plain {
		return s
	}
	color := out.Color("2")
	if t == deficit {
		color = out.Color("1")
	}
	return out.String(s).Foreground(color).String()
}

func (r Renderer) weeks() int {
	if r.Weeks <= 0 {
		return DefaultWeeksShown
	}
	return r.Weeks
}

func (r Renderer) lunch() time.Duration {
	if r.Lunch <= 0 {
		return DefaultLunch
	}
	return r.Lunch
}

func (r Renderer) now() time.Time {
	if r.Now == nil {
		return time.Now()
	}
	return r.Now()
}
