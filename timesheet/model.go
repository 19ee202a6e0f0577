package timesheet

import (
	"fmt"
	"time"

	"github.com/reoring/cstpack/codec"
)

type (
	// Date is the first day of a week as written in the sheet.
	Date string
	// DayName is one of MON..SUN.
	DayName string
	// Summary is the free text after a "|".
	Summary string
)

// Time is a wall-clock time of day.
type Time codec.Clock

func (t Time) String() string { return codec.Clock(t).String() }

// Minutes is a period written as "Nm".
type Minutes int

// Hours is the hour part of a period written as "Nh".
type Hours int

// HoursMinutes is a period written as "Nh" or "Nh Nm".
type HoursMinutes struct {
	Hours   Hours
	Minutes *Minutes
}

// TimePeriod is either a Period or a TimeRange.
type TimePeriod interface {
	fmt.Stringer
	timePeriod()
}

// Period is a length of time: Minutes or HoursMinutes.
type Period interface {
	TimePeriod
	Duration() time.Duration
}

func (m Minutes) Duration() time.Duration { return time.Duration(m) * time.Minute }
func (m Minutes) String() string          { return fmt.Sprintf("%dm", int(m)) }
func (Minutes) timePeriod()               {}

func (h HoursMinutes) Duration() time.Duration {
	d := time.Duration(h.Hours) * time.Hour
	if h.Minutes != nil {
		d += h.Minutes.Duration()
	}
	return d
}

func (h HoursMinutes) String() string {
	if h.Minutes == nil {
		return fmt.Sprintf("%dh", int(h.Hours))
	}
	return fmt.Sprintf("%dh %dm", int(h.Hours), int(*h.Minutes))
}

func (HoursMinutes) timePeriod() {}

// Now ends a time range at the current time.
type Now struct{}

// TimeRangeEnd is either Now or a Time.
type TimeRangeEnd interface {
	fmt.Stringer
	timeRangeEnd()
}

func (Now) String() string { return "NOW" }
func (Now) timeRangeEnd()  {}
func (Time) timeRangeEnd() {}

// TimeRange is "HH:MM - HH:MM" or "HH:MM - NOW".
type TimeRange struct {
	Start Time
	End   TimeRangeEnd
}

func (r TimeRange) String() string { return fmt.Sprintf("%s - %s", r.Start, r.End) }
func (TimeRange) timePeriod()      {}

// LogEvent is one of Work, WorkingDay, Lunch, Break or Leave.
type LogEvent interface {
	fmt.Stringer
	Period() TimePeriod
	logEvent()
}

type (
	// Work is time worked on a named task.
	Work struct {
		Span    TimePeriod
		Summary Summary
	}
	// WorkingDay is the main stretch of a day.
	WorkingDay struct {
		Span    TimePeriod
		Summary *Summary
	}
	// Lunch is subtracted from the day.
	Lunch struct {
		Span    TimePeriod
		Summary *Summary
	}
	// Break is subtracted from the day and needs a reason.
	Break struct {
		Span    TimePeriod
		Summary Summary
	}
	// Leave counts as time worked.
	Leave struct {
		Span    TimePeriod
		Summary *Summary
	}
)

func (e Work) Period() TimePeriod       { return e.Span }
func (e WorkingDay) Period() TimePeriod { return e.Span }
func (e Lunch) Period() TimePeriod      { return e.Span }
func (e Break) Period() TimePeriod      { return e.Span }
func (e Leave) Period() TimePeriod      { return e.Span }

func (Work) logEvent()       {}
func (WorkingDay) logEvent() {}
func (Lunch) logEvent()      {}
func (Break) logEvent()      {}
func (Leave) logEvent()      {}

func (e Work) String() string       { return describe("WORK", e.Span, &e.Summary) }
func (e WorkingDay) String() string { return describe("WORKING DAY", e.Span, e.Summary) }
func (e Lunch) String() string      { return describe("LUNCH", e.Span, e.Summary) }
func (e Break) String() string      { return describe("BREAK", e.Span, &e.Summary) }
func (e Leave) String() string      { return describe("LEAVE", e.Span, e.Summary) }

func describe(keyword string, p TimePeriod, s *Summary) string {
	if s == nil {
		return fmt.Sprintf("%s %s", keyword, p)
	}
	return fmt.Sprintf("%s %s | %s", keyword, p, *s)
}

// Log is one line of a day.
type Log struct {
	Event LogEvent
}

// Day is a day name followed by its logs.
type Day struct {
	Name DayName
	Logs []Log
}

// Week is a starting date followed by its days.
type Week struct {
	Date Date
	Days []Day
}

// Weeks is the content of a timesheet.
type Weeks []Week

// Body is the whole input: the weeks and the end of input.
type Body struct {
	Weeks Weeks
}
