package timesheet

import (
	"time"

	"github.com/reoring/cstpack/codec"
)

// DefaultWorkingDay is the time expected to be worked each day.
const DefaultWorkingDay = 8 * time.Hour

// DayDelta is the credit (positive) or deficit (negative) of one day.
type DayDelta struct {
	Weekday  DayName
	Delta    time.Duration
	HadLunch bool
}

// WeekDelta sums the days of a week.
type WeekDelta struct {
	StartingDate Date
	Delta        time.Duration
	Days         []DayDelta
}

// TotalDelta sums all weeks. The last logged day is taken to be today.
type TotalDelta struct {
	Total               time.Duration
	TotalExcludingToday time.Duration
	Weeks               []WeekDelta
}

// Today returns the last logged day, if any.
func (t TotalDelta) Today() (DayDelta, bool) {
	if len(t.Weeks) == 0 {
		return DayDelta{}, false
	}
	days := t.Weeks[len(t.Weeks)-1].Days
	if len(days) == 0 {
		return DayDelta{}, false
	}
	return days[len(days)-1], true
}

// Evaluator turns packed weeks into deltas.
type Evaluator struct {
	// WorkingDay is subtracted from every day. Zero means DefaultWorkingDay.
	WorkingDay time.Duration
	// Now resolves ranges ending at NOW. Nil means time.Now.
	Now func() time.Time
}

// Evaluate computes the delta of every day, week and the total.
func (e Evaluator) Evaluate(weeks Weeks) TotalDelta {
	now := codec.ClockOf(e.now())
	out := TotalDelta{Weeks: make([]WeekDelta, 0, len(weeks))}
	for _, w := range weeks {
		wd := WeekDelta{StartingDate: w.Date, Days: make([]DayDelta, 0, len(w.Days))}
		for _, d := range w.Days {
			dd := e.day(d, now)
			wd.Delta += dd.Delta
			wd.Days = append(wd.Days, dd)
		}
		out.Total += wd.Delta
		out.Weeks = append(out.Weeks, wd)
	}
	out.TotalExcludingToday = out.Total
	if today, ok := out.Today(); ok {
		out.TotalExcludingToday -= today.Delta
	}
	return out
}

func (e Evaluator) day(d Day, now codec.Clock) DayDelta {
	out := DayDelta{Weekday: d.Name}
	for _, l := range d.Logs {
		length := Length(l.Event.Period(), now)
		switch l.Event.(type) {
		case Work, WorkingDay, Leave:
			out.Delta += length
		case Lunch:
			out.HadLunch = true
			out.Delta -= length
		case Break:
			out.Delta -= length
		}
	}
	out.Delta -= e.workingDay()
	return out
}

func (e Evaluator) workingDay() time.Duration {
	if e.WorkingDay == 0 {
		return DefaultWorkingDay
	}
	return e.WorkingDay
}

func (e Evaluator) now() time.Time {
	if e.Now == nil {
		return time.Now()
	}
	return e.Now()
}

// Length returns the duration of p, resolving NOW to now. A range ending
// before it starts has a negative length.
func Length(p TimePeriod, now codec.Clock) time.Duration {
	switch v := p.(type) {
	case Period:
		return v.Duration()
	case TimeRange:
		end := now
		if t, ok := v.End.(Time); ok {
			end = codec.Clock(t)
		}
		return end.Sub(codec.Clock(v.Start))
	}
	return 0
}
