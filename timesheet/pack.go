package timesheet

import (
	"time"

	"github.com/reoring/cstpack"
	"github.com/reoring/cstpack/codec"
)

type Node = cstpack.Node[Rule]

// Period parts are bounded well below the range of time.Duration.
const (
	MaxPeriodHours   = 24 * 7
	MaxPeriodMinutes = 60 * MaxPeriodHours
)

var (
	dateP    = cstpack.Repack(cstpack.Leaf(RuleDate), parseDate)
	dayNameP = cstpack.Map(cstpack.Leaf(RuleDayName), func(s string) DayName { return DayName(s) })
	summaryP = cstpack.Map(cstpack.Leaf(RuleSummary), func(s string) Summary { return Summary(s) })
	timeP    = cstpack.Map(cstpack.Repack(cstpack.Leaf(RuleTime), codec.ClockTime), func(c codec.Clock) Time { return Time(c) })
	nowP     = cstpack.Map(cstpack.Leaf(RuleNow), func(string) Now { return Now{} })
	eoiP     = cstpack.Map(cstpack.Leaf(RuleEOI), func(string) struct{} { return struct{}{} })

	minutesP = cstpack.Map(cstpack.OneChild(RulePeriodMinutes, numberP(MaxPeriodMinutes)), func(n int) Minutes { return Minutes(n) })
	hoursP   = cstpack.Map(cstpack.OneChild(RulePeriodHours, numberP(MaxPeriodHours)), func(n int) Hours { return Hours(n) })

	hoursMinutesP = cstpack.Define(RulePeriodHoursMinutes, func(n Node) (HoursMinutes, error) {
		h, m, err := cstpack.PackOptionalSecond(n, RulePeriodHoursMinutes, hoursP, minutesP)
		return HoursMinutes{Hours: h, Minutes: m}, err
	})

	periodP = cstpack.Alternatives(RulePeriod,
		cstpack.Alt(minutesP, func(m Minutes) Period { return m }),
		cstpack.Alt(hoursMinutesP, func(h HoursMinutes) Period { return h }),
	)

	timeRangeEndP = cstpack.Alternatives(RuleTimeRangeEnd,
		cstpack.Alt(nowP, func(n Now) TimeRangeEnd { return n }),
		cstpack.Alt(timeP, func(t Time) TimeRangeEnd { return t }),
	)

	timeRangeP = cstpack.Define(RuleTimeRange, func(n Node) (TimeRange, error) {
		start, end, err := cstpack.PackTwoChildren(n, RuleTimeRange, timeP, timeRangeEndP)
		return TimeRange{Start: start, End: end}, err
	})

	timePeriodP = cstpack.Alternatives(RuleTimePeriod,
		cstpack.Alt(periodP, func(p Period) TimePeriod { return p }),
		cstpack.Alt(timeRangeP, func(r TimeRange) TimePeriod { return r }),
	)

	workP = cstpack.Define(RuleWork, func(n Node) (Work, error) {
		p, s, err := cstpack.PackTwoChildren(n, RuleWork, timePeriodP, summaryP)
		return Work{Span: p, Summary: s}, err
	})
	breakP = cstpack.Define(RuleBreak, func(n Node) (Break, error) {
		p, s, err := cstpack.PackTwoChildren(n, RuleBreak, timePeriodP, summaryP)
		return Break{Span: p, Summary: s}, err
	})
	workingDayP = cstpack.Define(RuleWorkingDay, func(n Node) (WorkingDay, error) {
		p, s, err := cstpack.PackOptionalSecond(n, RuleWorkingDay, timePeriodP, summaryP)
		return WorkingDay{Span: p, Summary: s}, err
	})
	lunchP = cstpack.Define(RuleLunch, func(n Node) (Lunch, error) {
		p, s, err := cstpack.PackOptionalSecond(n, RuleLunch, timePeriodP, summaryP)
		return Lunch{Span: p, Summary: s}, err
	})
	leaveP = cstpack.Define(RuleLeave, func(n Node) (Leave, error) {
		p, s, err := cstpack.PackOptionalSecond(n, RuleLeave, timePeriodP, summaryP)
		return Leave{Span: p, Summary: s}, err
	})

	logEventP = cstpack.Alternatives(RuleLogEvent,
		cstpack.Alt(workP, func(e Work) LogEvent { return e }),
		cstpack.Alt(workingDayP, func(e WorkingDay) LogEvent { return e }),
		cstpack.Alt(lunchP, func(e Lunch) LogEvent { return e }),
		cstpack.Alt(breakP, func(e Break) LogEvent { return e }),
		cstpack.Alt(leaveP, func(e Leave) LogEvent { return e }),
	)

	logP  = cstpack.Map(cstpack.OneChild(RuleLog, logEventP), func(e LogEvent) Log { return Log{Event: e} })
	logsP = cstpack.Each(RuleLogs, logP)

	dayP = cstpack.Define(RuleDay, func(n Node) (Day, error) {
		seq, err := cstpack.Sequence(n, RuleDay)
		if err != nil {
			return Day{}, err
		}
		name, err := cstpack.Next(seq, dayNameP)
		if err != nil {
			return Day{}, err
		}
		logs, err := cstpack.Next(seq, logsP)
		if err != nil {
			return Day{}, err
		}
		return Day{Name: name, Logs: logs}, seq.Done()
	})
	daysP = cstpack.Each(RuleDays, dayP)

	weekP = cstpack.Define(RuleWeek, func(n Node) (Week, error) {
		seq, err := cstpack.Sequence(n, RuleWeek)
		if err != nil {
			return Week{}, err
		}
		date, err := cstpack.Next(seq, dateP)
		if err != nil {
			return Week{}, err
		}
		days, err := cstpack.Next(seq, daysP)
		if err != nil {
			return Week{}, err
		}
		return Week{Date: date, Days: days}, seq.Done()
	})
	weeksP = cstpack.Map(cstpack.Each(RuleWeeks, weekP), func(w []Week) Weeks { return Weeks(w) })

	bodyP = cstpack.Define(RuleBody, func(n Node) (Body, error) {
		seq, err := cstpack.Sequence(n, RuleBody)
		if err != nil {
			return Body{}, err
		}
		weeks, err := cstpack.Next(seq, weeksP)
		if err != nil {
			return Body{}, err
		}
		if _, err := cstpack.Next(seq, eoiP); err != nil {
			return Body{}, err
		}
		return Body{Weeks: weeks}, seq.Done()
	})
)

// Parse parses and packs a whole timesheet. Errors are either a
// *SyntaxError or a *cstpack.PackingError[Rule].
func Parse(src string) (Weeks, error) {
	forest, err := ParseRaw(src)
	if err != nil {
		return nil, err
	}
	return PackForest(forest)
}

// PackForest packs a raw forest produced by ParseRaw.
func PackForest(forest []cstpack.RawNode[Rule]) (Weeks, error) {
	body, err := cstpack.PackRoot(forest, bodyP)
	if err != nil {
		return nil, err
	}
	return body.Weeks, nil
}

// ParseTime parses a single "HH:MM".
func ParseTime(s string) (Time, error) { return parseOne(s, RuleTime, timeP) }

// ParseTimeRangeEnd parses "HH:MM" or "NOW".
func ParseTimeRangeEnd(s string) (TimeRangeEnd, error) {
	return parseOne(s, RuleTimeRangeEnd, timeRangeEndP)
}

// ParseTimePeriod parses a period or a time range as written in a log.
func ParseTimePeriod(s string) (TimePeriod, error) {
	return parseOne(s, RuleTimePeriod, timePeriodP)
}

func parseOne[T any](s string, rule Rule, p cstpack.Packer[Rule, T]) (T, error) {
	forest, err := ParseRule(s, rule)
	if err != nil {
		var zero T
		return zero, err
	}
	return cstpack.PackRoot(forest, p)
}

func numberP(limit int) cstpack.Func[Rule, int] {
	return cstpack.Repack(cstpack.Leaf(RuleNumbers), codec.IntAtMost(limit))
}

// parseDate keeps the date as written once it is a real calendar day.
func parseDate(s string) (Date, error) {
	t, err := codec.Date(s)
	if err != nil {
		return "", err
	}
	return Date(t.Format(time.DateOnly)), nil
}
