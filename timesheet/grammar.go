// Package timesheet implements a small language for logging working hours
// on top of cstpack: a lexer and parser producing raw nodes, domain types
// with their packers, an evaluator computing credit and deficit, and a
// report renderer.
package timesheet

// Rule tags the nodes produced by the timesheet parser.
type Rule int

const (
	RuleBody Rule = iota
	RuleWeeks
	RuleWeek
	RuleDate
	RuleDays
	RuleDay
	RuleDayName
	RuleLogs
	RuleLog
	RuleLogEvent
	RuleWork
	RuleWorkingDay
	RuleLunch
	RuleBreak
	RuleLeave
	RuleTimePeriod
	RulePeriod
	RulePeriodMinutes
	RulePeriodHours
	RulePeriodHoursMinutes
	RuleNumbers
	RuleTimeRange
	RuleTime
	RuleTimeRangeEnd
	RuleNow
	RuleSummary
	RuleTab
	RuleNewline
	RuleEOI
)

var ruleNames = [...]string{
	RuleBody:               "body",
	RuleWeeks:              "weeks",
	RuleWeek:               "week",
	RuleDate:               "DATE",
	RuleDays:               "days",
	RuleDay:                "day",
	RuleDayName:            "DAY_NAME",
	RuleLogs:               "logs",
	RuleLog:                "log",
	RuleLogEvent:           "log_event",
	RuleWork:               "work",
	RuleWorkingDay:         "working_day",
	RuleLunch:              "lunch",
	RuleBreak:              "break",
	RuleLeave:              "leave",
	RuleTimePeriod:         "time_period",
	RulePeriod:             "PERIOD",
	RulePeriodMinutes:      "PERIOD_MINUTES",
	RulePeriodHours:        "PERIOD_HOURS",
	RulePeriodHoursMinutes: "period_hours_minutes",
	RuleNumbers:            "numbers",
	RuleTimeRange:          "time_range",
	RuleTime:               "TIME",
	RuleTimeRangeEnd:       "time_range_end",
	RuleNow:                "NOW",
	RuleSummary:            "SUMMARY",
	RuleTab:                "TAB",
	RuleNewline:            "NEWLINE",
	RuleEOI:                "EOI",
}

func (r Rule) String() string {
	if r < 0 || int(r) >= len(ruleNames) {
		return "unknown"
	}
	return ruleNames[r]
}

var trivia = []Rule{RuleTab, RuleNewline}

// Trivia is the same for every rule: tabs and line breaks carry layout only.
func (Rule) Trivia() []Rule { return trivia }
