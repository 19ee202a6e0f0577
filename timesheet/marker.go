package timesheet

import (
	"fmt"
	"strings"
)

// EventKind names a log event on the command line.
type EventKind string

const (
	KindWorkingDay EventKind = "working-day"
	KindWork       EventKind = "work"
	KindBreak      EventKind = "break"
	KindLeave      EventKind = "leave"
	KindLunch      EventKind = "lunch"
)

// EventKinds lists the accepted kinds in display order.
var EventKinds = []EventKind{KindWorkingDay, KindWork, KindBreak, KindLeave, KindLunch}

var keywords = map[EventKind]string{
	KindWorkingDay: "WORKING DAY",
	KindWork:       "WORK",
	KindBreak:      "BREAK",
	KindLeave:      "LEAVE",
	KindLunch:      "LUNCH",
}

// ParseEventKind accepts a kind in any case, with "_" or "-" separators.
func ParseEventKind(s string) (EventKind, error) {
	k := EventKind(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-"))
	if _, ok := keywords[k]; !ok {
		return "", fmt.Errorf("unknown event kind %q (want one of %v)", s, EventKinds)
	}
	return k, nil
}

// Keyword returns the keyword opening a log line of this kind.
func (k EventKind) Keyword() string { return keywords[k] }

// Marker records the start or end of an event.
type Marker struct {
	Kind EventKind
	At   TimeRangeEnd
}

func (m Marker) String() string { return fmt.Sprintf("%s: %s", m.Kind.Keyword(), m.At) }
