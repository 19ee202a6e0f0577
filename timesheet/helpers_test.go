package timesheet_test

import (
	"time"
)

const sample = "2024-01-08\n" +
	"MON\n" +
	"\tWORKING DAY 08:30 - 17:00\n" +
	"\tLUNCH 45m\n" +
	"\tBREAK 15m | coffee\n" +
	"\tWORK 1h 30m | release\n" +
	"TUE\n" +
	"\tWORKING DAY 09:00 - NOW\n"

// noon is the clock used for ranges ending at NOW.
func noon() time.Time { return time.Date(2024, 1, 9, 12, 0, 0, 0, time.UTC) }
