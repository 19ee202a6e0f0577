// Package codec holds reusable second-stage transforms for leaf text. Each
// function has the shape func(string) (T, error) so it can be passed
// straight to cstpack.Repack.
package codec

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrFormat is wrapped by errors for text that does not parse.
var ErrFormat = errors.New("invalid format")

// ErrRange is wrapped by errors for values that parse but are out of range.
var ErrRange = errors.New("out of range")

func formatErr(kind, s string, cause error) error {
	if cause != nil {
		return fmt.Errorf("%w: %s %q: %v", ErrFormat, kind, s, cause)
	}
	return fmt.Errorf("%w: %s %q", ErrFormat, kind, s)
}

// Int parses a non-negative decimal integer. Signs are rejected.
func Int(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" || s[0] == '+' || s[0] == '-' {
		return 0, formatErr("integer", s, nil)
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, formatErr("integer", s, err)
	}
	return n, nil
}

// IntAtMost is Int rejecting values above limit.
func IntAtMost(limit int) func(string) (int, error) {
	return func(s string) (int, error) {
		n, err := Int(s)
		if err != nil {
			return 0, err
		}
		if n > limit {
			return 0, fmt.Errorf("%w: %d exceeds %d", ErrRange, n, limit)
		}
		return n, nil
	}
}

// Date parses a calendar date in ISO form (2006-01-02).
func Date(s string) (time.Time, error) {
	t, err := time.Parse(time.DateOnly, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, formatErr("date", s, err)
	}
	return t, nil
}

// Duration parses the period notation used in logs: "45m", "2h" or
// "1h 30m". Whitespace between the parts is optional.
func Duration(s string) (time.Duration, error) {
	rest := strings.TrimSpace(s)
	if rest == "" {
		return 0, formatErr("duration", s, nil)
	}
	var total time.Duration
	seen := map[byte]bool{}
	for rest != "" {
		i := 0
		for i < len(rest) && rest[i] >= '0' && rest[i] <= '9' {
			i++
		}
		if i == 0 || i == len(rest) {
			return 0, formatErr("duration", s, nil)
		}
		n, err := strconv.Atoi(rest[:i])
		if err != nil {
			return 0, formatErr("duration", s, err)
		}
		unit := rest[i]
		if seen[unit] || (unit == 'h' && seen['m']) {
			return 0, formatErr("duration", s, nil)
		}
		seen[unit] = true
		switch unit {
		case 'h':
			total += time.Duration(n) * time.Hour
		case 'm':
			total += time.Duration(n) * time.Minute
		default:
			return 0, formatErr("duration", s, nil)
		}
		rest = strings.TrimSpace(rest[i+1:])
	}
	return total, nil
}
