// Package fromnow implements the `fromNow` time-offset grammar and
// timestamp formatting (spec §6), grounded on jsone/shared.py's fromNow/
// stringDate. A Clock is injected so tests can freeze time (spec §5: "the
// only observable side effect is reading the current time... SHOULD be
// injectable").
package fromnow

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/sandrolain/jsone-go/pkg/errs"
)

// Clock supplies the current time. The zero value is not usable; use
// SystemClock for production and a fixed-time fake in tests.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the real wall clock via time.Now, always in UTC.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }

// offsetRE extends jsone/shared.py's FROMNOW_RE with the `yr`/`hr`/`wk`
// unit abbreviations spec §6 lists alongside the long and single-letter
// forms (the original only accepts the long and single-letter spellings).
var offsetRE = regexp.MustCompile(strings.Join([]string{
	`^(\s*(?P<years>\d+)\s*(years?|yr|y))?`,
	`(\s*(?P<months>\d+)\s*(months?|mo))?`,
	`(\s*(?P<weeks>\d+)\s*(weeks?|wk|w))?`,
	`(\s*(?P<days>\d+)\s*(days?|d))?`,
	`(\s*(?P<hours>\d+)\s*(hours?|hr|h))?`,
	`(\s*(?P<minutes>\d+)\s*(min(utes?)?|m))?\s*`,
	`(\s*(?P<seconds>\d+)\s*(sec(onds?)?|s))?\s*$`,
}, ""))

// Offset computes the time offset's signed timedelta from offset's unit
// grammar. Years are folded into 365 days plus a `15*years` minutes
// correction; months into 30 days plus `10*months` hours, `4*months`
// minutes, `48*months` seconds, matching the original's actual arithmetic
// (see SPEC_FULL.md's SUPPLEMENTED FEATURES).
func Offset(offset string) (time.Duration, error) {
	s := strings.TrimSpace(offset)
	future := true
	if strings.HasPrefix(s, "-") {
		future = false
		s = strings.TrimSpace(s[1:])
	} else if strings.HasPrefix(s, "+") {
		s = strings.TrimSpace(s[1:])
	}

	m := offsetRE.FindStringSubmatch(s)
	if m == nil {
		return 0, errs.Interpreterf("offset string %q does not parse", offset)
	}
	groups := make(map[string]string, len(m))
	for i, name := range offsetRE.SubexpNames() {
		if name != "" && m[i] != "" {
			groups[name] = m[i]
		}
	}
	atoi := func(name string) int {
		if v, ok := groups[name]; ok {
			n, _ := strconv.Atoi(v)
			return n
		}
		return 0
	}

	var days, hours, minutes, seconds int
	if years := atoi("years"); years != 0 {
		days += 365 * years
		minutes += 15 * years
	}
	if months := atoi("months"); months != 0 {
		days += 30 * months
		hours += 10 * months
		minutes += 4 * months
		seconds += 48 * months
	}
	days += atoi("days")
	hours += atoi("hours")
	minutes += atoi("minutes")
	seconds += atoi("seconds")
	weeks := atoi("weeks")

	delta := time.Duration(weeks)*7*24*time.Hour +
		time.Duration(days)*24*time.Hour +
		time.Duration(hours)*time.Hour +
		time.Duration(minutes)*time.Minute +
		time.Duration(seconds)*time.Second

	if !future {
		delta = -delta
	}
	return delta, nil
}

// Apply shifts reference by offset's signed delta and formats the result
// per spec §6 (`YYYY-MM-DDTHH:MM:SS.mmmZ`).
func Apply(offset string, reference time.Time) (string, error) {
	delta, err := Offset(offset)
	if err != nil {
		return "", err
	}
	return FormatUTC(reference.Add(delta)), nil
}

// FormatUTC renders t as an ISO-8601 UTC timestamp truncated to exactly
// three fractional-second digits, matching jsone/shared.py's stringDate
// (which substitutes Go's variable-precision RFC3339Nano down to
// milliseconds, never micro/nanoseconds).
func FormatUTC(t time.Time) string {
	t = t.UTC()
	return t.Format("2006-01-02T15:04:05.000") + "Z"
}

// ParseUTC parses an ISO-8601 timestamp of the form produced by FormatUTC
// or RFC3339, used to interpret an explicit `from` reference string.
func ParseUTC(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02T15:04:05.000Z", s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, errs.Interpreterf("invalid timestamp %q", s)
	}
	return t.UTC(), nil
}
