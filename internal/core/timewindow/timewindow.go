// Package timewindow resolves named booking windows (Morning, Afternoon,
// Evening) to UTC hour-of-day ranges for a given city.
//
// Windows are defined in the city's local time and converted to UTC using a
// fixed offset table. A converted range may cross midnight, in which case the
// predicate becomes the disjunction hour >= start OR hour < end. The resolver
// is the only place window names and city offsets are interpreted; everything
// downstream consumes HourRange through one of its two adapters (SQL fragment
// or per-timestamp predicate).
package timewindow

import (
	"fmt"
	"strings"
	"time"

	"openslots/internal/core/normalize"
)

// Window is a named slice of the local day
type Window string

// Window values accepted on the wire. WindowNone is the absent filter;
// WindowCustom means caller-defined times and applies no engine filter either
const (
	WindowNone      Window = ""
	WindowMorning   Window = "Morning"
	WindowAfternoon Window = "Afternoon"
	WindowEvening   Window = "Evening"
	WindowCustom    Window = "Custom"
)

// ParseWindow maps user input onto a Window case-insensitively.
// Empty input means no filter; unknown input reports ok=false
func ParseWindow(s string) (Window, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return WindowNone, true
	case "morning":
		return WindowMorning, true
	case "afternoon":
		return WindowAfternoon, true
	case "evening":
		return WindowEvening, true
	case "custom":
		return WindowCustom, true
	default:
		return WindowNone, false
	}
}

// Filters reports whether the window constrains slot start hours
func (w Window) Filters() bool {
	_, ok := localHours[w]
	return ok
}

// Key returns the cache-key segment for the window: its canonical name,
// or "all" when it applies no filter
func (w Window) Key() string {
	if w.Filters() {
		return string(w)
	}
	return "all"
}

// localHours holds the window bounds in local time, half-open [start, end)
var localHours = map[Window][2]int{
	WindowMorning:   {9, 12},
	WindowAfternoon: {12, 16},
	WindowEvening:   {16, 20},
}

// cityOffsets maps folded city names to fixed UTC offsets in hours.
// Offsets are deliberately static (no DST); unknown cities resolve to UTC
var cityOffsets = map[string]int{
	"new york":      -5,
	"new york city": -5,
	"nyc":           -5,
	"san francisco": -8,
	"sf":            -8,
	"los angeles":   -8,
	"la":            -8,
	"bali":          8,
	"denpasar":      8,
}

// CityOffsetHours returns the fixed UTC offset for a city, 0 when unknown
func CityOffsetHours(city string) int {
	return cityOffsets[normalize.Fold(city)]
}

// HourRange is a half-open [StartUTC, EndUTC) hour-of-day range in UTC.
// Wraps marks ranges that cross midnight after conversion
type HourRange struct {
	StartUTC int
	EndUTC   int
	Wraps    bool
}

// Resolve converts a window in a city's local time to a UTC hour range.
// ok=false means no filtering applies (absent or Custom window)
func Resolve(w Window, city string) (HourRange, bool) {
	hours, ok := localHours[w]
	if !ok {
		return HourRange{}, false
	}
	off := CityOffsetHours(city)
	start := wrapHour(hours[0] - off)
	end := wrapHour(hours[1] - off)
	return HourRange{StartUTC: start, EndUTC: end, Wraps: start >= end}, true
}

// wrapHour normalizes an hour into [0, 24) arithmetically
func wrapHour(h int) int { return ((h % 24) + 24) % 24 }

// Matches reports whether t's UTC start hour falls inside the range
func (r HourRange) Matches(t time.Time) bool {
	h := t.UTC().Hour()
	if r.Wraps {
		return h >= r.StartUTC || h < r.EndUTC
	}
	return h >= r.StartUTC && h < r.EndUTC
}

// SQL renders the range as a parameterized predicate over column's UTC hour,
// appending the bounds to args and numbering placeholders from len(args)+1.
// column is a trusted SQL expression owned by the caller; the bounds always
// travel as bind parameters
func (r HourRange) SQL(column string, args []any) (string, []any) {
	hour := fmt.Sprintf("extract(hour from (%s at time zone 'utc'))", column)
	lo, hi := len(args)+1, len(args)+2
	args = append(args, r.StartUTC, r.EndUTC)
	if r.Wraps {
		return fmt.Sprintf("(%s >= $%d OR %s < $%d)", hour, lo, hour, hi), args
	}
	return fmt.Sprintf("(%s >= $%d AND %s < $%d)", hour, lo, hour, hi), args
}
