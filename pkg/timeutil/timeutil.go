package timeutil

import (
	"fmt"
	"sync"
	"time"
)

// Clock returns the current time. Handlers take one so tests can pin timestamps.
type Clock func() time.Time

var (
	mu       sync.RWMutex
	location = defaultLocation()
)

func defaultLocation() *time.Location {
	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		// tzdata may be missing in minimal images
		return time.FixedZone("IST", 5*60*60+30*60)
	}
	return loc
}

// SetLocation switches the zone used for display strings and day boundaries.
func SetLocation(name string) error {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return fmt.Errorf("unknown timezone %q: %w", name, err)
	}
	mu.Lock()
	location = loc
	mu.Unlock()
	return nil
}

// Location returns the configured display zone
func Location() *time.Location {
	mu.RLock()
	defer mu.RUnlock()
	return location
}

// Now returns the current time in the configured zone
func Now() time.Time {
	return time.Now().In(Location())
}

// Display layouts matching the en-IN locale ("17/10/2026", "3:04:05 pm").
const (
	DateLayout        = "2006-01-02"
	DisplayDateLayout = "2/1/2006"
	DisplayTimeLayout = "3:04:05 pm"
)

// DisplayDate formats t as a locale date string in the configured zone
func DisplayDate(t time.Time) string {
	return t.In(Location()).Format(DisplayDateLayout)
}

// DisplayTime formats t as a locale time string in the configured zone
func DisplayTime(t time.Time) string {
	return t.In(Location()).Format(DisplayTimeLayout)
}

// ParseDate parses a YYYY-MM-DD date in the configured zone
func ParseDate(value string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, value, Location())
}

// StartOfDay returns 00:00:00 of t's day in the configured zone
func StartOfDay(t time.Time) time.Time {
	l := t.In(Location())
	return time.Date(l.Year(), l.Month(), l.Day(), 0, 0, 0, 0, Location())
}

// EndOfDay returns 23:59:59.999999999 of t's day in the configured zone
func EndOfDay(t time.Time) time.Time {
	l := t.In(Location())
	return time.Date(l.Year(), l.Month(), l.Day(), 23, 59, 59, 999999999, Location())
}
