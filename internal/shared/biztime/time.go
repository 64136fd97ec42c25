// Package biztime centralizes clock access. All storage and transport use UTC;
// the configured display timezone is only applied when rendering timestamps
// for people.
package biztime

import (
	"fmt"
	"sync"
	"time"
)

const (
	// DefaultTimezone is used when server.timezone is empty.
	DefaultTimezone = "UTC"

	// DisplayLayout matches the "dd.mm.yyyy hh:mm" format shown on the console.
	DisplayLayout = "02.01.2006 15:04"
)

var (
	bizLocation   *time.Location
	bizLocationMu sync.RWMutex
)

// Init sets the display timezone. If tz is empty, UTC is used.
func Init(tz string) error {
	if tz == "" {
		tz = DefaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return fmt.Errorf("invalid timezone %q: %w", tz, err)
	}
	bizLocationMu.Lock()
	bizLocation = loc
	bizLocationMu.Unlock()
	return nil
}

// Location returns the display timezone, UTC when Init was never called.
func Location() *time.Location {
	bizLocationMu.RLock()
	defer bizLocationMu.RUnlock()
	if bizLocation == nil {
		return time.UTC
	}
	return bizLocation
}

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// FormatDisplay formats t in the display timezone.
func FormatDisplay(t time.Time) string {
	return t.In(Location()).Format(DisplayLayout)
}

// FormatDisplayPtr formats an optional timestamp, returning "" for nil.
func FormatDisplayPtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return FormatDisplay(*t)
}
