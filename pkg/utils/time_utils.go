// utils/timeutil.go
package utils

import "time"

// Clock returns the current time. Services take one so tests can pin "now".
type Clock func() time.Time

// Malaysia time location (MYT, +08:00)
var myLoc = func() *time.Location {
	if loc, err := time.LoadLocation("Asia/Kuala_Lumpur"); err == nil {
		return loc
	}
	return time.FixedZone("MYT", 8*3600)
}()

const (
	SheetTimestampLayout = "02/01/2006 15:04:05"
	DOBLayout            = "2/1/2006"
)

// LoadLocation resolves name, falling back to Malaysia time.
func LoadLocation(name string) *time.Location {
	if name == "" {
		return myLoc
	}
	if loc, err := time.LoadLocation(name); err == nil {
		return loc
	}
	return myLoc
}

// ClockIn returns a clock reporting wall time in loc.
func ClockIn(loc *time.Location) Clock {
	if loc == nil {
		loc = myLoc
	}
	return func() time.Time { return time.Now().In(loc) }
}

// FixedClock always reports t.
func FixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

// FormatSheetTimestamp renders t as DD/MM/YYYY HH:MM:SS.
func FormatSheetTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(SheetTimestampLayout)
}
