package utils

import (
	"math"
	"strings"
	"time"
)

// India Standard Time; booking dates are interpreted in IST.
var istLoc = func() *time.Location {
	if loc, err := time.LoadLocation("Asia/Kolkata"); err == nil {
		return loc
	}
	return time.FixedZone("IST", 5*3600+1800)
}()

func NowUnixSeconds() int64 { return time.Now().Unix() }

// ParseDateIST accepts "2006-01-02" or RFC3339. ok is false for blank or bad input.
func ParseDateIST(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.ParseInLocation("2006-01-02", s, istLoc); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.In(istLoc), true
	}
	return time.Time{}, false
}

// Nights counts stays between check-in and check-out, never less than one.
// Unparseable dates count as a single night.
func Nights(checkIn, checkOut string) int {
	in, ok1 := ParseDateIST(checkIn)
	out, ok2 := ParseDateIST(checkOut)
	if !ok1 || !ok2 {
		return 1
	}
	n := int(math.Round(out.Sub(in).Hours() / 24))
	if n < 1 {
		return 1
	}
	return n
}

// FromUnix converts unix seconds; zero stays the zero time.
func FromUnix(sec int64) time.Time {
	if sec == 0 {
		return time.Time{}
	}
	return time.Unix(sec, 0)
}

func FormatRFC3339IST(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(istLoc).Format(time.RFC3339)
}
