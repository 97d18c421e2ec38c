package ingest

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// SerialEpoch is day zero for spreadsheet serial dates: serial 1 is
// 1899-12-31 and serial 45658 is 2025-01-01.
//
// Two conventions circulate (1899-12-30 and 1899-12-31). The 1899-12-30 base
// absorbs the phantom 1900-02-29 of the 1900 date system, so it agrees with
// what a spreadsheet displays for every serial above 60, which covers all
// real data. Serials 1..60 come out one day early.
var SerialEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

const isoLayout = "2006-01-02"

var (
	isoDateRe     = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	dayMonthYear  = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
	serialTokenRe = regexp.MustCompile(`^\d{4,6}$`)
)

// Serial day counts of 0001-01-01 and 9999-12-31, the range that formats as
// four-digit years.
const (
	minSerialDays = -693593
	maxSerialDays = 2958465
)

// IsCanonicalDate reports whether s is already YYYY-MM-DD.
func IsCanonicalDate(s string) bool { return isoDateRe.MatchString(s) }

// IsCalendarDate reports whether s is YYYY-MM-DD and names a real day.
func IsCalendarDate(s string) bool {
	if !IsCanonicalDate(s) {
		return false
	}
	_, err := time.Parse(isoLayout, s)
	return err == nil
}

// FromSerial converts a spreadsheet serial day count to YYYY-MM-DD.
// The fractional part (time of day) is dropped and the result is clamped to
// 0001-01-01..9999-12-31. NaN gives "".
func FromSerial(serial float64) string {
	if math.IsNaN(serial) {
		return ""
	}
	f := math.Floor(serial)
	days := maxSerialDays
	switch {
	case f < minSerialDays:
		days = minSerialDays
	case f < maxSerialDays:
		days = int(f)
	}
	return SerialEpoch.AddDate(0, 0, days).Format(isoLayout)
}

// ParseSerialToken reinterprets a 4 to 6 digit text token as a serial date.
// It is used to repair dates that were stored as the serial's text.
func ParseSerialToken(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if !serialTokenRe.MatchString(s) {
		return "", false
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return "", false
	}
	return FromSerial(float64(n)), true
}

// ParseDayMonthYear rewrites D/M/YYYY or DD/MM/YYYY as YYYY-MM-DD.
// Components are only padded; the calendar is not validated.
func ParseDayMonthYear(s string) (string, bool) {
	m := dayMonthYear.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return "", false
	}
	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	return fmt.Sprintf("%s-%02d-%02d", m[3], month, day), true
}

// NormalizeDate resolves any supported cell representation to YYYY-MM-DD.
//
//   - absent or blank text gives ""
//   - canonical text is returned as is
//   - text containing "/" is read as day/month/year
//   - numbers are serial day counts from SerialEpoch
//   - native dates use their own calendar components
//
// Anything else is returned unchanged as text.
func NormalizeDate(v Value) string {
	switch v.Kind {
	case KindAbsent:
		return ""
	case KindNumber:
		return FromSerial(v.Number)
	case KindDate:
		return v.Time.Format(isoLayout)
	default:
		return NormalizeDateString(v.Text)
	}
}

// NormalizeDateString is NormalizeDate for text input.
func NormalizeDateString(s string) string {
	t := strings.TrimSpace(s)
	switch {
	case t == "":
		return ""
	case IsCanonicalDate(t):
		return t
	case strings.Contains(t, "/"):
		if out, ok := ParseDayMonthYear(t); ok {
			return out
		}
	}
	return s
}
