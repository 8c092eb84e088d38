package models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidDate is returned when a date string matches none of the accepted layouts.
var ErrInvalidDate = errors.New("invalid date")

// dateLayouts are tried in order. Day-first numeric layouts are deliberately absent:
// "03/04/2024" is read as March 4th, never April 3rd.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02 15:04:05",
	"2006/01/02",
	"1/2/2006",
	"1/2/06",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"2 January 2006",
	time.RFC1123Z,
	time.RFC1123,
	time.RFC850,
	time.ANSIC,
	"2006-01",
	"2006",
}

// Date is a calendar value read from text in any of several formats.
// The original text is kept so a catalog round-trips unchanged; ordering
// always uses the parsed time.
type Date struct {
	t   time.Time
	raw string
}

// NewDate wraps t. The text form is RFC 3339.
func NewDate(t time.Time) Date {
	return Date{t: t, raw: t.Format(time.RFC3339)}
}

// ParseDate parses s with the accepted layouts. An empty (or blank) string yields
// the zero Date without error.
func ParseDate(s string) (Date, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return Date{}, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return Date{t: t, raw: trimmed}, nil
		}
	}
	if isDigits(trimmed) {
		if secs, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
			return Date{t: time.Unix(secs, 0).UTC(), raw: trimmed}, nil
		}
	}
	return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

// MustParseDate is ParseDate for literals known to be valid. It panics otherwise.
func MustParseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Time returns the parsed calendar value.
func (d Date) Time() time.Time {
	return d.t
}

// IsZero reports whether no date was given.
func (d Date) IsZero() bool {
	return d.t.IsZero()
}

// After reports whether d is strictly later than other.
func (d Date) After(other Date) bool {
	return d.t.After(other.t)
}

// String returns the date as it was written in the catalog.
func (d Date) String() string {
	return d.raw
}

// MarshalText implements encoding.TextMarshaler.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.raw), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Date) UnmarshalText(text []byte) error {
	parsed, err := ParseDate(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func isDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return s != ""
}
