package model

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
)

// dateLayout is the canonical textual form of a DateKey. It is used
// both as the store document ID and in all user-facing fields.
const dateLayout = "02-01-2006"

// DateKey is a calendar date in DD-MM-YYYY form, the primary key of
// one DailyContent document.
type DateKey string

// ParseDateKey validates s as a well-formed DD-MM-YYYY calendar date.
func ParseDateKey(s string) (DateKey, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return "", goerr.Wrap(ErrInvalidDate, err.Error(), goerr.V("date", s))
	}
	// time.Parse accepts some non-canonical spellings (e.g. "1-01-2026");
	// require the exact canonical form so store keys stay unique.
	if t.Format(dateLayout) != s {
		return "", goerr.Wrap(ErrInvalidDate, "non-canonical date", goerr.V("date", s))
	}
	return DateKey(s), nil
}

// NewDateKey converts a time to its canonical DateKey.
func NewDateKey(t time.Time) DateKey {
	return DateKey(t.Format(dateLayout))
}

func (d DateKey) String() string {
	return string(d)
}

// Time returns the date at midnight UTC.
func (d DateKey) Time() time.Time {
	t, err := time.Parse(dateLayout, string(d))
	if err != nil {
		return time.Time{}
	}
	return t
}
