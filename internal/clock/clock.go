package clock

import (
	"fmt"
	"time"
)

// DateLayout is the ISO-8601 calendar date layout used for entry dates.
const DateLayout = "2006-01-02"

// Clock is the time source used by services and token issuance.
type Clock interface {
	Now() time.Time
	// Today returns the current calendar date as YYYY-MM-DD in the clock's location.
	Today() string
}

// System reads wall-clock time and resolves dates in Location.
type System struct {
	Location *time.Location
}

// NewSystem creates a system clock for the given location (Local when nil).
func NewSystem(loc *time.Location) *System {
	if loc == nil {
		loc = time.Local
	}
	return &System{Location: loc}
}

func (s *System) Now() time.Time {
	return time.Now().In(s.Location)
}

func (s *System) Today() string {
	return s.Now().Format(DateLayout)
}

// Fixed always reports the same instant. Used by tests and the seed command.
type Fixed struct {
	At time.Time
}

func (f Fixed) Now() time.Time {
	return f.At
}

func (f Fixed) Today() string {
	return f.At.Format(DateLayout)
}

// ParseDate validates an ISO calendar date and returns it in canonical form.
func ParseDate(s string) (string, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return "", fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return t.Format(DateLayout), nil
}

// AddDays shifts an ISO calendar date by n days.
func AddDays(date string, n int) (string, error) {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return "", fmt.Errorf("invalid date %q: expected YYYY-MM-DD", date)
	}
	return t.AddDate(0, 0, n).Format(DateLayout), nil
}
