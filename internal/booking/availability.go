// Package booking holds the availability calendar rules and the booking
// widget state machine shared by the API and the rendered pages.
package booking

import (
	"errors"
	"fmt"
	"time"

	"rental_site/internal/domain"
)

const dayKey = "2006-01-02"

var (
	ErrRangeUnavailable  = errors.New("range includes unavailable dates")
	ErrInvalidRange      = errors.New("departure must be after arrival")
	ErrStartUnavailable  = errors.New("start date is unavailable")
	ErrMissingPropertyID = errors.New("property ID not found")
)

// MinStayError rejects a stay shorter than the rule for its arrival date.
type MinStayError struct {
	Required int
	Nights   int
}

func (e *MinStayError) Error() string {
	return fmt.Sprintf("minimum stay for this date is %d nights", e.Required)
}

// Day truncates t to midnight UTC of its calendar date.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Nights counts the nights between arrival and departure.
func Nights(from, to time.Time) int {
	return int(Day(to).Sub(Day(from)).Hours() / 24)
}

// Availability is a precomputed view over one calendar.
type Availability struct {
	propertyID  int64
	unavailable map[string]struct{}
	start, end  time.Time
	hasWindow   bool
	minStay     map[string]int
	defaultMin  int
}

func NewAvailability(cal domain.AvailabilityCalendar) *Availability {
	a := &Availability{
		propertyID:  cal.PropertyID,
		unavailable: map[string]struct{}{},
		minStay:     map[string]int{},
	}
	for _, p := range cal.Periods {
		s, e := Day(p.Start), Day(p.End)
		if e.Before(s) {
			continue
		}
		if !a.hasWindow || s.Before(a.start) {
			a.start = s
		}
		if !a.hasWindow || e.After(a.end) {
			a.end = e
		}
		a.hasWindow = true
		if p.Available {
			continue
		}
		for d := s; !d.After(e); d = d.AddDate(0, 0, 1) {
			a.unavailable[d.Format(dayKey)] = struct{}{}
		}
	}
	for _, r := range cal.MinStay {
		if r.Nights <= 0 {
			continue
		}
		if r.IsDefault {
			a.defaultMin = r.Nights
			continue
		}
		if !r.Date.IsZero() {
			a.minStay[Day(r.Date).Format(dayKey)] = r.Nights
		}
	}
	return a
}

func (a *Availability) PropertyID() int64 { return a.propertyID }

// Window is the span covered by the calendar; ok is false for an empty calendar.
func (a *Availability) Window() (start, end time.Time, ok bool) {
	return a.start, a.end, a.hasWindow
}

// IsDateUnavailable is true for past days, days outside the window and
// days inside an unavailable period.
func (a *Availability) IsDateUnavailable(d, today time.Time) bool {
	d = Day(d)
	if d.Before(Day(today)) || !a.hasWindow {
		return true
	}
	if d.Before(a.start) || d.After(a.end) {
		return true
	}
	_, blocked := a.unavailable[d.Format(dayKey)]
	return blocked
}

// MinStayForDate is the date rule, else the default rule, else 1.
func (a *Availability) MinStayForDate(d time.Time) int {
	if n, ok := a.minStay[Day(d).Format(dayKey)]; ok {
		return n
	}
	if a.defaultMin > 0 {
		return a.defaultMin
	}
	return 1
}

// ValidateRange checks the minimum stay for the arrival date, then that
// every day from arrival through departure is available.
func (a *Availability) ValidateRange(from, to, today time.Time) error {
	from, to = Day(from), Day(to)
	if !to.After(from) {
		return ErrInvalidRange
	}
	nights := Nights(from, to)
	if min := a.MinStayForDate(from); nights < min {
		return &MinStayError{Required: min, Nights: nights}
	}
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if a.IsDateUnavailable(d, today) {
			return ErrRangeUnavailable
		}
	}
	return nil
}

// UnavailableDays lists the blocked days between from and to, for rendering.
func (a *Availability) UnavailableDays(from, to, today time.Time) []string {
	var out []string
	for d := Day(from); !d.After(Day(to)); d = d.AddDate(0, 0, 1) {
		if a.IsDateUnavailable(d, today) {
			out = append(out, d.Format(dayKey))
		}
	}
	return out
}

// FetchWindow is the span requested from the channel manager: today plus days.
func FetchWindow(today time.Time, days int) (time.Time, time.Time) {
	s := Day(today)
	return s, s.AddDate(0, 0, days)
}
