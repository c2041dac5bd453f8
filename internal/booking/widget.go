package booking

import (
	"errors"
	"time"
)

type State int

const (
	NoSelection State = iota
	StartSelected
	RangeSelected
	InvalidRange
)

func (s State) String() string {
	switch s {
	case StartSelected:
		return "start-selected"
	case RangeSelected:
		return "range-selected"
	case InvalidRange:
		return "invalid-range"
	default:
		return "no-selection"
	}
}

// Widget tracks a date-range selection against one calendar.
type Widget struct {
	av        *Availability
	now       func() time.Time
	maxGuests int

	from, to time.Time
	hasFrom  bool
	hasTo    bool
	err      error
	guests   int
}

// NewWidget starts with no selection and one guest. maxGuests <= 0 means 4.
func NewWidget(av *Availability, maxGuests int, now func() time.Time) *Widget {
	if maxGuests <= 0 {
		maxGuests = 4
	}
	if now == nil {
		now = time.Now
	}
	return &Widget{av: av, now: now, maxGuests: maxGuests, guests: 1}
}

// State is InvalidRange while a rejected end date's error is pending;
// the arrival date is kept.
func (w *Widget) State() State {
	switch {
	case w.hasFrom && w.hasTo:
		return RangeSelected
	case w.hasFrom && w.err != nil:
		return InvalidRange
	case w.hasFrom:
		return StartSelected
	default:
		return NoSelection
	}
}

// Range returns the selected days; ok is false without a full range.
func (w *Widget) Range() (from, to time.Time, ok bool) {
	return w.from, w.to, w.hasFrom && w.hasTo
}

func (w *Widget) Start() (time.Time, bool) { return w.from, w.hasFrom }

// Error is the pending validation message, empty when none.
func (w *Widget) Error() string {
	if w.err == nil {
		return ""
	}
	return w.err.Error()
}

func (w *Widget) Err() error { return w.err }

// SelectStart picks an arrival date. Unavailable days are rejected and the
// state is left unchanged.
func (w *Widget) SelectStart(d time.Time) error {
	if w.av.IsDateUnavailable(d, w.now()) {
		return ErrStartUnavailable
	}
	w.from, w.hasFrom = Day(d), true
	w.to, w.hasTo = time.Time{}, false
	w.err = nil
	return nil
}

// SelectEnd validates the range from the current start. On failure the end
// is dropped and the error is kept for display.
func (w *Widget) SelectEnd(d time.Time) error {
	if !w.hasFrom {
		return w.SelectStart(d)
	}
	if err := w.av.ValidateRange(w.from, d, w.now()); err != nil {
		w.to, w.hasTo = time.Time{}, false
		w.err = err
		return err
	}
	w.to, w.hasTo = Day(d), true
	w.err = nil
	return nil
}

// Pick handles a calendar click: the first click sets the arrival, the
// second sets the departure, and a click on or before the arrival restarts.
func (w *Widget) Pick(d time.Time) error {
	d = Day(d)
	switch w.State() {
	case StartSelected, InvalidRange:
		if d.After(w.from) {
			return w.SelectEnd(d)
		}
	}
	return w.SelectStart(d)
}

// Reset clears the selection and any error.
func (w *Widget) Reset() {
	w.from, w.to = time.Time{}, time.Time{}
	w.hasFrom, w.hasTo = false, false
	w.err = nil
}

// SetGuests clamps n into 1..maxGuests and returns the stored value.
func (w *Widget) SetGuests(n int) int {
	switch {
	case n < 1:
		n = 1
	case n > w.maxGuests:
		n = w.maxGuests
	}
	w.guests = n
	return n
}

func (w *Widget) Guests() int { return w.guests }

// Checkout builds the channel-manager checkout URL for the selected range.
func (w *Widget) Checkout(opts CheckoutOptions) (string, error) {
	from, to, ok := w.Range()
	if !ok {
		return "", errors.New("select arrival and departure first")
	}
	u, err := CheckoutURL(opts, w.av.PropertyID(), from, to, w.guests)
	if err != nil {
		w.err = err
		return "", err
	}
	return u, nil
}
