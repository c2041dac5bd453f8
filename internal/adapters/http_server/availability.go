package httpserver

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/araddon/dateparse"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"rental_site/internal/adapters/lodgify"
	"rental_site/internal/app"
	"rental_site/internal/booking"
	"rental_site/internal/domain"
)

// Calendars is the availability surface the handlers need;
// *app.AvailabilityService fits.
type Calendars interface {
	Calendar(ctx context.Context, propertyID int64) (domain.AvailabilityCalendar, error)
	Checkout(ctx context.Context, req app.StayRequest, opts booking.CheckoutOptions, maxGuests int) (app.StayQuote, error)
}

type availabilityResponse struct {
	PropertyID     int64          `json:"propertyId"`
	Start          string         `json:"start,omitempty"`
	End            string         `json:"end,omitempty"`
	Unavailable    []string       `json:"unavailable"`
	MinStay        map[string]int `json:"minStay"`
	DefaultMinStay int            `json:"defaultMinStay"`
	FetchedAt      time.Time      `json:"fetchedAt"`
}

func newAvailabilityResponse(cal domain.AvailabilityCalendar, today time.Time) availabilityResponse {
	av := booking.NewAvailability(cal)
	out := availabilityResponse{
		PropertyID:     cal.PropertyID,
		Unavailable:    []string{},
		MinStay:        map[string]int{},
		DefaultMinStay: 1,
		FetchedAt:      cal.FetchedAt,
	}
	for _, r := range cal.MinStay {
		switch {
		case r.Nights <= 0:
		case r.IsDefault:
			out.DefaultMinStay = r.Nights
		case !r.Date.IsZero():
			out.MinStay[r.Date.Format("2006-01-02")] = r.Nights
		}
	}
	if start, end, ok := av.Window(); ok {
		out.Start, out.End = start.Format("2006-01-02"), end.Format("2006-01-02")
		out.Unavailable = append(out.Unavailable, av.UnavailableDays(start, end, today)...)
	}
	return out
}

func parsePropertyID(s string) (int64, bool) {
	id, err := strconv.ParseInt(s, 10, 64)
	return id, err == nil && id > 0
}

func (h *Handlers) availability(w http.ResponseWriter, r *http.Request) {
	if h.Calendar == nil {
		writeProblem(w, http.StatusServiceUnavailable, "Service Unavailable", "availability is not configured")
		return
	}
	id, ok := parsePropertyID(chi.URLParam(r, "propertyID"))
	if !ok {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "propertyID must be a positive number")
		return
	}
	cal, err := h.Calendar.Calendar(r.Context(), id)
	if err != nil {
		writeUpstreamProblem(w, id, err)
		return
	}
	w.Header().Set("Cache-Control", "public, max-age=60")
	writeETagged(w, r, newAvailabilityResponse(cal, time.Now()))
}

func writeUpstreamProblem(w http.ResponseWriter, id int64, err error) {
	if errors.Is(err, lodgify.ErrNotFound) {
		writeProblem(w, http.StatusNotFound, "Not Found", "property not found on channel manager")
		return
	}
	log.Error().Err(err).Int64("property", id).Msg("availability fetch failed")
	writeProblem(w, http.StatusBadGateway, "Bad Gateway", "availability could not be fetched")
}

type checkoutRequest struct {
	PropertyID int64  `json:"propertyId"`
	Arrival    string `json:"arrival"`
	Departure  string `json:"departure"`
	Adults     int    `json:"adults"`
	Locale     string `json:"locale,omitempty"`
}

// checkout validates a stay with the widget rules and returns the checkout
// URL, or redirects to it for a plain form post. Rule violations are 422
// with the widget's message.
func (h *Handlers) checkout(w http.ResponseWriter, r *http.Request) {
	if h.Calendar == nil {
		writeProblem(w, http.StatusServiceUnavailable, "Service Unavailable", "availability is not configured")
		return
	}
	req, err := decodeCheckout(r)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	arrival, err1 := dateparse.ParseIn(req.Arrival, time.UTC)
	departure, err2 := dateparse.ParseIn(req.Departure, time.UTC)
	if err1 != nil || err2 != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid dates", "arrival and departure must be dates")
		return
	}
	locale := req.Locale
	switch {
	case locale != "":
	case h.Content != nil:
		locale = h.Content.LocaleFromRequest(r)
	default:
		locale = h.Site.Locales.Default
	}
	maxGuests := h.Site.Booking.MaxGuests
	if cat, err := h.Catalog.Load(); err == nil {
		if p, ok := cat.ByChannelID(req.PropertyID); ok {
			maxGuests = app.MaxGuests(h.Site, p)
		}
	}

	q, err := h.Calendar.Checkout(r.Context(), app.StayRequest{
		PropertyID: req.PropertyID,
		Arrival:    arrival,
		Departure:  departure,
		Adults:     req.Adults,
	}, app.CheckoutOptions(h.Site, locale), maxGuests)

	var ms *booking.MinStayError
	switch {
	case err == nil && isFormPost(r):
		http.Redirect(w, r, q.URL, http.StatusSeeOther)
	case err == nil:
		writeJSON(w, http.StatusOK, q)
	case errors.Is(err, booking.ErrMissingPropertyID):
		writeProblem(w, http.StatusBadRequest, "Invalid ID", err.Error())
	case errors.As(err, &ms),
		errors.Is(err, booking.ErrRangeUnavailable),
		errors.Is(err, booking.ErrInvalidRange),
		errors.Is(err, booking.ErrStartUnavailable):
		writeProblem(w, http.StatusUnprocessableEntity, "Stay not bookable", err.Error())
	default:
		writeUpstreamProblem(w, req.PropertyID, err)
	}
}
