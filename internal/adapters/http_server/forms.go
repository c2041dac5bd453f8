package httpserver

import (
	"encoding/json"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"rental_site/internal/domain"
)

const maxFormBytes = 1 << 20

// isFormPost is true for bodies sent by a plain HTML form.
func isFormPost(r *http.Request) bool {
	mt, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return mt == "application/x-www-form-urlencoded" || mt == "multipart/form-data"
}

func parseForm(r *http.Request) error {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/") {
		return r.ParseMultipartForm(maxFormBytes)
	}
	return r.ParseForm()
}

// decodeContact reads a submission from JSON or from the site's contact form.
func decodeContact(r *http.Request) (domain.ContactSubmission, error) {
	var sub domain.ContactSubmission
	if !isFormPost(r) {
		err := json.NewDecoder(r.Body).Decode(&sub)
		return sub, err
	}
	if err := parseForm(r); err != nil {
		return sub, err
	}
	f := r.PostFormValue
	sub = domain.ContactSubmission{
		Name:       strings.TrimSpace(f("name")),
		Email:      strings.TrimSpace(f("email")),
		Guests:     domain.FlexString(f("guests")),
		Message:    f("message"),
		CheckIn:    f("checkIn"),
		CheckOut:   f("checkOut"),
		SubmitDate: f("submitDate"),
	}
	return sub, nil
}

// decodeCheckout reads a stay request from JSON or from the booking form.
func decodeCheckout(r *http.Request) (checkoutRequest, error) {
	var req checkoutRequest
	if !isFormPost(r) {
		err := json.NewDecoder(r.Body).Decode(&req)
		return req, err
	}
	if err := parseForm(r); err != nil {
		return req, err
	}
	f := r.PostFormValue
	req = checkoutRequest{
		PropertyID: formInt(f("propertyId")),
		Arrival:    f("arrival"),
		Departure:  f("departure"),
		Adults:     int(formInt(f("adults"))),
		Locale:     f("locale"),
	}
	return req, nil
}

// formInt is 0 for an empty or malformed field.
func formInt(s string) int64 {
	n, _ := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	return n
}
