package httpserver

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"rental_site/internal/adapters/observability"
	"rental_site/internal/domain"
	"rental_site/internal/shared"
)

type contactResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

func contactError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, contactResponse{Success: false, Error: msg})
}

func (h *Handlers) contactInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Contact form API endpoint. Use POST to submit form data.",
	})
}

// contact relays one submission, sent as JSON by the page script or
// form-encoded by the plain form. Configuration is checked before the body
// is read, so a misconfigured site fails the same way for every request.
func (h *Handlers) contact(w http.ResponseWriter, r *http.Request) {
	provider := h.Contact.Provider()
	mailer, err := h.Contact.Relay()
	switch {
	case errors.Is(err, domain.ErrFormDisabled):
		observability.ObserveContact(provider, "rejected")
		contactError(w, http.StatusBadRequest, "Contact form is disabled")
		return
	case errors.Is(err, domain.ErrUnsupportedProvider):
		observability.ObserveContact(provider, "rejected")
		contactError(w, http.StatusBadRequest, "Provider not supported")
		return
	case err != nil:
		observability.ObserveContact(provider, "error")
		contactError(w, http.StatusInternalServerError, "Email service not configured")
		return
	}

	sub, err := decodeContact(r)
	if err != nil {
		observability.ObserveContact(provider, "rejected")
		msg := "Invalid JSON body"
		if isFormPost(r) {
			msg = "Invalid form body"
		}
		contactError(w, http.StatusBadRequest, msg)
		return
	}
	if err := shared.Struct(sub); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			for _, fe := range ve {
				log.Debug().Str("field", fe.Field()).Str("tag", fe.Tag()).Msg("contact submission rejected")
			}
		}
		observability.ObserveContact(provider, "rejected")
		contactError(w, http.StatusBadRequest, "Name and email are required")
		return
	}

	if _, err := h.Contact.Submit(r.Context(), mailer, sub); err != nil {
		contactError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, contactResponse{Success: true, Message: "Email sent successfully"})
}
