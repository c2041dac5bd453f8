package domain

// ContactSubmission is a guest inquiry posted by the contact form.
type ContactSubmission struct {
	Name       string     `json:"name" validate:"required"`
	Email      string     `json:"email" validate:"required"`
	Guests     FlexString `json:"guests"`
	Message    string     `json:"message,omitempty"`
	CheckIn    string     `json:"checkIn,omitempty"`
	CheckOut   string     `json:"checkOut,omitempty"`
	SubmitDate string     `json:"submitDate,omitempty"`
}

// Email is a composed outbound message, independent of the relay that sends it.
type Email struct {
	ID      string
	From    string
	To      []string
	ReplyTo string
	Subject string
	Text    string
	HTML    string
}
