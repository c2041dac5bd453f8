package domain

import "errors"

var (
	ErrNotFound            = errors.New("not found")
	ErrContentNotFound     = errors.New("content not found")
	ErrMissingCredentials  = errors.New("email service not configured")
	ErrUnsupportedProvider = errors.New("provider not supported")
	ErrFormDisabled        = errors.New("contact form is disabled")
)
