package domain

import "time"

// AvailabilityCalendar is fetched per view from the channel manager and never persisted.
type AvailabilityCalendar struct {
	PropertyID int64         `json:"propertyId"`
	Periods    []Period      `json:"periods"`
	MinStay    []MinStayRule `json:"minStay"`
	FetchedAt  time.Time     `json:"fetchedAt"`
}

// Period is an inclusive span of days sharing one availability flag.
type Period struct {
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Available bool      `json:"available"`
}

// MinStayRule applies to Date, or to every date without a rule when IsDefault is set.
type MinStayRule struct {
	Date      time.Time `json:"date,omitempty"`
	IsDefault bool      `json:"isDefault,omitempty"`
	Nights    int       `json:"nights"`
}
