package properties

import (
	"fmt"
	"strings"

	"rental_site/internal/domain"
	"rental_site/internal/shared"
)

// ValidationError lists every missing field of one property.
type ValidationError struct {
	Property string
	Issues   []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("property validation failed for %q:\n  - %s", e.Property, strings.Join(e.Issues, "\n  - "))
}

// ruleLabels and ruleMessages keep the authored wording for nested rules.
var (
	ruleLabels   = map[string]string{"capacity.guests": "capacity", "size.value": "size"}
	ruleMessages = map[string]string{"rooms": "at least one room is required"}
)

// Validate checks required fields and applies defaults in place.
func Validate(p *domain.Property) error {
	if issues := shared.Issues(p, ruleLabels, ruleMessages); len(issues) > 0 {
		return &ValidationError{Property: p.DisplayName(), Issues: issues}
	}

	if p.Published == nil {
		t := true
		p.Published = &t
	}
	if p.Features == nil {
		p.Features = []string{}
	}
	if p.Size.Unit == "" {
		p.Size.Unit = "sqm"
	}
	return nil
}
