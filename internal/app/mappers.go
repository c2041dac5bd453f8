package app

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cast"

	"rental_site/internal/domain"
)

/********** alias registries **********/

var periodAliases = map[string][]string{
	"start":     {"start", "start_date", "startDate", "from"},
	"end":       {"end", "end_date", "endDate", "to"},
	"available": {"available", "is_available", "isAvailable"},
}

var rateAliases = map[string][]string{
	"items":      {"calendar_items", "calendarItems", "items"},
	"date":       {"date", "day"},
	"is_default": {"is_default", "isDefault"},
	"min_stay":   {"prices.0.min_stay", "prices.0.minStay", "min_stay", "minStay"},
}

/********** tiny helpers **********/

// lookupAny walks dot paths through maps; numeric parts index into lists.
func lookupAny(m map[string]any, path string) any {
	cur := any(m)
	for _, part := range strings.Split(path, ".") {
		switch obj := cur.(type) {
		case map[string]any:
			v, ok := obj[part]
			if !ok {
				return nil
			}
			cur = v
		case []any:
			i, err := cast.ToIntE(part)
			if err != nil || i < 0 || i >= len(obj) {
				return nil
			}
			cur = obj[i]
		default:
			return nil
		}
	}
	return cur
}

func firstAny(m map[string]any, paths ...string) any {
	for _, p := range paths {
		if v := lookupAny(m, p); v != nil {
			return v
		}
	}
	return nil
}

// firstInt64Flexible accepts float64, int and numeric strings.
func firstInt64Flexible(m map[string]any, paths ...string) (int64, bool) {
	for _, p := range paths {
		v := lookupAny(m, p)
		if v == nil {
			continue
		}
		if n, err := cast.ToInt64E(v); err == nil {
			return n, true
		}
	}
	return 0, false
}

// boolFlexible accepts true/false, 0/1 and their string forms.
func boolFlexible(v any) bool {
	if f, ok := v.(float64); ok {
		return f != 0
	}
	b, err := cast.ToBoolE(v)
	if err != nil {
		return false
	}
	return b
}

func dateFlexible(v any) (time.Time, bool) {
	s := strings.TrimSpace(cast.ToString(v))
	if s == "" {
		return time.Time{}, false
	}
	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	y, mo, d := t.Date()
	return time.Date(y, mo, d, 0, 0, 0, 0, time.UTC), true
}

func asMaps(v any) []map[string]any {
	raw, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]map[string]any, 0, len(raw))
	for _, it := range raw {
		if m, ok := it.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}

/********** availability mapper **********/

// mapCalendar normalizes the channel manager's availability entries and
// rates calendar. Only the first availability entry is read; malformed
// periods are skipped.
func mapCalendar(propertyID int64, avail []map[string]any, rates map[string]any, now time.Time) domain.AvailabilityCalendar {
	cal := domain.AvailabilityCalendar{PropertyID: propertyID, FetchedAt: now.UTC()}

	if len(avail) > 0 {
		entry := avail[0]
		if id, ok := firstInt64Flexible(entry, "property_id", "propertyId", "house_id"); ok && id != 0 {
			cal.PropertyID = id
		}
		for _, p := range asMaps(entry["periods"]) {
			start, ok1 := dateFlexible(firstAny(p, periodAliases["start"]...))
			end, ok2 := dateFlexible(firstAny(p, periodAliases["end"]...))
			if !ok1 || !ok2 {
				log.Warn().Int64("property", propertyID).Interface("period", p).Msg("skipping malformed availability period")
				continue
			}
			cal.Periods = append(cal.Periods, domain.Period{
				Start:     start,
				End:       end,
				Available: boolFlexible(firstAny(p, periodAliases["available"]...)),
			})
		}
	}

	if rates != nil {
		for _, it := range asMaps(firstAny(rates, rateAliases["items"]...)) {
			n, ok := firstInt64Flexible(it, rateAliases["min_stay"]...)
			if !ok || n <= 0 {
				continue
			}
			if boolFlexible(firstAny(it, rateAliases["is_default"]...)) {
				cal.MinStay = append(cal.MinStay, domain.MinStayRule{IsDefault: true, Nights: int(n)})
				continue
			}
			d, ok := dateFlexible(firstAny(it, rateAliases["date"]...))
			if !ok {
				continue
			}
			cal.MinStay = append(cal.MinStay, domain.MinStayRule{Date: d, Nights: int(n)})
		}
	}
	return cal
}
