package booking

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// CheckoutOptions are the site-level checkout settings.
type CheckoutOptions struct {
	BaseURL  string // https://checkout.lodgify.com
	Language string
	Account  string
	Currency string
	Ref      string
}

// query keeps parameters in insertion order.
type query [][2]string

func (q query) add(k, v string) query { return append(q, [2]string{k, v}) }

func (q query) encode() string {
	parts := make([]string, len(q))
	for i, kv := range q {
		parts[i] = url.QueryEscape(kv[0]) + "=" + url.QueryEscape(kv[1])
	}
	return strings.Join(parts, "&")
}

// CheckoutURL is {base}/{lang}/{account}/{propertyID}/contact with currency,
// ref, arrival, departure and adults.
func CheckoutURL(o CheckoutOptions, propertyID int64, arrival, departure time.Time, adults int) (string, error) {
	if propertyID == 0 {
		return "", ErrMissingPropertyID
	}
	base := strings.TrimRight(o.BaseURL, "/")
	path := fmt.Sprintf("%s/%s/%s/%d/contact", base, url.PathEscape(o.Language), url.PathEscape(o.Account), propertyID)
	q := query{}.
		add("currency", o.Currency).
		add("ref", o.Ref).
		add("arrival", Day(arrival).Format("2006-01-02")).
		add("departure", Day(departure).Format("2006-01-02")).
		add("adults", strconv.Itoa(adults))
	return path + "?" + q.encode(), nil
}

// SearchURL is the availability-search redirect for a date range.
func SearchURL(base string, arrival, departure time.Time, adults int) string {
	q := query{}.
		add("adults", strconv.Itoa(adults)).
		add("children", "0").
		add("infants", "0").
		add("pets", "0").
		add("sort", "price").
		add("arrival", Day(arrival).Format("20060102")).
		add("departure", Day(departure).Format("20060102"))
	return strings.TrimRight(base, "/") + "/?" + q.encode()
}
