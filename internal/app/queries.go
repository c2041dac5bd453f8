package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"rental_site/internal/booking"
	"rental_site/internal/domain"
	"rental_site/internal/siteconfig"
)

// AvailabilityService serves channel-manager calendars cache-aside.
type AvailabilityService struct {
	client   domain.ChannelClient
	cache    domain.Cache
	cacheTTL time.Duration
	days     int
	now      func() time.Time
}

func NewAvailabilityService(c domain.ChannelClient, cache domain.Cache, ttl time.Duration, days int) *AvailabilityService {
	if days <= 0 {
		days = 365
	}
	return &AvailabilityService{client: c, cache: cache, cacheTTL: ttl, days: days, now: time.Now}
}

// WithClock replaces time.Now, for tests.
func (s *AvailabilityService) WithClock(now func() time.Time) *AvailabilityService {
	s.now = now
	return s
}

// Calendar returns the calendar from today over the configured window. A
// rates failure degrades to no min-stay rules; an availability failure is
// returned.
func (s *AvailabilityService) Calendar(ctx context.Context, propertyID int64) (domain.AvailabilityCalendar, error) {
	if propertyID <= 0 {
		return domain.AvailabilityCalendar{}, booking.ErrMissingPropertyID
	}
	start, end := booking.FetchWindow(s.now(), s.days)
	key := fmt.Sprintf("calendar:%d:%s", propertyID, start.Format("2006-01-02"))

	var cal domain.AvailabilityCalendar
	if s.cache != nil {
		if ok, _ := s.cache.Get(ctx, key, &cal); ok {
			return cal, nil
		}
	}

	var (
		avail []map[string]any
		rates map[string]any
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		avail, err = s.client.GetAvailability(gctx, propertyID, start, end)
		if err != nil {
			return fmt.Errorf("availability %d: %w", propertyID, err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		rates, err = s.client.GetRatesCalendar(gctx, propertyID, start, end)
		if err != nil && !errors.Is(err, context.Canceled) {
			log.Warn().Err(err).Int64("property", propertyID).Msg("rates calendar unavailable, min stay defaults to 1")
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return domain.AvailabilityCalendar{}, err
	}

	cal = mapCalendar(propertyID, avail, rates, s.now())
	if s.cache != nil {
		_ = s.cache.Set(ctx, key, cal, int(s.cacheTTL.Seconds()))
	}
	return cal, nil
}

// StayRequest is a checkout attempt for one property.
type StayRequest struct {
	PropertyID int64
	Arrival    time.Time
	Departure  time.Time
	Adults     int
}

type StayQuote struct {
	URL    string `json:"url"`
	Nights int    `json:"nights"`
	Adults int    `json:"adults"`
}

// Checkout replays the widget rules on the server and builds the checkout
// URL. Rule violations come back as booking errors.
func (s *AvailabilityService) Checkout(ctx context.Context, req StayRequest, opts booking.CheckoutOptions, maxGuests int) (StayQuote, error) {
	cal, err := s.Calendar(ctx, req.PropertyID)
	if err != nil {
		return StayQuote{}, err
	}
	w := booking.NewWidget(booking.NewAvailability(cal), maxGuests, s.now)
	if err := w.SelectStart(req.Arrival); err != nil {
		return StayQuote{}, err
	}
	if err := w.SelectEnd(req.Departure); err != nil {
		return StayQuote{}, err
	}
	adults := w.SetGuests(req.Adults)
	u, err := w.Checkout(opts)
	if err != nil {
		return StayQuote{}, err
	}
	from, to, _ := w.Range()
	return StayQuote{URL: u, Nights: booking.Nights(from, to), Adults: adults}, nil
}

// CheckoutOptions maps the site booking settings for one page locale. The
// configured checkout language wins over the page locale.
func CheckoutOptions(site *siteconfig.Config, locale string) booking.CheckoutOptions {
	lang := site.Booking.Language
	if lang == "" {
		lang = locale
	}
	return booking.CheckoutOptions{
		BaseURL:  site.Booking.CheckoutBaseURL,
		Language: lang,
		Account:  site.Booking.AccountSlug,
		Currency: site.Booking.Currency,
		Ref:      site.Booking.Ref,
	}
}
