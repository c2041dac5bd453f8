// Package lodgify is the channel-manager client for availability and
// min-stay rules.
package lodgify

import (
	"context"
	crand "crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"rental_site/internal/adapters/observability"
)

const (
	DefaultBaseURL = "https://api.lodgify.com"
	maxAttempts    = 4
	dateFormat     = "2006-01-02"
)

var (
	ErrNotFound     = errors.New("lodgify: not found")
	ErrUnauthorized = errors.New("lodgify: unauthorized")
	ErrForbidden    = errors.New("lodgify: forbidden")
)

type Client struct {
	base string
	hc   *http.Client
	key  string
	rl   *rate.Limiter
}

func New(base, key string, rps int) (*Client, error) {
	if key == "" {
		return nil, fmt.Errorf("lodgify API key is required")
	}
	if base == "" {
		base = DefaultBaseURL
	}
	if rps <= 0 {
		rps = 5
	}
	return &Client{
		base: strings.TrimRight(base, "/"),
		hc:   &http.Client{Timeout: 20 * time.Second},
		key:  key,
		rl:   rate.NewLimiter(rate.Limit(rps), rps),
	}, nil
}

// GetAvailability returns the raw availability entries, each carrying a
// periods list of {start, end, available}.
func (c *Client) GetAvailability(ctx context.Context, propertyID int64, start, end time.Time) ([]map[string]any, error) {
	q := url.Values{}
	q.Set("start", start.Format(dateFormat))
	q.Set("end", end.Format(dateFormat))
	candidates := []string{
		fmt.Sprintf("%s/v2/availability/%d?%s", c.base, propertyID, q.Encode()),
		fmt.Sprintf("%s/v1/availability/%d?periodStart=%s&periodEnd=%s", c.base, propertyID, start.Format(dateFormat), end.Format(dateFormat)),
	}
	var raw json.RawMessage
	if err := c.getFirst(ctx, "availability", candidates, &raw); err != nil {
		return nil, err
	}
	return decodeList(raw)
}

// GetRatesCalendar returns the raw rates calendar; min-stay rules live in
// its calendar_items.
func (c *Client) GetRatesCalendar(ctx context.Context, propertyID int64, start, end time.Time) (map[string]any, error) {
	q := url.Values{}
	q.Set("HouseId", strconv.FormatInt(propertyID, 10))
	q.Set("StartDate", start.Format(dateFormat))
	q.Set("EndDate", end.Format(dateFormat))
	candidates := []string{
		fmt.Sprintf("%s/v2/rates/calendar?%s", c.base, q.Encode()),
	}
	var out map[string]any
	return out, c.getFirst(ctx, "rates_calendar", candidates, &out)
}

// decodeList accepts either a bare array or a single object.
func decodeList(raw json.RawMessage) ([]map[string]any, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return nil, nil
	}
	if strings.HasPrefix(trimmed, "{") {
		var one map[string]any
		if err := json.Unmarshal(raw, &one); err != nil {
			return nil, err
		}
		return []map[string]any{one}, nil
	}
	var many []map[string]any
	return many, json.Unmarshal(raw, &many)
}

func (c *Client) getFirst(ctx context.Context, endpoint string, urls []string, out any) error {
	var last error
	for _, u := range urls {
		err := c.get(ctx, endpoint, u, out)
		if err == nil {
			return nil
		}
		if !errors.Is(err, ErrNotFound) {
			return err
		}
		last = err
	}
	if last != nil {
		return last
	}
	return errors.New("lodgify: no candidate URL succeeded")
}

// get is a rate-limited GET that retries 429 and transient 5xx, honoring
// Retry-After.
func (c *Client) get(ctx context.Context, endpoint, u string, out any) error {
	if err := c.rl.Wait(ctx); err != nil {
		return err
	}

	var lastErr error
	for i := 0; i < maxAttempts; i++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return err
		}
		req.Header.Set("X-ApiKey", c.key)
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", "rental-site/1.0")

		began := time.Now()
		resp, err := c.hc.Do(req)
		if err != nil {
			observability.ObserveExternal("lodgify", endpoint, 0, time.Since(began))
			if ctx.Err() != nil {
				return ctx.Err()
			}
			lastErr = err
			if i < maxAttempts-1 && sleepCtx(ctx, backoff(i)) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return lastErr
		}
		observability.ObserveExternal("lodgify", endpoint, resp.StatusCode, time.Since(began))

		switch resp.StatusCode {
		case http.StatusOK:
			err := json.NewDecoder(resp.Body).Decode(out)
			resp.Body.Close()
			if err != nil {
				return fmt.Errorf("lodgify: decode %s: %w", endpoint, err)
			}
			return nil

		case http.StatusNoContent:
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			return nil

		case http.StatusNotFound:
			resp.Body.Close()
			return ErrNotFound

		case http.StatusUnauthorized:
			resp.Body.Close()
			return ErrUnauthorized

		case http.StatusForbidden:
			resp.Body.Close()
			return ErrForbidden

		case http.StatusTooManyRequests, http.StatusInternalServerError,
			http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			wait := retryAfter(resp)
			resp.Body.Close()
			if wait == 0 {
				wait = backoff(i)
			}
			lastErr = fmt.Errorf("lodgify: remote %d", resp.StatusCode)
			if i < maxAttempts-1 && sleepCtx(ctx, wait) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return lastErr

		default:
			b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			resp.Body.Close()
			return fmt.Errorf("lodgify: bad status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
		}
	}
	return lastErr
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// retryAfter reads Retry-After as seconds or an HTTP date; 0 when absent.
func retryAfter(resp *http.Response) time.Duration {
	h := strings.TrimSpace(resp.Header.Get("Retry-After"))
	if h == "" {
		return 0
	}
	if secs, err := strconv.Atoi(h); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(h); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}

// backoff doubles from 200ms per attempt with up to +50% jitter.
func backoff(i int) time.Duration {
	base := time.Duration(1<<i) * 200 * time.Millisecond
	var b [1]byte
	if _, err := crand.Read(b[:]); err != nil {
		return base
	}
	return base + time.Duration(0.5*float64(b[0])/255.0*float64(base))
}
