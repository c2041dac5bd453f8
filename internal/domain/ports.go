package domain

import (
	"context"
	"time"
)

// ChannelClient fetches raw availability data from the channel manager.
type ChannelClient interface {
	GetAvailability(ctx context.Context, propertyID int64, start, end time.Time) ([]map[string]any, error)
	GetRatesCalendar(ctx context.Context, propertyID int64, start, end time.Time) (map[string]any, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// Mailer relays a composed email. Implementations must not retry.
type Mailer interface {
	Send(ctx context.Context, e Email) error
}

// Publisher uploads a built site tree.
type Publisher interface {
	Publish(ctx context.Context, dir string) (int, error)
}
