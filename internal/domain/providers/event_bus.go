package providers

import (
	"context"

	"github.com/zatekoja/hpv-prevention/backend/internal/domain/entities"
)

// EventBus defines the interface for publishing and subscribing to search events
type EventBus interface {
	// Publish publishes an event to all subscribers
	Publish(ctx context.Context, channel string, event *entities.SearchEvent) error

	// Subscribe subscribes to events on a channel until ctx is cancelled
	Subscribe(ctx context.Context, channel string) (<-chan *entities.SearchEvent, error)

	// Unsubscribe unsubscribes from a channel
	Unsubscribe(ctx context.Context, channel string) error

	// Close closes the event bus and all subscriptions
	Close() error
}

// EventChannelSearches is the default channel for search events
const EventChannelSearches = "hpv:searches"
