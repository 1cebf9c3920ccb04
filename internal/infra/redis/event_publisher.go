package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"battle-royale-service/internal/domain"
	"github.com/redis/go-redis/v9"
)

// EventPublisher forwards room events to PUBLISH battle:events:{roomId} so other
// instances (or a projector) can follow a battle they do not host.
type EventPublisher struct {
	client *redis.Client
}

func NewEventPublisher(client *redis.Client) *EventPublisher {
	return &EventPublisher{client: client}
}

func (p *EventPublisher) Publish(ctx context.Context, event domain.Event) error {
	raw, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode %s event: %w", event.Type, err)
	}
	return p.client.Publish(ctx, Channel(event.RoomID), raw).Err()
}

// Channel names the pub/sub channel of a room.
func Channel(roomID string) string {
	return "battle:events:" + roomID
}
