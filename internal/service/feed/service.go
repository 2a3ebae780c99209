package feed

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/sushil1817/mealbridge-api/internal/domain"
)

// Channel carries every donation lifecycle transition as a JSON event.
// Delivery is best-effort fan-out: the donations table stays the system
// of record, the channel only keeps connected clients from polling.
const Channel = "donations:events"

type Service interface {
	Publish(ctx context.Context, eventType domain.DonationEventType, donation domain.Donation)
	Subscribe(ctx context.Context) (<-chan domain.DonationEvent, func())
}

type service struct {
	redis *redis.Client
}

func NewService(redisClient *redis.Client) Service {
	return &service{redis: redisClient}
}

func (s *service) Publish(ctx context.Context, eventType domain.DonationEventType, donation domain.Donation) {
	if s.redis == nil {
		return
	}

	event := domain.DonationEvent{Type: eventType, Donation: donation}
	payload, err := json.Marshal(event)
	if err != nil {
		log.Error().Err(err).Str("donation_id", donation.ID.String()).Msg("failed to encode feed event")
		return
	}

	if err := s.redis.Publish(ctx, Channel, payload).Err(); err != nil {
		log.Warn().Err(err).Str("type", string(eventType)).Msg("failed to publish feed event")
	}
}

// Subscribe returns a channel of decoded events plus a cleanup func.
// The channel closes when ctx is cancelled or cleanup is called.
func (s *service) Subscribe(ctx context.Context) (<-chan domain.DonationEvent, func()) {
	events := make(chan domain.DonationEvent, 16)

	if s.redis == nil {
		close(events)
		return events, func() {}
	}

	pubsub := s.redis.Subscribe(ctx, Channel)

	go func() {
		defer close(events)
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-pubsub.Channel():
				if !ok {
					return
				}
				var event domain.DonationEvent
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					log.Warn().Err(err).Msg("dropping malformed feed event")
					continue
				}
				select {
				case events <- event:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return events, func() { _ = pubsub.Close() }
}
