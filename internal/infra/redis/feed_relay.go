package redis

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"

	"quizzapp-service/internal/app"
	"quizzapp-service/internal/domain"
	"quizzapp-service/internal/logging"
)

// FeedRelay shares question events between service instances.
// Notes:
//   - Publish sends events to a Redis channel instead of the local feed.
//   - Run subscribes to the channel and forwards every event, including this
//     instance's own, into the local feed, so each instance's websocket
//     clients see writes made anywhere.
type FeedRelay struct {
	client  *redis.Client
	channel string
	local   *app.QuestionFeed
}

func NewFeedRelay(client *redis.Client, channel string, local *app.QuestionFeed) *FeedRelay {
	if channel == "" {
		channel = "questions:events"
	}
	return &FeedRelay{client: client, channel: channel, local: local}
}

// Publish is best effort: a Redis failure loses the event for live clients only.
func (r *FeedRelay) Publish(ev domain.QuestionEvent) {
	raw, err := json.Marshal(ev)
	if err != nil {
		return
	}
	if err := r.client.Publish(context.Background(), r.channel, raw).Err(); err != nil {
		l := logging.L()
		l.Warn().Err(err).Str("channel", r.channel).Msg("publish question event failed")
	}
}

// Run forwards channel messages into the local feed until ctx is done.
// ready is closed once the subscription is confirmed.
func (r *FeedRelay) Run(ctx context.Context, ready chan<- struct{}) error {
	sub := r.client.Subscribe(ctx, r.channel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return err
	}
	if ready != nil {
		close(ready)
	}

	msgs := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-msgs:
			if !ok {
				return nil
			}
			var ev domain.QuestionEvent
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				l := logging.L()
				l.Warn().Err(err).Msg("drop malformed question event")
				continue
			}
			r.local.Publish(ev)
		}
	}
}
