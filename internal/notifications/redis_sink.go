package notifications

import (
	"context"
	"log"
	"runtime/debug"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	userChannelPrefix = "notifications:user:"
	broadcastChannel  = "notifications:broadcast"
)

// UserChannel derives the Redis channel name for a profile.
func UserChannel(profileID uuid.UUID) string {
	return userChannelPrefix + profileID.String()
}

// RedisSink publishes notification payloads to per-recipient Redis channels.
type RedisSink struct {
	rdb *redis.Client
}

// NewRedisSink creates a RedisSink using the provided Redis client.
func NewRedisSink(rdb *redis.Client) *RedisSink {
	return &RedisSink{rdb: rdb}
}

// Deliver implements DeliverySink by publishing to the recipient's channel.
func (s *RedisSink) Deliver(ctx context.Context, recipientID uuid.UUID, payload []byte) error {
	if s.rdb == nil {
		return nil
	}
	return s.rdb.Publish(ctx, UserChannel(recipientID), payload).Err()
}

// Broadcast publishes a payload to every connected client.
func (s *RedisSink) Broadcast(ctx context.Context, payload []byte) error {
	if s.rdb == nil {
		return nil
	}
	return s.rdb.Publish(ctx, broadcastChannel, payload).Err()
}

// StartPatternSubscriber subscribes to the per-user pattern plus the broadcast
// channel and calls onMessage for each incoming message.
func (s *RedisSink) StartPatternSubscriber(
	ctx context.Context, onMessage func(channel string, payload string),
) error {
	if s.rdb == nil {
		return nil
	}
	sub := s.rdb.PSubscribe(ctx, userChannelPrefix+"*", broadcastChannel)
	ch := sub.Channel()

	go func() {
		defer func() { _ = sub.Close() }()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				func() {
					defer func() {
						if r := recover(); r != nil {
							log.Printf("PANIC in PatternSubscriber: %v\n%s", r, debug.Stack())
						}
					}()
					onMessage(msg.Channel, msg.Payload)
				}()
			}
		}
	}()

	return nil
}
