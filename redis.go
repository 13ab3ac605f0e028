package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// eventEnvelope is the shape published on the Redis events channel by
// upstream relays: the GitHub event name plus the untouched webhook payload.
// Bus events were authenticated at the edge, so no signature travels with
// them.
type eventEnvelope struct {
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
}

func handleBusMessage(ctx context.Context, payload string, rules []*CompiledRule, poster messagePoster) error {
	var env eventEnvelope
	if err := json.Unmarshal([]byte(payload), &env); err != nil {
		return fmt.Errorf("failed to unmarshal envelope: %w", err)
	}

	ev, err := parseEvent(env.Event, env.Payload)
	if err != nil {
		return err
	}

	processEvent(ctx, ev, rules, poster)
	return nil
}

// subscribeEvents consumes the Redis events channel until the context is
// canceled, feeding each envelope through the same pipeline as HTTP
// deliveries. A bad message is logged and dropped, never fatal.
func subscribeEvents(ctx context.Context, rdb *redis.Client, channel string, rules []*CompiledRule, poster messagePoster) {
	pubsub := rdb.Subscribe(ctx, channel)
	defer pubsub.Close()

	logger.Info("subscribed to Redis channel: %s", channel)

	ch := pubsub.Channel()
	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return
			}
			if err := handleBusMessage(ctx, msg.Payload, rules, poster); err != nil {
				logger.Error("error handling bus message: %v", err)
			}
		case <-ctx.Done():
			return
		}
	}
}
