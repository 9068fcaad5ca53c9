package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Audit consumption settings. All streams are consumed through the same
// group, so each event lands in the audit log exactly once no matter which
// process picks it up.
const (
	auditGroup       = "audit-group"
	deadLetterSuffix = ".dead"

	// A message redelivered this many times is parked on the dead-letter
	// stream instead of blocking the group forever.
	maxDeliveries = 5

	readBatch  = 10
	readBlock  = 5 * time.Second
	retryAfter = 30 * time.Second
)

type Handler func(ctx context.Context, event Event) error

// Subscriber feeds one stream's events into a handler via the audit
// consumer group. A failed handler call leaves the message pending; it is
// reclaimed after retryAfter and parked on <stream>.dead once it has used
// up its deliveries.
type Subscriber struct {
	client   *redis.Client
	stream   string
	consumer string
	handler  Handler
}

func NewSubscriber(client *redis.Client, stream string, handler Handler) *Subscriber {
	return &Subscriber{
		client:   client,
		stream:   stream,
		consumer: "audit-" + stream,
		handler:  handler,
	}
}

// Start joins the consumer group and loops until ctx is cancelled,
// alternating between retrying stale pending messages and blocking for new
// ones.
func (s *Subscriber) Start(ctx context.Context) error {
	err := s.client.XGroupCreateMkStream(ctx, s.stream, auditGroup, "0").Err()
	if err != nil && !strings.Contains(err.Error(), "BUSYGROUP") {
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	log.Printf("audit subscriber started: stream=%s consumer=%s", s.stream, s.consumer)

	for {
		select {
		case <-ctx.Done():
			log.Printf("audit subscriber stopping: %s", s.stream)
			return ctx.Err()
		default:
		}

		if err := s.redeliver(ctx); err != nil {
			log.Printf("audit subscriber %s: redeliver: %v", s.stream, err)
			time.Sleep(time.Second)
		}
		if err := s.readNew(ctx); err != nil {
			log.Printf("audit subscriber %s: read: %v", s.stream, err)
			time.Sleep(time.Second)
		}
	}
}

func (s *Subscriber) readNew(ctx context.Context) error {
	streams, err := s.client.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    auditGroup,
		Consumer: s.consumer,
		Streams:  []string{s.stream, ">"},
		Count:    readBatch,
		Block:    readBlock,
	}).Result()
	if err == redis.Nil {
		return nil
	}
	if err != nil {
		return err
	}

	for _, str := range streams {
		for _, msg := range str.Messages {
			s.deliver(ctx, msg)
		}
	}
	return nil
}

// redeliver claims messages that have sat pending longer than retryAfter.
func (s *Subscriber) redeliver(ctx context.Context) error {
	msgs, _, err := s.client.XAutoClaim(ctx, &redis.XAutoClaimArgs{
		Stream:   s.stream,
		Group:    auditGroup,
		Consumer: s.consumer,
		MinIdle:  retryAfter,
		Start:    "0",
		Count:    readBatch,
	}).Result()
	if err != nil {
		if err == redis.Nil {
			return nil
		}
		return err
	}

	for _, msg := range msgs {
		if s.deliveryCount(ctx, msg.ID) >= maxDeliveries {
			s.park(ctx, msg, "delivery limit reached")
			continue
		}
		s.deliver(ctx, msg)
	}
	return nil
}

func (s *Subscriber) deliver(ctx context.Context, msg redis.XMessage) {
	event, err := decodeEvent(msg.Values)
	if err != nil {
		// An undecodable payload can never succeed; park it straight away.
		s.park(ctx, msg, err.Error())
		return
	}
	if err := s.handler(ctx, event); err != nil {
		log.Printf("audit subscriber %s: handler failed for %s: %v", s.stream, msg.ID, err)
		return
	}
	s.ack(ctx, msg.ID)
}

func (s *Subscriber) deliveryCount(ctx context.Context, id string) int64 {
	pending, err := s.client.XPendingExt(ctx, &redis.XPendingExtArgs{
		Stream: s.stream,
		Group:  auditGroup,
		Start:  id,
		End:    id,
		Count:  1,
	}).Result()
	if err != nil || len(pending) == 0 {
		return 0
	}
	return pending[0].RetryCount
}

// park copies the message onto the dead-letter stream and acks the
// original so it stops occupying the pending list.
func (s *Subscriber) park(ctx context.Context, msg redis.XMessage, reason string) {
	values := map[string]any{"reason": reason, "origin": msg.ID}
	for k, v := range msg.Values {
		values[k] = v
	}
	err := s.client.XAdd(ctx, &redis.XAddArgs{
		Stream: s.stream + deadLetterSuffix,
		Values: values,
	}).Err()
	if err != nil {
		log.Printf("audit subscriber %s: failed to park %s: %v", s.stream, msg.ID, err)
		return
	}
	log.Printf("audit subscriber %s: parked %s: %s", s.stream, msg.ID, reason)
	s.ack(ctx, msg.ID)
}

func (s *Subscriber) ack(ctx context.Context, id string) {
	if err := s.client.XAck(ctx, s.stream, auditGroup, id).Err(); err != nil {
		log.Printf("audit subscriber %s: failed to ack %s: %v", s.stream, id, err)
	}
}

// decodeEvent unpacks the envelope written by Publisher.Publish.
func decodeEvent(values map[string]any) (Event, error) {
	raw, ok := values[eventField].(string)
	if !ok {
		return Event{}, fmt.Errorf("message has no %s field", eventField)
	}
	var event Event
	if err := json.Unmarshal([]byte(raw), &event); err != nil {
		return Event{}, fmt.Errorf("malformed event payload: %w", err)
	}
	return event, nil
}
