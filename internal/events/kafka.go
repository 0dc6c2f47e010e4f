package events

import (
	"context"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"

	"storeadmin/internal/log"
)

// KafkaPublisher hands envelopes to a background loop that writes them to
// one topic, keyed by store id so a store's events stay ordered.
type KafkaPublisher struct {
	w     *kafka.Writer
	inbox chan kafka.Message
	done  chan struct{}

	mu     sync.RWMutex
	closed bool
}

func NewKafkaPublisher(brokers []string, topic string, buf int) *KafkaPublisher {
	return &KafkaPublisher{
		w: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
			Async:        true,
			BatchTimeout: 50 * time.Millisecond,
			Completion: func(msgs []kafka.Message, err error) {
				if err != nil {
					log.Event("events.write", err, map[string]any{"topic": topic, "count": len(msgs)})
				}
			},
		},
		inbox: make(chan kafka.Message, buf),
		done:  make(chan struct{}),
	}
}

func (p *KafkaPublisher) Start() {
	go func() {
		defer close(p.done)
		for m := range p.inbox {
			if err := p.w.WriteMessages(context.Background(), m); err != nil {
				log.Event("events.write", err, map[string]any{"key": string(m.Key)})
			}
		}
		if err := p.w.Close(); err != nil {
			log.Event("events.close", err, nil)
		}
	}()
}

// Publish never blocks the request path; when the inbox is full the event is
// dropped and logged.
func (p *KafkaPublisher) Publish(e Envelope) {
	m := kafka.Message{
		Key:   []byte(e.StoreID),
		Value: MustMarshal(e),
		Time:  e.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(e.EventType)},
		},
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return
	}
	select {
	case p.inbox <- m:
	default:
		log.Event("events.dropped", nil, map[string]any{"event_type": e.EventType, "event_id": e.EventID})
	}
}

// Close stops accepting events, flushes what is queued and waits for the
// writer to shut down or ctx to expire.
func (p *KafkaPublisher) Close(ctx context.Context) error {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.inbox)
	}
	p.mu.Unlock()

	select {
	case <-p.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
