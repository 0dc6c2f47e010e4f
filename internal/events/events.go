package events

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Envelope wraps every entity change published by the admin API.
type Envelope struct {
	EventID    string          `json:"event_id"`
	EventType  string          `json:"event_type"` // e.g. "billboard.created"
	OccurredAt time.Time       `json:"occurred_at"`
	Producer   string          `json:"producer"`
	StoreID    string          `json:"store_id"`
	EntityID   string          `json:"entity_id"`
	ActorID    string          `json:"actor_id,omitempty"`
	Payload    json.RawMessage `json:"payload,omitempty"`
}

// New builds an envelope; payload is marshalled eagerly so later mutation of
// the value cannot change what is sent.
func New(producer, eventType, storeID, entityID, actorID string, payload any) Envelope {
	e := Envelope{
		EventID:    uuid.NewString(),
		EventType:  eventType,
		OccurredAt: time.Now().UTC(),
		Producer:   producer,
		StoreID:    storeID,
		EntityID:   entityID,
		ActorID:    actorID,
	}
	if payload != nil {
		e.Payload = MustMarshal(payload)
	}
	return e
}

func MustMarshal(v any) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}

type Publisher interface {
	Publish(e Envelope)
}

// Nop drops everything. Used when no broker is configured.
type Nop struct{}

func (Nop) Publish(Envelope) {}

// Recorder keeps published envelopes in memory.
type Recorder struct {
	mu  sync.Mutex
	out []Envelope
}

func (r *Recorder) Publish(e Envelope) {
	r.mu.Lock()
	r.out = append(r.out, e)
	r.mu.Unlock()
}

func (r *Recorder) Events() []Envelope {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Envelope(nil), r.out...)
}

func (r *Recorder) Types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.out))
	for i, e := range r.out {
		out[i] = e.EventType
	}
	return out
}
