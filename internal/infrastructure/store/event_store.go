package store

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/example/hamper-shop/internal/logger"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Event represents a domain event
type Event struct {
	ID            string          `json:"id"`
	AggregateID   string          `json:"aggregate_id"`
	AggregateType string          `json:"aggregate_type"`
	EventType     string          `json:"event_type"`
	Data          json.RawMessage `json:"data"`
	Timestamp     time.Time       `json:"timestamp"`
	Version       int             `json:"version"`
}

// MarshalJSON returns the JSON encoding of the event
func (e Event) MarshalJSON() ([]byte, error) {
	type Alias Event
	return json.Marshal(&struct{ Alias }{Alias: Alias(e)})
}

// Option configures an EventStore.
type Option func(*EventStore)

// WithPublisher forwards every appended event to p.
func WithPublisher(p Publisher) Option {
	return func(es *EventStore) { es.publisher = p }
}

// WithSnapshotThreshold overrides DefaultSnapshotThreshold. Values below 1 are ignored.
func WithSnapshotThreshold(n int) Option {
	return func(es *EventStore) {
		if n > 0 {
			es.threshold = n
		}
	}
}

// WithLogger sets the logger used for publish failures.
func WithLogger(l zerolog.Logger) Option {
	return func(es *EventStore) { es.log = logger.Component(l, "store") }
}

// EventStore keeps session events in memory and optionally publishes them.
// Nothing survives the process.
type EventStore struct {
	mu        sync.RWMutex
	events    map[string][]Event // aggregateID -> events
	snapshots map[string]*Snapshot
	publisher Publisher
	threshold int
	log       zerolog.Logger
}

func NewEventStore(opts ...Option) *EventStore {
	es := &EventStore{
		events:    make(map[string][]Event),
		snapshots: make(map[string]*Snapshot),
		threshold: DefaultSnapshotThreshold,
		log:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(es)
	}
	return es
}

// Append stores an event and hands it to the publisher.
// Publishing is fire-and-forget: a failure is logged and the event stays stored.
func (es *EventStore) Append(ctx context.Context, aggregateID, aggregateType, eventType string, data any) (*Event, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	es.mu.Lock()
	version := len(es.events[aggregateID]) + 1
	event := Event{
		ID:            uuid.New().String(),
		AggregateID:   aggregateID,
		AggregateType: aggregateType,
		EventType:     eventType,
		Data:          jsonData,
		Timestamp:     time.Now(),
		Version:       version,
	}
	es.events[aggregateID] = append(es.events[aggregateID], event)
	es.mu.Unlock()

	if es.publisher != nil {
		if err := es.publisher.Publish(ctx, aggregateID, event); err != nil {
			es.log.Warn().Err(err).
				Str("aggregate_id", aggregateID).
				Str("event_type", eventType).
				Msg("failed to publish event")
		}
	}

	return &event, nil
}

// GetEvents returns all events for an aggregate
func (es *EventStore) GetEvents(aggregateID string) []Event {
	es.mu.RLock()
	defer es.mu.RUnlock()
	return append([]Event(nil), es.events[aggregateID]...)
}

// GetEventsFromVersion returns the events recorded after version.
func (es *EventStore) GetEventsFromVersion(ctx context.Context, aggregateID string, version int) []Event {
	es.mu.RLock()
	defer es.mu.RUnlock()

	var out []Event
	for _, e := range es.events[aggregateID] {
		if e.Version > version {
			out = append(out, e)
		}
	}
	return out
}

// GetSnapshot returns the latest snapshot for an aggregate, or nil.
func (es *EventStore) GetSnapshot(ctx context.Context, aggregateID string) (*Snapshot, error) {
	es.mu.RLock()
	defer es.mu.RUnlock()
	return es.snapshots[aggregateID], nil
}

// SaveSnapshot replaces the stored snapshot for the aggregate.
func (es *EventStore) SaveSnapshot(ctx context.Context, snapshot *Snapshot) error {
	es.mu.Lock()
	defer es.mu.Unlock()
	es.snapshots[snapshot.AggregateID] = snapshot
	return nil
}

// SnapshotThreshold returns the number of events between snapshots.
func (es *EventStore) SnapshotThreshold() int {
	return es.threshold
}
