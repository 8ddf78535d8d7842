package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event type names.
const (
	TypeGameStarted    = "game.started"
	TypePairMatched    = "pair.matched"
	TypePairMismatched = "pair.mismatched"
	TypePairReset      = "pair.reset"
	TypeGameCompleted  = "game.completed"
)

// GameEvent describes something that happened in a game session.
type GameEvent struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	// Type is one of the Type* constants
	Type string `json:"type"`

	// Payload contains the event-specific data serialized as JSON
	Payload json.RawMessage `json:"payload"`

	// CreatedAt is the timestamp when the event was created
	CreatedAt time.Time `json:"created_at"`
}

// UnmarshalPayload decodes the event payload into the provided structure.
func (e *GameEvent) UnmarshalPayload(v interface{}) error {
	return json.Unmarshal(e.Payload, v)
}

// NewGameEvent creates a new GameEvent with the specified type and payload.
func NewGameEvent(eventType string, payload interface{}) (*GameEvent, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &GameEvent{
		ID:        uuid.New(),
		Type:      eventType,
		Payload:   payloadBytes,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// EventHandler defines an interface for components that can handle events.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	HandleEvent(ctx context.Context, event *GameEvent) error
}

// EventEmitter defines an interface for components that can emit events.
type EventEmitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	EmitEvent(ctx context.Context, event *GameEvent) error
}

// HandlerFunc adapts a function to EventHandler.
type HandlerFunc func(ctx context.Context, event *GameEvent) error

// HandleEvent calls f(ctx, event).
func (f HandlerFunc) HandleEvent(ctx context.Context, event *GameEvent) error {
	return f(ctx, event)
}

// Payloads carried by game events.

// GameStartedPayload is the payload of TypeGameStarted.
type GameStartedPayload struct {
	GameID     string `json:"game_id"`
	PlayerName string `json:"player_name"`
	CardCount  int    `json:"card_count"`
}

// PairPayload is the payload of the pair.* events.
type PairPayload struct {
	GameID   string `json:"game_id"`
	First    int    `json:"first"`
	Second   int    `json:"second"`
	Attempts int    `json:"attempts"`
}

// GameCompletedPayload is the payload of TypeGameCompleted.
type GameCompletedPayload struct {
	GameID   string `json:"game_id"`
	Name     string `json:"name"`
	Time     int    `json:"time"`
	Errors   int    `json:"errors"`
	Attempts int    `json:"attempts"`
}
