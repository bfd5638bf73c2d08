package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/greenm01/ec4x/ids"
)

// Direction distinguishes events flowing out of the engine (publishes) from
// events flowing in (order intake), since spec.md §6's dedup index is keyed
// per-direction: `(gameId, kind, eventId, direction)`.
type Direction string

const (
	DirectionOutbound Direction = "outbound"
	DirectionInbound  Direction = "inbound"
)

// dedupKey identifies one idempotency-checked event.
type dedupKey struct {
	gameID    string
	house     ids.HouseId
	kind      string
	eventID   string
	direction Direction
}

// Adapter is the boundary-only publish surface spec.md §4.12 names: it owns
// no game logic, only a per-house websocket connection and an idempotency
// set. Grounded on turn.Scheduler's sync.Mutex-guarded map, generalized
// from "one in-progress flag per game" to "one seen-set entry per event."
type Adapter struct {
	mu    sync.Mutex
	conns map[ids.HouseId]*websocket.Conn
	seen  map[dedupKey]bool

	// WriteTimeout bounds each publish; per spec.md §5 "Transport publishes
	// are cancellable via deadline; failure to publish does not affect the
	// committed game state."
	WriteTimeout time.Duration
}

// NewAdapter returns an Adapter with a 5-second default write timeout.
func NewAdapter() *Adapter {
	return &Adapter{
		conns:        make(map[ids.HouseId]*websocket.Conn),
		seen:         make(map[dedupKey]bool),
		WriteTimeout: 5 * time.Second,
	}
}

// Register associates a house with its live websocket connection. Replacing
// an existing registration (reconnect) does not clear the house's dedup
// history.
func (a *Adapter) Register(house ids.HouseId, conn *websocket.Conn) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.conns[house] = conn
}

// markSeen reports whether (key) has already been published, recording it
// if not. A true return means the caller must silently drop the duplicate
// (spec.md §6: "duplicate IDs are silently dropped").
func (a *Adapter) markSeen(key dedupKey) (duplicate bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.seen[key] {
		return true
	}
	a.seen[key] = true
	return false
}

func (a *Adapter) send(ctx context.Context, house ids.HouseId, v any) error {
	a.mu.Lock()
	conn, ok := a.conns[house]
	a.mu.Unlock()
	if !ok {
		return fmt.Errorf("transport: no connection registered for house %s", house)
	}
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("transport: marshal envelope: %w", err)
	}
	deadline := time.Now().Add(a.WriteTimeout)
	if dl, ok := ctx.Deadline(); ok && dl.Before(deadline) {
		deadline = dl
	}
	if err := conn.SetWriteDeadline(deadline); err != nil {
		return fmt.Errorf("transport: set write deadline: %w", err)
	}
	return conn.WriteMessage(websocket.TextMessage, payload)
}

// publishFullState publishes a house's complete encrypted state envelope
// (spec.md §4.12).
func (a *Adapter) publishFullState(ctx context.Context, env StateEnvelope) error {
	key := dedupKey{env.GameID, env.House, "FullState", env.EventID, DirectionOutbound}
	if a.markSeen(key) {
		return nil
	}
	return a.send(ctx, env.House, env)
}

// publishTurnDelta publishes a house's encrypted turn-delta envelope.
func (a *Adapter) publishTurnDelta(ctx context.Context, env StateEnvelope) error {
	key := dedupKey{env.GameID, env.House, "TurnDelta", env.EventID, DirectionOutbound}
	if a.markSeen(key) {
		return nil
	}
	return a.send(ctx, env.House, env)
}

// publishGameDefinition broadcasts a game's definition to every claimed
// slot's house.
func (a *Adapter) publishGameDefinition(ctx context.Context, def GameDefinitionEnvelope, houses []ids.HouseId) error {
	eventID := EventID(def.GameID, 0, 0, "GameDefinition", []byte(def.Name+string(def.Status)))
	var firstErr error
	for _, h := range houses {
		key := dedupKey{def.GameID, h, "GameDefinition", eventID, DirectionOutbound}
		if a.markSeen(key) {
			continue
		}
		if err := a.send(ctx, h, def); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// publishGameStatus broadcasts a lightweight status-only update.
func (a *Adapter) publishGameStatus(ctx context.Context, status GameStatusEnvelope, houses []ids.HouseId) error {
	eventID := EventID(status.GameID, 0, 0, "GameStatus", []byte(status.Status))
	var firstErr error
	for _, h := range houses {
		key := dedupKey{status.GameID, h, "GameStatus", eventID, DirectionOutbound}
		if a.markSeen(key) {
			continue
		}
		if err := a.send(ctx, h, status); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// PublishFullState, PublishTurnDelta, PublishGameDefinition, and
// PublishGameStatus are the exported entry points for spec.md §4.12's four
// boundary functions (named there in lowerCamel as internal operations).
func (a *Adapter) PublishFullState(ctx context.Context, env StateEnvelope) error {
	return a.publishFullState(ctx, env)
}

func (a *Adapter) PublishTurnDelta(ctx context.Context, env StateEnvelope) error {
	return a.publishTurnDelta(ctx, env)
}

func (a *Adapter) PublishGameDefinition(ctx context.Context, def GameDefinitionEnvelope, houses []ids.HouseId) error {
	return a.publishGameDefinition(ctx, def, houses)
}

func (a *Adapter) PublishGameStatus(ctx context.Context, status GameStatusEnvelope, houses []ids.HouseId) error {
	return a.publishGameStatus(ctx, status, houses)
}
