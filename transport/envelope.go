// Package transport implements the C12 Transport Adapter (spec.md §4.12): a
// boundary-only publish surface over a websocket connection per house,
// idempotent on content-derived event IDs. The adapter sends payloads as
// given; Seal in crypto.go encrypts a payload for its recipient, and the
// adapter does not call it. Grounded on the teacher's go.mod stack left unwired by the
// single-player galaxyCore domain model (gorilla/websocket, google/uuid,
// golang.org/x/crypto) and on turn.Scheduler's sync.Mutex-guarded map
// discipline, generalized here from "one flag per in-progress game" to "one
// dedup set per (gameId, houseId, kind, id, direction)".
package transport

import "github.com/greenm01/ec4x/ids"

// GameStatus is one of the lifecycle states spec.md §6 names for a game
// definition envelope.
type GameStatus string

const (
	StatusSetup     GameStatus = "Setup"
	StatusActive    GameStatus = "Active"
	StatusPaused    GameStatus = "Paused"
	StatusCompleted GameStatus = "Completed"
)

// SlotStatus is one seat's claim state within a game definition.
type SlotStatus string

const (
	SlotPending SlotStatus = "Pending"
	SlotClaimed SlotStatus = "Claimed"
)

// Slot is one seat in a game's definition envelope.
type Slot struct {
	Index  int
	Code   string
	Status SlotStatus
	Pubkey []byte
}

// GameDefinitionEnvelope is the unencrypted, broadcast-to-all-slots game
// definition (spec.md §6 "Game definition").
type GameDefinitionEnvelope struct {
	GameID string
	Name   string
	Status GameStatus
	Slots  []Slot
}

// GameStatusEnvelope is a lightweight status-only broadcast.
type GameStatusEnvelope struct {
	GameID string
	Name   string
	Status GameStatus
}

// StateEnvelope is the per-house, encrypted wire envelope shared by full
// state and turn delta publications (spec.md §6: "same envelope, payload =
// filtered delta" for turn deltas).
type StateEnvelope struct {
	GameID          string
	Turn            int
	House           ids.HouseId
	EncryptedPayload []byte
	RecipientPubkey [32]byte
	SenderPubkey    [32]byte
	EventID         string
	Sig             []byte
}
