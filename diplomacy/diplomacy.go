// Package diplomacy implements the C7 diplomatic state machine (spec.md
// §4.7): per-pair relation tracking (Neutral/NonAggression/Enemy),
// violation history, and the Dishonored/DiplomaticallyIsolated status
// derived from it. Grounded on the teacher's diplomacy/state.go
// (normalized-pair relation map) and diplomacy/provider.go (narrow
// Provider interface decoupling combat from diplomacy bookkeeping),
// generalized from the teacher's bson.ObjectID/map-scoped pairs to EC4X's
// ids.HouseId/single-game pairs and three-state relation model.
package diplomacy

import "github.com/greenm01/ec4x/ids"

// Relation is the diplomatic posture between two houses (spec.md §3).
type Relation int

const (
	RelationNeutral Relation = iota
	RelationNonAggression
	RelationEnemy
)

// Pair is a normalized, order-independent house pair used as a map key.
type Pair struct {
	A ids.HouseId
	B ids.HouseId
}

func normalizePair(a, b ids.HouseId) Pair {
	if a <= b {
		return Pair{A: a, B: b}
	}
	return Pair{A: b, B: a}
}

// Violation is one recorded breach of a standing pact (spec.md §4.7:
// "breaking NonAggression without a declaration counts as a violation").
type Violation struct {
	Turn      int
	Violator  ids.HouseId
	Victim    ids.HouseId
	Kind      string // e.g. "UnprovokedAttack", "PactBreak"
}

// State is one game's full diplomatic relation graph.
type State struct {
	GameID     string
	Relations  map[Pair]Relation
	Violations []Violation
}

// NewState returns an empty diplomatic state where every unlisted pair
// defaults to Neutral.
func NewState(gameID string) *State {
	return &State{GameID: gameID, Relations: make(map[Pair]Relation)}
}

// Get returns the current relation between a and b, defaulting to Neutral
// for a pair with no recorded entry.
func (s *State) Get(a, b ids.HouseId) Relation {
	if r, ok := s.Relations[normalizePair(a, b)]; ok {
		return r
	}
	return RelationNeutral
}

// Set records a new relation for the pair, replacing any prior one. Callers
// (the order validator) are responsible for checking that the requested
// transition is legal before calling Set; State itself does not forbid any
// transition, since spec.md §4.7 allows a house to declare Enemy on a
// Neutral or NonAggression partner unilaterally.
func (s *State) Set(a, b ids.HouseId, r Relation) {
	s.Relations[normalizePair(a, b)] = r
}

// RecordViolation appends a violation to the history that ViolationCount
// reads back when evaluating Dishonored status.
func (s *State) RecordViolation(turn int, violator, victim ids.HouseId, kind string) {
	s.Violations = append(s.Violations, Violation{Turn: turn, Violator: violator, Victim: victim, Kind: kind})
}

// ViolationCount reports how many violations violator committed within the
// last windowTurns turns as of currentTurn (spec.md §4.7 "Dishonored: N or
// more violations within a rolling window").
func (s *State) ViolationCount(violator ids.HouseId, currentTurn, windowTurns int) int {
	n := 0
	for _, v := range s.Violations {
		if v.Violator == violator && currentTurn-v.Turn < windowTurns && v.Turn <= currentTurn {
			n++
		}
	}
	return n
}

// IsDishonored reports whether violator has accrued threshold or more
// violations within the rolling window.
func IsDishonored(s *State, violator ids.HouseId, currentTurn, windowTurns, threshold int) bool {
	return s.ViolationCount(violator, currentTurn, windowTurns) >= threshold
}

// IsDiplomaticallyIsolated reports whether house has an Enemy relation with
// every other house still in the game (spec.md §4.7's harsher isolation
// status — no standing partner of any kind).
func IsDiplomaticallyIsolated(s *State, house ids.HouseId, activeHouses []ids.HouseId) bool {
	found := false
	for _, other := range activeHouses {
		if other == house {
			continue
		}
		found = true
		if s.Get(house, other) != RelationEnemy {
			return false
		}
	}
	return found
}
