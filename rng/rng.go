// Package rng provides the engine's single source of randomness: a stream
// seeded deterministically per (gameId, turn) so that every randomized
// decision in a turn is reproducible given the same inputs (spec.md §5
// Determinism; §8 "two runs with identical (state, orders, seed) produce
// bytewise equal output"). The teacher seeds its package-level generator
// from wall-clock time (ships/gems.go); the engine must not do that for any
// value that feeds the pipeline.
package rng

import (
	"encoding/binary"
	"hash/fnv"
	"math/rand"
)

// Stream is a deterministic, ordered source of random decisions for one
// turn of one game. Every call into it must happen in the same order on
// every run — callers must not race on a single Stream.
type Stream struct {
	r     *rand.Rand
	gameID string
	turn   int
	draws  int
}

// Seed derives a 64-bit seed from a gameId and turn number. FNV-1a keeps the
// derivation cheap, stable across Go versions, and without floating point.
func Seed(gameID string, turn int) int64 {
	h := fnv.New64a()
	h.Write([]byte(gameID))
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(turn))
	h.Write(buf[:])
	return int64(h.Sum64())
}

// New returns a fresh deterministic Stream for (gameID, turn).
func New(gameID string, turn int) *Stream {
	return &Stream{
		r:      rand.New(rand.NewSource(Seed(gameID, turn))),
		gameID: gameID,
		turn:   turn,
	}
}

// D10 rolls a single ten-sided die (1..10), the combat kernel's base roll
// (spec.md §4.6 CER = 1d10 + modifiers).
func (s *Stream) D10() int {
	s.draws++
	return s.r.Intn(10) + 1
}

// Float64 returns a uniform value in [0,1), used for detection/probability
// rolls (espionage, bombardment shield block-chance).
func (s *Stream) Float64() float64 {
	s.draws++
	return s.r.Float64()
}

// Intn returns a uniform value in [0,n).
func (s *Stream) Intn(n int) int {
	s.draws++
	return s.r.Intn(n)
}

// Draws reports how many values have been consumed from the stream so far;
// useful in tests asserting a fixed draw sequence (spec.md §8 scenario 4).
func (s *Stream) Draws() int { return s.draws }
