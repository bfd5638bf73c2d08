// Package prestige implements spec.md §4.7's prestige accounting: an
// append-only per-house event stream, the per-turn PrestigeReport
// (start/events/end), the victory-threshold and DefensiveCollapse
// elimination checks, and the seven-level morale derivation that feeds
// back into combat CER and tax efficiency. Grounded on the teacher's
// diplomacy package's append-only Violation-history idiom (one mutation
// kind, read back as a rolling history), generalized to a richer,
// configured event-source model since the teacher has no prestige concept
// of its own.
package prestige

import (
	"github.com/greenm01/ec4x/config"
	"github.com/greenm01/ec4x/ids"
)

// Event is one scored prestige occurrence (spec.md §4.7's "defined set of
// PrestigeSource kinds, each with a configured amount").
type Event struct {
	Turn   int
	House  ids.HouseId
	Source string
	Amount int
}

// Report is one turn's prestige accounting for a house.
type Report struct {
	House  ids.HouseId
	Turn   int
	Start  int
	Events []Event
	End    int
}

// Record computes amount for source from config and returns the Event; it
// stores nothing, so the caller folds it into the turn's Report.
func Record(cfg *config.Config, turn int, house ids.HouseId, source string) Event {
	amount := cfg.Prestige.SourceAmounts[source]
	return Event{Turn: turn, House: house, Source: source, Amount: amount}
}

// BuildReport folds a turn's events for one house into a Report.
func BuildReport(house ids.HouseId, turn, start int, events []Event) Report {
	end := start
	for _, e := range events {
		end += e.Amount
	}
	return Report{House: house, Turn: turn, Start: start, Events: events, End: end}
}

// HasWon reports whether prestige has reached the configured victory
// threshold.
func HasWon(cfg *config.Config, prestige int) bool {
	return prestige >= cfg.Prestige.VictoryThreshold
}

// ConsecutiveNegativeTurns tracks, turn over turn, how many turns in a row
// a house's prestige has stayed below zero, used to drive
// DefensiveCollapse elimination. Callers persist the returned streak
// across turns, feeding it back in as prevStreak.
func ConsecutiveNegativeTurns(prevStreak int, endOfTurnPrestige int) int {
	if endOfTurnPrestige < 0 {
		return prevStreak + 1
	}
	return 0
}

// IsDefensiveCollapse reports whether a house's negative-prestige streak
// has reached the configured elimination threshold (spec.md §4.7:
// "elimination at prestige < 0 for 3 consecutive turns triggers
// DefensiveCollapse").
func IsDefensiveCollapse(cfg *config.Config, consecutiveNegativeTurns int) bool {
	return consecutiveNegativeTurns >= cfg.Prestige.EliminationTurns
}

// MoraleLevel returns the morale tier matching prestige, per spec.md
// §4.7's seven-level morale ladder (the highest configured floor that
// prestige still meets or exceeds).
func MoraleLevel(cfg *config.Config, prestige int) config.MoraleLevel {
	levels := cfg.Prestige.MoraleLevels
	best := levels[len(levels)-1] // lowest floor, the catch-all default
	for _, lvl := range levels {
		if prestige >= lvl.PrestigeFloor {
			return lvl
		}
	}
	return best
}
