// Package turn implements the C10 Turn Pipeline (spec.md §4.10): the
// fixed four-phase orchestration (Conflict -> Income -> Command ->
// Maintenance) that advances one game's state by exactly one turn,
// appending to a strictly ordered EventLog as it goes (O3). Grounded on
// the teacher's errgroup-based parallel-gathering idiom
// (campaign/intelligence_gatherer.go in the research pack) for the
// cross-game Scheduler, generalized from "fan out over independent work"
// to "fan out over independent games."
package turn

import (
	"github.com/greenm01/ec4x/ids"
	"github.com/greenm01/ec4x/prestige"
)

// EventKind is the closed set of EventLog entry tags.
type EventKind string

const (
	EventCombatResolved     EventKind = "CombatResolved"
	EventOrderRejected      EventKind = "OrderRejected"
	EventPrestigeRecorded   EventKind = "PrestigeRecorded"
	EventViolationRecorded  EventKind = "ViolationRecorded"
	EventConstructionDone   EventKind = "ConstructionDone"
	EventShortfallCascade   EventKind = "ShortfallCascade"
	EventEspionageDetected  EventKind = "EspionageDetected"
	EventPopulationArrived  EventKind = "PopulationArrived"
	EventHouseEliminated    EventKind = "HouseEliminated"
	EventVictory            EventKind = "Victory"
	EventResearchAdvanced   EventKind = "ResearchAdvanced"
	EventColonyFounded      EventKind = "ColonyFounded"
	EventInvasionResolved   EventKind = "InvasionResolved"
	EventCargoTransferred   EventKind = "CargoTransferred"
)

// Event is one append-only EventLog entry. House is the zero value for a
// game-wide event with no single owning house (e.g. Victory).
type Event struct {
	Turn   int
	House  ids.HouseId
	Kind   EventKind
	Detail string
}

// EventLog accumulates a turn's events in emission order (spec.md §5 O3:
// "combat events and order rejections appear in the EventLog in the order
// they were emitted"), plus the turn's real prestige event stream per house
// (spec.md §4.7: prestige is an append-only, reportable event stream, not a
// bare treasury-style counter).
type EventLog struct {
	Turn     int
	Events   []Event
	Prestige map[ids.HouseId][]prestige.Event
}

func newEventLog(turn int) *EventLog {
	return &EventLog{Turn: turn, Prestige: make(map[ids.HouseId][]prestige.Event)}
}

func (l *EventLog) emit(house ids.HouseId, kind EventKind, detail string) {
	l.Events = append(l.Events, Event{Turn: l.Turn, House: house, Kind: kind, Detail: detail})
}

// recordPrestige appends a scored prestige Event to house's stream for this
// turn. It does not change the house's prestige total.
func (l *EventLog) recordPrestige(e prestige.Event) {
	l.Prestige[e.House] = append(l.Prestige[e.House], e)
}

// Result is what AdvanceTurn returns: the new turn number, its event log,
// each house's prestige.Report for the turn, and the victor if the
// Maintenance Phase's victory check fired.
type Result struct {
	Turn    int
	Log     *EventLog
	Reports map[ids.HouseId]prestige.Report
	Victor  ids.HouseId
	Won     bool
}
