// Package colonies models Colony entities and their facilities/construction
// queues (spec.md §3, §4.5). Grounded on the teacher's buildings package
// (buildings/buildings.go: a shared Building interface over small,
// logic-free structs) and orbitables/system.go's Colonization/DefendingFleet
// embedding pattern, generalized from galaxyCore's per-planet economy
// buildings to EC4X's shipyard/spaceport/starbase facility model.
package colonies

import "github.com/greenm01/ec4x/ids"

// FacilityKind is a colony facility type (spec.md §3/§4.5).
type FacilityKind string

const (
	FacilityShipyard  FacilityKind = "Shipyard"
	FacilitySpaceport FacilityKind = "Spaceport"
	FacilityStarbase  FacilityKind = "Starbase"
)

// DockSlots returns how many concurrent construction projects this facility
// kind supports (spec.md §4.5: spaceport 5, shipyard 10).
func DockSlots(kind FacilityKind, spaceportSlots, shipyardSlots int) int {
	switch kind {
	case FacilitySpaceport:
		return spaceportSlots
	case FacilityShipyard:
		return shipyardSlots
	default:
		return 0
	}
}

// Facility is a single constructed colony facility instance.
type Facility struct {
	ID       ids.FacilityId
	ColonyID ids.ColonyId
	Kind     FacilityKind
	Level    int

	Version int64
}

func (f *Facility) Clone() *Facility {
	cp := *f
	return &cp
}
