package combat

import (
	"github.com/greenm01/ec4x/ids"
	"github.com/greenm01/ec4x/ships"
)

// Report is one house's after-action view of an engagement, mirrored per
// spec.md §4.9's intelligence visibility rule: a house sees its own losses
// by ShipId, but only the enemy's losses aggregated (never opposing
// ShipIds). EnemyLossesByClass is keyed by the destroyed ship's combat role
// (Capital, Escort, ...), not by its ship class name. Grounded on the teacher's BattleReport split between a
// StackSnapshot a player owns and one it merely observed (battle_report.go).
type Report struct {
	House       ids.HouseId
	Rounds      int
	NoContact   bool
	OwnLosses   []ids.ShipId
	EnemyLossesByClass map[string]int
	Victor      ids.HouseId // zero value if no victor (stalemate/NoContact)
}

// BuildReports mirrors a Result into one Report per participating house.
func BuildReports(result *Result, sides []*Side) map[ids.HouseId]*Report {
	reports := make(map[ids.HouseId]*Report, len(sides))
	for _, s := range sides {
		reports[s.House] = &Report{
			House:              s.House,
			Rounds:             result.Rounds,
			NoContact:          result.NoContact,
			EnemyLossesByClass: make(map[string]int),
		}
	}
	if result.NoContact {
		return reports
	}

	for _, h := range result.Hits {
		if !h.Destroyed {
			continue
		}
		for house, r := range reports {
			if house == h.TargetOwner {
				r.OwnLosses = append(r.OwnLosses, h.Target)
			} else {
				r.EnemyLossesByClass[string(h.TargetRole)]++
			}
		}
	}

	survivingHouses := map[ids.HouseId]bool{}
	for _, s := range sides {
		for _, u := range s.Units {
			if u.Ship.CombatState != ships.Destroyed {
				survivingHouses[s.House] = true
				break
			}
		}
	}
	if len(survivingHouses) == 1 {
		for house := range survivingHouses {
			for _, r := range reports {
				r.Victor = house
			}
		}
	}
	return reports
}
