package combat

// EvaluateRetreat decides whether a unit disengages at the end of a combat
// round, per spec.md §4.6's Retreat rules: Rules of Engagement (0..10) set
// a house's baseline willingness to withdraw, adjusted by morale; a
// colony-owned fighter never retreats (it has nowhere to go), and a
// carrier-deployed fighter only retreats together with its carrier
// squadron.
func EvaluateRetreat(side *Side, u *Unit, roundsFought int) bool {
	if u.ColonyOwnedFighter {
		return false
	}
	if u.IsFighter && u.CarrierSquadronID != 0 {
		return false // follows carrier's own retreat decision
	}
	threshold := side.ROE - side.MoraleCER
	return roundsFought >= threshold && threshold > 0
}

// CarrierRetreats reports whether a carrier squadron's retreat decision
// should pull its deployed fighters out of the engagement with it.
func CarrierRetreats(side *Side, carrier *Unit, roundsFought int) bool {
	return EvaluateRetreat(side, carrier, roundsFought)
}
