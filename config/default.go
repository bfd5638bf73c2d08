package config

// Default returns the canonical ruleset used by the engine's own test suite
// (`new-game` always loads a rules file through Load). Every constant here
// matches a boundary value spec.md §8 names explicitly (EL_modifier cap,
// RAW_INDEX samples, tax penalty thresholds, tech upgrade cost steps) so the
// scenario tests in this package and in economy/combat can assert against
// it directly instead of duplicating magic numbers.
func Default() *Config {
	return &Config{
		Economy: EconomyConfig{
			RawIndex: map[PlanetClass]map[ResourceRating]float64{
				PlanetEden: {
					ResourceAbundant: 1.00,
					ResourceRich:     0.90,
					ResourceModerate: 0.80,
					ResourcePoor:     0.70,
					ResourceVeryPoor: 0.60,
				},
				PlanetTemperate: {
					ResourceAbundant: 0.90,
					ResourceRich:     0.80,
					ResourceModerate: 0.70,
					ResourcePoor:     0.60,
					ResourceVeryPoor: 0.50,
				},
				PlanetArid: {
					ResourceAbundant: 0.80,
					ResourceRich:     0.70,
					ResourceModerate: 0.60,
					ResourcePoor:     0.50,
					ResourceVeryPoor: 0.40,
				},
				PlanetHostile: {
					ResourceAbundant: 0.70,
					ResourceRich:     0.60,
					ResourceModerate: 0.50,
					ResourcePoor:     0.40,
					ResourceVeryPoor: 0.30,
				},
				PlanetExtreme: {
					ResourceAbundant: 0.90,
					ResourceRich:     0.80,
					ResourceModerate: 0.75,
					ResourcePoor:     0.70,
					ResourceVeryPoor: 0.60,
				},
			},
			ELModifierPerLevel: 0.05,
			ELModifierCap:      0.50,
			ProductionGrowth:   0,
			ERPCostBase:        5,
			TechUpgradeBase:        40,
			TechUpgradeStep:        10,
			TechUpgradeStepCap:     5,
			TechUpgradeStepAfterCap: 15,
			TaxPenaltyThresholds: []TaxPenaltyThreshold{
				{RatePct: 60, PrestigePenalty: -1},
				{RatePct: 70, PrestigePenalty: -2},
				{RatePct: 80, PrestigePenalty: -4},
				{RatePct: 90, PrestigePenalty: -7},
				{RatePct: 91, PrestigePenalty: -11},
			},
			IUCostMultiplierMin:  1.0,
			IUCostMultiplierMax:  2.5,
			IUBaseCost:           10,
			PopulationGrowthBase: 0.02,
			PlanetClassMaxPU: map[PlanetClass]int{
				PlanetEden:      500,
				PlanetTemperate: 350,
				PlanetArid:      200,
				PlanetHostile:   100,
				PlanetExtreme:   50,
			},
			PTUBaseCost: map[PlanetClass]float64{
				PlanetEden:      5,
				PlanetTemperate: 7,
				PlanetArid:      9,
				PlanetHostile:   12,
				PlanetExtreme:   15,
			},
			PTUJumpSurcharge:               0.20,
			MaxConcurrentTransfersPerHouse: 3,
			ShortfallSalvage: ShortfallSalvageConfig{
				IUPct: 0.25, SpaceportPct: 0.25, ShipyardPct: 0.25, StarbasePct: 0.25,
				GroundBatteryPct: 0.25, ArmyPct: 0.25, MarinePct: 0.25, PlanetaryShieldPct: 0.25,
			},
			ShortfallPrestigePenalties: []int{-8, -11, -14, -17},
			ShortfallGraceTurns:        2,
			FleetDisbandSalvagePct:     0.25,
			FleetMaintenancePct:        0.15,
		},
		Combat: CombatConfig{
			DesperationRounds:     5,
			DesperationCERBonus:   2,
			ScoutPresenceCERBonus: 1,
			StarbaseCERBonus:      2,
			AmbushCERBonus:        2,
			MoraleCERRange:        2,
			MaxSpaceCombatRounds:  10,
			MaxBombardmentRounds:  3,
			ShieldBlockChancePerLevel: 0.08,
			ShieldBlockPctPerLevel:    0.10,
			BlitzInfrastructureLossPct:    0.60,
			InvasionInfrastructureLossPct: 0.30,
			BombardmentIUCasualtyRate: 0.05,
			BombardmentPUCasualtyRate: 0.02,
			TargetingBuckets: map[string][]string{
				"Capital":      {"Capital", "Escort", "Auxiliary", "SpecialWeapon", "Fighter"},
				"Escort":       {"Escort", "Capital", "Fighter", "Auxiliary", "SpecialWeapon"},
				"Fighter":      {"Fighter", "Auxiliary", "Escort", "Capital", "SpecialWeapon"},
				"Auxiliary":    {"Auxiliary", "Escort", "Capital", "Fighter", "SpecialWeapon"},
				"SpecialWeapon": {"Capital", "SpecialWeapon", "Escort", "Fighter", "Auxiliary"},
			},
			TechCERModifier: map[TechField]float64{
				TechWEP: 0.5,
				TechACO: 0.5,
			},
		},
		Construction: ConstructionConfig{
			SpaceportDockSlots:   5,
			ShipyardDockSlots:    10,
			PPPerDockSlotPerTurn: 25,
		},
		Ships: ShipsConfig{
			FleetCompositionRatios: map[string]float64{
				"Capital": 0.30,
				"Escort":  0.40,
				"Fighter": 0.20,
				"Auxiliary": 0.10,
			},
		},
		GroundUnits: GroundUnitsConfig{
			ArmyCost: 20, MarineCost: 25, GroundBatteryCost: 30, PlanetaryShieldCost: 60,
		},
		Facilities: FacilitiesConfig{
			ShipyardCost: 200, SpaceportCost: 100, StarbaseCost: 400,
		},
		Prestige: PrestigeConfig{
			VictoryThreshold: 5000,
			EliminationTurns: 3,
			SourceAmounts: map[string]int{
				"CombatVictory":       50,
				"CombatDefeat":        -30,
				"ColonyFounded":       20,
				"ColonyLost":          -40,
				"TreatyHonored":       10,
				"TreatyViolated":      -60,
				"MaintenanceShortfall": -8,
				"EspionageDetected":    -25,
			},
			MoraleLevels: []MoraleLevel{
				{PrestigeFloor: 4000, Name: "Exalted", CERModifier: 2, TaxEfficiency: 1.10},
				{PrestigeFloor: 2000, Name: "Honored", CERModifier: 1, TaxEfficiency: 1.05},
				{PrestigeFloor: 500, Name: "Respected", CERModifier: 0, TaxEfficiency: 1.0},
				{PrestigeFloor: 0, Name: "Neutral", CERModifier: 0, TaxEfficiency: 1.0},
				{PrestigeFloor: -500, Name: "Doubted", CERModifier: -1, TaxEfficiency: 0.95},
				{PrestigeFloor: -2000, Name: "Disgraced", CERModifier: -2, TaxEfficiency: 0.90},
				{PrestigeFloor: -4000, Name: "Reviled", CERModifier: -3, TaxEfficiency: 0.80},
			},
		},
		Diplomacy: DiplomacyConfig{
			NormalizeCooldownTurns:   5,
			DishonoredViolationCount: 2,
			IsolatedViolationCount:   4,
			ViolationWindowTurns:     50,
		},
		Espionage: EspionageConfig{
			Actions: []EspionageActionConfig{
				{Name: "TechTheft", EBPCost: 40, DurationTurns: 0},
				{Name: "SabotageLow", EBPCost: 20, DurationTurns: 0},
				{Name: "SabotageHigh", EBPCost: 60, DurationTurns: 0},
				{Name: "Assassination", EBPCost: 80, DurationTurns: 0},
				{Name: "CyberAttack", EBPCost: 50, DurationTurns: 3, PerTurnEffectPct: 0.05},
				{Name: "EconomicManipulation", EBPCost: 45, DurationTurns: 5, PerTurnEffectPct: 0.08},
				{Name: "PsyopsCampaign", EBPCost: 35, DurationTurns: 4, PerTurnEffectPct: 0.03},
			},
			InvestmentConversionRate: 0.5,
			OverInvestmentPenaltyPct: 0.20,
			BudgetSharePct:           0.15,
			StarbaseDetectionBonus:   2,
			DetectionTable: defaultDetectionTable(),
		},
		Tech: TechConfig{
			ResearchCapPct:     0.30,
			TechPriorityWeight: 0.30,
		},
		Gameplay: GameplayConfig{
			TerraformThreshold: 200,
			IntelDecayTurns: map[string]int{
				"System": 10, "Fleet": 2, "Colony": 5, "House": 8,
			},
			StarbaseSurveillanceRadius:    1,
			FriendlyMajorLaneJumpsPerTurn: 2,
			DefaultJumpsPerTurn:           1,
		},
	}
}

// defaultDetectionTable yields detection probability keyed by attacker ELI
// level (rows) and defender CIC level (columns), increasing as CIC rises
// relative to ELI.
func defaultDetectionTable() map[int]map[int]float64 {
	t := make(map[int]map[int]float64)
	for eli := 0; eli <= 10; eli++ {
		row := make(map[int]float64)
		for cic := 0; cic <= 10; cic++ {
			p := 0.5 + 0.05*float64(cic-eli)
			if p < 0.05 {
				p = 0.05
			}
			if p > 0.95 {
				p = 0.95
			}
			row[cic] = p
		}
		t[eli] = row
	}
	return t
}
