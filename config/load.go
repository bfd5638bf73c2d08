package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// global holds the process-wide immutable handle. Set by MustLoad and
// replaced wholesale by Reload; never partially mutated (spec.md §9 "Config
// is process-wide and immutable after init").
var global *Config

// Load reads a YAML rules file and returns a fully validated Config. No
// partial state is ever returned: a failing validate() discards the parsed
// value entirely.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("config: validate %s: %w", path, err)
	}
	return &cfg, nil
}

// MustLoad loads path and installs it as the process-wide global handle.
func MustLoad(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	global = cfg
	return cfg, nil
}

// Global returns the process-wide handle installed by MustLoad/Reload. It
// panics if no config has been installed — callers must load one at startup.
func Global() *Config {
	if global == nil {
		panic("config: Global() called before MustLoad/Reload")
	}
	return global
}

// Reload atomically replaces the global handle. It exists only for
// controlled test scenarios (spec.md §4.1 "Reload is a controlled operation
// for testing").
func Reload(cfg *Config) { global = cfg }

const sumTolerance = 0.01

// Validate checks the ranges of the fields below: EL modifier, raw index,
// IU cost multiplier, fleet-composition ratios (sum to one), dock slots,
// fleet maintenance, espionage conversion/effect/budget-share ratios and
// detection table, research cap, victory threshold, jumps per turn and
// intel decay. Other fields, including budget-allocation groups and many
// other ratio fields, are not checked. It never partially applies: the
// first violation short-circuits with a specific, actionable error.
func Validate(cfg *Config) error {
	if err := validateRatio01("economy.el_modifier_per_level", cfg.Economy.ELModifierPerLevel); err != nil {
		return err
	}
	if cfg.Economy.ELModifierCap <= 0 {
		return fmt.Errorf("economy.el_modifier_cap must be positive")
	}
	for class, ratings := range cfg.Economy.RawIndex {
		for rating, v := range ratings {
			if v < 0 || v > 1.5 {
				return fmt.Errorf("economy.raw_index[%s][%s]=%v out of range [0,1.5]", class, rating, v)
			}
		}
	}
	if cfg.Economy.IUCostMultiplierMin < 1.0 || cfg.Economy.IUCostMultiplierMax > 2.5 ||
		cfg.Economy.IUCostMultiplierMin > cfg.Economy.IUCostMultiplierMax {
		return fmt.Errorf("economy.iu_cost_multiplier range must be within [1.0,2.5]")
	}
	if err := validateSumsToOne("ships.fleet_composition_ratios", cfg.Ships.FleetCompositionRatios); err != nil {
		return err
	}
	if err := validatePositiveInt("construction.spaceport_dock_slots", cfg.Construction.SpaceportDockSlots); err != nil {
		return err
	}
	if err := validatePositiveInt("construction.shipyard_dock_slots", cfg.Construction.ShipyardDockSlots); err != nil {
		return err
	}
	if err := validateRatio01("economy.fleet_maintenance_pct", cfg.Economy.FleetMaintenancePct); err != nil {
		return err
	}
	if err := validateRatio01("espionage.investment_conversion_rate", cfg.Espionage.InvestmentConversionRate); err != nil {
		return err
	}
	for _, a := range cfg.Espionage.Actions {
		if err := validateRatio01("espionage.actions["+a.Name+"].per_turn_effect_pct", a.PerTurnEffectPct); err != nil {
			return err
		}
	}
	if err := validateRatio01("espionage.budget_share_pct", cfg.Espionage.BudgetSharePct); err != nil {
		return err
	}
	for attackerELI, row := range cfg.Espionage.DetectionTable {
		for defenderCIC, p := range row {
			if p < 0 || p > 1 {
				return fmt.Errorf("espionage.detection_table[%d][%d]=%v out of range [0,1]", attackerELI, defenderCIC, p)
			}
		}
	}
	if err := validateRatio01("tech.research_cap_pct", cfg.Tech.ResearchCapPct); err != nil {
		return err
	}
	if cfg.Prestige.VictoryThreshold <= 0 {
		return fmt.Errorf("prestige.victory_threshold must be positive")
	}
	if cfg.Gameplay.DefaultJumpsPerTurn <= 0 || cfg.Gameplay.FriendlyMajorLaneJumpsPerTurn <= 0 {
		return fmt.Errorf("gameplay jump-per-turn values must be positive")
	}
	for kind, turns := range cfg.Gameplay.IntelDecayTurns {
		if turns <= 0 {
			return fmt.Errorf("gameplay.intel_decay_turns[%s]=%d must be positive", kind, turns)
		}
	}
	return nil
}

func validateRatio01(name string, v float64) error {
	if v < 0 || v > 1 {
		return fmt.Errorf("%s=%v must be in [0,1]", name, v)
	}
	return nil
}

func validatePositiveInt(name string, v int) error {
	if v <= 0 {
		return fmt.Errorf("%s=%d must be a positive integer", name, v)
	}
	return nil
}

func validateSumsToOne(name string, ratios map[string]float64) error {
	sum := 0.0
	for _, v := range ratios {
		if v < 0 {
			return fmt.Errorf("%s has a negative ratio", name)
		}
		sum += v
	}
	if math.Abs(sum-1.0) > sumTolerance {
		return fmt.Errorf("%s sums to %v, want 1.0 +/- %v", name, sum, sumTolerance)
	}
	return nil
}
