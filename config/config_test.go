package config

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultValidates(t *testing.T) {
	if err := Validate(Default()); err != nil {
		t.Fatalf("Default() must validate clean: %v", err)
	}
}

func TestRawIndexBoundaryValues(t *testing.T) {
	cfg := Default()
	if v := cfg.Economy.RawIndex[PlanetEden][ResourceAbundant]; v != 1.00 {
		t.Errorf("RAW_INDEX(Eden, Abundant) = %v, want 1.00", v)
	}
	if v := cfg.Economy.RawIndex[PlanetExtreme][ResourceVeryPoor]; v != 0.60 {
		t.Errorf("RAW_INDEX(Extreme, VeryPoor) = %v, want 0.60", v)
	}
}

func TestLoadValid(t *testing.T) {
	cfg, err := Load(filepath.Join("testdata", "valid.yaml"))
	if err != nil {
		t.Fatalf("Load(valid.yaml): %v", err)
	}
	if cfg.Construction.SpaceportDockSlots != 5 {
		t.Errorf("SpaceportDockSlots = %d, want 5", cfg.Construction.SpaceportDockSlots)
	}
}

func TestLoadInvalidFixtures(t *testing.T) {
	cases := []struct {
		file   string
		reason string
	}{
		{"fleet_composition_ratios_sum.yaml", "sums to"},
		{"negative_dock_slots.yaml", "positive integer"},
		{"espionage_conversion_rate_out_of_range.yaml", "must be in [0,1]"},
	}
	for _, c := range cases {
		t.Run(c.file, func(t *testing.T) {
			_, err := Load(filepath.Join("testdata", "invalid", c.file))
			if err == nil {
				t.Fatalf("Load(%s): expected error, got nil", c.file)
			}
			if !strings.Contains(err.Error(), c.reason) {
				t.Errorf("Load(%s) error = %q, want substring %q", c.file, err.Error(), c.reason)
			}
		})
	}
}

func TestReloadReplacesGlobalAtomically(t *testing.T) {
	Reload(Default())
	first := Global()
	second := Default()
	second.Prestige.VictoryThreshold = 9999
	Reload(second)
	if Global().Prestige.VictoryThreshold != 9999 {
		t.Fatalf("Reload did not replace global handle")
	}
	if first.Prestige.VictoryThreshold == 9999 {
		t.Fatalf("Reload mutated the previous handle instead of replacing it")
	}
}
