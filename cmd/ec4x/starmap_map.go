package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/greenm01/ec4x/ids"
	"github.com/greenm01/ec4x/starmap"
)

// mapFile is the on-disk shape of a starmap (spec.md §4.3: systems are
// immutable once generated, so the CLI loads the same file every
// invocation rather than round-tripping it through the game snapshot).
type mapFile struct {
	Systems []struct {
		ID     uint64 `json:"id"`
		Q      int    `json:"q"`
		R      int    `json:"r"`
	} `json:"systems"`
	Lanes []struct {
		A    uint64 `json:"a"`
		B    uint64 `json:"b"`
		Type string `json:"type"`
	} `json:"lanes"`
}

func loadStarmap(path string) (*starmap.Map, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read map file: %w", err)
	}
	var mf mapFile
	if err := json.Unmarshal(raw, &mf); err != nil {
		return nil, fmt.Errorf("parse map file: %w", err)
	}

	m := starmap.NewMap()
	for _, s := range mf.Systems {
		m.AddSystem(&starmap.System{ID: ids.SystemId(s.ID), Coords: starmap.HexCoord{Q: s.Q, R: s.R}})
	}
	for _, l := range mf.Lanes {
		var lt starmap.LaneType
		switch l.Type {
		case "Major":
			lt = starmap.LaneMajor
		case "Minor":
			lt = starmap.LaneMinor
		default:
			lt = starmap.LaneRestricted
		}
		m.Connect(ids.SystemId(l.A), ids.SystemId(l.B), lt)
	}
	return m, nil
}
