package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/greenm01/ec4x/config"
	"github.com/greenm01/ec4x/houses"
	"github.com/greenm01/ec4x/ids"
	"github.com/greenm01/ec4x/persist"
	"github.com/greenm01/ec4x/store"
)

// rosterEntry is one house's seat assignment in a new-game roster file.
type rosterEntry struct {
	HouseID          uint64 `json:"houseId"`
	Name             string `json:"name"`
	StartingTreasury int    `json:"startingTreasury"`
	Pubkey           []byte `json:"pubkey"`
}

var newGameCmd = &cobra.Command{
	Use:   "new-game <rules.yaml> <roster.json>",
	Short: "create a new game's turn-0 snapshot and slot mappings",
	Args:  cobra.ExactArgs(2),
	RunE:  runNewGame,
}

var newGameID string

func init() {
	newGameCmd.Flags().StringVar(&newGameID, "game-id", "", "game identifier (required)")
	newGameCmd.MarkFlagRequired("game-id")
}

func runNewGame(cmd *cobra.Command, args []string) error {
	rulesPath, rosterPath := args[0], args[1]

	cfg, err := config.Load(rulesPath)
	if err != nil {
		os.Exit(ExitValidationError)
		return err
	}

	rosterBytes, err := os.ReadFile(rosterPath)
	if err != nil {
		os.Exit(ExitIOError)
		return fmt.Errorf("read roster: %w", err)
	}
	var roster []rosterEntry
	if err := json.Unmarshal(rosterBytes, &roster); err != nil {
		os.Exit(ExitValidationError)
		return fmt.Errorf("parse roster: %w", err)
	}

	g := store.New(newGameID)
	for _, r := range roster {
		h := houses.New(ids.HouseId(r.HouseID), r.Name, r.StartingTreasury)
		if err := g.PutHouse(h); err != nil {
			os.Exit(ExitValidationError)
			return fmt.Errorf("roster entry %s: %w", r.Name, err)
		}
	}
	_ = cfg // rules are validated at load time; the pipeline reads them per-turn, not at new-game time.

	ctx := context.Background()
	s, client, err := persist.Connect(ctx, mongoURI, dbName)
	if err != nil {
		os.Exit(ExitIOError)
		return err
	}
	defer client.Disconnect(ctx)

	if err := s.SaveSnapshot(ctx, g, 0); err != nil {
		os.Exit(ExitIOError)
		return err
	}
	for _, r := range roster {
		if err := s.SaveSlotMapping(ctx, newGameID, ids.HouseId(r.HouseID), r.Pubkey); err != nil {
			os.Exit(ExitIOError)
			return err
		}
	}

	log.Info().Str("gameId", newGameID).Int("houses", len(roster)).Msg("new game created at turn 0")
	return nil
}
