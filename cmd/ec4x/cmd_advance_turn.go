package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/greenm01/ec4x/config"
	"github.com/greenm01/ec4x/ids"
	"github.com/greenm01/ec4x/orders"
	"github.com/greenm01/ec4x/persist"
	"github.com/greenm01/ec4x/starmap"
	"github.com/greenm01/ec4x/store"
	"github.com/greenm01/ec4x/turn"
)

var (
	advanceTurnNumber int
	rulesPath         string
	mapPath           string
)

var advanceTurnCmd = &cobra.Command{
	Use:   "advance-turn <gameId>",
	Short: "validate queued orders and advance one game by one turn",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdvanceTurn,
}

func init() {
	advanceTurnCmd.Flags().IntVar(&advanceTurnNumber, "turn", 0, "turn number currently stored (the CLI advances to turn+1)")
	advanceTurnCmd.Flags().StringVar(&rulesPath, "rules", "", "path to the rules YAML file (required)")
	advanceTurnCmd.Flags().StringVar(&mapPath, "map", "", "path to the starmap JSON file (required)")
	advanceTurnCmd.MarkFlagRequired("rules")
	advanceTurnCmd.MarkFlagRequired("map")
}

func runAdvanceTurn(cmd *cobra.Command, args []string) error {
	gameID := args[0]
	ctx := context.Background()

	cfg, err := config.Load(rulesPath)
	if err != nil {
		os.Exit(ExitValidationError)
		return err
	}
	m, err := loadStarmap(mapPath)
	if err != nil {
		os.Exit(ExitIOError)
		return err
	}

	s, client, err := persist.Connect(ctx, mongoURI, dbName)
	if err != nil {
		os.Exit(ExitIOError)
		return err
	}
	defer client.Disconnect(ctx)

	g, err := s.LoadSnapshot(ctx, gameID, advanceTurnNumber)
	if err != nil {
		os.Exit(ExitIOError)
		return fmt.Errorf("load snapshot at turn %d: %w", advanceTurnNumber, err)
	}

	packets, err := loadQueuedPackets(cfg, g, m, gameID, advanceTurnNumber)
	if err != nil {
		os.Exit(ExitValidationError)
		return err
	}

	diplo, err := s.LoadDiplomacyState(ctx, gameID)
	if err != nil {
		os.Exit(ExitIOError)
		return err
	}

	pipeline := turn.NewPipeline(cfg, m, diplo)
	nextTurn := advanceTurnNumber + 1
	result, err := pipeline.AdvanceTurn(g, nextTurn, packets)
	if err != nil {
		log.Error().Err(err).Str("gameId", gameID).Int("turn", nextTurn).Msg("turn integrity violation, not persisted")
		os.Exit(ExitIntegrityError)
		return err
	}

	if err := s.SaveSnapshot(ctx, g, nextTurn); err != nil {
		os.Exit(ExitIOError)
		return err
	}
	if err := s.SaveDiplomacyState(ctx, diplo); err != nil {
		os.Exit(ExitIOError)
		return err
	}

	log.Info().Str("gameId", gameID).Int("turn", nextTurn).Int("events", len(result.Log.Events)).Bool("won", result.Won).Msg("turn advanced")
	return nil
}

// loadQueuedPackets reads every submitted order file under
// <dataDir>/<gameId>/<turn>/*.json, validating each against the loaded
// snapshot before the pipeline ever sees it (spec.md §4.4 runs at intake,
// not inside the Command Phase).
func loadQueuedPackets(cfg *config.Config, g *store.GameState, m *starmap.Map, gameID string, turnNumber int) (map[ids.HouseId]orders.ValidatedOrderSet, error) {
	dir := filepath.Join(dataDir, gameID, strconv.Itoa(turnNumber))
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return map[ids.HouseId]orders.ValidatedOrderSet{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read queue directory %s: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".json") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	out := make(map[ids.HouseId]orders.ValidatedOrderSet, len(names))
	for _, name := range names {
		raw, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		var packet orders.OrderPacket
		if err := json.Unmarshal(raw, &packet); err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		validated, rejections := validatePacket(cfg, g, m, packet)
		for _, r := range rejections {
			log.Warn().Str("gameId", gameID).Uint64("houseId", uint64(packet.HouseID)).Str("kind", r.OrderKind).Int("index", r.Index).Str("reason", string(r.Reason)).Msg("order rejected at intake")
		}
		out[packet.HouseID] = validated
	}
	return out, nil
}
