package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/greenm01/ec4x/orders"
)

var submitOrdersCmd = &cobra.Command{
	Use:   "submit-orders <gameId> <houseId> <file>",
	Short: "queue a house's order packet for the next advance-turn",
	Args:  cobra.ExactArgs(3),
	RunE:  runSubmitOrders,
}

func runSubmitOrders(cmd *cobra.Command, args []string) error {
	gameID, houseIDStr, path := args[0], args[1], args[2]
	houseID, err := strconv.ParseUint(houseIDStr, 10, 64)
	if err != nil {
		os.Exit(ExitValidationError)
		return fmt.Errorf("houseId %q is not a valid integer: %w", houseIDStr, err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		os.Exit(ExitIOError)
		return fmt.Errorf("read order file: %w", err)
	}

	var packet orders.OrderPacket
	if err := json.Unmarshal(raw, &packet); err != nil {
		os.Exit(ExitValidationError)
		return fmt.Errorf("parse order packet: %w", err)
	}
	if uint64(packet.HouseID) != houseID {
		os.Exit(ExitValidationError)
		return fmt.Errorf("order packet houseId %d does not match submitted houseId %d", packet.HouseID, houseID)
	}

	turnDir := filepath.Join(dataDir, gameID, strconv.Itoa(packet.Turn))
	if err := os.MkdirAll(turnDir, 0o755); err != nil {
		os.Exit(ExitIOError)
		return fmt.Errorf("create queue directory: %w", err)
	}
	outPath := filepath.Join(turnDir, houseIDStr+".json")
	if err := os.WriteFile(outPath, raw, 0o644); err != nil {
		os.Exit(ExitIOError)
		return fmt.Errorf("write queued packet: %w", err)
	}

	log.Info().Str("gameId", gameID).Uint64("houseId", houseID).Int("turn", packet.Turn).Msg("order packet queued")
	return nil
}
