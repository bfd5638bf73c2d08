package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/greenm01/ec4x/diplomacy"
	"github.com/greenm01/ec4x/persist"
)

// diplomacyView is a JSON-friendly rendering of *diplomacy.State:
// diplomacy.Pair isn't a string, so encoding/json can't use it as a map key
// directly, the same map-key problem persist.SaveDiplomacyState solves for
// BSON.
type diplomacyView struct {
	GameID     string               `json:"gameId"`
	Relations  []diplomacyRelation  `json:"relations"`
	Violations []diplomacy.Violation `json:"violations"`
}

type diplomacyRelation struct {
	A        uint64            `json:"a"`
	B        uint64            `json:"b"`
	Relation diplomacy.Relation `json:"relation"`
}

func newDiplomacyView(d *diplomacy.State) diplomacyView {
	v := diplomacyView{GameID: d.GameID, Violations: d.Violations}
	for p, rel := range d.Relations {
		v.Relations = append(v.Relations, diplomacyRelation{A: uint64(p.A), B: uint64(p.B), Relation: rel})
	}
	return v
}

var dumpStateCmd = &cobra.Command{
	Use:   "dump-state <gameId> <turn>",
	Short: "print a persisted turn snapshot as JSON",
	Args:  cobra.ExactArgs(2),
	RunE:  runDumpState,
}

func runDumpState(cmd *cobra.Command, args []string) error {
	gameID := args[0]
	turn, err := strconv.Atoi(args[1])
	if err != nil {
		os.Exit(ExitValidationError)
		return fmt.Errorf("turn %q is not a valid integer: %w", args[1], err)
	}

	ctx := context.Background()
	s, client, err := persist.Connect(ctx, mongoURI, dbName)
	if err != nil {
		os.Exit(ExitIOError)
		return err
	}
	defer client.Disconnect(ctx)

	doc, err := s.LoadSnapshotDoc(ctx, gameID, turn)
	if err != nil {
		os.Exit(ExitIOError)
		return err
	}

	diplo, err := s.LoadDiplomacyState(ctx, gameID)
	if err != nil {
		os.Exit(ExitIOError)
		return err
	}

	out := struct {
		Snapshot  *persist.GameSnapshotDoc `json:"snapshot"`
		Diplomacy diplomacyView            `json:"diplomacy"`
	}{Snapshot: doc, Diplomacy: newDiplomacyView(diplo)}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		os.Exit(ExitIOError)
		return fmt.Errorf("encode dump: %w", err)
	}
	return nil
}
