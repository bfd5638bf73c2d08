// Command ec4x is the minimal host-operator CLI spec.md §6 names: new-game,
// advance-turn, submit-orders, dump-state. Grounded on codenerd's cmd/nerd
// split-files-per-command cobra layout (main.go holds only rootCmd wiring
// and global flags; one file per command group) and neper-stars-houston's
// zerolog logger construction, generalized from codenerd's zap logger to
// this repo's zerolog dependency.
package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// Exit codes (spec.md §6): 0 success, 2 validation error, 3 I/O error, 4
// integrity violation.
const (
	ExitSuccess          = 0
	ExitValidationError  = 2
	ExitIOError          = 3
	ExitIntegrityError   = 4
)

var (
	verbose  bool
	dataDir  string
	mongoURI string
	dbName   string
)

var rootCmd = &cobra.Command{
	Use:   "ec4x",
	Short: "ec4x is the host-operator CLI for the EC4X turn engine",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := zerolog.InfoLevel
		if verbose {
			level = zerolog.DebugLevel
		}
		zerolog.SetGlobalLevel(level)
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "./ec4x-data", "local directory for queued order files")
	rootCmd.PersistentFlags().StringVar(&mongoURI, "mongo-uri", "mongodb://localhost:27017", "Mongo connection string for persisted game state")
	rootCmd.PersistentFlags().StringVar(&dbName, "db", "ec4x", "Mongo database name")

	rootCmd.AddCommand(newGameCmd, advanceTurnCmd, submitOrdersCmd, dumpStateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(ExitIOError)
	}
}
