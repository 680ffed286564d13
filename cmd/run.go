package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mpatel/biotutor/internal/app"
	"github.com/mpatel/biotutor/internal/bank"
	"github.com/mpatel/biotutor/internal/history"
	"github.com/mpatel/biotutor/internal/logging"
	"github.com/mpatel/biotutor/internal/marks"
	"github.com/mpatel/biotutor/internal/sampler"
	"github.com/mpatel/biotutor/internal/screens/study"
	"github.com/mpatel/biotutor/internal/storage"
)

// buildEnv loads the question bank, opens storage, and assembles the
// dependencies the screens share. A database that cannot be opened
// degrades to in-memory storage rather than blocking the app.
func buildEnv(cmd *cobra.Command) (study.Env, func(), error) {
	log, closeLog := logging.Setup()

	b, err := bank.Load()
	if err != nil {
		closeLog()
		return study.Env{}, nil, fmt.Errorf("load question bank: %w", err)
	}

	var store storage.Adapter
	var closeStore func() error

	dbPath, err := resolveDBPath(cmd)
	if err == nil {
		db, oerr := storage.Open(dbPath, log)
		if oerr == nil {
			store = db
			closeStore = db.Close
		} else {
			err = oerr
		}
	}
	if store == nil {
		log.Warn().Err(err).Msg("falling back to in-memory storage")
		fmt.Fprintln(os.Stderr, "Could not open the database; progress will not be saved this run.")
		store = storage.NewMemory()
	}

	env := study.Env{
		Bank:        b,
		Ledger:      history.NewLedger(store, log),
		Bookmarks:   marks.NewBookmarks(store, log),
		ReviewLater: marks.NewReviewLater(store, log),
		Sampler:     sampler.New(nil),
		Log:         log,
	}
	cleanup := func() {
		if closeStore != nil {
			_ = closeStore()
		}
		closeLog()
	}
	return env, cleanup, nil
}

// runApp builds dependencies and launches the TUI at the home screen.
func runApp(cmd *cobra.Command) error {
	env, cleanup, err := buildEnv(cmd)
	if err != nil {
		return err
	}
	defer cleanup()
	return app.Run(env)
}
