package study

import (
	"github.com/rs/zerolog"

	"github.com/mpatel/biotutor/internal/bank"
	"github.com/mpatel/biotutor/internal/history"
	"github.com/mpatel/biotutor/internal/marks"
	"github.com/mpatel/biotutor/internal/sampler"
)

// Env bundles the app-level dependencies the screens share: the loaded
// question bank, the answer ledger, the two mark registries, and the
// question sampler. It is constructed once at startup and passed down.
type Env struct {
	Bank        *bank.Bank
	Ledger      *history.Ledger
	Bookmarks   *marks.Set
	ReviewLater *marks.Set
	Sampler     *sampler.Sampler
	Log         zerolog.Logger
}
