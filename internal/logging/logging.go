// Package logging configures the zerolog logger. The TUI owns stdout,
// so logs go to a file under the XDG state directory.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// Setup opens the log file and returns a configured logger. The level
// comes from BIOTUTOR_LOG_LEVEL (default info). If the log file cannot
// be opened, a no-op logger is returned so the app still runs.
func Setup() (zerolog.Logger, func()) {
	lvl, err := zerolog.ParseLevel(os.Getenv("BIOTUTOR_LOG_LEVEL"))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	path, err := defaultLogPath()
	if err != nil {
		return zerolog.Nop(), func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), func() {}
	}

	log := zerolog.New(f).
		With().
		Timestamp().
		Logger()

	return log, func() { f.Close() }
}

// defaultLogPath resolves the log file path:
// $XDG_STATE_HOME/biotutor/biotutor.log, falling back to
// ~/.local/state/biotutor/biotutor.log.
func defaultLogPath() (string, error) {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		stateHome = filepath.Join(home, ".local", "state")
	}

	p := filepath.Join(stateHome, "biotutor", "biotutor.log")
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return "", err
	}
	return p, nil
}
