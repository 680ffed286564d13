package session

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mpatel/biotutor/internal/bank"
)

// Request is the mode-selection input: which mode to run and,
// optionally, which slice of the bank to draw from.
type Request struct {
	Mode Mode

	// ModuleID restricts the pool to one module. Zero means all modules.
	ModuleID int

	// Topic restricts the pool to one topic of ModuleID. Requires a
	// module. Empty means the whole module.
	Topic string

	// Count overrides the mode's default question count (exam only).
	// Zero means the mode default.
	Count int
}

// ValidationError describes a rejected request parameter: the value
// that was refused and the accepted alternatives. It is a user-facing
// condition, never fatal.
type ValidationError struct {
	Field   string
	Value   string
	Valid   []string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("invalid %s %q (valid: %s)", e.Field, e.Value, strings.Join(e.Valid, ", "))
}

// Validate checks the request against the known modes, modules, and
// topics. It returns a *ValidationError describing the first invalid
// parameter, or nil.
func (r Request) Validate() error {
	if !r.Mode.Valid() {
		valid := make([]string, len(AllModes))
		for i, m := range AllModes {
			valid[i] = string(m)
		}
		return &ValidationError{Field: "mode", Value: string(r.Mode), Valid: valid}
	}

	if r.ModuleID != 0 {
		mod := bank.ModuleByID(r.ModuleID)
		if mod == nil {
			valid := make([]string, 0, len(bank.Modules))
			for _, id := range bank.ModuleIDs() {
				valid = append(valid, strconv.Itoa(id))
			}
			return &ValidationError{Field: "module", Value: strconv.Itoa(r.ModuleID), Valid: valid}
		}
		if r.Topic != "" && !mod.HasTopic(r.Topic) {
			return &ValidationError{
				Field: "topic",
				Value: r.Topic,
				Valid: mod.Topics,
				Message: fmt.Sprintf("module %d has no topic %q (valid: %s)",
					r.ModuleID, r.Topic, strings.Join(mod.Topics, ", ")),
			}
		}
	} else if r.Topic != "" {
		return &ValidationError{
			Field:   "topic",
			Value:   r.Topic,
			Message: fmt.Sprintf("topic %q requires a module", r.Topic),
		}
	}

	if r.Count < 0 {
		return &ValidationError{
			Field:   "count",
			Value:   strconv.Itoa(r.Count),
			Message: fmt.Sprintf("question count %d must be positive", r.Count),
		}
	}

	return nil
}
