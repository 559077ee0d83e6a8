package rules

import (
	"errors"
	"fmt"
	"strings"

	"lineup-service/internal/domain/players"
)

// ValidationError reports why a lineup is not complete. It is recoverable:
// the wizard blocks the forward transition and surfaces the message.
type ValidationError struct {
	MissingPositions []players.Position
	MissingCoach     bool
}

func (e *ValidationError) Error() string {
	filled := len(players.TacticalPositions) - len(e.MissingPositions)
	parts := []string{fmt.Sprintf("%d of %d positions filled", filled, len(players.TacticalPositions))}
	if len(e.MissingPositions) > 0 {
		labels := make([]string, len(e.MissingPositions))
		for i, pos := range e.MissingPositions {
			labels[i] = pos.Label()
		}
		parts = append(parts, "missing "+strings.Join(labels, ", "))
	}
	if e.MissingCoach {
		parts = append(parts, "coach missing")
	}
	return "lineup incomplete: " + strings.Join(parts, "; ")
}

// AsValidationError attempts to unwrap an error into a ValidationError.
func AsValidationError(err error) (*ValidationError, bool) {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return vErr, true
	}
	return nil, false
}
