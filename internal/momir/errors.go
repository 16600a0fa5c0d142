package momir

import (
	"errors"
	"fmt"
)

var (
	ErrBusy                 = errors.New("a card is already being fetched")
	ErrHistoryEntryNotFound = errors.New("history entry not found")
)

// UnknownModeError is returned when an action needs a print mode but none
// (or an unknown one) is selected
type UnknownModeError struct {
	Mode PrintMode
}

func (e *UnknownModeError) Error() string {
	return fmt.Sprintf("unknown print mode: %q", string(e.Mode))
}
