package quiz

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidOptionIndex is returned when an option index falls outside
	// the current question's option range.
	ErrInvalidOptionIndex = errors.New("invalid option index")

	// ErrInvalidStateTransition is returned when an action is invoked in a
	// state that does not allow it.
	ErrInvalidStateTransition = errors.New("invalid state transition")
)

// OptionError describes a rejected option selection.
type OptionError struct {
	Index       int
	OptionCount int
}

func (e *OptionError) Error() string {
	return fmt.Sprintf("%v: %d not in [0,%d)", ErrInvalidOptionIndex, e.Index, e.OptionCount)
}

func (e *OptionError) Unwrap() error { return ErrInvalidOptionIndex }

// TransitionError describes an action attempted from the wrong state.
type TransitionError struct {
	Action string
	From   State
	Reason string
}

func (e *TransitionError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%v: %s from %s: %s", ErrInvalidStateTransition, e.Action, e.From, e.Reason)
	}
	return fmt.Sprintf("%v: %s from %s", ErrInvalidStateTransition, e.Action, e.From)
}

func (e *TransitionError) Unwrap() error { return ErrInvalidStateTransition }
