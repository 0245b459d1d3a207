package order

import (
	"fmt"

	"freight/internal/pkg/errs"
)

// Status represents the lifecycle state of a freight order.
//
// State transitions:
//
//	New ──> Received ──> InProgress ──> Completed
//	 │          │             │
//	 └──────────┴─────────────┴──> Canceled
//
// Completed and Canceled are terminal. The current status of an order is a
// cached projection of its append-only status ledger; moving the state
// machine always means appending a new ledger entry.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// New is the initial status of a freshly created order.
	New

	// Received indicates the back office has acknowledged the order.
	Received

	// InProgress indicates at least one trip is underway for the order.
	InProgress

	// Completed indicates all cargo has been delivered. Terminal.
	Completed

	// Canceled indicates the order was withdrawn. Terminal, reachable
	// from any non-terminal state.
	Canceled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "Unknown",
		New:        "New",
		Received:   "Received",
		InProgress: "InProgress",
		Completed:  "Completed",
		Canceled:   "Canceled",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		New:        "New",
		Received:   "Received",
		InProgress: "InProgress",
		Completed:  "Completed",
		Canceled:   "Canceled",
	}
}

// Validate checks if the Status value is part of the order taxonomy.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// Implements fmt.Stringer and is safe on any value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether no further transitions are allowed.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Canceled
}

// CanTransitionTo checks whether the state machine allows moving from the
// current status to next. Canceled is reachable from every non-terminal
// status; the forward path is strictly New -> Received -> InProgress ->
// Completed.
func (s Status) CanTransitionTo(next Status) error {
	if err := next.Validate(); err != nil {
		return err
	}
	if s.IsTerminal() {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is terminal and cannot transition to %s", s, next),
		)
	}
	if next == Canceled {
		return nil
	}

	allowed := map[Status]Status{
		New:        Received,
		Received:   InProgress,
		InProgress: Completed,
	}
	if allowed[s] != next {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("cannot transition from %s to %s", s, next),
		)
	}
	return nil
}

// Receive transitions the status to Received.
func (s Status) Receive() (Status, error) {
	if err := s.CanTransitionTo(Received); err != nil {
		return 0, err
	}
	return Received, nil
}

// Start transitions the status to InProgress.
func (s Status) Start() (Status, error) {
	if err := s.CanTransitionTo(InProgress); err != nil {
		return 0, err
	}
	return InProgress, nil
}

// Complete transitions the status to Completed.
func (s Status) Complete() (Status, error) {
	if err := s.CanTransitionTo(Completed); err != nil {
		return 0, err
	}
	return Completed, nil
}

// Cancel transitions the status to Canceled. Allowed from any non-terminal state.
func (s Status) Cancel() (Status, error) {
	if err := s.CanTransitionTo(Canceled); err != nil {
		return 0, err
	}
	return Canceled, nil
}
