package trip

import (
	"fmt"

	"freight/internal/pkg/errs"
)

// Status represents the lifecycle state of a trip fulfilling part of an order.
//
// State transitions:
//
//	New ──> PendingConfirmation ──> Confirmed ──> Delivering ──> Delivered ──> Completed
//	 │               │                  │             │              │
//	 └───────────────┴──────────────────┴─────────────┴──────────────┴──> Canceled
//
// Canceled is reachable from any state before Completed. Like order status,
// trip status only moves by appending entries to the trip's status ledger.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// New is the initial status assigned by the trip allocator.
	New

	// PendingConfirmation indicates the trip awaits driver confirmation.
	PendingConfirmation

	// Confirmed indicates the driver accepted the trip.
	Confirmed

	// Delivering indicates the vehicle is on the road.
	Delivering

	// Delivered indicates the cargo reached its destination.
	Delivered

	// Completed indicates paperwork is settled. Terminal.
	Completed

	// Canceled indicates the trip was withdrawn. Terminal.
	Canceled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:             "Unknown",
		New:                 "New",
		PendingConfirmation: "PendingConfirmation",
		Confirmed:           "Confirmed",
		Delivering:          "Delivering",
		Delivered:           "Delivered",
		Completed:           "Completed",
		Canceled:            "Canceled",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		New:                 "New",
		PendingConfirmation: "PendingConfirmation",
		Confirmed:           "Confirmed",
		Delivering:          "Delivering",
		Delivered:           "Delivered",
		Completed:           "Completed",
		Canceled:            "Canceled",
	}
}

// Validate checks if the Status value is part of the trip taxonomy.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// StatusFromString parses a status name as produced by String.
func StatusFromString(name string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == name {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status is invalid",
		fmt.Errorf("%q is not a valid status", name),
	)
}

// IsTerminal reports whether no further transitions are allowed.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Canceled
}

// CanTransitionTo checks whether the state machine allows moving from the
// current status to next. The forward path is strict; Canceled is reachable
// from any state before Completed.
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
		New:                 PendingConfirmation,
		PendingConfirmation: Confirmed,
		Confirmed:           Delivering,
		Delivering:          Delivered,
		Delivered:           Completed,
	}
	if allowed[s] != next {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("cannot transition from %s to %s", s, next),
		)
	}
	return nil
}

// Cancel transitions the status to Canceled.
func (s Status) Cancel() (Status, error) {
	if err := s.CanTransitionTo(Canceled); err != nil {
		return 0, err
	}
	return Canceled, nil
}
