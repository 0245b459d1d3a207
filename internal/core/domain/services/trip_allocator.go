package services

import (
	"fmt"
	"time"

	"freight/internal/pkg/errs"
)

const (
	// minAllocationTimeout is the floor of the allocation transaction budget.
	minAllocationTimeout = 20 * time.Second

	// perTripTimeout scales the budget with the requested trip count so that
	// large fan-outs are not starved by a fixed timeout.
	perTripTimeout = 100 * time.Millisecond
)

// TripAllocator splits an order's remaining (undelivered) weight across the
// requested number of new trips. The split is a pure computation; persisting
// the resulting trips inside one transaction is the caller's job.
type TripAllocator struct{}

// NewTripAllocator creates the allocator service.
func NewTripAllocator() TripAllocator {
	return TripAllocator{}
}

// Allocate returns the weight each of the requested trips receives. Each trip
// gets min(weightPerTrip, remaining); remaining decreases as trips are cut.
// When the remaining weight runs out before the requested count is met, the
// surplus trips are allocated zero weight rather than dropped — an explicit
// request for N trips always yields N trips.
func (a TripAllocator) Allocate(
	requestedTripCount int,
	weightPerTrip float64,
	startingRemainingWeight float64,
) ([]float64, error) {
	if requestedTripCount < 1 {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"requestedTripCount is invalid",
			fmt.Errorf("%d is not greater than 0", requestedTripCount),
		)
	}
	if weightPerTrip <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"weightPerTrip is invalid",
			fmt.Errorf("%v is not greater than 0", weightPerTrip),
		)
	}
	if startingRemainingWeight < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"startingRemainingWeight is invalid",
			fmt.Errorf("%v is negative", startingRemainingWeight),
		)
	}

	weights := make([]float64, 0, requestedTripCount)
	remaining := startingRemainingWeight
	for i := 0; i < requestedTripCount; i++ {
		weight := weightPerTrip
		if remaining < weight {
			weight = remaining
		}
		weights = append(weights, weight)
		remaining -= weight
	}

	return weights, nil
}

// TimeoutBudget returns the transaction timeout for allocating the requested
// number of trips: max(20s, 100ms per trip).
func (a TripAllocator) TimeoutBudget(requestedTripCount int) time.Duration {
	budget := time.Duration(requestedTripCount) * perTripTimeout
	if budget < minAllocationTimeout {
		return minAllocationTimeout
	}
	return budget
}
