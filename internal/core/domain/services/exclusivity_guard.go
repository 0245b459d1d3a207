package services

import (
	"fmt"
	"time"

	"freight/internal/pkg/errs"
)

// ExclusivityGuard detects lost updates without taking locks. Every read
// payload carries the entity's modification timestamp as an opaque version
// token; every mutation must present it back. A mismatch means another user
// changed the entity in between, and the caller must reload and retry.
//
// The check is read-only and holds no lock, so a narrow race between the
// check and the commit remains possible. That tradeoff is accepted: the
// guard is a fast-fail pre-check, not an exclusive lock.
type ExclusivityGuard struct{}

// NewExclusivityGuard creates the guard service.
func NewExclusivityGuard() ExclusivityGuard {
	return ExclusivityGuard{}
}

// Check compares the stored modification timestamp against the client's last
// seen value. Equality must be exact, not within an epsilon, since the client
// value is itself sourced from a prior read. Returns a VersionIsInvalidError
// on mismatch; the caller must surface it as a conflict and never auto-retry.
func (g ExclusivityGuard) Check(stored time.Time, clientLastSeen time.Time) error {
	if !stored.Equal(clientLastSeen) {
		return errs.NewVersionIsInvalidErrorWithCause(
			"lastUpdatedAt",
			fmt.Errorf("stored %s does not match client %s",
				stored.UTC().Format(time.RFC3339Nano),
				clientLastSeen.UTC().Format(time.RFC3339Nano)),
		)
	}
	return nil
}
