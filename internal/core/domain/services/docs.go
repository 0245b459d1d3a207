// Package services contains stateless domain services that implement business
// logic spanning multiple aggregates or requiring pure computation:
//
//   - ExclusivityGuard: the optimistic-concurrency pre-check comparing client
//     and stored modification timestamps
//   - TripAllocator: the weight-split algorithm dividing an order's remaining
//     weight across the requested number of trips
//   - ReceiverResolver: the receiver-set resolution for notification fan-out
//
// Domain services hold no state and are safe for concurrent use.
package services
