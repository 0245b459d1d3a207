// Package trip contains the trip aggregate of the freight domain.
//
// A Trip is one vehicle run fulfilling part of an order, created by the trip
// allocator which splits the order's remaining weight across the requested
// number of trips. Each trip owns an append-only status ledger (StatusRecord,
// ordered by an explicit per-trip sequence number) and a set of driver
// expense line items whose sum is denormalized onto the trip.
package trip
