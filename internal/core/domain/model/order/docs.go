// Package order contains the order aggregate of the freight domain.
//
// An Order is a shipment request owned by an organization. Its lifecycle is
// recorded in an append-only status ledger (StatusRecord); the aggregate's
// LastStatusType is a cached projection of the latest ledger entry and is
// refreshed in the same transaction that appends the entry. Orders are never
// physically deleted — deletion unpublishes the order and appends a Canceled
// ledger entry so history stays auditable.
package order
