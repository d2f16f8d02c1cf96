// Package services holds stateless domain services coordinating multiple
// aggregates: the inventory ledger guarding every stock mutation and the
// settlement calculator deriving dispatch reconciliation figures.
package services
