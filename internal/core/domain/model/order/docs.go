// Package order provides the Order aggregate root and its lifecycle state
// machine.
//
// The package includes:
//   - Order: the aggregate root owning identity, line items and lifecycle
//   - Status: a closed state machine over the fulfillment graph
//   - LineItem: immutable child entities fixed at order creation
//
// Key business rules:
//   - Status transitions follow the closed graph; skipping edges is rejected
//   - Returned is entered only through the return processor
//   - Line items never change after creation; total price is derived from them
//   - The stock side effects of specific edges (preparation completed,
//     cancellation after decrement) are owned by the inventory ledger and are
//     committed atomically with the status change by the application layer
package order
