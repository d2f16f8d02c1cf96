// Package product provides the Product aggregate and the InventoryMovement
// audit entity. Stock is mutated only by the inventory ledger domain service,
// which writes exactly one movement per stock change within the same
// transaction, keeping the append-only trail conserved against the stock count.
package product
