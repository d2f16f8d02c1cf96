// Package session provides the Session aggregate generalizing the three batch
// warehouse operations: picking, dispatch and return.
//
// A session exclusively reserves a set of orders for one coordinated
// operation. Reservation disjointness against other active sessions of the
// same kind is claimed atomically at creation; the aggregate itself guards its
// kind-specific state machine and child entities (pick items, deliveries,
// return items) plus the dispatch settlement.
//
// Session codes follow {PREFIX}-{DDMMYYYY}-{NN|NNN} with a per-store, per-day
// sequence (PREP for picking, DISP for dispatch, RET for return).
package session
