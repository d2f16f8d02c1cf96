package order

import (
	"errors"
	"fmt"
)

// Transition errors reported by the status state machine.
var (
	// ErrInvalidTransition is returned when the requested target status is not
	// an outgoing edge of the current status. The order is left unchanged.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrInvalidStatus is returned when a status value is unknown to the graph.
	ErrInvalidStatus = errors.New("invalid status")
)

// Status represents the lifecycle state of an order.
// It implements a closed state machine; any transition that is not an edge of
// the graph fails and leaves the order untouched.
//
// State transitions:
//
//	Pending ──> Confirmed ──> InPreparation ──> ReadyToShip ──> Shipped ──> Delivered
//	   │            │               │                │             │  │          │
//	   └────────────┴───────────────┴────────────────┴─────────────┘  └──────────┤
//	                        Cancelled (terminal)                    Returned (terminal)
//
// Returned is reachable only from Delivered or Shipped and only through the
// return processor; a direct transition request to Returned is rejected.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status of a freshly placed order.
	Pending

	// Confirmed indicates the order has been accepted for fulfillment.
	// Confirmed orders are eligible for picking sessions.
	Confirmed

	// InPreparation indicates the order is being picked in the warehouse.
	InPreparation

	// ReadyToShip indicates packing finished and stock has been decremented.
	// ReadyToShip orders are eligible for dispatch sessions.
	ReadyToShip

	// Shipped indicates the order was handed over to the carrier.
	Shipped

	// Delivered is a terminal-forward status: the carrier delivered the order.
	// Delivered orders are eligible for return sessions.
	Delivered

	// Cancelled is a terminal status reachable from every non-terminal status.
	Cancelled

	// Returned is a terminal status set exclusively by the return processor.
	Returned
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:       "UNKNOWN",
		Pending:       "PENDING",
		Confirmed:     "CONFIRMED",
		InPreparation: "IN_PREPARATION",
		ReadyToShip:   "READY_TO_SHIP",
		Shipped:       "SHIPPED",
		Delivered:     "DELIVERED",
		Cancelled:     "CANCELLED",
		Returned:      "RETURNED",
	}
}

// transitions holds the outgoing edges of the graph. Returned is absent on
// purpose: it is never a valid target of a direct transition request.
func transitions() map[Status][]Status {
	return map[Status][]Status{
		Pending:       {Confirmed, Cancelled},
		Confirmed:     {InPreparation, Cancelled},
		InPreparation: {ReadyToShip, Cancelled},
		ReadyToShip:   {Shipped, Cancelled},
		Shipped:       {Delivered, Cancelled},
		Delivered:     {},
		Cancelled:     {},
		Returned:      {},
	}
}

// StatusFromString parses the wire representation of a status (e.g. "SHIPPED").
// Returns ErrInvalidStatus for unknown values.
func StatusFromString(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, fmt.Errorf("%w: %s", ErrInvalidStatus, s)
}

// String returns the wire representation of the status.
// Implements fmt.Stringer and is safe to call on any value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// Validate checks that the status is a node of the transition graph.
func (s Status) Validate() error {
	if _, ok := transitions()[s]; !ok {
		return fmt.Errorf("%w: %d is not a known status", ErrInvalidStatus, s)
	}
	return nil
}

// IsTerminal reports whether the status has no outgoing edges.
func (s Status) IsTerminal() bool {
	edges, ok := transitions()[s]
	return ok && len(edges) == 0
}

// CanTransitionTo reports whether target is an outgoing edge of s.
func (s Status) CanTransitionTo(target Status) bool {
	for _, edge := range transitions()[s] {
		if edge == target {
			return true
		}
	}
	return false
}

// TransitionTo validates and performs a direct transition request.
//
// Returns:
//   - (target, nil) when target is an outgoing edge of s
//   - (0, ErrInvalidStatus) when target is not a node of the graph
//   - (0, ErrInvalidTransition) otherwise, including any request targeting Returned
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return 0, err
	}

	if !s.CanTransitionTo(target) {
		return 0, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s, target)
	}

	return target, nil
}
