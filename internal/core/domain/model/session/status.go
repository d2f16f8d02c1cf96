package session

import (
	"errors"
	"fmt"
)

// ErrInvalidSessionTransition is returned when a session operation is not
// allowed in the session's current status. The session is left unchanged.
var ErrInvalidSessionTransition = errors.New("invalid session transition")

// Status represents the lifecycle state of a session. The reachable subset
// depends on the kind:
//
//	picking:  Created ──> Packing ──> Completed
//	dispatch: Created ──> Dispatched ──> Processing ──> Settled
//	return:   Created ──> Completed
//
// Cancelled is reachable from Created (all kinds), Packing (picking) and
// Dispatched (dispatch). Completed, Settled and Cancelled are terminal; a
// terminal session is immutable and its reservations are released.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	StatusUnknown Status = iota

	// StatusCreated is the initial status of every session.
	StatusCreated

	// StatusPacking is a picking session whose pick counts are complete and
	// whose member orders are being packed one by one.
	StatusPacking

	// StatusDispatched is a dispatch session whose member orders were bulk
	// shipped to the carrier.
	StatusDispatched

	// StatusProcessing is a dispatch session whose delivery results have been
	// imported and which awaits settlement.
	StatusProcessing

	// StatusCompleted is the terminal status of picking and return sessions.
	StatusCompleted

	// StatusSettled is the terminal status of dispatch sessions.
	StatusSettled

	// StatusCancelled is the terminal status of an aborted session.
	StatusCancelled
)

func getSessionStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:    "UNKNOWN",
		StatusCreated:    "CREATED",
		StatusPacking:    "PACKING",
		StatusDispatched: "DISPATCHED",
		StatusProcessing: "PROCESSING",
		StatusCompleted:  "COMPLETED",
		StatusSettled:    "SETTLED",
		StatusCancelled:  "CANCELLED",
	}
}

// StatusFromString parses the wire representation of a session status.
func StatusFromString(str string) (Status, error) {
	for status, s := range getSessionStatusStrings() {
		if s == str && status != StatusUnknown {
			return status, nil
		}
	}
	return StatusUnknown, fmt.Errorf("%q is not a known session status", str)
}

// String returns the wire representation of the status.
func (s Status) String() string {
	if str, ok := getSessionStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// Validate checks the status against the known set.
func (s Status) Validate() error {
	if _, ok := getSessionStatusStrings()[s]; !ok || s == StatusUnknown {
		return fmt.Errorf("%d is not a known session status", s)
	}
	return nil
}

// IsTerminal reports whether the session may no longer change.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusSettled || s == StatusCancelled
}
