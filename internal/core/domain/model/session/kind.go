package session

import (
	"fmt"

	"fulfillment/internal/core/domain/model/order"
)

// Kind distinguishes the three coordinated warehouse operations a session can
// represent. Exclusivity of order membership is scoped per kind: an order may
// sit in at most one active session of each kind.
type Kind int

const (
	// KindUnknown represents an invalid or undefined kind.
	KindUnknown Kind = iota

	// KindPicking groups confirmed orders for warehouse picking and packing.
	KindPicking

	// KindDispatch groups ready-to-ship orders for carrier hand-off.
	KindDispatch

	// KindReturn groups delivered or shipped orders for return resolution.
	KindReturn
)

func getKindStrings() map[Kind]string {
	return map[Kind]string{
		KindPicking:  "picking",
		KindDispatch: "dispatch",
		KindReturn:   "return",
	}
}

// KindFromString parses the wire representation of a session kind.
func KindFromString(s string) (Kind, error) {
	for kind, str := range getKindStrings() {
		if str == s {
			return kind, nil
		}
	}
	return KindUnknown, fmt.Errorf("%q is not a known session kind", s)
}

// String returns the wire representation of the kind.
func (k Kind) String() string {
	if str, ok := getKindStrings()[k]; ok {
		return str
	}
	return "unknown"
}

// Validate checks the kind against the known set.
func (k Kind) Validate() error {
	if _, ok := getKindStrings()[k]; !ok {
		return fmt.Errorf("%d is not a known session kind", k)
	}
	return nil
}

// CodePrefix returns the session code prefix for the kind.
func (k Kind) CodePrefix() string {
	switch k {
	case KindPicking:
		return "PREP"
	case KindDispatch:
		return "DISP"
	case KindReturn:
		return "RET"
	}
	return ""
}

// SequenceWidth returns the zero-padded width of the code sequence number.
// Dispatch runs use two digits, picking and return runs three.
func (k Kind) SequenceWidth() int {
	if k == KindDispatch {
		return 2
	}
	return 3
}

// IsEligibleSource reports whether an order in the given status may be
// reserved into a session of this kind.
func (k Kind) IsEligibleSource(s order.Status) bool {
	switch k {
	case KindPicking:
		return s == order.Confirmed
	case KindDispatch:
		return s == order.ReadyToShip
	case KindReturn:
		return s == order.Delivered || s == order.Shipped
	}
	return false
}
