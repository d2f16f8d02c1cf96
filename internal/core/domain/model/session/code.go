package session

import (
	"fmt"
	"time"

	"fulfillment/internal/pkg/errs"
)

// FormatCode renders a session code as {PREFIX}-{DDMMYYYY}-{NN|NNN}.
// The sequence number is allocated per store per day and resets daily; its
// zero-padded width depends on the kind.
func FormatCode(kind Kind, day time.Time, sequence int) (string, error) {
	if err := kind.Validate(); err != nil {
		return "", errs.NewValueIsInvalidErrorWithCause("kind", err)
	}
	if sequence <= 0 {
		return "", errs.NewValueIsInvalidError("sequence must be greater than 0")
	}

	return fmt.Sprintf("%s-%s-%0*d", kind.CodePrefix(), day.Format("02012006"), kind.SequenceWidth(), sequence), nil
}
