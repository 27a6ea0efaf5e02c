package hue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
)

var (
	// ErrUnreachable indicates the bridge could not be reached over the network
	ErrUnreachable = errors.New("bridge unreachable")

	// ErrRejected indicates the bridge answered but refused the command
	// (unknown group, unauthorized user, invalid state)
	ErrRejected = errors.New("bridge rejected command")

	// ErrTimeout indicates a bridge call did not complete within its deadline
	ErrTimeout = errors.New("bridge request timed out")

	// ErrInvalidColor indicates a color code is not six hexadecimal digits
	ErrInvalidColor = errors.New("invalid color code")

	// ErrNotConfigured indicates the bridge address or username is missing
	ErrNotConfigured = errors.New("bridge not configured")
)

// Error kinds reported to callers alongside a failed group.
const (
	KindUnreachable  = "unreachable"
	KindRejected     = "rejected"
	KindTimeout      = "timeout"
	KindInvalidColor = "invalid_color"
	KindCanceled     = "canceled"
	KindUnknown      = "error"
)

// BridgeError describes a failed bridge operation on a single group.
type BridgeError struct {
	Op      string // set_color, set_brightness, get_brightness, list_groups, ping
	GroupID string
	Err     error
}

// Error implements the error interface
func (e *BridgeError) Error() string {
	if e.GroupID == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s group %s: %v", e.Op, e.GroupID, e.Err)
}

// Unwrap returns the classified cause
func (e *BridgeError) Unwrap() error {
	return e.Err
}

// Kind returns the short error kind for err.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return KindTimeout
	case errors.Is(err, ErrUnreachable):
		return KindUnreachable
	case errors.Is(err, ErrRejected):
		return KindRejected
	case errors.Is(err, ErrInvalidColor):
		return KindInvalidColor
	case errors.Is(err, context.Canceled):
		return KindCanceled
	default:
		return KindUnknown
	}
}

// classify maps a transport or bridge error onto one of the sentinel kinds.
// Local encoding failures never reach the bridge and stay unclassified.
// Anything else that is not a network or deadline failure means the bridge
// answered and refused.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrTimeout) || errors.Is(err, ErrUnreachable) ||
		errors.Is(err, ErrRejected) || errors.Is(err, ErrInvalidColor) {
		return err
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}

	if isEncodeError(err) {
		return err
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return fmt.Errorf("%w: %v", ErrTimeout, err)
		}
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}

	return fmt.Errorf("%w: %v", ErrRejected, err)
}

func isEncodeError(err error) bool {
	var (
		valueErr     *json.UnsupportedValueError
		typeErr      *json.UnsupportedTypeError
		marshalerErr *json.MarshalerError
	)
	return errors.As(err, &valueErr) || errors.As(err, &typeErr) || errors.As(err, &marshalerErr)
}
