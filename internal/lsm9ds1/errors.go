package lsm9ds1

import "fmt"

// State tracks the lifecycle of one sub-device. Each sub-device starts
// Unconfigured, becomes Configured once its control registers have been
// written, and Enabled once its axis-enable/operating-mode register has
// been written. Reads are only valid in Enabled.
type State int

const (
	Unconfigured State = iota
	Configured
	Enabled
)

func (s State) String() string {
	switch s {
	case Configured:
		return "configured"
	case Enabled:
		return "enabled"
	default:
		return "unconfigured"
	}
}

// BusError reports a failed transfer on the underlying bus. The failing
// operation is never retried and never partially applied; a short
// transfer is an error, not a success with fewer bytes.
type BusError struct {
	Op       string // "read" or "write"
	Device   Device
	Register byte
	Err      error
}

func (e *BusError) Error() string {
	return fmt.Sprintf("lsm9ds1: %s %s register 0x%02X: %v", e.Op, e.Device, e.Register, e.Err)
}

func (e *BusError) Unwrap() error { return e.Err }

// SequenceError reports an operation attempted before its sub-device
// reached the required lifecycle state.
type SequenceError struct {
	Attempted string
	State     State // state the sub-device was in
	Required  State
}

func (e *SequenceError) Error() string {
	return fmt.Sprintf("lsm9ds1: %s requires a sub-device in state %s or later, got %s",
		e.Attempted, e.Required, e.State)
}
