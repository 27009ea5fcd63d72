package pipeline

import (
	"fmt"
)

// SigningError is returned when the signing identity cannot produce a
// signature.
type SigningError struct {
	Err error
}

func (e *SigningError) Error() string {
	return fmt.Sprintf("failed to sign transaction: %v", e.Err)
}

func (e *SigningError) Unwrap() error {
	return e.Err
}

// UserAbortedError is returned when the operator declines the confirmation
// prompt. Nothing was broadcast.
type UserAbortedError struct {
	// Cause is set when the prompt itself failed or was interrupted.
	Cause error
}

func (e *UserAbortedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("transaction aborted by user: %v", e.Cause)
	}
	return "transaction aborted by user"
}

func (e *UserAbortedError) Unwrap() error {
	return e.Cause
}

// TxExecutionError is returned when the ledger rejected or reverted a
// broadcast transaction. RawLog is the chain log exactly as reported.
type TxExecutionError struct {
	TxHash    string
	Code      uint32
	Codespace string
	RawLog    string
}

func (e *TxExecutionError) Error() string {
	return fmt.Sprintf("transaction %s failed (code %d): %s", e.TxHash, e.Code, e.RawLog)
}

// MissingEventError is returned when a successful result lacks an event
// attribute the caller depends on.
type MissingEventError struct {
	EventType string
	Attribute string
}

func (e *MissingEventError) Error() string {
	return fmt.Sprintf("event %q with attribute %q not found in transaction result", e.EventType, e.Attribute)
}
