// pkg/network/cosmos/errors.go
package cosmos

import (
	"errors"
	"fmt"
)

// RPCError is returned when an LCD call fails below the chain level: transport
// errors, unexpected HTTP statuses and unparsable responses.
type RPCError struct {
	Operation  string
	StatusCode int
	Message    string
}

func (e *RPCError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("LCD %s failed (HTTP %d): %s", e.Operation, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("LCD %s failed: %s", e.Operation, e.Message)
}

// NotFoundError is returned when a resource is not found.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("resource not found: %s", e.Resource)
}

// IsNotFound returns true if the error is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// ChainIDMismatchError is returned when the node serves a different chain
// than the selected network profile.
type ChainIDMismatchError struct {
	Expected string
	Actual   string
}

func (e *ChainIDMismatchError) Error() string {
	return fmt.Sprintf("node serves chain %q, expected %q", e.Actual, e.Expected)
}
