package rest

import "fmt"

// UnexpectedStatusError reports a response whose status did not match the
// expectation for the endpoint. The consumed body is kept for diagnostics.
type UnexpectedStatusError struct {
	Status int
	Body   []byte
}

func (e *UnexpectedStatusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.Status, e.Body)
}
