package models

import "fmt"

// ModelCallError reports a failed outbound model call: a transport failure, a
// non-success HTTP status, or a success body missing the reply content.
// Status is zero when no HTTP status was obtained.
type ModelCallError struct {
	Status int
	Body   string
}

func (e *ModelCallError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("model call failed (status %d): %s", e.Status, e.Body)
	}
	return fmt.Sprintf("model call failed: %s", e.Body)
}

// MalformedReplyError reports a model reply that contains no parseable JSON
// object, even after the tolerant brace-extraction fallback.
type MalformedReplyError struct {
	Reply string
}

func (e *MalformedReplyError) Error() string {
	return fmt.Sprintf("model reply contains no parseable JSON object: %s", e.Reply)
}
