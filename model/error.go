package model

import "fmt"

// MessageTooLongError is returned when outbound message content exceeds the
// 2000 character cap. Length counts the overage, not the total.
type MessageTooLongError struct {
	Over int
}

func (e *MessageTooLongError) Error() string {
	return fmt.Sprintf("message content is %d characters over the limit", e.Over)
}

// DeleteMessageDaysError is returned when a ban requests more than 7 days of
// message deletion.
type DeleteMessageDaysError struct {
	Days int
}

func (e *DeleteMessageDaysError) Error() string {
	return fmt.Sprintf("can delete at most 7 days of messages, requested %d", e.Days)
}

// InvalidPermissionNameError is returned when a permission name does not
// resolve to a known bit.
type InvalidPermissionNameError struct {
	Name string
}

func (e *InvalidPermissionNameError) Error() string {
	return fmt.Sprintf("unknown permission name %q", e.Name)
}

// PermissionDeniedError is returned by local pre-checks when the cached state
// shows the current user lacks a required permission. The request is never
// sent.
type PermissionDeniedError struct {
	Missing Permissions
}

func (e *PermissionDeniedError) Error() string {
	return fmt.Sprintf("missing required permissions %s", e.Missing)
}

// MaxMessageLength is the hard cap on outbound message content.
const MaxMessageLength = 2000
