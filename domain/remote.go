package domain

import (
	"context"
	"fmt"
)

// RemoteTable returns the remote backend table that submissions of the given kind are
// delivered to. Session records are local-only and have no table; ok is false for them
// and for unknown kinds.
func RemoteTable(kind FormKind) (table string, ok bool) {
	switch kind {
	case KindLead:
		return "leads", true
	case KindContact:
		return "contacts", true
	case KindBriefing:
		return "briefings", true
	}
	return "", false
}

// RemoteStore defines the interface for the remote backend where confirmed submissions
// are ultimately stored. An implementation performs a single-row insert against one of
// the backend tables; the wire format is the implementation's concern.
type RemoteStore interface {
	// Insert delivers one converted submission row to the named table. A returned
	// error leaves the local record pending; it is never fatal to the submission.
	Insert(ctx context.Context, table string, row map[string]any) error
}

// RemoteError reports a rejected or failed remote insert. The local copy of the record
// already exists when this error is produced, so callers surface it as a soft
// "saved locally, sync pending" condition rather than a submission failure.
type RemoteError struct {
	Table      string
	StatusCode int    // HTTP status for REST backends, 0 otherwise.
	Detail     string // Backend-provided error detail, may be empty.
	Err        error  // Underlying transport error, may be nil.
}

func (e *RemoteError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("remote insert into %s: %v", e.Table, e.Err)
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("remote insert into %s: status %d: %s", e.Table, e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("remote insert into %s: %s", e.Table, e.Detail)
}

func (e *RemoteError) Unwrap() error { return e.Err }
