package domain

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrSubmissionNotFound is returned when a submission lookup by ID finds no record.
var ErrSubmissionNotFound = errors.New("submission not found")

// FormKind is the discriminant of the submission union. The set of kinds is closed:
// each kind has its own field variant and its own remote table (except session,
// which is local-only).
type FormKind string

const (
	KindLead     FormKind = "lead"
	KindContact  FormKind = "contact"
	KindBriefing FormKind = "briefing"
	KindSession  FormKind = "session"
)

// Valid reports whether the kind is one of the four known form kinds.
func (k FormKind) Valid() bool {
	switch k {
	case KindLead, KindContact, KindBriefing, KindSession:
		return true
	}
	return false
}

// Status is the customer-service workflow state of a submission.
// It is independent of the remote-sync flag and is absent for session records.
type Status string

const (
	StatusNew       Status = "new"
	StatusRead      Status = "read"
	StatusResponded Status = "responded"
	StatusArchived  Status = "archived"
)

// Valid reports whether the status is one of the known workflow states.
func (s Status) Valid() bool {
	switch s {
	case StatusNew, StatusRead, StatusResponded, StatusArchived:
		return true
	}
	return false
}

// Submission is one locally stored form record. It is created before any network
// attempt is made, so the local store never loses user data to a remote failure.
type Submission struct {
	ID        string     `json:"id"`                  // Opaque unique identifier, generated at write time, never reused.
	Kind      FormKind   `json:"kind"`                // Discriminant selecting the field variant and the remote table.
	CreatedAt time.Time  `json:"createdAt"`           // Creation time, set once at write time, immutable.
	Synced    bool       `json:"synced"`              // True once a remote insert for this exact record has succeeded. Never reverts.
	Status    Status     `json:"status,omitempty"`    // Workflow state, defaults to "new". Empty for session records.
	Fields    FormFields `json:"fields"`              // The per-kind field payload.
	Responses []Response `json:"responses,omitempty"` // Ordered, append-only customer-service replies.
}

// Response is a single customer-service reply attached to a submission.
// The presence of any response implies the submission status is "responded".
type Response struct {
	ID           uuid.UUID `json:"id"`           // Unique identifier for the reply.
	SubmissionID string    `json:"submissionId"` // The submission this reply belongs to.
	CreatedAt    time.Time `json:"createdAt"`    // Time the reply was recorded.
	Subject      string    `json:"subject"`
	Message      string    `json:"message"`
	SentTo       string    `json:"sentTo"` // Address the reply was sent to.
}

// NewSubmissionID generates a new submission identifier: a "tb_" prefix followed by
// the creation time in unix milliseconds and a random suffix. IDs are unique for the
// lifetime of the store.
func NewSubmissionID(now time.Time) string {
	suffix := make([]byte, 4)
	rand.Read(suffix)
	return fmt.Sprintf("tb_%d_%s", now.UnixMilli(), hex.EncodeToString(suffix))
}

// SubmissionRepository defines the interface for the local durable form store.
// Writes are durable and independent of network availability; the store is the source
// of truth for anything not yet synced to the remote backend.
type SubmissionRepository interface {
	// InsertSubmission persists a new submission. The caller is expected to have
	// stamped ID, CreatedAt, Status and the zero-valued sync flag beforehand.
	// A failed insert means nothing was saved anywhere.
	InsertSubmission(sub *Submission) error

	// GetSubmission retrieves a single submission by ID, including its responses.
	// It returns ErrSubmissionNotFound if no such record exists.
	GetSubmission(id string) (*Submission, error)

	// GetSubmissions returns all submissions in insertion order. A missing or empty
	// store yields an empty slice, not an error, so dashboard reads stay resilient.
	GetSubmissions() ([]*Submission, error)

	// GetSubmissionsByKind returns all submissions of one kind in insertion order.
	GetSubmissionsByKind(kind FormKind) ([]*Submission, error)

	// GetUnsynced returns all submissions whose remote insert has not yet succeeded.
	GetUnsynced() ([]*Submission, error)

	// MarkSynced records that the remote insert for the submission succeeded.
	// The flag is monotonic: once set it never reverts, and marking twice has no
	// further effect. Marking an unknown ID is a silent no-op.
	MarkSynced(id string) error

	// UpdateStatus sets the workflow status. Unknown IDs are a silent no-op.
	UpdateStatus(id string, status Status) error

	// AppendResponse appends a customer-service reply and forces the submission
	// status to "responded". Unknown IDs are a silent no-op.
	AppendResponse(id string, subject, message, sentTo string) error

	// ClearSubmissions deletes the entire collection, responses included.
	ClearSubmissions() error
}
