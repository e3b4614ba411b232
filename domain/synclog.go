package domain

import (
	"time"

	"github.com/google/uuid"
)

// SyncLogRepository defines the interface for the sync activity log.
// It provides methods for persisting and retrieving log entries.
type SyncLogRepository interface {
	// InsertSyncLog saves a new log entry to the repository.
	InsertSyncLog(log *SyncLog) error
	// GetSyncLogs retrieves all log entries from the repository.
	GetSyncLogs() ([]*SyncLog, error)
}

// SyncLog represents a single sync activity entry, recording the outcome of a remote
// delivery attempt or another notable store event for the dashboard to display.
type SyncLog struct {
	ID           uuid.UUID      `json:"id"`                     // Unique identifier for the log entry.
	Timestamp    time.Time      `json:"timestamp"`              // The time at which the log entry was created.
	Level        string         `json:"level"`                  // The severity level of the log (DEBUG, INFO, WARN, ERROR).
	Message      string         `json:"message"`                // The main content of the log message.
	Context      map[string]any `json:"context,omitempty"`      // A map of additional key-value data for structured logging.
	SubmissionID *string        `json:"submissionId,omitempty"` // An optional ID of the submission the entry relates to.
}
