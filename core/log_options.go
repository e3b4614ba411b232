// Package core provides fundamental utilities for the Formrelay pipeline.
// This file contains option functions for customizing sync log entries.
package core

import (
	"github.com/tb-digital/formrelay/domain"
)

// LogWithContext is an option to add a context map to a log entry.
func LogWithContext(context map[string]any) func(log *domain.SyncLog) error {
	return func(log *domain.SyncLog) error {
		log.Context = context
		return nil
	}
}

// LogWithSubmissionID is an option to associate a log entry with a submission ID.
func LogWithSubmissionID(id string) func(log *domain.SyncLog) error {
	return func(log *domain.SyncLog) error {
		log.SubmissionID = &id
		return nil
	}
}
