// Package formrelay provides a store-then-forward intake pipeline for marketing-site
// form submissions, backed by SQLite local storage and a remote database-as-a-service.
// It is designed to be decoupled from HTTP surfaces and provides methods for building
// submission endpoints, customer-service dashboards, and batch sync tooling.
//
// The core functionality includes:
//   - Durable local persistence of every submission before any network attempt
//   - Remote delivery to per-kind backend tables with local status reconciliation
//   - Customer-service query layer with filtering and aggregate statistics
//   - Batch re-delivery of pending submissions
//   - SQLite-backed sync activity log
package formrelay

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tb-digital/formrelay/core"
	"github.com/tb-digital/formrelay/domain"
)

// Repository defines the methods consumed by the relay to interact with the SQLite
// backend. It is the union of the domain repository contracts plus connection lifecycle.
type Repository interface {
	domain.SubmissionRepository
	domain.StatsRepository
	domain.SyncLogRepository
	domain.SettingsRepository
	Close() error
}

// Relay is the main struct that orchestrates the submission pipeline: validation,
// durable local writes, remote delivery, and the customer-service read side. It serves
// as the central coordinator between the local store and the remote backend.
type Relay struct {
	ConfigDir    string                               // The configuration directory (defaults to the formrelay folder under the user configuration directory)
	Config       *Config                              // The relay configuration (separate from any GUI config)
	Repo         Repository                           // DB Repository Interface
	Remote       domain.RemoteStore                   // Remote backend where confirmed submissions are delivered
	OnSubmission func(sub domain.Submission) error    // Function to be ran after each local write - used by API/GUI layers to react to new submissions
	OnSync       func(report SyncReport) error        // Function to be ran after each batch sync - used by API/GUI layers to surface the summary
	Now          func() time.Time                     // Clock, swappable in tests
}

// New creates a new Relay instance with default configuration and applies any provided
// options.
//
// Parameters:
//   - options: Variadic list of option functions to configure the relay
//
// Returns:
//   - *Relay: Configured relay instance
//   - error: Configuration error if any option fails
func New(options ...func(*Relay) error) (*Relay, error) {
	relay := &Relay{
		Config: &Config{},
		Now:    time.Now,
	}
	err := relay.WithOptions(options...)
	if err != nil {
		return nil, err
	}
	return relay, nil
}

// WithOptions applies a series of configuration functions to the relay instance.
// Each option function can modify the relay configuration and return an error if it fails.
func (relay *Relay) WithOptions(options ...func(*Relay) error) error {
	for _, option := range options {
		err := option(relay)
		if err != nil {
			return fmt.Errorf("applying option on formrelay : %w", err)
		}
	}
	return nil
}

// Close releases the relay's local store resources.
func (relay *Relay) Close() error {
	if relay.Repo == nil {
		return nil
	}
	if err := relay.Repo.Close(); err != nil {
		return fmt.Errorf("closing relay repo : %w", err)
	}
	return nil
}

// WriteLog records an entry in the sync activity log. The level must be one of
// DEBUG, INFO, WARN, ERROR. Options can attach context or a submission ID.
func (relay *Relay) WriteLog(level string, message string, options ...func(log *domain.SyncLog) error) error {
	switch level {
	case "DEBUG":
	case "INFO":
	case "WARN":
	case "ERROR":
	default:
		return fmt.Errorf("level should be either: debug, info, warn, error")
	}
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("generating new uuid : %w", err)
	}
	log := domain.SyncLog{
		ID:        id,
		Level:     level,
		Message:   message,
		Timestamp: relay.Now(),
	}
	for _, option := range options {
		err := option(&log)
		if err != nil {
			return fmt.Errorf("applying log option : %w", err)
		}
	}
	if err := relay.Repo.InsertSyncLog(&log); err != nil {
		return fmt.Errorf("writing sync log : %w", err)
	}
	return nil
}

// remoteInsert delivers one submission to the remote backend and reconciles the local
// sync flag on success. It returns the remote error, if any; the local record stays
// pending in that case.
func (relay *Relay) remoteInsert(ctx context.Context, sub *domain.Submission) error {
	table, ok := domain.RemoteTable(sub.Kind)
	if !ok {
		return fmt.Errorf("kind %q has no remote table", sub.Kind)
	}

	row := ToRemoteRow(sub)
	if err := relay.Remote.Insert(ctx, table, row); err != nil {
		relay.WriteLog("ERROR", fmt.Sprintf("remote insert into %s failed: %v", table, err),
			core.LogWithSubmissionID(sub.ID),
			core.LogWithContext(map[string]any{"table": table}))
		return err
	}

	if err := relay.Repo.MarkSynced(sub.ID); err != nil {
		return fmt.Errorf("marking submission %s synced : %w", sub.ID, err)
	}

	relay.WriteLog("INFO", fmt.Sprintf("remote insert into %s succeeded", table),
		core.LogWithSubmissionID(sub.ID),
		core.LogWithContext(map[string]any{"table": table}))
	return nil
}
