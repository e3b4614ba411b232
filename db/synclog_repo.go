package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tb-digital/formrelay/domain"
)

var _ domain.SyncLogRepository = (*Repository)(nil)

// dbSyncLog represents a sync activity entry as stored in the database.
type dbSyncLog struct {
	ID           uuid.UUID      `db:"id"`            // Unique identifier for the log entry.
	Timestamp    time.Time      `db:"timestamp"`     // The time at which the log entry was created.
	Level        string         `db:"level"`         // The severity level of the log.
	Message      string         `db:"message"`       // The main content of the log message.
	Context      Metadata       `db:"context"`       // A map of additional key-value data for structured logging.
	SubmissionID sql.NullString `db:"submission_id"` // An optional ID of an associated submission.
}

// toDomainSyncLog converts a dbSyncLog to a domain.SyncLog.
func toDomainSyncLog(dbLog *dbSyncLog) *domain.SyncLog {
	log := &domain.SyncLog{
		ID:        dbLog.ID,
		Timestamp: dbLog.Timestamp,
		Level:     dbLog.Level,
		Message:   dbLog.Message,
		Context:   map[string]any(dbLog.Context),
	}

	if dbLog.SubmissionID.Valid {
		id := dbLog.SubmissionID.String
		log.SubmissionID = &id
	}

	return log
}

// fromDomainSyncLog converts a domain.SyncLog to a dbSyncLog.
func fromDomainSyncLog(log *domain.SyncLog) *dbSyncLog {
	dbLog := &dbSyncLog{
		ID:        log.ID,
		Timestamp: log.Timestamp,
		Level:     log.Level,
		Message:   log.Message,
		Context:   Metadata(log.Context),
	}

	if log.SubmissionID != nil {
		dbLog.SubmissionID = sql.NullString{String: *log.SubmissionID, Valid: true}
	}

	return dbLog
}

// InsertSyncLog saves a new sync activity entry to the database.
func (repo *Repository) InsertSyncLog(log *domain.SyncLog) error {
	dbLog := fromDomainSyncLog(log)
	query := `INSERT INTO sync_log (id, level, timestamp, message, context, submission_id)
	          VALUES (:id, :level, :timestamp, :message, :context, :submission_id)`

	_, err := repo.dbConn.NamedExec(query, dbLog)
	if err != nil {
		return fmt.Errorf("inserting sync log %s: %w", log.ID, err)
	}

	return err
}

// GetSyncLogs retrieves all sync activity entries from the database.
func (repo *Repository) GetSyncLogs() ([]*domain.SyncLog, error) {
	var dbLogs []*dbSyncLog
	query := `SELECT * FROM sync_log`

	err := repo.dbConn.Select(&dbLogs, query)
	if err != nil {
		return nil, fmt.Errorf("fetching all sync logs: %w", err)
	}

	domainLogs := make([]*domain.SyncLog, len(dbLogs))
	for i, dbLog := range dbLogs {
		domainLogs[i] = toDomainSyncLog(dbLog)
	}

	return domainLogs, nil
}
