package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tb-digital/formrelay/domain"
)

var _ domain.SubmissionRepository = (*Repository)(nil)

// dbSubmission represents a form submission as stored in the database.
// It differs from domain.Submission by using sql.Null* types for fields that might be
// absent (status for session records, synced_at while the record is still pending) and
// by flattening the per-kind field variant into a JSON column.
type dbSubmission struct {
	ID        string         `db:"id"`
	Kind      string         `db:"kind"`
	Fields    Fields         `db:"fields"`
	Status    sql.NullString `db:"status"`
	CreatedAt time.Time      `db:"created_at"`
	SyncedAt  sql.NullTime   `db:"synced_at"`
}

// dbResponse represents a customer-service reply as stored in the database.
type dbResponse struct {
	ID           uuid.UUID `db:"id"`
	SubmissionID string    `db:"submission_id"`
	Subject      string    `db:"subject"`
	Message      string    `db:"message"`
	SentTo       string    `db:"sent_to"`
	CreatedAt    time.Time `db:"created_at"`
}

// fromDomainSubmission converts a domain.Submission into a dbSubmission for database insertion.
// Session records carry no workflow status and are stored with a NULL status column.
func fromDomainSubmission(sub *domain.Submission) *dbSubmission {
	return &dbSubmission{
		ID:     sub.ID,
		Kind:   string(sub.Kind),
		Fields: Fields(sub.Fields.Values()),
		Status: sql.NullString{
			String: string(sub.Status),
			Valid:  sub.Status != "",
		},
		CreatedAt: sub.CreatedAt,
		SyncedAt: sql.NullTime{
			Valid: false,
		},
	}
}

// toDomainSubmission converts a dbSubmission into a domain.Submission,
// reconstructing the typed field variant from the stored JSON.
func toDomainSubmission(dbSub *dbSubmission) (*domain.Submission, error) {
	fields, err := domain.FieldsFromValues(domain.FormKind(dbSub.Kind), map[string]string(dbSub.Fields))
	if err != nil {
		return nil, fmt.Errorf("decoding fields for submission %s : %w", dbSub.ID, err)
	}

	sub := &domain.Submission{
		ID:        dbSub.ID,
		Kind:      domain.FormKind(dbSub.Kind),
		CreatedAt: dbSub.CreatedAt,
		Synced:    dbSub.SyncedAt.Valid,
		Fields:    fields,
	}

	if dbSub.Status.Valid {
		sub.Status = domain.Status(dbSub.Status.String)
	}

	return sub, nil
}

// toDomainResponse converts a dbResponse into a domain.Response.
func toDomainResponse(dbResp *dbResponse) domain.Response {
	return domain.Response{
		ID:           dbResp.ID,
		SubmissionID: dbResp.SubmissionID,
		CreatedAt:    dbResp.CreatedAt,
		Subject:      dbResp.Subject,
		Message:      dbResp.Message,
		SentTo:       dbResp.SentTo,
	}
}

// InsertSubmission persists a new domain.Submission. A failed insert means nothing was
// durably saved, which callers must treat as a hard failure of the whole submission.
func (repo *Repository) InsertSubmission(sub *domain.Submission) error {
	dbSub := fromDomainSubmission(sub)
	query := `INSERT INTO submission(id, kind, fields, status, created_at, synced_at)
			  VALUES(:id, :kind, :fields, :status, :created_at, :synced_at)`
	_, err := repo.dbConn.NamedExec(query, dbSub)
	if err != nil {
		return fmt.Errorf("inserting submission %s : %w", sub.ID, err)
	}
	return nil
}

// GetSubmission retrieves a single submission and its responses by ID.
// It returns domain.ErrSubmissionNotFound if no such record exists.
func (repo *Repository) GetSubmission(id string) (*domain.Submission, error) {
	var dbSub dbSubmission
	query := `SELECT id, kind, fields, status, created_at, synced_at
			  FROM submission
			  WHERE id = ?`

	err := repo.dbConn.Get(&dbSub, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrSubmissionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting submission with id %s : %w", id, err)
	}

	sub, err := toDomainSubmission(&dbSub)
	if err != nil {
		return nil, err
	}

	var dbResponses []*dbResponse
	responseQuery := `SELECT id, submission_id, subject, message, sent_to, created_at
					  FROM response
					  WHERE submission_id = ?
					  ORDER BY rowid ASC`

	err = repo.dbConn.Select(&dbResponses, responseQuery, id)
	if err != nil {
		return nil, fmt.Errorf("getting responses for submission %s : %w", id, err)
	}

	for _, dbResp := range dbResponses {
		sub.Responses = append(sub.Responses, toDomainResponse(dbResp))
	}
	return sub, nil
}

// selectSubmissions runs a submission query, attaches responses, and converts the rows
// to domain form. Rows whose kind is no longer understood are skipped rather than
// failing the whole read, so the dashboard stays usable over a partially corrupt store.
func (repo *Repository) selectSubmissions(query string, args ...any) ([]*domain.Submission, error) {
	var dbSubs []*dbSubmission
	err := repo.dbConn.Select(&dbSubs, query, args...)
	if err != nil {
		return nil, fmt.Errorf("selecting submissions : %w", err)
	}

	var dbResponses []*dbResponse
	responseQuery := `SELECT id, submission_id, subject, message, sent_to, created_at
					  FROM response
					  ORDER BY rowid ASC`
	err = repo.dbConn.Select(&dbResponses, responseQuery)
	if err != nil {
		return nil, fmt.Errorf("selecting responses : %w", err)
	}

	responsesByID := make(map[string][]domain.Response)
	for _, dbResp := range dbResponses {
		responsesByID[dbResp.SubmissionID] = append(responsesByID[dbResp.SubmissionID], toDomainResponse(dbResp))
	}

	subs := make([]*domain.Submission, 0, len(dbSubs))
	for _, dbSub := range dbSubs {
		sub, err := toDomainSubmission(dbSub)
		if err != nil {
			continue
		}
		sub.Responses = responsesByID[sub.ID]
		subs = append(subs, sub)
	}
	return subs, nil
}

// GetSubmissions returns all submissions in insertion order, responses attached.
func (repo *Repository) GetSubmissions() ([]*domain.Submission, error) {
	query := `SELECT id, kind, fields, status, created_at, synced_at
			  FROM submission
			  ORDER BY rowid ASC`
	return repo.selectSubmissions(query)
}

// GetSubmissionsByKind returns all submissions of one kind in insertion order.
func (repo *Repository) GetSubmissionsByKind(kind domain.FormKind) ([]*domain.Submission, error) {
	query := `SELECT id, kind, fields, status, created_at, synced_at
			  FROM submission
			  WHERE kind = ?
			  ORDER BY rowid ASC`
	return repo.selectSubmissions(query, string(kind))
}

// GetUnsynced returns all submissions whose remote insert has not yet succeeded.
func (repo *Repository) GetUnsynced() ([]*domain.Submission, error) {
	query := `SELECT id, kind, fields, status, created_at, synced_at
			  FROM submission
			  WHERE synced_at IS NULL
			  ORDER BY rowid ASC`
	return repo.selectSubmissions(query)
}

// MarkSynced records a confirmed remote insert for the submission. The guard on
// synced_at keeps the flag monotonic: marking twice, or marking an unknown ID,
// changes nothing.
func (repo *Repository) MarkSynced(id string) error {
	query := `UPDATE submission SET synced_at = ? WHERE id = ? AND synced_at IS NULL`

	_, err := repo.dbConn.Exec(query, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("marking submission %s as synced : %w", id, err)
	}
	return nil
}

// UpdateStatus sets the workflow status for a submission. Session records carry no
// status and are excluded; unknown IDs are a silent no-op.
func (repo *Repository) UpdateStatus(id string, status domain.Status) error {
	if !status.Valid() {
		return fmt.Errorf("invalid status %q for submission %s", status, id)
	}

	query := `UPDATE submission SET status = ? WHERE id = ? AND kind != 'session'`

	_, err := repo.dbConn.Exec(query, string(status), id)
	if err != nil {
		return fmt.Errorf("updating status for submission %s : %w", id, err)
	}
	return nil
}

// AppendResponse appends a customer-service reply to a submission and forces its status
// to "responded". Unknown IDs and session records are a silent no-op. The status change
// and the reply row are committed together.
func (repo *Repository) AppendResponse(id string, subject, message, sentTo string) error {
	responseID, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("generating response id : %w", err)
	}

	tx, err := repo.dbConn.Beginx()
	if err != nil {
		return fmt.Errorf("starting response transaction for %s : %w", id, err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(`UPDATE submission SET status = ? WHERE id = ? AND kind != 'session'`, string(domain.StatusResponded), id)
	if err != nil {
		return fmt.Errorf("forcing responded status for %s : %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected for %s : %w", id, err)
	}

	if rowsAffected == 0 {
		return nil
	}

	_, err = tx.Exec(`INSERT INTO response(id, submission_id, subject, message, sent_to, created_at)
					  VALUES (?, ?, ?, ?, ?, ?)`,
		responseID, id, subject, message, sentTo, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("inserting response for %s : %w", id, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing response for %s : %w", id, err)
	}
	return nil
}

// ClearSubmissions deletes the entire collection. Responses are removed through the
// foreign key cascade.
func (repo *Repository) ClearSubmissions() error {
	_, err := repo.dbConn.Exec(`DELETE FROM submission`)
	if err != nil {
		return fmt.Errorf("clearing submissions : %w", err)
	}
	return nil
}
