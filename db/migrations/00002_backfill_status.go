package migrations

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

func init() {
	goose.AddMigrationContext(upBackfillStatus, downBackfillStatus)
}

// Early builds wrote form submissions with an empty string status instead of NULL,
// which made the dashboard status filter miss them. Normalize: non-session records get
// 'new', session records get NULL.
func upBackfillStatus(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `UPDATE submission SET status = 'new' WHERE kind != 'session' AND (status IS NULL OR status = '')`)
	if err != nil {
		return fmt.Errorf("backfilling status for form submissions : %w", err)
	}

	_, err = tx.ExecContext(ctx, `UPDATE submission SET status = NULL WHERE kind = 'session'`)
	if err != nil {
		return fmt.Errorf("clearing status for session records : %w", err)
	}
	return nil
}

func downBackfillStatus(ctx context.Context, tx *sql.Tx) error {
	// The original mixed representation is not worth restoring; leave rows as-is.
	return nil
}
