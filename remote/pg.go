package remote

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tb-digital/formrelay/domain"
)

var _ domain.RemoteStore = (*PG)(nil)

// PG delivers rows directly to the remote Postgres database through a pgx pool.
// Inserts are keyed on the client_ref column with ON CONFLICT DO NOTHING so that a
// retried delivery whose first attempt actually landed cannot create a duplicate row.
type PG struct {
	pool *pgxpool.Pool
}

// NewPG connects to the remote database using the given connection string.
func NewPG(connString string) (*PG, error) {
	pool, err := pgxpool.New(context.Background(), connString)
	if err != nil {
		return nil, fmt.Errorf("creating remote pool : %w", err)
	}
	return &PG{pool: pool}, nil
}

// Close releases the connection pool.
func (pg *PG) Close() {
	pg.pool.Close()
}

// validIdentifier reports whether s is safe to interpolate as a SQL identifier.
// Table and column names come from the domain's fixed kind-to-table mapping and the
// converted row keys, but the check keeps a misconfigured caller from reaching the
// database with anything else.
func validIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') && r != '_' {
			return false
		}
	}
	return true
}

// Insert delivers one row to the named table. Failures are reported as
// *domain.RemoteError; the caller's local copy stays pending.
func (pg *PG) Insert(ctx context.Context, table string, row map[string]any) error {
	if !validIdentifier(table) {
		return &domain.RemoteError{Table: table, Err: fmt.Errorf("invalid table name %q", table)}
	}

	columns := make([]string, 0, len(row))
	for column := range row {
		if !validIdentifier(column) {
			return &domain.RemoteError{Table: table, Err: fmt.Errorf("invalid column name %q", column)}
		}
		columns = append(columns, column)
	}
	sort.Strings(columns)

	placeholders := make([]string, len(columns))
	values := make([]any, len(columns))
	for i, column := range columns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		values[i] = row[column]
	}

	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s) ON CONFLICT (client_ref) DO NOTHING`,
		table,
		strings.Join(columns, ", "),
		strings.Join(placeholders, ", "))

	_, err := pg.pool.Exec(ctx, query, values...)
	if err != nil {
		return &domain.RemoteError{Table: table, Err: err}
	}
	return nil
}
