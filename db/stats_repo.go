package db

import (
	"fmt"

	"github.com/tb-digital/formrelay/domain"
)

var _ domain.StatsRepository = (*Repository)(nil)

// CountStats returns the store-level roll-up: total rows, the synced/pending split and
// a per-kind breakdown. Total is always Synced + Pending.
func (repo *Repository) CountStats() (*domain.StoreStats, error) {
	stats := &domain.StoreStats{
		ByKind: make(map[domain.FormKind]int),
	}

	query := `SELECT COUNT(*) AS total,
			  COUNT(synced_at) AS synced
			  FROM submission`

	row := struct {
		Total  int `db:"total"`
		Synced int `db:"synced"`
	}{}

	err := repo.dbConn.Get(&row, query)
	if err != nil {
		return nil, fmt.Errorf("getting submission counts: %w", err)
	}

	stats.Total = row.Total
	stats.Synced = row.Synced
	stats.Pending = row.Total - row.Synced

	kindQuery := `SELECT kind, COUNT(*) AS count FROM submission GROUP BY kind`

	var kindRows []struct {
		Kind  string `db:"kind"`
		Count int    `db:"count"`
	}

	err = repo.dbConn.Select(&kindRows, kindQuery)
	if err != nil {
		return nil, fmt.Errorf("getting per-kind counts: %w", err)
	}

	for _, kindRow := range kindRows {
		stats.ByKind[domain.FormKind(kindRow.Kind)] = kindRow.Count
	}

	return stats, nil
}

// CountResponses returns the total number of customer-service replies recorded.
func (repo *Repository) CountResponses() (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM response`

	err := repo.dbConn.Get(&count, query)
	if err != nil {
		return 0, fmt.Errorf("getting response count: %w", err)
	}

	return count, nil
}
