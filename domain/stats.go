package domain

// StoreStats is the aggregate roll-up over the entire local store.
// Total is always the sum of Synced and Pending.
type StoreStats struct {
	Total   int              `json:"total"`
	Synced  int              `json:"synced"`
	Pending int              `json:"pending"`
	ByKind  map[FormKind]int `json:"byKind"`
}

// ServiceStats is the customer-service roll-up over all non-session submissions.
// Records without a stored status count as "new".
type ServiceStats struct {
	Total     int              `json:"total"`
	New       int              `json:"new"`
	Read      int              `json:"read"`
	Responded int              `json:"responded"`
	Archived  int              `json:"archived"`
	ByOrigin  map[FormKind]int `json:"byOrigin"`
}

// StatsRepository defines the interface for retrieving aggregate statistics about the
// local store.
type StatsRepository interface {
	// CountStats returns the store-level roll-up: totals, sync split and per-kind counts.
	CountStats() (*StoreStats, error)
	// CountResponses returns the total number of customer-service replies recorded.
	CountResponses() (int, error)
}
