package domain

// SettingsRepository defines the interface for managing application-level settings that
// live alongside the submission collection. It backs the reserved settings storage area
// described in the external interface contract.
type SettingsRepository interface {
	// GetFilters retrieves the list of configured dashboard origin filters.
	// These control which form kinds the dashboard surfaces by default.
	GetFilters() ([]string, error)

	// SetFilters updates the list of dashboard origin filters.
	SetFilters(filters []string) error
}
