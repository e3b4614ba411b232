package formrelay

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/tb-digital/formrelay/core"
	"github.com/tb-digital/formrelay/domain"
)

// FilterAll is the sentinel value that disables the status or origin filter.
const FilterAll = "all"

// Filtered returns the customer-service view of the store. Session records are always
// excluded. The search term matches case-insensitively against the submitter name,
// email and company (an empty term matches everything); statusFilter and originFilter
// apply exact matches unless they are the "all" sentinel. Results are sorted newest
// first.
//
// A store read failure yields an empty view rather than an error, so the dashboard
// stays renderable when the local store is unavailable.
func (relay *Relay) Filtered(searchTerm string, statusFilter string, originFilter string) []*domain.Submission {
	subs, err := relay.Repo.GetSubmissions()
	if err != nil {
		relay.WriteLog("WARN", fmt.Sprintf("reading store for dashboard view: %v", err))
		return []*domain.Submission{}
	}

	term := strings.ToLower(strings.TrimSpace(searchTerm))

	filtered := make([]*domain.Submission, 0, len(subs))
	for _, sub := range subs {
		if sub.Kind == domain.KindSession {
			continue
		}

		if term != "" {
			haystack := strings.ToLower(strings.Join([]string{
				domain.Name(sub.Fields),
				domain.Email(sub.Fields),
				domain.Company(sub.Fields),
			}, "\n"))
			if !strings.Contains(haystack, term) {
				continue
			}
		}

		if statusFilter != FilterAll && string(effectiveStatus(sub)) != statusFilter {
			continue
		}

		if originFilter != FilterAll && string(sub.Kind) != originFilter {
			continue
		}

		filtered = append(filtered, sub)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
	})

	return filtered
}

// effectiveStatus returns the workflow status with the legacy-missing-status rule
// applied: records without a stored status count as "new".
func effectiveStatus(sub *domain.Submission) domain.Status {
	if sub.Status == "" {
		return domain.StatusNew
	}
	return sub.Status
}

// ServiceStats aggregates the customer-service roll-up over all non-session records.
// A store read failure yields zeroed stats, mirroring Filtered's resilience.
func (relay *Relay) ServiceStats() *domain.ServiceStats {
	stats := &domain.ServiceStats{
		ByOrigin: make(map[domain.FormKind]int),
	}

	subs, err := relay.Repo.GetSubmissions()
	if err != nil {
		relay.WriteLog("WARN", fmt.Sprintf("reading store for service stats: %v", err))
		return stats
	}

	for _, sub := range subs {
		if sub.Kind == domain.KindSession {
			continue
		}

		stats.Total++
		stats.ByOrigin[sub.Kind]++

		switch effectiveStatus(sub) {
		case domain.StatusNew:
			stats.New++
		case domain.StatusRead:
			stats.Read++
		case domain.StatusResponded:
			stats.Responded++
		case domain.StatusArchived:
			stats.Archived++
		}
	}

	return stats
}

// SyncReport summarizes one batch delivery of pending submissions.
type SyncReport struct {
	Attempted int `json:"attempted"` // Pending records for which a remote insert was attempted.
	Synced    int `json:"synced"`    // Records successfully delivered and marked.
	Failed    int `json:"failed"`    // Records whose remote insert failed; they remain pending.
}

// SyncAllPending attempts remote delivery for every pending submission. Session
// records are never synced and are skipped. Each record's attempt is independent:
// one failure does not abort the batch. The summary is returned and also passed to
// the OnSync callback when one is registered.
func (relay *Relay) SyncAllPending(ctx context.Context) (*SyncReport, error) {
	pending, err := relay.Repo.GetUnsynced()
	if err != nil {
		return nil, fmt.Errorf("reading pending submissions : %w", err)
	}

	report := &SyncReport{}
	for _, sub := range pending {
		if sub.Kind == domain.KindSession {
			continue
		}

		report.Attempted++
		if err := relay.remoteInsert(ctx, sub); err != nil {
			report.Failed++
			continue
		}
		report.Synced++
	}

	relay.WriteLog("INFO", fmt.Sprintf("batch sync finished: %d attempted, %d synced, %d failed",
		report.Attempted, report.Synced, report.Failed),
		core.LogWithContext(map[string]any{
			"attempted": report.Attempted,
			"synced":    report.Synced,
			"failed":    report.Failed,
		}))

	if relay.OnSync != nil {
		if err := relay.OnSync(*report); err != nil {
			relay.WriteLog("WARN", fmt.Sprintf("sync callback failed: %v", err))
		}
	}

	return report, nil
}
