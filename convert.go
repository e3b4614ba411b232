package formrelay

import (
	"time"

	"github.com/tb-digital/formrelay/domain"
)

// ToRemoteRow converts a stamped submission to the remote schema. Local bookkeeping
// (ID, kind, sync flag, workflow status, responses) is stripped; the creation time is
// carried as created_at and the local ID as client_ref so the backend can deduplicate
// retried inserts. For briefing records the projectType field is renamed to
// project_type to match the remote naming convention.
//
// The conversion is pure and total: it has no failure mode, and any field not
// explicitly handled passes through unchanged.
func ToRemoteRow(sub *domain.Submission) map[string]any {
	values := sub.Fields.Values()

	row := make(map[string]any, len(values)+2)
	for key, value := range values {
		row[key] = value
	}

	if sub.Kind == domain.KindBriefing {
		row["project_type"] = row["projectType"]
		delete(row, "projectType")
	}

	row["created_at"] = sub.CreatedAt.UTC().Format(time.RFC3339)
	row["client_ref"] = sub.ID

	return row
}
