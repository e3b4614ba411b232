package formrelay

import (
	"context"
	"fmt"

	"github.com/tb-digital/formrelay/domain"
)

// SubmitResult reports the outcome of one submission. The local write has always
// succeeded by the time a result is produced; Synced tells the caller whether the
// record also reached the remote backend, and RemoteErr carries the remote failure
// when it did not. A pending record is safe to leave for a later batch sync.
type SubmitResult struct {
	ID        string
	Synced    bool
	RemoteErr error
}

// Submit runs the store-then-send protocol for one form submission:
//
//  1. Validate the required fields for the payload's kind. On failure nothing is
//     written and nothing is sent; the returned error is a *domain.ValidationError.
//  2. Write the stamped record to the local store. On failure the submission has
//     failed entirely: the user's data was not saved anywhere.
//  3. Convert the record to the remote schema and insert it into the kind's table.
//     On failure the record stays pending locally and Submit still succeeds,
//     reporting the remote error in the result.
//
// The local write strictly precedes the network attempt, so no user-submitted data is
// ever lost to a network or backend failure. Session records are written locally and
// never delivered remotely.
func (relay *Relay) Submit(ctx context.Context, fields domain.FormFields) (*SubmitResult, error) {
	if err := fields.Validate(); err != nil {
		return nil, err
	}

	sub := &domain.Submission{
		ID:        domain.NewSubmissionID(relay.Now()),
		Kind:      fields.FormKind(),
		CreatedAt: relay.Now().UTC(),
		Fields:    fields,
	}
	if sub.Kind != domain.KindSession {
		sub.Status = domain.StatusNew
	}

	if err := relay.Repo.InsertSubmission(sub); err != nil {
		return nil, fmt.Errorf("saving submission locally : %w", err)
	}

	if relay.OnSubmission != nil {
		if err := relay.OnSubmission(*sub); err != nil {
			relay.WriteLog("WARN", fmt.Sprintf("submission callback failed: %v", err))
		}
	}

	if sub.Kind == domain.KindSession {
		return &SubmitResult{ID: sub.ID}, nil
	}

	if err := relay.remoteInsert(ctx, sub); err != nil {
		return &SubmitResult{ID: sub.ID, RemoteErr: err}, nil
	}

	return &SubmitResult{ID: sub.ID, Synced: true}, nil
}
