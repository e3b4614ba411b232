package formrelay

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/tb-digital/formrelay/db"
	"github.com/tb-digital/formrelay/domain"
)

// fakeRemote is an in-memory domain.RemoteStore that records every insert and can be
// told to fail.
type fakeRemote struct {
	mu      sync.Mutex
	fail    bool
	inserts []fakeInsert
}

type fakeInsert struct {
	table string
	row   map[string]any
}

func (f *fakeRemote) Insert(ctx context.Context, table string, row map[string]any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return &domain.RemoteError{Table: table, Detail: "remote unavailable"}
	}
	f.inserts = append(f.inserts, fakeInsert{table: table, row: row})
	return nil
}

func (f *fakeRemote) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.inserts)
}

func setupTestRelay(t *testing.T) (*Relay, *fakeRemote, func()) {
	t.Helper()

	tempFile, err := os.CreateTemp(t.TempDir(), "test_*.db")
	if err != nil {
		t.Fatalf("os.CreateTemp() failed: %v", err)
	}
	tempFile.Close()

	dbConn, err := db.New(tempFile.Name())
	if err != nil {
		t.Fatalf("db.New() failed: %v", err)
	}

	remote := &fakeRemote{}
	relay, err := New(WithRepo(db.NewStoreRepo(dbConn)), WithRemote(remote))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	teardown := func() {
		relay.Close()
		os.Remove(tempFile.Name())
	}

	return relay, remote, teardown
}

func validContact() domain.ContactFields {
	return domain.ContactFields{
		Name:     "Ana",
		Email:    "ana@x.com",
		Phone:    "1",
		Company:  "Acme",
		Subject:  "Hi",
		Message:  "Hello",
		Interest: "x",
	}
}

func TestRelay_Submit(t *testing.T) {
	t.Run("should store then deliver a valid submission", func(t *testing.T) {
		relay, remote, teardown := setupTestRelay(t)
		defer teardown()

		result, err := relay.Submit(context.Background(), validContact())
		if err != nil {
			t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
		}

		if !result.Synced {
			t.Fatalf("\nwanted:\nsynced\ngot:\npending")
		}

		if remote.count() != 1 {
			t.Fatalf("\nwanted:\n1\ngot:\n%d", remote.count())
		}

		if remote.inserts[0].table != "contacts" {
			t.Fatalf("\nwanted:\ncontacts\ngot:\n%s", remote.inserts[0].table)
		}

		stored, err := relay.Repo.GetSubmission(result.ID)
		if err != nil {
			t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
		}

		if !stored.Synced {
			t.Fatalf("\nwanted:\nsynced\ngot:\npending")
		}
	})

	t.Run("should keep the local record when the remote insert fails", func(t *testing.T) {
		relay, remote, teardown := setupTestRelay(t)
		defer teardown()

		remote.fail = true

		result, err := relay.Submit(context.Background(), validContact())
		if err != nil {
			t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
		}

		if result.Synced {
			t.Fatalf("\nwanted:\npending\ngot:\nsynced")
		}

		var remoteErr *domain.RemoteError
		if !errors.As(result.RemoteErr, &remoteErr) {
			t.Fatalf("\nwanted:\nRemoteError\ngot:\n%v", result.RemoteErr)
		}

		stored, err := relay.Repo.GetSubmission(result.ID)
		if err != nil {
			t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
		}

		if stored.Synced {
			t.Fatalf("\nwanted:\npending\ngot:\nsynced")
		}

		if stored.Status != domain.StatusNew {
			t.Fatalf("\nwanted:\n%s\ngot:\n%s", domain.StatusNew, stored.Status)
		}
	})

	t.Run("should reject an invalid payload without touching the store", func(t *testing.T) {
		relay, remote, teardown := setupTestRelay(t)
		defer teardown()

		_, err := relay.Submit(context.Background(), domain.LeadFields{
			Name:  "Bob",
			Email: "bob@x.com",
			Phone: "2",
			// message missing
		})

		var validationErr *domain.ValidationError
		if !errors.As(err, &validationErr) {
			t.Fatalf("\nwanted:\nValidationError\ngot:\n%v", err)
		}

		if validationErr.Field != "message" {
			t.Fatalf("\nwanted:\nmessage\ngot:\n%s", validationErr.Field)
		}

		subs, err := relay.Repo.GetSubmissions()
		if err != nil {
			t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
		}

		if len(subs) != 0 {
			t.Fatalf("\nwanted:\n0\ngot:\n%d", len(subs))
		}

		if remote.count() != 0 {
			t.Fatalf("\nwanted:\n0\ngot:\n%d", remote.count())
		}
	})

	t.Run("should store session records locally and never deliver them", func(t *testing.T) {
		relay, remote, teardown := setupTestRelay(t)
		defer teardown()

		result, err := relay.Submit(context.Background(), domain.SessionFields{
			SessionID: "sess-1",
			Page:      "/pt/contato",
		})
		if err != nil {
			t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
		}

		if result.Synced {
			t.Fatalf("\nwanted:\npending\ngot:\nsynced")
		}

		if remote.count() != 0 {
			t.Fatalf("\nwanted:\n0\ngot:\n%d", remote.count())
		}
	})

	t.Run("should invoke the submission callback after the local write", func(t *testing.T) {
		relay, _, teardown := setupTestRelay(t)
		defer teardown()

		var seen []string
		relay.OnSubmission = func(sub domain.Submission) error {
			seen = append(seen, sub.ID)
			return nil
		}

		result, err := relay.Submit(context.Background(), validContact())
		if err != nil {
			t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
		}

		if len(seen) != 1 || seen[0] != result.ID {
			t.Fatalf("\nwanted:\n[%s]\ngot:\n%v", result.ID, seen)
		}
	})
}

func TestRelay_SyncAllPending(t *testing.T) {
	t.Run("should deliver pending records and report the summary", func(t *testing.T) {
		relay, remote, teardown := setupTestRelay(t)
		defer teardown()

		remote.fail = true
		first, _ := relay.Submit(context.Background(), validContact())
		second, _ := relay.Submit(context.Background(), validContact())
		relay.Submit(context.Background(), domain.SessionFields{SessionID: "s", Page: "/"})

		remote.fail = false
		report, err := relay.SyncAllPending(context.Background())
		if err != nil {
			t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
		}

		if report.Attempted != 2 || report.Synced != 2 || report.Failed != 0 {
			t.Fatalf("\nwanted:\n2/2/0\ngot:\n%d/%d/%d", report.Attempted, report.Synced, report.Failed)
		}

		for _, id := range []string{first.ID, second.ID} {
			stored, err := relay.Repo.GetSubmission(id)
			if err != nil {
				t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
			}
			if !stored.Synced {
				t.Fatalf("\nwanted:\nsynced\ngot:\npending for %s", id)
			}
		}
	})

	t.Run("should continue past individual failures", func(t *testing.T) {
		relay, remote, teardown := setupTestRelay(t)
		defer teardown()

		remote.fail = true
		relay.Submit(context.Background(), validContact())
		relay.Submit(context.Background(), validContact())

		report, err := relay.SyncAllPending(context.Background())
		if err != nil {
			t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
		}

		if report.Attempted != 2 || report.Synced != 0 || report.Failed != 2 {
			t.Fatalf("\nwanted:\n2/0/2\ngot:\n%d/%d/%d", report.Attempted, report.Synced, report.Failed)
		}
	})

	t.Run("should not re-deliver already synced records", func(t *testing.T) {
		relay, remote, teardown := setupTestRelay(t)
		defer teardown()

		relay.Submit(context.Background(), validContact())

		report, err := relay.SyncAllPending(context.Background())
		if err != nil {
			t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
		}

		if report.Attempted != 0 {
			t.Fatalf("\nwanted:\n0\ngot:\n%d", report.Attempted)
		}

		if remote.count() != 1 {
			t.Fatalf("\nwanted:\n1\ngot:\n%d", remote.count())
		}
	})

	t.Run("should invoke the sync callback with the report", func(t *testing.T) {
		relay, _, teardown := setupTestRelay(t)
		defer teardown()

		var reports []SyncReport
		relay.OnSync = func(report SyncReport) error {
			reports = append(reports, report)
			return nil
		}

		if _, err := relay.SyncAllPending(context.Background()); err != nil {
			t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
		}

		if len(reports) != 1 {
			t.Fatalf("\nwanted:\n1\ngot:\n%d", len(reports))
		}
	})
}

// fakeClock returns a Now func that advances one second per call, so records get
// distinct timestamps even within one test run.
func fakeClock(start time.Time) func() time.Time {
	var mu sync.Mutex
	current := start
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		current = current.Add(time.Second)
		return current
	}
}
