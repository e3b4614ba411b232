package db

import (
	"os"
	"testing"
	"time"

	"github.com/tb-digital/formrelay/domain"
)

func setupTestDB(t *testing.T) (*Repository, func()) {
	t.Helper()

	tempFile, err := os.CreateTemp(t.TempDir(), "test_*.db")
	if err != nil {
		t.Fatalf("os.CreateTemp() failed: %v", err)
	}
	tempFile.Close()

	dbConn, err := New(tempFile.Name())
	if err != nil {
		t.Fatalf("db.New() failed: %v", err)
	}

	repo := NewStoreRepo(dbConn)

	teardown := func() {
		repo.Close()
		os.Remove(tempFile.Name())
	}

	return repo, teardown
}

// testSubmission inserts a contact submission with the given name and returns its ID.
func testSubmission(t *testing.T, repo *Repository, name string) string {
	t.Helper()

	sub := &domain.Submission{
		ID:        domain.NewSubmissionID(time.Now()),
		Kind:      domain.KindContact,
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
		Status:    domain.StatusNew,
		Fields: domain.ContactFields{
			Name:     name,
			Email:    "ana@example.com",
			Phone:    "1",
			Company:  "Acme",
			Subject:  "Hi",
			Message:  "Hello",
			Interest: "web",
		},
	}

	if err := repo.InsertSubmission(sub); err != nil {
		t.Fatalf("inserting submission: %v", err)
	}
	return sub.ID
}

// testSessionSubmission inserts a session record and returns its ID.
func testSessionSubmission(t *testing.T, repo *Repository) string {
	t.Helper()

	sub := &domain.Submission{
		ID:        domain.NewSubmissionID(time.Now()),
		Kind:      domain.KindSession,
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
		Fields: domain.SessionFields{
			SessionID: "sess-1",
			Page:      "/en/services",
			Locale:    "en",
		},
	}

	if err := repo.InsertSubmission(sub); err != nil {
		t.Fatalf("inserting session submission: %v", err)
	}
	return sub.ID
}

func TestNew(t *testing.T) {
	t.Run("should apply migrations on a fresh database", func(t *testing.T) {
		repo, teardown := setupTestDB(t)
		defer teardown()

		subs, err := repo.GetSubmissions()
		if err != nil {
			t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
		}

		if len(subs) != 0 {
			t.Fatalf("\nwanted:\n0\ngot:\n%d", len(subs))
		}
	})
}
