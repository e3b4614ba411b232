package formrelay

import (
	"context"
	"testing"
	"time"

	"github.com/tb-digital/formrelay/domain"
)

func submitNamed(t *testing.T, relay *Relay, name, email, company string) string {
	t.Helper()

	result, err := relay.Submit(context.Background(), domain.ContactFields{
		Name:    name,
		Email:   email,
		Phone:   "1",
		Company: company,
		Subject: "Hi",
		Message: "Hello",
	})
	if err != nil {
		t.Fatalf("Submit() failed: %v", err)
	}

	return result.ID
}

func TestRelay_Filtered(t *testing.T) {
	t.Run("should return newest submissions first", func(t *testing.T) {
		relay, _, teardown := setupTestRelay(t)
		defer teardown()

		relay.Now = fakeClock(time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))

		submitNamed(t, relay, "First", "first@x.com", "")
		submitNamed(t, relay, "Second", "second@x.com", "")
		submitNamed(t, relay, "Third", "third@x.com", "")

		got := relay.Filtered("", FilterAll, FilterAll)
		if len(got) != 3 {
			t.Fatalf("\nwanted:\n3\ngot:\n%d", len(got))
		}

		wanted := []string{"Third", "Second", "First"}
		for i, sub := range got {
			if domain.Name(sub.Fields) != wanted[i] {
				t.Fatalf("\nwanted:\n%v\ngot:\n%s at %d", wanted, domain.Name(sub.Fields), i)
			}
		}
	})

	t.Run("should match search terms against name email and company", func(t *testing.T) {
		relay, _, teardown := setupTestRelay(t)
		defer teardown()

		submitNamed(t, relay, "Alice", "alice@acme.com", "Acme Corp")
		submitNamed(t, relay, "Bob", "bob@other.com", "Other Ltd")

		for _, term := range []string{"alice", "ACME", "acme corp"} {
			got := relay.Filtered(term, FilterAll, FilterAll)
			if len(got) != 1 {
				t.Fatalf("\nwanted:\n1 for %q\ngot:\n%d", term, len(got))
			}
			if domain.Name(got[0].Fields) != "Alice" {
				t.Fatalf("\nwanted:\nAlice\ngot:\n%s", domain.Name(got[0].Fields))
			}
		}

		if got := relay.Filtered("zzz", FilterAll, FilterAll); len(got) != 0 {
			t.Fatalf("\nwanted:\n0\ngot:\n%d", len(got))
		}
	})

	t.Run("should filter by status and treat missing status as new", func(t *testing.T) {
		relay, _, teardown := setupTestRelay(t)
		defer teardown()

		id := submitNamed(t, relay, "Alice", "alice@x.com", "")
		submitNamed(t, relay, "Bob", "bob@x.com", "")

		if err := relay.Repo.UpdateStatus(id, domain.StatusRead); err != nil {
			t.Fatalf("UpdateStatus() failed: %v", err)
		}

		// a record stored without a status counts as new
		if err := relay.Repo.InsertSubmission(&domain.Submission{
			ID:        domain.NewSubmissionID(time.Now()),
			Kind:      domain.KindContact,
			CreatedAt: time.Now().UTC(),
			Fields:    domain.ContactFields{Name: "Carol", Email: "carol@x.com", Subject: "s", Message: "m"},
		}); err != nil {
			t.Fatalf("InsertSubmission() failed: %v", err)
		}

		if got := relay.Filtered("", string(domain.StatusRead), FilterAll); len(got) != 1 {
			t.Fatalf("\nwanted:\n1\ngot:\n%d", len(got))
		}

		if got := relay.Filtered("", string(domain.StatusNew), FilterAll); len(got) != 2 {
			t.Fatalf("\nwanted:\n2\ngot:\n%d", len(got))
		}
	})

	t.Run("should filter by origin and exclude session records", func(t *testing.T) {
		relay, _, teardown := setupTestRelay(t)
		defer teardown()

		submitNamed(t, relay, "Alice", "alice@x.com", "")
		relay.Submit(context.Background(), domain.LeadFields{
			Name: "Bob", Email: "bob@x.com", Phone: "2", Message: "hi",
		})
		relay.Submit(context.Background(), domain.SessionFields{SessionID: "s", Page: "/"})

		if got := relay.Filtered("", FilterAll, string(domain.KindLead)); len(got) != 1 {
			t.Fatalf("\nwanted:\n1\ngot:\n%d", len(got))
		}

		got := relay.Filtered("", FilterAll, FilterAll)
		if len(got) != 2 {
			t.Fatalf("\nwanted:\n2\ngot:\n%d", len(got))
		}
		for _, sub := range got {
			if sub.Kind == domain.KindSession {
				t.Fatalf("\nwanted:\nno session records\ngot:\n%s", sub.ID)
			}
		}
	})

	t.Run("should combine search status and origin filters", func(t *testing.T) {
		relay, _, teardown := setupTestRelay(t)
		defer teardown()

		id := submitNamed(t, relay, "Alice", "alice@x.com", "Acme")
		submitNamed(t, relay, "Alice", "alice@x.com", "Acme")

		if err := relay.Repo.UpdateStatus(id, domain.StatusArchived); err != nil {
			t.Fatalf("UpdateStatus() failed: %v", err)
		}

		got := relay.Filtered("acme", string(domain.StatusArchived), string(domain.KindContact))
		if len(got) != 1 {
			t.Fatalf("\nwanted:\n1\ngot:\n%d", len(got))
		}
		if got[0].ID != id {
			t.Fatalf("\nwanted:\n%s\ngot:\n%s", id, got[0].ID)
		}
	})
}

func TestRelay_ServiceStats(t *testing.T) {
	t.Run("should count submissions by status and origin", func(t *testing.T) {
		relay, _, teardown := setupTestRelay(t)
		defer teardown()

		first := submitNamed(t, relay, "A", "a@x.com", "")
		submitNamed(t, relay, "B", "b@x.com", "")
		relay.Submit(context.Background(), domain.LeadFields{
			Name: "C", Email: "c@x.com", Phone: "3", Message: "hi",
		})
		relay.Submit(context.Background(), domain.SessionFields{SessionID: "s", Page: "/"})

		if err := relay.Repo.UpdateStatus(first, domain.StatusResponded); err != nil {
			t.Fatalf("UpdateStatus() failed: %v", err)
		}

		stats := relay.ServiceStats()

		if stats.Total != 3 {
			t.Fatalf("\nwanted:\n3\ngot:\n%d", stats.Total)
		}

		if stats.New != 2 || stats.Responded != 1 || stats.Read != 0 || stats.Archived != 0 {
			t.Fatalf("\nwanted:\n2 new 1 responded\ngot:\n%+v", stats)
		}

		if stats.ByOrigin[domain.KindContact] != 2 || stats.ByOrigin[domain.KindLead] != 1 {
			t.Fatalf("\nwanted:\n2 contact 1 lead\ngot:\n%v", stats.ByOrigin)
		}
	})

	t.Run("should return zeroed stats for an empty store", func(t *testing.T) {
		relay, _, teardown := setupTestRelay(t)
		defer teardown()

		stats := relay.ServiceStats()
		if stats.Total != 0 {
			t.Fatalf("\nwanted:\n0\ngot:\n%d", stats.Total)
		}
	})
}
