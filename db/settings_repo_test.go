package db

import (
	"testing"
)

func TestSettingsRepo_Filters(t *testing.T) {
	t.Run("should return an empty list on a fresh store", func(t *testing.T) {
		repo, teardown := setupTestDB(t)
		defer teardown()

		filters, err := repo.GetFilters()
		if err != nil {
			t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
		}

		if len(filters) != 0 {
			t.Fatalf("\nwanted:\n0\ngot:\n%d", len(filters))
		}
	})

	t.Run("should round-trip configured filters", func(t *testing.T) {
		repo, teardown := setupTestDB(t)
		defer teardown()

		want := []string{"lead", "briefing"}
		if err := repo.SetFilters(want); err != nil {
			t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
		}

		got, err := repo.GetFilters()
		if err != nil {
			t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
		}

		if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
			t.Fatalf("\nwanted:\n%v\ngot:\n%v", want, got)
		}
	})
}
