package category

import (
	"testing"

	"medcast/internal/models"
)

func viewFixture(t *testing.T) *Coordinator {
	t.Helper()
	inactive := makeCategory("resp", "Respiratory", nil, 2)
	inactive.IsActive = false
	return loadedCoordinator(t, newFakeStore(
		makeCategory("card", "Cardiology", nil, 1),
		makeCategory("sub1", "Arrhythmia", ptr("card"), 1),
		makeCategory("sub2", "Heart Failure", ptr("card"), 2),
		inactive,
	))
}

func TestCoordinatorOptions(t *testing.T) {
	t.Run("all_active_in_tree_order", func(t *testing.T) {
		c := viewFixture(t)
		opts := c.Options(nil)
		want := []string{"card", "sub1", "sub2"}
		if len(opts) != len(want) {
			t.Fatalf("expected %d options, got %d", len(want), len(opts))
		}
		for i, id := range want {
			if opts[i].ID != id {
				t.Errorf("option %d = %s, want %s", i, opts[i].ID, id)
			}
		}
	})

	t.Run("filtered_by_level", func(t *testing.T) {
		c := viewFixture(t)
		level := models.LevelPrimary
		opts := c.Options(&level)
		if len(opts) != 1 || opts[0].ID != "card" {
			t.Errorf("expected only the active primary, got %v", opts)
		}
	})
}

func TestCoordinatorSubcategoryOptions(t *testing.T) {
	c := viewFixture(t)

	opts := c.SubcategoryOptions("card")
	if len(opts) != 2 || opts[0].ID != "sub1" || opts[1].ID != "sub2" {
		t.Errorf("unexpected subcategory options: %v", opts)
	}

	if opts := c.SubcategoryOptions("resp"); len(opts) != 0 {
		t.Errorf("expected no options for a childless parent, got %v", opts)
	}
}

func TestCoordinatorPath(t *testing.T) {
	c := viewFixture(t)

	if got := c.Path("card", ""); got != "Cardiology" {
		t.Errorf("Path(card) = %q", got)
	}
	if got := c.Path("card", "sub1"); got != "Cardiology / Arrhythmia" {
		t.Errorf("Path(card, sub1) = %q", got)
	}
	if got := c.Path("missing", ""); got != "" {
		t.Errorf("expected empty path for unknown id, got %q", got)
	}
	// Subcategory not belonging to the named primary yields no path.
	if got := c.Path("resp", "sub1"); got != "" {
		t.Errorf("expected empty path for mismatched pair, got %q", got)
	}
}

func TestCoordinatorStatsView(t *testing.T) {
	c := viewFixture(t)
	s := c.Stats()
	if s.Total != 4 || s.ActiveCount != 3 || s.PrimaryCount != 2 || s.SecondaryCount != 2 {
		t.Errorf("unexpected stats: %+v", s)
	}
}

func TestCategoriesReturnsCopy(t *testing.T) {
	c := loadedCoordinator(t, newFakeStore(makeCategory("card", "Cardiology", nil, 1)))

	snapshot := c.Categories()
	snapshot[0].Name = "Mutated"

	if got, _ := c.Get("card"); got.Name != "Cardiology" {
		t.Error("expected snapshot copy, internal state was mutated")
	}
}
