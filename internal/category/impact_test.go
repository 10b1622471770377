package category

import (
	"testing"

	"medcast/internal/models"
)

func TestAnalyzeDelete(t *testing.T) {
	t.Run("safe_when_no_children_and_no_audio", func(t *testing.T) {
		target := makeCategory("neuro", "Neurology", nil, 3)
		all := []models.Category{
			makeCategory("card", "Cardiology", nil, 1),
			target,
		}

		impact := AnalyzeDelete([]models.Category{target}, all)
		if !impact.CanSafeDelete {
			t.Errorf("expected safe delete, got %+v", impact)
		}
		if impact.HasChildren || impact.ChildrenCount != 0 || impact.HasAudios || impact.AudioCount != 0 {
			t.Errorf("expected empty impact, got %+v", impact)
		}
	})

	t.Run("children_block_safe_delete", func(t *testing.T) {
		parent := makeCategory("card", "Cardiology", nil, 1)
		all := []models.Category{
			parent,
			makeCategory("sub1", "Arrhythmia", ptr("card"), 1),
			makeCategory("sub2", "Heart Failure", ptr("card"), 2),
			makeCategory("resp", "Respiratory", nil, 2),
		}

		impact := AnalyzeDelete([]models.Category{parent}, all)
		if impact.CanSafeDelete {
			t.Error("expected unsafe delete")
		}
		if !impact.HasChildren || impact.ChildrenCount != 2 {
			t.Errorf("expected 2 affected children, got %d", impact.ChildrenCount)
		}
		if len(impact.AffectedCategories) != 2 {
			t.Errorf("expected 2 affected categories, got %d", len(impact.AffectedCategories))
		}
	})

	t.Run("audio_blocks_safe_delete_and_sums_across_targets", func(t *testing.T) {
		a := makeCategory("a", "A", nil, 1)
		a.AudioCount = 3
		b := makeCategory("b", "B", nil, 2)
		b.AudioCount = 4
		all := []models.Category{a, b}

		impact := AnalyzeDelete([]models.Category{a, b}, all)
		if impact.CanSafeDelete {
			t.Error("expected unsafe delete")
		}
		if !impact.HasAudios || impact.AudioCount != 7 {
			t.Errorf("expected audio count 7, got %d", impact.AudioCount)
		}
	})

	t.Run("descendant_audio_not_counted", func(t *testing.T) {
		parent := makeCategory("card", "Cardiology", nil, 1)
		child := makeCategory("sub1", "Arrhythmia", ptr("card"), 1)
		child.AudioCount = 5
		all := []models.Category{parent, child}

		impact := AnalyzeDelete([]models.Category{parent}, all)
		if impact.HasAudios || impact.AudioCount != 0 {
			t.Errorf("audio of descendants must not count, got %d", impact.AudioCount)
		}
		if !impact.HasChildren {
			t.Error("expected HasChildren")
		}
	})

	t.Run("affected_deduplicated_across_targets", func(t *testing.T) {
		a := makeCategory("a", "A", nil, 1)
		child := makeCategory("sub", "Sub", ptr("a"), 1)
		all := []models.Category{a, child}

		impact := AnalyzeDelete([]models.Category{a, a}, all)
		if impact.ChildrenCount != 1 || len(impact.AffectedCategories) != 1 {
			t.Errorf("expected 1 deduplicated child, got %d", impact.ChildrenCount)
		}
	})

	t.Run("no_targets", func(t *testing.T) {
		all := []models.Category{makeCategory("a", "A", nil, 1)}
		impact := AnalyzeDelete(nil, all)
		if !impact.CanSafeDelete {
			t.Errorf("expected trivially safe delete, got %+v", impact)
		}
	})
}
