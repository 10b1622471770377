package category

import (
	"testing"

	"medcast/internal/models"
)

func TestComputeStats(t *testing.T) {
	t.Run("empty_collection", func(t *testing.T) {
		s := ComputeStats(nil)
		if s != (Stats{}) {
			t.Errorf("expected all-zero stats, got %+v", s)
		}
	})

	t.Run("counts", func(t *testing.T) {
		withAudio := makeCategory("sub1", "Arrhythmia", ptr("card"), 1)
		withAudio.AudioCount = 7
		inactive := makeCategory("neuro", "Neurology", nil, 3)
		inactive.IsActive = false

		flat := []models.Category{
			makeCategory("card", "Cardiology", nil, 1),
			makeCategory("resp", "Respiratory", nil, 2),
			withAudio,
			inactive,
		}

		s := ComputeStats(flat)
		if s.Total != 4 {
			t.Errorf("Total = %d, want 4", s.Total)
		}
		if s.PrimaryCount != 3 || s.SecondaryCount != 1 {
			t.Errorf("PrimaryCount/SecondaryCount = %d/%d, want 3/1", s.PrimaryCount, s.SecondaryCount)
		}
		if s.ActiveCount != 3 {
			t.Errorf("ActiveCount = %d, want 3", s.ActiveCount)
		}
		if s.WithAudio != 1 {
			t.Errorf("WithAudio = %d, want 1", s.WithAudio)
		}
		if s.Empty != 3 {
			t.Errorf("Empty = %d, want 3", s.Empty)
		}
	})

	t.Run("with_audio_and_empty_are_complementary", func(t *testing.T) {
		flat := []models.Category{
			makeCategory("a", "A", nil, 1),
			makeCategory("b", "B", nil, 2),
		}
		flat[0].AudioCount = 1

		s := ComputeStats(flat)
		if s.WithAudio+s.Empty != s.Total {
			t.Errorf("WithAudio(%d) + Empty(%d) != Total(%d)", s.WithAudio, s.Empty, s.Total)
		}
	})
}
