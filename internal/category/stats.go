package category

import "medcast/internal/models"

// Stats aggregates counts over the flat collection.
type Stats struct {
	Total          int `json:"total_categories"`
	PrimaryCount   int `json:"primary_count"`
	SecondaryCount int `json:"secondary_count"`
	ActiveCount    int `json:"active_count"`
	WithAudio      int `json:"categories_with_audio"`
	Empty          int `json:"empty_categories"`
}

// ComputeStats derives aggregate counts in a single pass. WithAudio counts
// categories whose advisory AudioCount is positive; Empty is the complement
// over all categories, not just leaves.
func ComputeStats(flat []models.Category) Stats {
	var s Stats
	for _, c := range flat {
		s.Total++
		if c.IsPrimary() {
			s.PrimaryCount++
		} else {
			s.SecondaryCount++
		}
		if c.IsActive {
			s.ActiveCount++
		}
		if c.AudioCount > 0 {
			s.WithAudio++
		} else {
			s.Empty++
		}
	}
	return s
}
