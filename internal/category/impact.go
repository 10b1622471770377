package category

import "medcast/internal/models"

// DeleteImpact describes what deleting a candidate set of categories would
// affect. It is purely advisory: nothing is mutated, and it must be
// recomputed whenever the target selection changes.
type DeleteImpact struct {
	HasChildren        bool              `json:"has_children"`
	ChildrenCount      int               `json:"children_count"`
	HasAudios          bool              `json:"has_audios"`
	AudioCount         int64             `json:"audio_count"`
	AffectedCategories []models.Category `json:"affected_categories"`
	CanSafeDelete      bool              `json:"can_safe_delete"`
}

// AnalyzeDelete computes the impact of deleting the target categories.
// Children of any target count as affected, deduplicated when several
// targets share descendants. Audio counts are summed over the targets
// themselves, not their descendants. A deletion is safe only when it
// affects no children and no audio records.
func AnalyzeDelete(targets, all []models.Category) DeleteImpact {
	targetIDs := make(map[string]bool, len(targets))
	var audioTotal int64
	for _, t := range targets {
		if targetIDs[t.ID] {
			continue
		}
		targetIDs[t.ID] = true
		audioTotal += t.AudioCount
	}

	seen := make(map[string]bool)
	var affected []models.Category
	for _, c := range all {
		if c.ParentID == nil || !targetIDs[*c.ParentID] || seen[c.ID] {
			continue
		}
		seen[c.ID] = true
		affected = append(affected, c)
	}
	sortCategories(affected)

	impact := DeleteImpact{
		HasChildren:        len(affected) > 0,
		ChildrenCount:      len(affected),
		HasAudios:          audioTotal > 0,
		AudioCount:         audioTotal,
		AffectedCategories: affected,
	}
	impact.CanSafeDelete = !impact.HasChildren && !impact.HasAudios
	return impact
}
