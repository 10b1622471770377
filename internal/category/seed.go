package category

import "medcast/internal/models"

// DefaultCategories is the built-in seed set served when the backing store
// cannot be reached, so admin surfaces are never fully empty. A Coordinator
// serving this set reports Degraded() == true and the data carries fixed
// non-persisted ids.
func DefaultCategories() []models.Category {
	parent := func(id string) *string { return &id }

	return []models.Category{
		{
			Base: models.Base{ID: "seed-cardiology"},
			Name: "Cardiology", Description: "Heart and circulatory system",
			Icon: "heart", Color: "#E53E3E",
			Level: models.LevelPrimary, SortOrder: 1, IsActive: true,
		},
		{
			Base: models.Base{ID: "seed-cardiology-arrhythmia"},
			Name: "Arrhythmia", ParentID: parent("seed-cardiology"),
			Level: models.LevelSecondary, SortOrder: 1, IsActive: true,
		},
		{
			Base: models.Base{ID: "seed-cardiology-heart-failure"},
			Name: "Heart Failure", ParentID: parent("seed-cardiology"),
			Level: models.LevelSecondary, SortOrder: 2, IsActive: true,
		},
		{
			Base: models.Base{ID: "seed-respiratory"},
			Name: "Respiratory Medicine", Description: "Airways and lungs",
			Icon: "wind", Color: "#3182CE",
			Level: models.LevelPrimary, SortOrder: 2, IsActive: true,
		},
		{
			Base: models.Base{ID: "seed-respiratory-asthma"},
			Name: "Asthma", ParentID: parent("seed-respiratory"),
			Level: models.LevelSecondary, SortOrder: 1, IsActive: true,
		},
		{
			Base: models.Base{ID: "seed-respiratory-copd"},
			Name: "COPD", ParentID: parent("seed-respiratory"),
			Level: models.LevelSecondary, SortOrder: 2, IsActive: true,
		},
		{
			Base: models.Base{ID: "seed-neurology"},
			Name: "Neurology", Description: "Nervous system",
			Icon: "brain", Color: "#805AD5",
			Level: models.LevelPrimary, SortOrder: 3, IsActive: true,
		},
		{
			Base: models.Base{ID: "seed-guidelines"},
			Name: "Clinical Guidelines", Description: "Guideline walkthroughs and updates",
			Icon: "book", Color: "#38A169",
			Level: models.LevelPrimary, SortOrder: 4, IsActive: true,
		},
	}
}
