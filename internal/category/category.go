// Package category implements the two-level category hierarchy engine: the
// pure tree/validation/statistics/impact functions and the stateful
// Coordinator that orchestrates reads and mutations against a backing store.
package category

import (
	"context"

	"medcast/internal/models"
)

// Input is the client-supplied portion of a category for create and update
// operations. Server-assigned fields (id, level, timestamps) never appear
// here; the store derives them.
type Input struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Color       string  `json:"color"`
	Icon        string  `json:"icon"`
	ParentID    *string `json:"parent_id"`
	SortOrder   int     `json:"sort_order"`
	IsActive    *bool   `json:"is_active"`
}

// DeleteOptions control how a non-safe deletion proceeds.
//   - Force bypasses the safety gate entirely.
//   - Cascade additionally deletes all affected child categories; without it
//     children are left orphaned (dropped from the rendered tree but kept in
//     the flat collection).
//   - UpdateAudios clears the category reference on associated audio
//     records; without it those records keep a dangling category id.
type DeleteOptions struct {
	Force        bool `json:"force"`
	Cascade      bool `json:"cascade"`
	UpdateAudios bool `json:"update_audios"`
}

// ReorderRequest assigns a new sort order to a single category. Reordering
// never changes a category's parent or level.
type ReorderRequest struct {
	ID        string `json:"id" binding:"required"`
	SortOrder int    `json:"sort_order"`
}

// BatchResult reports the aggregate outcome of a batched store mutation.
type BatchResult struct {
	Succeeded []string `json:"succeeded"`
	Failed    []string `json:"failed"`
}

// Store is the persistence boundary the Coordinator mutates through. The
// persisted collection is the long-lived source of truth; the Coordinator's
// snapshot is a cache of it.
type Store interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	CreateCategory(ctx context.Context, in Input) (*models.Category, error)
	UpdateCategory(ctx context.Context, id string, in Input) (*models.Category, error)
	DeleteCategory(ctx context.Context, id string, opts DeleteOptions) error
	BatchDeleteCategories(ctx context.Context, ids []string, opts DeleteOptions) (*BatchResult, error)
	BatchUpdateStatus(ctx context.Context, ids []string, isActive bool) error
	ReorderCategories(ctx context.Context, reqs []ReorderRequest) error
}
