package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"medcast/internal/category"
	apperrors "medcast/internal/errors"
	"medcast/internal/events"
	"medcast/internal/models"
)

// categoryStore is the GORM-backed implementation of category.Store: the
// persisted collection is the source of truth every Coordinator snapshot
// is a cache of. After each successful mutation it publishes on the event
// bus so other engine instances refresh.
type categoryStore struct {
	db  *gorm.DB
	bus *events.Bus
}

// NewCategoryStore creates a category.Store over the given database.
// bus may be nil when change notifications are not needed.
func NewCategoryStore(db *gorm.DB, bus *events.Bus) category.Store {
	return &categoryStore{db: db, bus: bus}
}

func (s *categoryStore) notify() {
	if s.bus != nil {
		s.bus.Publish(events.CategoriesUpdated)
	}
}

// ListCategories returns the full flat collection ordered by sort_order
// then id, with the advisory audio count aggregated onto every record.
func (s *categoryStore) ListCategories(ctx context.Context) ([]models.Category, error) {
	var cats []models.Category
	if err := s.db.WithContext(ctx).
		Order("sort_order ASC, id ASC").
		Find(&cats).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	counts, err := s.audioCounts(ctx)
	if err != nil {
		return nil, err
	}
	for i := range cats {
		cats[i].AudioCount = counts[cats[i].ID]
	}
	return cats, nil
}

// audioCounts aggregates how many audio records are filed under each
// category id, whether as primary or secondary reference.
func (s *categoryStore) audioCounts(ctx context.Context) (map[string]int64, error) {
	type row struct {
		ID string
		N  int64
	}
	counts := make(map[string]int64)

	for _, column := range []string{"category_id", "subcategory_id"} {
		var rows []row
		if err := s.db.WithContext(ctx).Model(&models.Audio{}).
			Select(column + " AS id, COUNT(*) AS n").
			Where(column + " IS NOT NULL").
			Group(column).
			Scan(&rows).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		for _, r := range rows {
			counts[r.ID] += r.N
		}
	}
	return counts, nil
}

// CreateCategory persists a new category, assigning id, level, and
// timestamps. Parent depth and sibling-name uniqueness are re-checked at
// the persistence boundary: the Coordinator validates first, but a race
// lost to another writer must still surface as a conflict, not corrupt
// the hierarchy.
func (s *categoryStore) CreateCategory(ctx context.Context, in category.Input) (*models.Category, error) {
	db := s.db.WithContext(ctx)

	if err := s.checkParent(db, in.ParentID, ""); err != nil {
		return nil, err
	}
	if err := s.checkSiblingName(db, in.Name, in.ParentID, ""); err != nil {
		return nil, err
	}

	cat := &models.Category{
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Color:       in.Color,
		Icon:        in.Icon,
		ParentID:    normalizeParent(in.ParentID),
		Level:       models.LevelFor(in.ParentID),
		SortOrder:   in.SortOrder,
		IsActive:    true,
	}
	if in.IsActive != nil {
		cat.IsActive = *in.IsActive
	}

	if err := db.Create(cat).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.notify()
	return cat, nil
}

// UpdateCategory replaces the mutable fields of an existing category and
// returns the authoritative record. Re-parenting a category that has
// children is rejected: it would push its subtree past two levels.
func (s *categoryStore) UpdateCategory(ctx context.Context, id string, in category.Input) (*models.Category, error) {
	db := s.db.WithContext(ctx)

	var cat models.Category
	if err := db.First(&cat, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := s.checkParent(db, in.ParentID, id); err != nil {
		return nil, err
	}
	if err := s.checkSiblingName(db, in.Name, in.ParentID, id); err != nil {
		return nil, err
	}
	if normalizeParent(in.ParentID) != nil {
		var children int64
		if err := db.Model(&models.Category{}).Where("parent_id = ?", id).Count(&children).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if children > 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidParent, "a category with children cannot become a subcategory")
		}
	}

	cat.Name = strings.TrimSpace(in.Name)
	cat.Description = in.Description
	cat.Color = in.Color
	cat.Icon = in.Icon
	cat.ParentID = normalizeParent(in.ParentID)
	cat.Level = models.LevelFor(cat.ParentID)
	cat.SortOrder = in.SortOrder
	if in.IsActive != nil {
		cat.IsActive = *in.IsActive
	}

	if err := db.Save(&cat).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.notify()
	return &cat, nil
}

// DeleteCategory removes a category according to the delete policy. Without
// Force the store refuses to delete a category that still has children or
// associated audio. Cascade removes the children in the same transaction;
// UpdateAudios clears category references on audio records, otherwise they
// keep a dangling id the UI surfaces but does not auto-repair.
func (s *categoryStore) DeleteCategory(ctx context.Context, id string, opts category.DeleteOptions) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return deleteOne(tx, id, opts)
	})
	if err != nil {
		return err
	}
	s.notify()
	return nil
}

// BatchDeleteCategories deletes a set of categories under one policy
// decision, each in its own transaction, and reports the aggregate outcome.
func (s *categoryStore) BatchDeleteCategories(ctx context.Context, ids []string, opts category.DeleteOptions) (*category.BatchResult, error) {
	result := &category.BatchResult{}
	for _, id := range ids {
		err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return deleteOne(tx, id, opts)
		})
		if err != nil {
			result.Failed = append(result.Failed, id)
			continue
		}
		result.Succeeded = append(result.Succeeded, id)
	}
	if len(result.Succeeded) > 0 {
		s.notify()
	}
	return result, nil
}

func deleteOne(tx *gorm.DB, id string, opts category.DeleteOptions) error {
	var cat models.Category
	if err := tx.First(&cat, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrCategoryNotFound
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if !opts.Force {
		var children, audios int64
		if err := tx.Model(&models.Category{}).Where("parent_id = ?", id).Count(&children).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Model(&models.Audio{}).
			Where("category_id = ? OR subcategory_id = ?", id, id).
			Count(&audios).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if children > 0 || audios > 0 {
			return apperrors.ErrCategoryNotEmpty
		}
	}

	doomed := []string{id}
	if opts.Cascade {
		var childIDs []string
		if err := tx.Model(&models.Category{}).Where("parent_id = ?", id).Pluck("id", &childIDs).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		doomed = append(doomed, childIDs...)
	}

	if opts.UpdateAudios {
		if err := tx.Model(&models.Audio{}).Where("category_id IN ?", doomed).
			Update("category_id", nil).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Model(&models.Audio{}).Where("subcategory_id IN ?", doomed).
			Update("subcategory_id", nil).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	if err := tx.Delete(&models.Category{}, "id IN ?", doomed).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// BatchUpdateStatus activates or deactivates a set of categories in one
// statement.
func (s *categoryStore) BatchUpdateStatus(ctx context.Context, ids []string, isActive bool) error {
	if len(ids) == 0 {
		return nil
	}
	res := s.db.WithContext(ctx).Model(&models.Category{}).
		Where("id IN ?", ids).
		Update("is_active", isActive)
	if res.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrCategoryNotFound
	}
	s.notify()
	return nil
}

// ReorderCategories persists a batch of sort-order assignments. Only
// sort_order ever changes; parent and level are untouchable through this
// operation.
func (s *categoryStore) ReorderCategories(ctx context.Context, reqs []category.ReorderRequest) error {
	if len(reqs) == 0 {
		return nil
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, r := range reqs {
			res := tx.Model(&models.Category{}).
				Where("id = ?", r.ID).
				Update("sort_order", r.SortOrder)
			if res.Error != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
			}
			if res.RowsAffected == 0 {
				return apperrors.ErrCategoryNotFound
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.notify()
	return nil
}

// checkParent verifies a parent reference at the persistence boundary:
// it must exist, be a primary category, and not be the category itself.
func (s *categoryStore) checkParent(db *gorm.DB, parentID *string, selfID string) error {
	pid := normalizeParent(parentID)
	if pid == nil {
		return nil
	}
	if selfID != "" && *pid == selfID {
		return apperrors.WithMessage(apperrors.ErrInvalidParent, "a category cannot be its own parent")
	}

	var parent models.Category
	if err := db.First(&parent, "id = ?", *pid).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrInvalidParent
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if !parent.IsPrimary() {
		return apperrors.ErrInvalidParent
	}
	return nil
}

// checkSiblingName enforces case-insensitive name uniqueness within a
// sibling scope at the persistence boundary.
func (s *categoryStore) checkSiblingName(db *gorm.DB, name string, parentID *string, excludeID string) error {
	q := db.Model(&models.Category{}).Where("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(name)))
	if pid := normalizeParent(parentID); pid == nil {
		q = q.Where("parent_id IS NULL")
	} else {
		q = q.Where("parent_id = ?", *pid)
	}
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return apperrors.ErrDuplicateName
	}
	return nil
}

// normalizeParent maps an empty-string parent reference to nil so primary
// categories always carry a NULL parent.
func normalizeParent(parentID *string) *string {
	if parentID == nil || *parentID == "" {
		return nil
	}
	return parentID
}
