package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "medcast/internal/errors"
	"medcast/internal/models"
	"medcast/internal/pagination"
)

// audioService exposes the audio subsystem's metadata to the category
// engine and to admin listings. It never touches storage or streaming.
type audioService struct {
	db *gorm.DB
}

// NewAudioService creates a new AudioServicer.
func NewAudioService(db *gorm.DB) AudioServicer {
	return &audioService{db: db}
}

// GetCategoryAudios retrieves a paginated list of audio records filed under
// a category, whether as primary or secondary reference.
func (s *audioService) GetCategoryAudios(categoryID string, page pagination.PageRequest) (*pagination.PageResponse[models.Audio], error) {
	page.Defaults()

	base := s.db.Model(&models.Audio{}).
		Where("category_id = ? OR subcategory_id = ?", categoryID, categoryID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var audios []models.Audio
	if err := base.Order("created_at DESC, id DESC").
		Scopes(pagination.Paginate(page)).
		Find(&audios).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(audios, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetAudioByID retrieves a single audio record.
func (s *audioService) GetAudioByID(id string) (*models.Audio, error) {
	var audio models.Audio
	if err := s.db.First(&audio, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAudioNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &audio, nil
}

// CountByCategory aggregates audio counts per referenced category id.
func (s *audioService) CountByCategory() (map[string]int64, error) {
	type row struct {
		ID string
		N  int64
	}
	counts := make(map[string]int64)

	for _, column := range []string{"category_id", "subcategory_id"} {
		var rows []row
		if err := s.db.Model(&models.Audio{}).
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
