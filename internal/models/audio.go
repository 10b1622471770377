package models

// AudioStatus represents the publication state of an audio asset.
type AudioStatus string

const (
	AudioStatusDraft     AudioStatus = "draft"
	AudioStatusPublished AudioStatus = "published"
	AudioStatusArchived  AudioStatus = "archived"
)

// Audio is the metadata record for a published audio asset. Storage,
// streaming, and upload are owned by the audio subsystem; the category
// engine only reads these rows for impact analysis and clears the
// category references when a deletion requests it.
type Audio struct {
	Base
	Title           string      `gorm:"size:200;not null" json:"title"`
	Speaker         string      `gorm:"size:100" json:"speaker"`
	DurationSeconds int         `gorm:"not null;default:0" json:"duration_seconds"`
	CategoryID      *string     `gorm:"type:uuid;index" json:"category_id,omitempty"`
	SubcategoryID   *string     `gorm:"type:uuid;index" json:"subcategory_id,omitempty"`
	Status          AudioStatus `gorm:"size:16;not null;default:draft" json:"status"`
	PlayCount       int64       `gorm:"not null;default:0" json:"play_count"`
}
