package models

// CategoryLevel tags a category's depth in the two-level hierarchy.
// It is denormalized from ParentID for fast filtering and must never
// contradict it: nil ParentID is primary, non-nil is secondary.
type CategoryLevel string

const (
	LevelPrimary   CategoryLevel = "primary"
	LevelSecondary CategoryLevel = "secondary"
)

// LevelFor returns the level implied by a parent reference.
func LevelFor(parentID *string) CategoryLevel {
	if parentID == nil || *parentID == "" {
		return LevelPrimary
	}
	return LevelSecondary
}

// Name and description length limits enforced on every create/update.
const (
	CategoryNameMaxLen        = 100
	CategoryDescriptionMaxLen = 500
)

// Category is a node in the two-level classification tree every audio
// asset is filed under. Secondary categories reference a primary parent;
// deeper nesting is never permitted.
type Category struct {
	Base
	Name        string        `gorm:"size:100;not null" json:"name"`
	Description string        `gorm:"size:500" json:"description"`
	Color       string        `gorm:"size:32" json:"color"`
	Icon        string        `gorm:"size:64" json:"icon"`
	ParentID    *string       `gorm:"type:uuid;index" json:"parent_id,omitempty"`
	Level       CategoryLevel `gorm:"size:16;not null;default:primary" json:"level"`
	SortOrder   int           `gorm:"not null;default:0" json:"sort_order"`
	IsActive    bool          `gorm:"not null;default:true" json:"is_active"`

	// AudioCount is aggregated from the audio subsystem when listing.
	// The category engine only ever reads it.
	AudioCount int64 `gorm:"-" json:"audio_count"`
}

// IsPrimary reports whether the category is a level-1 node.
func (c *Category) IsPrimary() bool {
	return c.ParentID == nil || *c.ParentID == ""
}
