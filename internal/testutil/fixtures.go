package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"medcast/internal/models"
)

var fixtureCounter atomic.Int64

// CreateTestUser inserts an active admin user with a unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()

	n := fixtureCounter.Add(1)
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash fixture password: %v", err)
	}

	user := &models.User{
		Email:       fmt.Sprintf("admin%d@test.local", n),
		Password:    string(hashed),
		DisplayName: fmt.Sprintf("Admin %d", n),
		IsActive:    true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestCategory inserts a category with a unique name. parentID may be
// nil for a primary category.
func CreateTestCategory(t *testing.T, db *gorm.DB, parentID *string) *models.Category {
	t.Helper()

	n := fixtureCounter.Add(1)
	cat := &models.Category{
		Name:      fmt.Sprintf("Category %d", n),
		ParentID:  parentID,
		Level:     models.LevelFor(parentID),
		SortOrder: int(n),
		IsActive:  true,
	}
	if err := db.Create(cat).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return cat
}

// CreateTestAudio inserts a published audio record filed under the given
// category references; either may be nil.
func CreateTestAudio(t *testing.T, db *gorm.DB, categoryID, subcategoryID *string) *models.Audio {
	t.Helper()

	n := fixtureCounter.Add(1)
	audio := &models.Audio{
		Title:           fmt.Sprintf("Audio %d", n),
		Speaker:         "Dr. Test",
		DurationSeconds: 600,
		CategoryID:      categoryID,
		SubcategoryID:   subcategoryID,
		Status:          models.AudioStatusPublished,
	}
	if err := db.Create(audio).Error; err != nil {
		t.Fatalf("failed to create test audio: %v", err)
	}
	return audio
}
