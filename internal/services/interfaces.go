package services

import (
	"medcast/internal/models"
	"medcast/internal/pagination"
)

// UserServicer defines the contract for admin-account business logic.
type UserServicer interface {
	CreateUser(email, password, displayName string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	AttemptLogin(email, password string) (*models.User, error)
	StoreRefreshTokenHash(userID, tokenHash string) error
	GetRefreshTokenHash(userID string) (string, error)
}

// AudioServicer defines the read and maintenance surface of the audio
// subsystem the category engine collaborates with. Upload and streaming
// live elsewhere.
type AudioServicer interface {
	GetCategoryAudios(categoryID string, page pagination.PageRequest) (*pagination.PageResponse[models.Audio], error)
	GetAudioByID(id string) (*models.Audio, error)
	CountByCategory() (map[string]int64, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]interface{})
}
