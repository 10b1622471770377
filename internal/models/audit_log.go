package models

// AuditLog records administrative mutations for traceability.
type AuditLog struct {
	Base
	UserID       string `gorm:"type:uuid;index" json:"user_id"`
	Action       string `gorm:"not null" json:"action"`
	ResourceType string `gorm:"not null" json:"resource_type"`
	ResourceID   string `json:"resource_id"`
	IPAddress    string `json:"ip_address"`
	Changes      string `json:"changes,omitempty"`
}
