package model

import (
	"time"

	"gorm.io/datatypes"
)

// AdminAuditLog is the audit trail of course changes made by admins
type AdminAuditLog struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	AdminID     uint           `gorm:"not null;index" json:"admin_id"`
	Action      string         `gorm:"type:varchar(100);not null" json:"action"` // course_create, course_update, ...
	Resource    string         `gorm:"type:varchar(100)" json:"resource"`
	ResourceID  string         `gorm:"type:varchar(64)" json:"resource_id"`
	Payload     datatypes.JSON `json:"payload,omitempty"`
	StatusCode  int            `json:"status_code"`
	IPAddress   string         `gorm:"type:varchar(45)" json:"ip_address"`
	UserAgent   string         `gorm:"type:text" json:"user_agent"`
	Description string         `gorm:"type:text" json:"description"`
	CreatedAt   time.Time      `json:"created_at"`

	// Relationships
	Admin *Admin `gorm:"foreignKey:AdminID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for AdminAuditLog
func (AdminAuditLog) TableName() string {
	return "admin_audit_logs"
}
