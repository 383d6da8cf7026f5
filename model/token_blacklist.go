package model

import (
	"time"
)

// RevokedToken stores the jti of a token revoked before its expiry
type RevokedToken struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	JTI         string    `gorm:"column:jti;type:varchar(64);uniqueIndex;not null" json:"jti"`
	PrincipalID uint      `gorm:"index" json:"principal_id"`
	Role        string    `gorm:"type:varchar(20)" json:"role"`
	Reason      string    `gorm:"type:varchar(100)" json:"reason"` // logout, manual_revoke
	ExpiresAt   time.Time `gorm:"index;not null" json:"expires_at"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName specifies the table name for RevokedToken
func (RevokedToken) TableName() string {
	return "revoked_tokens"
}
