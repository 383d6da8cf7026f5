package model

import (
	"time"

	"gorm.io/datatypes"
)

const (
	CheckoutStatusOpen    = "open"
	CheckoutStatusExpired = "expired"
)

// CheckoutSession records a hosted payment session opened for an enrollment.
// It keeps no foreign key to courses so payment history outlives a course.
type CheckoutSession struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	OrderID        string         `gorm:"type:varchar(64);uniqueIndex;not null" json:"order_id"`
	StudentID      uint           `gorm:"not null;index" json:"student_id"`
	CourseID       uint           `gorm:"not null;index" json:"course_id"`
	CourseTitle    string         `gorm:"type:varchar(255)" json:"course_title"`
	Amount         int64          `gorm:"not null" json:"amount"` // minor units
	Currency       string         `gorm:"type:varchar(10);default:'usd'" json:"currency"`
	Status         string         `gorm:"type:varchar(20);default:'open';index" json:"status"`
	GatewayToken   string         `gorm:"type:varchar(255)" json:"-"`
	RedirectURL    string         `gorm:"type:text" json:"redirect_url"`
	GatewayPayload datatypes.JSON `json:"gateway_payload,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// TableName specifies the table name for CheckoutSession
func (CheckoutSession) TableName() string {
	return "checkout_sessions"
}
