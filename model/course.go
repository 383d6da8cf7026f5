package model

import (
	"time"
)

// Course is a purchasable offering owned by a single admin
type Course struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Thumbnail   string    `gorm:"type:varchar(500)" json:"thumbnail"`
	Price       float64   `gorm:"not null;default:0;check:price >= 0" json:"price"`
	AdminID     uint      `gorm:"not null;index" json:"admin_id"`

	// Relationships
	Admin   *Admin   `gorm:"foreignKey:AdminID" json:"-"`
	Modules []Module `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"modules,omitempty"`
}

// Module is one lesson of a course. Modules are listed in insertion order.
type Module struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	CourseID  uint      `gorm:"not null;index" json:"course_id"`
	Title     string    `gorm:"type:varchar(255);not null" json:"title"`
	Media     string    `gorm:"type:varchar(500);not null" json:"media"`
	Notes     string    `gorm:"type:text" json:"notes"`
}

// OwnedBy reports whether adminID is the owning admin of the course.
func (c *Course) OwnedBy(adminID uint) bool {
	return c.AdminID == adminID
}
