package model

import (
	"time"
)

// Student is a learner who buys courses and messages admins
type Student struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Username     string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"username"`
	PasswordHash string    `gorm:"not null" json:"-"` // Never expose password in JSON

	// Relationships
	Enrollments []StudentCourse `gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE" json:"-"`
}

// Admin publishes courses and answers student messages
type Admin struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`

	// Relationships
	Courses []Course `gorm:"foreignKey:AdminID" json:"-"`
}

// StudentCourse records an enrollment. The composite key rejects a second
// enrollment of the same student in the same course.
type StudentCourse struct {
	StudentID  uint      `gorm:"primaryKey;autoIncrement:false" json:"student_id"`
	CourseID   uint      `gorm:"primaryKey;autoIncrement:false" json:"course_id"`
	EnrolledAt time.Time `gorm:"autoCreateTime" json:"enrolled_at"`

	// Relationships
	Student *Student `gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE" json:"-"`
	Course  *Course  `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"course,omitempty"`
}

// AdminCourse links admins to the courses they teach. The owner is always
// present; extra rows are co-instructors.
type AdminCourse struct {
	AdminID  uint      `gorm:"primaryKey;autoIncrement:false" json:"admin_id"`
	CourseID uint      `gorm:"primaryKey;autoIncrement:false" json:"course_id"`
	AddedAt  time.Time `gorm:"autoCreateTime" json:"added_at"`

	Admin  *Admin  `gorm:"foreignKey:AdminID;constraint:OnDelete:CASCADE" json:"-"`
	Course *Course `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"-"`
}
