package model

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrMessageParties = errors.New("message must have exactly one sender and one receiver")

// Message is a directed note between a student and an admin. Exactly one
// sender column and one receiver column are set. Messages are never edited.
type Message struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	CreatedAt       time.Time `json:"created_at"`
	Title           string    `gorm:"type:varchar(255);not null" json:"title"`
	Content         string    `gorm:"type:text;not null" json:"content"`
	SenderID        *uint     `gorm:"index" json:"sender_id,omitempty"`
	ReceiverID      *uint     `gorm:"index" json:"receiver_id,omitempty"`
	AdminSenderID   *uint     `gorm:"index" json:"admin_sender_id,omitempty"`
	AdminReceiverID *uint     `gorm:"index" json:"admin_receiver_id,omitempty"`

	// Relationships
	Sender        *Student `gorm:"foreignKey:SenderID" json:"-"`
	Receiver      *Student `gorm:"foreignKey:ReceiverID" json:"-"`
	AdminSender   *Admin   `gorm:"foreignKey:AdminSenderID" json:"-"`
	AdminReceiver *Admin   `gorm:"foreignKey:AdminReceiverID" json:"-"`
}

// NewStudentToAdminMessage builds a message from a student to an admin
func NewStudentToAdminMessage(studentID, adminID uint, title, content string) *Message {
	return &Message{Title: title, Content: content, SenderID: &studentID, AdminReceiverID: &adminID}
}

// NewAdminToStudentMessage builds a message from an admin to a student
func NewAdminToStudentMessage(adminID, studentID uint, title, content string) *Message {
	return &Message{Title: title, Content: content, AdminSenderID: &adminID, ReceiverID: &studentID}
}

// BeforeCreate enforces the single sender / single receiver rule
func (m *Message) BeforeCreate(tx *gorm.DB) error {
	senders := countSet(m.SenderID, m.AdminSenderID)
	receivers := countSet(m.ReceiverID, m.AdminReceiverID)
	if senders != 1 || receivers != 1 {
		return ErrMessageParties
	}
	return nil
}

func countSet(ids ...*uint) int {
	n := 0
	for _, id := range ids {
		if id != nil {
			n++
		}
	}
	return n
}
