package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/moringa/darasa-api/database"
	"github.com/moringa/darasa-api/model"
	"github.com/moringa/darasa-api/utils/apperrors"
	"gorm.io/gorm"
)

// MessageService stores and lists student/admin messages
type MessageService struct {
	db *gorm.DB
}

// NewMessageService creates a new message service
func NewMessageService(db *gorm.DB) *MessageService {
	return &MessageService{db: db}
}

// InboxEntry is a message in an admin's inbox
type InboxEntry struct {
	ID         uint      `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	SenderName string    `json:"sender_name"`
	SenderRole string    `json:"sender_role"`
	SentAt     time.Time `json:"sent_at"`
}

// AdminMessage is a message a student received from an admin
type AdminMessage struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	SenderID    uint      `json:"sender_id"`
	SenderEmail string    `json:"sender_email"`
	SentAt      time.Time `json:"sent_at"`
}

// SentEntry is a message in a sender's outbox
type SentEntry struct {
	ID             uint      `json:"id"`
	Title          string    `json:"title"`
	Content        string    `json:"content"`
	RecipientID    uint      `json:"recipient_id"`
	RecipientEmail string    `json:"recipient_email"`
	RecipientRole  string    `json:"recipient_role"`
	SentAt         time.Time `json:"sent_at"`
}

func validateMessage(title, content string) error {
	if strings.TrimSpace(title) == "" || strings.TrimSpace(content) == "" {
		return apperrors.Validation("title and content are required")
	}
	return nil
}

// SendToAdmin stores a message from a student to an existing admin
func (s *MessageService) SendToAdmin(ctx context.Context, studentID, adminID uint, title, content string) (*model.Message, error) {
	if err := validateMessage(title, content); err != nil {
		return nil, err
	}
	db := s.db.WithContext(ctx)

	var admin model.Admin
	if err := db.First(&admin, adminID).Error; err != nil {
		return nil, database.TranslateError(err, fmt.Sprintf("admin %d not found", adminID), "")
	}

	msg := model.NewStudentToAdminMessage(studentID, admin.ID, title, content)
	if err := db.Create(msg).Error; err != nil {
		return nil, apperrors.Internal(err)
	}
	return msg, nil
}

// SendToStudent stores a message from an admin to the student with email
func (s *MessageService) SendToStudent(ctx context.Context, adminID uint, email, title, content string) (*model.Message, error) {
	if err := validateMessage(title, content); err != nil {
		return nil, err
	}
	db := s.db.WithContext(ctx)

	var student model.Student
	if err := db.Where("email = ?", strings.TrimSpace(email)).First(&student).Error; err != nil {
		return nil, database.TranslateError(err, "student not found", "")
	}

	msg := model.NewAdminToStudentMessage(adminID, student.ID, title, content)
	if err := db.Create(msg).Error; err != nil {
		return nil, apperrors.Internal(err)
	}
	return msg, nil
}

// AdminInbox lists every message addressed to the admin, oldest first
func (s *MessageService) AdminInbox(ctx context.Context, adminID uint) ([]InboxEntry, error) {
	var messages []model.Message
	err := s.db.WithContext(ctx).
		Preload("Sender").
		Preload("AdminSender").
		Where("admin_receiver_id = ?", adminID).
		Order("id").
		Find(&messages).Error
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	entries := make([]InboxEntry, 0, len(messages))
	for _, m := range messages {
		entry := InboxEntry{ID: m.ID, Title: m.Title, Content: m.Content, SentAt: m.CreatedAt}
		switch {
		case m.Sender != nil:
			entry.SenderName, entry.SenderRole = m.Sender.Username, "student"
		case m.AdminSender != nil:
			entry.SenderName, entry.SenderRole = m.AdminSender.Email, "admin"
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// StudentInbox lists messages admins sent to the student, oldest first
func (s *MessageService) StudentInbox(ctx context.Context, studentID uint) ([]AdminMessage, error) {
	var messages []model.Message
	err := s.db.WithContext(ctx).
		Preload("AdminSender").
		Where("receiver_id = ? AND admin_sender_id IS NOT NULL", studentID).
		Order("id").
		Find(&messages).Error
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	out := make([]AdminMessage, 0, len(messages))
	for _, m := range messages {
		entry := AdminMessage{ID: m.ID, Title: m.Title, Content: m.Content, SentAt: m.CreatedAt}
		if m.AdminSender != nil {
			entry.SenderID, entry.SenderEmail = m.AdminSender.ID, m.AdminSender.Email
		}
		out = append(out, entry)
	}
	return out, nil
}

// SentByStudent lists the student's outgoing messages
func (s *MessageService) SentByStudent(ctx context.Context, studentID uint) ([]SentEntry, error) {
	return s.sent(ctx, "sender_id = ?", studentID)
}

// SentByAdmin lists the admin's outgoing messages
func (s *MessageService) SentByAdmin(ctx context.Context, adminID uint) ([]SentEntry, error) {
	return s.sent(ctx, "admin_sender_id = ?", adminID)
}

func (s *MessageService) sent(ctx context.Context, where string, id uint) ([]SentEntry, error) {
	var messages []model.Message
	err := s.db.WithContext(ctx).
		Preload("Receiver").
		Preload("AdminReceiver").
		Where(where, id).
		Order("id").
		Find(&messages).Error
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	out := make([]SentEntry, 0, len(messages))
	for _, m := range messages {
		entry := SentEntry{ID: m.ID, Title: m.Title, Content: m.Content, SentAt: m.CreatedAt}
		switch {
		case m.Receiver != nil:
			entry.RecipientID, entry.RecipientEmail, entry.RecipientRole = m.Receiver.ID, m.Receiver.Email, "student"
		case m.AdminReceiver != nil:
			entry.RecipientID, entry.RecipientEmail, entry.RecipientRole = m.AdminReceiver.ID, m.AdminReceiver.Email, "admin"
		}
		out = append(out, entry)
	}
	return out, nil
}
