package services

import (
	"context"
	"strings"

	"github.com/moringa/darasa-api/model"
	"github.com/moringa/darasa-api/utils/apperrors"
	"gorm.io/gorm"
)

// DirectoryEntry identifies a principal by id and email
type DirectoryEntry struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
}

// DirectoryService finds principals by email
type DirectoryService struct {
	db *gorm.DB
}

// NewDirectoryService creates a new directory service
func NewDirectoryService(db *gorm.DB) *DirectoryService {
	return &DirectoryService{db: db}
}

// SearchAdmins returns admins whose email contains substr (case-sensitive)
func (s *DirectoryService) SearchAdmins(ctx context.Context, substr string) ([]DirectoryEntry, error) {
	return s.search(ctx, &model.Admin{}, substr)
}

// SearchStudents returns students whose email contains substr (case-sensitive)
func (s *DirectoryService) SearchStudents(ctx context.Context, substr string) ([]DirectoryEntry, error) {
	return s.search(ctx, &model.Student{}, substr)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (s *DirectoryService) search(ctx context.Context, table interface{}, substr string) ([]DirectoryEntry, error) {
	var rows []DirectoryEntry
	err := s.db.WithContext(ctx).
		Model(table).
		Select("id", "email").
		Where(`email LIKE ? ESCAPE '\'`, "%"+likeEscaper.Replace(substr)+"%").
		Order("id").
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	// LIKE folds case on some databases
	out := make([]DirectoryEntry, 0, len(rows))
	for _, r := range rows {
		if strings.Contains(r.Email, substr) {
			out = append(out, r)
		}
	}
	return out, nil
}
