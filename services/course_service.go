package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/moringa/darasa-api/database"
	"github.com/moringa/darasa-api/model"
	"github.com/moringa/darasa-api/utils/apperrors"
	"gorm.io/gorm"
)

// CourseService owns the course catalogue and its modules
type CourseService struct {
	db *gorm.DB
}

// NewCourseService creates a new course service
func NewCourseService(db *gorm.DB) *CourseService {
	return &CourseService{db: db}
}

// ModuleInput is a module supplied when a course is created
type ModuleInput struct {
	Title string `json:"title" validate:"required"`
	Media string `json:"media" validate:"required"`
	Notes string `json:"notes"`
}

// CreateCourseRequest is the body of POST /courses/admin
type CreateCourseRequest struct {
	Title       string        `json:"title" validate:"required"`
	Description string        `json:"description" validate:"required"`
	Thumbnail   string        `json:"thumbnail"`
	Price       *float64      `json:"price" validate:"required,gte=0"`
	Modules     []ModuleInput `json:"modules" validate:"required,min=1,dive"`
}

// ModulePatch updates the module with ID, or appends a module when ID is nil
type ModulePatch struct {
	ID    *uint   `json:"id" validate:"omitempty,max=9223372036854775807"`
	Title *string `json:"title"`
	Media *string `json:"media"`
	Notes *string `json:"notes"`
}

// UpdateCourseRequest is the body of PATCH /courses/admin. Nil fields are
// left untouched.
type UpdateCourseRequest struct {
	CourseID    uint          `json:"course_id" validate:"required,max=9223372036854775807"`
	Title       *string       `json:"title"`
	Description *string       `json:"description"`
	Thumbnail   *string       `json:"thumbnail"`
	Price       *float64      `json:"price"`
	Modules     []ModulePatch `json:"modules" validate:"omitempty,dive"`
}

func courseNotFound(id uint) error {
	return apperrors.NotFound(fmt.Sprintf("course %d not found", id))
}

// ListCourses returns the whole catalogue in creation order
func (s *CourseService) ListCourses(ctx context.Context) ([]model.Course, error) {
	var courses []model.Course
	if err := s.db.WithContext(ctx).Order("id").Find(&courses).Error; err != nil {
		return nil, apperrors.Internal(err)
	}
	return courses, nil
}

// ListStudentCourses returns the courses a student is enrolled in
func (s *CourseService) ListStudentCourses(ctx context.Context, studentID uint) ([]model.Course, error) {
	var courses []model.Course
	err := s.db.WithContext(ctx).
		Joins("JOIN student_courses ON student_courses.course_id = courses.id").
		Where("student_courses.student_id = ?", studentID).
		Order("courses.id").
		Find(&courses).Error
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return courses, nil
}

// GetCourse loads a course with its owning admin and modules
func (s *CourseService) GetCourse(ctx context.Context, id uint) (*model.Course, error) {
	var course model.Course
	err := s.db.WithContext(ctx).
		Preload("Admin").
		Preload("Modules", func(db *gorm.DB) *gorm.DB { return db.Order("modules.id") }).
		First(&course, id).Error
	if err != nil {
		return nil, database.TranslateError(err, fmt.Sprintf("course %d not found", id), "")
	}
	return &course, nil
}

// ListModules returns a course's modules in insertion order
func (s *CourseService) ListModules(ctx context.Context, courseID uint) ([]model.Module, error) {
	db := s.db.WithContext(ctx)

	var count int64
	if err := db.Model(&model.Course{}).Where("id = ?", courseID).Count(&count).Error; err != nil {
		return nil, apperrors.Internal(err)
	}
	if count == 0 {
		return nil, courseNotFound(courseID)
	}

	var modules []model.Module
	if err := db.Where("course_id = ?", courseID).Order("id").Find(&modules).Error; err != nil {
		return nil, apperrors.Internal(err)
	}
	return modules, nil
}

// ListAdminCourses returns the courses an admin owns, modules included
func (s *CourseService) ListAdminCourses(ctx context.Context, adminID uint) ([]model.Course, error) {
	var courses []model.Course
	err := s.db.WithContext(ctx).
		Preload("Modules", func(db *gorm.DB) *gorm.DB { return db.Order("modules.id") }).
		Where("admin_id = ?", adminID).
		Order("id").
		Find(&courses).Error
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return courses, nil
}

// GetOwnedCourse loads a course and checks that adminID owns it
func (s *CourseService) GetOwnedCourse(ctx context.Context, adminID, courseID uint) (*model.Course, error) {
	return s.ownedCourse(s.db.WithContext(ctx), adminID, courseID)
}

func (s *CourseService) ownedCourse(tx *gorm.DB, adminID, courseID uint) (*model.Course, error) {
	var course model.Course
	if err := tx.First(&course, courseID).Error; err != nil {
		return nil, database.TranslateError(err, fmt.Sprintf("course %d not found", courseID), "")
	}
	if !course.OwnedBy(adminID) {
		return nil, apperrors.Unauthorized("you do not own this course")
	}
	return &course, nil
}

// CreateCourse stores the course, its modules and the owner link in one
// transaction
func (s *CourseService) CreateCourse(ctx context.Context, adminID uint, req CreateCourseRequest) (*model.Course, error) {
	course := model.Course{
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Thumbnail:   req.Thumbnail,
		Price:       *req.Price,
		AdminID:     adminID,
	}
	for _, m := range req.Modules {
		course.Modules = append(course.Modules, model.Module{
			Title: strings.TrimSpace(m.Title),
			Media: strings.TrimSpace(m.Media),
			Notes: m.Notes,
		})
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&course).Error; err != nil {
			return err
		}
		return tx.Create(&model.AdminCourse{AdminID: adminID, CourseID: course.ID}).Error
	})
	if err != nil {
		return nil, database.TranslateError(err, "", "course already exists")
	}

	return &course, nil
}

// UpdateCourse merges the supplied fields into an owned course. Module
// patches with an id must reference a module of this course.
func (s *CourseService) UpdateCourse(ctx context.Context, adminID uint, req UpdateCourseRequest) (*model.Course, error) {
	if err := validatePatch(req); err != nil {
		return nil, err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		course, err := s.ownedCourse(tx, adminID, req.CourseID)
		if err != nil {
			return err
		}

		updates := map[string]interface{}{}
		if req.Title != nil {
			updates["title"] = strings.TrimSpace(*req.Title)
		}
		if req.Description != nil {
			updates["description"] = *req.Description
		}
		if req.Thumbnail != nil {
			updates["thumbnail"] = *req.Thumbnail
		}
		if req.Price != nil {
			updates["price"] = *req.Price
		}
		if len(updates) > 0 {
			if err := tx.Model(course).Updates(updates).Error; err != nil {
				return err
			}
		}

		for _, patch := range req.Modules {
			if err := applyModulePatch(tx, course.ID, patch); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, database.TranslateError(err, "", "")
	}

	return s.GetCourse(ctx, req.CourseID)
}

func validatePatch(req UpdateCourseRequest) error {
	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		return apperrors.Validation("title cannot be empty")
	}
	if req.Price != nil && *req.Price < 0 {
		return apperrors.Validation("price must be greater than or equal to 0")
	}
	for i, m := range req.Modules {
		if m.ID == nil && (m.Title == nil || m.Media == nil || strings.TrimSpace(*m.Title) == "" || strings.TrimSpace(*m.Media) == "") {
			return apperrors.Validation(fmt.Sprintf("modules[%d]: new modules need a title and media", i))
		}
		if m.ID != nil && ((m.Title != nil && strings.TrimSpace(*m.Title) == "") || (m.Media != nil && strings.TrimSpace(*m.Media) == "")) {
			return apperrors.Validation(fmt.Sprintf("modules[%d]: title and media cannot be empty", i))
		}
	}
	return nil
}

func applyModulePatch(tx *gorm.DB, courseID uint, patch ModulePatch) error {
	if patch.ID == nil {
		module := model.Module{CourseID: courseID, Title: strings.TrimSpace(*patch.Title), Media: strings.TrimSpace(*patch.Media)}
		if patch.Notes != nil {
			module.Notes = *patch.Notes
		}
		return tx.Create(&module).Error
	}

	var module model.Module
	if err := tx.Where("id = ? AND course_id = ?", *patch.ID, courseID).First(&module).Error; err != nil {
		return database.TranslateError(err, fmt.Sprintf("module %d not found in course %d", *patch.ID, courseID), "")
	}

	updates := map[string]interface{}{}
	if patch.Title != nil {
		updates["title"] = strings.TrimSpace(*patch.Title)
	}
	if patch.Media != nil {
		updates["media"] = strings.TrimSpace(*patch.Media)
	}
	if patch.Notes != nil {
		updates["notes"] = *patch.Notes
	}
	if len(updates) == 0 {
		return nil
	}
	return tx.Model(&module).Updates(updates).Error
}

// DeleteCourse removes an owned course with its modules, enrollments and
// instructor links. Nothing is removed if any step fails.
func (s *CourseService) DeleteCourse(ctx context.Context, adminID, courseID uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		course, err := s.ownedCourse(tx, adminID, courseID)
		if err != nil {
			return err
		}

		if err := tx.Where("course_id = ?", course.ID).Delete(&model.Module{}).Error; err != nil {
			return err
		}
		if err := tx.Where("course_id = ?", course.ID).Delete(&model.StudentCourse{}).Error; err != nil {
			return err
		}
		if err := tx.Where("course_id = ?", course.ID).Delete(&model.AdminCourse{}).Error; err != nil {
			return err
		}
		return tx.Delete(course).Error
	})
	return database.TranslateError(err, "", "")
}

// SetThumbnail stores url on an owned course and returns the previous value
func (s *CourseService) SetThumbnail(ctx context.Context, adminID, courseID uint, url string) (string, error) {
	var previous string
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		course, err := s.ownedCourse(tx, adminID, courseID)
		if err != nil {
			return err
		}
		previous = course.Thumbnail
		return tx.Model(course).Update("thumbnail", url).Error
	})
	if err != nil {
		return "", database.TranslateError(err, "", "")
	}
	return previous, nil
}
