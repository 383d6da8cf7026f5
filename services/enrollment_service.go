package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/google/uuid"
	"github.com/moringa/darasa-api/database"
	"github.com/moringa/darasa-api/model"
	"github.com/moringa/darasa-api/services/payment"
	"github.com/moringa/darasa-api/utils/apperrors"
	"github.com/moringa/darasa-api/utils/logger"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CheckoutURLs are the pages the payment provider returns the buyer to
type CheckoutURLs struct {
	Success  string
	Cancel   string
	Currency string
}

// EnrollmentService opens checkout sessions and records enrollments
type EnrollmentService struct {
	db      *gorm.DB
	gateway payment.Gateway
	urls    CheckoutURLs
}

// NewEnrollmentService creates a new enrollment service
func NewEnrollmentService(db *gorm.DB, gateway payment.Gateway, urls CheckoutURLs) *EnrollmentService {
	if urls.Currency == "" {
		urls.Currency = "usd"
	}
	return &EnrollmentService{db: db, gateway: gateway, urls: urls}
}

var errAlreadyEnrolled = apperrors.Conflict("already enrolled in this course")

// Checkout opens a hosted payment session for course and enrolls the
// student. The enrollment and the session record are written together.
func (s *EnrollmentService) Checkout(ctx context.Context, student *model.Student, courseID uint) (*model.CheckoutSession, error) {
	db := s.db.WithContext(ctx)

	var course model.Course
	if err := db.First(&course, courseID).Error; err != nil {
		return nil, database.TranslateError(err, fmt.Sprintf("course %d not found", courseID), "")
	}

	enrolled, err := s.IsEnrolled(ctx, student.ID, course.ID)
	if err != nil {
		return nil, err
	}
	if enrolled {
		return nil, errAlreadyEnrolled
	}

	orderID := uuid.New().String()
	amount := payment.ChargeAmount(course.Price)

	session, err := s.gateway.CreateCheckout(ctx, payment.CheckoutRequest{
		OrderID:       orderID,
		CourseID:      course.ID,
		CourseTitle:   course.Title,
		Amount:        amount,
		Currency:      s.urls.Currency,
		CustomerName:  student.Username,
		CustomerEmail: student.Email,
		SuccessURL:    withQuery(s.urls.Success, course.ID, orderID),
		CancelURL:     s.urls.Cancel,
	})
	if err != nil {
		return nil, apperrors.Upstream("payment provider unavailable", err)
	}

	record := model.CheckoutSession{
		OrderID:        orderID,
		StudentID:      student.ID,
		CourseID:       course.ID,
		CourseTitle:    course.Title,
		Amount:         amount,
		Currency:       s.urls.Currency,
		Status:         model.CheckoutStatusOpen,
		GatewayToken:   session.Token,
		RedirectURL:    session.RedirectURL,
		GatewayPayload: datatypes.JSON(session.Raw),
	}

	// the provider session already exists here. A concurrent checkout can
	// still win the enrollment, so the loser's order is kept as expired.
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&model.StudentCourse{StudentID: student.ID, CourseID: course.ID}).Error; err != nil {
			return err
		}
		return tx.Create(&record).Error
	})
	if err != nil {
		if database.IsUniqueViolation(err) {
			s.abandon(ctx, record)
			return nil, errAlreadyEnrolled
		}
		return nil, apperrors.Internal(err)
	}

	logger.Info().
		Uint("student_id", student.ID).
		Uint("course_id", course.ID).
		Str("order_id", orderID).
		Int64("amount", amount).
		Msg("checkout session opened")

	return &record, nil
}

// abandon records an order whose enrollment was taken by a concurrent
// checkout. The provider page stays reachable until it times out.
func (s *EnrollmentService) abandon(ctx context.Context, record model.CheckoutSession) {
	record.ID = 0
	record.Status = model.CheckoutStatusExpired

	log := logger.Warn().
		Uint("student_id", record.StudentID).
		Uint("course_id", record.CourseID).
		Str("order_id", record.OrderID)

	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		log.Err(err).Msg("failed to record abandoned checkout session")
		return
	}
	log.Msg("checkout lost enrollment race, session expired")
}

// IsEnrolled reports whether the student holds an enrollment for the course
func (s *EnrollmentService) IsEnrolled(ctx context.Context, studentID, courseID uint) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&model.StudentCourse{}).
		Where("student_id = ? AND course_id = ?", studentID, courseID).
		Count(&count).Error
	if err != nil {
		return false, apperrors.Internal(err)
	}
	return count > 0, nil
}

// Enrollment returns the enrollment with its course loaded
func (s *EnrollmentService) Enrollment(ctx context.Context, studentID, courseID uint) (*model.StudentCourse, error) {
	var enrollment model.StudentCourse
	err := s.db.WithContext(ctx).
		Preload("Course").
		Where("student_id = ? AND course_id = ?", studentID, courseID).
		First(&enrollment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("no enrollment for this course")
		}
		return nil, apperrors.Internal(err)
	}
	return &enrollment, nil
}

func withQuery(base string, courseID uint, orderID string) string {
	u, err := url.Parse(base)
	if err != nil || base == "" {
		return base
	}
	q := u.Query()
	q.Set("course_id", strconv.FormatUint(uint64(courseID), 10))
	q.Set("order_id", orderID)
	u.RawQuery = q.Encode()
	return u.String()
}
