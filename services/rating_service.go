package services

import (
	"errors"
	"math"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tutorbridge/volunteer_tutor/lifecycle"
	"github.com/tutorbridge/volunteer_tutor/models"
)

var (
	ErrNotSessionStudent   = errors.New("you are not the student for this session")
	ErrSessionNotCompleted = errors.New("reviews can only be submitted for completed sessions")
	ErrDuplicateReview     = errors.New("a review for this session has already been submitted")
)

// RatingService creates reviews and keeps the tutor's cached rating
// aggregates in sync with the review set.
type RatingService struct {
	DB *gorm.DB
}

func NewRatingService(db *gorm.DB) *RatingService {
	return &RatingService{DB: db}
}

// SubmitReview attaches the student's single review to a completed
// session and recomputes the tutor's aggregates in the same
// transaction.
func (s *RatingService) SubmitReview(sessionID, actorID uuid.UUID, rating int, comment string) (*models.Review, error) {
	var review models.Review
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var session models.Session
		if err := tx.First(&session, "id = ?", sessionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSessionNotFound
			}
			return err
		}
		if session.StudentID != actorID {
			return ErrNotSessionStudent
		}
		if session.Status != lifecycle.StatusCompleted {
			return ErrSessionNotCompleted
		}

		var existing models.Review
		err := tx.Where("session_id = ?", sessionID).First(&existing).Error
		if err == nil {
			return ErrDuplicateReview
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		review = models.Review{
			SessionID: session.ID,
			StudentID: actorID,
			TutorID:   session.TutorID,
			Rating:    rating,
			Comment:   comment,
		}
		if err := tx.Create(&review).Error; err != nil {
			return err
		}

		return recomputeAggregates(tx, session.TutorID)
	})
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// recomputeAggregates re-derives rating and total_reviews from the
// full review set rather than updating a running average, so the
// cached values can always be re-verified against the reviews table.
// The mean is rounded half-up to two decimal places.
func recomputeAggregates(tx *gorm.DB, tutorID uuid.UUID) error {
	var agg struct {
		Avg   float64
		Count int64
	}
	if err := tx.Model(&models.Review{}).
		Where("tutor_id = ?", tutorID).
		Select("COALESCE(AVG(rating), 0) AS avg, COUNT(*) AS count").
		Scan(&agg).Error; err != nil {
		return err
	}

	rounded := math.Round(agg.Avg*100) / 100

	return tx.Model(&models.TutorProfile{}).
		Where("user_id = ?", tutorID).
		Updates(map[string]interface{}{
			"rating":        rounded,
			"total_reviews": agg.Count,
		}).Error
}
