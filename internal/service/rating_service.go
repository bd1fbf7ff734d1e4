package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"consulto/internal/domain"
	"consulto/internal/models"
	"consulto/internal/repository"
	"consulto/pkg/searchindex"

	"gorm.io/gorm"
)

// RatingService records a single rating per consultation per direction. The
// stored value moves from NULL to a fixed integer exactly once; a second
// attempt is rejected with a conflict, never overwritten. The aggregate on
// the search index is patched after commit, best-effort.
type RatingService struct {
	tx    repository.TxManager
	repos repository.Repos
	index searchindex.Client
}

func NewRatingService(tx repository.TxManager, repos repository.Repos, index searchindex.Client) *RatingService {
	return &RatingService{tx: tx, repos: repos, index: index}
}

// RateConsultant is the user's rating of the consultant.
func (s *RatingService) RateConsultant(ctx context.Context, consultationID, raterID uint, rating int, now time.Time) error {
	consultation, err := s.loadRatableConsultation(ctx, consultationID, rating, now)
	if err != nil {
		return err
	}
	if consultation.UserAccountID != raterID {
		return ErrNotParticipant
	}
	err = s.tx.WithinTx(ctx, func(r repository.Repos) error {
		// Exclusive lock on the rated party. A consultant who deleted their
		// account is tolerated: the rating row still gets written.
		if _, err := r.Users.LockByID(ctx, consultation.ConsultantID); err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			log.Printf("[RATING] consultant %d gone while rating consultation %d", consultation.ConsultantID, consultationID)
		}
		row, err := r.Ratings.GetConsultantRatingByConsultationID(ctx, consultationID)
		if err != nil {
			return asRatingNotFound(err)
		}
		if row.Rating != nil {
			return ErrAlreadyRated
		}
		row.Rating = &rating
		row.RatedAt = &now
		return r.Ratings.SaveConsultantRating(ctx, row)
	})
	if err != nil {
		return err
	}
	s.syncConsultantRating(ctx, consultation.ConsultantID)
	return nil
}

// RateUser is the consultant's rating of the user. Users have no search
// document, so no index patch follows.
func (s *RatingService) RateUser(ctx context.Context, consultationID, raterID uint, rating int, now time.Time) error {
	consultation, err := s.loadRatableConsultation(ctx, consultationID, rating, now)
	if err != nil {
		return err
	}
	if consultation.ConsultantID != raterID {
		return ErrNotParticipant
	}
	return s.tx.WithinTx(ctx, func(r repository.Repos) error {
		if _, err := r.Users.LockByID(ctx, consultation.UserAccountID); err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			log.Printf("[RATING] user %d gone while rating consultation %d", consultation.UserAccountID, consultationID)
		}
		row, err := r.Ratings.GetUserRatingByConsultationID(ctx, consultationID)
		if err != nil {
			return asRatingNotFound(err)
		}
		if row.Rating != nil {
			return ErrAlreadyRated
		}
		row.Rating = &rating
		row.RatedAt = &now
		return r.Ratings.SaveUserRating(ctx, row)
	})
}

func (s *RatingService) loadRatableConsultation(ctx context.Context, consultationID uint, rating int, now time.Time) (*models.Consultation, error) {
	if rating < domain.RatingMin || rating > domain.RatingMax {
		return nil, ErrInvalidRating
	}
	consultation, err := s.repos.Consultations.GetByID(ctx, consultationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConsultationNotFound
		}
		return nil, err
	}
	// Rating opens only after the meeting is over.
	if !consultation.MeetingEnd().Before(now) {
		return nil, ErrMeetingNotEnded
	}
	return consultation, nil
}

// syncConsultantRating recomputes the aggregate and patches the consultant's
// document. The rating transaction already committed; a disabled account or a
// missing document is an accepted consistency gap, logged and skipped.
func (s *RatingService) syncConsultantRating(ctx context.Context, consultantID uint) {
	values, err := s.repos.Ratings.ListConsultantRatingValues(ctx, consultantID)
	if err != nil {
		log.Printf("[RATING] aggregate for consultant %d: %v", consultantID, err)
		return
	}
	average, count := AverageRating(values)
	consultant, err := s.repos.Users.GetByID(ctx, consultantID)
	if err != nil || consultant.IsDisabled() {
		log.Printf("[RATING] consultant %d unavailable, index patch skipped", consultantID)
		return
	}
	doc, err := s.repos.Documents.GetByUserAccountID(ctx, consultantID)
	if err != nil {
		log.Printf("[RATING] no document for consultant %d, index patch skipped", consultantID)
		return
	}
	if err := s.index.UpdateRating(ctx, doc.DocumentID, average, count); err != nil {
		log.Printf("[INDEX] patch rating on document %s: %v", doc.DocumentID, err)
	}
}

// AverageRating returns the unrounded mean and the count. Zero values when no
// rating exists yet.
func AverageRating(values []int) (float64, int) {
	if len(values) == 0 {
		return 0, 0
	}
	sum := 0
	for _, v := range values {
		sum += v
	}
	return float64(sum) / float64(len(values)), len(values)
}

// FormatRating rounds to one decimal for display only; the stored and
// indexed value stays unrounded.
func FormatRating(average float64) string {
	return fmt.Sprintf("%.1f", average)
}

func asRatingNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrRatingNotFound
	}
	return err
}
