package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"consulto/internal/models"
	"consulto/internal/repository"
	"consulto/pkg/id"
	"consulto/pkg/searchindex"
	"consulto/pkg/storage"

	"gorm.io/gorm"
)

// ReviewOutcome is the terminal result of one review call.
type ReviewOutcome string

const (
	OutcomeApproved ReviewOutcome = "APPROVED"
	OutcomeRejected ReviewOutcome = "REJECTED"
	// OutcomeSkipped means the owning actor was deleted or disabled while the
	// request sat in the queue: the pending row is dropped, no terminal
	// record is written and no notification goes out.
	OutcomeSkipped ReviewOutcome = "SKIPPED"
)

// ReviewService moves a pending identity or career request to its approved or
// rejected terminal state exactly once under concurrent access.
//
// Every transition runs in one transaction with a fixed lock order: shared
// lock on the owning actor row, exclusive lock on the request row, then any
// dependent insert. Image deletion and mail dispatch happen after commit and
// are never rolled back.
type ReviewService struct {
	tx      repository.TxManager
	index   searchindex.Client
	storage storage.Client
	notif   *NotificationService
}

func NewReviewService(tx repository.TxManager, index searchindex.Client, store storage.Client, notif *NotificationService) *ReviewService {
	return &ReviewService{tx: tx, index: index, storage: store, notif: notif}
}

// validateReason rejects malformed rejection reasons before any lock is taken.
// The column limit is 255 characters, so the length is counted in runes.
func validateReason(reason string) error {
	trimmed := strings.TrimSpace(reason)
	if trimmed == "" || utf8.RuneCountInString(trimmed) > 255 {
		return ErrInvalidReason
	}
	return nil
}

func (s *ReviewService) ApproveIdentityRequest(ctx context.Context, requestID uint, approverEmail string, now time.Time) (ReviewOutcome, error) {
	var (
		skipped    bool
		actorEmail string
		imageKeys  []string
	)
	err := s.tx.WithinTx(ctx, func(r repository.Repos) error {
		req, err := r.Requests.GetIdentityRequestByID(ctx, requestID)
		if err != nil {
			return asRequestNotFound(err)
		}
		actor, err := lockActorShared(ctx, r, req.UserAccountID)
		if err != nil {
			return err
		}
		req, err = r.Requests.LockIdentityRequestByID(ctx, requestID)
		if err != nil {
			return asRequestNotFound(err)
		}
		imageKeys = collectImageKeys(req.Image1Key, req.Image2Key)
		if actor == nil || actor.IsDisabled() {
			skipped = true
			return r.Requests.DeleteIdentityRequest(ctx, req.ID)
		}
		rec := &models.ApprovedIdentityRequest{
			UserAccountID:  req.UserAccountID,
			Kind:           req.Kind,
			IdentityDetail: req.IdentityDetail,
			Image1Key:      req.Image1Key,
			Image2Key:      req.Image2Key,
			RequestedAt:    req.RequestedAt,
			ApprovedAt:     now,
			ApprovedBy:     approverEmail,
		}
		if err := r.Requests.CreateApprovedIdentityRequest(ctx, rec); err != nil {
			return err
		}
		identity := &models.Identity{
			UserAccountID:  req.UserAccountID,
			IdentityDetail: req.IdentityDetail,
		}
		if err := r.Identities.Upsert(ctx, identity); err != nil {
			return err
		}
		if err := r.Requests.DeleteIdentityRequest(ctx, req.ID); err != nil {
			return err
		}
		actorEmail = actor.Email
		return nil
	})
	if err != nil {
		return "", err
	}
	if skipped {
		return OutcomeSkipped, s.deleteImages(ctx, imageKeys)
	}
	if err := s.deleteImages(ctx, imageKeys); err != nil {
		return OutcomeApproved, err
	}
	if err := s.notif.NotifyIdentityApproved(actorEmail); err != nil {
		return OutcomeApproved, err
	}
	return OutcomeApproved, nil
}

func (s *ReviewService) RejectIdentityRequest(ctx context.Context, requestID uint, reviewerEmail, reason string, now time.Time) (ReviewOutcome, error) {
	if err := validateReason(reason); err != nil {
		return "", err
	}
	var (
		skipped    bool
		actorEmail string
		imageKeys  []string
	)
	err := s.tx.WithinTx(ctx, func(r repository.Repos) error {
		req, err := r.Requests.GetIdentityRequestByID(ctx, requestID)
		if err != nil {
			return asRequestNotFound(err)
		}
		actor, err := lockActorShared(ctx, r, req.UserAccountID)
		if err != nil {
			return err
		}
		req, err = r.Requests.LockIdentityRequestByID(ctx, requestID)
		if err != nil {
			return asRequestNotFound(err)
		}
		imageKeys = collectImageKeys(req.Image1Key, req.Image2Key)
		if actor == nil || actor.IsDisabled() {
			skipped = true
			return r.Requests.DeleteIdentityRequest(ctx, req.ID)
		}
		rec := &models.RejectedIdentityRequest{
			UserAccountID:  req.UserAccountID,
			Kind:           req.Kind,
			IdentityDetail: req.IdentityDetail,
			RequestedAt:    req.RequestedAt,
			RejectedAt:     now,
			RejectedBy:     reviewerEmail,
			Reason:         strings.TrimSpace(reason),
		}
		if err := r.Requests.CreateRejectedIdentityRequest(ctx, rec); err != nil {
			return err
		}
		if err := r.Requests.DeleteIdentityRequest(ctx, req.ID); err != nil {
			return err
		}
		actorEmail = actor.Email
		return nil
	})
	if err != nil {
		return "", err
	}
	if skipped {
		return OutcomeSkipped, s.deleteImages(ctx, imageKeys)
	}
	if err := s.deleteImages(ctx, imageKeys); err != nil {
		return OutcomeRejected, err
	}
	if err := s.notif.NotifyIdentityRejected(actorEmail, strings.TrimSpace(reason)); err != nil {
		return OutcomeRejected, err
	}
	return OutcomeRejected, nil
}

func (s *ReviewService) ApproveCareerRequest(ctx context.Context, requestID uint, approverEmail string, now time.Time) (ReviewOutcome, error) {
	var (
		skipped    bool
		actorEmail string
		imageKeys  []string
		syncIndex  func()
	)
	err := s.tx.WithinTx(ctx, func(r repository.Repos) error {
		req, err := r.Requests.GetCareerRequestByID(ctx, requestID)
		if err != nil {
			return asRequestNotFound(err)
		}
		actor, err := lockActorShared(ctx, r, req.UserAccountID)
		if err != nil {
			return err
		}
		req, err = r.Requests.LockCareerRequestByID(ctx, requestID)
		if err != nil {
			return asRequestNotFound(err)
		}
		imageKeys = collectImageKeys(req.Image1Key, req.Image2Key)
		if actor == nil || actor.IsDisabled() {
			skipped = true
			return r.Requests.DeleteCareerRequest(ctx, req.ID)
		}
		rec := &models.ApprovedCareerRequest{
			UserAccountID: req.UserAccountID,
			CareerDetail:  req.CareerDetail,
			Image1Key:     req.Image1Key,
			Image2Key:     req.Image2Key,
			RequestedAt:   req.RequestedAt,
			ApprovedAt:    now,
			ApprovedBy:    approverEmail,
		}
		if err := r.Requests.CreateApprovedCareerRequest(ctx, rec); err != nil {
			return err
		}
		career := &models.Career{
			UserAccountID: req.UserAccountID,
			CareerDetail:  req.CareerDetail,
		}
		if err := r.Careers.Create(ctx, career); err != nil {
			return err
		}
		if err := r.Requests.DeleteCareerRequest(ctx, req.ID); err != nil {
			return err
		}
		syncIndex, err = s.prepareIndexSync(ctx, r, actor, career)
		if err != nil {
			return err
		}
		actorEmail = actor.Email
		return nil
	})
	if err != nil {
		return "", err
	}
	if skipped {
		return OutcomeSkipped, s.deleteImages(ctx, imageKeys)
	}
	if syncIndex != nil {
		syncIndex()
	}
	if err := s.deleteImages(ctx, imageKeys); err != nil {
		return OutcomeApproved, err
	}
	if err := s.notif.NotifyCareerApproved(actorEmail); err != nil {
		return OutcomeApproved, err
	}
	return OutcomeApproved, nil
}

func (s *ReviewService) RejectCareerRequest(ctx context.Context, requestID uint, reviewerEmail, reason string, now time.Time) (ReviewOutcome, error) {
	if err := validateReason(reason); err != nil {
		return "", err
	}
	var (
		skipped    bool
		actorEmail string
		imageKeys  []string
	)
	err := s.tx.WithinTx(ctx, func(r repository.Repos) error {
		req, err := r.Requests.GetCareerRequestByID(ctx, requestID)
		if err != nil {
			return asRequestNotFound(err)
		}
		actor, err := lockActorShared(ctx, r, req.UserAccountID)
		if err != nil {
			return err
		}
		req, err = r.Requests.LockCareerRequestByID(ctx, requestID)
		if err != nil {
			return asRequestNotFound(err)
		}
		imageKeys = collectImageKeys(req.Image1Key, req.Image2Key)
		if actor == nil || actor.IsDisabled() {
			skipped = true
			return r.Requests.DeleteCareerRequest(ctx, req.ID)
		}
		rec := &models.RejectedCareerRequest{
			UserAccountID: req.UserAccountID,
			CareerDetail:  req.CareerDetail,
			RequestedAt:   req.RequestedAt,
			RejectedAt:    now,
			RejectedBy:    reviewerEmail,
			Reason:        strings.TrimSpace(reason),
		}
		if err := r.Requests.CreateRejectedCareerRequest(ctx, rec); err != nil {
			return err
		}
		if err := r.Requests.DeleteCareerRequest(ctx, req.ID); err != nil {
			return err
		}
		actorEmail = actor.Email
		return nil
	})
	if err != nil {
		return "", err
	}
	if skipped {
		return OutcomeSkipped, s.deleteImages(ctx, imageKeys)
	}
	if err := s.deleteImages(ctx, imageKeys); err != nil {
		return OutcomeRejected, err
	}
	if err := s.notif.NotifyCareerRejected(actorEmail, strings.TrimSpace(reason)); err != nil {
		return OutcomeRejected, err
	}
	return OutcomeRejected, nil
}

// prepareIndexSync decides create-vs-update from the Document pointer row.
// The pointer is written inside the promotion transaction; the index call
// itself runs after commit and its failure only leaves the index stale.
func (s *ReviewService) prepareIndexSync(ctx context.Context, r repository.Repos, actor *models.User, career *models.Career) (func(), error) {
	doc, err := r.Documents.GetByUserAccountID(ctx, actor.ID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if doc != nil {
		docID := doc.DocumentID
		entry := careerEntryOf(career)
		return func() {
			if err := s.index.AddCareer(ctx, docID, entry); err != nil {
				log.Printf("[INDEX] add career to document %s: %v", docID, err)
			}
		}, nil
	}
	docID := id.New32()
	pointer := &models.Document{UserAccountID: actor.ID, DocumentID: docID}
	if err := r.Documents.Create(ctx, pointer); err != nil {
		return nil, err
	}
	careers, err := r.Careers.ListByUserAccountID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	body := buildConsultantDocument(actor, careers)
	return func() {
		if err := s.index.CreateDocument(ctx, docID, body); err != nil {
			log.Printf("[INDEX] create document %s: %v", docID, err)
		}
	}, nil
}

// lockActorShared takes the shared lock on the owning actor. A missing actor
// is returned as nil rather than an error: the caller treats it as the
// skip-review policy, not a failure.
func lockActorShared(ctx context.Context, r repository.Repos, userAccountID uint) (*models.User, error) {
	actor, err := r.Users.LockByIDShare(ctx, userAccountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return actor, nil
}

func asRequestNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrRequestNotFound
	}
	return err
}

func collectImageKeys(key1 string, key2 *string) []string {
	keys := []string{key1}
	if key2 != nil && *key2 != "" {
		keys = append(keys, *key2)
	}
	return keys
}

// deleteImages removes request evidence from object storage. The review
// transaction already committed when this runs; a failure is logged and
// surfaced, but callers must not read it as "nothing changed".
func (s *ReviewService) deleteImages(ctx context.Context, keys []string) error {
	for _, key := range keys {
		if key == "" {
			continue
		}
		if err := s.storage.Delete(ctx, key); err != nil {
			log.Printf("[STORAGE] delete %s: %v", key, err)
			return fmt.Errorf("delete image %s: %w", key, err)
		}
	}
	return nil
}
