package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"consulto/internal/domain"
	"consulto/internal/models"
	"consulto/internal/repository"
	"consulto/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newReviewFixture(repos repository.Repos) (*ReviewService, *testutil.IndexFake, *testutil.StorageFake, *testutil.MailerFake) {
	index := testutil.NewIndexFake()
	store := &testutil.StorageFake{}
	mail := &testutil.MailerFake{}
	notif := NewNotificationService(mail, "noreply@consulto.example.com")
	svc := NewReviewService(&testutil.TxMock{Repos: repos}, index, store, notif)
	return svc, index, store, mail
}

func pendingIdentityRequest() *models.IdentityRequest {
	image2 := "3/face.png"
	return &models.IdentityRequest{
		ID:            10,
		UserAccountID: 3,
		Kind:          domain.IdentityKindCreate,
		IdentityDetail: models.IdentityDetail{
			LastName:         "山田",
			FirstName:        "太郎",
			LastNameFurigana: "ヤマダ",
		},
		Image1Key:   "3/license.png",
		Image2Key:   &image2,
		RequestedAt: time.Date(2024, 2, 1, 9, 0, 0, 0, domain.JST),
	}
}

func TestApproveIdentityRequest(t *testing.T) {
	req := pendingIdentityRequest()
	now := time.Date(2024, 2, 2, 9, 0, 0, 0, domain.JST)

	var (
		approved  *models.ApprovedIdentityRequest
		upserted  *models.Identity
		deletedID uint
	)
	requests := &testutil.RequestStoreMock{
		GetIdentityRequestByIDFn:  func(ctx context.Context, id uint) (*models.IdentityRequest, error) { return req, nil },
		LockIdentityRequestByIDFn: func(ctx context.Context, id uint) (*models.IdentityRequest, error) { return req, nil },
		CreateApprovedIdentityRequestFn: func(ctx context.Context, rec *models.ApprovedIdentityRequest) error {
			approved = rec
			return nil
		},
		DeleteIdentityRequestFn: func(ctx context.Context, id uint) error {
			deletedID = id
			return nil
		},
	}
	users := &testutil.UserStoreMock{
		LockByIDShareFn: func(ctx context.Context, id uint) (*models.User, error) {
			return &models.User{ID: 3, Email: "actor@example.com", Role: domain.RoleUser}, nil
		},
	}
	identities := &testutil.IdentityStoreMock{
		UpsertFn: func(ctx context.Context, identity *models.Identity) error {
			upserted = identity
			return nil
		},
	}
	svc, _, store, mail := newReviewFixture(repository.Repos{Users: users, Requests: requests, Identities: identities})

	outcome, err := svc.ApproveIdentityRequest(context.Background(), 10, "admin@example.com", now)
	require.NoError(t, err)
	assert.Equal(t, OutcomeApproved, outcome)

	require.NotNil(t, approved)
	assert.Equal(t, uint(3), approved.UserAccountID)
	assert.Equal(t, "admin@example.com", approved.ApprovedBy)
	assert.Equal(t, now, approved.ApprovedAt)
	assert.Equal(t, req.RequestedAt, approved.RequestedAt)

	require.NotNil(t, upserted)
	assert.Equal(t, "山田", upserted.LastName)
	assert.Equal(t, uint(10), deletedID)

	assert.Equal(t, []string{"3/license.png", "3/face.png"}, store.Deleted)
	require.Len(t, mail.Sent, 1)
	assert.Equal(t, "actor@example.com", mail.Sent[0].To)
	assert.Equal(t, "Identity request approved", mail.Sent[0].Subject)
}

// A storage failure after commit surfaces as an error, but the review itself
// already happened: the terminal record exists, the pending row is gone and
// the outcome reports the approval.
func TestApproveIdentityRequestStorageFailureSurfaces(t *testing.T) {
	req := pendingIdentityRequest()

	var terminalWritten bool
	var deletedID uint
	requests := &testutil.RequestStoreMock{
		GetIdentityRequestByIDFn:  func(ctx context.Context, id uint) (*models.IdentityRequest, error) { return req, nil },
		LockIdentityRequestByIDFn: func(ctx context.Context, id uint) (*models.IdentityRequest, error) { return req, nil },
		CreateApprovedIdentityRequestFn: func(ctx context.Context, rec *models.ApprovedIdentityRequest) error {
			terminalWritten = true
			return nil
		},
		DeleteIdentityRequestFn: func(ctx context.Context, id uint) error {
			deletedID = id
			return nil
		},
	}
	users := &testutil.UserStoreMock{
		LockByIDShareFn: func(ctx context.Context, id uint) (*models.User, error) {
			return &models.User{ID: 3, Email: "actor@example.com", Role: domain.RoleUser}, nil
		},
	}
	identities := &testutil.IdentityStoreMock{
		UpsertFn: func(ctx context.Context, identity *models.Identity) error { return nil },
	}
	svc, _, store, mail := newReviewFixture(repository.Repos{Users: users, Requests: requests, Identities: identities})
	store.DeleteErr = assert.AnError

	outcome, err := svc.ApproveIdentityRequest(context.Background(), 10, "admin@example.com", time.Now())
	require.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, OutcomeApproved, outcome)
	assert.True(t, terminalWritten)
	assert.Equal(t, uint(10), deletedID)
	assert.Empty(t, mail.Sent)
}

// A mail failure likewise surfaces without undoing the approval; the images
// were already cleaned up by then.
func TestApproveIdentityRequestMailFailureSurfaces(t *testing.T) {
	req := pendingIdentityRequest()

	var terminalWritten bool
	var deletedID uint
	requests := &testutil.RequestStoreMock{
		GetIdentityRequestByIDFn:  func(ctx context.Context, id uint) (*models.IdentityRequest, error) { return req, nil },
		LockIdentityRequestByIDFn: func(ctx context.Context, id uint) (*models.IdentityRequest, error) { return req, nil },
		CreateApprovedIdentityRequestFn: func(ctx context.Context, rec *models.ApprovedIdentityRequest) error {
			terminalWritten = true
			return nil
		},
		DeleteIdentityRequestFn: func(ctx context.Context, id uint) error {
			deletedID = id
			return nil
		},
	}
	users := &testutil.UserStoreMock{
		LockByIDShareFn: func(ctx context.Context, id uint) (*models.User, error) {
			return &models.User{ID: 3, Email: "actor@example.com", Role: domain.RoleUser}, nil
		},
	}
	identities := &testutil.IdentityStoreMock{
		UpsertFn: func(ctx context.Context, identity *models.Identity) error { return nil },
	}
	svc, _, store, mail := newReviewFixture(repository.Repos{Users: users, Requests: requests, Identities: identities})
	mail.SendErr = assert.AnError

	outcome, err := svc.ApproveIdentityRequest(context.Background(), 10, "admin@example.com", time.Now())
	require.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, OutcomeApproved, outcome)
	assert.True(t, terminalWritten)
	assert.Equal(t, uint(10), deletedID)
	assert.Equal(t, []string{"3/license.png", "3/face.png"}, store.Deleted)
}

func TestApproveIdentityRequestSkipsDisabledActor(t *testing.T) {
	req := pendingIdentityRequest()
	disabledAt := time.Now()

	var terminalWritten, deleted bool
	requests := &testutil.RequestStoreMock{
		GetIdentityRequestByIDFn:  func(ctx context.Context, id uint) (*models.IdentityRequest, error) { return req, nil },
		LockIdentityRequestByIDFn: func(ctx context.Context, id uint) (*models.IdentityRequest, error) { return req, nil },
		CreateApprovedIdentityRequestFn: func(ctx context.Context, rec *models.ApprovedIdentityRequest) error {
			terminalWritten = true
			return nil
		},
		DeleteIdentityRequestFn: func(ctx context.Context, id uint) error {
			deleted = true
			return nil
		},
	}
	users := &testutil.UserStoreMock{
		LockByIDShareFn: func(ctx context.Context, id uint) (*models.User, error) {
			return &models.User{ID: 3, Email: "actor@example.com", DisabledAt: &disabledAt}, nil
		},
	}
	svc, _, store, mail := newReviewFixture(repository.Repos{Users: users, Requests: requests})

	outcome, err := svc.ApproveIdentityRequest(context.Background(), 10, "admin@example.com", time.Now())
	require.NoError(t, err)
	assert.Equal(t, OutcomeSkipped, outcome)
	assert.True(t, deleted)
	assert.False(t, terminalWritten)
	assert.Empty(t, mail.Sent)
	// Evidence images are still cleaned up on a skip.
	assert.Len(t, store.Deleted, 2)
}

func TestApproveIdentityRequestSkipsDeletedActor(t *testing.T) {
	req := pendingIdentityRequest()

	var deleted bool
	requests := &testutil.RequestStoreMock{
		GetIdentityRequestByIDFn:  func(ctx context.Context, id uint) (*models.IdentityRequest, error) { return req, nil },
		LockIdentityRequestByIDFn: func(ctx context.Context, id uint) (*models.IdentityRequest, error) { return req, nil },
		DeleteIdentityRequestFn: func(ctx context.Context, id uint) error {
			deleted = true
			return nil
		},
	}
	users := &testutil.UserStoreMock{
		LockByIDShareFn: func(ctx context.Context, id uint) (*models.User, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	svc, _, _, mail := newReviewFixture(repository.Repos{Users: users, Requests: requests})

	outcome, err := svc.ApproveIdentityRequest(context.Background(), 10, "admin@example.com", time.Now())
	require.NoError(t, err)
	assert.Equal(t, OutcomeSkipped, outcome)
	assert.True(t, deleted)
	assert.Empty(t, mail.Sent)
}

func TestApproveIdentityRequestGone(t *testing.T) {
	requests := &testutil.RequestStoreMock{
		GetIdentityRequestByIDFn: func(ctx context.Context, id uint) (*models.IdentityRequest, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	svc, _, _, _ := newReviewFixture(repository.Repos{Requests: requests})

	_, err := svc.ApproveIdentityRequest(context.Background(), 10, "admin@example.com", time.Now())
	assert.ErrorIs(t, err, ErrRequestNotFound)
}

// A request that disappears between the plain read and the lock re-read means
// a concurrent reviewer already finished it.
func TestApproveIdentityRequestLostRace(t *testing.T) {
	req := pendingIdentityRequest()
	requests := &testutil.RequestStoreMock{
		GetIdentityRequestByIDFn: func(ctx context.Context, id uint) (*models.IdentityRequest, error) { return req, nil },
		LockIdentityRequestByIDFn: func(ctx context.Context, id uint) (*models.IdentityRequest, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	users := &testutil.UserStoreMock{
		LockByIDShareFn: func(ctx context.Context, id uint) (*models.User, error) {
			return &models.User{ID: 3, Email: "actor@example.com"}, nil
		},
	}
	svc, _, _, _ := newReviewFixture(repository.Repos{Users: users, Requests: requests})

	_, err := svc.ApproveIdentityRequest(context.Background(), 10, "admin@example.com", time.Now())
	assert.ErrorIs(t, err, ErrRequestNotFound)
}

func TestRejectIdentityRequestReasonValidation(t *testing.T) {
	svc, _, _, _ := newReviewFixture(repository.Repos{})

	_, err := svc.RejectIdentityRequest(context.Background(), 10, "admin@example.com", "   ", time.Now())
	assert.ErrorIs(t, err, ErrInvalidReason)

	_, err = svc.RejectIdentityRequest(context.Background(), 10, "admin@example.com", strings.Repeat("x", 256), time.Now())
	assert.ErrorIs(t, err, ErrInvalidReason)

	// The limit counts characters, not bytes.
	_, err = svc.RejectIdentityRequest(context.Background(), 10, "admin@example.com", strings.Repeat("あ", 256), time.Now())
	assert.ErrorIs(t, err, ErrInvalidReason)
}

// A multibyte reason within the 255-character column limit is accepted even
// though its byte length is far larger.
func TestRejectIdentityRequestMultibyteReason(t *testing.T) {
	req := pendingIdentityRequest()
	reason := strings.Repeat("本人確認書類の画像が不鮮明なため再提出をお願いします。", 9)
	require.Equal(t, 243, len([]rune(reason)))

	var rejected *models.RejectedIdentityRequest
	requests := &testutil.RequestStoreMock{
		GetIdentityRequestByIDFn:  func(ctx context.Context, id uint) (*models.IdentityRequest, error) { return req, nil },
		LockIdentityRequestByIDFn: func(ctx context.Context, id uint) (*models.IdentityRequest, error) { return req, nil },
		CreateRejectedIdentityRequestFn: func(ctx context.Context, rec *models.RejectedIdentityRequest) error {
			rejected = rec
			return nil
		},
		DeleteIdentityRequestFn: func(ctx context.Context, id uint) error { return nil },
	}
	users := &testutil.UserStoreMock{
		LockByIDShareFn: func(ctx context.Context, id uint) (*models.User, error) {
			return &models.User{ID: 3, Email: "actor@example.com"}, nil
		},
	}
	svc, _, _, _ := newReviewFixture(repository.Repos{Users: users, Requests: requests})

	outcome, err := svc.RejectIdentityRequest(context.Background(), 10, "admin@example.com", reason, time.Now())
	require.NoError(t, err)
	assert.Equal(t, OutcomeRejected, outcome)
	require.NotNil(t, rejected)
	assert.Equal(t, reason, rejected.Reason)
}

func TestRejectIdentityRequest(t *testing.T) {
	req := pendingIdentityRequest()
	now := time.Date(2024, 2, 2, 9, 0, 0, 0, domain.JST)

	var rejected *models.RejectedIdentityRequest
	requests := &testutil.RequestStoreMock{
		GetIdentityRequestByIDFn:  func(ctx context.Context, id uint) (*models.IdentityRequest, error) { return req, nil },
		LockIdentityRequestByIDFn: func(ctx context.Context, id uint) (*models.IdentityRequest, error) { return req, nil },
		CreateRejectedIdentityRequestFn: func(ctx context.Context, rec *models.RejectedIdentityRequest) error {
			rejected = rec
			return nil
		},
		DeleteIdentityRequestFn: func(ctx context.Context, id uint) error { return nil },
	}
	users := &testutil.UserStoreMock{
		LockByIDShareFn: func(ctx context.Context, id uint) (*models.User, error) {
			return &models.User{ID: 3, Email: "actor@example.com"}, nil
		},
	}
	svc, _, _, mail := newReviewFixture(repository.Repos{Users: users, Requests: requests})

	outcome, err := svc.RejectIdentityRequest(context.Background(), 10, "admin@example.com", "  blurry image  ", now)
	require.NoError(t, err)
	assert.Equal(t, OutcomeRejected, outcome)
	require.NotNil(t, rejected)
	assert.Equal(t, "blurry image", rejected.Reason)
	require.Len(t, mail.Sent, 1)
	assert.Contains(t, mail.Sent[0].Body, "blurry image")
}

func pendingCareerRequest() *models.CareerRequest {
	return &models.CareerRequest{
		ID:            20,
		UserAccountID: 5,
		CareerDetail: models.CareerDetail{
			CompanyName:     "Acme Inc",
			ContractType:    "FULL_TIME",
			CareerStartDate: time.Date(2018, 4, 1, 0, 0, 0, 0, domain.JST),
		},
		Image1Key:   "5/contract.png",
		RequestedAt: time.Date(2024, 2, 1, 9, 0, 0, 0, domain.JST),
	}
}

func careerReviewRepos(t *testing.T, existingDoc *models.Document) (repository.Repos, *[]models.Career) {
	t.Helper()
	req := pendingCareerRequest()
	careers := &[]models.Career{}

	requests := &testutil.RequestStoreMock{
		GetCareerRequestByIDFn:  func(ctx context.Context, id uint) (*models.CareerRequest, error) { return req, nil },
		LockCareerRequestByIDFn: func(ctx context.Context, id uint) (*models.CareerRequest, error) { return req, nil },
		CreateApprovedCareerRequestFn: func(ctx context.Context, rec *models.ApprovedCareerRequest) error {
			return nil
		},
		DeleteCareerRequestFn: func(ctx context.Context, id uint) error { return nil },
	}
	users := &testutil.UserStoreMock{
		LockByIDShareFn: func(ctx context.Context, id uint) (*models.User, error) {
			return &models.User{
				ID:              5,
				Email:           "consultant@example.com",
				Role:            domain.RoleConsultant,
				FeePerHourInYen: 3000,
			}, nil
		},
	}
	careerStore := &testutil.CareerStoreMock{
		CreateFn: func(ctx context.Context, c *models.Career) error {
			c.ID = uint(len(*careers) + 1)
			*careers = append(*careers, *c)
			return nil
		},
		ListByUserAccountIDFn: func(ctx context.Context, userAccountID uint) ([]models.Career, error) {
			return *careers, nil
		},
	}
	documents := &testutil.DocumentStoreMock{
		GetByUserAccountIDFn: func(ctx context.Context, userAccountID uint) (*models.Document, error) {
			if existingDoc == nil {
				return nil, gorm.ErrRecordNotFound
			}
			return existingDoc, nil
		},
		CreateFn: func(ctx context.Context, d *models.Document) error { return nil },
	}
	return repository.Repos{Users: users, Requests: requests, Careers: careerStore, Documents: documents}, careers
}

func TestApproveCareerRequestCreatesDocument(t *testing.T) {
	repos, careers := careerReviewRepos(t, nil)
	svc, index, _, mail := newReviewFixture(repos)

	outcome, err := svc.ApproveCareerRequest(context.Background(), 20, "admin@example.com", time.Now())
	require.NoError(t, err)
	assert.Equal(t, OutcomeApproved, outcome)
	require.Len(t, *careers, 1)

	// First promotion creates the full document.
	require.Len(t, index.Created, 1)
	for _, doc := range index.Created {
		assert.Equal(t, uint(5), doc.UserAccountID)
		assert.Equal(t, 1, doc.NumOfCareers)
		assert.Equal(t, 3000, doc.FeePerHourInYen)
		require.Len(t, doc.Careers, 1)
		assert.Equal(t, "Acme Inc", doc.Careers[0].CompanyName)
	}
	require.Len(t, mail.Sent, 1)
	assert.Equal(t, "Career request approved", mail.Sent[0].Subject)
}

func TestApproveCareerRequestAppendsToExistingDocument(t *testing.T) {
	doc := &models.Document{UserAccountID: 5, DocumentID: "deadbeefdeadbeefdeadbeefdeadbeef"}
	repos, _ := careerReviewRepos(t, doc)
	svc, index, _, _ := newReviewFixture(repos)

	outcome, err := svc.ApproveCareerRequest(context.Background(), 20, "admin@example.com", time.Now())
	require.NoError(t, err)
	assert.Equal(t, OutcomeApproved, outcome)

	assert.Empty(t, index.Created)
	require.Len(t, index.Careers[doc.DocumentID], 1)
	assert.Equal(t, "Acme Inc", index.Careers[doc.DocumentID][0].CompanyName)
}

// A failing index sync never surfaces: the database is the source of truth
// and the index is patched best-effort.
func TestApproveCareerRequestIndexFailureIsSwallowed(t *testing.T) {
	doc := &models.Document{UserAccountID: 5, DocumentID: "deadbeefdeadbeefdeadbeefdeadbeef"}
	repos, _ := careerReviewRepos(t, doc)
	svc, index, _, mail := newReviewFixture(repos)
	index.AddErr = assert.AnError

	outcome, err := svc.ApproveCareerRequest(context.Background(), 20, "admin@example.com", time.Now())
	require.NoError(t, err)
	assert.Equal(t, OutcomeApproved, outcome)
	require.Len(t, mail.Sent, 1)
}
