package handler

import (
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"net/http"
	"time"

	"consulto/internal/domain"
	"consulto/internal/middleware"
	"consulto/internal/models"
	"consulto/internal/repository"
	"consulto/pkg/id"
	"consulto/pkg/storage"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RequestHandler accepts identity and career submissions. Evidence images go
// to object storage first; the pending row is only written once the uploads
// succeeded, so a row never points at a missing image.
type RequestHandler struct {
	requests   repository.RequestStore
	identities repository.IdentityStore
	storage    storage.Client
}

func NewRequestHandler(requests repository.RequestStore, identities repository.IdentityStore, store storage.Client) *RequestHandler {
	return &RequestHandler{requests: requests, identities: identities, storage: store}
}

type identityForm struct {
	LastName          string  `form:"last_name" binding:"required,max=64"`
	FirstName         string  `form:"first_name" binding:"required,max=64"`
	LastNameFurigana  string  `form:"last_name_furigana" binding:"required,max=64"`
	FirstNameFurigana string  `form:"first_name_furigana" binding:"required,max=64"`
	DateOfBirth       string  `form:"date_of_birth" binding:"required"` // YYYY-MM-DD
	Prefecture        string  `form:"prefecture" binding:"required,max=32"`
	City              string  `form:"city" binding:"required,max=64"`
	AddressLine1      string  `form:"address_line1" binding:"required,max=128"`
	AddressLine2      *string `form:"address_line2"`
	TelephoneNumber   string  `form:"telephone_number" binding:"required,max=13"`
}

// SubmitIdentity handles POST /requests/identity (multipart). image1 is
// required, image2 optional. Kind is derived: UPDATE when an approved
// identity already exists, CREATE otherwise.
func (h *RequestHandler) SubmitIdentity(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var form identityForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	dob, err := time.Parse("2006-01-02", form.DateOfBirth)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date_of_birth format (use YYYY-MM-DD)"})
		return
	}
	image1, err := c.FormFile("image1")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image1 required"})
		return
	}
	image2, _ := c.FormFile("image2")

	key1, key2, err := h.uploadEvidence(c, userID, image1, image2)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "image upload failed"})
		return
	}

	kind := domain.IdentityKindCreate
	if _, err := h.identities.GetByUserAccountID(c.Request.Context(), userID); err == nil {
		kind = domain.IdentityKindUpdate
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "submission failed"})
		return
	}

	req := &models.IdentityRequest{
		UserAccountID: userID,
		Kind:          kind,
		IdentityDetail: models.IdentityDetail{
			LastName:          form.LastName,
			FirstName:         form.FirstName,
			LastNameFurigana:  form.LastNameFurigana,
			FirstNameFurigana: form.FirstNameFurigana,
			DateOfBirth:       dob,
			Prefecture:        form.Prefecture,
			City:              form.City,
			AddressLine1:      form.AddressLine1,
			AddressLine2:      form.AddressLine2,
			TelephoneNumber:   form.TelephoneNumber,
		},
		Image1Key:   key1,
		Image2Key:   key2,
		RequestedAt: time.Now(),
	}
	if err := h.requests.CreateIdentityRequest(c.Request.Context(), req); err != nil {
		log.Printf("[REQUEST] create identity request user=%d: %v", userID, err)
		c.JSON(http.StatusConflict, gin.H{"error": "a pending identity request already exists"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"request": req})
}

type careerForm struct {
	CompanyName          string  `form:"company_name" binding:"required,max=128"`
	DepartmentName       *string `form:"department_name"`
	Office               *string `form:"office"`
	CareerStartDate      string  `form:"career_start_date" binding:"required"` // YYYY-MM-DD
	CareerEndDate        *string `form:"career_end_date"`
	ContractType         string  `form:"contract_type" binding:"required,max=20"`
	Profession           *string `form:"profession"`
	AnnualIncomeInManYen *int    `form:"annual_income_in_man_yen"`
	IsManager            bool    `form:"is_manager"`
	PositionName         *string `form:"position_name"`
	IsNewGraduate        bool    `form:"is_new_graduate"`
	Note                 *string `form:"note"`
}

// SubmitCareer handles POST /requests/career (multipart).
func (h *RequestHandler) SubmitCareer(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var form careerForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	start, err := time.Parse("2006-01-02", form.CareerStartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid career_start_date format (use YYYY-MM-DD)"})
		return
	}
	var end *time.Time
	if form.CareerEndDate != nil && *form.CareerEndDate != "" {
		t, err := time.Parse("2006-01-02", *form.CareerEndDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid career_end_date format (use YYYY-MM-DD)"})
			return
		}
		end = &t
	}
	image1, err := c.FormFile("image1")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image1 required"})
		return
	}
	image2, _ := c.FormFile("image2")

	key1, key2, err := h.uploadEvidence(c, userID, image1, image2)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "image upload failed"})
		return
	}

	req := &models.CareerRequest{
		UserAccountID: userID,
		CareerDetail: models.CareerDetail{
			CompanyName:          form.CompanyName,
			DepartmentName:       form.DepartmentName,
			Office:               form.Office,
			CareerStartDate:      start,
			CareerEndDate:        end,
			ContractType:         form.ContractType,
			Profession:           form.Profession,
			AnnualIncomeInManYen: form.AnnualIncomeInManYen,
			IsManager:            form.IsManager,
			PositionName:         form.PositionName,
			IsNewGraduate:        form.IsNewGraduate,
			Note:                 form.Note,
		},
		Image1Key:   key1,
		Image2Key:   key2,
		RequestedAt: time.Now(),
	}
	if err := h.requests.CreateCareerRequest(c.Request.Context(), req); err != nil {
		log.Printf("[REQUEST] create career request user=%d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "submission failed"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"request": req})
}

func (h *RequestHandler) uploadEvidence(c *gin.Context, userID uint, image1, image2 *multipart.FileHeader) (string, *string, error) {
	key1, err := h.uploadOne(c, userID, image1)
	if err != nil {
		return "", nil, err
	}
	if image2 == nil {
		return key1, nil, nil
	}
	key2, err := h.uploadOne(c, userID, image2)
	if err != nil {
		return "", nil, err
	}
	return key1, &key2, nil
}

func (h *RequestHandler) uploadOne(c *gin.Context, userID uint, header *multipart.FileHeader) (string, error) {
	f, err := header.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()
	key := fmt.Sprintf("%d/%s.png", userID, id.New32())
	if err := h.storage.Upload(c.Request.Context(), key, f); err != nil {
		log.Printf("[STORAGE] upload %s: %v", key, err)
		return "", err
	}
	return key, nil
}
