package handler

import (
	"net/http"
	"time"

	"consulto/internal/middleware"
	"consulto/internal/repository"
	"consulto/internal/service"

	"github.com/gin-gonic/gin"
)

type RatingHandler struct {
	svc     *service.RatingService
	ratings repository.RatingStore
}

func NewRatingHandler(svc *service.RatingService, ratings repository.RatingStore) *RatingHandler {
	return &RatingHandler{svc: svc, ratings: ratings}
}

type rateRequest struct {
	Rating int `json:"rating" binding:"required,min=1,max=5"`
}

// RateConsultant handles POST /consultations/:id/rating/consultant — the user
// scoring the consultant after the meeting ended.
func (h *RatingHandler) RateConsultant(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req rateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.svc.RateConsultant(c.Request.Context(), id, middleware.GetUserID(c), req.Rating, time.Now()); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// RateUser handles POST /consultations/:id/rating/user — the consultant
// scoring the user.
func (h *RatingHandler) RateUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req rateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.svc.RateUser(c.Request.Context(), id, middleware.GetUserID(c), req.Rating, time.Now()); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ConsultantSummary handles GET /consultants/:id/rating — the display
// aggregate, rounded to one decimal.
func (h *RatingHandler) ConsultantSummary(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	values, err := h.ratings.ListConsultantRatingValues(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load ratings"})
		return
	}
	average, count := service.AverageRating(values)
	c.JSON(http.StatusOK, gin.H{
		"rating":       service.FormatRating(average),
		"num_of_rated": count,
	})
}
