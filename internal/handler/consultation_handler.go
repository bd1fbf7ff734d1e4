package handler

import (
	"net/http"
	"time"

	"consulto/internal/middleware"
	"consulto/internal/service"

	"github.com/gin-gonic/gin"
)

type ConsultationHandler struct {
	svc     *service.ConsultationService
	roomSvc *service.RoomService
}

func NewConsultationHandler(svc *service.ConsultationService, roomSvc *service.RoomService) *ConsultationHandler {
	return &ConsultationHandler{svc: svc, roomSvc: roomSvc}
}

type bookRequest struct {
	ConsultantID uint   `json:"consultant_id" binding:"required"`
	MeetingAt    string `json:"meeting_at" binding:"required"` // RFC 3339
}

// Book handles POST /consultations.
func (h *ConsultationHandler) Book(c *gin.Context) {
	var req bookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	meetingAt, err := time.Parse(time.RFC3339, req.MeetingAt)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid meeting_at format (use RFC 3339)"})
		return
	}
	consultation, err := h.svc.Book(c.Request.Context(), middleware.GetUserID(c), req.ConsultantID, meetingAt, time.Now())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"consultation": consultation})
}

// RoomToken handles POST /consultations/:id/room-token. The returned token is
// the only credential the realtime room accepts.
func (h *ConsultationHandler) RoomToken(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	token, err := h.roomSvc.IssueToken(c.Request.Context(), id, middleware.GetUserID(c), middleware.GetRole(c), time.Now())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}
