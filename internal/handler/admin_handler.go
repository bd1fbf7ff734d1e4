package handler

import (
	"net/http"
	"time"

	"consulto/internal/domain"
	"consulto/internal/middleware"
	"consulto/internal/repository"
	"consulto/internal/service"

	"github.com/gin-gonic/gin"
)

// AdminHandler is the review console: pending queues plus the four terminal
// review operations.
type AdminHandler struct {
	authSvc   *service.AuthService
	reviewSvc *service.ReviewService
	requests  repository.RequestStore
}

func NewAdminHandler(authSvc *service.AuthService, reviewSvc *service.ReviewService, requests repository.RequestStore) *AdminHandler {
	return &AdminHandler{authSvc: authSvc, reviewSvc: reviewSvc, requests: requests}
}

// AdminLogin handles POST /admin/login — admin-only login.
func (h *AdminHandler) AdminLogin(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	u, access, refresh, err := h.authSvc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	if u.Role != domain.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "admin access required"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"user":          u,
		"access_token":  access,
		"refresh_token": refresh,
	})
}

// ListIdentityRequests handles GET /admin/requests/identity.
func (h *AdminHandler) ListIdentityRequests(c *gin.Context) {
	page, limit := parsePagination(c)
	list, total, err := h.requests.ListIdentityRequests(c.Request.Context(), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list identity requests"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": list, "total": total, "page": page, "limit": limit})
}

// ListCareerRequests handles GET /admin/requests/career.
func (h *AdminHandler) ListCareerRequests(c *gin.Context) {
	page, limit := parsePagination(c)
	list, total, err := h.requests.ListCareerRequests(c.Request.Context(), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list career requests"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": list, "total": total, "page": page, "limit": limit})
}

// ApproveIdentityRequest handles POST /admin/requests/identity/:id/approve.
func (h *AdminHandler) ApproveIdentityRequest(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	outcome, err := h.reviewSvc.ApproveIdentityRequest(c.Request.Context(), id, middleware.GetEmail(c), time.Now())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"outcome": outcome})
}

// RejectIdentityRequest handles POST /admin/requests/identity/:id/reject.
func (h *AdminHandler) RejectIdentityRequest(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req struct {
		Reason string `json:"reason" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	outcome, err := h.reviewSvc.RejectIdentityRequest(c.Request.Context(), id, middleware.GetEmail(c), req.Reason, time.Now())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"outcome": outcome})
}

// ApproveCareerRequest handles POST /admin/requests/career/:id/approve.
func (h *AdminHandler) ApproveCareerRequest(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	outcome, err := h.reviewSvc.ApproveCareerRequest(c.Request.Context(), id, middleware.GetEmail(c), time.Now())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"outcome": outcome})
}

// RejectCareerRequest handles POST /admin/requests/career/:id/reject.
func (h *AdminHandler) RejectCareerRequest(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req struct {
		Reason string `json:"reason" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	outcome, err := h.reviewSvc.RejectCareerRequest(c.Request.Context(), id, middleware.GetEmail(c), req.Reason, time.Now())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"outcome": outcome})
}
