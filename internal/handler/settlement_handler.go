package handler

import (
	"context"
	"net/http"
	"time"

	"consulto/internal/middleware"
	"consulto/internal/repository"
	"consulto/internal/service"

	"github.com/gin-gonic/gin"
)

// SettlementHandler exposes the admin settlement console: the four queues and
// the five transitions.
type SettlementHandler struct {
	svc         *service.SettlementService
	settlements repository.SettlementStore
}

func NewSettlementHandler(svc *service.SettlementService, settlements repository.SettlementStore) *SettlementHandler {
	return &SettlementHandler{svc: svc, settlements: settlements}
}

// ListAwaitingPayments handles GET /admin/settlements/payments.
func (h *SettlementHandler) ListAwaitingPayments(c *gin.Context) {
	page, limit := parsePagination(c)
	list, total, err := h.settlements.ListAwaitingPayments(c.Request.Context(), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list awaiting payments"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": list, "total": total, "page": page, "limit": limit})
}

// ListExpiredPayments handles GET /admin/settlements/payments/expired — rows
// whose waiting period ran out without the payment arriving.
func (h *SettlementHandler) ListExpiredPayments(c *gin.Context) {
	page, limit := parsePagination(c)
	criteria := service.PaymentExpiryCriteria(time.Now())
	list, total, err := h.settlements.ListExpiredAwaitingPayments(c.Request.Context(), criteria, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list expired payments"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": list, "total": total, "page": page, "limit": limit})
}

// ListAwaitingWithdrawals handles GET /admin/settlements/withdrawals.
func (h *SettlementHandler) ListAwaitingWithdrawals(c *gin.Context) {
	page, limit := parsePagination(c)
	list, total, err := h.settlements.ListAwaitingWithdrawals(c.Request.Context(), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list awaiting withdrawals"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": list, "total": total, "page": page, "limit": limit})
}

// ListLeftWithdrawals handles GET /admin/settlements/withdrawals/left — rows
// sitting in the withdrawal queue past the waiting period.
func (h *SettlementHandler) ListLeftWithdrawals(c *gin.Context) {
	page, limit := parsePagination(c)
	criteria := service.WithdrawalLeftCriteria(time.Now())
	list, total, err := h.settlements.ListLeftAwaitingWithdrawals(c.Request.Context(), criteria, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list left withdrawals"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": list, "total": total, "page": page, "limit": limit})
}

// SettlePayment handles POST /admin/settlements/payments/:consultation_id/settle.
func (h *SettlementHandler) SettlePayment(c *gin.Context) {
	h.transition(c, h.svc.SettlePayment)
}

// ConfirmPayment handles POST /admin/settlements/payments/:consultation_id/confirm.
func (h *SettlementHandler) ConfirmPayment(c *gin.Context) {
	h.transition(c, h.svc.ConfirmPayment)
}

// NeglectPayment handles POST /admin/settlements/payments/:consultation_id/neglect.
func (h *SettlementHandler) NeglectPayment(c *gin.Context) {
	h.transition(c, h.svc.NeglectPayment)
}

// SettleWithdrawal handles POST /admin/settlements/withdrawals/:consultation_id/settle.
func (h *SettlementHandler) SettleWithdrawal(c *gin.Context) {
	h.transition(c, h.svc.SettleWithdrawal)
}

// StopWithdrawal handles POST /admin/settlements/withdrawals/:consultation_id/stop.
func (h *SettlementHandler) StopWithdrawal(c *gin.Context) {
	h.transition(c, h.svc.StopWithdrawal)
}

func (h *SettlementHandler) transition(c *gin.Context, op func(ctx context.Context, consultationID uint, adminEmail string, now time.Time) error) {
	id, ok := parseIDParam(c, "consultation_id")
	if !ok {
		return
	}
	if err := op(c.Request.Context(), id, middleware.GetEmail(c), time.Now()); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
