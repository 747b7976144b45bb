package handler

import (
	"settlement-gateway/internal/adapter/http/dto"
	"settlement-gateway/internal/core/domain"
	"settlement-gateway/internal/core/ports"
	"settlement-gateway/pkg/apperror"
	"settlement-gateway/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AdminHandler handles back-office payout operations.
type AdminHandler struct {
	payoutSvc ports.PayoutService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(payoutSvc ports.PayoutService) *AdminHandler {
	return &AdminHandler{payoutSvc: payoutSvc}
}

// CreatePayout handles POST /admin/v1/payouts. Manually entered payouts
// are always held for approval.
func (h *AdminHandler) CreatePayout(c *gin.Context) {
	var req dto.AdminCreatePayoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	merchantID, err := uuid.Parse(req.MerchantID)
	if err != nil {
		response.Error(c, apperror.Validation("merchant_id must be a UUID"))
		return
	}

	order, err := h.payoutSvc.CreatePayout(c.Request.Context(), ports.CreatePayoutRequest{
		MerchantID:      merchantID,
		Channel:         req.Channel,
		Amount:          req.Amount,
		ExternalOrderID: req.OrderID,
		Source:          domain.PayoutSourceManual,
		Destination: domain.PayoutDestination{
			AccountNumber: req.AccountNumber,
			AccountName:   req.AccountName,
			IFSC:          req.IFSC,
			Wallet:        req.Wallet,
		},
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, toPayoutResponse(order))
}

// ApprovePayout handles POST /admin/v1/payouts/:id/approve.
func (h *AdminHandler) ApprovePayout(c *gin.Context) {
	payoutID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("payout id must be a UUID"))
		return
	}

	var req dto.AdminPayoutDecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	if req.Reference == "" {
		response.Error(c, apperror.ErrMissingField("reference"))
		return
	}

	if err := h.payoutSvc.Approve(c.Request.Context(), payoutID, adminActor(c), req.Reference); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"id": payoutID.String(), "status": string(domain.OrderStatusSuccess)})
}

// RejectPayout handles POST /admin/v1/payouts/:id/reject.
func (h *AdminHandler) RejectPayout(c *gin.Context) {
	payoutID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("payout id must be a UUID"))
		return
	}

	var req dto.AdminPayoutDecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	if req.Reason == "" {
		response.Error(c, apperror.ErrMissingField("reason"))
		return
	}

	if err := h.payoutSvc.Reject(c.Request.Context(), payoutID, adminActor(c), req.Reason); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"id": payoutID.String(), "status": string(domain.OrderStatusFailed)})
}

// adminActor records who pressed the button; falls back to a fixed label
// when the operator header is absent.
func adminActor(c *gin.Context) string {
	if actor := c.GetHeader("X-Admin-Actor"); actor != "" {
		return actor
	}
	return "admin"
}
