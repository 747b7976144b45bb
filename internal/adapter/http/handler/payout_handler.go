package handler

import (
	"settlement-gateway/internal/adapter/http/dto"
	"settlement-gateway/internal/adapter/http/middleware"
	"settlement-gateway/internal/core/domain"
	"settlement-gateway/internal/core/ports"
	"settlement-gateway/pkg/apperror"
	"settlement-gateway/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PayoutHandler handles merchant payout endpoints.
type PayoutHandler struct {
	payoutSvc  ports.PayoutService
	payoutRepo ports.PayoutOrderRepository
}

// NewPayoutHandler creates a new PayoutHandler.
func NewPayoutHandler(payoutSvc ports.PayoutService, payoutRepo ports.PayoutOrderRepository) *PayoutHandler {
	return &PayoutHandler{payoutSvc: payoutSvc, payoutRepo: payoutRepo}
}

// CreatePayout handles POST /api/v1/payouts.
func (h *PayoutHandler) CreatePayout(c *gin.Context) {
	merchantID, ok := c.Get(middleware.CtxMerchantID)
	if !ok {
		response.Error(c, apperror.ErrInvalidAccessKey())
		return
	}

	var req dto.CreatePayoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	order, err := h.payoutSvc.CreatePayout(c.Request.Context(), ports.CreatePayoutRequest{
		MerchantID:      merchantID.(uuid.UUID),
		Channel:         req.Channel,
		Amount:          req.Amount,
		ExternalOrderID: req.OrderID,
		Source:          domain.PayoutSourceAPI,
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

// GetPayout handles GET /api/v1/payouts/:orderId.
func (h *PayoutHandler) GetPayout(c *gin.Context) {
	merchantID, ok := c.Get(middleware.CtxMerchantID)
	if !ok {
		response.Error(c, apperror.ErrInvalidAccessKey())
		return
	}

	order, err := h.payoutRepo.GetByExternalOrderID(c.Request.Context(), c.Param("orderId"))
	if err != nil {
		response.Error(c, apperror.ErrDatabaseError(err))
		return
	}
	if order == nil || order.MerchantID != merchantID.(uuid.UUID) {
		response.Error(c, apperror.ErrNotFound("payout"))
		return
	}

	response.OK(c, toPayoutResponse(order))
}

func toPayoutResponse(order *domain.PayoutOrder) dto.PayoutResponse {
	return dto.PayoutResponse{
		OrderID:         order.ExternalOrderID,
		ID:              order.ID.String(),
		Amount:          order.Amount,
		Fee:             order.Fee,
		TotalDeduction:  order.TotalDeduction,
		Status:          string(order.Status),
		HoldForApproval: order.HoldForApproval,
	}
}
