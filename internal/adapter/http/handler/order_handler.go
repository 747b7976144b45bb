package handler

import (
	"time"

	"settlement-gateway/internal/adapter/http/dto"
	"settlement-gateway/internal/adapter/http/middleware"
	"settlement-gateway/internal/core/domain"
	"settlement-gateway/internal/core/ports"
	"settlement-gateway/pkg/apperror"
	"settlement-gateway/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// OrderHandler handles merchant pay-in endpoints.
type OrderHandler struct {
	orderSvc  ports.OrderService
	reconSvc  ports.ReconciliationService
	payinRepo ports.PayinOrderRepository
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(orderSvc ports.OrderService, reconSvc ports.ReconciliationService, payinRepo ports.PayinOrderRepository) *OrderHandler {
	return &OrderHandler{orderSvc: orderSvc, reconSvc: reconSvc, payinRepo: payinRepo}
}

// CreatePayin handles POST /api/v1/orders.
func (h *OrderHandler) CreatePayin(c *gin.Context) {
	merchantID, ok := c.Get(middleware.CtxMerchantID)
	if !ok {
		response.Error(c, apperror.ErrInvalidAccessKey())
		return
	}

	var req dto.CreatePayinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	result, err := h.orderSvc.CreatePayin(c.Request.Context(), ports.CreatePayinRequest{
		MerchantID:      merchantID.(uuid.UUID),
		Channel:         req.Channel,
		Amount:          req.Amount,
		ExternalOrderID: req.OrderID,
		CallbackURL:     req.CallbackURL,
		SkipURL:         req.SkipURL,
		Param:           req.Param,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.PayinResponse{
		OrderID:    result.OrderID,
		ID:         result.ID.String(),
		Amount:     result.Amount,
		Fee:        result.Fee,
		PaymentURL: result.PaymentURL,
		DeepLinks:  result.DeepLinks,
	})
}

// GetOrder handles GET /api/v1/orders/:orderId.
func (h *OrderHandler) GetOrder(c *gin.Context) {
	merchantID, ok := c.Get(middleware.CtxMerchantID)
	if !ok {
		response.Error(c, apperror.ErrInvalidAccessKey())
		return
	}

	order, err := h.payinRepo.GetByExternalOrderID(c.Request.Context(), c.Param("orderId"))
	if err != nil {
		response.Error(c, apperror.ErrDatabaseError(err))
		return
	}
	if order == nil || order.MerchantID != merchantID.(uuid.UUID) {
		response.Error(c, apperror.ErrNotFound("order"))
		return
	}

	response.OK(c, toOrderStatusResponse(order))
}

// SubmitUTR handles POST /api/v1/orders/utr, the manual compensation path
// for settlements the channel never delivered.
func (h *OrderHandler) SubmitUTR(c *gin.Context) {
	merchantID, ok := c.Get(middleware.CtxMerchantID)
	if !ok {
		response.Error(c, apperror.ErrInvalidAccessKey())
		return
	}

	var req dto.SubmitUTRRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	order, err := h.payinRepo.GetByExternalOrderID(c.Request.Context(), req.OrderID)
	if err != nil {
		response.Error(c, apperror.ErrDatabaseError(err))
		return
	}
	if order == nil || order.MerchantID != merchantID.(uuid.UUID) {
		response.Error(c, apperror.ErrNotFound("order"))
		return
	}

	if err := h.reconSvc.SubmitReference(c.Request.Context(), req.OrderID, req.UTR); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"order_id": req.OrderID, "status": string(domain.OrderStatusSuccess)})
}

func toOrderStatusResponse(order *domain.PayinOrder) dto.OrderStatusResponse {
	resp := dto.OrderStatusResponse{
		OrderID:   order.ExternalOrderID,
		ID:        order.ID.String(),
		Channel:   order.Channel,
		Amount:    order.GrossAmount,
		Fee:       order.Fee,
		NetAmount: order.NetAmount,
		Status:    string(order.Status),
		Reference: order.Reference,
		CreatedAt: order.CreatedAt.Format(time.RFC3339),
	}
	if order.SettledAt != nil {
		s := order.SettledAt.Format(time.RFC3339)
		resp.SettledAt = &s
	}
	return resp
}
