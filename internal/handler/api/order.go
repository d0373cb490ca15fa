package api

import (
	"net/http"

	"tillpoint/internal/domain/order"
	"tillpoint/internal/domain/payment"
	"tillpoint/internal/domain/pricing"
	reqdto "tillpoint/internal/handler/dto/request"
	resdto "tillpoint/internal/handler/dto/response"
	"tillpoint/internal/handler/httperr"
	"tillpoint/internal/pkg/errs"
	"tillpoint/internal/usecase/commands"
	"tillpoint/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type OrderHandler struct {
	coordinator *commands.TransactionCoordinator
	orderQuery  *queries.OrderQuery
}

func NewOrderHandler(coordinator *commands.TransactionCoordinator, orderQuery *queries.OrderQuery) *OrderHandler {
	return &OrderHandler{
		coordinator: coordinator,
		orderQuery:  orderQuery,
	}
}

func (h *OrderHandler) Create(c *gin.Context) {
	var req reqdto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	orderID, err := h.coordinator.CreateDraft(c.Request.Context(), req.ToInput())
	if err != nil {
		respondOrderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.OrderCreatedResponse{OrderID: orderID})
}

func (h *OrderHandler) Get(c *gin.Context) {
	orderID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	view, err := h.orderQuery.Get(c.Request.Context(), orderID)
	if err != nil {
		respondOrderError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *OrderHandler) AddLine(c *gin.Context) {
	orderID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req reqdto.AddLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	lineID, err := h.coordinator.AddLine(c.Request.Context(), orderID, commands.AddLineInput{
		SKU:      req.SKU,
		Quantity: req.Quantity,
	})
	if err != nil {
		respondOrderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.LineAddedResponse{LineID: lineID})
}

func (h *OrderHandler) RemoveLine(c *gin.Context) {
	orderID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	lineID, ok := pathUUID(c, "lineID")
	if !ok {
		return
	}

	if err := h.coordinator.RemoveLine(c.Request.Context(), orderID, lineID); err != nil {
		respondOrderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *OrderHandler) UpdateLine(c *gin.Context) {
	orderID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	lineID, ok := pathUUID(c, "lineID")
	if !ok {
		return
	}

	var req reqdto.UpdateLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if err := h.coordinator.UpdateQuantity(c.Request.Context(), orderID, lineID, req.Quantity); err != nil {
		respondOrderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *OrderHandler) BeginPayment(c *gin.Context) {
	orderID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.coordinator.BeginPayment(c.Request.Context(), orderID); err != nil {
		respondOrderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *OrderHandler) RecordPayment(c *gin.Context) {
	orderID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req reqdto.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	progress, err := h.coordinator.RecordPayment(c.Request.Context(), orderID, commands.RecordPaymentInput{
		Method:      req.Method,
		AmountCents: req.AmountCents,
		AuthRef:     req.AuthRef,
	})
	if err != nil {
		respondOrderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.PaymentRecordedResponse{
		PaymentID:      progress.PaymentID,
		RemainingCents: progress.RemainingCents,
	})
}

func (h *OrderHandler) Finalize(c *gin.Context) {
	orderID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	result, err := h.coordinator.Finalize(c.Request.Context(), orderID)
	if err != nil {
		respondOrderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FinalizedResponse{
		ReceiptID:  result.ReceiptID,
		ReceiptSeq: result.ReceiptSeq,
	})
}

func (h *OrderHandler) Cancel(c *gin.Context) {
	orderID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.coordinator.Cancel(c.Request.Context(), orderID); err != nil {
		respondOrderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func pathUUID(c *gin.Context, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + param + " format"})
		return uuid.Nil, false
	}
	return id, true
}

func respondOrderError(c *gin.Context, err error) {
	switch {
	case errs.Is(err, errs.ErrOrderNotFound),
		errs.Is(err, errs.ErrProductNotFound),
		errs.Is(err, errs.ErrCustomerNotFound),
		errs.Is(err, errs.ErrLineNotFound),
		errs.Is(err, order.ErrLineNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errs.Is(err, order.ErrInvalidState),
		errs.Is(err, errs.ErrInvalidState),
		errs.Is(err, order.ErrEmptyOrder),
		errs.Is(err, errs.ErrEmptyOrder):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errs.Is(err, errs.ErrInsufficientStock),
		errs.Is(err, errs.ErrInsufficientCredit),
		errs.Is(err, errs.ErrPaymentMismatch):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errs.Is(err, order.ErrInvalidQuantity),
		errs.Is(err, payment.ErrInvalidMethod),
		errs.Is(err, payment.ErrNonPositiveValue),
		errs.Is(err, payment.ErrAuthRefRequired),
		errs.Is(err, payment.ErrInvalidAuthRef),
		errs.Is(err, pricing.ErrInvalidRule),
		errs.Is(err, errs.ErrInvalidRule):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errs.Is(err, errs.ErrDurabilityFailure):
		httperr.AbortWithError(c, http.StatusServiceUnavailable, err, "Durable write failed", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}
