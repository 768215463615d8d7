package payment

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hms-backend/hms-api/internal/middleware"
	"github.com/hms-backend/hms-api/internal/model"
	"github.com/hms-backend/hms-api/internal/service/payment"
	"github.com/hms-backend/hms-api/pkg/errors"
	"github.com/hms-backend/hms-api/pkg/httputil"
)

type Handler struct {
	service *payment.Service
}

func NewHandler(service *payment.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, auth *middleware.AuthMiddleware) {
	payments := r.Group("/payments")
	{
		// The gateway calls the webhook; it carries no user token.
		payments.POST("/webhook", h.Webhook)

		authed := payments.Group("")
		authed.Use(auth.Authenticate())
		{
			authed.POST("/orders", auth.RequireCapabilities(model.CapabilityCreatePayment), h.CreateOrder)
			authed.GET("/appointment/:id", auth.RequireCapabilities(model.CapabilityReadPayment), h.GetByAppointment)
		}
	}
}

func (h *Handler) CreateOrder(c *gin.Context) {
	var req model.CreatePaymentOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.BadRequest(err.Error(), err))
		return
	}

	invoice, err := h.service.CreateOrder(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, invoice)
}

func (h *Handler) Webhook(c *gin.Context) {
	var req model.PaymentWebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.BadRequest(err.Error(), err))
		return
	}

	if err := h.service.HandleWebhook(c.Request.Context(), &req); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, gin.H{"message": "acknowledged"})
}

func (h *Handler) GetByAppointment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, errors.BadRequest("invalid appointment ID", err))
		return
	}

	invoice, err := h.service.GetByAppointment(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, invoice)
}
