package review

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hms-backend/hms-api/internal/middleware"
	"github.com/hms-backend/hms-api/internal/model"
	"github.com/hms-backend/hms-api/internal/service/review"
	"github.com/hms-backend/hms-api/pkg/errors"
	"github.com/hms-backend/hms-api/pkg/httputil"
)

type Handler struct {
	service *review.Service
}

func NewHandler(service *review.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, auth *middleware.AuthMiddleware) {
	reviews := r.Group("/reviews")
	reviews.Use(auth.Authenticate())
	{
		reviews.POST("", auth.RequireCapabilities(model.CapabilityCreateAppointment), h.Create)
		reviews.GET("/doctor/:id", auth.RequireCapabilities(model.CapabilityReadStaff), h.ListByDoctor)
		reviews.GET("/doctor/:id/rating", auth.RequireCapabilities(model.CapabilityReadStaff), h.AverageRating)
	}
}

func (h *Handler) Create(c *gin.Context) {
	principal := middleware.PrincipalFrom(c)
	if principal == nil {
		httputil.RespondWithError(c, errors.Unauthenticated("missing authentication"))
		return
	}

	var req model.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.BadRequest(err.Error(), err))
		return
	}

	r, err := h.service.Create(c.Request.Context(), principal.UserID, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, r)
}

func (h *Handler) ListByDoctor(c *gin.Context) {
	doctorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, errors.BadRequest("invalid doctor ID", err))
		return
	}

	reviews, err := h.service.ListByDoctor(c.Request.Context(), doctorID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, reviews)
}

func (h *Handler) AverageRating(c *gin.Context) {
	doctorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, errors.BadRequest("invalid doctor ID", err))
		return
	}

	avg, err := h.service.AverageRating(c.Request.Context(), doctorID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, gin.H{"doctor_id": doctorID, "average_rating": avg})
}
