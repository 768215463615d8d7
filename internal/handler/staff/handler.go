package staff

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hms-backend/hms-api/internal/middleware"
	"github.com/hms-backend/hms-api/internal/model"
	"github.com/hms-backend/hms-api/internal/service/scheduler"
	"github.com/hms-backend/hms-api/internal/service/staff"
	"github.com/hms-backend/hms-api/pkg/errors"
	"github.com/hms-backend/hms-api/pkg/httputil"
)

type Handler struct {
	service   *staff.Service
	scheduler *scheduler.Service
}

func NewHandler(service *staff.Service, schedulerService *scheduler.Service) *Handler {
	return &Handler{service: service, scheduler: schedulerService}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, auth *middleware.AuthMiddleware) {
	staffGroup := r.Group("/staff")
	staffGroup.Use(auth.Authenticate())
	{
		staffGroup.POST("", auth.RequireCapabilities(model.CapabilityCreateStaff), h.Create)
		staffGroup.GET("", auth.RequireCapabilities(model.CapabilityReadStaff), h.List)
		staffGroup.GET("/search", auth.RequireCapabilities(model.CapabilityReadStaff), h.Search)
		staffGroup.GET("/specializations", auth.RequireCapabilities(model.CapabilityReadStaff), h.ListSpecializations)
		staffGroup.GET("/:id", auth.RequireCapabilities(model.CapabilityReadStaff), h.Get)
		staffGroup.PATCH("/:id", auth.RequireCapabilities(model.CapabilityUpdateStaff), h.Update)
		staffGroup.DELETE("/:id", auth.RequireCapabilities(model.CapabilityDeleteStaff), h.Deactivate)

		staffGroup.POST("/:id/unavailability", auth.RequireCapabilities(model.CapabilityUpdateStaff), h.AddUnavailability)
		staffGroup.GET("/:id/unavailability", auth.RequireCapabilities(model.CapabilityReadStaff), h.ListUnavailability)

		staffGroup.POST("/:id/leaves", auth.RequireCapabilities(model.CapabilityUpdateStaff), h.RequestLeave)
		staffGroup.GET("/:id/leaves", auth.RequireCapabilities(model.CapabilityReadStaff), h.ListLeaves)
	}

	leaves := r.Group("/leaves")
	leaves.Use(auth.Authenticate())
	{
		leaves.GET("/pending", auth.RequireCapabilities(model.CapabilityUpdateAdmin), h.ListPendingLeaves)
		leaves.POST("/:id/approve", auth.RequireCapabilities(model.CapabilityUpdateAdmin), h.ApproveLeave)
	}
}

func (h *Handler) Create(c *gin.Context) {
	var req model.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.BadRequest(err.Error(), err))
		return
	}

	var hospitalID *uuid.UUID
	if raw := c.Query("hospital_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			httputil.RespondWithError(c, errors.BadRequest("invalid hospital ID", err))
			return
		}
		hospitalID = &id
	}

	user, err := h.service.Create(c.Request.Context(), hospitalID, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, user)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, errors.BadRequest("invalid staff ID", err))
		return
	}

	user, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, user)
}

func (h *Handler) List(c *gin.Context) {
	var hospitalID *uuid.UUID
	if raw := c.Query("hospital_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			httputil.RespondWithError(c, errors.BadRequest("invalid hospital ID", err))
			return
		}
		hospitalID = &id
	}

	users, err := h.service.List(c.Request.Context(), hospitalID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, users)
}

// Search finds staff by name or specialization depending on which query
// parameter is present.
func (h *Handler) Search(c *gin.Context) {
	if q := c.Query("name"); q != "" {
		users, err := h.service.SearchByName(c.Request.Context(), q)
		if err != nil {
			httputil.RespondWithError(c, err)
			return
		}
		httputil.RespondWithSuccess(c, users)
		return
	}
	if q := c.Query("specialization"); q != "" {
		users, err := h.service.SearchBySpecialization(c.Request.Context(), q)
		if err != nil {
			httputil.RespondWithError(c, err)
			return
		}
		httputil.RespondWithSuccess(c, users)
		return
	}
	httputil.RespondWithError(c, errors.BadRequest("name or specialization query is required", nil))
}

func (h *Handler) ListSpecializations(c *gin.Context) {
	specializations, err := h.service.ListSpecializations(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, specializations)
}

func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, errors.BadRequest("invalid staff ID", err))
		return
	}

	var req model.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.BadRequest(err.Error(), err))
		return
	}

	user, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, user)
}

func (h *Handler) Deactivate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, errors.BadRequest("invalid staff ID", err))
		return
	}

	if err := h.service.Deactivate(c.Request.Context(), id); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, gin.H{"message": "staff member deactivated"})
}

func (h *Handler) AddUnavailability(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, errors.BadRequest("invalid staff ID", err))
		return
	}

	var req model.CreateUnavailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.BadRequest(err.Error(), err))
		return
	}

	period, err := h.service.AddUnavailability(c.Request.Context(), id, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, period)
}

func (h *Handler) ListUnavailability(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, errors.BadRequest("invalid staff ID", err))
		return
	}

	periods, err := h.service.ListUnavailability(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, periods)
}

func (h *Handler) RequestLeave(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, errors.BadRequest("invalid staff ID", err))
		return
	}

	var req model.CreateLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.BadRequest(err.Error(), err))
		return
	}

	leave, err := h.service.RequestLeave(c.Request.Context(), id, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, leave)
}

func (h *Handler) ListLeaves(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, errors.BadRequest("invalid staff ID", err))
		return
	}

	leaves, err := h.service.ListLeaves(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, leaves)
}

func (h *Handler) ListPendingLeaves(c *gin.Context) {
	leaves, err := h.service.ListPendingLeaves(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, leaves)
}

// ApproveLeave approves the leave and cancels every active appointment
// on a covered day.
func (h *Handler) ApproveLeave(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, errors.BadRequest("invalid leave ID", err))
		return
	}

	leave, err := h.scheduler.ApproveLeave(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, leave)
}
