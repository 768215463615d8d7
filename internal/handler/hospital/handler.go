package hospital

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hms-backend/hms-api/internal/middleware"
	"github.com/hms-backend/hms-api/internal/model"
	"github.com/hms-backend/hms-api/internal/service/hospital"
	"github.com/hms-backend/hms-api/pkg/errors"
	"github.com/hms-backend/hms-api/pkg/httputil"
)

type Handler struct {
	service *hospital.Service
}

func NewHandler(service *hospital.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, auth *middleware.AuthMiddleware) {
	hospitals := r.Group("/hospitals")
	hospitals.Use(auth.Authenticate())
	{
		hospitals.POST("", auth.RequireCapabilities(model.CapabilityCreateHospital), h.Create)
		hospitals.GET("/:id", auth.RequireCapabilities(model.CapabilityReadHospital), h.Get)
		hospitals.PATCH("/:id", auth.RequireCapabilities(model.CapabilityUpdateHospital), h.Update)

		hospitals.POST("/:id/announcements", auth.RequireCapabilities(model.CapabilityUpdateHospital), h.Announce)
		hospitals.GET("/:id/announcements", auth.RequireCapabilities(model.CapabilityReadAnnouncement), h.Announcements)
	}
}

func (h *Handler) Create(c *gin.Context) {
	var req model.CreateHospitalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.BadRequest(err.Error(), err))
		return
	}

	hosp, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, hosp)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, errors.BadRequest("invalid hospital ID", err))
		return
	}

	hosp, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, hosp)
}

func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, errors.BadRequest("invalid hospital ID", err))
		return
	}

	var req model.UpdateHospitalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.BadRequest(err.Error(), err))
		return
	}

	hosp, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, hosp)
}

func (h *Handler) Announce(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, errors.BadRequest("invalid hospital ID", err))
		return
	}

	var req model.CreateAnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.BadRequest(err.Error(), err))
		return
	}

	a, err := h.service.Announce(c.Request.Context(), id, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, a)
}

// Announcements returns only the announcements broadcast to the
// caller's role.
func (h *Handler) Announcements(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, errors.BadRequest("invalid hospital ID", err))
		return
	}

	principal := middleware.PrincipalFrom(c)
	if principal == nil {
		httputil.RespondWithError(c, errors.Unauthenticated("missing authentication"))
		return
	}

	announcements, err := h.service.Announcements(c.Request.Context(), id, principal.Role)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, announcements)
}
