package appointment

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hms-backend/hms-api/internal/middleware"
	"github.com/hms-backend/hms-api/internal/model"
	"github.com/hms-backend/hms-api/internal/service/scheduler"
	"github.com/hms-backend/hms-api/pkg/errors"
	"github.com/hms-backend/hms-api/pkg/httputil"
)

type Handler struct {
	service *scheduler.Service
}

func NewHandler(service *scheduler.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, auth *middleware.AuthMiddleware) {
	appointments := r.Group("/appointments")
	appointments.Use(auth.Authenticate())
	{
		appointments.GET("/availability", auth.RequireCapabilities(model.CapabilityReadAppointment), h.CheckAvailability)
		appointments.POST("", auth.RequireCapabilities(model.CapabilityCreateAppointment), h.Book)
		appointments.GET("", auth.RequireCapabilities(model.CapabilityReadAppointment), h.List)
		appointments.GET("/:id", auth.RequireCapabilities(model.CapabilityReadAppointment), h.Get)
		appointments.POST("/:id/cancel", auth.RequireCapabilities(model.CapabilityUpdateAppointment), h.Cancel)
		appointments.POST("/:id/complete", auth.RequireCapabilities(model.CapabilityUpdateAppointment), h.Complete)
		appointments.PATCH("/:id", auth.RequireCapabilities(model.CapabilityUpdateAppointment), h.Update)
	}
}

func (h *Handler) CheckAvailability(c *gin.Context) {
	doctorID, err := uuid.Parse(c.Query("doctor_id"))
	if err != nil {
		httputil.RespondWithError(c, errors.BadRequest("invalid doctor ID", err))
		return
	}
	start, err := time.Parse(time.RFC3339, c.Query("start_time"))
	if err != nil {
		httputil.RespondWithError(c, errors.BadRequest("invalid start_time", err))
		return
	}
	end, err := time.Parse(time.RFC3339, c.Query("end_time"))
	if err != nil {
		httputil.RespondWithError(c, errors.BadRequest("invalid end_time", err))
		return
	}

	verdict, err := h.service.CheckAvailability(c.Request.Context(), doctorID, start, end)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, verdict)
}

func (h *Handler) Book(c *gin.Context) {
	var req model.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.BadRequest(err.Error(), err))
		return
	}

	apt, err := h.service.Book(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, apt)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, errors.BadRequest("invalid appointment ID", err))
		return
	}

	apt, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, apt)
}

func (h *Handler) List(c *gin.Context) {
	filters := &model.AppointmentFilters{}

	if id := c.Query("doctor_id"); id != "" {
		doctorID, err := uuid.Parse(id)
		if err != nil {
			httputil.RespondWithError(c, errors.BadRequest("invalid doctor ID", err))
			return
		}
		filters.DoctorID = doctorID
	}
	if id := c.Query("patient_id"); id != "" {
		patientID, err := uuid.Parse(id)
		if err != nil {
			httputil.RespondWithError(c, errors.BadRequest("invalid patient ID", err))
			return
		}
		filters.PatientID = patientID
	}
	if status := c.Query("status"); status != "" {
		filters.Status = model.AppointmentStatus(status)
	}
	if from := c.Query("from"); from != "" {
		t, err := time.Parse(time.RFC3339, from)
		if err != nil {
			httputil.RespondWithError(c, errors.BadRequest("invalid from timestamp", err))
			return
		}
		filters.From = t
	}
	if to := c.Query("to"); to != "" {
		t, err := time.Parse(time.RFC3339, to)
		if err != nil {
			httputil.RespondWithError(c, errors.BadRequest("invalid to timestamp", err))
			return
		}
		filters.To = t
	}

	appointments, err := h.service.List(c.Request.Context(), filters)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, appointments)
}

func (h *Handler) Cancel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, errors.BadRequest("invalid appointment ID", err))
		return
	}

	var req model.CancelAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.BadRequest(err.Error(), err))
		return
	}

	apt, err := h.service.Cancel(c.Request.Context(), id, req.Reason)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, apt)
}

func (h *Handler) Complete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, errors.BadRequest("invalid appointment ID", err))
		return
	}

	var req struct {
		Prescription string `json:"prescription"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.BadRequest(err.Error(), err))
		return
	}

	apt, err := h.service.Complete(c.Request.Context(), id, req.Prescription)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, apt)
}

func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, errors.BadRequest("invalid appointment ID", err))
		return
	}

	var req model.UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.BadRequest(err.Error(), err))
		return
	}

	apt, err := h.service.UpdateNotes(c.Request.Context(), id, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, apt)
}
