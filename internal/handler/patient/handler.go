package patient

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hms-backend/hms-api/internal/middleware"
	"github.com/hms-backend/hms-api/internal/model"
	"github.com/hms-backend/hms-api/internal/service/patient"
	"github.com/hms-backend/hms-api/pkg/errors"
	"github.com/hms-backend/hms-api/pkg/httputil"
)

type Handler struct {
	service *patient.Service
}

func NewHandler(service *patient.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, auth *middleware.AuthMiddleware) {
	patients := r.Group("/patients")
	patients.Use(auth.Authenticate())
	{
		patients.GET("/:id", auth.RequireCapabilities(model.CapabilityReadPatient), h.Get)
		patients.PATCH("/:id", auth.RequireCapabilities(model.CapabilityUpdatePatient), h.Update)
		patients.DELETE("/:id", auth.RequireCapabilities(model.CapabilityDeletePatient), h.Deactivate)

		patients.POST("/:id/prescriptions", auth.RequireCapabilities(model.CapabilityCreateMedicalRecord), h.AddPrescription)
		patients.GET("/:id/prescriptions", auth.RequireCapabilities(model.CapabilityReadMedicalRecord), h.ListPrescriptions)
		patients.POST("/:id/reports", auth.RequireCapabilities(model.CapabilityCreateMedicalRecord), h.AddReport)
		patients.GET("/:id/reports", auth.RequireCapabilities(model.CapabilityReadMedicalRecord), h.ListReports)
	}
}

func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, errors.BadRequest("invalid patient ID", err))
		return
	}

	user, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, user)
}

func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, errors.BadRequest("invalid patient ID", err))
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
		httputil.RespondWithError(c, errors.BadRequest("invalid patient ID", err))
		return
	}

	if err := h.service.Deactivate(c.Request.Context(), id); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, gin.H{"message": "patient deactivated"})
}

func (h *Handler) AddPrescription(c *gin.Context) {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, errors.BadRequest("invalid patient ID", err))
		return
	}

	principal := middleware.PrincipalFrom(c)
	if principal == nil {
		httputil.RespondWithError(c, errors.Unauthenticated("missing authentication"))
		return
	}

	var req model.CreatePrescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.BadRequest(err.Error(), err))
		return
	}

	p, err := h.service.AddPrescription(c.Request.Context(), patientID, principal.UserID, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, p)
}

func (h *Handler) ListPrescriptions(c *gin.Context) {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, errors.BadRequest("invalid patient ID", err))
		return
	}

	prescriptions, err := h.service.ListPrescriptions(c.Request.Context(), patientID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, prescriptions)
}

func (h *Handler) AddReport(c *gin.Context) {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, errors.BadRequest("invalid patient ID", err))
		return
	}

	var req model.CreateMedicalReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.BadRequest(err.Error(), err))
		return
	}

	report, err := h.service.AddReport(c.Request.Context(), patientID, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, report)
}

func (h *Handler) ListReports(c *gin.Context) {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, errors.BadRequest("invalid patient ID", err))
		return
	}

	reports, err := h.service.ListReports(c.Request.Context(), patientID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, reports)
}
