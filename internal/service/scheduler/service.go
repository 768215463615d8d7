package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/hms-backend/hms-api/internal/model"
	"github.com/hms-backend/hms-api/internal/repository"
	"github.com/hms-backend/hms-api/internal/service/notification"
	"github.com/hms-backend/hms-api/pkg/errors"
	"github.com/hms-backend/hms-api/pkg/metrics"
)

// Availability is the verdict of a conflict check.
type Availability struct {
	Available bool
	Reason    string
}

const (
	reasonBooked      = "doctor already booked at this time"
	reasonUnavailable = "doctor unavailable at this time"
)

type Service struct {
	appointments repository.AppointmentRepository
	unavail      repository.UnavailabilityRepository
	leaves       repository.LeaveRepository
	users        repository.UserRepository
	notifier     notification.Service
	metrics      *metrics.Metrics
}

func NewService(
	appointments repository.AppointmentRepository,
	unavail repository.UnavailabilityRepository,
	leaves repository.LeaveRepository,
	users repository.UserRepository,
	notifier notification.Service,
	m *metrics.Metrics,
) *Service {
	return &Service{
		appointments: appointments,
		unavail:      unavail,
		leaves:       leaves,
		users:        users,
		notifier:     notifier,
		metrics:      m,
	}
}

// Overlaps implements the half-open interval rule: [s1,e1) and [s2,e2)
// overlap iff s1 < e2 && s2 < e1. Touching boundaries do not overlap,
// so back-to-back appointments are allowed.
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && s2.Before(e1)
}

// CheckAvailability validates a proposed [start, end) window against the
// doctor's active appointments and declared unavailability periods. The
// check is read-only; calling it twice against the same stored state
// yields the same verdict.
func (s *Service) CheckAvailability(ctx context.Context, doctorID uuid.UUID, start, end time.Time) (*Availability, error) {
	if !start.Before(end) {
		return nil, errors.BadRequest("start time must be before end time", nil)
	}

	start = start.UTC()
	end = end.UTC()

	existing, err := s.appointments.ListActiveByDoctor(ctx, doctorID)
	if err != nil {
		return nil, fmt.Errorf("failed to load doctor appointments: %w", err)
	}
	for _, apt := range existing {
		if Overlaps(start, end, apt.StartTime.UTC(), apt.EndTime.UTC()) {
			return &Availability{Available: false, Reason: reasonBooked}, nil
		}
	}

	periods, err := s.unavail.ListByDoctor(ctx, doctorID)
	if err != nil {
		return nil, fmt.Errorf("failed to load unavailability periods: %w", err)
	}
	for _, p := range periods {
		if p.Contains(start) {
			return &Availability{Available: false, Reason: reasonUnavailable}, nil
		}
	}

	return &Availability{Available: true}, nil
}

// Book validates and persists a new confirmed appointment.
//
// The check-then-insert sequence is not atomic against concurrent
// bookings for the same doctor; the repository narrows the window with
// an overlap guard inside the insert, so the second of two racing
// requests fails there with a conflict.
func (s *Service) Book(ctx context.Context, req *model.CreateAppointmentRequest) (*model.Appointment, error) {
	doctor, err := s.users.Get(ctx, req.DoctorID)
	if err != nil {
		return nil, err
	}
	if doctor.Role != model.RoleStaff || !doctor.Active {
		return nil, errors.NotFound("doctor", nil)
	}

	patient, err := s.users.Get(ctx, req.PatientID)
	if err != nil {
		return nil, err
	}

	verdict, err := s.CheckAvailability(ctx, req.DoctorID, req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}
	if !verdict.Available {
		s.metrics.BookingConflicts.Inc()
		return nil, errors.Conflict(verdict.Reason)
	}

	apt := &model.Appointment{
		PatientID: req.PatientID,
		DoctorID:  req.DoctorID,
		StartTime: req.StartTime.UTC(),
		EndTime:   req.EndTime.UTC(),
		Status:    model.AppointmentStatusConfirmed,
		Notes:     req.Notes,
	}

	if err := s.appointments.Create(ctx, apt); err != nil {
		if errors.IsCode(err, errors.ErrConflict) {
			s.metrics.BookingConflicts.Inc()
		}
		return nil, err
	}

	s.notifyPatient(patient.Email, "Appointment confirmed",
		fmt.Sprintf("Your appointment on %s has been confirmed.",
			apt.StartTime.Format(time.RFC3339)))

	return apt, nil
}

// Cancel moves a confirmed appointment to cancelled. Cancellation is a
// status change, never a delete; completed and already-cancelled
// appointments are terminal.
func (s *Service) Cancel(ctx context.Context, id uuid.UUID, reason string) (*model.Appointment, error) {
	apt, err := s.appointments.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	switch apt.Status {
	case model.AppointmentStatusCancelled:
		return nil, errors.Conflict("appointment is already cancelled")
	case model.AppointmentStatusCompleted:
		return nil, errors.Conflict("cannot cancel a completed appointment")
	}

	apt.Status = model.AppointmentStatusCancelled
	apt.CancelReason = &reason

	if err := s.appointments.Update(ctx, apt); err != nil {
		return nil, err
	}

	if patient, err := s.users.Get(ctx, apt.PatientID); err == nil {
		s.notifyPatient(patient.Email, "Appointment cancelled",
			fmt.Sprintf("Your appointment on %s was cancelled: %s",
				apt.StartTime.Format(time.RFC3339), reason))
	}

	return apt, nil
}

// Complete marks a confirmed appointment as completed, optionally
// recording the prescription written during the consultation.
func (s *Service) Complete(ctx context.Context, id uuid.UUID, prescription string) (*model.Appointment, error) {
	apt, err := s.appointments.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if apt.Status != model.AppointmentStatusConfirmed {
		return nil, errors.Conflict(fmt.Sprintf("cannot complete a %s appointment", apt.Status))
	}

	apt.Status = model.AppointmentStatusCompleted
	if prescription != "" {
		apt.Prescription = prescription
	}

	if err := s.appointments.Update(ctx, apt); err != nil {
		return nil, err
	}
	return apt, nil
}

// ApproveLeave approves a pending leave request and cascades
// cancellation over every active appointment of the doctor whose date
// falls on a covered calendar day. Each cancellation and notification
// is independent: one failure is logged and the cascade continues.
func (s *Service) ApproveLeave(ctx context.Context, leaveID uuid.UUID) (*model.LeaveRequest, error) {
	leave, err := s.leaves.Get(ctx, leaveID)
	if err != nil {
		return nil, err
	}
	if leave.Status == model.LeaveStatusApproved {
		return nil, errors.Conflict("leave request is already approved")
	}

	leave.Status = model.LeaveStatusApproved
	if err := s.leaves.Update(ctx, leave); err != nil {
		return nil, err
	}

	active, err := s.appointments.ListActiveByDoctor(ctx, leave.DoctorID)
	if err != nil {
		return nil, fmt.Errorf("failed to load appointments for cascade: %w", err)
	}

	for _, apt := range active {
		if !leave.Covers(apt.StartTime) {
			continue
		}
		if _, err := s.Cancel(ctx, apt.ID, "doctor on leave"); err != nil {
			log.Error().Err(err).
				Str("appointment_id", apt.ID.String()).
				Str("leave_id", leave.ID.String()).
				Msg("cascade cancellation failed")
			continue
		}
		s.metrics.CascadeCancellations.Inc()
	}

	return leave, nil
}

// Get returns one appointment.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	return s.appointments.Get(ctx, id)
}

// List returns appointments matching the filters.
func (s *Service) List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	return s.appointments.List(ctx, filters)
}

// UpdateNotes patches prescription and notes on an appointment.
func (s *Service) UpdateNotes(ctx context.Context, id uuid.UUID, req *model.UpdateAppointmentRequest) (*model.Appointment, error) {
	apt, err := s.appointments.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Prescription != nil {
		apt.Prescription = *req.Prescription
	}
	if req.Notes != nil {
		apt.Notes = *req.Notes
	}
	if err := s.appointments.Update(ctx, apt); err != nil {
		return nil, err
	}
	return apt, nil
}

// notifyPatient publishes a best-effort notification. Failures are
// logged and swallowed: they never affect the primary mutation.
func (s *Service) notifyPatient(email, subject, body string) {
	if s.notifier == nil {
		return
	}
	s.notifier.Send(&model.Notification{
		To:      email,
		Subject: subject,
		Body:    body,
	})
}
