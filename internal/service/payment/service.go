package payment

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/hms-backend/hms-api/internal/model"
	"github.com/hms-backend/hms-api/internal/repository"
	"github.com/hms-backend/hms-api/pkg/errors"
	"github.com/hms-backend/hms-api/pkg/payment"
)

type Service struct {
	gateway      payment.Gateway
	invoices     repository.InvoiceRepository
	appointments repository.AppointmentRepository
}

func NewService(gateway payment.Gateway, invoices repository.InvoiceRepository, appointments repository.AppointmentRepository) *Service {
	return &Service{gateway: gateway, invoices: invoices, appointments: appointments}
}

// CreateOrder opens a gateway order for an appointment and records the
// invoice. One invoice per appointment.
func (s *Service) CreateOrder(ctx context.Context, req *model.CreatePaymentOrderRequest) (*model.Invoice, error) {
	apt, err := s.appointments.Get(ctx, req.AppointmentID)
	if err != nil {
		return nil, err
	}
	if apt.Status == model.AppointmentStatusCancelled {
		return nil, errors.Conflict("cannot invoice a cancelled appointment")
	}

	if existing, err := s.invoices.GetByAppointment(ctx, req.AppointmentID); err == nil {
		return existing, nil
	} else if !errors.IsCode(err, errors.ErrNotFound) {
		return nil, err
	}

	order, err := s.gateway.CreateOrder(ctx, &payment.OrderRequest{
		ReferenceID: apt.ID.String(),
		AmountCents: req.AmountCents,
		Currency:    req.Currency,
		Description: "consultation fee",
	})
	if err != nil {
		return nil, errors.Internal("payment gateway unavailable", err)
	}

	invoice := &model.Invoice{
		AppointmentID: apt.ID,
		OrderID:       order.OrderID,
		AmountCents:   req.AmountCents,
		Currency:      req.Currency,
		Status:        model.InvoiceStatusCreated,
		PaymentLink:   order.PaymentLink,
	}
	if err := s.invoices.Create(ctx, invoice); err != nil {
		return nil, err
	}
	return invoice, nil
}

// HandleWebhook processes the gateway's payment confirmation. Repeat
// deliveries of the same confirmation are acknowledged without effect.
func (s *Service) HandleWebhook(ctx context.Context, req *model.PaymentWebhookRequest) error {
	invoice, err := s.invoices.GetByOrderID(ctx, req.OrderID)
	if err != nil {
		return err
	}

	if invoice.Status == model.InvoiceStatusPaid {
		return nil
	}

	if req.Status != "paid" {
		log.Warn().
			Str("order_id", req.OrderID).
			Str("status", req.Status).
			Msg("ignoring non-payment webhook")
		return nil
	}

	invoice.Status = model.InvoiceStatusPaid
	invoice.PaymentID = req.PaymentID
	if err := s.invoices.Update(ctx, invoice); err != nil {
		return err
	}

	apt, err := s.appointments.Get(ctx, invoice.AppointmentID)
	if err != nil {
		return fmt.Errorf("invoice %s references missing appointment: %w", invoice.ID, err)
	}
	apt.PaymentRef = &req.PaymentID
	return s.appointments.Update(ctx, apt)
}

func (s *Service) GetByAppointment(ctx context.Context, appointmentID uuid.UUID) (*model.Invoice, error) {
	return s.invoices.GetByAppointment(ctx, appointmentID)
}
