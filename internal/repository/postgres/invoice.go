package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hms-backend/hms-api/internal/model"
	"github.com/hms-backend/hms-api/pkg/errors"
)

func (r *invoiceRepository) Create(ctx context.Context, invoice *model.Invoice) error {
	query := `
		INSERT INTO invoices (
			id, appointment_id, order_id, payment_id, amount_cents,
			currency, status, payment_link, created_at, updated_at
		) VALUES (
			:id, :appointment_id, :order_id, :payment_id, :amount_cents,
			:currency, :status, :payment_link, :created_at, :updated_at
		)
	`
	invoice.ID = uuid.New()
	invoice.CreatedAt = time.Now()
	invoice.UpdatedAt = time.Now()

	if _, err := r.db.NamedExecContext(ctx, query, invoice); err != nil {
		return fmt.Errorf("failed to create invoice: %w", err)
	}
	return nil
}

func (r *invoiceRepository) GetByOrderID(ctx context.Context, orderID string) (*model.Invoice, error) {
	query := `SELECT * FROM invoices WHERE order_id = $1`

	var invoice model.Invoice
	if err := r.db.GetContext(ctx, &invoice, query, orderID); err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NotFound("invoice", err)
		}
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}
	return &invoice, nil
}

func (r *invoiceRepository) Update(ctx context.Context, invoice *model.Invoice) error {
	query := `
		UPDATE invoices
		SET payment_id = :payment_id, status = :status, updated_at = :updated_at
		WHERE id = :id
	`
	invoice.UpdatedAt = time.Now()

	result, err := r.db.NamedExecContext(ctx, query, invoice)
	if err != nil {
		return fmt.Errorf("failed to update invoice: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return errors.NotFound("invoice", nil)
	}
	return nil
}

func (r *invoiceRepository) GetByAppointment(ctx context.Context, appointmentID uuid.UUID) (*model.Invoice, error) {
	query := `SELECT * FROM invoices WHERE appointment_id = $1 ORDER BY created_at DESC LIMIT 1`

	var invoice model.Invoice
	if err := r.db.GetContext(ctx, &invoice, query, appointmentID); err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NotFound("invoice", err)
		}
		return nil, fmt.Errorf("failed to get invoice by appointment: %w", err)
	}
	return &invoice, nil
}
