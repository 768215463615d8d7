package model

import "github.com/google/uuid"

type InvoiceStatus string

const (
	InvoiceStatusCreated InvoiceStatus = "created"
	InvoiceStatusPaid    InvoiceStatus = "paid"
)

// Invoice ties a gateway order to an appointment. The gateway itself is
// opaque: on confirmation the appointment gets the payment reference.
type Invoice struct {
	Base
	AppointmentID uuid.UUID     `db:"appointment_id" json:"appointment_id"`
	OrderID       string        `db:"order_id" json:"order_id"`
	PaymentID     string        `db:"payment_id" json:"payment_id,omitempty"`
	AmountCents   int64         `db:"amount_cents" json:"amount_cents"`
	Currency      string        `db:"currency" json:"currency"`
	Status        InvoiceStatus `db:"status" json:"status"`
	PaymentLink   string        `db:"payment_link" json:"payment_link,omitempty"`
}

type CreatePaymentOrderRequest struct {
	AppointmentID uuid.UUID `json:"appointment_id" binding:"required"`
	AmountCents   int64     `json:"amount_cents" binding:"required,gt=0"`
	Currency      string    `json:"currency" binding:"required,len=3"`
}

// PaymentWebhookRequest is the gateway's payment-confirmation callback.
type PaymentWebhookRequest struct {
	OrderID   string `json:"order_id" binding:"required"`
	PaymentID string `json:"payment_id" binding:"required"`
	Status    string `json:"status" binding:"required"`
}
