package payment

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	MethodCash         = "cash"
	MethodCard         = "card"
	MethodBankTransfer = "bank_transfer"
	MethodCheque       = "cheque"
	MethodLink         = "payment_link"
)

const (
	StatusPending  = "pending"
	StatusPaid     = "paid"
	StatusRefunded = "refunded"
	StatusFailed   = "failed"
)

// Payment is a money record against a booking or customer. Link lifecycle
// fields are typed columns, not notes text, so the dashboard can filter and
// sort on them.
type Payment struct {
	ID         int  `db:"id" json:"id"`
	BookingID  *int `db:"booking_id" json:"booking_id,omitempty"`
	CustomerID *int `db:"customer_id" json:"customer_id,omitempty"`

	Amount      decimal.Decimal `db:"amount" json:"amount"`
	Method      string          `db:"method" json:"method"`
	Status      string          `db:"status" json:"status"`
	PaymentDate string          `db:"payment_date" json:"payment_date"`

	ProviderSessionID *string    `db:"provider_session_id" json:"provider_session_id,omitempty"`
	LinkURL           *string    `db:"link_url" json:"link_url,omitempty"`
	LinkEmailSentTo   *string    `db:"link_email_sent_to" json:"link_email_sent_to,omitempty"`
	LinkEmailSentAt   *time.Time `db:"link_email_sent_at" json:"link_email_sent_at,omitempty"`

	Notes *string `db:"notes" json:"notes,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// RecordPaymentRequest records a payment taken outside the provider, for
// example cash on the doorstep.
type RecordPaymentRequest struct {
	BookingID  *int `json:"booking_id"`
	CustomerID *int `json:"customer_id"`

	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Method      string          `json:"method" binding:"required,oneof=cash card bank_transfer cheque"`
	PaymentDate string          `json:"payment_date" binding:"required"`

	Notes *string `json:"notes"`
}

type CreateLinkRequest struct {
	BookingID  *int `json:"booking_id"`
	CustomerID *int `json:"customer_id"`

	Amount        decimal.Decimal `json:"amount" binding:"required"`
	CustomerEmail string          `json:"customer_email" binding:"required,email"`
	CustomerName  string          `json:"customer_name" binding:"required"`
	Description   string          `json:"description"`
}

type ListFilter struct {
	BookingID  int
	CustomerID int
	Status     string
}

// WebhookEvent is the provider's callback payload.
type WebhookEvent struct {
	Type      string `json:"type"`
	SessionID string `json:"session_id"`
}

const (
	EventSessionCompleted = "checkout.session.completed"
	EventSessionExpired   = "checkout.session.expired"
	EventPaymentRefunded  = "payment.refunded"
	EventPaymentFailed    = "payment.failed"
)

// StatusForEvent maps a webhook event type onto a payment status. Unknown
// event types are acknowledged but change nothing.
func StatusForEvent(eventType string) (string, bool) {
	switch eventType {
	case EventSessionCompleted:
		return StatusPaid, true
	case EventPaymentRefunded:
		return StatusRefunded, true
	case EventSessionExpired, EventPaymentFailed:
		return StatusFailed, true
	default:
		return "", false
	}
}
