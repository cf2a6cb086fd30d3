package booking

import (
	"time"

	"github.com/shopspring/decimal"
)

// Canonical booking status set. Older exports used a "confirmed" status in a
// few places; it folds into "scheduled" on import and is never emitted.
const (
	StatusPending   = "pending"
	StatusScheduled = "scheduled"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

const (
	PaymentPending  = "pending"
	PaymentPaid     = "paid"
	PaymentRefunded = "refunded"
)

// ActiveStatuses are the statuses that occupy a slot for conflict purposes.
var ActiveStatuses = []string{StatusPending, StatusScheduled}

type Booking struct {
	ID        int    `db:"id" json:"id"`
	Reference string `db:"reference" json:"reference"`

	CustomerID    *int   `db:"customer_id" json:"customer_id,omitempty"`
	CustomerName  string `db:"customer_name" json:"customer_name"`
	CustomerEmail string `db:"customer_email" json:"customer_email"`
	CustomerPhone string `db:"customer_phone" json:"customer_phone"`

	Service string `db:"service" json:"service"`
	Date    string `db:"date" json:"date"`
	Slot    string `db:"slot" json:"time"`

	Status        string          `db:"status" json:"status"`
	PaymentStatus string          `db:"payment_status" json:"payment_status"`
	Amount        decimal.Decimal `db:"amount" json:"amount"`

	Address   *string `db:"address" json:"address,omitempty"`
	Notes     *string `db:"notes" json:"notes,omitempty"`
	Emergency bool    `db:"emergency" json:"emergency"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

type CreateBookingRequest struct {
	CustomerName  string `json:"customer_name" binding:"required"`
	CustomerEmail string `json:"customer_email" binding:"required,email"`
	CustomerPhone string `json:"customer_phone"`

	Service string `json:"service" binding:"required"`
	Date    string `json:"date" binding:"required"`
	Time    string `json:"time" binding:"required"`

	Amount    decimal.Decimal `json:"amount"`
	Address   *string         `json:"address"`
	Notes     *string         `json:"notes"`
	Emergency bool            `json:"emergency"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending scheduled completed cancelled"`
}

type UpdatePaymentStatusRequest struct {
	PaymentStatus string `json:"payment_status" binding:"required,oneof=pending paid refunded"`
}

// Availability is the slot picture for a single date: the offerable slots
// after subtracting active bookings, or an empty list with the closure
// details when a day-off period covers the date.
type Availability struct {
	Date        string   `json:"date"`
	Slots       []string `json:"slots"`
	DayOff      bool     `json:"day_off"`
	DayOffTitle string   `json:"day_off_title,omitempty"`
	DayOffNote  string   `json:"day_off_note,omitempty"`
}

// CanTransition reports whether a booking status change is allowed.
// pending -> scheduled -> completed, with cancellation from any
// non-final state.
func CanTransition(from, to string) bool {
	if from == to {
		return false
	}
	switch from {
	case StatusPending:
		return to == StatusScheduled || to == StatusCancelled
	case StatusScheduled:
		return to == StatusCompleted || to == StatusCancelled
	default:
		return false
	}
}

// CanTransitionPayment reports whether a payment status change is allowed:
// pending -> paid -> refunded.
func CanTransitionPayment(from, to string) bool {
	switch from {
	case PaymentPending:
		return to == PaymentPaid
	case PaymentPaid:
		return to == PaymentRefunded
	default:
		return false
	}
}
