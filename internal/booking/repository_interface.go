package booking

import "context"

type ListFilter struct {
	Date     string
	Status   string
	Customer int
}

type Repository interface {
	Create(ctx context.Context, b *Booking) (*Booking, error)
	GetByID(ctx context.Context, id int) (*Booking, error)
	List(ctx context.Context, page, limit int, filter ListFilter) ([]Booking, int, error)

	// ActiveOnDate returns bookings whose status occupies a slot on the date.
	ActiveOnDate(ctx context.Context, date string) ([]Booking, error)

	// FindActiveBySlot returns the active booking holding the normalized
	// (date, slot) pair, if any.
	FindActiveBySlot(ctx context.Context, date, slot string) (*Booking, error)

	UpdateStatus(ctx context.Context, id int, status string) error
	UpdatePaymentStatus(ctx context.Context, id int, paymentStatus string) error
	Delete(ctx context.Context, id int) error
}
