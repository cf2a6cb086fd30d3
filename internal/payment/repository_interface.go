package payment

import "context"

type Repository interface {
	Create(ctx context.Context, p *Payment) (*Payment, error)
	GetByID(ctx context.Context, id int) (*Payment, error)
	List(ctx context.Context, page, limit int, filter ListFilter) ([]Payment, int, error)

	// MarkLinkEmailed stamps the link delivery columns after the payment
	// link email is queued.
	MarkLinkEmailed(ctx context.Context, id int, to string) error

	// ApplyWebhookStatus updates the payment identified by the provider
	// session and mirrors paid/refunded onto the linked booking in the
	// same transaction.
	ApplyWebhookStatus(ctx context.Context, sessionID, status string) (*Payment, error)

	Delete(ctx context.Context, id int) error
}
