package payment

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"plumbdesk/internal/dayoff"
	"plumbdesk/internal/logger"
	"plumbdesk/internal/metrics"
)

var (
	ErrInvalidDate   = errors.New("payment_date must be in YYYY-MM-DD format")
	ErrInvalidAmount = errors.New("amount must be positive")
)

// LinkMailer delivers payment link emails. Delivery is best-effort; a
// failed email leaves the link usable from the dashboard.
type LinkMailer interface {
	SendPaymentLink(ctx context.Context, to, name, linkURL string, amount decimal.Decimal) error
}

type Service interface {
	Record(ctx context.Context, req RecordPaymentRequest) (*Payment, error)
	CreateLink(ctx context.Context, req CreateLinkRequest) (*Payment, error)
	HandleWebhook(ctx context.Context, body []byte, signatureHeader string) (*Payment, error)
	GetByID(ctx context.Context, id int) (*Payment, error)
	List(ctx context.Context, page, limit int, filter ListFilter) ([]Payment, int, error)
	Delete(ctx context.Context, id int) error
}

type service struct {
	repo          Repository
	provider      Provider
	mailer        LinkMailer
	webhookSecret string
}

func NewService(repo Repository, provider Provider, mailer LinkMailer, webhookSecret string) Service {
	return &service{
		repo:          repo,
		provider:      provider,
		mailer:        mailer,
		webhookSecret: webhookSecret,
	}
}

func (s *service) Record(ctx context.Context, req RecordPaymentRequest) (*Payment, error) {
	if _, err := dayoff.ParseDate(req.PaymentDate); err != nil {
		return nil, ErrInvalidDate
	}
	if !req.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	created, err := s.repo.Create(ctx, &Payment{
		BookingID:   req.BookingID,
		CustomerID:  req.CustomerID,
		Amount:      req.Amount,
		Method:      req.Method,
		Status:      StatusPaid,
		PaymentDate: req.PaymentDate,
		Notes:       req.Notes,
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordPayment(created.Method, created.Status)
	return created, nil
}

func (s *service) CreateLink(ctx context.Context, req CreateLinkRequest) (*Payment, error) {
	if !req.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	session, err := s.provider.CreateCheckoutSession(ctx, req.Amount, req.Description, req.CustomerEmail)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, &Payment{
		BookingID:         req.BookingID,
		CustomerID:        req.CustomerID,
		Amount:            req.Amount,
		Method:            MethodLink,
		Status:            StatusPending,
		PaymentDate:       time.Now().Format(dayoff.DateLayout),
		ProviderSessionID: &session.ID,
		LinkURL:           &session.URL,
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordPaymentLink()

	if err := s.mailer.SendPaymentLink(ctx, req.CustomerEmail, req.CustomerName, session.URL, req.Amount); err != nil {
		logger.Errorf("Failed to queue payment link email for %s: %v", req.CustomerEmail, err)
		return created, nil
	}

	if err := s.repo.MarkLinkEmailed(ctx, created.ID, req.CustomerEmail); err != nil {
		logger.Errorf("Failed to stamp link email delivery on payment %d: %v", created.ID, err)
		return created, nil
	}

	sentTo := req.CustomerEmail
	now := time.Now()
	created.LinkEmailSentTo = &sentTo
	created.LinkEmailSentAt = &now

	return created, nil
}

func (s *service) HandleWebhook(ctx context.Context, body []byte, signatureHeader string) (*Payment, error) {
	if err := VerifySignature(s.webhookSecret, signatureHeader, body, time.Now()); err != nil {
		metrics.RecordWebhookEvent("rejected")
		return nil, err
	}

	var event WebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		metrics.RecordWebhookEvent("malformed")
		return nil, err
	}

	status, known := StatusForEvent(event.Type)
	if !known {
		metrics.RecordWebhookEvent("ignored")
		logger.Infof("Ignoring webhook event type %q", event.Type)
		return nil, nil
	}

	updated, err := s.repo.ApplyWebhookStatus(ctx, event.SessionID, status)
	if err != nil {
		metrics.RecordWebhookEvent("error")
		return nil, err
	}

	metrics.RecordWebhookEvent("processed")
	metrics.RecordPayment(updated.Method, updated.Status)
	return updated, nil
}

func (s *service) GetByID(ctx context.Context, id int) (*Payment, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *service) List(ctx context.Context, page, limit int, filter ListFilter) ([]Payment, int, error) {
	return s.repo.List(ctx, page, limit, filter)
}

func (s *service) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}
