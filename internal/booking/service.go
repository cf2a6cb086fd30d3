package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"plumbdesk/internal/customer"
	"plumbdesk/internal/dayoff"
	"plumbdesk/internal/logger"
	"plumbdesk/internal/metrics"
)

var (
	ErrInvalidDate       = errors.New("date must be in YYYY-MM-DD format")
	ErrInvalidSlot       = errors.New("time slot is not offered")
	ErrInvalidTransition = errors.New("status transition not allowed")
)

// ConflictError carries the human-readable message for a 409 response when
// a slot is already occupied.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// DayOffError rejects a normal booking on a closure date. Emergency
// bookings bypass it.
type DayOffError struct {
	Title string
}

func (e *DayOffError) Error() string {
	return fmt.Sprintf("business is closed: %s", e.Title)
}

// Notifier sends the booking emails. Failures are logged and swallowed;
// email never blocks a booking.
type Notifier interface {
	SendBookingConfirmation(ctx context.Context, to, name, service, date, slot string) error
	SendBookingNotification(ctx context.Context, to, customerName, service, date, slot, address string) error
	SendBookingCancellation(ctx context.Context, to, name, service, date, slot string) error
}

// SlotConfig carries the working-hours template plus the office address for
// notification mail.
type SlotConfig struct {
	OpenTime      string
	CloseTime     string
	SlotMinutes   int
	BusinessEmail string
}

type Service interface {
	Create(ctx context.Context, req CreateBookingRequest, source string) (*Booking, error)
	GetByID(ctx context.Context, id int) (*Booking, error)
	List(ctx context.Context, page, limit int, filter ListFilter) ([]Booking, int, error)
	Availability(ctx context.Context, date string, emergency bool) (*Availability, error)
	UpdateStatus(ctx context.Context, id int, status string) (*Booking, error)
	UpdatePaymentStatus(ctx context.Context, id int, paymentStatus string) (*Booking, error)
	Delete(ctx context.Context, id int) error
}

type service struct {
	repo      Repository
	dayoffSvc dayoff.Service
	customers customer.Service
	notifier  Notifier
	template  []string
	cfg       SlotConfig
}

func NewService(
	repo Repository,
	dayoffSvc dayoff.Service,
	customers customer.Service,
	notifier Notifier,
	cfg SlotConfig,
) (Service, error) {
	template, err := SlotTemplate(cfg.OpenTime, cfg.CloseTime, cfg.SlotMinutes)
	if err != nil {
		return nil, err
	}

	return &service{
		repo:      repo,
		dayoffSvc: dayoffSvc,
		customers: customers,
		notifier:  notifier,
		template:  template,
		cfg:       cfg,
	}, nil
}

func (s *service) Create(ctx context.Context, req CreateBookingRequest, source string) (*Booking, error) {
	if _, err := dayoff.ParseDate(req.Date); err != nil {
		return nil, ErrInvalidDate
	}

	slot := NormalizeSlot(req.Time)
	if !s.slotOffered(slot) {
		return nil, ErrInvalidSlot
	}

	period, closed, err := s.dayoffSvc.Check(ctx, req.Date)
	if err != nil {
		return nil, err
	}
	if closed && !req.Emergency {
		return nil, &DayOffError{Title: period.Title}
	}

	// Pre-check so the caller gets a message naming the conflicting
	// customer. The unique index below still catches concurrent writers.
	existing, err := s.repo.FindActiveBySlot(ctx, req.Date, slot)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if existing != nil {
		metrics.RecordBookingConflict()
		return nil, &ConflictError{
			Message: fmt.Sprintf("This time slot is already booked by %s", existing.CustomerName),
		}
	}

	cust, err := s.customers.Resolve(ctx, req.CustomerName, req.CustomerEmail, req.CustomerPhone, deref(req.Address))
	if err != nil {
		return nil, err
	}

	booking := &Booking{
		Reference:     uuid.NewString(),
		CustomerID:    &cust.ID,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		Service:       req.Service,
		Date:          req.Date,
		Slot:          slot,
		Status:        StatusPending,
		PaymentStatus: PaymentPending,
		Amount:        req.Amount,
		Address:       req.Address,
		Notes:         req.Notes,
		Emergency:     req.Emergency,
	}

	created, err := s.repo.Create(ctx, booking)
	if err != nil {
		if errors.Is(err, ErrSlotTaken) {
			metrics.RecordBookingConflict()
			return nil, &ConflictError{Message: "This time slot is already booked"}
		}
		return nil, err
	}

	metrics.RecordBooking(source, req.Emergency)

	// Best-effort notifications, log and continue on failure.
	if err := s.notifier.SendBookingConfirmation(ctx, created.CustomerEmail, created.CustomerName,
		created.Service, created.Date, created.Slot); err != nil {
		logger.Errorf("Failed to queue booking confirmation for %s: %v", created.CustomerEmail, err)
	}
	if err := s.notifier.SendBookingNotification(ctx, s.cfg.BusinessEmail, created.CustomerName,
		created.Service, created.Date, created.Slot, deref(created.Address)); err != nil {
		logger.Errorf("Failed to queue booking notification: %v", err)
	}

	return created, nil
}

func (s *service) GetByID(ctx context.Context, id int) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return b, nil
}

func (s *service) List(ctx context.Context, page, limit int, filter ListFilter) ([]Booking, int, error) {
	return s.repo.List(ctx, page, limit, filter)
}

func (s *service) Availability(ctx context.Context, date string, emergency bool) (*Availability, error) {
	if _, err := dayoff.ParseDate(date); err != nil {
		return nil, ErrInvalidDate
	}

	result := &Availability{Date: date, Slots: []string{}}

	period, closed, err := s.dayoffSvc.Check(ctx, date)
	if err != nil {
		return nil, err
	}
	if closed {
		result.DayOff = true
		result.DayOffTitle = period.Title
		if period.Description != nil {
			result.DayOffNote = *period.Description
		}
		if !emergency {
			return result, nil
		}
	}

	active, err := s.repo.ActiveOnDate(ctx, date)
	if err != nil {
		return nil, err
	}

	booked := make([]string, 0, len(active))
	for _, b := range active {
		booked = append(booked, b.Slot)
	}

	result.Slots = SubtractBooked(s.template, booked)
	return result, nil
}

func (s *service) UpdateStatus(ctx context.Context, id int, status string) (*Booking, error) {
	b, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !CanTransition(b.Status, status) {
		return nil, ErrInvalidTransition
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}

	if status == StatusCancelled {
		metrics.RecordBookingCancellation()
		if err := s.notifier.SendBookingCancellation(ctx, b.CustomerEmail, b.CustomerName,
			b.Service, b.Date, b.Slot); err != nil {
			logger.Errorf("Failed to queue cancellation email for %s: %v", b.CustomerEmail, err)
		}
	}

	b.Status = status
	return b, nil
}

func (s *service) UpdatePaymentStatus(ctx context.Context, id int, paymentStatus string) (*Booking, error) {
	b, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !CanTransitionPayment(b.PaymentStatus, paymentStatus) {
		return nil, ErrInvalidTransition
	}

	if err := s.repo.UpdatePaymentStatus(ctx, id, paymentStatus); err != nil {
		return nil, err
	}

	b.PaymentStatus = paymentStatus
	return b, nil
}

func (s *service) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}

func (s *service) slotOffered(slot string) bool {
	for _, t := range s.template {
		if t == slot {
			return true
		}
	}
	return false
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
