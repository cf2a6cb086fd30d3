package booking

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"plumbdesk/internal/customer"
	"plumbdesk/internal/dayoff"
	"plumbdesk/internal/logger"
)

func TestMain(m *testing.M) {
	logger.Init()

	code := m.Run()
	os.Exit(code)
}

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, b *Booking) (*Booking, error) {
	args := m.Called(ctx, b)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Booking), args.Error(1)
}

func (m *MockRepository) GetByID(ctx context.Context, id int) (*Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Booking), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context, page, limit int, filter ListFilter) ([]Booking, int, error) {
	args := m.Called(ctx, page, limit, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]Booking), args.Int(1), args.Error(2)
}

func (m *MockRepository) ActiveOnDate(ctx context.Context, date string) ([]Booking, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Booking), args.Error(1)
}

func (m *MockRepository) FindActiveBySlot(ctx context.Context, date, slot string) (*Booking, error) {
	args := m.Called(ctx, date, slot)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Booking), args.Error(1)
}

func (m *MockRepository) UpdateStatus(ctx context.Context, id int, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockRepository) UpdatePaymentStatus(ctx context.Context, id int, paymentStatus string) error {
	args := m.Called(ctx, id, paymentStatus)
	return args.Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockDayOffService struct {
	mock.Mock
}

func (m *MockDayOffService) Create(ctx context.Context, req dayoff.CreatePeriodRequest) (*dayoff.Period, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dayoff.Period), args.Error(1)
}

func (m *MockDayOffService) GetAll(ctx context.Context) ([]dayoff.Period, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dayoff.Period), args.Error(1)
}

func (m *MockDayOffService) Update(ctx context.Context, id int, req dayoff.CreatePeriodRequest) (*dayoff.Period, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dayoff.Period), args.Error(1)
}

func (m *MockDayOffService) Delete(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockDayOffService) Check(ctx context.Context, date string) (*dayoff.Period, bool, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*dayoff.Period), args.Bool(1), args.Error(2)
}

func (m *MockDayOffService) CurrentBanner(ctx context.Context, today string) (*dayoff.Period, bool, error) {
	args := m.Called(ctx, today)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*dayoff.Period), args.Bool(1), args.Error(2)
}

type MockCustomerService struct {
	mock.Mock
}

func (m *MockCustomerService) Create(ctx context.Context, req customer.CreateCustomerRequest) (*customer.Customer, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Customer), args.Error(1)
}

func (m *MockCustomerService) GetByID(ctx context.Context, id int) (*customer.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Customer), args.Error(1)
}

func (m *MockCustomerService) List(ctx context.Context, page, limit int, search string) ([]customer.Customer, int, error) {
	args := m.Called(ctx, page, limit, search)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]customer.Customer), args.Int(1), args.Error(2)
}

func (m *MockCustomerService) Update(ctx context.Context, id int, req customer.UpdateCustomerRequest) (*customer.Customer, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Customer), args.Error(1)
}

func (m *MockCustomerService) Delete(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCustomerService) Resolve(ctx context.Context, name, email, phone, address string) (*customer.Customer, error) {
	args := m.Called(ctx, name, email, phone, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Customer), args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) SendBookingConfirmation(ctx context.Context, to, name, service, date, slot string) error {
	args := m.Called(ctx, to, name, service, date, slot)
	return args.Error(0)
}

func (m *MockNotifier) SendBookingNotification(ctx context.Context, to, customerName, service, date, slot, address string) error {
	args := m.Called(ctx, to, customerName, service, date, slot, address)
	return args.Error(0)
}

func (m *MockNotifier) SendBookingCancellation(ctx context.Context, to, name, service, date, slot string) error {
	args := m.Called(ctx, to, name, service, date, slot)
	return args.Error(0)
}

type serviceMocks struct {
	repo      *MockRepository
	dayoffSvc *MockDayOffService
	customers *MockCustomerService
	notifier  *MockNotifier
}

func newTestService(t *testing.T) (Service, *serviceMocks) {
	t.Helper()

	m := &serviceMocks{
		repo:      new(MockRepository),
		dayoffSvc: new(MockDayOffService),
		customers: new(MockCustomerService),
		notifier:  new(MockNotifier),
	}

	svc, err := NewService(m.repo, m.dayoffSvc, m.customers, m.notifier, SlotConfig{
		OpenTime:      "08:00",
		CloseTime:     "18:00",
		SlotMinutes:   60,
		BusinessEmail: "office@example.com",
	})
	require.NoError(t, err)

	return svc, m
}

func createRequest() CreateBookingRequest {
	return CreateBookingRequest{
		CustomerName:  "John Doe",
		CustomerEmail: "john@example.com",
		CustomerPhone: "07700900000",
		Service:       "Boiler repair",
		Date:          "2025-03-10",
		Time:          "10:00 - 11:00",
		Amount:        decimal.NewFromInt(120),
	}
}

func TestCreateBooking_Success(t *testing.T) {
	svc, m := newTestService(t)
	req := createRequest()

	m.dayoffSvc.On("Check", mock.Anything, "2025-03-10").Return(nil, false, nil)
	m.repo.On("FindActiveBySlot", mock.Anything, "2025-03-10", "10:00").Return(nil, sql.ErrNoRows)
	m.customers.On("Resolve", mock.Anything, "John Doe", "john@example.com", "07700900000", "").
		Return(&customer.Customer{ID: 7}, nil)
	m.repo.On("Create", mock.Anything, mock.MatchedBy(func(b *Booking) bool {
		return b.Slot == "10:00" &&
			b.Status == StatusPending &&
			b.PaymentStatus == PaymentPending &&
			b.CustomerID != nil && *b.CustomerID == 7 &&
			b.Reference != ""
	})).Return(&Booking{ID: 1, CustomerName: "John Doe", CustomerEmail: "john@example.com",
		Service: "Boiler repair", Date: "2025-03-10", Slot: "10:00"}, nil)
	m.notifier.On("SendBookingConfirmation", mock.Anything, "john@example.com", "John Doe",
		"Boiler repair", "2025-03-10", "10:00").Return(nil)
	m.notifier.On("SendBookingNotification", mock.Anything, "office@example.com", "John Doe",
		"Boiler repair", "2025-03-10", "10:00", "").Return(nil)

	created, err := svc.Create(context.Background(), req, "website")

	require.NoError(t, err)
	assert.Equal(t, 1, created.ID)
	m.repo.AssertExpectations(t)
	m.notifier.AssertExpectations(t)
}

func TestCreateBooking_ConflictWithRangeLabel(t *testing.T) {
	// A booking stored as "10:00" must block a request for "10:00 - 11:00".
	svc, m := newTestService(t)
	req := createRequest()
	req.Time = "10:00 - 11:00"

	m.dayoffSvc.On("Check", mock.Anything, "2025-03-10").Return(nil, false, nil)
	m.repo.On("FindActiveBySlot", mock.Anything, "2025-03-10", "10:00").
		Return(&Booking{ID: 3, CustomerName: "Jane Smith", Slot: "10:00"}, nil)

	_, err := svc.Create(context.Background(), req, "website")

	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Contains(t, conflict.Message, "Jane Smith")
	m.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateBooking_AdjacentSlotDoesNotConflict(t *testing.T) {
	svc, m := newTestService(t)
	req := createRequest()
	req.Time = "11:00"

	m.dayoffSvc.On("Check", mock.Anything, "2025-03-10").Return(nil, false, nil)
	m.repo.On("FindActiveBySlot", mock.Anything, "2025-03-10", "11:00").Return(nil, sql.ErrNoRows)
	m.customers.On("Resolve", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&customer.Customer{ID: 7}, nil)
	m.repo.On("Create", mock.Anything, mock.Anything).
		Return(&Booking{ID: 2, Date: "2025-03-10", Slot: "11:00"}, nil)
	m.notifier.On("SendBookingConfirmation", mock.Anything, mock.Anything, mock.Anything,
		mock.Anything, mock.Anything, mock.Anything).Return(nil)
	m.notifier.On("SendBookingNotification", mock.Anything, mock.Anything, mock.Anything,
		mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	created, err := svc.Create(context.Background(), req, "website")

	require.NoError(t, err)
	assert.Equal(t, "11:00", created.Slot)
}

func TestCreateBooking_InsertRace(t *testing.T) {
	// The pre-check passes but a concurrent writer wins the insert; the
	// unique index violation still surfaces as a conflict.
	svc, m := newTestService(t)
	req := createRequest()

	m.dayoffSvc.On("Check", mock.Anything, "2025-03-10").Return(nil, false, nil)
	m.repo.On("FindActiveBySlot", mock.Anything, "2025-03-10", "10:00").Return(nil, sql.ErrNoRows)
	m.customers.On("Resolve", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&customer.Customer{ID: 7}, nil)
	m.repo.On("Create", mock.Anything, mock.Anything).Return(nil, ErrSlotTaken)

	_, err := svc.Create(context.Background(), req, "website")

	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
}

func TestCreateBooking_DayOffBlocks(t *testing.T) {
	svc, m := newTestService(t)
	req := createRequest()
	req.Date = "2024-12-25"

	m.dayoffSvc.On("Check", mock.Anything, "2024-12-25").
		Return(&dayoff.Period{Title: "Christmas"}, true, nil)

	_, err := svc.Create(context.Background(), req, "website")

	var dayOff *DayOffError
	require.ErrorAs(t, err, &dayOff)
	assert.Equal(t, "Christmas", dayOff.Title)
	m.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateBooking_EmergencyOverridesDayOff(t *testing.T) {
	svc, m := newTestService(t)
	req := createRequest()
	req.Date = "2024-12-25"
	req.Emergency = true

	m.dayoffSvc.On("Check", mock.Anything, "2024-12-25").
		Return(&dayoff.Period{Title: "Christmas"}, true, nil)
	m.repo.On("FindActiveBySlot", mock.Anything, "2024-12-25", "10:00").Return(nil, sql.ErrNoRows)
	m.customers.On("Resolve", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&customer.Customer{ID: 7}, nil)
	m.repo.On("Create", mock.Anything, mock.Anything).
		Return(&Booking{ID: 4, Date: "2024-12-25", Slot: "10:00", Emergency: true}, nil)
	m.notifier.On("SendBookingConfirmation", mock.Anything, mock.Anything, mock.Anything,
		mock.Anything, mock.Anything, mock.Anything).Return(nil)
	m.notifier.On("SendBookingNotification", mock.Anything, mock.Anything, mock.Anything,
		mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	created, err := svc.Create(context.Background(), req, "website")

	require.NoError(t, err)
	assert.True(t, created.Emergency)
}

func TestCreateBooking_EmailFailureDoesNotBlock(t *testing.T) {
	svc, m := newTestService(t)
	req := createRequest()

	m.dayoffSvc.On("Check", mock.Anything, "2025-03-10").Return(nil, false, nil)
	m.repo.On("FindActiveBySlot", mock.Anything, "2025-03-10", "10:00").Return(nil, sql.ErrNoRows)
	m.customers.On("Resolve", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&customer.Customer{ID: 7}, nil)
	m.repo.On("Create", mock.Anything, mock.Anything).
		Return(&Booking{ID: 5, Date: "2025-03-10", Slot: "10:00"}, nil)
	m.notifier.On("SendBookingConfirmation", mock.Anything, mock.Anything, mock.Anything,
		mock.Anything, mock.Anything, mock.Anything).Return(errors.New("redis down"))
	m.notifier.On("SendBookingNotification", mock.Anything, mock.Anything, mock.Anything,
		mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("redis down"))

	created, err := svc.Create(context.Background(), req, "website")

	require.NoError(t, err)
	assert.Equal(t, 5, created.ID)
}

func TestCreateBooking_InvalidInput(t *testing.T) {
	svc, _ := newTestService(t)

	req := createRequest()
	req.Date = "10/03/2025"
	_, err := svc.Create(context.Background(), req, "website")
	assert.ErrorIs(t, err, ErrInvalidDate)

	req = createRequest()
	req.Time = "10:30"
	_, err = svc.Create(context.Background(), req, "website")
	assert.ErrorIs(t, err, ErrInvalidSlot)
}

func TestAvailability_SubtractsActiveBookings(t *testing.T) {
	svc, m := newTestService(t)

	m.dayoffSvc.On("Check", mock.Anything, "2025-03-10").Return(nil, false, nil)
	m.repo.On("ActiveOnDate", mock.Anything, "2025-03-10").Return([]Booking{
		{Slot: "09:00"},
		{Slot: "14:00 - 15:00"},
	}, nil)

	availability, err := svc.Availability(context.Background(), "2025-03-10", false)

	require.NoError(t, err)
	assert.False(t, availability.DayOff)
	assert.NotContains(t, availability.Slots, "09:00")
	assert.NotContains(t, availability.Slots, "14:00")
	assert.Contains(t, availability.Slots, "10:00")
	assert.Len(t, availability.Slots, 8)
}

func TestAvailability_DayOff(t *testing.T) {
	svc, m := newTestService(t)

	note := "Closed for the holidays"
	m.dayoffSvc.On("Check", mock.Anything, "2024-12-25").
		Return(&dayoff.Period{Title: "Christmas", Description: &note}, true, nil)

	availability, err := svc.Availability(context.Background(), "2024-12-25", false)

	require.NoError(t, err)
	assert.True(t, availability.DayOff)
	assert.Equal(t, "Christmas", availability.DayOffTitle)
	assert.Equal(t, note, availability.DayOffNote)
	assert.Empty(t, availability.Slots)
	m.repo.AssertNotCalled(t, "ActiveOnDate", mock.Anything, mock.Anything)
}

func TestAvailability_DayOffEmergencyStillListsSlots(t *testing.T) {
	svc, m := newTestService(t)

	m.dayoffSvc.On("Check", mock.Anything, "2024-12-25").
		Return(&dayoff.Period{Title: "Christmas"}, true, nil)
	m.repo.On("ActiveOnDate", mock.Anything, "2024-12-25").Return([]Booking{}, nil)

	availability, err := svc.Availability(context.Background(), "2024-12-25", true)

	require.NoError(t, err)
	assert.True(t, availability.DayOff)
	assert.Len(t, availability.Slots, 10)
}

func TestUpdateStatus_CancellationSendsEmail(t *testing.T) {
	svc, m := newTestService(t)

	m.repo.On("GetByID", mock.Anything, 9).Return(&Booking{
		ID: 9, Status: StatusScheduled, CustomerEmail: "john@example.com",
		CustomerName: "John Doe", Service: "Boiler repair", Date: "2025-03-10", Slot: "10:00",
	}, nil)
	m.repo.On("UpdateStatus", mock.Anything, 9, StatusCancelled).Return(nil)
	m.notifier.On("SendBookingCancellation", mock.Anything, "john@example.com", "John Doe",
		"Boiler repair", "2025-03-10", "10:00").Return(nil)

	updated, err := svc.UpdateStatus(context.Background(), 9, StatusCancelled)

	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, updated.Status)
	m.notifier.AssertExpectations(t)
}

func TestUpdateStatus_InvalidTransition(t *testing.T) {
	svc, m := newTestService(t)

	m.repo.On("GetByID", mock.Anything, 9).Return(&Booking{ID: 9, Status: StatusCompleted}, nil)

	_, err := svc.UpdateStatus(context.Background(), 9, StatusPending)

	assert.ErrorIs(t, err, ErrInvalidTransition)
	m.repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdatePaymentStatus(t *testing.T) {
	svc, m := newTestService(t)

	m.repo.On("GetByID", mock.Anything, 9).Return(&Booking{ID: 9, PaymentStatus: PaymentPending}, nil)
	m.repo.On("UpdatePaymentStatus", mock.Anything, 9, PaymentPaid).Return(nil)

	updated, err := svc.UpdatePaymentStatus(context.Background(), 9, PaymentPaid)

	require.NoError(t, err)
	assert.Equal(t, PaymentPaid, updated.PaymentStatus)
}

func TestUpdatePaymentStatus_InvalidTransition(t *testing.T) {
	svc, m := newTestService(t)

	m.repo.On("GetByID", mock.Anything, 9).Return(&Booking{ID: 9, PaymentStatus: PaymentRefunded}, nil)

	_, err := svc.UpdatePaymentStatus(context.Background(), 9, PaymentPaid)

	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(StatusPending, StatusScheduled))
	assert.True(t, CanTransition(StatusScheduled, StatusCompleted))
	assert.True(t, CanTransition(StatusScheduled, StatusCancelled))
	assert.False(t, CanTransition(StatusCompleted, StatusCancelled))
	assert.False(t, CanTransition(StatusCancelled, StatusScheduled))
	assert.False(t, CanTransition(StatusPending, StatusPending))
}
