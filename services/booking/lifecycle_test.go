package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	bookingRepo "smartbooking/database/repository/booking"
	"smartbooking/models"
	"smartbooking/services/resource"
)

// --- fakes ---

type fakeBookingRepo struct {
	bookings      map[string]*models.Booking
	conflictOnAdd bool
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[string]*models.Booking)}
}

func (r *fakeBookingRepo) Create(_ context.Context, b *models.Booking) error {
	if r.conflictOnAdd {
		return bookingRepo.ErrConflict
	}
	copied := *b
	r.bookings[b.ID] = &copied
	return nil
}

func (r *fakeBookingRepo) GetByID(id string) (*models.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrNotFound
	}
	copied := *b
	return &copied, nil
}

func (r *fakeBookingRepo) UpdateStatus(id string, status models.BookingStatus) error {
	b, ok := r.bookings[id]
	if !ok {
		return bookingRepo.ErrNotFound
	}
	b.Status = status
	return nil
}

func (r *fakeBookingRepo) UpdateTimes(id string, slot models.Timeslot, price float64) error {
	b, ok := r.bookings[id]
	if !ok {
		return bookingRepo.ErrNotFound
	}
	b.StartTime = slot.Start
	b.EndTime = slot.End
	b.Price = price
	return nil
}

func (r *fakeBookingRepo) Delete(id string) error {
	if _, ok := r.bookings[id]; !ok {
		return bookingRepo.ErrNotFound
	}
	delete(r.bookings, id)
	return nil
}

func (r *fakeBookingRepo) FindByUser(userID string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range r.bookings {
		if b.UserID == userID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) FindPendingApproval() ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range r.bookings {
		if b.Status == models.StatusRequested {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) FindOverlapping(_ context.Context, resourceID string, start, end time.Time) ([]models.Booking, error) {
	slot := models.Timeslot{Start: start, End: end}
	var out []models.Booking
	for _, b := range r.bookings {
		if b.ResourceID == resourceID && b.Status.IsLive() && b.Slot().Overlaps(slot) {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) FindByResourceAndDay(resourceID string, day time.Time) ([]models.Booking, error) {
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	dayEnd := dayStart.Add(24 * time.Hour)
	var out []models.Booking
	for _, b := range r.bookings {
		if b.ResourceID == resourceID && b.Status.IsLive() && b.StartTime.Before(dayEnd) && b.EndTime.After(dayStart) {
			out = append(out, *b)
		}
	}
	return out, nil
}

type fakeResourceService struct {
	resources map[string]*models.Resource
}

func (s *fakeResourceService) ListResources() ([]models.Resource, error) { return nil, nil }

func (s *fakeResourceService) GetResource(id string) (*models.Resource, error) {
	res, ok := s.resources[id]
	if !ok {
		return nil, resource.ErrNotFound
	}
	return res, nil
}

func (s *fakeResourceService) CreateResource(res *models.Resource) (*models.Resource, error) {
	return res, nil
}

func (s *fakeResourceService) UpdateResource(*models.Resource) error { return nil }

type recordedPayment struct {
	bookingID string
	amount    float64
	method    string
}

type fakePaymentService struct {
	payments []recordedPayment
	refunds  []recordedPayment
}

func (s *fakePaymentService) RecordPayment(_ context.Context, bookingID string, amount float64, method string) (*models.Payment, error) {
	s.payments = append(s.payments, recordedPayment{bookingID: bookingID, amount: amount, method: method})
	return &models.Payment{BookingID: bookingID, Amount: amount, Method: method, Status: models.PaymentPaid}, nil
}

func (s *fakePaymentService) RecordRefund(_ context.Context, bookingID string, amount float64) (*models.Payment, error) {
	s.refunds = append(s.refunds, recordedPayment{bookingID: bookingID, amount: amount, method: models.MethodRefund})
	return &models.Payment{BookingID: bookingID, Amount: amount, Method: models.MethodRefund, Status: models.PaymentRefunded}, nil
}

func (s *fakePaymentService) ListByBooking(string) ([]models.Payment, error) { return nil, nil }

type recordedAudit struct {
	userID, action, details string
}

type fakeAuditService struct {
	entries []recordedAudit
}

func (s *fakeAuditService) Log(userID, action, details string) error {
	s.entries = append(s.entries, recordedAudit{userID: userID, action: action, details: details})
	return nil
}

func (s *fakeAuditService) ListLogs() ([]models.AuditLog, error) { return nil, nil }

// --- fixture ---

type lifecycleFixture struct {
	svc      *DefaultBookingService
	repo     *fakeBookingRepo
	payments *fakePaymentService
	audit    *fakeAuditService
	now      time.Time
}

func newLifecycleFixture(t *testing.T, resources ...*models.Resource) *lifecycleFixture {
	t.Helper()
	resourceMap := make(map[string]*models.Resource, len(resources))
	for _, res := range resources {
		resourceMap[res.ID] = res
	}

	repo := newFakeBookingRepo()
	payments := &fakePaymentService{}
	auditSvc := &fakeAuditService{}
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	svc := &DefaultBookingService{
		Bookings:  repo,
		Resources: &fakeResourceService{resources: resourceMap},
		Machine:   NewStateMachine(),
		Payments:  payments,
		Audit:     auditSvc,
		Logger:    zap.NewNop(),
		Now:       func() time.Time { return now },
	}
	return &lifecycleFixture{svc: svc, repo: repo, payments: payments, audit: auditSvc, now: now}
}

func autoApproveRoom() *models.Resource {
	return &models.Resource{
		ID:                    "room-1",
		Name:                  "Meeting Room",
		Type:                  models.ResourceRoom,
		BasePricePerHour:      10.0,
		PricingPolicyKey:      models.PricingDefault,
		CancellationPolicyKey: models.CancellationFlexible,
		ApprovalPolicyKey:     models.ApprovalAuto,
	}
}

func adminApprovedStudio() *models.Resource {
	return &models.Resource{
		ID:                    "studio-1",
		Name:                  "Recording Studio",
		Type:                  models.ResourceStudio,
		BasePricePerHour:      50.0,
		PricingPolicyKey:      models.PricingDefault,
		CancellationPolicyKey: models.CancellationStrict,
		ApprovalPolicyKey:     models.ApprovalAdminRequired,
	}
}

func (f *lifecycleFixture) futureSlot(t *testing.T, hoursFromNow, durationHours int) models.Timeslot {
	t.Helper()
	start := f.now.Add(time.Duration(hoursFromNow) * time.Hour)
	slot, err := models.NewTimeslot(start, start.Add(time.Duration(durationHours)*time.Hour))
	require.NoError(t, err)
	return slot
}

// --- tests ---

func TestCreateBookingAutoApproves(t *testing.T) {
	f := newLifecycleFixture(t, autoApproveRoom())
	ctx := context.Background()

	b, err := f.svc.CreateBooking(ctx, "u1", "room-1", f.futureSlot(t, 5, 2))
	require.NoError(t, err)

	assert.NotEmpty(t, b.ID)
	assert.Equal(t, models.StatusApproved, b.Status)
	assert.Equal(t, 20.0, b.Price)

	stored, err := f.repo.GetByID(b.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, stored.Status)

	require.Len(t, f.audit.entries, 1)
	assert.Equal(t, models.AuditBookingAutoApproved, f.audit.entries[0].action)
}

func TestCreateBookingAwaitsApproval(t *testing.T) {
	f := newLifecycleFixture(t, adminApprovedStudio())
	ctx := context.Background()

	b, err := f.svc.CreateBooking(ctx, "u1", "studio-1", f.futureSlot(t, 5, 1))
	require.NoError(t, err)
	assert.Equal(t, models.StatusRequested, b.Status)

	require.Len(t, f.audit.entries, 1)
	assert.Equal(t, models.AuditBookingRequested, f.audit.entries[0].action)

	pending, err := f.svc.ListPendingBookings()
	require.NoError(t, err)
	assert.Len(t, pending, 1)
}

func TestCreateBookingRejectsPastStart(t *testing.T) {
	f := newLifecycleFixture(t, autoApproveRoom())

	past := f.now.Add(-2 * time.Hour)
	slot, err := models.NewTimeslot(past, past.Add(time.Hour))
	require.NoError(t, err)

	_, err = f.svc.CreateBooking(context.Background(), "u1", "room-1", slot)
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestCreateBookingUnknownResource(t *testing.T) {
	f := newLifecycleFixture(t)

	_, err := f.svc.CreateBooking(context.Background(), "u1", "nope", f.futureSlot(t, 5, 1))
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestCreateBookingConflicts(t *testing.T) {
	f := newLifecycleFixture(t, autoApproveRoom())
	ctx := context.Background()

	_, err := f.svc.CreateBooking(ctx, "u1", "room-1", f.futureSlot(t, 5, 2))
	require.NoError(t, err)

	// Overlapping slot on the same resource is rejected.
	_, err = f.svc.CreateBooking(ctx, "u2", "room-1", f.futureSlot(t, 6, 2))
	assert.ErrorIs(t, err, ErrTimeslotConflict)

	// Adjacent slot is fine: intervals are half-open.
	_, err = f.svc.CreateBooking(ctx, "u2", "room-1", f.futureSlot(t, 7, 1))
	assert.NoError(t, err)
}

func TestCreateBookingLostRaceSurfacesConflict(t *testing.T) {
	f := newLifecycleFixture(t, autoApproveRoom())
	f.repo.conflictOnAdd = true

	_, err := f.svc.CreateBooking(context.Background(), "u1", "room-1", f.futureSlot(t, 5, 1))
	assert.ErrorIs(t, err, ErrTimeslotConflict)
}

func TestCreateBookingCancelledSlotIsReusable(t *testing.T) {
	f := newLifecycleFixture(t, autoApproveRoom())
	ctx := context.Background()

	b, err := f.svc.CreateBooking(ctx, "u1", "room-1", f.futureSlot(t, 5, 2))
	require.NoError(t, err)
	_, err = f.svc.CancelBooking(ctx, "u1", b.ID)
	require.NoError(t, err)

	_, err = f.svc.CreateBooking(ctx, "u2", "room-1", f.futureSlot(t, 5, 2))
	assert.NoError(t, err)
}

func TestApproveAndRejectBooking(t *testing.T) {
	f := newLifecycleFixture(t, adminApprovedStudio())
	ctx := context.Background()

	b1, err := f.svc.CreateBooking(ctx, "u1", "studio-1", f.futureSlot(t, 5, 1))
	require.NoError(t, err)
	b2, err := f.svc.CreateBooking(ctx, "u2", "studio-1", f.futureSlot(t, 8, 1))
	require.NoError(t, err)

	approved, err := f.svc.ApproveBooking(ctx, "admin", b1.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, approved.Status)

	rejected, err := f.svc.RejectBooking(ctx, "admin", b2.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusRejected, rejected.Status)

	// A decided booking cannot be decided again.
	_, err = f.svc.ApproveBooking(ctx, "admin", b1.ID)
	assert.True(t, IsIllegalTransition(err))
	_, err = f.svc.ApproveBooking(ctx, "admin", b2.ID)
	assert.True(t, IsIllegalTransition(err))
}

func TestPayBooking(t *testing.T) {
	f := newLifecycleFixture(t, autoApproveRoom())
	ctx := context.Background()

	b, err := f.svc.CreateBooking(ctx, "u1", "room-1", f.futureSlot(t, 5, 2))
	require.NoError(t, err)

	paid, err := f.svc.PayBooking(ctx, "u1", b.ID, "cash")
	require.NoError(t, err)
	assert.Equal(t, models.StatusPaid, paid.Status)

	require.Len(t, f.payments.payments, 1)
	assert.Equal(t, recordedPayment{bookingID: b.ID, amount: 20.0, method: "cash"}, f.payments.payments[0])

	// Paying twice is illegal.
	_, err = f.svc.PayBooking(ctx, "u1", b.ID, "cash")
	assert.True(t, IsIllegalTransition(err))
}

func TestCancelPaidBookingRefundsFully(t *testing.T) {
	f := newLifecycleFixture(t, autoApproveRoom())
	ctx := context.Background()

	// Start is 30h out: FLEXIBLE refunds 100%.
	b, err := f.svc.CreateBooking(ctx, "u1", "room-1", f.futureSlot(t, 30, 2))
	require.NoError(t, err)
	_, err = f.svc.PayBooking(ctx, "u1", b.ID, "cash")
	require.NoError(t, err)

	cancelled, err := f.svc.CancelBooking(ctx, "u1", b.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusRefunded, cancelled.Status)

	require.Len(t, f.payments.refunds, 1)
	assert.Equal(t, 20.0, f.payments.refunds[0].amount)

	last := f.audit.entries[len(f.audit.entries)-1]
	assert.Equal(t, models.AuditBookingRefunded, last.action)
}

func TestCancelPaidBookingLateNoRefund(t *testing.T) {
	f := newLifecycleFixture(t, autoApproveRoom())
	ctx := context.Background()

	// Start is 1h out: FLEXIBLE refunds nothing.
	b, err := f.svc.CreateBooking(ctx, "u1", "room-1", f.futureSlot(t, 1, 2))
	require.NoError(t, err)
	_, err = f.svc.PayBooking(ctx, "u1", b.ID, "cash")
	require.NoError(t, err)

	cancelled, err := f.svc.CancelBooking(ctx, "u1", b.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, cancelled.Status)
	assert.Empty(t, f.payments.refunds)
}

func TestCancelUnpaidBookingSkipsRefundLogic(t *testing.T) {
	f := newLifecycleFixture(t, adminApprovedStudio())
	ctx := context.Background()

	b, err := f.svc.CreateBooking(ctx, "u1", "studio-1", f.futureSlot(t, 100, 1))
	require.NoError(t, err)

	cancelled, err := f.svc.CancelBooking(ctx, "u1", b.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, cancelled.Status)
	assert.Empty(t, f.payments.refunds)

	last := f.audit.entries[len(f.audit.entries)-1]
	assert.Equal(t, models.AuditBookingCancelled, last.action)
}

func TestActivateAndCompleteBooking(t *testing.T) {
	f := newLifecycleFixture(t, autoApproveRoom())
	ctx := context.Background()

	b, err := f.svc.CreateBooking(ctx, "u1", "room-1", f.futureSlot(t, 5, 2))
	require.NoError(t, err)
	_, err = f.svc.PayBooking(ctx, "u1", b.ID, "cash")
	require.NoError(t, err)

	active, err := f.svc.ActivateBooking(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusActive, active.Status)

	done, err := f.svc.CompleteBooking(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, done.Status)
	assert.True(t, done.Status.IsTerminal())

	// A completed booking cannot be re-activated.
	_, err = f.svc.ActivateBooking(ctx, b.ID)
	assert.True(t, IsIllegalTransition(err))
}

func TestLifecycleNotFound(t *testing.T) {
	f := newLifecycleFixture(t, autoApproveRoom())
	ctx := context.Background()

	_, err := f.svc.PayBooking(ctx, "u1", "missing", "cash")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = f.svc.CancelBooking(ctx, "u1", "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = f.svc.ApproveBooking(ctx, "admin", "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAdminUpdateAndDeleteBooking(t *testing.T) {
	f := newLifecycleFixture(t, autoApproveRoom())
	ctx := context.Background()

	b, err := f.svc.CreateBooking(ctx, "u1", "room-1", f.futureSlot(t, 5, 2))
	require.NoError(t, err)

	newSlot := f.futureSlot(t, 10, 3)
	updated, err := f.svc.AdminUpdateBooking(ctx, "admin", b.ID, newSlot, 42.0)
	require.NoError(t, err)
	assert.Equal(t, newSlot.Start, updated.StartTime)
	assert.Equal(t, newSlot.End, updated.EndTime)
	assert.Equal(t, 42.0, updated.Price)

	require.NoError(t, f.svc.AdminDeleteBooking(ctx, "admin", b.ID))
	_, err = f.repo.GetByID(b.ID)
	assert.ErrorIs(t, err, bookingRepo.ErrNotFound)

	err = f.svc.AdminDeleteBooking(ctx, "admin", b.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestObserverSeesLifecycleChanges(t *testing.T) {
	f := newLifecycleFixture(t, autoApproveRoom())
	obs := &recordingObserver{}
	f.svc.Machine = NewStateMachine(obs)
	ctx := context.Background()

	b, err := f.svc.CreateBooking(ctx, "u1", "room-1", f.futureSlot(t, 30, 1))
	require.NoError(t, err)
	_, err = f.svc.PayBooking(ctx, "u1", b.ID, "cash")
	require.NoError(t, err)
	_, err = f.svc.CancelBooking(ctx, "u1", b.ID)
	require.NoError(t, err)

	// REQUESTED->APPROVED, APPROVED->PAID, PAID->CANCELLED, CANCELLED->REFUNDED.
	require.Len(t, obs.changes, 4)
	assert.Equal(t, models.StatusApproved, obs.changes[0].new)
	assert.Equal(t, models.StatusPaid, obs.changes[1].new)
	assert.Equal(t, models.StatusCancelled, obs.changes[2].new)
	assert.Equal(t, models.StatusRefunded, obs.changes[3].new)
}

func TestGetTimetable(t *testing.T) {
	f := newLifecycleFixture(t, autoApproveRoom())
	ctx := context.Background()

	sameDay, err := f.svc.CreateBooking(ctx, "u1", "room-1", f.futureSlot(t, 3, 2))
	require.NoError(t, err)
	_, err = f.svc.CreateBooking(ctx, "u2", "room-1", f.futureSlot(t, 48, 2))
	require.NoError(t, err)

	day, err := f.svc.GetTimetable(ctx, "room-1", f.now)
	require.NoError(t, err)
	require.Len(t, day, 1)
	assert.Equal(t, sameDay.ID, day[0].ID)
}
