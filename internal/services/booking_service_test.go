package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"gompa/internal/infra"
	dbm "gompa/internal/models/db_models"
	"gompa/internal/models/request_models"
	"gompa/pkg/metrics"
	"gompa/pkg/utils"
)

type fakeBookingRepo struct {
	mu       sync.Mutex
	rows     map[uuid.UUID]*dbm.BookingRequest
	order    []uuid.UUID
	failNext error
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{rows: map[uuid.UUID]*dbm.BookingRequest{}}
}

func (r *fakeBookingRepo) Create(_ context.Context, b *dbm.BookingRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failNext != nil {
		err := r.failNext
		r.failNext = nil
		return err
	}
	cp := *b
	r.rows[b.ID] = &cp
	r.order = append(r.order, b.ID)
	return nil
}

func (r *fakeBookingRepo) UpdatePayment(_ context.Context, id uuid.UUID, status dbm.BookingStatus, orderID, reason string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.rows[id]
	if !ok {
		return errors.New("record not found")
	}
	b.Status = status
	b.PaymentOrderID = orderID
	b.FailureReason = reason
	return nil
}

func (r *fakeBookingRepo) GetByID(_ context.Context, id uuid.UUID) (*dbm.BookingRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b, ok := r.rows[id]; ok {
		cp := *b
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeBookingRepo) ListByAccount(_ context.Context, accountID uuid.UUID, page, pageSize int) ([]dbm.BookingRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []dbm.BookingRequest
	for _, id := range r.order {
		if b := r.rows[id]; b.AccountID != nil && *b.AccountID == accountID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) List(_ context.Context, page, pageSize int) ([]dbm.BookingRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]dbm.BookingRequest, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, *r.rows[id])
	}
	return out, nil
}

type fakeGateway struct {
	err      error
	amount   int64
	receipt  string
	notes    map[string]string
	requests int
}

func (g *fakeGateway) CreateOrder(_ context.Context, amountPaise int64, currency, receipt string, notes map[string]string) (*PaymentOrder, error) {
	g.requests++
	g.amount, g.receipt, g.notes = amountPaise, receipt, notes
	if g.err != nil {
		return nil, g.err
	}
	return &PaymentOrder{ID: "order_Q1", Amount: amountPaise, Currency: currency, Receipt: receipt, KeyID: "rzp_test_key"}, nil
}

func newBookingService(repo *fakeBookingRepo, gw PaymentGateway) BookingServiceInterface {
	return NewBookingService(repo, NewStaticLandmarkService(infra.DefaultLandmarks), gw, metrics.NewRegistry(), zap.NewNop())
}

func hotelRequest(perNight int64) request_models.BookingRequest {
	return request_models.BookingRequest{
		Type:       "hotel",
		LandmarkID: "rumtek",
		ItemName:   "Mayfair Spa Resort",
		PerNight:   perNight,
		CheckIn:    "2025-10-10",
		CheckOut:   "2025-10-13",
	}
}

func TestHotelGSTRate(t *testing.T) {
	assert.Equal(t, 0.0, HotelGSTRate(999))
	assert.Equal(t, 0.12, HotelGSTRate(1000))
	assert.Equal(t, 0.12, HotelGSTRate(7499))
	assert.Equal(t, 0.18, HotelGSTRate(7500))
}

func TestComputeBill_Hotel(t *testing.T) {
	req := hotelRequest(2500)
	req.FreeCancellation = true

	bill, err := ComputeBill(req)

	require.NoError(t, err)
	assert.Equal(t, 3, bill.Nights)
	assert.Equal(t, int64(7500), bill.Subtotal)
	assert.Equal(t, int64(900), bill.GST)
	assert.Equal(t, int64(200), bill.AddOns)
	assert.Equal(t, int64(8600), bill.Total)
	require.Len(t, bill.Lines, 3)
	assert.Equal(t, "GST 12%", bill.Lines[2].Label)
}

func TestComputeBill_BudgetHotelHasNoGST(t *testing.T) {
	req := hotelRequest(800)
	req.CheckIn, req.CheckOut = "", ""

	bill, err := ComputeBill(req)

	require.NoError(t, err)
	assert.Equal(t, 1, bill.Nights)
	assert.Zero(t, bill.GST)
	assert.Equal(t, int64(800), bill.Total)
	assert.Len(t, bill.Lines, 1)
}

func TestComputeBill_DiningAndTransport(t *testing.T) {
	bill, err := ComputeBill(request_models.BookingRequest{Type: "dining", ItemName: "Hill Cafe", PerPerson: 450, Guests: 3})
	require.NoError(t, err)
	assert.Equal(t, int64(1350), bill.Subtotal)
	assert.Equal(t, int64(68), bill.GST)
	assert.Equal(t, int64(1418), bill.Total)
	assert.Equal(t, "GST 5%", bill.Lines[1].Label)

	bill, err = ComputeBill(request_models.BookingRequest{Type: "tours", ItemName: "Heritage walk", PerPerson: 1200})
	require.NoError(t, err)
	assert.Equal(t, 1, bill.Guests)
	assert.Equal(t, int64(1260), bill.Total)

	bill, err = ComputeBill(request_models.BookingRequest{Type: "transport", ItemName: "Sedan", Fare: 650})
	require.NoError(t, err)
	assert.Zero(t, bill.GST)
	assert.Equal(t, int64(650), bill.Total)
}

func TestComputeBill_Invalid(t *testing.T) {
	for _, req := range []request_models.BookingRequest{
		{Type: "hotel", ItemName: "x"},
		{Type: "dining", ItemName: "x"},
		{Type: "transport", ItemName: "x", Fare: -1},
		{Type: "flight", ItemName: "x"},
	} {
		_, err := ComputeBill(req)
		assert.ErrorIs(t, err, utils.ErrInvalidBooking, req.Type)
	}
}

func TestBookingService_CreateOpensPaymentOrder(t *testing.T) {
	repo := newFakeBookingRepo()
	gw := &fakeGateway{}
	svc := newBookingService(repo, gw)
	account := uuid.New()

	resp, err := svc.Create(context.Background(), &account, hotelRequest(2500))

	require.NoError(t, err)
	assert.Equal(t, string(dbm.BookingPaymentPending), resp.Status)
	require.NotNil(t, resp.Payment)
	assert.Equal(t, "order_Q1", resp.Payment.OrderID)
	assert.Equal(t, int64(840000), gw.amount)
	assert.LessOrEqual(t, len(gw.receipt), 40)
	assert.Equal(t, "hotel", gw.notes["type"])
	assert.Equal(t, resp.ID, gw.notes["requestId"])
	assert.Equal(t, "Mayfair Spa Resort", resp.Item["name"])

	id := uuid.MustParse(resp.ID)
	stored, _ := repo.GetByID(context.Background(), id)
	require.NotNil(t, stored)
	assert.Equal(t, dbm.BookingPaymentPending, stored.Status)
	assert.Equal(t, "order_Q1", stored.PaymentOrderID)
	assert.Equal(t, "razorpay", stored.Provider)
	assert.Equal(t, int64(8400), stored.TotalINR)

	mine, err := svc.ListMine(context.Background(), account, 1, 20)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, int64(8400), mine[0].Bill.Total)
}

func TestBookingService_GatewayFailure(t *testing.T) {
	repo := newFakeBookingRepo()
	gw := &fakeGateway{err: errors.New("BAD_REQUEST_ERROR")}
	svc := newBookingService(repo, gw)

	_, err := svc.Create(context.Background(), nil, hotelRequest(2500))

	require.ErrorIs(t, err, utils.ErrPaymentGateway)
	all, err := svc.ListAll(context.Background(), 1, 20)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, string(dbm.BookingPaymentFailed), all[0].Status)
	assert.Nil(t, all[0].Payment)
}

func TestBookingService_ZeroTotalSkipsGateway(t *testing.T) {
	repo := newFakeBookingRepo()
	gw := &fakeGateway{}
	svc := newBookingService(repo, gw)

	resp, err := svc.Create(context.Background(), nil, request_models.BookingRequest{Type: "transport", ItemName: "Walk", Fare: 0})

	require.NoError(t, err)
	assert.Equal(t, string(dbm.BookingRecorded), resp.Status)
	assert.Nil(t, resp.Payment)
	assert.Zero(t, gw.requests)
}

func TestBookingService_Validation(t *testing.T) {
	repo := newFakeBookingRepo()
	svc := newBookingService(repo, &fakeGateway{})

	req := hotelRequest(2500)
	req.LandmarkID = "kailash"
	_, err := svc.Create(context.Background(), nil, req)
	assert.ErrorIs(t, err, utils.ErrLandmarkNotFound)

	repo.failNext = errors.New("connection refused")
	_, err = svc.Create(context.Background(), nil, hotelRequest(2500))
	assert.ErrorIs(t, err, utils.ErrDatabaseError)

	_, err = svc.ListAll(context.Background(), 0, 20)
	assert.ErrorIs(t, err, utils.ErrInvalidPage)
	_, err = svc.ListMine(context.Background(), uuid.New(), 1, 500)
	assert.ErrorIs(t, err, utils.ErrInvalidPageSize)
}

func TestReceipt(t *testing.T) {
	id := uuid.MustParse("3f2c1a9e-8d7b-4c6a-9e5f-1a2b3c4d5e6f")
	assert.Equal(t, "rcpt_3f2c1a9e8d7b4c6a9e5f1a2b3c4d5e6f", Receipt(id))
}

func TestBookingService_GetChecksOwnership(t *testing.T) {
	repo := newFakeBookingRepo()
	svc := newBookingService(repo, &fakeGateway{})
	owner, stranger := uuid.New(), uuid.New()

	created, err := svc.Create(context.Background(), &owner, hotelRequest(2500))
	require.NoError(t, err)
	id := uuid.MustParse(created.ID)

	got, err := svc.Get(context.Background(), id, owner, false)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "order_Q1", got.Payment.OrderID)

	_, err = svc.Get(context.Background(), id, stranger, false)
	assert.ErrorIs(t, err, utils.ErrBookingNotFound)

	_, err = svc.Get(context.Background(), id, stranger, true)
	assert.NoError(t, err)

	_, err = svc.Get(context.Background(), uuid.New(), owner, true)
	assert.ErrorIs(t, err, utils.ErrBookingNotFound)
}
