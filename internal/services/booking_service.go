package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	dbm "gompa/internal/models/db_models"
	"gompa/internal/models/request_models"
	"gompa/internal/models/response_models"
	"gompa/internal/repositories"
	"gompa/pkg/metrics"
	"gompa/pkg/utils"
)

const (
	currencyINR         = "INR"
	paymentProvider     = "razorpay"
	freeCancellationFee = 200
	diningToursGSTRate  = 0.05
)

// HotelGSTRate is the GST slab for a nightly tariff.
func HotelGSTRate(perNight int64) float64 {
	switch {
	case perNight >= 7500:
		return 0.18
	case perNight >= 1000:
		return 0.12
	}
	return 0
}

// ComputeBill prices a booking from the tariff agreed in the request.
func ComputeBill(req request_models.BookingRequest) (response_models.BillResponse, error) {
	bill := response_models.BillResponse{Type: req.Type, Currency: currencyINR}

	switch dbm.BookingType(req.Type) {
	case dbm.BookingHotel:
		if req.PerNight <= 0 {
			return bill, fmt.Errorf("%w: per_night must be positive", utils.ErrInvalidBooking)
		}
		bill.Nights = 1
		if req.CheckIn != "" && req.CheckOut != "" {
			bill.Nights = utils.Nights(req.CheckIn, req.CheckOut)
		}
		bill.Subtotal = req.PerNight * int64(bill.Nights)
		bill.GSTRate = HotelGSTRate(req.PerNight)
		bill.GST = roundINR(float64(bill.Subtotal) * bill.GSTRate)
		bill.Lines = append(bill.Lines, response_models.BillLine{
			Label:  fmt.Sprintf("₹%d × %d night(s)", req.PerNight, bill.Nights),
			Amount: bill.Subtotal,
		})
		if req.FreeCancellation {
			bill.AddOns = freeCancellationFee
			bill.Lines = append(bill.Lines, response_models.BillLine{Label: "Free cancellation", Amount: freeCancellationFee})
		}

	case dbm.BookingDining, dbm.BookingTours:
		if req.PerPerson <= 0 {
			return bill, fmt.Errorf("%w: per_person must be positive", utils.ErrInvalidBooking)
		}
		bill.Guests = req.Guests
		if bill.Guests < 1 {
			bill.Guests = 1
		}
		bill.Subtotal = req.PerPerson * int64(bill.Guests)
		bill.GSTRate = diningToursGSTRate
		bill.GST = roundINR(float64(bill.Subtotal) * bill.GSTRate)
		bill.Lines = append(bill.Lines, response_models.BillLine{
			Label:  fmt.Sprintf("₹%d × %d guest(s)", req.PerPerson, bill.Guests),
			Amount: bill.Subtotal,
		})

	case dbm.BookingTransport:
		if req.Fare < 0 {
			return bill, fmt.Errorf("%w: fare must not be negative", utils.ErrInvalidBooking)
		}
		bill.Subtotal = req.Fare
		bill.Lines = append(bill.Lines, response_models.BillLine{Label: "Agreed fare", Amount: req.Fare})

	default:
		return bill, fmt.Errorf("%w: unknown type %q", utils.ErrInvalidBooking, req.Type)
	}

	if bill.GST > 0 {
		bill.Lines = append(bill.Lines, response_models.BillLine{
			Label:  fmt.Sprintf("GST %d%%", int(math.Round(bill.GSTRate*100))),
			Amount: bill.GST,
		})
	}
	bill.Total = bill.Subtotal + bill.GST + bill.AddOns
	return bill, nil
}

func roundINR(v float64) int64 { return int64(math.Round(v)) }

type BookingServiceInterface interface {
	Quote(req request_models.BookingRequest) (*response_models.BillResponse, error)
	Create(ctx context.Context, accountID *uuid.UUID, req request_models.BookingRequest) (*response_models.BookingResponse, error)
	ListMine(ctx context.Context, accountID uuid.UUID, page, pageSize int) ([]response_models.BookingResponse, error)
	ListAll(ctx context.Context, page, pageSize int) ([]response_models.BookingResponse, error)
	Get(ctx context.Context, id uuid.UUID, accountID uuid.UUID, admin bool) (*response_models.BookingResponse, error)
}

type BookingService struct {
	repo      repositories.BookingRepository
	landmarks LandmarkServiceInterface
	gateway   PaymentGateway
	metrics   *metrics.Registry
	logger    *zap.Logger
}

func NewBookingService(repo repositories.BookingRepository, landmarks LandmarkServiceInterface, gateway PaymentGateway,
	m *metrics.Registry, logger *zap.Logger) BookingServiceInterface {
	return &BookingService{repo: repo, landmarks: landmarks, gateway: gateway, metrics: m, logger: logger.Named("booking")}
}

func (s *BookingService) Quote(req request_models.BookingRequest) (*response_models.BillResponse, error) {
	bill, err := ComputeBill(req)
	if err != nil {
		return nil, err
	}
	return &bill, nil
}

// Create records the request and, for a positive total, opens a payment
// order. A gateway failure leaves the booking as payment_failed.
func (s *BookingService) Create(ctx context.Context, accountID *uuid.UUID, req request_models.BookingRequest) (*response_models.BookingResponse, error) {
	bill, err := ComputeBill(req)
	if err != nil {
		return nil, err
	}
	if req.LandmarkID != "" {
		if _, err := s.landmarks.Get(ctx, req.LandmarkID); err != nil {
			return nil, err
		}
	}

	itemJSON, err := json.Marshal(bookingItem(req))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrInvalidBooking, err)
	}
	billJSON, err := json.Marshal(bill)
	if err != nil {
		return nil, err
	}

	b := &dbm.BookingRequest{
		BaseModel:  dbm.BaseModel{ID: uuid.New()},
		AccountID:  accountID,
		Type:       dbm.BookingType(req.Type),
		LandmarkID: strings.ToLower(strings.TrimSpace(req.LandmarkID)),
		Item:       datatypes.JSON(itemJSON),
		Bill:       datatypes.JSON(billJSON),
		TotalINR:   bill.Total,
		Currency:   currencyINR,
		Status:     dbm.BookingRecorded,
	}
	if bill.Total > 0 {
		b.Provider = paymentProvider
	}
	if err := s.repo.Create(ctx, b); err != nil {
		s.logger.Error("create booking", zap.Error(err))
		return nil, utils.ErrDatabaseError
	}

	var order *PaymentOrder
	if bill.Total > 0 {
		order, err = s.gateway.CreateOrder(ctx, bill.Total*100, currencyINR, Receipt(b.ID), map[string]string{
			"type":      req.Type,
			"requestId": b.ID.String(),
		})
		if err != nil {
			b.Status = dbm.BookingPaymentFailed
			if uerr := s.repo.UpdatePayment(ctx, b.ID, b.Status, "", err.Error()); uerr != nil {
				s.logger.Error("mark payment failed", zap.String("booking", b.ID.String()), zap.Error(uerr))
			}
			s.count(req.Type, b.Status)
			if !errors.Is(err, utils.ErrPaymentGateway) {
				err = fmt.Errorf("%w: %v", utils.ErrPaymentGateway, err)
			}
			return nil, err
		}
		b.Status = dbm.BookingPaymentPending
		b.PaymentOrderID = order.ID
		if err := s.repo.UpdatePayment(ctx, b.ID, b.Status, order.ID, ""); err != nil {
			s.logger.Error("store payment order", zap.String("booking", b.ID.String()), zap.Error(err))
			return nil, utils.ErrDatabaseError
		}
	}
	s.count(req.Type, b.Status)

	resp := toBookingResponse(b, bill)
	if order != nil {
		resp.Payment = &response_models.PaymentOrderResponse{
			OrderID:  order.ID,
			Amount:   order.Amount,
			Currency: order.Currency,
			Receipt:  order.Receipt,
			KeyID:    order.KeyID,
		}
	}
	return &resp, nil
}

func (s *BookingService) ListMine(ctx context.Context, accountID uuid.UUID, page, pageSize int) ([]response_models.BookingResponse, error) {
	if page < 1 {
		return nil, utils.ErrInvalidPage
	}
	if pageSize < 1 || pageSize > 100 {
		return nil, utils.ErrInvalidPageSize
	}
	rows, err := s.repo.ListByAccount(ctx, accountID, page, pageSize)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	return toBookingResponses(rows), nil
}

func (s *BookingService) ListAll(ctx context.Context, page, pageSize int) ([]response_models.BookingResponse, error) {
	if page < 1 {
		return nil, utils.ErrInvalidPage
	}
	if pageSize < 1 || pageSize > 100 {
		return nil, utils.ErrInvalidPageSize
	}
	rows, err := s.repo.List(ctx, page, pageSize)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	return toBookingResponses(rows), nil
}

// Get returns a booking its owner or an admin may see; anyone else gets
// ErrBookingNotFound.
func (s *BookingService) Get(ctx context.Context, id uuid.UUID, accountID uuid.UUID, admin bool) (*response_models.BookingResponse, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if b == nil || (!admin && (b.AccountID == nil || *b.AccountID != accountID)) {
		return nil, utils.ErrBookingNotFound
	}
	resp := toBookingResponses([]dbm.BookingRequest{*b})[0]
	return &resp, nil
}

func (s *BookingService) count(kind string, status dbm.BookingStatus) {
	if s.metrics != nil {
		s.metrics.Bookings.WithLabelValues(kind, string(status)).Inc()
	}
}

// Receipt is the gateway receipt for a booking; it stays within 40 characters.
func Receipt(id uuid.UUID) string {
	return "rcpt_" + strings.ReplaceAll(id.String(), "-", "")
}

func bookingItem(req request_models.BookingRequest) map[string]any {
	item := map[string]any{
		"id":   req.ItemID,
		"name": req.ItemName,
	}
	put := func(k string, v any, ok bool) {
		if ok {
			item[k] = v
		}
	}
	put("per_night", req.PerNight, req.PerNight > 0)
	put("check_in", req.CheckIn, req.CheckIn != "")
	put("check_out", req.CheckOut, req.CheckOut != "")
	put("free_cancellation", req.FreeCancellation, req.FreeCancellation)
	put("per_person", req.PerPerson, req.PerPerson > 0)
	put("guests", req.Guests, req.Guests > 0)
	put("date", req.Date, req.Date != "")
	put("fare", req.Fare, req.Fare > 0)
	put("vehicle", req.Vehicle, req.Vehicle != "")
	put("pickup", req.Pickup, req.Pickup != "")
	put("contact_name", req.ContactName, req.ContactName != "")
	put("contact_phone", req.ContactPhone, req.ContactPhone != "")
	put("notes", req.Notes, req.Notes != "")
	return item
}

func toBookingResponses(rows []dbm.BookingRequest) []response_models.BookingResponse {
	out := make([]response_models.BookingResponse, 0, len(rows))
	for i := range rows {
		var bill response_models.BillResponse
		_ = json.Unmarshal(rows[i].Bill, &bill)
		out = append(out, toBookingResponse(&rows[i], bill))
	}
	return out
}

func toBookingResponse(b *dbm.BookingRequest, bill response_models.BillResponse) response_models.BookingResponse {
	var item map[string]any
	_ = json.Unmarshal(b.Item, &item)
	resp := response_models.BookingResponse{
		ID:         b.ID.String(),
		Type:       string(b.Type),
		LandmarkID: b.LandmarkID,
		Status:     string(b.Status),
		Bill:       bill,
		Item:       item,
		CreatedAt:  utils.FormatRFC3339IST(utils.FromUnix(b.CreatedAt)),
	}
	if b.PaymentOrderID != "" {
		resp.Payment = &response_models.PaymentOrderResponse{
			OrderID:  b.PaymentOrderID,
			Amount:   b.TotalINR * 100,
			Currency: b.Currency,
			Receipt:  Receipt(b.ID),
		}
	}
	return resp
}
