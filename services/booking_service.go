package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/localxp/localxp_backend/models"
	"github.com/localxp/localxp_backend/repositories"
	"github.com/localxp/localxp_backend/utils"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BookingService creates, prices and approves bookings
type BookingService struct {
	bookings  BookingStore
	tourists  TouristStore
	providers ProviderStore
	notifier  Notifier
}

func NewBookingService(bookings BookingStore, tourists TouristStore, providers ProviderStore, notifier Notifier) *BookingService {
	if notifier == nil {
		notifier = noopNotifier{}
	}
	return &BookingService{
		bookings:  bookings,
		tourists:  tourists,
		providers: providers,
		notifier:  notifier,
	}
}

// pricedRequest is a booking request that passed validation and pricing
// MaxPartyMembers bounds adults and children separately
const MaxPartyMembers = 10000

type pricedRequest struct {
	touristID  primitive.ObjectID
	providerID *primitive.ObjectID
	date       time.Time
	adults     int
	children   int
	unit       decimal.Decimal
	total      decimal.Decimal
}

// Create validates, prices and stores a booking. Checks run in a fixed
// order and the first failure is returned.
func (s *BookingService) Create(ctx context.Context, req models.BookingRequest) (*models.Booking, error) {
	priced, err := s.price(ctx, req, true)
	if err != nil {
		return nil, err
	}

	status := models.BookingPending
	if strings.TrimSpace(req.Status) != "" {
		status = models.BookingStatus(strings.TrimSpace(req.Status))
		if !status.Valid() {
			return nil, Validation("invalid booking status %q", req.Status)
		}
	}

	now := time.Now()
	booking := &models.Booking{
		TouristID:    priced.touristID,
		ProviderID:   priced.providerID,
		Date:         priced.date,
		Time:         strings.TrimSpace(req.Time),
		Adults:       priced.adults,
		Children:     priced.children,
		Status:       status,
		TotalPrice:   priced.total.InexactFloat64(),
		SpecialNotes: utils.SanitizeInput(req.SpecialNotes),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if priced.providerID == nil {
		booking.ProductType = strings.TrimSpace(req.ProductType)
	}

	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, Unexpected("failed to create booking", err)
	}

	s.notifier.NotifyAdmins("booking_created", "A new booking was created", booking)
	return booking, nil
}

// Quote prices a booking request without storing it. The tourist is not
// looked up, so anonymous callers can ask for a price.
func (s *BookingService) Quote(ctx context.Context, req models.BookingRequest) (*models.Quote, error) {
	priced, err := s.price(ctx, req, false)
	if err != nil {
		return nil, err
	}
	quote := &models.Quote{
		ProductType: strings.TrimSpace(req.ProductType),
		Adults:      priced.adults,
		Children:    priced.children,
		PartySize:   priced.adults + priced.children,
		UnitPrice:   priced.unit.InexactFloat64(),
		TotalPrice:  priced.total.InexactFloat64(),
	}
	if priced.providerID != nil {
		quote.ProviderID = priced.providerID.Hex()
		quote.ProductType = ""
	}
	return quote, nil
}

func (s *BookingService) price(ctx context.Context, req models.BookingRequest, resolveTourist bool) (*pricedRequest, error) {
	touristID := strings.TrimSpace(req.TouristID)
	providerID := strings.TrimSpace(req.ProviderID)
	productType := strings.TrimSpace(req.ProductType)

	if resolveTourist && touristID == "" {
		return nil, Validation("touristId, date, time and adults are required")
	}
	if !utils.AllPresent(req.Date, req.Time) || req.Adults == nil {
		return nil, Validation("touristId, date, time and adults are required")
	}
	if providerID != "" && productType != "" {
		return nil, Validation("provide either providerId or productType, not both")
	}

	var providerOID primitive.ObjectID
	if providerID != "" {
		oid, ok := utils.ParseObjectID(providerID)
		if !ok {
			return nil, Validation("invalid providerId")
		}
		providerOID = oid
	}

	adults := *req.Adults
	children := 0
	if req.Children != nil {
		children = *req.Children
	}
	if adults < 0 || children < 0 {
		return nil, Validation("adults and children must not be negative")
	}
	if adults > MaxPartyMembers || children > MaxPartyMembers {
		return nil, Validation("adults and children must not exceed %d", MaxPartyMembers)
	}
	date, err := parseBookingDate(req.Date)
	if err != nil {
		return nil, Validation("invalid date, expected YYYY-MM-DD")
	}

	out := &pricedRequest{date: date, adults: adults, children: children}

	if resolveTourist {
		oid, ok := utils.ParseObjectID(touristID)
		if !ok {
			return nil, Validation("invalid touristId")
		}
		if _, err := s.tourists.FindByID(ctx, oid); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, NotFound("tourist not found")
			}
			return nil, Unexpected("failed to load tourist", err)
		}
		out.touristID = oid
	}

	switch {
	case providerID != "":
		provider, err := s.providers.FindByID(ctx, providerOID)
		if errors.Is(err, repositories.ErrNotFound) || (err == nil && !provider.Approved) {
			return nil, NotFound("provider not found")
		}
		if err != nil {
			return nil, Unexpected("failed to load provider", err)
		}
		out.providerID = &providerOID
		out.unit = decimal.NewFromFloat(provider.Price)
		out.total = ProviderPrice(provider.Price, adults, children)
	case productType != "":
		total, unit, err := ProductPrice(productType, adults, children)
		if err != nil {
			return nil, err
		}
		out.unit, out.total = unit, total
	default:
		return nil, Validation("either providerId or productType is required")
	}
	return out, nil
}

func parseBookingDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(models.BookingDateLayout, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// List returns bookings matching filter
func (s *BookingService) List(ctx context.Context, filter repositories.BookingFilter) ([]models.Booking, error) {
	bookings, err := s.bookings.List(ctx, filter)
	if err != nil {
		return nil, Unexpected("failed to list bookings", err)
	}
	return bookings, nil
}

// ListForTourist returns the bookings of the tourist with the given hex id
func (s *BookingService) ListForTourist(ctx context.Context, touristID string) ([]models.Booking, error) {
	oid, ok := utils.ParseObjectID(touristID)
	if !ok {
		return nil, Validation("invalid touristId")
	}
	return s.List(ctx, repositories.BookingFilter{TouristID: oid})
}

// ListForProvider returns the bookings made against the given provider
func (s *BookingService) ListForProvider(ctx context.Context, providerID string) ([]models.Booking, error) {
	oid, ok := utils.ParseObjectID(providerID)
	if !ok {
		return nil, Validation("invalid providerId")
	}
	return s.List(ctx, repositories.BookingFilter{ProviderID: oid})
}

// Approve confirms a booking. The stored price is left as it is.
func (s *BookingService) Approve(ctx context.Context, id string) (*models.Booking, error) {
	oid, ok := utils.ParseObjectID(id)
	if !ok {
		return nil, Validation("invalid booking id")
	}
	booking, err := s.bookings.SetStatus(ctx, oid, models.BookingConfirmed)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, NotFound("booking not found")
	}
	if err != nil {
		return nil, Unexpected("failed to approve booking", err)
	}
	return booking, nil
}

func (s *BookingService) Delete(ctx context.Context, id string) error {
	oid, ok := utils.ParseObjectID(id)
	if !ok {
		return Validation("invalid booking id")
	}
	if err := s.bookings.Delete(ctx, oid); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return NotFound("booking not found")
		}
		return Unexpected("failed to delete booking", err)
	}
	return nil
}

// VoucherQRCode renders the QR voucher of a confirmed booking as PNG
func (s *BookingService) VoucherQRCode(ctx context.Context, id string) ([]byte, error) {
	oid, ok := utils.ParseObjectID(id)
	if !ok {
		return nil, Validation("invalid booking id")
	}
	booking, err := s.bookings.FindByID(ctx, oid)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, NotFound("booking not found")
	}
	if err != nil {
		return nil, Unexpected("failed to load booking", err)
	}
	if booking.Status != models.BookingConfirmed {
		return nil, Conflict("only confirmed bookings have a voucher")
	}

	png, err := utils.QRCodePNG(fmt.Sprintf("booking:%s", booking.ID.Hex()), 256)
	if err != nil {
		return nil, Unexpected("failed to generate QR code", err)
	}
	return png, nil
}
