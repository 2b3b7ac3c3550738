package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"yulebook/internal/config"
	"yulebook/internal/database"
	"yulebook/internal/domain"
	"yulebook/internal/events"
	"yulebook/internal/models"

	"github.com/rs/zerolog"
)

type BookingService struct {
	repo     domain.Repository
	eventBus domain.EventPublisher
	pricing  config.PricingConfig
	payment  config.PaymentConfig
	logger   *zerolog.Logger
}

func NewBookingService(repo domain.Repository, eventBus domain.EventPublisher, pricing config.PricingConfig, payment config.PaymentConfig, logger *zerolog.Logger) *BookingService {
	return &BookingService{
		repo:     repo,
		eventBus: eventBus,
		pricing:  pricing,
		payment:  payment,
		logger:   logger,
	}
}

// CreateBooking validates the form, recomputes the total from current
// catalog state and persists booking, guests and orders atomically. The
// client-submitted total, if any, is never consulted.
func (s *BookingService) CreateBooking(ctx context.Context, form *models.BookingForm) (*models.BookingReceipt, error) {
	if err := ValidateForm(form); err != nil {
		return nil, err
	}

	var itemIDs []int64
	for _, guest := range form.Guests {
		itemIDs = append(itemIDs, guest.Orders.ItemIDs()...)
	}

	catalog, err := s.repo.GetMenuItemsByIDs(ctx, itemIDs)
	if err != nil {
		return nil, fmt.Errorf("fetch menu items: %w", err)
	}

	for _, guest := range form.Guests {
		for _, id := range guest.Orders.ItemIDs() {
			if _, ok := catalog[id]; !ok {
				return nil, validationErrorf("%s selected a dish that is no longer on the menu", strings.TrimSpace(guest.Name))
			}
		}
	}

	breakdown := ComputeTotal(form.Guests, catalog, s.pricing)

	booking := &models.Booking{
		OrganizerName:  strings.TrimSpace(form.OrganizerName),
		OrganizerEmail: strings.TrimSpace(form.OrganizerEmail),
		OrganizerPhone: strings.TrimSpace(form.OrganizerPhone),
		BookingDate:    time.Now(),
		TotalGuests:    len(form.Guests),
		TotalAmount:    breakdown.Total,
		PaymentStatus:  models.PaymentPending,
		PaymentLink:    PaymentLink(s.payment, breakdown.Total),
		Notes:          strings.TrimSpace(form.Notes),
	}

	guests := make([]models.GuestInput, 0, len(form.Guests))
	for _, guest := range form.Guests {
		guests = append(guests, models.GuestInput{
			Name:                strings.TrimSpace(guest.Name),
			DietaryRequirements: strings.TrimSpace(guest.DietaryRequirements),
			MenuItemIDs:         guest.Orders.ItemIDs(),
		})
	}

	// References are unique with overwhelming probability, but the database
	// enforces it; retry with a fresh token on the rare collision.
	for attempt := 0; attempt < models.ReferenceRetries; attempt++ {
		booking.Reference = NewBookingReference(time.Now())
		err = s.repo.CreateBooking(ctx, booking, guests)
		if !errors.Is(err, database.ErrDuplicateReference) {
			break
		}
		s.logger.Warn().Str("reference", booking.Reference).Msg("booking reference collision, retrying")
	}
	if err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}

	s.publishEvent(events.EventBookingCreated, booking)

	return &models.BookingReceipt{
		ID:          booking.ID,
		Reference:   booking.Reference,
		TotalAmount: booking.TotalAmount,
		TotalGuests: booking.TotalGuests,
		PaymentLink: booking.PaymentLink,
	}, nil
}

func (s *BookingService) GetByReference(ctx context.Context, reference string) (*models.BookingWithDetails, error) {
	return s.repo.GetBookingByReference(ctx, reference)
}

// ListBookings returns all bookings newest-first. The filter must be empty,
// "all", or a valid payment status.
func (s *BookingService) ListBookings(ctx context.Context, paymentStatus string) ([]models.BookingWithDetails, error) {
	if paymentStatus != "" && paymentStatus != "all" && !models.ValidPaymentStatus(paymentStatus) {
		return nil, validationErrorf("invalid payment status filter: %s", paymentStatus)
	}
	return s.repo.ListBookings(ctx, paymentStatus)
}

func (s *BookingService) SetPaymentStatus(ctx context.Context, id int64, status string) (*models.Booking, error) {
	if !models.ValidPaymentStatus(status) {
		return nil, validationErrorf("invalid payment status: %s", status)
	}

	booking, err := s.repo.UpdatePaymentStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}

	if status == models.PaymentPaid {
		s.publishEvent(events.EventBookingPaid, booking)
	}
	return booking, nil
}

func (s *BookingService) DeleteBooking(ctx context.Context, id int64) (*models.Booking, error) {
	booking, err := s.repo.DeleteBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	s.publishEvent(events.EventBookingDeleted, booking)
	return booking, nil
}

func (s *BookingService) publishEvent(eventType string, booking *models.Booking) {
	if s.eventBus == nil {
		return
	}

	payload := events.BookingEventPayload{
		BookingID:     booking.ID,
		Reference:     booking.Reference,
		OrganizerName: booking.OrganizerName,
		TotalGuests:   booking.TotalGuests,
		TotalAmount:   booking.TotalAmount,
		PaymentStatus: booking.PaymentStatus,
	}

	if err := s.eventBus.PublishJSON(eventType, payload); err != nil {
		s.logger.Error().Err(err).Str("event_type", eventType).Int64("booking_id", booking.ID).Msg("publish event error")
	}
}
