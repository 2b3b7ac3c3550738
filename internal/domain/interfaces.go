package domain

import (
	"context"

	"yulebook/internal/models"
)

type Repository interface {
	CreateMenuItem(ctx context.Context, item *models.MenuItem) error
	GetMenuItem(ctx context.Context, id int64) (*models.MenuItem, error)
	GetMenuItems(ctx context.Context, onlyAvailable bool) ([]models.MenuItem, error)
	GetMenuItemsByIDs(ctx context.Context, ids []int64) (map[int64]models.MenuItem, error)
	UpdateMenuItem(ctx context.Context, item *models.MenuItem) error
	DeleteMenuItem(ctx context.Context, id int64) error

	CreateBooking(ctx context.Context, booking *models.Booking, guests []models.GuestInput) error
	GetBooking(ctx context.Context, id int64) (*models.Booking, error)
	GetBookingByReference(ctx context.Context, reference string) (*models.BookingWithDetails, error)
	ListBookings(ctx context.Context, paymentStatus string) ([]models.BookingWithDetails, error)
	UpdatePaymentStatus(ctx context.Context, id int64, status string) (*models.Booking, error)
	DeleteBooking(ctx context.Context, id int64) (*models.Booking, error)
}

// MenuCache caches the grouped customer menu between catalog changes.
type MenuCache interface {
	GetMenu(ctx context.Context) (*models.GroupedMenu, bool)
	SetMenu(ctx context.Context, menu *models.GroupedMenu) error
	Invalidate(ctx context.Context) error
}

type EventPublisher interface {
	PublishJSON(eventType string, payload interface{}) error
}
