package models

import "time"

type Booking struct {
	ID             int64     `json:"id"`
	Reference      string    `json:"booking_reference"`
	OrganizerName  string    `json:"organizer_name"`
	OrganizerEmail string    `json:"organizer_email,omitempty"`
	OrganizerPhone string    `json:"organizer_phone,omitempty"`
	BookingDate    time.Time `json:"booking_date"`
	TotalGuests    int       `json:"total_guests"`
	TotalAmount    float64   `json:"total_amount"`
	PaymentStatus  string    `json:"payment_status"` // pending, paid
	PaymentLink    string    `json:"payment_link,omitempty"`
	Notes          string    `json:"notes,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type Guest struct {
	ID                  int64     `json:"id"`
	BookingID           int64     `json:"booking_id"`
	Name                string    `json:"guest_name"`
	DietaryRequirements string    `json:"dietary_requirements,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
}

type GuestOrder struct {
	ID         int64     `json:"id"`
	GuestID    int64     `json:"guest_id"`
	MenuItemID int64     `json:"menu_item_id"`
	Quantity   int       `json:"quantity"`
	MenuItem   *MenuItem `json:"menu_item,omitempty"`
}

type GuestWithOrders struct {
	Guest
	Orders []GuestOrder `json:"orders"`
}

type BookingWithDetails struct {
	Booking
	Guests []GuestWithOrders `json:"guests"`
}

// GuestInput is a validated guest ready for persistence: display data plus
// the menu item ids to record as orders, in course order.
type GuestInput struct {
	Name                string
	DietaryRequirements string
	MenuItemIDs         []int64
}

// BookingReceipt is what the customer gets back after a successful booking.
type BookingReceipt struct {
	ID          int64   `json:"id"`
	Reference   string  `json:"booking_reference"`
	TotalAmount float64 `json:"total_amount"`
	TotalGuests int     `json:"total_guests"`
	PaymentLink string  `json:"payment_link"`
}
