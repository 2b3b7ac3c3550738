package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"yulebook/internal/models"
)

const bookingColumns = `id, booking_reference, organizer_name, organizer_email, organizer_phone,
                 booking_date, total_guests, total_amount, payment_status, payment_link,
                 notes, created_at, updated_at`

func scanBooking(row interface{ Scan(...any) error }) (models.Booking, error) {
	var b models.Booking
	var email, phone, link, notes sql.NullString
	err := row.Scan(
		&b.ID, &b.Reference, &b.OrganizerName, &email, &phone,
		&b.BookingDate, &b.TotalGuests, &b.TotalAmount, &b.PaymentStatus, &link,
		&notes, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return b, err
	}
	b.OrganizerEmail = email.String
	b.OrganizerPhone = phone.String
	b.PaymentLink = link.String
	b.Notes = notes.String
	return b, nil
}

// CreateBooking persists the booking, its guests and their orders in a single
// transaction. Any failure rolls back every row. A reference collision is
// reported as ErrDuplicateReference so the caller can retry with a new one.
func (db *DB) CreateBooking(ctx context.Context, booking *models.Booking, guests []models.GuestInput) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	now := time.Now()
	result, err := tx.ExecContext(ctx,
		`INSERT INTO bookings (
            booking_reference, organizer_name, organizer_email, organizer_phone,
            booking_date, total_guests, total_amount, payment_status, payment_link,
            notes, created_at, updated_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		booking.Reference,
		booking.OrganizerName,
		nullable(booking.OrganizerEmail),
		nullable(booking.OrganizerPhone),
		booking.BookingDate,
		booking.TotalGuests,
		booking.TotalAmount,
		booking.PaymentStatus,
		nullable(booking.PaymentLink),
		nullable(booking.Notes),
		now,
		now,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateReference
		}
		return fmt.Errorf("failed to insert booking: %w", err)
	}

	bookingID, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get booking id: %w", err)
	}

	for _, guest := range guests {
		guestResult, err := tx.ExecContext(ctx,
			`INSERT INTO guests (booking_id, guest_name, dietary_requirements, created_at) VALUES (?, ?, ?, ?)`,
			bookingID, guest.Name, nullable(guest.DietaryRequirements), now,
		)
		if err != nil {
			return fmt.Errorf("failed to insert guest: %w", err)
		}

		guestID, err := guestResult.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get guest id: %w", err)
		}

		for _, itemID := range guest.MenuItemIDs {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO guest_orders (guest_id, menu_item_id, quantity, created_at) VALUES (?, ?, 1, ?)`,
				guestID, itemID, now,
			)
			if err != nil {
				return fmt.Errorf("failed to insert guest order: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit booking: %w", err)
	}

	booking.ID = bookingID
	booking.CreatedAt = now
	booking.UpdatedAt = now
	return nil
}

func (db *DB) GetBooking(ctx context.Context, id int64) (*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = ?`
	b, err := scanBooking(db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return &b, nil
}

// GetBookingByReference returns the booking with nested guests, orders and
// resolved menu item detail.
func (db *DB) GetBookingByReference(ctx context.Context, reference string) (*models.BookingWithDetails, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE booking_reference = ?`
	b, err := scanBooking(db.QueryRowContext(ctx, query, reference))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking by reference: %w", err)
	}

	guestsByBooking, err := db.loadGuests(ctx, []int64{b.ID})
	if err != nil {
		return nil, err
	}

	return &models.BookingWithDetails{Booking: b, Guests: guestsByBooking[b.ID]}, nil
}

// ListBookings returns bookings newest-first with nested detail, optionally
// filtered by payment status. An empty or "all" filter returns everything.
func (db *DB) ListBookings(ctx context.Context, paymentStatus string) ([]models.BookingWithDetails, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings`
	var args []any
	if paymentStatus != "" && paymentStatus != "all" {
		query += ` WHERE payment_status = ?`
		args = append(args, paymentStatus)
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer rows.Close()

	var bookings []models.Booking
	var ids []int64
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, b)
		ids = append(ids, b.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	guestsByBooking, err := db.loadGuests(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]models.BookingWithDetails, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, models.BookingWithDetails{Booking: b, Guests: guestsByBooking[b.ID]})
	}
	return out, nil
}

// loadGuests fetches guests, orders and menu item detail for the given
// bookings in one joined query, grouped by booking id.
func (db *DB) loadGuests(ctx context.Context, bookingIDs []int64) (map[int64][]models.GuestWithOrders, error) {
	out := make(map[int64][]models.GuestWithOrders, len(bookingIDs))
	if len(bookingIDs) == 0 {
		return out, nil
	}

	placeholders := strings.Repeat("?,", len(bookingIDs))
	placeholders = placeholders[:len(placeholders)-1]
	query := `SELECT g.id, g.booking_id, g.guest_name, g.dietary_requirements, g.created_at,
                     o.id, o.menu_item_id, o.quantity,
                     mi.id, mi.name, mi.type, mi.description, mi.price, mi.surcharge, mi.subcategory, mi.available
              FROM guests g
              LEFT JOIN guest_orders o ON o.guest_id = g.id
              LEFT JOIN menu_items mi ON mi.id = o.menu_item_id
              WHERE g.booking_id IN (` + placeholders + `)
              ORDER BY g.booking_id, g.id, o.id`

	args := make([]any, len(bookingIDs))
	for i, id := range bookingIDs {
		args[i] = id
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to load guests: %w", err)
	}
	defer rows.Close()

	guestIndex := make(map[int64]int)
	guestBooking := make(map[int64]int64)

	for rows.Next() {
		var g models.Guest
		var dietary sql.NullString
		var orderID, orderItemID sql.NullInt64
		var orderQty sql.NullInt64
		var itemID sql.NullInt64
		var itemName, itemType, itemDesc, itemSub sql.NullString
		var itemPrice, itemSurcharge sql.NullFloat64
		var itemAvailable sql.NullBool

		err := rows.Scan(
			&g.ID, &g.BookingID, &g.Name, &dietary, &g.CreatedAt,
			&orderID, &orderItemID, &orderQty,
			&itemID, &itemName, &itemType, &itemDesc, &itemPrice, &itemSurcharge, &itemSub, &itemAvailable,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan guest row: %w", err)
		}
		g.DietaryRequirements = dietary.String

		idx, seen := guestIndex[g.ID]
		if !seen {
			out[g.BookingID] = append(out[g.BookingID], models.GuestWithOrders{Guest: g, Orders: []models.GuestOrder{}})
			idx = len(out[g.BookingID]) - 1
			guestIndex[g.ID] = idx
			guestBooking[g.ID] = g.BookingID
		}

		if !orderID.Valid {
			continue
		}

		order := models.GuestOrder{
			ID:         orderID.Int64,
			GuestID:    g.ID,
			MenuItemID: orderItemID.Int64,
			Quantity:   int(orderQty.Int64),
		}
		if itemID.Valid {
			order.MenuItem = &models.MenuItem{
				ID:          itemID.Int64,
				Name:        itemName.String,
				Type:        itemType.String,
				Description: itemDesc.String,
				Price:       itemPrice.Float64,
				Surcharge:   itemSurcharge.Float64,
				Subcategory: itemSub.String,
				Available:   itemAvailable.Bool,
			}
		}

		bookingID := guestBooking[g.ID]
		out[bookingID][idx].Orders = append(out[bookingID][idx].Orders, order)
	}
	return out, rows.Err()
}

// UpdatePaymentStatus sets the payment status and returns the updated
// booking, or ErrNotFound when the id does not exist.
func (db *DB) UpdatePaymentStatus(ctx context.Context, id int64, status string) (*models.Booking, error) {
	result, err := db.ExecContext(ctx,
		`UPDATE bookings SET payment_status = ?, updated_at = ? WHERE id = ?`,
		status, time.Now(), id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update payment status: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return nil, ErrNotFound
	}
	return db.GetBooking(ctx, id)
}

// DeleteBooking removes the booking and, through cascading foreign keys, all
// of its guests and their orders. The deleted booking is returned.
func (db *DB) DeleteBooking(ctx context.Context, id int64) (*models.Booking, error) {
	booking, err := db.GetBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	if _, err := db.ExecContext(ctx, `DELETE FROM bookings WHERE id = ?`, id); err != nil {
		return nil, fmt.Errorf("failed to delete booking: %w", err)
	}
	return booking, nil
}
