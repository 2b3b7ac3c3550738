package api

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"yulebook/internal/models"

	"github.com/xuri/excelize/v2"
)

const exportSheet = "Bookings"

// handleExportBookings streams the booking list as an Excel workbook, one
// row per guest so dietary requirements and dish choices stay readable.
func (s *Server) handleExportBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := s.bookings.ListBookings(r.Context(), r.URL.Query().Get("payment_status"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	f, err := buildExportWorkbook(bookings)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	defer f.Close()

	fileName := fmt.Sprintf("bookings_%s.xlsx", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))

	if err := f.Write(w); err != nil {
		s.logger.Error().Err(err).Msg("export write failed")
	}
}

func buildExportWorkbook(bookings []models.BookingWithDetails) (*excelize.File, error) {
	f := excelize.NewFile()

	index, err := f.NewSheet(exportSheet)
	if err != nil {
		return nil, fmt.Errorf("error creating sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headers := []string{
		"Reference", "Organizer", "Email", "Phone", "Guests", "Total",
		"Payment Status", "Guest", "Dietary Requirements", "Dishes", "Created",
	}
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font: &excelize.Font{Bold: true},
	})
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(exportSheet, cell, header)
		_ = f.SetCellStyle(exportSheet, cell, cell, headerStyle)
	}

	row := 2
	for _, booking := range bookings {
		writeGuestRows(f, &booking, &row)
	}

	_ = f.SetColWidth(exportSheet, "A", "A", 22)
	_ = f.SetColWidth(exportSheet, "B", "D", 20)
	_ = f.SetColWidth(exportSheet, "E", "G", 14)
	_ = f.SetColWidth(exportSheet, "H", "J", 30)
	_ = f.SetColWidth(exportSheet, "K", "K", 18)

	_ = f.DeleteSheet("Sheet1")
	return f, nil
}

func writeGuestRows(f *excelize.File, booking *models.BookingWithDetails, row *int) {
	writeBookingCells := func(r int) {
		_ = f.SetCellValue(exportSheet, fmt.Sprintf("A%d", r), booking.Reference)
		_ = f.SetCellValue(exportSheet, fmt.Sprintf("B%d", r), booking.OrganizerName)
		_ = f.SetCellValue(exportSheet, fmt.Sprintf("C%d", r), booking.OrganizerEmail)
		_ = f.SetCellValue(exportSheet, fmt.Sprintf("D%d", r), booking.OrganizerPhone)
		_ = f.SetCellValue(exportSheet, fmt.Sprintf("E%d", r), booking.TotalGuests)
		_ = f.SetCellValue(exportSheet, fmt.Sprintf("F%d", r), booking.TotalAmount)
		_ = f.SetCellValue(exportSheet, fmt.Sprintf("G%d", r), booking.PaymentStatus)
		_ = f.SetCellValue(exportSheet, fmt.Sprintf("K%d", r), booking.CreatedAt.Format("02.01.2006 15:04"))
	}

	if len(booking.Guests) == 0 {
		writeBookingCells(*row)
		*row++
		return
	}

	for _, guest := range booking.Guests {
		writeBookingCells(*row)
		_ = f.SetCellValue(exportSheet, fmt.Sprintf("H%d", *row), guest.Name)
		_ = f.SetCellValue(exportSheet, fmt.Sprintf("I%d", *row), guest.DietaryRequirements)
		_ = f.SetCellValue(exportSheet, fmt.Sprintf("J%d", *row), guestDishes(guest))
		*row++
	}
}

func guestDishes(guest models.GuestWithOrders) string {
	var dishes []string
	for _, order := range guest.Orders {
		if order.MenuItem != nil {
			dishes = append(dishes, order.MenuItem.Name)
		}
	}
	return strings.Join(dishes, ", ")
}
