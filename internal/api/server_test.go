package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"yulebook/internal/config"
	"yulebook/internal/database"
	"yulebook/internal/models"
	"yulebook/internal/repository"
	"yulebook/internal/service"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const testAdminPassword = "test-secret"

func newTestServer(t *testing.T) (*Server, *database.DB) {
	t.Helper()

	logger := zerolog.New(io.Discard)
	db, err := database.NewDB(":memory:", &logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	cfg := &config.Config{
		Admin: config.AdminConfig{Password: testAdminPassword},
		Pricing: config.PricingConfig{
			ThreeCourseDeposit: 10.00,
			TwoCourseDeposit:   5.00,
			TipRate:            0.10,
		},
		Payment: config.PaymentConfig{BaseURL: "https://monzo.me/davidburke45", Hash: "UFLFPl"},
	}

	menus := service.NewMenuService(db, repository.NewMemoryMenuCache(0), &logger)
	bookings := service.NewBookingService(db, nil, cfg.Pricing, cfg.Payment, &logger)
	return NewServer(cfg, &logger, db, menus, bookings), db
}

func seedTestMenu(t *testing.T, db *database.DB) map[string]int64 {
	t.Helper()

	items := []models.MenuItem{
		{Name: "Crispy Satay Chicken", Type: models.MenuTypeStarter, Available: true},
		{Name: "Pan Seared Scallops", Type: models.MenuTypeStarter, Surcharge: 5.00, Available: true},
		{Name: "Turkey & Ham Roulade", Type: models.MenuTypeMain, Subcategory: "regular", Available: true},
		{Name: "Christmas Pudding", Type: models.MenuTypeDessert, Available: true},
		{Name: "Secret Special", Type: models.MenuTypeMain, Available: false},
	}

	ids := make(map[string]int64, len(items))
	for i := range items {
		require.NoError(t, db.CreateMenuItem(context.Background(), &items[i]))
		ids[items[i].Name] = items[i].ID
	}
	return ids
}

func doRequest(handler http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), "body: %s", rec.Body.String())
	return out
}

func bookingRequest(ids map[string]int64) map[string]any {
	return map[string]any{
		"organizer_name":  "Jamie",
		"organizer_email": "jamie@example.com",
		"guests": []map[string]any{
			{
				"guest_name":    "Jamie",
				"course_option": "3-course",
				"orders": map[string]any{
					"starter": ids["Crispy Satay Chicken"],
					"main":    ids["Turkey & Ham Roulade"],
					"dessert": ids["Christmas Pudding"],
				},
			},
			{
				"guest_name":    "Sam",
				"course_option": "2-course",
				"orders": map[string]any{
					"starter": ids["Pan Seared Scallops"],
					"main":    ids["Turkey & Ham Roulade"],
				},
			},
		},
	}
}

func TestHealthEndpoints(t *testing.T) {
	server, _ := newTestServer(t)
	handler := server.Routes()

	rec := doRequest(handler, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(handler, http.MethodGet, "/readyz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetMenuGroupsByCourse(t *testing.T) {
	server, db := newTestServer(t)
	seedTestMenu(t, db)
	handler := server.Routes()

	rec := doRequest(handler, http.MethodGet, "/menu", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	menu := decodeBody[models.GroupedMenu](t, rec)
	assert.Len(t, menu.Starter, 2)
	assert.Len(t, menu.Main, 1) // unavailable dish hidden
	assert.Len(t, menu.Dessert, 1)
}

func TestCreateBooking(t *testing.T) {
	server, db := newTestServer(t)
	ids := seedTestMenu(t, db)
	handler := server.Routes()

	t.Run("Success", func(t *testing.T) {
		rec := doRequest(handler, http.MethodPost, "/bookings", "", bookingRequest(ids))
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		receipt := decodeBody[models.BookingReceipt](t, rec)
		assert.Equal(t, 22.00, receipt.TotalAmount)
		assert.Equal(t, 2, receipt.TotalGuests)
		assert.Regexp(t, `^XM-`, receipt.Reference)
		assert.Equal(t, "https://monzo.me/davidburke45/22.00?h=UFLFPl", receipt.PaymentLink)
	})

	t.Run("ValidationError", func(t *testing.T) {
		form := bookingRequest(ids)
		form["organizer_name"] = ""

		rec := doRequest(handler, http.MethodPost, "/bookings", "", form)
		require.Equal(t, http.StatusBadRequest, rec.Code)

		body := decodeBody[map[string]string](t, rec)
		assert.Equal(t, "organizer name is required", body["error"])
	})

	t.Run("MalformedBody", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/bookings", bytes.NewReader([]byte("{")))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestGetBookingByReference(t *testing.T) {
	server, db := newTestServer(t)
	ids := seedTestMenu(t, db)
	handler := server.Routes()

	rec := doRequest(handler, http.MethodPost, "/bookings", "", bookingRequest(ids))
	require.Equal(t, http.StatusCreated, rec.Code)
	receipt := decodeBody[models.BookingReceipt](t, rec)

	t.Run("Found", func(t *testing.T) {
		rec := doRequest(handler, http.MethodGet, "/bookings?reference="+receipt.Reference, "", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		details := decodeBody[models.BookingWithDetails](t, rec)
		assert.Equal(t, receipt.Reference, details.Reference)
		require.Len(t, details.Guests, 2)
		assert.Equal(t, "Jamie", details.Guests[0].Name)
		assert.Len(t, details.Guests[0].Orders, 3)
	})

	t.Run("Missing", func(t *testing.T) {
		rec := doRequest(handler, http.MethodGet, "/bookings?reference=XM-NOPE-0000", "", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("NoReferenceParam", func(t *testing.T) {
		rec := doRequest(handler, http.MethodGet, "/bookings", "", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestAdminAuth(t *testing.T) {
	server, _ := newTestServer(t)
	handler := server.Routes()

	t.Run("ValidPassword", func(t *testing.T) {
		rec := doRequest(handler, http.MethodPost, "/admin/auth", "", map[string]string{"password": testAdminPassword})
		require.Equal(t, http.StatusOK, rec.Code)

		body := decodeBody[map[string]bool](t, rec)
		assert.True(t, body["success"])
	})

	t.Run("WrongPassword", func(t *testing.T) {
		rec := doRequest(handler, http.MethodPost, "/admin/auth", "", map[string]string{"password": "nope"})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("NearMissRejected", func(t *testing.T) {
		// Trailing whitespace must not be forgiven.
		rec := doRequest(handler, http.MethodPost, "/admin/auth", "", map[string]string{"password": testAdminPassword + " "})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestAdminGateRejectsBadCredentials(t *testing.T) {
	server, _ := newTestServer(t)
	handler := server.Routes()

	tests := []struct {
		name  string
		token string
	}{
		{name: "NoHeader", token: ""},
		{name: "WrongToken", token: "nope"},
		{name: "NearMiss", token: testAdminPassword + " "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(handler, http.MethodGet, "/admin/bookings", tt.token, nil)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestAdminBookingLifecycle(t *testing.T) {
	server, db := newTestServer(t)
	ids := seedTestMenu(t, db)
	handler := server.Routes()

	rec := doRequest(handler, http.MethodPost, "/bookings", "", bookingRequest(ids))
	require.Equal(t, http.StatusCreated, rec.Code)
	receipt := decodeBody[models.BookingReceipt](t, rec)

	t.Run("List", func(t *testing.T) {
		rec := doRequest(handler, http.MethodGet, "/admin/bookings", testAdminPassword, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		bookings := decodeBody[[]models.BookingWithDetails](t, rec)
		require.Len(t, bookings, 1)
		assert.Equal(t, receipt.Reference, bookings[0].Reference)
	})

	t.Run("FilterByPaymentStatus", func(t *testing.T) {
		rec := doRequest(handler, http.MethodGet, "/admin/bookings?payment_status=paid", testAdminPassword, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, decodeBody[[]models.BookingWithDetails](t, rec))

		rec = doRequest(handler, http.MethodGet, "/admin/bookings?payment_status=refunded", testAdminPassword, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("MarkPaid", func(t *testing.T) {
		path := fmt.Sprintf("/admin/bookings/%d", receipt.ID)
		rec := doRequest(handler, http.MethodPut, path, testAdminPassword, map[string]string{"payment_status": "paid"})
		require.Equal(t, http.StatusOK, rec.Code)

		booking := decodeBody[models.Booking](t, rec)
		assert.Equal(t, models.PaymentPaid, booking.PaymentStatus)
	})

	t.Run("InvalidStatus", func(t *testing.T) {
		path := fmt.Sprintf("/admin/bookings/%d", receipt.ID)
		rec := doRequest(handler, http.MethodPut, path, testAdminPassword, map[string]string{"payment_status": "refunded"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Delete", func(t *testing.T) {
		path := fmt.Sprintf("/admin/bookings/%d", receipt.ID)
		rec := doRequest(handler, http.MethodDelete, path, testAdminPassword, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		rec = doRequest(handler, http.MethodDelete, path, testAdminPassword, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("BadID", func(t *testing.T) {
		rec := doRequest(handler, http.MethodDelete, "/admin/bookings/abc", testAdminPassword, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestAdminMenuCRUD(t *testing.T) {
	server, _ := newTestServer(t)
	handler := server.Routes()

	item := map[string]any{
		"name":        "Lemon Posset",
		"type":        "dessert",
		"description": "Blackberry Sauce, Palmier",
		"available":   true,
	}

	rec := doRequest(handler, http.MethodPost, "/admin/menu", testAdminPassword, item)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decodeBody[models.MenuItem](t, rec)
	require.NotZero(t, created.ID)

	t.Run("ListIncludesUnavailable", func(t *testing.T) {
		hidden := map[string]any{"name": "Off Menu", "type": "main", "available": false}
		rec := doRequest(handler, http.MethodPost, "/admin/menu", testAdminPassword, hidden)
		require.Equal(t, http.StatusCreated, rec.Code)

		rec = doRequest(handler, http.MethodGet, "/admin/menu", testAdminPassword, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Len(t, decodeBody[[]models.MenuItem](t, rec), 2)
	})

	t.Run("Update", func(t *testing.T) {
		update := map[string]any{
			"name":      "Lemon Posset",
			"type":      "dessert",
			"surcharge": 2.50,
			"available": true,
		}
		path := fmt.Sprintf("/admin/menu/%d", created.ID)
		rec := doRequest(handler, http.MethodPut, path, testAdminPassword, update)
		require.Equal(t, http.StatusOK, rec.Code)

		updated := decodeBody[models.MenuItem](t, rec)
		assert.Equal(t, 2.50, updated.Surcharge)
	})

	t.Run("InvalidType", func(t *testing.T) {
		bad := map[string]any{"name": "Cheese Board", "type": "side"}
		rec := doRequest(handler, http.MethodPost, "/admin/menu", testAdminPassword, bad)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Delete", func(t *testing.T) {
		path := fmt.Sprintf("/admin/menu/%d", created.ID)
		rec := doRequest(handler, http.MethodDelete, path, testAdminPassword, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		rec = doRequest(handler, http.MethodPut, path, testAdminPassword, map[string]any{"name": "Ghost", "type": "dessert"})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestAdminExport(t *testing.T) {
	server, db := newTestServer(t)
	ids := seedTestMenu(t, db)
	handler := server.Routes()

	rec := doRequest(handler, http.MethodPost, "/bookings", "", bookingRequest(ids))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(handler, http.MethodGet, "/admin/bookings/export", testAdminPassword, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment")

	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Bookings")
	require.NoError(t, err)
	// Header plus one row per guest.
	require.Len(t, rows, 3)
	assert.Equal(t, "Reference", rows[0][0])
	assert.Equal(t, "Jamie", rows[1][1])
	assert.Equal(t, "Sam", rows[2][7])
}
