package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/netwave-iq/netwave-backend/internal/bookings"
	"github.com/netwave-iq/netwave-backend/pkg/enums"
)

type stubBookingsService struct {
	createInput  bookings.CreateBookingInput
	createResult *bookings.CreateBookingResult
	createErr    error
	createCalls  int

	updateID     uuid.UUID
	updateTarget enums.BookingStatus
	updateResult *bookings.BookingDTO
	updateCalls  int
}

func (s *stubBookingsService) Create(_ context.Context, input bookings.CreateBookingInput) (*bookings.CreateBookingResult, error) {
	s.createCalls++
	s.createInput = input
	return s.createResult, s.createErr
}

func (s *stubBookingsService) Get(_ context.Context, _ uuid.UUID) (*bookings.BookingDTO, error) {
	return nil, nil
}

func (s *stubBookingsService) List(_ context.Context, _ bookings.ListParams) (*bookings.ListResult, error) {
	return &bookings.ListResult{}, nil
}

func (s *stubBookingsService) UpdateStatus(_ context.Context, id uuid.UUID, target enums.BookingStatus) (*bookings.BookingDTO, error) {
	s.updateCalls++
	s.updateID = id
	s.updateTarget = target
	return s.updateResult, nil
}

func (s *stubBookingsService) Delete(_ context.Context, _ uuid.UUID) error {
	return nil
}

func withPathParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestCreateBookingReturnsPaymentURL(t *testing.T) {
	bookingID := uuid.New()
	svc := &stubBookingsService{
		createResult: &bookings.CreateBookingResult{
			Booking: bookings.BookingDTO{
				ID:            bookingID,
				CustomerName:  "سارة محمود",
				Status:        "awaiting_payment",
				PaymentStatus: "pending",
			},
			PaymentURL: "https://test.zaincash.iq/transaction/pay?id=TX-1",
		},
	}
	handler := CreateBooking(svc, newControllerTestLogger())

	body := `{"customer_name":"سارة محمود","customer_email":"sara@example.com","customer_phone":"+9647701234567","locale":"ar"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	handler(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.createCalls != 1 {
		t.Fatalf("expected one create call, got %d", svc.createCalls)
	}
	if svc.createInput.CustomerEmail != "sara@example.com" {
		t.Fatalf("unexpected email %q", svc.createInput.CustomerEmail)
	}
	if svc.createInput.Locale != "ar" {
		t.Fatalf("unexpected locale %q", svc.createInput.Locale)
	}

	var envelope struct {
		Data bookings.CreateBookingResult `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Booking.ID != bookingID {
		t.Fatalf("expected booking %s, got %s", bookingID, envelope.Data.Booking.ID)
	}
	if envelope.Data.PaymentURL == "" {
		t.Fatalf("expected a payment url in the response")
	}
}

func TestCreateBookingRejectsInvalidBody(t *testing.T) {
	svc := &stubBookingsService{}
	handler := CreateBooking(svc, newControllerTestLogger())

	body := `{"customer_name":"س","customer_phone":"+9647701234567"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	handler(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
	if svc.createCalls != 0 {
		t.Fatalf("service should not be called for an invalid body")
	}
}

func TestAdminUpdateBookingStatusParsesTarget(t *testing.T) {
	bookingID := uuid.New()
	svc := &stubBookingsService{
		updateResult: &bookings.BookingDTO{ID: bookingID, Status: "confirmed"},
	}
	handler := AdminUpdateBookingStatus(svc, newControllerTestLogger())

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/admin/bookings/"+bookingID.String()+"/status", strings.NewReader(`{"status":"confirmed"}`))
	req.Header.Set("Content-Type", "application/json")
	req = withPathParam(req, "bookingId", bookingID.String())
	resp := httptest.NewRecorder()
	handler(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.updateID != bookingID {
		t.Fatalf("expected booking id %s, got %s", bookingID, svc.updateID)
	}
	if svc.updateTarget != enums.BookingStatusConfirmed {
		t.Fatalf("unexpected target status %q", svc.updateTarget)
	}
}

func TestAdminUpdateBookingStatusRejectsUnknownStatus(t *testing.T) {
	bookingID := uuid.New()
	svc := &stubBookingsService{}
	handler := AdminUpdateBookingStatus(svc, newControllerTestLogger())

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/admin/bookings/"+bookingID.String()+"/status", strings.NewReader(`{"status":"archived"}`))
	req.Header.Set("Content-Type", "application/json")
	req = withPathParam(req, "bookingId", bookingID.String())
	resp := httptest.NewRecorder()
	handler(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
	if svc.updateCalls != 0 {
		t.Fatalf("service should not be called for an unknown status")
	}
}

func TestAdminBookingDetailRejectsMalformedID(t *testing.T) {
	handler := AdminBookingDetail(&stubBookingsService{}, newControllerTestLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/bookings/not-a-uuid", nil)
	req = withPathParam(req, "bookingId", "not-a-uuid")
	resp := httptest.NewRecorder()
	handler(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}
