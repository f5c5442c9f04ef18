package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/netwave-iq/netwave-backend/api/responses"
	"github.com/netwave-iq/netwave-backend/internal/payments"
	pkgerrors "github.com/netwave-iq/netwave-backend/pkg/errors"
	"github.com/netwave-iq/netwave-backend/pkg/logger"
)

// PaymentCallback handles the gateway redirect for bookings. The gateway
// sends the customer back with booking_id, transaction_id (or id) and a
// result token; the reconciler owns all state transitions.
func PaymentCallback(svc payments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "payments service unavailable"))
			return
		}

		query := r.URL.Query()
		bookingID, err := queryUUID(query.Get("booking_id"), "booking_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.ReconcileBooking(r.Context(), payments.BookingCallbackParams{
			BookingID:     bookingID,
			TransactionID: transactionIDParam(query),
			Token:         strings.TrimSpace(query.Get("token")),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// FilePaymentCallback handles the gateway redirect for file purchases.
func FilePaymentCallback(svc payments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "payments service unavailable"))
			return
		}

		query := r.URL.Query()
		fileID, err := queryUUID(query.Get("file_id"), "file_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.ReconcileFilePurchase(r.Context(), payments.FileCallbackParams{
			FileID:        fileID,
			UserID:        strings.TrimSpace(query.Get("user_id")),
			TransactionID: transactionIDParam(query),
			Token:         strings.TrimSpace(query.Get("token")),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

func queryUUID(raw, name string) (uuid.UUID, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, name+" is required")
	}
	id, err := uuid.Parse(trimmed)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid "+name)
	}
	return id, nil
}

// transactionIDParam accepts both the documented transaction_id parameter
// and the bare id the gateway uses on some redirects.
func transactionIDParam(query map[string][]string) string {
	for _, key := range []string{"transaction_id", "id"} {
		if values, ok := query[key]; ok && len(values) > 0 {
			if v := strings.TrimSpace(values[0]); v != "" {
				return v
			}
		}
	}
	return ""
}
