package controllers

import (
	"net/http"

	"github.com/netwave-iq/netwave-backend/api/responses"
	"github.com/netwave-iq/netwave-backend/internal/dashboard"
	pkgerrors "github.com/netwave-iq/netwave-backend/pkg/errors"
	"github.com/netwave-iq/netwave-backend/pkg/logger"
)

// AdminDashboard aggregates back-office counters and the monthly revenue.
func AdminDashboard(svc dashboard.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "dashboard service unavailable"))
			return
		}

		stats, err := svc.Stats(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, stats)
	}
}
