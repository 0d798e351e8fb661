package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/wortheat/wortheat-backend/api/responses"
	"github.com/wortheat/wortheat-backend/api/validators"
	"github.com/wortheat/wortheat-backend/internal/catalog"
	pkgerrors "github.com/wortheat/wortheat-backend/pkg/errors"
	"github.com/wortheat/wortheat-backend/pkg/logger"
)

// CatalogMenus lists weekly menu items filtered by vendor and calendar day.
func CatalogMenus(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		query := catalog.MenuQuery{}
		if raw := strings.TrimSpace(r.URL.Query().Get("vendorId")); raw != "" {
			vendorID, err := uuid.Parse(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid vendor id"))
				return
			}
			query.VendorID = &vendorID
		}

		var err error
		if query.Date, err = validators.ParseQueryInt(r, "date", 0, 0, 31); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if query.Month, err = validators.ParseQueryInt(r, "month", 0, 0, 12); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if query.Year, err = validators.ParseQueryInt(r, "year", 0, 0, 2100); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items, err := svc.ListMenus(r.Context(), query)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}

// CatalogBreakfast lists breakfast snacks.
func CatalogBreakfast(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		items, err := svc.ListBreakfast(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}

// CatalogAllDaySnacks lists all-day snacks.
func CatalogAllDaySnacks(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		items, err := svc.ListAllDaySnacks(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}

// CatalogVendors lists active vendors for customer browsing.
func CatalogVendors(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		summaries, err := svc.ListVendors(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, summaries)
	}
}
