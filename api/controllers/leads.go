package controllers

import (
	"net/http"

	"github.com/wortheat/wortheat-backend/api/responses"
	"github.com/wortheat/wortheat-backend/api/validators"
	"github.com/wortheat/wortheat-backend/internal/leads"
	pkgerrors "github.com/wortheat/wortheat-backend/pkg/errors"
	"github.com/wortheat/wortheat-backend/pkg/logger"
)

// LeadCreate records interest from the caller. Repeat submissions return the
// existing lead.
func LeadCreate(svc leads.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "leads service unavailable"))
			return
		}
		customerID, err := customerIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body leads.CreateInput
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		lead, err := svc.Create(r.Context(), customerID, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, lead)
	}
}
