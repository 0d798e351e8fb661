package controllers

import (
	"net/http"
	"strings"

	"github.com/wortheat/wortheat-backend/api/responses"
	"github.com/wortheat/wortheat-backend/internal/recommend"
	pkgerrors "github.com/wortheat/wortheat-backend/pkg/errors"
	"github.com/wortheat/wortheat-backend/pkg/logger"
)

// Recommendations suggests dishes for the caller's city, weather, and time
// of day.
func Recommendations(svc recommend.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "recommendation service unavailable"))
			return
		}

		city := strings.TrimSpace(r.URL.Query().Get("city"))
		if city == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "city is required"))
			return
		}
		engine := strings.TrimSpace(r.URL.Query().Get("engine"))

		recommendation, err := svc.Recommend(r.Context(), city, engine)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, recommendation)
	}
}
