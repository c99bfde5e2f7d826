package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/isah4/Record-system-full-stack-web-app-sub000/internal/models"
	"github.com/isah4/Record-system-full-stack-web-app-sub000/internal/timeutil"
	"github.com/isah4/Record-system-full-stack-web-app-sub000/pkg/utils"
)

// writeError maps service errors onto HTTP statuses. Unknown errors are
// logged with detail but reach the client as a generic 500.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrValidation):
		utils.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, models.ErrNotFound):
		utils.Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, models.ErrConflict):
		utils.Error(w, http.StatusConflict, err.Error())
	default:
		log.Printf("[Handler] internal error: %v", err)
		utils.Error(w, http.StatusInternalServerError, "internal server error")
	}
}

// parseDateQuery reads an optional YYYY-MM-DD query parameter in the
// business timezone. Absent parameter yields nil.
func parseDateQuery(r *http.Request, key string) (*time.Time, error) {
	value := r.URL.Query().Get(key)
	if value == "" {
		return nil, nil
	}
	t, err := timeutil.ParseInWAT(timeutil.DateLayout, value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
