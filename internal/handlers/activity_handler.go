package handlers

import (
	"net/http"
	"strconv"

	"github.com/isah4/Record-system-full-stack-web-app-sub000/internal/live"
	"github.com/isah4/Record-system-full-stack-web-app-sub000/internal/repositories"
	"github.com/isah4/Record-system-full-stack-web-app-sub000/pkg/utils"
)

const defaultActivityLimit = 50

type ActivityHandler struct {
	activities *repositories.ActivityLogRepository
	feed       *live.Hub
}

func NewActivityHandler(activities *repositories.ActivityLogRepository, feed *live.Hub) *ActivityHandler {
	return &ActivityHandler{activities: activities, feed: feed}
}

// List handles GET /api/activity?date=YYYY-MM-DD&limit=N
func (h *ActivityHandler) List(w http.ResponseWriter, r *http.Request) {
	date, err := parseDateQuery(r, "date")
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}

	limit := defaultActivityLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > 500 {
			utils.Error(w, http.StatusBadRequest, "limit must be between 1 and 500")
			return
		}
		limit = n
	}

	activities, err := h.activities.List(r.Context(), date, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, activities)
}

// Live handles GET /api/activity/live, upgrading to a websocket that
// receives committed activity events as they happen.
func (h *ActivityHandler) Live(w http.ResponseWriter, r *http.Request) {
	h.feed.ServeWS(w, r)
}
