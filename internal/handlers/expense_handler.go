package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/isah4/Record-system-full-stack-web-app-sub000/internal/middleware"
	"github.com/isah4/Record-system-full-stack-web-app-sub000/internal/models"
	"github.com/isah4/Record-system-full-stack-web-app-sub000/internal/services"
	"github.com/isah4/Record-system-full-stack-web-app-sub000/pkg/utils"
)

type ExpenseHandler struct {
	expenses *services.ExpenseService
}

func NewExpenseHandler(expenses *services.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenses: expenses}
}

func (h *ExpenseHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	expense, err := h.expenses.Create(r.Context(), &req, userID)
	if err != nil {
		writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, expense)
}

// List handles GET /api/expenses?date=YYYY-MM-DD
func (h *ExpenseHandler) List(w http.ResponseWriter, r *http.Request) {
	date, err := parseDateQuery(r, "date")
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}

	expenses, err := h.expenses.List(r.Context(), date)
	if err != nil {
		writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, expenses)
}

func (h *ExpenseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid expense id")
		return
	}

	if err := h.expenses.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"message": "expense deleted"})
}
