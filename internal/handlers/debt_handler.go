package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/isah4/Record-system-full-stack-web-app-sub000/internal/middleware"
	"github.com/isah4/Record-system-full-stack-web-app-sub000/internal/models"
	"github.com/isah4/Record-system-full-stack-web-app-sub000/internal/services"
	"github.com/isah4/Record-system-full-stack-web-app-sub000/pkg/utils"
)

type DebtHandler struct {
	debts *services.DebtService
}

func NewDebtHandler(debts *services.DebtService) *DebtHandler {
	return &DebtHandler{debts: debts}
}

// List handles GET /api/debts
func (h *DebtHandler) List(w http.ResponseWriter, r *http.Request) {
	debts, err := h.debts.ListOpen(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, debts)
}

// CustomerSummary handles GET /api/debts/customers/summary
func (h *DebtHandler) CustomerSummary(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.debts.CustomerSummaries(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, summaries)
}

// Repay handles POST /api/debts/{id}/repayment
func (h *DebtHandler) Repay(w http.ResponseWriter, r *http.Request) {
	debtID, err := pathID(r, "id")
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid debt id")
		return
	}

	var req models.RepayDebtRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	result, err := h.debts.RepaySingle(r.Context(), debtID, req.Amount, req.Description, userID)
	if err != nil {
		writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, result)
}

// AllocatePayment handles POST /api/debts/customers/{customerId}/payments
func (h *DebtHandler) AllocatePayment(w http.ResponseWriter, r *http.Request) {
	customerID, err := pathID(r, "customerId")
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid customer id")
		return
	}

	var req models.AllocatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	result, err := h.debts.AllocatePayment(r.Context(), customerID, req.Amount, req.Description, userID)
	if err != nil {
		writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, result)
}
