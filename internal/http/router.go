package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/isah4/Record-system-full-stack-web-app-sub000/internal/config"
	"github.com/isah4/Record-system-full-stack-web-app-sub000/internal/handlers"
	"github.com/isah4/Record-system-full-stack-web-app-sub000/internal/middleware"
)

// Handlers bundles everything the router mounts
type Handlers struct {
	Auth      *handlers.AuthHandler
	Customers *handlers.CustomerHandler
	Items     *handlers.ItemHandler
	Sales     *handlers.SaleHandler
	Debts     *handlers.DebtHandler
	Expenses  *handlers.ExpenseHandler
	Activity  *handlers.ActivityHandler
	Reports   *handlers.ReportHandler
	Dashboard *handlers.DashboardHandler
	Ops       *handlers.OpsHandler
}

// NewRouter builds the full route table. Everything under /api except
// auth requires a valid token; monitoring additionally requires admin.
func NewRouter(cfg *config.Config, h *Handlers, authMW *middleware.AuthMiddleware) http.Handler {
	r := mux.NewRouter()

	r.Use(middleware.PanicRecovery)
	r.Use(middleware.MetricsMiddleware)

	// Ops endpoints stay outside /api and outside auth
	r.HandleFunc("/health", h.Ops.Health).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()

	authRoutes := api.PathPrefix("/auth").Subrouter()
	authRoutes.HandleFunc("/signup", h.Auth.Signup).Methods(http.MethodPost)
	authRoutes.HandleFunc("/login", h.Auth.Login).Methods(http.MethodPost)

	protected := api.NewRoute().Subrouter()
	protected.Use(authMW.Authenticate)

	protected.HandleFunc("/customers", h.Customers.Create).Methods(http.MethodPost)
	protected.HandleFunc("/customers", h.Customers.List).Methods(http.MethodGet)
	protected.HandleFunc("/customers/{id:[0-9]+}", h.Customers.Get).Methods(http.MethodGet)
	protected.HandleFunc("/customers/{id:[0-9]+}", h.Customers.Update).Methods(http.MethodPut)
	protected.HandleFunc("/customers/{id:[0-9]+}", h.Customers.Delete).Methods(http.MethodDelete)

	protected.HandleFunc("/items", h.Items.Create).Methods(http.MethodPost)
	protected.HandleFunc("/items", h.Items.List).Methods(http.MethodGet)
	protected.HandleFunc("/items/{id:[0-9]+}", h.Items.Get).Methods(http.MethodGet)
	protected.HandleFunc("/items/{id:[0-9]+}", h.Items.Update).Methods(http.MethodPut)
	protected.HandleFunc("/items/{id:[0-9]+}/stock", h.Items.AdjustStock).Methods(http.MethodPost)

	protected.HandleFunc("/sales", h.Sales.Create).Methods(http.MethodPost)
	protected.HandleFunc("/sales", h.Sales.List).Methods(http.MethodGet)
	protected.HandleFunc("/sales/{id:[0-9]+}", h.Sales.Get).Methods(http.MethodGet)

	// Summary route registered before {id} so "customers" never matches as an id
	protected.HandleFunc("/debts/customers/summary", h.Debts.CustomerSummary).Methods(http.MethodGet)
	protected.HandleFunc("/debts/customers/{customerId:[0-9]+}/payments", h.Debts.AllocatePayment).Methods(http.MethodPost)
	protected.HandleFunc("/debts", h.Debts.List).Methods(http.MethodGet)
	protected.HandleFunc("/debts/{id:[0-9]+}/repayment", h.Debts.Repay).Methods(http.MethodPost)

	protected.HandleFunc("/expenses", h.Expenses.Create).Methods(http.MethodPost)
	protected.HandleFunc("/expenses", h.Expenses.List).Methods(http.MethodGet)
	protected.HandleFunc("/expenses/{id:[0-9]+}", h.Expenses.Delete).Methods(http.MethodDelete)

	protected.HandleFunc("/activity", h.Activity.List).Methods(http.MethodGet)
	protected.HandleFunc("/activity/live", h.Activity.Live).Methods(http.MethodGet)
	protected.HandleFunc("/activity/profit-analysis", h.Reports.ProfitAnalysis).Methods(http.MethodGet)

	protected.HandleFunc("/reports/summary", h.Reports.Summary).Methods(http.MethodGet)
	protected.HandleFunc("/reports/export/csv", h.Reports.ExportCSV).Methods(http.MethodGet)
	protected.HandleFunc("/reports/customers/{id:[0-9]+}/statement.pdf", h.Reports.CustomerStatementPDF).Methods(http.MethodGet)

	protected.HandleFunc("/dashboard/summary", h.Dashboard.Summary).Methods(http.MethodGet)

	admin := protected.NewRoute().Subrouter()
	admin.Use(authMW.RequireAdmin)
	admin.HandleFunc("/monitoring/system", h.Ops.SystemStats).Methods(http.MethodGet)

	return middleware.NewCORS(cfg)(r)
}
