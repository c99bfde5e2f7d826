package services

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/jung-kurt/gofpdf/v2"

	"github.com/isah4/Record-system-full-stack-web-app-sub000/internal/cache"
	"github.com/isah4/Record-system-full-stack-web-app-sub000/internal/models"
	"github.com/isah4/Record-system-full-stack-web-app-sub000/internal/timeutil"
)

// ReportStore is the read-only aggregate surface behind reports
type ReportStore interface {
	SalesTotals(ctx context.Context, date time.Time) (float64, int, error)
	ExpensesTotal(ctx context.Context, date time.Time) (float64, error)
	RepaymentsTotal(ctx context.Context, date time.Time) (float64, error)
	OutstandingDebtTotal(ctx context.Context) (float64, error)
	DailyProfits(ctx context.Context, start, end time.Time) ([]models.DailyProfit, error)
	SalesForExport(ctx context.Context, start, end time.Time) ([]models.SaleWithContext, error)
	PaymentsByCustomer(ctx context.Context, customerID int) ([]models.PaymentHistory, error)
	OpenDebtsByCustomer(ctx context.Context, customerID int) ([]models.OpenDebt, error)
}

// StockCounter supplies the low-stock alert figure
type StockCounter interface {
	LowStockCount(ctx context.Context) (int, error)
}

// CustomerGetter resolves the customer a statement is rendered for
type CustomerGetter interface {
	Get(ctx context.Context, id int) (*models.Customer, error)
}

// ReportService builds the aggregate reports and exports
type ReportService struct {
	reports   ReportStore
	items     StockCounter
	customers CustomerGetter
}

func NewReportService(reports ReportStore, items StockCounter, customers CustomerGetter) *ReportService {
	return &ReportService{reports: reports, items: items, customers: customers}
}

// DailySummary returns the totals for one business day, cached briefly.
// Outstanding debt is always the current figure, not a historical one.
func (s *ReportService) DailySummary(ctx context.Context, date time.Time) (*models.DailySummary, error) {
	day := timeutil.ToWAT(date).Format(timeutil.DateLayout)

	if data, ok := cache.GetDailySummary(ctx, day); ok {
		var summary models.DailySummary
		if err := json.Unmarshal(data, &summary); err == nil {
			return &summary, nil
		}
	}

	salesTotal, salesCount, err := s.reports.SalesTotals(ctx, date)
	if err != nil {
		return nil, err
	}
	expensesTotal, err := s.reports.ExpensesTotal(ctx, date)
	if err != nil {
		return nil, err
	}
	repaymentsTotal, err := s.reports.RepaymentsTotal(ctx, date)
	if err != nil {
		return nil, err
	}
	outstanding, err := s.reports.OutstandingDebtTotal(ctx)
	if err != nil {
		return nil, err
	}

	summary := &models.DailySummary{
		Date:            day,
		SalesTotal:      salesTotal,
		SalesCount:      salesCount,
		ExpensesTotal:   expensesTotal,
		RepaymentsTotal: repaymentsTotal,
		OutstandingDebt: outstanding,
		NetPosition:     salesTotal + repaymentsTotal - expensesTotal,
	}

	if data, err := json.Marshal(summary); err == nil {
		cache.CacheDailySummary(ctx, day, data)
	}
	return summary, nil
}

// DashboardSummary returns today's headline figures plus the low-stock
// alert count, cached for 60 seconds.
func (s *ReportService) DashboardSummary(ctx context.Context) (*models.DashboardSummary, error) {
	if data, ok := cache.GetDashboardSummary(ctx); ok {
		var summary models.DashboardSummary
		if err := json.Unmarshal(data, &summary); err == nil {
			return &summary, nil
		}
	}

	today := timeutil.Now()
	salesTotal, salesCount, err := s.reports.SalesTotals(ctx, today)
	if err != nil {
		return nil, err
	}
	expensesTotal, err := s.reports.ExpensesTotal(ctx, today)
	if err != nil {
		return nil, err
	}
	outstanding, err := s.reports.OutstandingDebtTotal(ctx)
	if err != nil {
		return nil, err
	}
	lowStock, err := s.items.LowStockCount(ctx)
	if err != nil {
		return nil, err
	}

	summary := &models.DashboardSummary{
		Date:            today.Format(timeutil.DateLayout),
		SalesTotal:      salesTotal,
		SalesCount:      salesCount,
		ExpensesTotal:   expensesTotal,
		OutstandingDebt: outstanding,
		LowStockCount:   lowStock,
	}

	if data, err := json.Marshal(summary); err == nil {
		cache.CacheDashboardSummary(ctx, data)
	}
	return summary, nil
}

// ProfitAnalysis returns per-day revenue and profit rollups for the range
func (s *ReportService) ProfitAnalysis(ctx context.Context, start, end time.Time) ([]models.DailyProfit, error) {
	if end.Before(start) {
		return nil, fmt.Errorf("endDate must not precede startDate: %w", models.ErrValidation)
	}
	return s.reports.DailyProfits(ctx, start, end)
}

// ExportSalesCSV streams the range's sales as CSV
func (s *ReportService) ExportSalesCSV(ctx context.Context, w io.Writer, start, end time.Time) error {
	if end.Before(start) {
		return fmt.Errorf("endDate must not precede startDate: %w", models.ErrValidation)
	}

	sales, err := s.reports.SalesForExport(ctx, start, end)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{
		"id", "date", "buyer", "customer", "item", "quantity",
		"total", "balance", "payment_status",
	}); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, sale := range sales {
		record := []string{
			strconv.Itoa(sale.ID),
			timeutil.ToWAT(sale.CreatedAt).Format(timeutil.DateTimeLayout),
			sale.BuyerName,
			sale.CustomerName,
			sale.ItemName,
			strconv.Itoa(sale.Quantity),
			strconv.FormatFloat(sale.Total, 'f', 2, 64),
			strconv.FormatFloat(sale.Balance, 'f', 2, 64),
			sale.PaymentStatus,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// CustomerStatement gathers everything the PDF statement renders
func (s *ReportService) CustomerStatement(ctx context.Context, customerID int) (*models.CustomerStatement, error) {
	customer, err := s.customers.Get(ctx, customerID)
	if err != nil {
		return nil, err
	}

	debts, err := s.reports.OpenDebtsByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	payments, err := s.reports.PaymentsByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	var outstanding float64
	for i := range debts {
		outstanding += debts[i].Outstanding()
	}

	return &models.CustomerStatement{
		Customer:    customer,
		OpenDebts:   debts,
		Payments:    payments,
		Outstanding: outstanding,
		GeneratedAt: timeutil.Now(),
	}, nil
}

// WriteStatementPDF renders a customer debt statement. Amounts use an
// "NGN" prefix because the naira sign is outside the core PDF fonts.
func (s *ReportService) WriteStatementPDF(ctx context.Context, w io.Writer, customerID int) error {
	stmt, err := s.CustomerStatement(ctx, customerID)
	if err != nil {
		return err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Debt Statement - %s", stmt.Customer.Name), false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Customer Debt Statement")
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Customer: %s", stmt.Customer.Name))
	pdf.Ln(6)
	if stmt.Customer.Phone != "" {
		pdf.Cell(0, 6, fmt.Sprintf("Phone: %s", stmt.Customer.Phone))
		pdf.Ln(6)
	}
	pdf.Cell(0, 6, fmt.Sprintf("Generated: %s", stmt.GeneratedAt.Format(timeutil.DateTimeLayout)))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Open Debts")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(25, 7, "Sale #", "1", 0, "", false, 0, "")
	pdf.CellFormat(30, 7, "Date", "1", 0, "", false, 0, "")
	pdf.CellFormat(55, 7, "Item", "1", 0, "", false, 0, "")
	pdf.CellFormat(40, 7, "Amount", "1", 0, "R", false, 0, "")
	pdf.CellFormat(40, 7, "Outstanding", "1", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	if len(stmt.OpenDebts) == 0 {
		pdf.CellFormat(190, 7, "No open debts", "1", 1, "C", false, 0, "")
	}
	for _, d := range stmt.OpenDebts {
		pdf.CellFormat(25, 7, strconv.Itoa(d.SaleID), "1", 0, "", false, 0, "")
		pdf.CellFormat(30, 7, timeutil.ToWAT(d.SaleDate).Format(timeutil.DateLayout), "1", 0, "", false, 0, "")
		pdf.CellFormat(55, 7, d.ItemName, "1", 0, "", false, 0, "")
		pdf.CellFormat(40, 7, fmt.Sprintf("NGN %.2f", d.Amount), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 7, fmt.Sprintf("NGN %.2f", d.Outstanding()), "1", 1, "R", false, 0, "")
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Total Outstanding: NGN %.2f", stmt.Outstanding))
	pdf.Ln(12)

	pdf.Cell(0, 8, "Payment History")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(30, 7, "Date", "1", 0, "", false, 0, "")
	pdf.CellFormat(25, 7, "Sale #", "1", 0, "", false, 0, "")
	pdf.CellFormat(45, 7, "Type", "1", 0, "", false, 0, "")
	pdf.CellFormat(40, 7, "Amount", "1", 0, "R", false, 0, "")
	pdf.CellFormat(50, 7, "Note", "1", 1, "", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	if len(stmt.Payments) == 0 {
		pdf.CellFormat(190, 7, "No payments recorded", "1", 1, "C", false, 0, "")
	}
	for _, p := range stmt.Payments {
		pdf.CellFormat(30, 7, timeutil.ToWAT(p.PaymentDate).Format(timeutil.DateLayout), "1", 0, "", false, 0, "")
		pdf.CellFormat(25, 7, strconv.Itoa(p.SaleID), "1", 0, "", false, 0, "")
		pdf.CellFormat(45, 7, p.PaymentType, "1", 0, "", false, 0, "")
		pdf.CellFormat(40, 7, fmt.Sprintf("NGN %.2f", p.Amount), "1", 0, "R", false, 0, "")
		pdf.CellFormat(50, 7, p.Description, "1", 1, "", false, 0, "")
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to render statement pdf: %w", err)
	}
	return nil
}
