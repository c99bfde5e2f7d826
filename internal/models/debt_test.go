package models_test

import (
	"testing"

	"github.com/isah4/Record-system-full-stack-web-app-sub000/internal/models"
)

func TestDebtOutstandingFloorsAtZero(t *testing.T) {
	cases := []struct {
		name   string
		amount float64
		repaid float64
		want   float64
	}{
		{"untouched", 5000, 0, 5000},
		{"partially repaid", 5000, 2000, 3000},
		{"exactly settled", 5000, 5000, 0},
		{"overpaid", 1000, 1500, 0},
	}
	for _, tc := range cases {
		d := models.Debt{Amount: tc.amount, RepaidAmount: tc.repaid}
		if got := d.Outstanding(); got != tc.want {
			t.Errorf("%s: Outstanding() = %v, want %v", tc.name, got, tc.want)
		}
		od := models.OpenDebt{Amount: tc.amount, RepaidAmount: tc.repaid}
		if got := od.Outstanding(); got != tc.want {
			t.Errorf("%s: OpenDebt.Outstanding() = %v, want %v", tc.name, got, tc.want)
		}
	}
}
