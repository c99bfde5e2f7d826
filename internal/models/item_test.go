package models_test

import (
	"testing"

	"github.com/isah4/Record-system-full-stack-web-app-sub000/internal/models"
)

func TestItemUnitMargin(t *testing.T) {
	wholesale := func(v float64) *float64 { return &v }

	cases := []struct {
		name      string
		price     float64
		wholesale *float64
		want      float64
	}{
		{"normal markup", 1200, wholesale(800), 400},
		{"sold at cost", 500, wholesale(500), 0},
		{"no wholesale price recorded", 1200, nil, 0},
	}
	for _, tc := range cases {
		i := models.Item{Price: tc.price, WholesalePrice: tc.wholesale}
		if got := i.UnitMargin(); got != tc.want {
			t.Errorf("%s: UnitMargin() = %v, want %v", tc.name, got, tc.want)
		}
	}
}
