package health_test

import (
	"testing"

	"github.com/isah4/Record-system-full-stack-web-app-sub000/internal/health"
)

func TestOverall(t *testing.T) {
	cases := []struct {
		name  string
		db    string
		cache string
		want  string
	}{
		{"all up", health.StatusHealthy, health.StatusHealthy, health.StatusHealthy},
		{"cache disabled", health.StatusHealthy, health.StatusDisabled, health.StatusHealthy},
		{"cache down", health.StatusHealthy, health.StatusUnhealthy, health.StatusDegraded},
		{"database down", health.StatusUnhealthy, health.StatusHealthy, health.StatusUnhealthy},
		{"everything down", health.StatusUnhealthy, health.StatusUnhealthy, health.StatusUnhealthy},
	}
	for _, tc := range cases {
		got := health.Overall(
			health.ComponentHealth{Status: tc.db},
			health.ComponentHealth{Status: tc.cache},
		)
		if got != tc.want {
			t.Errorf("%s: Overall() = %q, want %q", tc.name, got, tc.want)
		}
	}
}
