package cmsapi

import (
	"context"
	"net/http"
	"testing"
)

func TestReadinessChecker(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		wantStatus string
	}{
		{"API отвечает", http.StatusOK, "ok"},
		{"API неисправен", http.StatusServiceUnavailable, "fail"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotPath, gotAuth string
			server := setupMockAPI(t, func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				gotAuth = r.Header.Get("Authorization")
				writeJSON(w, tt.status, map[string]string{"status": "UP"})
			})
			checker := NewReadinessChecker(newTestClient(t, server.URL, nil), "/actuator/health")

			ctx := WithToken(context.Background(), "abc123")
			status, msg := checker.CheckReady(ctx)
			if status != tt.wantStatus {
				t.Errorf("status = %q (%s), ожидался %q", status, msg, tt.wantStatus)
			}
			if gotPath != "/actuator/health" {
				t.Errorf("путь = %q", gotPath)
			}
			if gotAuth != "" {
				t.Errorf("health endpoint получил токен %q", gotAuth)
			}
			if checker.Name() != "cms-api" {
				t.Errorf("Name() = %q", checker.Name())
			}
		})
	}
}
