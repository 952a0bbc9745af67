package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	platformhttp "tapcard/internal/platform/http"
	"tapcard/internal/testutil"
)

// TestRoutesSetupPage verifies the setup page is reachable on a fresh install.
func TestRoutesSetupPage(t *testing.T) {
	testutil.ChdirRepoRoot(t)
	srv := testutil.NewServer(t)
	handler := platformhttp.Routes(srv)

	req := httptest.NewRequest(http.MethodGet, "/setup", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
}

// TestRoutesRedirectToSetupWithoutAccount verifies the setup gate catches app
// pages before an account exists.
func TestRoutesRedirectToSetupWithoutAccount(t *testing.T) {
	testutil.ChdirRepoRoot(t)
	srv := testutil.NewServer(t)
	handler := platformhttp.Routes(srv)

	req := httptest.NewRequest(http.MethodGet, "/onboarding", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusFound {
		t.Fatalf("expected redirect, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/setup" {
		t.Fatalf("expected redirect to /setup, got %q", loc)
	}
}
