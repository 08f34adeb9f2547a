package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func identityHarness(t *testing.T) (http.Handler, *int64) {
	t.Helper()
	var seen int64
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = UserIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	return Identity(nil)(next), &seen
}

func TestIdentitySeedsContext(t *testing.T) {
	handler, seen := identityHarness(t)

	req := httptest.NewRequest(http.MethodGet, "/items", nil)
	req.Header.Set(SharerHeader, "42")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if *seen != 42 {
		t.Fatalf("expected user id 42 got %d", *seen)
	}
}

func TestIdentityMissingHeader(t *testing.T) {
	handler, _ := identityHarness(t)

	req := httptest.NewRequest(http.MethodGet, "/items", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestIdentityRejectsGarbage(t *testing.T) {
	for _, value := range []string{"abc", "-5", "0", "1.5"} {
		handler, _ := identityHarness(t)

		req := httptest.NewRequest(http.MethodGet, "/items", nil)
		req.Header.Set(SharerHeader, value)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%q: expected 400 got %d", value, rec.Code)
		}
	}
}

func TestUserIDFromContextDefaultsToZero(t *testing.T) {
	if got := UserIDFromContext(nil); got != 0 {
		t.Fatalf("expected 0 got %d", got)
	}
}
