package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/oauth2"
)

func newOAuthHandler() *OAuthHandler {
	config := &oauth2.Config{
		ClientID:    "client-id",
		RedirectURL: "http://localhost:8080/callback",
		Endpoint:    oauth2.Endpoint{AuthURL: "https://auth.example", TokenURL: "https://token.example"},
	}
	return NewOAuthHandler(config, "expected-state")
}

func TestOAuthHandler(t *testing.T) {
	t.Run("Invalid State Is Rejected", func(t *testing.T) {
		handler := newOAuthHandler()

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/callback?state=forged&code=abc", nil))
		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}

		result := <-handler.Result()
		if result.Error() == nil {
			t.Error("expected a state validation error on the result channel")
		}
	})

	t.Run("Provider Denial Is Reported", func(t *testing.T) {
		handler := newOAuthHandler()

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/callback?state=expected-state&error=access_denied&error_description=nope", nil))
		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}

		result := <-handler.Result()
		if result.Error() == nil {
			t.Error("expected an authorization error on the result channel")
		}
	})

	t.Run("Second Callback Is Rejected", func(t *testing.T) {
		handler := newOAuthHandler()

		first := httptest.NewRecorder()
		handler.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/callback?state=forged", nil))

		second := httptest.NewRecorder()
		handler.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/callback?state=expected-state&code=abc", nil))
		if second.Code != http.StatusBadRequest {
			t.Errorf("expected 400 on a repeated callback, got %d", second.Code)
		}
	})
}
