package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/desertthunder/spotifyle/internal/shared"
)

// newGeniusServer serves canned responses per path and returns a client
// pointed at it.
func newGeniusServer(t *testing.T, routes map[string]string) *GeniusService {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test_token" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		body, ok := routes[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, body)
	}))
	t.Cleanup(server.Close)

	srv, err := NewGeniusService("test_token", nil)
	if err != nil {
		t.Fatalf("failed to create service: %v", err)
	}
	srv.SetBaseURL(server.URL)
	srv.SetRateLimit(1000)
	return srv
}

func TestGeniusService(t *testing.T) {
	ctx := context.Background()

	t.Run("Requires Token", func(t *testing.T) {
		if _, err := NewGeniusService("", nil); !errors.Is(err, shared.ErrMissingCredentials) {
			t.Errorf("expected ErrMissingCredentials, got %v", err)
		}
	})

	t.Run("Throttles Requests", func(t *testing.T) {
		srv := newGeniusServer(t, map[string]string{"/search": `{}`})
		srv.SetRateLimit(50)

		start := time.Now()
		for i := 0; i < 3; i++ {
			if _, err := srv.SearchArtists(ctx, "radiohead"); err != nil {
				t.Fatalf("search failed: %v", err)
			}
		}

		// Burst of one, so the second and third requests each wait 20ms.
		if elapsed := time.Since(start); elapsed < 30*time.Millisecond {
			t.Errorf("expected requests to be throttled, 3 took %v", elapsed)
		}
	})

	t.Run("SearchArtists", func(t *testing.T) {
		t.Run("Returns Primary Artists In Order", func(t *testing.T) {
			srv := newGeniusServer(t, map[string]string{
				"/search": `{"response":{"hits":[
					{"result":{"primary_artist":{"id":10,"name":"Radiohead"}}},
					{"result":{"primary_artist":{"id":11,"name":"Radiohead Tribute"}}}
				]}}`,
			})

			hits, err := srv.SearchArtists(ctx, "radiohead")
			if err != nil {
				t.Fatalf("search failed: %v", err)
			}
			if len(hits) != 2 {
				t.Fatalf("expected 2 hits, got %d", len(hits))
			}
			if hits[0].ID != 10 || hits[0].Name != "Radiohead" {
				t.Errorf("unexpected first hit: %+v", hits[0])
			}
		})

		t.Run("Skips Hits Without A Primary Artist", func(t *testing.T) {
			srv := newGeniusServer(t, map[string]string{
				"/search": `{"response":{"hits":[
					{"result":{}},
					{"result":{"primary_artist":{"id":10,"name":"Radiohead"}}}
				]}}`,
			})

			hits, err := srv.SearchArtists(ctx, "radiohead")
			if err != nil {
				t.Fatalf("search failed: %v", err)
			}
			if len(hits) != 1 {
				t.Errorf("expected 1 hit, got %d", len(hits))
			}
		})

		t.Run("Empty Response Yields No Hits", func(t *testing.T) {
			srv := newGeniusServer(t, map[string]string{"/search": `{}`})

			hits, err := srv.SearchArtists(ctx, "nobody")
			if err != nil {
				t.Fatalf("search failed: %v", err)
			}
			if len(hits) != 0 {
				t.Errorf("expected no hits, got %d", len(hits))
			}
		})

		t.Run("Error Status Fails", func(t *testing.T) {
			srv := newGeniusServer(t, map[string]string{})

			_, err := srv.SearchArtists(ctx, "radiohead")
			if !errors.Is(err, shared.ErrProviderUnavailable) {
				t.Errorf("expected ErrProviderUnavailable, got %v", err)
			}
		})
	})

	t.Run("ArtistDetails", func(t *testing.T) {
		t.Run("Returns Name And Biography", func(t *testing.T) {
			srv := newGeniusServer(t, map[string]string{
				"/artists/10": `{"response":{"artist":{"id":10,"name":"Radiohead",
					"description":{"plain":"Radiohead formed in Abingdon in 1985."}}}}`,
			})

			detail, err := srv.ArtistDetails(ctx, 10)
			if err != nil {
				t.Fatalf("details failed: %v", err)
			}
			if detail.Name != "Radiohead" || detail.Description == "" {
				t.Errorf("unexpected detail: %+v", detail)
			}
		})

		t.Run("Missing Description Fails", func(t *testing.T) {
			srv := newGeniusServer(t, map[string]string{
				"/artists/10": `{"response":{"artist":{"id":10,"name":"Radiohead"}}}`,
			})

			_, err := srv.ArtistDetails(ctx, 10)
			if !errors.Is(err, shared.ErrSynthesisFailed) {
				t.Errorf("expected ErrSynthesisFailed, got %v", err)
			}
		})

		t.Run("Empty Response Fails", func(t *testing.T) {
			srv := newGeniusServer(t, map[string]string{"/artists/10": `{}`})

			_, err := srv.ArtistDetails(ctx, 10)
			if !errors.Is(err, shared.ErrProviderUnavailable) {
				t.Errorf("expected ErrProviderUnavailable, got %v", err)
			}
		})
	})
}
