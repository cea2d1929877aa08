package services

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/desertthunder/spotifyle/internal/shared"
	internaltest "github.com/desertthunder/spotifyle/internal/testing"
	"golang.org/x/oauth2"
)

func TestSpotifyService(t *testing.T) {
	t.Run("NewSpotifyService", func(t *testing.T) {
		t.Run("With Valid Credentials", func(t *testing.T) {
			credentials := map[string]string{
				"client_id":     "test_client_id",
				"client_secret": "test_client_secret",
				"redirect_uri":  "http://localhost:9999/callback",
			}

			srv, err := NewSpotifyService(credentials)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if srv == nil {
				t.Fatal("expected service to be created")
			}
			if srv.Name() != "Spotify" {
				t.Errorf("expected service name 'Spotify', got %s", srv.Name())
			}
			if srv.config.RedirectURL != "http://localhost:9999/callback" {
				t.Errorf("expected custom redirect URI, got %s", srv.config.RedirectURL)
			}
		})

		t.Run("Missing Client ID", func(t *testing.T) {
			_, err := NewSpotifyService(map[string]string{"client_secret": "test_client_secret"})
			if err == nil {
				t.Error("expected error for missing client_id")
			}
		})

		t.Run("Missing Client Secret", func(t *testing.T) {
			_, err := NewSpotifyService(map[string]string{"client_id": "test_client_id"})
			if err == nil {
				t.Error("expected error for missing client_secret")
			}
		})

		t.Run("Default Redirect URI", func(t *testing.T) {
			srv, err := NewSpotifyService(map[string]string{
				"client_id":     "test_client_id",
				"client_secret": "test_client_secret",
			})
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if srv.config.RedirectURL != "http://localhost:8080/callback" {
				t.Errorf("expected default redirect URI, got %s", srv.config.RedirectURL)
			}
		})
	})

	t.Run("Get AuthURL", func(t *testing.T) {
		srv, err := NewSpotifyService(map[string]string{
			"client_id":     "test_client_id",
			"client_secret": "test_client_secret",
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		authURL := srv.GetAuthURL("test_state")
		if !strings.Contains(authURL, "state=test_state") {
			t.Errorf("expected state in auth URL, got %s", authURL)
		}
		if !strings.Contains(authURL, "client_id=test_client_id") {
			t.Errorf("expected client_id in auth URL, got %s", authURL)
		}
		if !strings.Contains(authURL, "user-top-read") {
			t.Errorf("expected top-read scope in auth URL, got %s", authURL)
		}
	})

	t.Run("Authenticate", func(t *testing.T) {
		t.Run("With Access Token", func(t *testing.T) {
			srv := mustSpotify(t)
			if err := srv.Authenticate(context.Background(), map[string]string{"access_token": "tok"}); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if srv.token == nil || srv.token.AccessToken != "tok" {
				t.Error("expected token to be stored")
			}
		})

		t.Run("Missing Credentials", func(t *testing.T) {
			srv := mustSpotify(t)
			err := srv.Authenticate(context.Background(), map[string]string{})
			if !errors.Is(err, shared.ErrMissingCredentials) {
				t.Errorf("expected ErrMissingCredentials, got %v", err)
			}
		})
	})

	t.Run("Top Items", func(t *testing.T) {
		t.Run("Requires Authentication", func(t *testing.T) {
			srv := mustSpotify(t)
			_, err := srv.TopTracks(context.Background(), "short_term", 50, 0)
			if !errors.Is(err, shared.ErrNotAuthenticated) {
				t.Errorf("expected ErrNotAuthenticated, got %v", err)
			}
		})

		t.Run("Parses Top Tracks", func(t *testing.T) {
			body := `{"items":[{"id":"t1","name":"Karma Police","uri":"spotify:track:t1",
				"preview_url":"https://p.example/t1.mp3",
				"album":{"images":[{"url":"https://i.example/t1.jpg"}]}}],"total":1}`
			srv := mockedSpotify(t, 200, body)

			tracks, err := srv.TopTracks(context.Background(), "short_term", 50, 0)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if len(tracks.Items) != 1 || tracks.Items[0].Name != "Karma Police" {
				t.Errorf("unexpected items: %+v", tracks.Items)
			}

			asset := tracks.Items[0].Asset()
			if asset.URI() != "spotify:track:t1" || !asset.HasImage() || !asset.HasPreview() {
				t.Errorf("unexpected asset mapping: %+v", asset)
			}
		})

		t.Run("Parses Top Artists", func(t *testing.T) {
			body := `{"items":[{"id":"a1","name":"Radiohead","uri":"spotify:artist:a1",
				"images":[{"url":"https://i.example/a1.jpg"}]}],"total":1}`
			srv := mockedSpotify(t, 200, body)

			artists, err := srv.TopArtists(context.Background(), "short_term", 50, 0)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if len(artists.Items) != 1 || artists.Items[0].Name != "Radiohead" {
				t.Errorf("unexpected items: %+v", artists.Items)
			}

			asset := artists.Items[0].Asset()
			if !asset.HasImage() || asset.HasPreview() {
				t.Errorf("expected image without preview, got %+v", asset)
			}
		})

		t.Run("Error Status Fails", func(t *testing.T) {
			srv := mockedSpotify(t, 429, `{"error":{"status":429}}`)
			_, err := srv.TopTracks(context.Background(), "short_term", 50, 0)
			if !errors.Is(err, shared.ErrAPIRequest) {
				t.Errorf("expected ErrAPIRequest, got %v", err)
			}
		})
	})
}

func mustSpotify(t *testing.T) *SpotifyService {
	t.Helper()
	srv, err := NewSpotifyService(map[string]string{
		"client_id":     "test_client_id",
		"client_secret": "test_client_secret",
	})
	if err != nil {
		t.Fatalf("failed to create service: %v", err)
	}
	return srv
}

// mockedSpotify returns an authenticated service whose transport replays the
// given response.
func mockedSpotify(t *testing.T, status int, body string) *SpotifyService {
	t.Helper()
	srv := mustSpotify(t)
	srv.token = &oauth2.Token{AccessToken: "tok"}
	srv.httpClient = &http.Client{
		Transport: internaltest.NewMockRoundTripper(&http.Response{
			StatusCode: status,
			Body:       io.NopCloser(strings.NewReader(body)),
			Header:     http.Header{"Content-Type": []string{"application/json"}},
		}, nil),
	}
	return srv
}
