// package testing contains shared testing utilities
package testing

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"net/http"
	"os"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/desertthunder/spotifyle/internal/shared"
	"github.com/desertthunder/spotifyle/internal/trivia"
)

// MockSearcher is a test double for [trivia.ArtistSearcher] returning canned hits.
type MockSearcher struct {
	Hits map[string][]trivia.ArtistHit
	Err  error
}

func (m *MockSearcher) SearchArtists(ctx context.Context, query string) ([]trivia.ArtistHit, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Hits[query], nil
}

// MockDetailer is a test double for [trivia.ArtistDetailer] returning canned details.
type MockDetailer struct {
	Details map[int64]*trivia.ArtistDetail
	Err     error
}

func (m *MockDetailer) ArtistDetails(ctx context.Context, id int64) (*trivia.ArtistDetail, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	detail, ok := m.Details[id]
	if !ok {
		return nil, errors.New("unknown artist id")
	}
	return detail, nil
}

// StubSynthesizer is a test double for [trivia.QuestionSynthesizer] that
// produces a deterministic question for every answer, or fails for names
// listed in Failures.
type StubSynthesizer struct {
	Failures map[string]error
	Calls    []string
}

func (s *StubSynthesizer) CreateQuestion(ctx context.Context, answer string) (string, string, error) {
	s.Calls = append(s.Calls, answer)
	if err, ok := s.Failures[answer]; ok {
		return "", "", err
	}
	return "They formed in ____.", answer, nil
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FWriter is an io.Writer that fails every write.
type FWriter struct{}

func (FWriter) Write([]byte) (int, error) {
	return 0, errors.New("write failed")
}

// LimitedWriter allows a fixed number of writes before failing.
type LimitedWriter struct {
	remaining int
	w         io.Writer
}

func NewLimitedWriter(allowed int, w io.Writer) LimitedWriter {
	return LimitedWriter{remaining: allowed, w: w}
}

func (l *LimitedWriter) Write(p []byte) (int, error) {
	if l.remaining <= 0 {
		return 0, errors.New("write limit reached")
	}
	l.remaining--
	return l.w.Write(p)
}

// MustOpenDB opens an in-memory SQLite database with migrations applied,
// registering cleanup on the test.
func MustOpenDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}
	return db
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
