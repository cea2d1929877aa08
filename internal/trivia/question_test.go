package trivia

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/desertthunder/spotifyle/internal/shared"
)

type stubDetailer struct {
	detail *ArtistDetail
	err    error
}

func (s *stubDetailer) ArtistDetails(ctx context.Context, id int64) (*ArtistDetail, error) {
	return s.detail, s.err
}

func newTestSynthesizer(detail *ArtistDetail, seed int64) *Synthesizer {
	searcher := &stubSearcher{hits: []ArtistHit{{Name: detail.Name, ID: 1}}}
	details := &stubDetailer{detail: detail}
	return NewSynthesizer(NewResolver(searcher), details, rand.New(rand.NewSource(seed)))
}

func TestCreateQuestion(t *testing.T) {
	ctx := context.Background()

	t.Run("answer never appears in question", func(t *testing.T) {
		detail := &ArtistDetail{
			Name: "Nirvana",
			Description: "Nirvana was an American rock band.\n\n" +
				"Short\n\n" +
				"The band Nirvana formed in Aberdeen, Washington.",
		}
		synth := newTestSynthesizer(detail, 42)

		question, answer, err := synth.CreateQuestion(ctx, "Nirvana")
		if err != nil {
			t.Fatalf("failed to create question: %v", err)
		}

		if answer != "Nirvana" {
			t.Errorf("expected answer Nirvana, got %s", answer)
		}
		if strings.Contains(strings.ToLower(question), "nirvana") {
			t.Errorf("answer leaked into question: %q", question)
		}
		if !strings.Contains(question, "_______") {
			t.Errorf("expected redaction underscores in question: %q", question)
		}
	})

	t.Run("deterministic for a fixed seed", func(t *testing.T) {
		detail := &ArtistDetail{
			Name: "Portishead",
			Description: "Portishead are an English band. They formed in Bristol.\n\n" +
				"Portishead released Dummy in 1994. The record won awards.\n\n" +
				"The group Portishead rarely tours. Critics adore them.",
		}

		first, _, err := newTestSynthesizer(detail, 7).CreateQuestion(ctx, "Portishead")
		if err != nil {
			t.Fatalf("failed to create question: %v", err)
		}
		second, _, err := newTestSynthesizer(detail, 7).CreateQuestion(ctx, "Portishead")
		if err != nil {
			t.Fatalf("failed to create question: %v", err)
		}

		if first != second {
			t.Errorf("expected identical questions for the same seed, got %q and %q", first, second)
		}
	})

	t.Run("no usable sentences fails", func(t *testing.T) {
		detail := &ArtistDetail{
			Name:        "Silence",
			Description: "NoSpacesHere\n\nno period here either",
		}
		synth := newTestSynthesizer(detail, 1)

		_, _, err := synth.CreateQuestion(ctx, "Silence")
		if !errors.Is(err, shared.ErrSynthesisFailed) {
			t.Errorf("expected ErrSynthesisFailed, got %v", err)
		}
	})

	t.Run("sentences still carrying the name are dropped", func(t *testing.T) {
		// Every significant word of "The The" is a stop word, so redaction
		// leaves the name intact and the leak guard rejects every sentence.
		detail := &ArtistDetail{
			Name:        "The The",
			Description: "The The are an English band. They formed in London.",
		}
		synth := newTestSynthesizer(detail, 1)

		_, _, err := synth.CreateQuestion(ctx, "The The")
		if !errors.Is(err, shared.ErrSynthesisFailed) {
			t.Errorf("expected ErrSynthesisFailed, got %v", err)
		}
	})

	t.Run("resolution failure propagates", func(t *testing.T) {
		searcher := &stubSearcher{}
		details := &stubDetailer{}
		synth := NewSynthesizer(NewResolver(searcher), details, rand.New(rand.NewSource(1)))

		_, _, err := synth.CreateQuestion(ctx, "Unknown")
		if !errors.Is(err, shared.ErrResolutionFailed) {
			t.Errorf("expected ErrResolutionFailed, got %v", err)
		}
	})
}
