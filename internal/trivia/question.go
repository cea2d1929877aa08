package trivia

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"github.com/desertthunder/spotifyle/internal/shared"
)

// QuestionSynthesizer produces a fill-in-the-blank question for an answer name.
// Implemented by [Synthesizer]; stage generators depend on this interface so
// tests can stub the network-backed pipeline.
type QuestionSynthesizer interface {
	// CreateQuestion returns the redacted question text and the resolved
	// display name for answer.
	CreateQuestion(ctx context.Context, answer string) (string, string, error)
}

// Synthesizer builds trivia questions from artist biographies.
//
// The synthesized question is one biography sentence with every token that
// contains a significant word of the artist's name replaced by underscores,
// guaranteeing the answer string never leaks into the question.
type Synthesizer struct {
	resolver *Resolver
	details  ArtistDetailer
	rng      *rand.Rand
}

// NewSynthesizer creates a Synthesizer. The rng drives sentence selection and
// must not be shared across goroutines.
func NewSynthesizer(resolver *Resolver, details ArtistDetailer, rng *rand.Rand) *Synthesizer {
	return &Synthesizer{resolver: resolver, details: details, rng: rng}
}

// CreateQuestion implements [QuestionSynthesizer].
//
// Fails with [shared.ErrResolutionFailed] when the answer cannot be
// disambiguated and [shared.ErrSynthesisFailed] when no usable sentence
// survives redaction.
func (s *Synthesizer) CreateQuestion(ctx context.Context, answer string) (string, string, error) {
	artistID, err := s.resolver.ResolveArtistID(ctx, answer)
	if err != nil {
		return "", "", err
	}

	detail, err := s.details.ArtistDetails(ctx, artistID)
	if err != nil {
		return "", "", err
	}

	sentences := splitSentences(detail.Description)
	artistName := cleanName(detail.Name)
	searchWords := searchName(artistName)

	var redacted []string
	for _, sentence := range sentences {
		question := redactSentence(sentence, searchWords)
		// Leak guard: drop any sentence that still carries the full name.
		if strings.Contains(question, artistName) {
			continue
		}
		redacted = append(redacted, question)
	}

	if len(redacted) == 0 {
		return "", "", fmt.Errorf("%w: no usable sentences for %q", shared.ErrSynthesisFailed, answer)
	}

	question := redacted[s.rng.Intn(len(redacted))]
	return question, artistName, nil
}

// splitSentences splits a biography into paragraph-level sentences.
//
// Paragraphs are double-newline separated; internal newlines are stripped and
// only paragraphs containing at least one space and one period survive.
func splitSentences(description string) []string {
	var sentences []string
	for _, paragraph := range strings.Split(description, "\n\n") {
		text := strings.ReplaceAll(paragraph, "\n", "")
		if text == "" {
			continue
		}
		if !strings.Contains(text, " ") || !strings.Contains(text, ".") {
			continue
		}
		sentences = append(sentences, text)
	}
	return sentences
}

// cleanName strips zero-width and newline characters from a display name.
func cleanName(name string) string {
	name = strings.ReplaceAll(name, "​", "")
	return strings.ReplaceAll(name, "\n", "")
}

// searchName returns the significant, punctuation-stripped words of name in
// original casing.
func searchName(name string) []string {
	var words []string
	for word := range FilterStopWords(name) {
		words = append(words, word)
	}
	return words
}

// redactSentence replaces each token containing a search word with an
// equal-length underscore run. The first matching search word wins per token;
// matched tokens are lowercased as a side effect of the replacement.
func redactSentence(sentence string, searchWords []string) string {
	tokens := strings.Fields(sentence)
	out := make([]string, 0, len(tokens))

	for _, token := range tokens {
		lowered := strings.ToLower(token)
		replaced := token
		for _, word := range searchWords {
			target := strings.ToLower(word)
			if strings.Contains(lowered, target) {
				replaced = strings.ReplaceAll(lowered, target, strings.Repeat("_", len(word)))
				break
			}
		}
		out = append(out, replaced)
	}

	return strings.Join(out, " ")
}
