package stages

import (
	"context"
	"errors"
	"math/rand"

	"github.com/desertthunder/spotifyle/internal/models"
	"github.com/desertthunder/spotifyle/internal/shared"
	"github.com/desertthunder/spotifyle/internal/trivia"
)

// skippable reports whether a synthesis attempt failed for reasons that only
// disqualify this candidate artist rather than the whole generator run.
func skippable(err error) bool {
	return errors.Is(err, shared.ErrResolutionFailed) ||
		errors.Is(err, shared.ErrSynthesisFailed) ||
		errors.Is(err, shared.ErrProviderUnavailable)
}

// GenerateArtistTrivia builds fill-in-the-blank artist stages (puzzle kind 1).
//
// The asset slice must already be filtered to artists with images observed by
// the publisher. Assets are shuffled, then synthesized one at a time until the
// accepted stage count exceeds maxStages; because the bound is strict, up to
// maxStages+1 stages are produced. This mirrors the original generation loop
// and downstream consumers depend on it, so it is kept as-is.
//
// Every artist that never became a correct answer forms the wrong-answer pool;
// each stage draws 3 distinct wrong choices from it, for 4 choices per stage.
// Returns [shared.ErrInsufficientPool] when fewer than 3 wrong answers remain.
func GenerateArtistTrivia(ctx context.Context, rng *rand.Rand, assets []*models.Asset, maxStages int, synth trivia.QuestionSynthesizer) ([]models.StageDraft, error) {
	pool := make([]*models.Asset, len(assets))
	copy(pool, assets)
	shuffle(rng, pool)

	var drafts []models.StageDraft
	correct := make(map[string]struct{})

	for _, asset := range pool {
		if len(drafts) > maxStages {
			break
		}

		question, _, err := synth.CreateQuestion(ctx, asset.Name())
		if err != nil {
			if skippable(err) {
				continue
			}
			return nil, err
		}

		drafts = append(drafts, models.StageDraft{
			Kind:     models.ArtistTrivia,
			Question: question,
			Choices:  []models.ChoiceDraft{{AssetID: asset.ID(), Correct: true}},
		})
		correct[asset.ID()] = struct{}{}
	}

	var wrongPool []*models.Asset
	for _, asset := range pool {
		if _, ok := correct[asset.ID()]; !ok {
			wrongPool = append(wrongPool, asset)
		}
	}

	for i := range drafts {
		wrong, err := sample(rng, wrongPool, 3)
		if err != nil {
			return nil, err
		}
		for _, asset := range wrong {
			drafts[i].Choices = append(drafts[i].Choices, models.ChoiceDraft{AssetID: asset.ID()})
		}
	}

	return drafts, nil
}
