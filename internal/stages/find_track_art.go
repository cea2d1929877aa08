package stages

import (
	"math/rand"

	"github.com/desertthunder/spotifyle/internal/models"
)

// FindTrackQuestion is the fixed prompt for FindTrackArt stages.
const FindTrackQuestion = "Find the track."

// GenerateFindTrackArt builds track-identification stages (puzzle kind 2).
//
// The asset slice must already be filtered to tracks with image and preview
// observed by the publisher. Each stage independently samples choiceSize
// distinct tracks and marks one random index correct; sampling is stage-local,
// so the same track may recur (even as the correct answer) across stages of
// one game. Returns [shared.ErrInsufficientPool] when the pool is smaller than
// choiceSize.
//
// The presentation layer is expected to normalize preview references across a
// stage's choices so the correct track cannot be identified by URL; this
// generator only guarantees the correctness labeling.
func GenerateFindTrackArt(rng *rand.Rand, assets []*models.Asset, maxStages, choiceSize int) ([]models.StageDraft, error) {
	if choiceSize <= 0 {
		choiceSize = DefaultChoiceSize
	}

	drafts := make([]models.StageDraft, 0, maxStages)
	for range maxStages {
		picked, err := sample(rng, assets, choiceSize)
		if err != nil {
			return nil, err
		}

		correct := rng.Intn(choiceSize)
		choices := make([]models.ChoiceDraft, choiceSize)
		for i, asset := range picked {
			choices[i] = models.ChoiceDraft{AssetID: asset.ID(), Correct: i == correct}
		}

		drafts = append(drafts, models.StageDraft{
			Kind:     models.FindTrackArt,
			Question: FindTrackQuestion,
			Choices:  choices,
		})
	}

	return drafts, nil
}
