package stages

import (
	"math/rand"

	"github.com/desertthunder/spotifyle/internal/models"
)

// LockInQuestion is the fixed prompt for LockIn stages.
const LockInQuestion = "Lock in the Track."

// GenerateLockIn builds binary-labeling stages (puzzle kind 3).
//
// Each stage samples 8 distinct tracks and labels them with a 4-slot boolean
// pattern drawn independently per slot, duplicated across both halves: choices
// at positions i and i+4 always share a correctness label. Returns
// [shared.ErrInsufficientPool] when the pool holds fewer than 8 tracks.
func GenerateLockIn(rng *rand.Rand, assets []*models.Asset, maxStages int) ([]models.StageDraft, error) {
	drafts := make([]models.StageDraft, 0, maxStages)

	for range maxStages {
		picked, err := sample(rng, assets, lockInSampleSize)
		if err != nil {
			return nil, err
		}

		pattern := make([]bool, lockInSampleSize/2)
		for i := range pattern {
			pattern[i] = rng.Intn(2) == 1
		}

		choices := make([]models.ChoiceDraft, lockInSampleSize)
		for i, asset := range picked {
			choices[i] = models.ChoiceDraft{
				AssetID: asset.ID(),
				Correct: pattern[i%len(pattern)],
			}
		}

		drafts = append(drafts, models.StageDraft{
			Kind:     models.LockIn,
			Question: LockInQuestion,
			Choices:  choices,
		})
	}

	return drafts, nil
}
