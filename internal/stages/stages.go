// Package stages implements the three quiz stage generators.
//
// Each generator is a pure function over a snapshot of the publisher's
// eligible assets: it samples and labels choices in memory and returns
// [models.StageDraft] values for the game engine to persist. All randomness
// flows through an injected [rand.Rand] so generation is reproducible under a
// fixed seed.
package stages

import (
	"fmt"
	"math/rand"

	"github.com/desertthunder/spotifyle/internal/models"
	"github.com/desertthunder/spotifyle/internal/shared"
)

// DefaultChoiceSize is the number of choices in a FindTrackArt stage.
const DefaultChoiceSize = 10

// lockInSampleSize is the number of choices in a LockIn stage; the 4-slot
// correctness pattern is duplicated across both halves.
const lockInSampleSize = 8

// shuffle permutes assets in place.
func shuffle(rng *rand.Rand, assets []*models.Asset) {
	rng.Shuffle(len(assets), func(i, j int) {
		assets[i], assets[j] = assets[j], assets[i]
	})
}

// sample draws k distinct assets without replacement.
func sample(rng *rand.Rand, pool []*models.Asset, k int) ([]*models.Asset, error) {
	if k > len(pool) {
		return nil, fmt.Errorf("%w: need %d assets, pool has %d", shared.ErrInsufficientPool, k, len(pool))
	}

	picked := make([]*models.Asset, 0, k)
	for _, idx := range rng.Perm(len(pool))[:k] {
		picked = append(picked, pool[idx])
	}
	return picked, nil
}
