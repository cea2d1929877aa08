package tasks

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/desertthunder/spotifyle/internal/shared"
)

// codeRetryLimit bounds how many fresh codes a reservation attempts before
// giving up. Collisions on 32 hex characters are effectively impossible, so
// hitting the limit indicates a broken database rather than bad luck.
const codeRetryLimit = 5

var colorNames = []string{
	"Amber", "Aquamarine", "Burgundy", "Cerulean", "Charcoal", "Chartreuse",
	"Cobalt", "Coral", "Crimson", "Emerald", "Fuchsia", "Indigo", "Ivory",
	"Lavender", "Magenta", "Maroon", "Mauve", "Midnight Blue", "Ochre",
	"Olive", "Periwinkle", "Saffron", "Scarlet", "Sea Green", "Sienna",
	"Slate Gray", "Teal", "Turquoise", "Ultramarine", "Vermilion", "Violet",
}

var musicSubgenres = []string{
	"Acid Jazz", "Afrobeat", "Ambient", "Bebop", "Bluegrass", "Boogaloo",
	"Bossa Nova", "Chillwave", "Darkwave", "Dream Pop", "Drum and Bass",
	"Dub", "Garage Rock", "Grime", "Hard Bop", "Honky Tonk", "House",
	"Jungle", "Lo-Fi", "Math Rock", "New Wave", "Post Punk", "Psychobilly",
	"Ragtime", "Shoegaze", "Ska", "Surf Rock", "Synthpop", "Trip Hop",
	"Zydeco",
}

// composeGameName builds a display name from a random color, a random music
// subgenre and the first 8 characters of the game code, hyphenated and
// uppercased (e.g. TEAL-ACID-JAZZ-9F3A01BC).
func composeGameName(rng *rand.Rand, gameCode string) string {
	color := colorNames[rng.Intn(len(colorNames))]
	sub := musicSubgenres[rng.Intn(len(musicSubgenres))]
	name := fmt.Sprintf("%s %s %s", color, sub, gameCode[:8])
	return strings.ToUpper(strings.ReplaceAll(name, " ", "-"))
}

// codeChecker is the slice of the game store code reservation needs.
type codeChecker interface {
	CodeExists(code string) (bool, error)
}

// uniqueGameCode generates a game code that is not already reserved,
// regenerating on collision.
func uniqueGameCode(games codeChecker) (string, error) {
	for range codeRetryLimit {
		code := shared.GenerateGameCode()
		exists, err := games.CodeExists(code)
		if err != nil {
			return "", fmt.Errorf("failed to check game code: %w", err)
		}
		if !exists {
			return code, nil
		}
	}
	return "", fmt.Errorf("%w: could not reserve a unique code", shared.ErrDuplicateGameCode)
}
