// package services defines HTTP API clients for external providers
//
// Spotify (listening history), Genius (artist biographies)
package services

// TimeRanges are the Spotify top-item windows harvested for each user.
var TimeRanges = []string{"short_term", "medium_term", "long_term"}

// Image represents an image resource returned by Spotify.
type Image struct {
	URL    string `json:"url"`
	Height int    `json:"height"`
	Width  int    `json:"width"`
}

// first returns the URL of the first image, or nil when none exist.
func firstImage(images []Image) *string {
	if len(images) == 0 || images[0].URL == "" {
		return nil
	}
	url := images[0].URL
	return &url
}
