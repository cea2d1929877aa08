package models

import (
	"fmt"
	"time"
)

// AssetKind enumerates the Spotify entity types an [Asset] can represent.
type AssetKind string

const (
	AssetArtist  AssetKind = "artist"
	AssetAlbum   AssetKind = "album"
	AssetTrack   AssetKind = "track"
	AssetShow    AssetKind = "show"
	AssetEpisode AssetKind = "episode"
)

// Valid reports whether k is one of the known asset kinds.
func (k AssetKind) Valid() bool {
	switch k {
	case AssetArtist, AssetAlbum, AssetTrack, AssetShow, AssetEpisode:
		return true
	}
	return false
}

// Asset is a Spotify-sourced music entity observed by one or more users.
//
// Assets are keyed by their Spotify URI and immutable once harvested; the
// observer relation records which users' listening data surfaced them.
type Asset struct {
	id        string
	sequence  int
	uri       string
	kind      AssetKind
	name      string
	image     *string
	preview   *string
	createdAt time.Time
	updatedAt time.Time
	deletedAt *time.Time
}

// NewAsset creates an Asset from harvested Spotify data.
// Image and preview may be empty for kinds that lack them.
func NewAsset(kind AssetKind, uri, name string, image, preview *string) *Asset {
	now := time.Now()
	return &Asset{
		uri:       uri,
		kind:      kind,
		name:      name,
		image:     image,
		preview:   preview,
		createdAt: now,
		updatedAt: now,
	}
}

func (a *Asset) ID() string            { return a.id }
func (a *Asset) Sequence() int         { return a.sequence }
func (a *Asset) URI() string           { return a.uri }
func (a *Asset) Kind() AssetKind       { return a.kind }
func (a *Asset) Name() string          { return a.name }
func (a *Asset) Image() *string        { return a.image }
func (a *Asset) Preview() *string      { return a.preview }
func (a *Asset) CreatedAt() time.Time  { return a.createdAt }
func (a *Asset) UpdatedAt() time.Time  { return a.updatedAt }
func (a *Asset) DeletedAt() *time.Time { return a.deletedAt }

func (a *Asset) SetID(id string)           { a.id = id }
func (a *Asset) SetSequence(seq int)       { a.sequence = seq }
func (a *Asset) SetCreatedAt(t time.Time)  { a.createdAt = t }
func (a *Asset) SetUpdatedAt(t time.Time)  { a.updatedAt = t }
func (a *Asset) SetDeletedAt(t *time.Time) { a.deletedAt = t }

// HasImage reports whether the asset carries an image reference.
func (a *Asset) HasImage() bool { return a.image != nil && *a.image != "" }

// HasPreview reports whether the asset carries an audio preview reference.
func (a *Asset) HasPreview() bool { return a.preview != nil && *a.preview != "" }

// Validate checks required fields and the kind enum.
func (a *Asset) Validate() error {
	if a.uri == "" {
		return fmt.Errorf("asset uri is required")
	}
	if a.name == "" {
		return fmt.Errorf("asset name is required")
	}
	if !a.kind.Valid() {
		return fmt.Errorf("invalid asset kind: %s", a.kind)
	}
	return nil
}
