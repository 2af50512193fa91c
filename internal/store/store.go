package store

import (
	"context"
)

// Anime is the cached catalog representation of a title, keyed by its MAL id.
// Rows are write-once: once cached, an anime is never re-fetched or mutated.
type Anime struct {
	MalID    int64
	Title    string
	Episodes *int
	Score    *float64
	Status   string
	ImageURL string
	Year     *int
	Synopsis string
}

// Episode is one rated episode of a cached anime. The rating is the raw
// remote score; normalization happens at analysis time only.
type Episode struct {
	ID      string // locally generated surrogate id
	AnimeID int64  // MAL id of the owning anime
	Number  int
	Title   string
	Rating  float64
}

// EpisodeInput carries remote-sourced episode data for batch writes and
// for analysis before anything is persisted.
type EpisodeInput struct {
	Number int
	Title  string
	Rating float64
}

// Store defines all persistence operations for the catalog cache.
type Store interface {
	// Anime reads
	GetAnime(ctx context.Context, malID int64) (Anime, bool, error)
	// FindAnimeByTitle matches stored titles by case-insensitive substring.
	FindAnimeByTitle(ctx context.Context, title string) (Anime, bool, error)

	// Anime writes. Saving an already-cached id is a no-op, never a conflict.
	SaveAnime(ctx context.Context, a Anime) error

	// Episode reads, ordered by episode number ascending.
	ListEpisodesByAnime(ctx context.Context, malID int64) ([]Episode, error)

	// SaveEpisodes persists one anime's full episode batch.
	SaveEpisodes(ctx context.Context, malID int64, episodes []EpisodeInput) error
}
