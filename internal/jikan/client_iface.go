package jikan

import (
	"context"

	"github.com/example/otaku-insight/internal/store"
)

// Provider is the port for fetching catalog data from the Jikan/MAL API.
type Provider interface {
	SearchAnime(ctx context.Context, name string) (store.Anime, bool, error)
	GetAnimeByID(ctx context.Context, malID int64) (store.Anime, bool, error)
	FetchAllEpisodes(ctx context.Context, malID int64) []store.EpisodeInput
	GetRelatedManga(ctx context.Context, malID int64) (MangaRef, bool, error)
	GetManga(ctx context.Context, mangaID int64) (Manga, bool, error)
}
