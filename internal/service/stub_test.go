package service

import (
	"context"

	"github.com/example/otaku-insight/internal/jikan"
	"github.com/example/otaku-insight/internal/store"
)

// stubProvider is a canned jikan.Provider that counts remote calls.
type stubProvider struct {
	searchAnime    store.Anime
	searchFound    bool
	searchErr      error
	animeByID      store.Anime
	animeByIDFound bool
	animeByIDErr   error
	episodes       []store.EpisodeInput
	mangaRef       jikan.MangaRef
	mangaRefFound  bool
	mangaRefErr    error
	manga          jikan.Manga
	mangaFound     bool
	mangaErr       error

	searchCalls    int
	animeByIDCalls int
	episodesCalls  int
	mangaRefCalls  int
	mangaCalls     int
}

func (s *stubProvider) SearchAnime(_ context.Context, _ string) (store.Anime, bool, error) {
	s.searchCalls++
	return s.searchAnime, s.searchFound, s.searchErr
}

func (s *stubProvider) GetAnimeByID(_ context.Context, _ int64) (store.Anime, bool, error) {
	s.animeByIDCalls++
	return s.animeByID, s.animeByIDFound, s.animeByIDErr
}

func (s *stubProvider) FetchAllEpisodes(_ context.Context, _ int64) []store.EpisodeInput {
	s.episodesCalls++
	return s.episodes
}

func (s *stubProvider) GetRelatedManga(_ context.Context, _ int64) (jikan.MangaRef, bool, error) {
	s.mangaRefCalls++
	return s.mangaRef, s.mangaRefFound, s.mangaRefErr
}

func (s *stubProvider) GetManga(_ context.Context, _ int64) (jikan.Manga, bool, error) {
	s.mangaCalls++
	return s.manga, s.mangaFound, s.mangaErr
}

func intp(v int) *int { return &v }
