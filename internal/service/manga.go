package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/example/otaku-insight/internal/jikan"
)

// MangaInfo summarizes how far an anime's manga source has been adapted.
type MangaInfo struct {
	MangaTitle          string
	TotalChapters       *int
	TotalVolumes        *int
	MangaStatus         string
	ContinueFromChapter string
	Note                string
}

// MangaLookup resolves an anime's manga adaptation status through two
// remote lookups. Unlike the other services it caches nothing: every call
// re-executes both fetches.
type MangaLookup struct {
	Jikan jikan.Provider
	Log   *zap.Logger
}

func NewMangaLookup(p jikan.Provider, log *zap.Logger) *MangaLookup {
	if log == nil {
		log = zap.NewNop()
	}
	return &MangaLookup{Jikan: p, Log: log}
}

func (m *MangaLookup) GetMangaInfo(ctx context.Context, animeID int64) (MangaInfo, error) {
	if animeID <= 0 {
		return MangaInfo{}, fmt.Errorf("%w: anime id must be positive", ErrInvalidInput)
	}

	ref, found, err := m.Jikan.GetRelatedManga(ctx, animeID)
	if err != nil {
		return MangaInfo{}, fmt.Errorf("%w: no manga found for this anime: %v", ErrNotFound, err)
	}
	if !found {
		return MangaInfo{}, fmt.Errorf("%w: no manga found for this anime", ErrNotFound)
	}

	manga, found, err := m.Jikan.GetManga(ctx, ref.MalID)
	if err != nil {
		return MangaInfo{}, fmt.Errorf("%w: could not fetch manga details: %v", ErrNotFound, err)
	}
	if !found {
		return MangaInfo{}, fmt.Errorf("%w: could not fetch manga details", ErrNotFound)
	}

	info := MangaInfo{
		MangaTitle:    manga.Title,
		TotalChapters: manga.Chapters,
		TotalVolumes:  manga.Volumes,
		MangaStatus:   manga.Status,
	}
	if manga.Chapters != nil {
		info.ContinueFromChapter = fmt.Sprintf("Anime covers full manga - %d chapters", *manga.Chapters)
		info.Note = "Fully adapted - no additional manga content"
	} else {
		info.ContinueFromChapter = "Manga still ongoing - check latest chapters"
		info.Note = "Anime may not cover all available manga chapters"
	}
	return info, nil
}
