package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/example/otaku-insight/internal/platform/api"
	"github.com/example/otaku-insight/internal/platform/httpserver"
	"github.com/example/otaku-insight/internal/service"
	"github.com/example/otaku-insight/internal/store"
)

// Ports consumed by the HTTP layer; satisfied by the service package.
type AnimeSearcher interface {
	Search(ctx context.Context, name string) (store.Anime, error)
}

type EpisodeAnalyzer interface {
	Analyze(ctx context.Context, malID int64) (service.Analysis, error)
}

type MangaInfoFetcher interface {
	GetMangaInfo(ctx context.Context, animeID int64) (service.MangaInfo, error)
}

type animeResponse struct {
	MalID    int64    `json:"mal_id"`
	Title    string   `json:"title"`
	Episodes *int     `json:"episodes,omitempty"`
	Score    *float64 `json:"score,omitempty"`
	Status   string   `json:"status,omitempty"`
	ImageURL string   `json:"image_url,omitempty"`
	Year     *int     `json:"year,omitempty"`
	Synopsis string   `json:"synopsis,omitempty"`
}

type ratedEpisodeResponse struct {
	EpisodeNumber int     `json:"episode_number"`
	Title         string  `json:"title,omitempty"`
	Rating        float64 `json:"rating"`
}

type analysisResponse struct {
	AnimeName      string               `json:"anime_name"`
	TotalEpisodes  int                  `json:"total_episodes"`
	AverageRating  float64              `json:"average_rating"`
	Highest        ratedEpisodeResponse `json:"highest_rated_episode"`
	Lowest         ratedEpisodeResponse `json:"lowest_rated_episode"`
	EpisodesAbove9 int                  `json:"episodes_above_9"`
	EpisodesAbove8 int                  `json:"episodes_above_8"`
}

type mangaInfoResponse struct {
	MangaTitle          string `json:"manga_title"`
	TotalChapters       *int   `json:"total_manga_chapters,omitempty"`
	TotalVolumes        *int   `json:"total_manga_volumes,omitempty"`
	MangaStatus         string `json:"manga_status,omitempty"`
	ContinueFromChapter string `json:"continue_from_chapter"`
	Note                string `json:"note"`
}

func toAnimeResponse(a store.Anime) animeResponse {
	return animeResponse{
		MalID:    a.MalID,
		Title:    a.Title,
		Episodes: a.Episodes,
		Score:    a.Score,
		Status:   a.Status,
		ImageURL: a.ImageURL,
		Year:     a.Year,
		Synopsis: a.Synopsis,
	}
}

func toAnalysisResponse(a service.Analysis) analysisResponse {
	return analysisResponse{
		AnimeName:      a.AnimeName,
		TotalEpisodes:  a.TotalEpisodes,
		AverageRating:  a.AverageRating,
		Highest:        ratedEpisodeResponse{EpisodeNumber: a.Highest.Number, Title: a.Highest.Title, Rating: a.Highest.Rating},
		Lowest:         ratedEpisodeResponse{EpisodeNumber: a.Lowest.Number, Title: a.Lowest.Title, Rating: a.Lowest.Rating},
		EpisodesAbove9: a.EpisodesAbove9,
		EpisodesAbove8: a.EpisodesAbove8,
	}
}

func writeServiceError(w http.ResponseWriter, rid string, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		api.BadRequest(w, "VALIDATION", err.Error(), rid, nil)
	case errors.Is(err, service.ErrNotFound):
		api.NotFound(w, "NOT_FOUND", err.Error(), rid)
	default:
		api.Internal(w, rid)
	}
}

// animeIDParam parses the {anime_id} URL parameter.
func animeIDParam(r *http.Request) (int64, bool) {
	raw := strings.TrimSpace(chi.URLParam(r, "anime_id"))
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// SearchAnime handles GET /api/anime/search?name=
func SearchAnime(svc AnimeSearcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rid := httpserver.RequestIDFromContext(r.Context())

		a, err := svc.Search(r.Context(), r.URL.Query().Get("name"))
		if err != nil {
			writeServiceError(w, rid, err)
			return
		}
		api.WriteJSON(w, http.StatusOK, toAnimeResponse(a))
	}
}

// GetEpisodeAnalysis handles GET /api/anime/{anime_id}/episodes/analysis
func GetEpisodeAnalysis(svc EpisodeAnalyzer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rid := httpserver.RequestIDFromContext(r.Context())

		id, ok := animeIDParam(r)
		if !ok {
			api.BadRequest(w, "VALIDATION_ANIME_ID", "anime_id must be an integer", rid, nil)
			return
		}
		analysis, err := svc.Analyze(r.Context(), id)
		if err != nil {
			writeServiceError(w, rid, err)
			return
		}
		api.WriteJSON(w, http.StatusOK, toAnalysisResponse(analysis))
	}
}

// GetMangaInfo handles GET /api/anime/{anime_id}/manga-info
func GetMangaInfo(svc MangaInfoFetcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rid := httpserver.RequestIDFromContext(r.Context())

		id, ok := animeIDParam(r)
		if !ok {
			api.BadRequest(w, "VALIDATION_ANIME_ID", "anime_id must be an integer", rid, nil)
			return
		}
		info, err := svc.GetMangaInfo(r.Context(), id)
		if err != nil {
			writeServiceError(w, rid, err)
			return
		}
		api.WriteJSON(w, http.StatusOK, mangaInfoResponse{
			MangaTitle:          info.MangaTitle,
			TotalChapters:       info.TotalChapters,
			TotalVolumes:        info.TotalVolumes,
			MangaStatus:         info.MangaStatus,
			ContinueFromChapter: info.ContinueFromChapter,
			Note:                info.Note,
		})
	}
}
