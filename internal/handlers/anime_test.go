package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/example/otaku-insight/internal/service"
	"github.com/example/otaku-insight/internal/store"
)

type stubSearcher struct {
	anime store.Anime
	err   error
}

func (s *stubSearcher) Search(_ context.Context, _ string) (store.Anime, error) {
	return s.anime, s.err
}

type stubAnalyzer struct {
	analysis service.Analysis
	err      error
	calls    int
}

func (s *stubAnalyzer) Analyze(_ context.Context, _ int64) (service.Analysis, error) {
	s.calls++
	return s.analysis, s.err
}

type stubMangaFetcher struct {
	info service.MangaInfo
	err  error
}

func (s *stubMangaFetcher) GetMangaInfo(_ context.Context, _ int64) (service.MangaInfo, error) {
	return s.info, s.err
}

func chiReq(url string, params map[string]string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, url, nil)
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestSearchAnime_OK(t *testing.T) {
	eps := 26
	stub := &stubSearcher{anime: store.Anime{MalID: 1, Title: "Cowboy Bebop", Episodes: &eps}}
	rr := httptest.NewRecorder()
	SearchAnime(stub).ServeHTTP(rr, chiReq("/api/anime/search?name=bebop", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var resp animeResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.MalID != 1 || resp.Title != "Cowboy Bebop" || *resp.Episodes != 26 {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestSearchAnime_Validation(t *testing.T) {
	stub := &stubSearcher{err: fmt.Errorf("%w: anime name cannot be empty", service.ErrInvalidInput)}
	rr := httptest.NewRecorder()
	SearchAnime(stub).ServeHTTP(rr, chiReq("/api/anime/search?name=", nil))

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestSearchAnime_NotFound(t *testing.T) {
	stub := &stubSearcher{err: fmt.Errorf("%w: anime %q", service.ErrNotFound, "nope")}
	rr := httptest.NewRecorder()
	SearchAnime(stub).ServeHTTP(rr, chiReq("/api/anime/search?name=nope", nil))

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}

func TestSearchAnime_InternalError(t *testing.T) {
	stub := &stubSearcher{err: fmt.Errorf("db connection lost")}
	rr := httptest.NewRecorder()
	SearchAnime(stub).ServeHTTP(rr, chiReq("/api/anime/search?name=bebop", nil))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}
}

func TestGetEpisodeAnalysis_OK(t *testing.T) {
	stub := &stubAnalyzer{analysis: service.Analysis{
		AnimeName:      "Cowboy Bebop",
		TotalEpisodes:  3,
		AverageRating:  8.20,
		Highest:        service.RatedEpisode{Number: 1, Title: "Asteroid Blues", Rating: 9.10},
		Lowest:         service.RatedEpisode{Number: 3, Title: "Honky Tonk Women", Rating: 7.50},
		EpisodesAbove9: 1,
		EpisodesAbove8: 2,
	}}
	rr := httptest.NewRecorder()
	GetEpisodeAnalysis(stub).ServeHTTP(rr,
		chiReq("/api/anime/1/episodes/analysis", map[string]string{"anime_id": "1"}))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var resp analysisResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.AverageRating != 8.20 || resp.Highest.EpisodeNumber != 1 || resp.EpisodesAbove8 != 2 {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestGetEpisodeAnalysis_NonNumericID(t *testing.T) {
	stub := &stubAnalyzer{}
	rr := httptest.NewRecorder()
	GetEpisodeAnalysis(stub).ServeHTTP(rr,
		chiReq("/api/anime/abc/episodes/analysis", map[string]string{"anime_id": "abc"}))

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
	if stub.calls != 0 {
		t.Fatal("expected the service not to be called for a bad id")
	}
}

func TestGetMangaInfo_OK(t *testing.T) {
	chapters := 150
	stub := &stubMangaFetcher{info: service.MangaInfo{
		MangaTitle:          "Fullmetal Alchemist",
		TotalChapters:       &chapters,
		MangaStatus:         "Finished",
		ContinueFromChapter: "Anime covers full manga - 150 chapters",
		Note:                "Fully adapted - no additional manga content",
	}}
	rr := httptest.NewRecorder()
	GetMangaInfo(stub).ServeHTTP(rr,
		chiReq("/api/anime/5114/manga-info", map[string]string{"anime_id": "5114"}))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var resp mangaInfoResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if *resp.TotalChapters != 150 || resp.ContinueFromChapter == "" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestGetMangaInfo_NotFound(t *testing.T) {
	stub := &stubMangaFetcher{err: fmt.Errorf("%w: no manga found for this anime", service.ErrNotFound)}
	rr := httptest.NewRecorder()
	GetMangaInfo(stub).ServeHTTP(rr,
		chiReq("/api/anime/40/manga-info", map[string]string{"anime_id": "40"}))

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}
