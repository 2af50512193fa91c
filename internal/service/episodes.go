package service

import (
	"context"
	"fmt"
	"math"
	"sort"

	"go.uber.org/zap"

	"github.com/example/otaku-insight/internal/jikan"
	"github.com/example/otaku-insight/internal/platform/events"
	"github.com/example/otaku-insight/internal/store"
)

// ratingScale converts Jikan's 5-point episode scores to a 10-point scale.
// The scaled value is analysis-only; the store keeps raw scores.
const ratingScale = 2

// RatedEpisode is one episode with its normalized rating.
type RatedEpisode struct {
	Number int
	Title  string
	Rating float64
}

// Analysis is the aggregate view over one anime's rated episodes.
type Analysis struct {
	AnimeName      string
	TotalEpisodes  int
	AverageRating  float64
	Highest        RatedEpisode
	Lowest         RatedEpisode
	EpisodesAbove9 int
	EpisodesAbove8 int
}

// EpisodeAnalysis computes rating statistics for an anime, reading episodes
// through the cache and fetching the full remote listing on a miss.
type EpisodeAnalysis struct {
	Jikan  jikan.Provider
	Store  store.Store
	Events *events.Publisher
	Log    *zap.Logger
}

func NewEpisodeAnalysis(p jikan.Provider, s store.Store, ev *events.Publisher, log *zap.Logger) *EpisodeAnalysis {
	if log == nil {
		log = zap.NewNop()
	}
	return &EpisodeAnalysis{Jikan: p, Store: s, Events: ev, Log: log}
}

// Analyze returns the rating analysis for the anime with the given MAL id.
// A cache hit requires both a stored anime and at least one stored episode;
// anything less triggers the full remote fetch. An anime with no rated
// episodes is reported as not found and nothing is persisted for it.
func (s *EpisodeAnalysis) Analyze(ctx context.Context, malID int64) (Analysis, error) {
	if malID <= 0 {
		return Analysis{}, fmt.Errorf("%w: anime id must be positive", ErrInvalidInput)
	}

	cached, inStore, err := s.Store.GetAnime(ctx, malID)
	if err != nil {
		return Analysis{}, err
	}
	if inStore {
		eps, err := s.Store.ListEpisodesByAnime(ctx, malID)
		if err != nil {
			return Analysis{}, err
		}
		if len(eps) > 0 {
			inputs := make([]store.EpisodeInput, len(eps))
			for i, ep := range eps {
				inputs[i] = store.EpisodeInput{Number: ep.Number, Title: ep.Title, Rating: ep.Rating}
			}
			return buildAnalysis(cached.Title, inputs), nil
		}
	}

	anime, found, err := s.Jikan.GetAnimeByID(ctx, malID)
	if err != nil {
		return Analysis{}, fmt.Errorf("%w: anime %d: %v", ErrNotFound, malID, err)
	}
	if !found {
		return Analysis{}, fmt.Errorf("%w: anime %d", ErrNotFound, malID)
	}

	episodes := s.Jikan.FetchAllEpisodes(ctx, malID)
	if len(episodes) == 0 {
		return Analysis{}, fmt.Errorf("%w: no episodes found for anime %d", ErrNotFound, malID)
	}

	if !inStore {
		if err := s.Store.SaveAnime(ctx, anime); err != nil {
			return Analysis{}, err
		}
	}
	if err := s.Store.SaveEpisodes(ctx, malID, episodes); err != nil {
		return Analysis{}, err
	}
	s.Log.Info("episodes cached", zap.Int64("mal_id", malID), zap.Int("count", len(episodes)))
	s.Events.Publish(events.SubjectEpisodesCached, "episodes_cached",
		map[string]any{"mal_id": malID, "count": len(episodes)})

	return buildAnalysis(anime.Title, episodes), nil
}

// buildAnalysis runs the aggregation pass. Episodes are ordered by number
// first so the highest/lowest tie-break is deterministic: the lowest-numbered
// episode wins.
func buildAnalysis(animeName string, episodes []store.EpisodeInput) Analysis {
	rated := make([]RatedEpisode, len(episodes))
	for i, ep := range episodes {
		rated[i] = RatedEpisode{
			Number: ep.Number,
			Title:  ep.Title,
			Rating: round2(ep.Rating * ratingScale),
		}
	}
	sort.Slice(rated, func(i, j int) bool { return rated[i].Number < rated[j].Number })

	a := Analysis{AnimeName: animeName, TotalEpisodes: len(rated)}
	if len(rated) == 0 {
		return a
	}

	sum := 0.0
	a.Highest = rated[0]
	a.Lowest = rated[0]
	for _, ep := range rated {
		sum += ep.Rating
		if ep.Rating > a.Highest.Rating {
			a.Highest = ep
		}
		if ep.Rating < a.Lowest.Rating {
			a.Lowest = ep
		}
		if ep.Rating >= 9.0 {
			a.EpisodesAbove9++
		}
		if ep.Rating >= 8.0 {
			a.EpisodesAbove8++
		}
	}
	a.AverageRating = round2(sum / float64(len(rated)))
	return a
}

// round2 rounds half away from zero to two decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
