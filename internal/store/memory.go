package store

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore is an in-memory Store used in tests and local development.
type MemoryStore struct {
	mu       sync.RWMutex
	anime    map[int64]Anime
	episodes map[int64][]Episode
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		anime:    make(map[int64]Anime),
		episodes: make(map[int64][]Episode),
	}
}

func (s *MemoryStore) GetAnime(_ context.Context, malID int64) (Anime, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.anime[malID]
	return a, ok, nil
}

func (s *MemoryStore) FindAnimeByTitle(_ context.Context, title string) (Anime, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q := strings.ToLower(title)
	ids := make([]int64, 0, len(s.anime))
	for id := range s.anime {
		ids = append(ids, id)
	}
	// Lowest id wins so repeated lookups are deterministic.
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		a := s.anime[id]
		if strings.Contains(strings.ToLower(a.Title), q) {
			return a, true, nil
		}
	}
	return Anime{}, false, nil
}

func (s *MemoryStore) SaveAnime(_ context.Context, a Anime) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	// Write-once per id: the first cached row wins.
	if _, ok := s.anime[a.MalID]; ok {
		return nil
	}
	s.anime[a.MalID] = a
	return nil
}

func (s *MemoryStore) ListEpisodesByAnime(_ context.Context, malID int64) ([]Episode, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	eps := s.episodes[malID]
	out := make([]Episode, len(eps))
	copy(out, eps)
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out, nil
}

func (s *MemoryStore) SaveEpisodes(_ context.Context, malID int64, episodes []EpisodeInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing := make(map[int]struct{}, len(s.episodes[malID]))
	for _, ep := range s.episodes[malID] {
		existing[ep.Number] = struct{}{}
	}
	for _, ep := range episodes {
		if _, ok := existing[ep.Number]; ok {
			continue
		}
		existing[ep.Number] = struct{}{}
		s.episodes[malID] = append(s.episodes[malID], Episode{
			ID:      uuid.NewString(),
			AnimeID: malID,
			Number:  ep.Number,
			Title:   ep.Title,
			Rating:  ep.Rating,
		})
	}
	return nil
}
