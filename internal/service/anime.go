package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/example/otaku-insight/internal/jikan"
	"github.com/example/otaku-insight/internal/platform/events"
	"github.com/example/otaku-insight/internal/store"
)

// AnimeLookup answers title searches with a cache-aside read through the
// store: a stored title match short-circuits the remote call entirely.
type AnimeLookup struct {
	Jikan  jikan.Provider
	Store  store.Store
	Events *events.Publisher
	Log    *zap.Logger
}

func NewAnimeLookup(p jikan.Provider, s store.Store, ev *events.Publisher, log *zap.Logger) *AnimeLookup {
	if log == nil {
		log = zap.NewNop()
	}
	return &AnimeLookup{Jikan: p, Store: s, Events: ev, Log: log}
}

// Search returns the cached anime whose title contains name
// (case-insensitive), falling back to the remote catalog on a miss.
//
// The check-then-write sequence is not guarded: two concurrent misses for
// the same title may both hit the remote source. The store's
// treat-existing-as-success write keeps that race harmless.
func (l *AnimeLookup) Search(ctx context.Context, name string) (store.Anime, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return store.Anime{}, fmt.Errorf("%w: anime name cannot be empty", ErrInvalidInput)
	}

	cached, ok, err := l.Store.FindAnimeByTitle(ctx, name)
	if err != nil {
		return store.Anime{}, err
	}
	if ok {
		return cached, nil
	}

	a, found, err := l.Jikan.SearchAnime(ctx, name)
	if err != nil {
		// Remote failure surfaces as not-found; the cause stays in the message.
		return store.Anime{}, fmt.Errorf("%w: anime %q: %v", ErrNotFound, name, err)
	}
	if !found {
		return store.Anime{}, fmt.Errorf("%w: anime %q", ErrNotFound, name)
	}

	if err := l.Store.SaveAnime(ctx, a); err != nil {
		return store.Anime{}, err
	}
	l.Log.Info("anime cached", zap.Int64("mal_id", a.MalID), zap.String("title", a.Title))
	l.Events.Publish(events.SubjectAnimeCached, "anime_cached",
		map[string]any{"mal_id": a.MalID, "title": a.Title})
	return a, nil
}
