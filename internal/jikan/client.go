package jikan

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/example/otaku-insight/internal/store"
)

// DefaultPageDelay is the pause between episode pages, per Jikan's rate limits.
const DefaultPageDelay = 500 * time.Millisecond

type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	// PageDelay is applied between episode-listing pages. Tests set it to 0.
	PageDelay time.Duration
	Log       *zap.Logger
}

func New(baseURL string, log *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = "https://api.jikan.moe/v4"
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
		PageDelay:  DefaultPageDelay,
		Log:        log,
	}
}

// SearchAnime queries Jikan by title with a single-result limit and returns
// the first hit mapped into the local model.
func (c *Client) SearchAnime(ctx context.Context, name string) (store.Anime, bool, error) {
	u := fmt.Sprintf("%s/anime?q=%s&limit=1", c.BaseURL, url.QueryEscape(name))

	var out animeListResponse
	if err := c.getJSON(ctx, u, &out); err != nil {
		return store.Anime{}, false, err
	}
	if len(out.Data) == 0 {
		return store.Anime{}, false, nil
	}
	return mapAnime(out.Data[0]), true, nil
}

// GetAnimeByID looks an anime up directly by its MAL id.
func (c *Client) GetAnimeByID(ctx context.Context, malID int64) (store.Anime, bool, error) {
	if malID <= 0 {
		return store.Anime{}, false, fmt.Errorf("malID required")
	}
	u := c.BaseURL + "/anime/" + strconv.FormatInt(malID, 10)

	var out animeResponse
	if err := c.getJSON(ctx, u, &out); err != nil {
		if isNotFound(err) {
			return store.Anime{}, false, nil
		}
		return store.Anime{}, false, err
	}
	if out.Data == nil {
		return store.Anime{}, false, nil
	}
	return mapAnime(*out.Data), true, nil
}

// FetchAllEpisodes walks the paginated episode listing to completion,
// discarding episodes without a score. A transport failure mid-walk
// truncates the walk: whatever accumulated so far is returned as-is,
// so callers cannot tell a short series from a truncated fetch.
func (c *Client) FetchAllEpisodes(ctx context.Context, malID int64) []store.EpisodeInput {
	var all []store.EpisodeInput

	for page := 1; ; page++ {
		u := fmt.Sprintf("%s/anime/%d/episodes?page=%d", c.BaseURL, malID, page)

		var out episodePageResponse
		if err := c.getJSON(ctx, u, &out); err != nil {
			c.Log.Warn("jikan: episode walk truncated",
				zap.Int64("mal_id", malID), zap.Int("page", page),
				zap.Int("accumulated", len(all)), zap.Error(err))
			return all
		}
		if len(out.Data) == 0 {
			return all
		}

		for _, ep := range out.Data {
			// Some episodes have no score yet; they never enter the model.
			if ep.Score == nil {
				continue
			}
			all = append(all, store.EpisodeInput{
				Number: ep.MalID,
				Title:  ep.Title,
				Rating: *ep.Score,
			})
		}

		// Missing pagination metadata means there is no next page.
		if out.Pagination == nil || !out.Pagination.HasNextPage {
			return all
		}

		select {
		case <-ctx.Done():
			return all
		case <-time.After(c.PageDelay):
		}
	}
}

// GetRelatedManga returns the first manga entry among the anime's relations.
func (c *Client) GetRelatedManga(ctx context.Context, malID int64) (MangaRef, bool, error) {
	u := fmt.Sprintf("%s/anime/%d/relations", c.BaseURL, malID)

	var out relationsResponse
	if err := c.getJSON(ctx, u, &out); err != nil {
		if isNotFound(err) {
			return MangaRef{}, false, nil
		}
		return MangaRef{}, false, err
	}
	for _, rel := range out.Data {
		for _, entry := range rel.Entry {
			if strings.EqualFold(entry.Type, "manga") {
				return MangaRef{MalID: entry.MalID, Name: entry.Name}, true, nil
			}
		}
	}
	return MangaRef{}, false, nil
}

// GetManga fetches the full manga record by its MAL id.
func (c *Client) GetManga(ctx context.Context, mangaID int64) (Manga, bool, error) {
	if mangaID <= 0 {
		return Manga{}, false, fmt.Errorf("mangaID required")
	}
	u := c.BaseURL + "/manga/" + strconv.FormatInt(mangaID, 10)

	var out mangaResponse
	if err := c.getJSON(ctx, u, &out); err != nil {
		if isNotFound(err) {
			return Manga{}, false, nil
		}
		return Manga{}, false, err
	}
	if out.Data == nil {
		return Manga{}, false, nil
	}
	d := out.Data
	return Manga{
		MalID:    d.MalID,
		Title:    d.Title,
		Chapters: d.Chapters,
		Volumes:  d.Volumes,
		Status:   d.Status,
	}, true, nil
}

type statusError struct {
	status int
	body   string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("jikan: status %d body=%q", e.status, e.body)
}

func isNotFound(err error) bool {
	se, ok := err.(*statusError)
	return ok && se.status == http.StatusNotFound
}

func (c *Client) getJSON(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "otaku-insight/1.0")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return &statusError{status: resp.StatusCode, body: string(b[:min(len(b), 200)])}
	}
	if err := json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("jikan: decode error: %w body=%q", err, string(b[:min(len(b), 200)]))
	}
	return nil
}
