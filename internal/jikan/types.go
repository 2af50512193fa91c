package jikan

import (
	"strings"

	"github.com/example/otaku-insight/internal/store"
)

// MangaRef is a related-manga entry from an anime's relations listing.
type MangaRef struct {
	MalID int64
	Name  string
}

// Manga is the subset of a Jikan manga record the service cares about.
// Chapters and Volumes are nil while the manga is still publishing.
type Manga struct {
	MalID    int64
	Title    string
	Chapters *int
	Volumes  *int
	Status   string
}

// animeData is the shared data block returned by single and list endpoints.
type animeData struct {
	MalID    int64    `json:"mal_id"`
	Title    string   `json:"title"`
	Episodes *int     `json:"episodes"`
	Score    *float64 `json:"score"`
	Status   string   `json:"status"`
	Synopsis string   `json:"synopsis"`
	Images   struct {
		JPG struct {
			ImageURL string `json:"image_url"`
		} `json:"jpg"`
	} `json:"images"`
	Aired struct {
		Prop struct {
			From struct {
				Year *int `json:"year"`
			} `json:"from"`
		} `json:"prop"`
	} `json:"aired"`
}

type animeResponse struct {
	Data *animeData `json:"data"`
}

type animeListResponse struct {
	Data []animeData `json:"data"`
}

type episodePageResponse struct {
	Data []struct {
		// Jikan uses the episode's mal_id as its number within the anime.
		MalID int      `json:"mal_id"`
		Title string   `json:"title"`
		Score *float64 `json:"score"`
	} `json:"data"`
	Pagination *struct {
		HasNextPage bool `json:"has_next_page"`
	} `json:"pagination"`
}

type relationsResponse struct {
	Data []struct {
		Relation string `json:"relation"`
		Entry    []struct {
			MalID int64  `json:"mal_id"`
			Type  string `json:"type"`
			Name  string `json:"name"`
		} `json:"entry"`
	} `json:"data"`
}

type mangaResponse struct {
	Data *struct {
		MalID    int64  `json:"mal_id"`
		Title    string `json:"title"`
		Chapters *int   `json:"chapters"`
		Volumes  *int   `json:"volumes"`
		Status   string `json:"status"`
	} `json:"data"`
}

func mapAnime(d animeData) store.Anime {
	return store.Anime{
		MalID:    d.MalID,
		Title:    strings.TrimSpace(d.Title),
		Episodes: d.Episodes,
		Score:    d.Score,
		Status:   strings.TrimSpace(d.Status),
		ImageURL: strings.TrimSpace(d.Images.JPG.ImageURL),
		Year:     d.Aired.Prop.From.Year,
		Synopsis: strings.TrimSpace(d.Synopsis),
	}
}
