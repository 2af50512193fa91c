package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/example/otaku-insight/internal/jikan"
)

func TestGetMangaInfo_InvalidID(t *testing.T) {
	svc := NewMangaLookup(&stubProvider{}, nil)

	_, err := svc.GetMangaInfo(context.Background(), 0)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestGetMangaInfo_FullyAdapted(t *testing.T) {
	stub := &stubProvider{
		mangaRef:      jikan.MangaRef{MalID: 25, Name: "Fullmetal Alchemist"},
		mangaRefFound: true,
		manga: jikan.Manga{
			MalID:    25,
			Title:    "Fullmetal Alchemist",
			Chapters: intp(150),
			Volumes:  intp(27),
			Status:   "Finished",
		},
		mangaFound: true,
	}
	svc := NewMangaLookup(stub, nil)

	info, err := svc.GetMangaInfo(context.Background(), 5114)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.MangaTitle != "Fullmetal Alchemist" || *info.TotalChapters != 150 {
		t.Fatalf("unexpected info: %+v", info)
	}
	if info.ContinueFromChapter != "Anime covers full manga - 150 chapters" {
		t.Fatalf("unexpected continuation message: %q", info.ContinueFromChapter)
	}
	if !strings.Contains(info.Note, "Fully adapted") {
		t.Fatalf("unexpected note: %q", info.Note)
	}
}

func TestGetMangaInfo_OngoingManga(t *testing.T) {
	stub := &stubProvider{
		mangaRef:      jikan.MangaRef{MalID: 13, Name: "One Piece"},
		mangaRefFound: true,
		manga:         jikan.Manga{MalID: 13, Title: "One Piece", Status: "Publishing"},
		mangaFound:    true,
	}
	svc := NewMangaLookup(stub, nil)

	info, err := svc.GetMangaInfo(context.Background(), 21)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.TotalChapters != nil {
		t.Fatalf("expected nil chapter count, got %v", *info.TotalChapters)
	}
	if info.ContinueFromChapter != "Manga still ongoing - check latest chapters" {
		t.Fatalf("unexpected continuation message: %q", info.ContinueFromChapter)
	}
	if !strings.Contains(info.Note, "may not cover all") {
		t.Fatalf("unexpected note: %q", info.Note)
	}
}

func TestGetMangaInfo_NoRelatedManga(t *testing.T) {
	svc := NewMangaLookup(&stubProvider{}, nil)

	_, err := svc.GetMangaInfo(context.Background(), 40)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if !strings.Contains(err.Error(), "no manga found for this anime") {
		t.Fatalf("unexpected message: %v", err)
	}
}

func TestGetMangaInfo_DetailsFetchFails(t *testing.T) {
	stub := &stubProvider{
		mangaRef:      jikan.MangaRef{MalID: 25},
		mangaRefFound: true,
		mangaErr:      errors.New("timeout"),
	}
	svc := NewMangaLookup(stub, nil)

	_, err := svc.GetMangaInfo(context.Background(), 5114)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if !strings.Contains(err.Error(), "could not fetch manga details") {
		t.Fatalf("unexpected message: %v", err)
	}
}

func TestGetMangaInfo_NeverCaches(t *testing.T) {
	stub := &stubProvider{
		mangaRef:      jikan.MangaRef{MalID: 25},
		mangaRefFound: true,
		manga:         jikan.Manga{MalID: 25, Title: "FMA", Chapters: intp(116)},
		mangaFound:    true,
	}
	svc := NewMangaLookup(stub, nil)
	ctx := context.Background()

	if _, err := svc.GetMangaInfo(ctx, 5114); err != nil {
		t.Fatalf("first call: %v", err)
	}
	if _, err := svc.GetMangaInfo(ctx, 5114); err != nil {
		t.Fatalf("second call: %v", err)
	}
	if stub.mangaRefCalls != 2 || stub.mangaCalls != 2 {
		t.Fatalf("expected both fetches re-executed, got ref=%d details=%d",
			stub.mangaRefCalls, stub.mangaCalls)
	}
}
