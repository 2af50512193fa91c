package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore is the production Postgres-backed implementation.
type PostgresStore struct {
	db *pgxpool.Pool
}

func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

// EnsureSchema creates the cache tables if they do not exist yet.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	_, err := s.db.Exec(ctx, `
CREATE TABLE IF NOT EXISTS anime (
    mal_id     BIGINT PRIMARY KEY,
    title      TEXT NOT NULL,
    episodes   INT,
    score      DOUBLE PRECISION,
    status     TEXT NOT NULL DEFAULT '',
    image_url  VARCHAR(500) NOT NULL DEFAULT '',
    year       INT,
    synopsis   TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE TABLE IF NOT EXISTS episodes (
    id             UUID PRIMARY KEY,
    anime_mal_id   BIGINT NOT NULL REFERENCES anime(mal_id),
    episode_number INT NOT NULL,
    title          TEXT NOT NULL DEFAULT '',
    rating         DOUBLE PRECISION NOT NULL,
    UNIQUE (anime_mal_id, episode_number)
);`)
	return err
}

// ── Anime reads ────────────────────────────────────────────────────────────

func (s *PostgresStore) GetAnime(ctx context.Context, malID int64) (Anime, bool, error) {
	var a Anime
	err := s.db.QueryRow(ctx, `
SELECT mal_id, title, episodes, score, status, image_url, year, synopsis
FROM anime WHERE mal_id=$1`, malID).
		Scan(&a.MalID, &a.Title, &a.Episodes, &a.Score, &a.Status, &a.ImageURL, &a.Year, &a.Synopsis)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Anime{}, false, nil
		}
		return Anime{}, false, err
	}
	return a, true, nil
}

func (s *PostgresStore) FindAnimeByTitle(ctx context.Context, title string) (Anime, bool, error) {
	var a Anime
	err := s.db.QueryRow(ctx, `
SELECT mal_id, title, episodes, score, status, image_url, year, synopsis
FROM anime WHERE title ILIKE '%' || $1 || '%'
ORDER BY mal_id ASC LIMIT 1`, title).
		Scan(&a.MalID, &a.Title, &a.Episodes, &a.Score, &a.Status, &a.ImageURL, &a.Year, &a.Synopsis)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Anime{}, false, nil
		}
		return Anime{}, false, err
	}
	return a, true, nil
}

// ── Anime writes ───────────────────────────────────────────────────────────

func (s *PostgresStore) SaveAnime(ctx context.Context, a Anime) error {
	// Two concurrent misses on the same id may both reach this insert;
	// DO NOTHING keeps the first row and treats the second write as success.
	_, err := s.db.Exec(ctx, `
INSERT INTO anime (mal_id, title, episodes, score, status, image_url, year, synopsis)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
ON CONFLICT (mal_id) DO NOTHING`,
		a.MalID, a.Title, a.Episodes, a.Score, a.Status, a.ImageURL, a.Year, a.Synopsis)
	return err
}

// ── Episode reads ──────────────────────────────────────────────────────────

func (s *PostgresStore) ListEpisodesByAnime(ctx context.Context, malID int64) ([]Episode, error) {
	rows, err := s.db.Query(ctx, `
SELECT id::text, anime_mal_id, episode_number, title, rating
FROM episodes WHERE anime_mal_id=$1 ORDER BY episode_number ASC`, malID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Episode
	for rows.Next() {
		var ep Episode
		if err := rows.Scan(&ep.ID, &ep.AnimeID, &ep.Number, &ep.Title, &ep.Rating); err != nil {
			return nil, err
		}
		out = append(out, ep)
	}
	return out, rows.Err()
}

// ── Episode writes ─────────────────────────────────────────────────────────

func (s *PostgresStore) SaveEpisodes(ctx context.Context, malID int64, episodes []EpisodeInput) error {
	if len(episodes) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, ep := range episodes {
		if _, err := tx.Exec(ctx, `
INSERT INTO episodes (id, anime_mal_id, episode_number, title, rating)
VALUES ($1,$2,$3,$4,$5)
ON CONFLICT (anime_mal_id, episode_number) DO NOTHING`,
			uuid.New(), malID, ep.Number, ep.Title, ep.Rating); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}
