package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/example/otaku-insight/internal/platform/api"
	"github.com/example/otaku-insight/internal/platform/httpserver"
)

// BackfillHandler pre-warms the anime and episode cache for a MAL id by
// driving the normal analysis miss path. Mounted behind the admin guard.
type BackfillHandler struct {
	Analyzer EpisodeAnalyzer
	Log      *zap.Logger
}

type backfillResponse struct {
	MalID         int64  `json:"mal_id"`
	AnimeName     string `json:"anime_name"`
	TotalEpisodes int    `json:"total_episodes"`
}

func (h BackfillHandler) Register(r chi.Router) {
	r.Post("/backfill/{mal_id}", h.handleBackfill)
}

func (h BackfillHandler) handleBackfill(w http.ResponseWriter, r *http.Request) {
	rid := httpserver.RequestIDFromContext(r.Context())

	raw := strings.TrimSpace(chi.URLParam(r, "mal_id"))
	malID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || malID <= 0 {
		api.BadRequest(w, "VALIDATION_MAL_ID", "Invalid mal_id", rid, map[string]any{"mal_id": raw})
		return
	}

	analysis, err := h.Analyzer.Analyze(r.Context(), malID)
	if err != nil {
		writeServiceError(w, rid, err)
		return
	}
	h.Log.Info("cache backfilled", zap.Int64("mal_id", malID), zap.Int("episodes", analysis.TotalEpisodes))
	api.WriteJSON(w, http.StatusOK, backfillResponse{
		MalID:         malID,
		AnimeName:     analysis.AnimeName,
		TotalEpisodes: analysis.TotalEpisodes,
	})
}
