// Package api serves the read-only scoreboard over HTTP: registered games,
// stored bests, run history and Prometheus metrics.
package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/vovakirdan/mini-arcade/internal/metrics"
	"github.com/vovakirdan/mini-arcade/internal/registry"
	"github.com/vovakirdan/mini-arcade/internal/scores"
	"github.com/vovakirdan/mini-arcade/internal/storage"
)

// Default and maximum page sizes for run listings.
const (
	defaultLimit = 10
	maxLimit     = 100
)

// BestReader reads stored bests.
type BestReader interface {
	Best(gameID int) (int, bool)
}

// RunReader reads run history.
type RunReader interface {
	TopRuns(gameID int, order scores.Order, limit int) ([]storage.Run, error)
	RecentRuns(limit int) ([]storage.Run, error)
	Stats(gameID int) (*storage.GameStats, error)
}

// Config wires the router's collaborators. Runs may be nil when no
// database is configured.
type Config struct {
	Bests       BestReader
	Runs        RunReader
	Metrics     *metrics.Metrics
	Logger      *log.Logger
	RateLimit   float64 // Requests per second per client, 0 disables
	RateBurst   int
	CORSOrigins []string
}

type handlers struct {
	bests  BestReader
	runs   RunReader
	logger *log.Logger
}

// NewRouter builds the HTTP handler.
func NewRouter(cfg Config) *chi.Mux {
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(cfg.Logger))

	if cfg.RateLimit > 0 {
		limiter := newIPLimiter(cfg.RateLimit, cfg.RateBurst)
		r.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				if !limiter.Allow(clientIP(req)) {
					cfg.Metrics.Rejected("rate_limit")
					w.Header().Set("Retry-After", "1")
					writeError(w, "too many requests", http.StatusTooManyRequests)
					return
				}
				next.ServeHTTP(w, req)
			})
		})
	}

	origins := cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	h := &handlers{bests: cfg.Bests, runs: cfg.Runs, logger: cfg.Logger}

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", cfg.Metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/games", h.listGames)
		r.Get("/runs/recent", h.recentRuns)
		r.Route("/games/{game}", func(r chi.Router) {
			r.Get("/", h.getGame)
			r.Get("/best", h.getBest)
			r.Get("/scores", h.topScores)
			r.Get("/stats", h.getStats)
		})
	})
	return r
}

func requestLogger(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Debug("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration", time.Since(start),
			)
		})
	}
}

type gameJSON struct {
	ID    int    `json:"id"`
	Slug  string `json:"slug"`
	Title string `json:"title"`
	Order string `json:"order"`
	Best  *int   `json:"best,omitempty"`
}

type runJSON struct {
	RunID     string    `json:"run_id"`
	Game      string    `json:"game"`
	Score     int       `json:"score"`
	Result    string    `json:"result"`
	Ticks     uint64    `json:"ticks"`
	CreatedAt time.Time `json:"created_at"`
}

type statsJSON struct {
	Game       string    `json:"game"`
	Runs       int       `json:"runs"`
	Wins       int       `json:"wins"`
	AvgScore   float64   `json:"avg_score"`
	LastPlayed time.Time `json:"last_played"`
}

func (h *handlers) gameOf(info registry.Info) gameJSON {
	g := gameJSON{ID: info.ID, Slug: info.Slug, Title: info.Title, Order: info.Order.String()}
	if h.bests != nil {
		if best, ok := h.bests.Best(info.ID); ok {
			g.Best = &best
		}
	}
	return g
}

func (h *handlers) listGames(w http.ResponseWriter, _ *http.Request) {
	infos := registry.List()
	out := make([]gameJSON, 0, len(infos))
	for _, info := range infos {
		out = append(out, h.gameOf(info))
	}
	writeJSON(w, out)
}

// resolve looks up the {game} URL parameter and writes a 404 when unknown.
func (h *handlers) resolve(w http.ResponseWriter, r *http.Request) (registry.Info, bool) {
	info, ok := registry.Resolve(chi.URLParam(r, "game"))
	if !ok {
		writeError(w, "unknown game", http.StatusNotFound)
	}
	return info, ok
}

func (h *handlers) getGame(w http.ResponseWriter, r *http.Request) {
	info, ok := h.resolve(w, r)
	if !ok {
		return
	}
	writeJSON(w, h.gameOf(info))
}

func (h *handlers) getBest(w http.ResponseWriter, r *http.Request) {
	info, ok := h.resolve(w, r)
	if !ok {
		return
	}
	if h.bests == nil {
		writeError(w, "no score store", http.StatusNotFound)
		return
	}
	best, ok := h.bests.Best(info.ID)
	if !ok {
		writeError(w, "no best recorded", http.StatusNotFound)
		return
	}
	writeJSON(w, map[string]any{"game": info.Slug, "best": best, "order": info.Order.String()})
}

func (h *handlers) topScores(w http.ResponseWriter, r *http.Request) {
	info, ok := h.resolve(w, r)
	if !ok {
		return
	}
	if h.runs == nil {
		writeJSON(w, []runJSON{})
		return
	}
	runs, err := h.runs.TopRuns(info.ID, info.Order, limitParam(r))
	if err != nil {
		h.logger.Error("top runs", "game", info.Slug, "err", err)
		writeError(w, "storage error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, toRunJSON(runs))
}

func (h *handlers) recentRuns(w http.ResponseWriter, r *http.Request) {
	if h.runs == nil {
		writeJSON(w, []runJSON{})
		return
	}
	runs, err := h.runs.RecentRuns(limitParam(r))
	if err != nil {
		h.logger.Error("recent runs", "err", err)
		writeError(w, "storage error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, toRunJSON(runs))
}

func (h *handlers) getStats(w http.ResponseWriter, r *http.Request) {
	info, ok := h.resolve(w, r)
	if !ok {
		return
	}
	out := statsJSON{Game: info.Slug}
	if h.runs != nil {
		st, err := h.runs.Stats(info.ID)
		if err != nil {
			h.logger.Error("stats", "game", info.Slug, "err", err)
			writeError(w, "storage error", http.StatusInternalServerError)
			return
		}
		out.Runs, out.Wins, out.AvgScore, out.LastPlayed = st.Runs, st.Wins, st.AvgScore, st.LastPlayed
	}
	writeJSON(w, out)
}

func toRunJSON(runs []storage.Run) []runJSON {
	out := make([]runJSON, 0, len(runs))
	for _, run := range runs {
		slug := strconv.Itoa(run.GameID)
		if info, ok := registry.Lookup(run.GameID); ok {
			slug = info.Slug
		}
		out = append(out, runJSON{
			RunID:     run.RunID,
			Game:      slug,
			Score:     run.Score,
			Result:    run.Phase,
			Ticks:     run.Ticks,
			CreatedAt: run.CreatedAt,
		})
	}
	return out
}

// limitParam parses ?limit=, falling back to the default and capping at
// maxLimit.
func limitParam(r *http.Request) int {
	n, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || n <= 0 {
		return defaultLimit
	}
	return min(n, maxLimit)
}

func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	//nolint:errcheck // Client went away; nothing to do.
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, message string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	//nolint:errcheck // Client went away; nothing to do.
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
