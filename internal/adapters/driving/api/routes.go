package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

const (
	apiBasePath    = "/api"
	resultsPath    = "/lottery-results"
	historySubPath = "/history"
	schedulePath   = "/lottery-schedule"
	statusPath     = "/status"
	pollPath       = "/poll"
	requestTimeout = 2 * time.Minute
	corsMaxAge     = 300
)

// NewRouter builds the API router. allowedOrigin enables CORS for that
// origin on /api routes; "*" allows any origin and "" disables CORS.
func NewRouter(h *Handler, allowedOrigin string) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	// A poll may take the whole batch deadline.
	r.Use(middleware.Timeout(requestTimeout))

	r.Get("/", MakeHandler(h.HandleWelcome))

	r.Route(apiBasePath, func(r chi.Router) {
		r.Use(CORS(allowedOrigin))

		r.Route(resultsPath, func(r chi.Router) {
			r.Get("/", MakeHandler(h.HandleResults))
			r.Get(historySubPath, MakeHandler(h.HandleHistory))
		})
		r.Get(schedulePath, MakeHandler(h.HandleSchedule))
		r.Get(statusPath, MakeHandler(h.HandleStatus))
		r.Post(pollPath, MakeHandler(h.HandlePoll))
	})

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	return r
}

// CORS allows cross-origin requests from origin and answers preflight requests.
// An empty origin disables it.
func CORS(origin string) func(http.Handler) http.Handler {
	if origin == "" {
		return func(next http.Handler) http.Handler { return next }
	}
	return cors.Handler(cors.Options{
		AllowedOrigins: []string{origin},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         corsMaxAge,
	})
}
