package api

import (
	"errors"
	"net/http"

	"github.com/custodia-labs/drawwatch/internal/core/domain"
	"github.com/custodia-labs/drawwatch/internal/core/ports/driving"
)

const welcomeMessage = "Welcome to the drawwatch results API"

// Handler serves the API routes.
type Handler struct {
	snapshots driving.SnapshotService
	sources   driving.SourceService
	history   driving.HistoryService
}

// NewHandler creates a handler. history may be nil, in which case the
// history route answers 404.
func NewHandler(snapshots driving.SnapshotService, sources driving.SourceService, history driving.HistoryService) *Handler {
	return &Handler{snapshots: snapshots, sources: sources, history: history}
}

// HandleWelcome answers GET /.
func (h *Handler) HandleWelcome(w http.ResponseWriter, _ *http.Request) error {
	RespondWithJSON(w, http.StatusOK, map[string]string{"message": welcomeMessage})
	return nil
}

// HandleResults answers GET /api/lottery-results.
func (h *Handler) HandleResults(w http.ResponseWriter, r *http.Request) error {
	view, err := h.snapshots.Today(r.Context())
	if err != nil {
		if errors.Is(err, domain.ErrNoResults) {
			considered := make([]string, 0)
			for _, src := range h.sources.List() {
				considered = append(considered, src.ID)
			}
			e := NewHTTPErrorWrap(http.StatusServiceUnavailable, "no data yet", err)
			e.Body = noDataResponse{
				Error:              "no data yet",
				Results:            map[string]domain.Payload{},
				SourcesConsidered:  considered,
				SourcesWithResults: []string{},
			}
			return e
		}
		return err
	}

	RespondWithJSON(w, http.StatusOK, toResults(view, h.sources.Schedule()))
	return nil
}

// HandleSchedule answers GET /api/lottery-schedule.
func (h *Handler) HandleSchedule(w http.ResponseWriter, _ *http.Request) error {
	RespondWithJSON(w, http.StatusOK, h.sources.Schedule())
	return nil
}

// HandleStatus answers GET /api/status.
func (h *Handler) HandleStatus(w http.ResponseWriter, r *http.Request) error {
	statuses, err := h.sources.Status(r.Context())
	if err != nil {
		return err
	}
	out := make([]statusResponse, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, toStatus(s))
	}
	RespondWithJSON(w, http.StatusOK, out)
	return nil
}

// HandleHistory answers GET /api/lottery-results/history?date=YYYY-MM-DD.
func (h *Handler) HandleHistory(w http.ResponseWriter, r *http.Request) error {
	if h.history == nil {
		return errNotFoundWrap("history is not enabled", domain.ErrArchiveUnavailable)
	}

	raw := r.URL.Query().Get("date")
	if raw == "" {
		return errBadRequest("date query parameter is required (YYYY-MM-DD)")
	}
	date, err := domain.ParseDate(raw)
	if err != nil {
		return NewHTTPErrorWrap(http.StatusBadRequest, "date must be YYYY-MM-DD", err)
	}

	draws, err := h.history.DrawsOn(r.Context(), date)
	switch {
	case errors.Is(err, domain.ErrArchiveUnavailable):
		return errNotFoundWrap("history is not enabled", err)
	case err != nil:
		return err
	}

	RespondWithJSON(w, http.StatusOK, toHistory(date, draws))
	return nil
}

// HandlePoll answers POST /api/poll.
func (h *Handler) HandlePoll(w http.ResponseWriter, r *http.Request) error {
	report, err := h.snapshots.Poll(r.Context())
	if err != nil {
		e := NewHTTPErrorWrap(http.StatusBadGateway, "poll failed", err)
		if report != nil {
			e.Body = struct {
				Error  string       `json:"error"`
				Report pollResponse `json:"report"`
			}{"poll failed", toPoll(report)}
		}
		return e
	}

	RespondWithJSON(w, http.StatusOK, toPoll(report))
	return nil
}
