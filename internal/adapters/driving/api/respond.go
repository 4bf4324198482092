package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/custodia-labs/drawwatch/internal/logger"
)

const (
	headerContentType   = "Content-Type"
	contentTypeJSONUTF8 = "application/json; charset=utf-8"
)

// AppHandler is a handler that reports failure by returning an error.
type AppHandler func(w http.ResponseWriter, r *http.Request) error

// MakeHandler adapts an AppHandler to http.HandlerFunc, writing a JSON error
// response for any returned error.
func MakeHandler(h AppHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := h(w, r)
		if err == nil {
			return
		}

		reqID := middleware.GetReqID(r.Context())

		var httpErr *HTTPError
		if errors.As(err, &httpErr) {
			logFn := logger.Warn
			if httpErr.Code >= 500 {
				logFn = logger.Error
			}
			if cause := errors.Unwrap(httpErr); cause != nil && cause.Error() != httpErr.Message {
				logFn("api: %s %s [%s]: %d %s: %v", r.Method, r.URL.Path, reqID, httpErr.Code, httpErr.Message, cause)
			} else {
				logFn("api: %s %s [%s]: %d %s", r.Method, r.URL.Path, reqID, httpErr.Code, httpErr.Message)
			}

			if httpErr.Body != nil {
				RespondWithJSON(w, httpErr.Code, httpErr.Body)
				return
			}
			RespondWithJSON(w, httpErr.Code, map[string]string{"error": httpErr.Message})
			return
		}

		logger.Error("api: %s %s [%s]: unhandled error: %v", r.Method, r.URL.Path, reqID, err)
		RespondWithJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal Server Error"})
	}
}

// RespondWithJSON writes payload as JSON with status.
func RespondWithJSON(w http.ResponseWriter, status int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		logger.Error("api: marshalling response: %v", err)
		w.Header().Set(headerContentType, contentTypeJSONUTF8)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Internal Server Error"}`))
		return
	}

	w.Header().Set(headerContentType, contentTypeJSONUTF8)
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
