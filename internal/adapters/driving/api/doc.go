// Package api serves today's draw results over HTTP.
//
// Routes are built on github.com/go-chi/chi/v5 with its request-id, logger,
// recoverer and timeout middleware. Handlers return errors; MakeHandler turns
// an *HTTPError into its status and a JSON {"error": ...} body, and anything
// else into a 500.
//
//	GET  /                                   welcome message
//	GET  /api/lottery-results                today's snapshot (503 "no data yet" when empty-handed)
//	GET  /api/lottery-results/history?date=  archived draws for a date
//	GET  /api/lottery-schedule               source ID to draw time
//	GET  /api/status                         per-source search state
//	POST /api/poll                           run a poll cycle now
package api
