// Package transport fetches source documents over HTTP.
//
// Client implements driven.DocumentTransport. Every request waits on a shared
// token bucket (golang.org/x/time/rate) so a batch never bursts past the
// configured request rate, whatever the worker count.
//
// Status mapping:
//
//   - 2xx with a body: the document
//   - 204, 404, or an empty 2xx body: driven.ErrNoContent
//   - any other status: *driven.TransportError with the status code
//   - no response at all: *driven.TransportError with StatusCode 0
package transport
