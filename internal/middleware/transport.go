package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// RequestIDHeader carries the per-request id to the voting site
const RequestIDHeader = "X-Request-ID"

// Middleware wraps a client transport
type Middleware func(http.RoundTripper) http.RoundTripper

// RoundTripperFunc adapts a function to http.RoundTripper
type RoundTripperFunc func(*http.Request) (*http.Response, error)

// RoundTrip calls f(r)
func (f RoundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

// Chain applies middlewares so that the first one sees the request first
func Chain(base http.RoundTripper, mws ...Middleware) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	for i := len(mws) - 1; i >= 0; i-- {
		base = mws[i](base)
	}
	return base
}

// RequestID tags every outgoing request with a fresh id unless one is set
func RequestID(next http.RoundTripper) http.RoundTripper {
	return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
		if r.Header.Get(RequestIDHeader) != "" {
			return next.RoundTrip(r)
		}
		r = r.Clone(r.Context())
		r.Header.Set(RequestIDHeader, uuid.New().String())
		return next.RoundTrip(r)
	})
}

// Logging writes one debug line per request and an error line per transport failure
func Logging(next http.RoundTripper) http.RoundTripper {
	return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
		start := time.Now()
		resp, err := next.RoundTrip(r)
		if err != nil {
			log.Error().
				Err(err).
				Str("method", r.Method).
				Str("url", r.URL.String()).
				Str("request_id", r.Header.Get(RequestIDHeader)).
				Msg("Request failed")
			return nil, err
		}

		log.Debug().
			Str("method", r.Method).
			Str("url", r.URL.String()).
			Str("request_id", r.Header.Get(RequestIDHeader)).
			Int("status", resp.StatusCode).
			Dur("duration", time.Since(start)).
			Msg("Request completed")

		return resp, nil
	})
}
