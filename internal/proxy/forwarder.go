// Package proxy relays dashboard requests to the Dokploy API, injecting
// the API key so the browser never needs cross-origin access.
package proxy

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/edvin/dokdash/internal/api/response"
)

const (
	// MissingKeyMessage is returned when neither the request nor the
	// process supplies an API key.
	MissingKeyMessage = "No API key provided. Set VITE_DOKPLOY_API_KEY environment variable or include x-api-key header."
	// FailureMessage accompanies every transport-level failure.
	FailureMessage = "Failed to proxy request to Dokploy"

	maxBodyBytes = 10 << 20
)

// Forwarder relays any method on /api/dokploy/* to <base>/api/*. It is
// stateless apart from its configuration.
type Forwarder struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewForwarder creates a Forwarder. apiKey is the fallback used when a
// request carries no x-api-key header.
func NewForwarder(logger zerolog.Logger, baseURL, apiKey string, timeout time.Duration) *Forwarder {
	return &Forwarder{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Target resolves the upstream URL for the wildcard path rest. The raw
// query string, if any, is carried over unchanged.
func (f *Forwarder) Target(rest, rawQuery string) string {
	target := f.baseURL + "/api/" + strings.TrimLeft(rest, "/")
	if rawQuery != "" {
		target += "?" + rawQuery
	}
	return target
}

func hasBody(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return true
	}
	return false
}

// ServeHTTP forwards the request and mirrors the upstream status and JSON
// body.
func (f *Forwarder) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	apiKey := r.Header.Get("x-api-key")
	if apiKey == "" {
		apiKey = f.apiKey
	}
	if apiKey == "" {
		proxyRequestsTotal.WithLabelValues(r.Method, strconv.Itoa(http.StatusUnauthorized)).Inc()
		response.WriteError(w, http.StatusUnauthorized, MissingKeyMessage)
		return
	}

	var body io.Reader
	if hasBody(r.Method) {
		encoded, err := reencodeBody(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		if err != nil {
			proxyRequestsTotal.WithLabelValues(r.Method, strconv.Itoa(http.StatusBadRequest)).Inc()
			response.WriteError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		body = bytes.NewReader(encoded)
	}

	target := f.Target(chi.URLParam(r, "*"), r.URL.RawQuery)
	logger := f.logger.With().
		Str("request_id", requestID(r)).
		Str("method", r.Method).
		Str("upstream", target).
		Logger()
	logger.Info().Msg("proxying request")
	zerolog.Ctx(r.Context()).UpdateContext(func(c zerolog.Context) zerolog.Context {
		return c.Str("upstream", target)
	})

	status, payload, err := f.forward(r, target, apiKey, body)
	if err != nil {
		logger.Error().Err(err).Msg("proxy request failed")
		proxyRequestsTotal.WithLabelValues(r.Method, strconv.Itoa(http.StatusInternalServerError)).Inc()
		response.WriteErrorDetail(w, http.StatusInternalServerError, FailureMessage, err.Error())
		return
	}

	proxyRequestsTotal.WithLabelValues(r.Method, strconv.Itoa(status)).Inc()
	response.WriteRaw(w, status, payload)
}

func (f *Forwarder) forward(r *http.Request, target, apiKey string, body io.Reader) (int, json.RawMessage, error) {
	req, err := http.NewRequestWithContext(r.Context(), r.Method, target, body)
	if err != nil {
		return 0, nil, fmt.Errorf("create upstream request: %w", err)
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set("x-api-key", apiKey)
	if body != nil {
		req.Header.Set("content-type", "application/json")
	}

	start := time.Now()
	resp, err := f.httpClient.Do(req)
	proxyUpstreamDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("read upstream response: %w", err)
	}
	if !json.Valid(payload) {
		return 0, nil, fmt.Errorf("upstream returned %d with a non-JSON body", resp.StatusCode)
	}
	return resp.StatusCode, payload, nil
}

// reencodeBody parses the inbound JSON document and serializes it again.
// An empty body is sent as an empty object.
func reencodeBody(r io.Reader) ([]byte, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return []byte("{}"), nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, errors.New("trailing data after JSON body")
	}
	return json.Marshal(v)
}
