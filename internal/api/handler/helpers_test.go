package handler

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/edvin/dokdash/internal/config"
	"github.com/edvin/dokdash/internal/dokploy"
	"github.com/edvin/dokdash/internal/render"
)

func testConfig() *config.Config {
	return &config.Config{
		Port:            "3000",
		DokployURL:      "https://app.dokploy.com",
		UpstreamTimeout: time.Second,
		CORSOrigins:     []string{"*"},
	}
}

// fakeLoader records the credentials it was called with.
type fakeLoader struct {
	mu       sync.Mutex
	projects []dokploy.Project
	err      error
	baseURL  string
	apiKey   string
	calls    int
}

func (f *fakeLoader) load(ctx context.Context, baseURL, apiKey string) ([]dokploy.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.baseURL, f.apiKey = baseURL, apiKey
	return f.projects, f.err
}

func newTestDashboard(t *testing.T, loader *fakeLoader) *Dashboard {
	t.Helper()
	renderer, err := render.NewRenderer()
	require.NoError(t, err)
	return NewDashboard(testConfig(), renderer, loader.load)
}

// newFormRequest creates a form-encoded POST request.
func newFormRequest(target string, values url.Values) *http.Request {
	r := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return r
}

// withStored adds a persisted value cookie to the request.
func withStored(r *http.Request, key, value string) *http.Request {
	r.AddCookie(&http.Cookie{Name: key, Value: base64.RawURLEncoding.EncodeToString([]byte(value))})
	return r
}

// responseCookie returns the named Set-Cookie from the response.
func responseCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func visible(section string) string {
	return `id="` + section + `" class="state-section">`
}
