package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edvin/dokdash/internal/dokploy"
	"github.com/edvin/dokdash/internal/dokploy/dokploytest"
	"github.com/edvin/dokdash/internal/view"
)

func TestDashboard_Index(t *testing.T) {
	h := newTestDashboard(t, &fakeLoader{})
	rec := httptest.NewRecorder()

	h.Index(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	body := rec.Body.String()
	assert.Contains(t, body, visible("config-section"))
	assert.Contains(t, body, `value="https://app.dokploy.com"`)
	assert.NotContains(t, body, "Forget key")
}

func TestDashboard_IndexPrefillsStoredKey(t *testing.T) {
	h := newTestDashboard(t, &fakeLoader{})
	rec := httptest.NewRecorder()

	h.Index(rec, withStored(httptest.NewRequest(http.MethodGet, "/", nil), view.KeyAPIKey, "stored-key"))

	body := rec.Body.String()
	assert.Contains(t, body, `value="stored-key"`)
	assert.Contains(t, body, "Forget key")
}

func TestDashboard_SubmitSuccess(t *testing.T) {
	loader := &fakeLoader{projects: dokploytest.Sample()}
	h := newTestDashboard(t, loader)
	h.cfg.AllowedURLs = []string{"https://dokploy.example.com"}
	rec := httptest.NewRecorder()

	h.Submit(rec, newFormRequest("/", url.Values{
		"api_url":  {"https://dokploy.example.com/"},
		"api_key":  {"secret"},
		"remember": {"true"},
	}))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "https://dokploy.example.com", loader.baseURL)
	assert.Equal(t, "secret", loader.apiKey)

	body := rec.Body.String()
	assert.Contains(t, body, visible("data-section"))
	assert.Contains(t, body, `class="stats"`)
	assert.Contains(t, body, `data-copy="pg1"`)
	assert.Contains(t, body, `class="ids-view"`)

	c := responseCookie(rec, view.KeyAPIKey)
	require.NotNil(t, c)
}

func TestDashboard_SubmitWithoutRemember(t *testing.T) {
	h := newTestDashboard(t, &fakeLoader{projects: dokploytest.Sample()})
	rec := httptest.NewRecorder()

	h.Submit(rec, newFormRequest("/", url.Values{"api_url": {"https://app.dokploy.com"}, "api_key": {"secret"}}))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, responseCookie(rec, view.KeyAPIKey))
}

func TestDashboard_SubmitIDsView(t *testing.T) {
	h := newTestDashboard(t, &fakeLoader{projects: dokploytest.Sample()})
	rec := httptest.NewRecorder()

	h.Submit(rec, newFormRequest("/?view=ids", url.Values{"api_url": {"https://app.dokploy.com"}, "api_key": {"secret"}}))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), visible("ids-section"))
	assert.Contains(t, rec.Body.String(), "<title>All IDs - Dokploy Dashboard</title>")
}

func TestDashboard_SubmitErrors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{
			name:    "network",
			err:     &dokploy.NetworkError{Err: errors.New("dial tcp: connection refused")},
			status:  http.StatusBadGateway,
			message: "network error: dial tcp: connection refused",
		},
		{
			name:    "auth",
			err:     &dokploy.AuthError{Status: http.StatusUnauthorized},
			status:  http.StatusUnauthorized,
			message: "API Error: 401 Unauthorized",
		},
		{
			name:    "http",
			err:     &dokploy.HTTPError{Status: http.StatusInternalServerError, StatusText: "Internal Server Error"},
			status:  http.StatusBadGateway,
			message: "API Error: 500 Internal Server Error",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestDashboard(t, &fakeLoader{err: tt.err})
			rec := httptest.NewRecorder()

			h.Submit(rec, newFormRequest("/", url.Values{"api_url": {"https://app.dokploy.com"}, "api_key": {"k"}}))

			assert.Equal(t, tt.status, rec.Code)
			assert.Contains(t, rec.Body.String(), visible("error-section"))
			assert.Contains(t, rec.Body.String(), tt.message)
		})
	}
}

func TestDashboard_SubmitInvalidForm(t *testing.T) {
	loader := &fakeLoader{}
	h := newTestDashboard(t, loader)
	rec := httptest.NewRecorder()

	h.Submit(rec, newFormRequest("/", url.Values{"api_url": {"https://app.dokploy.com"}}))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, 0, loader.calls)
	body := rec.Body.String()
	assert.Contains(t, body, visible("config-section"))
	assert.Contains(t, body, "Dokploy URL and API key are required")
	assert.Contains(t, body, `class="toast error"`)
}

func TestDashboard_SubmitRejectsUnlistedURL(t *testing.T) {
	for _, apiURL := range []string{
		"http://127.0.0.1:8080/admin",
		"http://169.254.169.254",
		"https://app.dokploy.com.evil.test",
	} {
		t.Run(apiURL, func(t *testing.T) {
			loader := &fakeLoader{projects: dokploytest.Sample()}
			h := newTestDashboard(t, loader)
			rec := httptest.NewRecorder()

			h.Submit(rec, newFormRequest("/", url.Values{
				"api_url":  {apiURL},
				"api_key":  {"secret"},
				"remember": {"true"},
			}))

			assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
			assert.Equal(t, 0, loader.calls)
			assert.Nil(t, responseCookie(rec, view.KeyAPIKey))
			body := rec.Body.String()
			assert.Contains(t, body, visible("config-section"))
			assert.Contains(t, body, "This server only loads from https://app.dokploy.com")
			assert.Contains(t, body, `class="toast error"`)
		})
	}
}

func TestDashboard_IDsWithoutKeyRedirects(t *testing.T) {
	loader := &fakeLoader{}
	h := newTestDashboard(t, loader)
	rec := httptest.NewRecorder()

	h.IDs(rec, httptest.NewRequest(http.MethodGet, "/ids", nil))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
	assert.Equal(t, 0, loader.calls)
}

func TestDashboard_IDsWithStoredKey(t *testing.T) {
	loader := &fakeLoader{projects: dokploytest.Sample()}
	h := newTestDashboard(t, loader)
	rec := httptest.NewRecorder()

	h.IDs(rec, withStored(httptest.NewRequest(http.MethodGet, "/ids", nil), view.KeyAPIKey, "stored"))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "stored", loader.apiKey)
	assert.Equal(t, "https://app.dokploy.com", loader.baseURL)
	assert.Contains(t, rec.Body.String(), visible("ids-section"))
}

func TestDashboard_IDsFallsBackToProcessKey(t *testing.T) {
	loader := &fakeLoader{projects: dokploytest.Sample()}
	h := newTestDashboard(t, loader)
	h.cfg.DokployAPIKey = "process-key"
	rec := httptest.NewRecorder()

	h.IDs(rec, httptest.NewRequest(http.MethodGet, "/ids", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "process-key", loader.apiKey)
}

func TestDashboard_Retry(t *testing.T) {
	h := newTestDashboard(t, &fakeLoader{})
	rec := httptest.NewRecorder()

	h.Retry(rec, httptest.NewRequest(http.MethodPost, "/retry", nil))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
}

func TestDashboard_ToggleSidebar(t *testing.T) {
	h := newTestDashboard(t, &fakeLoader{})

	req := httptest.NewRequest(http.MethodPost, "/sidebar", nil)
	req.Header.Set("Referer", "http://example.com/ids")
	req.Host = "example.com"
	rec := httptest.NewRecorder()
	h.ToggleSidebar(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/ids", rec.Header().Get("Location"))
	c := responseCookie(rec, view.KeySidebarCollapsed)
	require.NotNil(t, c)

	// A second toggle with the stored flag collapses it back.
	req = withStored(httptest.NewRequest(http.MethodPost, "/sidebar", nil), view.KeySidebarCollapsed, "true")
	rec = httptest.NewRecorder()
	h.ToggleSidebar(rec, req)

	assert.Equal(t, "/", rec.Header().Get("Location"))
	require.NotNil(t, responseCookie(rec, view.KeySidebarCollapsed))
}

func TestDashboard_ToggleSidebarStaysOnSite(t *testing.T) {
	h := newTestDashboard(t, &fakeLoader{})

	req := httptest.NewRequest(http.MethodPost, "/sidebar", nil)
	req.Host = "example.com"
	req.Header.Set("Referer", "http://example.com//evil.test/x")
	rec := httptest.NewRecorder()
	h.ToggleSidebar(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
}

func TestDashboard_CollapsedSidebarRendered(t *testing.T) {
	h := newTestDashboard(t, &fakeLoader{})
	rec := httptest.NewRecorder()

	h.Index(rec, withStored(httptest.NewRequest(http.MethodGet, "/", nil), view.KeySidebarCollapsed, "true"))

	assert.Contains(t, rec.Body.String(), `<aside class="sidebar collapsed">`)
}

func TestDashboard_Forget(t *testing.T) {
	h := newTestDashboard(t, &fakeLoader{})
	rec := httptest.NewRecorder()

	h.Forget(rec, withStored(httptest.NewRequest(http.MethodPost, "/forget", nil), view.KeyAPIKey, "secret"))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	c := responseCookie(rec, view.KeyAPIKey)
	require.NotNil(t, c)
	assert.Less(t, c.MaxAge, 0)
}

func TestBackTo(t *testing.T) {
	tests := []struct {
		referer string
		want    string
	}{
		{"", "/"},
		{"http://dash.test/ids", "/ids"},
		{"http://evil.test/ids", "/"},
		{"/ids", "/ids"},
		{"http://dash.test", "/"},
		{"http://dash.test//evil.test/x", "/"},
		{"http://dash.test/%5Cevil.test", "/"},
		{"http://dash.test/ids%5C..%5C", "/"},
		{"//evil.test/x", "/"},
	}
	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodPost, "/sidebar", nil)
		r.Host = "dash.test"
		if tt.referer != "" {
			r.Header.Set("Referer", tt.referer)
		}
		assert.Equal(t, tt.want, backTo(r), tt.referer)
	}
}
