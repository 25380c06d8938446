package dokploy

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const projectsJSON = `[
  {
    "projectId": "p1",
    "name": "Shop",
    "description": "storefront",
    "environments": [
      {
        "environmentId": "e1",
        "name": "production",
        "applications": [
          {"applicationId": "a1", "name": "web", "appName": "web-x1", "githubId": "gh-1",
           "domains": [{"domainId": "d1", "host": "shop.test", "path": "/", "port": 3000, "https": true}]}
        ],
        "postgres": [{"postgresId": "pg1", "name": "db", "appName": "db-x1", "databasePassword": "hunter2"}]
      }
    ]
  }
]`

func TestFetchProjects_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/project.all", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("x-api-key"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(projectsJSON))
	}))
	defer srv.Close()

	projects, err := NewClient(srv.URL+"/", "secret").FetchProjects(context.Background())
	require.NoError(t, err)
	require.Len(t, projects, 1)

	p := projects[0]
	assert.Equal(t, "p1", p.ID)
	assert.Equal(t, "storefront", p.Description)
	require.Len(t, p.Environments, 1)

	env := p.Environments[0]
	assert.Equal(t, "e1", env.ID)
	require.Len(t, env.Applications, 1)
	assert.Equal(t, "gh-1", env.Applications[0].GithubID)
	require.Len(t, env.Applications[0].Domains, 1)
	assert.True(t, env.Applications[0].Domains[0].HTTPS)
	require.Len(t, env.Postgres, 1)
	assert.Equal(t, Postgres, env.Postgres[0].Kind)
	assert.Equal(t, "pg1", env.Postgres[0].ID)
	assert.Nil(t, env.Compose)
}

func TestFetchProjects_APIRoot(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/dokploy/project.all", r.URL.Path)
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	projects, err := FetchProjects(context.Background(), "http://unused.invalid", "k",
		WithAPIRoot(srv.URL+"/api/dokploy/"))
	require.NoError(t, err)
	assert.Empty(t, projects)
}

func TestFetchProjects_StatusErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		check  func(t *testing.T, err error)
	}{
		{
			name:   "unauthorized",
			status: http.StatusUnauthorized,
			check: func(t *testing.T, err error) {
				var authErr *AuthError
				require.ErrorAs(t, err, &authErr)
				assert.Equal(t, http.StatusUnauthorized, authErr.Status)
			},
		},
		{
			name:   "forbidden",
			status: http.StatusForbidden,
			check: func(t *testing.T, err error) {
				var authErr *AuthError
				require.ErrorAs(t, err, &authErr)
			},
		},
		{
			name:   "server error",
			status: http.StatusInternalServerError,
			check: func(t *testing.T, err error) {
				var httpErr *HTTPError
				require.ErrorAs(t, err, &httpErr)
				assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
				assert.Equal(t, "API Error: 500 Internal Server Error", err.Error())
			},
		},
		{
			name:   "not found",
			status: http.StatusNotFound,
			check: func(t *testing.T, err error) {
				var httpErr *HTTPError
				require.ErrorAs(t, err, &httpErr)
				assert.Contains(t, err.Error(), "404")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(`{"message":"nope"}`))
			}))
			defer srv.Close()

			_, err := NewClient(srv.URL, "k").FetchProjects(context.Background())
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestFetchProjects_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewClient(url, "k").FetchProjects(context.Background())
	require.Error(t, err)

	var netErr *NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.Contains(t, err.Error(), "network error")
}

func TestFetchProjects_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	_, err := NewClient(srv.URL, "k", WithTimeout(50*time.Millisecond)).FetchProjects(context.Background())
	require.Error(t, err)

	var netErr *NetworkError
	require.ErrorAs(t, err, &netErr)
}

func TestFetchProjects_ContextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewClient(srv.URL, "k").FetchProjects(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestFetchProjects_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"not":"a list"}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "k").FetchProjects(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode project.all response")

	var netErr *NetworkError
	assert.False(t, errors.As(err, &netErr))
}
