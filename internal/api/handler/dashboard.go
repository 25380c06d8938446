package handler

import (
	"bytes"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog"

	"github.com/edvin/dokdash/internal/api/request"
	"github.com/edvin/dokdash/internal/config"
	"github.com/edvin/dokdash/internal/dokploy"
	"github.com/edvin/dokdash/internal/render"
	"github.com/edvin/dokdash/internal/view"
)

// Dashboard serves the server-rendered dashboard. Every request drives a
// fresh controller backed by cookie storage and a recording view.
type Dashboard struct {
	cfg      *config.Config
	renderer *render.Renderer
	load     view.Loader
}

func NewDashboard(cfg *config.Config, renderer *render.Renderer, load view.Loader) *Dashboard {
	return &Dashboard{cfg: cfg, renderer: renderer, load: load}
}

type session struct {
	ctrl   *view.Controller
	rec    *view.Recorder
	apiURL string
}

func (h *Dashboard) session(w http.ResponseWriter, r *http.Request) *session {
	storage := NewCookieStorage(w, r)
	rec := &view.Recorder{}
	ctrl := view.NewController(rec, storage, h.load,
		view.WithLogger(*zerolog.Ctx(r.Context())),
		view.WithTimeout(h.cfg.UpstreamTimeout),
	)
	return &session{ctrl: ctrl, rec: rec, apiURL: h.cfg.DokployURL}
}

// Index godoc
//
//	@Summary		Dashboard config form, prefilled with the stored API key
//	@Tags			Dashboard
//	@Produce		html
//	@Success		200
//	@Router			/ [get]
func (h *Dashboard) Index(w http.ResponseWriter, r *http.Request) {
	h.write(w, r, http.StatusOK, h.session(w, r))
}

// Submit godoc
//
//	@Summary		Load all projects with the submitted credentials
//	@Description	api_url must be VITE_DOKPLOY_URL or listed in DOKPLOY_ALLOWED_URLS
//	@Tags			Dashboard
//	@Accept			x-www-form-urlencoded
//	@Produce		html
//	@Success		200
//	@Failure		401
//	@Failure		422
//	@Failure		502
//	@Router			/ [post]
func (h *Dashboard) Submit(w http.ResponseWriter, r *http.Request) {
	s := h.session(w, r)

	form, err := request.DecodeConnect(r)
	if form.APIURL != "" {
		s.apiURL = form.APIURL
	}
	if err != nil {
		zerolog.Ctx(r.Context()).Debug().Err(err).Msg("rejected config form")
		h.writeNotice(w, r, http.StatusUnprocessableEntity, s, "Dokploy URL and API key are required")
		return
	}
	if !h.cfg.AllowsDokployURL(form.APIURL) {
		zerolog.Ctx(r.Context()).Warn().Str("api_url", form.APIURL).Msg("rejected dokploy url not in allow list")
		h.writeNotice(w, r, http.StatusUnprocessableEntity, s, "This server only loads from "+strings.Join(h.allowedURLs(), ", "))
		return
	}

	target := view.StateData
	if r.URL.Query().Get("view") == render.PageIDs {
		target = view.StateIDs
	}

	loadErr := s.ctrl.Submit(r.Context(), form.APIURL, form.APIKey, form.Remember, target)
	h.write(w, r, loadStatus(loadErr), s)
}

// IDs godoc
//
//	@Summary		Load all projects with the stored API key and show the identifier view
//	@Tags			Dashboard
//	@Produce		html
//	@Success		200
//	@Failure		303
//	@Router			/ids [get]
func (h *Dashboard) IDs(w http.ResponseWriter, r *http.Request) {
	s := h.session(w, r)
	key, ok := s.ctrl.StoredKey()
	if !ok {
		key = h.cfg.DokployAPIKey
	}
	if key == "" {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	loadErr := s.ctrl.Submit(r.Context(), s.apiURL, key, false, view.StateIDs)
	h.write(w, r, loadStatus(loadErr), s)
}

// Retry returns to the config form.
func (h *Dashboard) Retry(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// ToggleSidebar flips the persisted sidebar flag and goes back.
func (h *Dashboard) ToggleSidebar(w http.ResponseWriter, r *http.Request) {
	s := h.session(w, r)
	if _, err := s.ctrl.ToggleSidebar(); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("toggle sidebar")
	}
	http.Redirect(w, r, backTo(r), http.StatusSeeOther)
}

// Forget clears the stored API key.
func (h *Dashboard) Forget(w http.ResponseWriter, r *http.Request) {
	s := h.session(w, r)
	if err := s.ctrl.Forget(); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("forget api key")
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Dashboard) allowedURLs() []string {
	return append([]string{h.cfg.DokployURL}, h.cfg.AllowedURLs...)
}

func loadStatus(err error) int {
	var authErr *dokploy.AuthError
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, view.ErrMissingCredentials):
		return http.StatusUnprocessableEntity
	case errors.As(err, &authErr):
		return http.StatusUnauthorized
	default:
		return http.StatusBadGateway
	}
}

// backTo returns the local page that posted the form, or "/".
func backTo(r *http.Request) string {
	ref := r.Referer()
	if ref == "" {
		return "/"
	}
	u, err := url.Parse(ref)
	if err != nil || (u.Host != "" && u.Host != r.Host) || !strings.HasPrefix(u.Path, "/") {
		return "/"
	}
	// Browsers read "//host" and "/\host" as another origin.
	if strings.HasPrefix(u.Path, "//") || strings.Contains(u.Path, `\`) {
		return "/"
	}
	return u.Path
}

func (h *Dashboard) writeNotice(w http.ResponseWriter, r *http.Request, status int, s *session, notice string) {
	page := h.page(s)
	page.Toast = notice
	page.ToastFailed = true
	h.render(w, r, status, page)
}

func (h *Dashboard) write(w http.ResponseWriter, r *http.Request, status int, s *session) {
	h.render(w, r, status, h.page(s))
}

func (h *Dashboard) page(s *session) render.Page {
	page := render.Page{
		State:    s.rec.Current().String(),
		Nav:      s.ctrl.Nav(),
		APIURL:   s.apiURL,
		Error:    s.rec.Error(),
		Snapshot: s.rec.Snapshot(),
	}
	if key, ok := s.ctrl.StoredKey(); ok {
		page.APIKey = key
		page.RememberKey = true
	}
	if active := s.rec.Active(); len(active) > 0 {
		last := active[len(active)-1]
		page.Toast = last.Message
		page.ToastFailed = last.Failed
	}
	return page
}

func (h *Dashboard) render(w http.ResponseWriter, r *http.Request, status int, page render.Page) {
	var buf bytes.Buffer
	if err := h.renderer.Render(&buf, page); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("render dashboard")
		http.Error(w, "failed to render dashboard", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}
