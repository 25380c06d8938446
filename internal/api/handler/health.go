package handler

import (
	"net/http"

	"github.com/edvin/dokdash/internal/api/response"
	"github.com/edvin/dokdash/internal/config"
)

type Health struct {
	cfg *config.Config
}

func NewHealth(cfg *config.Config) *Health {
	return &Health{cfg: cfg}
}

type healthResponse struct {
	Status     string `json:"status"`
	DokployURL string `json:"dokployUrl"`
	HasAPIKey  bool   `json:"hasApiKey"`
}

// Get godoc
//
//	@Summary		Health check
//	@Tags			Health
//	@Success		200	{object}	healthResponse
//	@Router			/health [get]
func (h *Health) Get(w http.ResponseWriter, r *http.Request) {
	response.WriteJSON(w, http.StatusOK, healthResponse{
		Status:     "ok",
		DokployURL: h.cfg.DokployURL,
		HasAPIKey:  h.cfg.HasAPIKey(),
	})
}
