package http

import (
	"io"
	"net/http"
	"net/url"
	"time"

	"rentmatch-backend/internal/config"
	"rentmatch-backend/internal/logger"
)

// PlacesHandler proxies geocoding and address-autocomplete queries to the
// configured upstream provider. Responses pass through as-is; the client
// never sees the provider API key.
type PlacesHandler struct {
	cfg    config.PlacesConfig
	client *http.Client
}

func NewPlacesHandler(cfg config.PlacesConfig) *PlacesHandler {
	return &PlacesHandler{
		cfg:    cfg,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (h *PlacesHandler) Geocode(w http.ResponseWriter, r *http.Request) {
	h.proxy(w, r, h.cfg.GeocodeURL, "geocode")
}

func (h *PlacesHandler) Autocomplete(w http.ResponseWriter, r *http.Request) {
	h.proxy(w, r, h.cfg.AutocompleteURL, "autocomplete")
}

func (h *PlacesHandler) proxy(w http.ResponseWriter, r *http.Request, upstream, operation string) {
	query := r.URL.Query().Get("q")
	if query == "" {
		writeError(w, http.StatusBadRequest, "q parameter is required")
		return
	}
	if upstream == "" {
		writeError(w, http.StatusServiceUnavailable, "Places provider is not configured")
		return
	}

	u, err := url.Parse(upstream)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	params := u.Query()
	params.Set("q", query)
	if h.cfg.APIKey != "" {
		params.Set("key", h.cfg.APIKey)
	}
	u.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(r.Context(), http.MethodGet, u.String(), nil)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	logger.ExternalServiceCall("places", operation, "query", query)
	resp, err := h.client.Do(req)
	logger.ExternalServiceResult("places", operation, err)
	if err != nil {
		writeError(w, http.StatusBadGateway, "Places provider request failed")
		return
	}
	defer resp.Body.Close()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.StatusCode)
	if _, err := io.Copy(w, resp.Body); err != nil {
		logger.Error("Failed to stream places response", "error", err)
	}
}
