package rest

import (
	"encoding/json"
	"net/http"
	"strings"

	"codespace-shop/internal/checkout"
	"codespace-shop/internal/logger"
	"codespace-shop/internal/utils"

	"go.uber.org/zap"
)

const maxCheckoutBody = 1 << 20

type checkoutHandler struct {
	checkout checkout.Service
	baseURL  string
}

// create never tells the client why a checkout failed; the cause is logged.
func (h *checkoutHandler) create(w http.ResponseWriter, r *http.Request) {
	log := logger.FromCtx(r.Context())

	var req checkout.Request
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxCheckoutBody))
	if err := dec.Decode(&req); err != nil {
		log.Warn("checkout body rejected", zap.Error(err))
		utils.WriteJSONError(w, "bad request", http.StatusBadRequest)
		return
	}

	res, err := h.checkout.Checkout(r.Context(), req, resolveBaseURL(r, h.baseURL))
	if err != nil {
		log.Warn("checkout failed", zap.Error(err))
		utils.WriteJSONError(w, "bad request", http.StatusBadRequest)
		return
	}

	utils.WriteJSON(w, http.StatusOK, res)
}

// resolveBaseURL prefers the configured origin and otherwise rebuilds it
// from the request, trusting X-Forwarded-Proto from a fronting proxy.
func resolveBaseURL(r *http.Request, configured string) string {
	if configured != "" {
		return strings.TrimRight(configured, "/")
	}
	if r.Host == "" {
		return ""
	}

	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = strings.ToLower(strings.TrimSpace(strings.Split(proto, ",")[0]))
	}

	return scheme + "://" + r.Host
}
