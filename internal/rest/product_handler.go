package rest

import (
	"errors"
	"net/http"

	"codespace-shop/internal/logger"
	"codespace-shop/internal/product"
	"codespace-shop/internal/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type productHandler struct {
	products product.Service
	currency string
}

func (h *productHandler) list(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.ListProducts(r.Context())
	if err != nil {
		logger.FromCtx(r.Context()).Error("list products failed", zap.Error(err))
		utils.WriteJSONError(w, "internal error", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]any{
		"products": product.ToResponses(products, h.currency),
	})
}

func (h *productHandler) getBySlug(w http.ResponseWriter, r *http.Request) {
	p, err := h.products.GetProductBySlug(r.Context(), chi.URLParam(r, "slug"))
	switch {
	case errors.Is(err, product.ErrProductNotFound), errors.Is(err, product.ErrInvalidSlug):
		utils.WriteJSONError(w, "not found", http.StatusNotFound)
		return
	case err != nil:
		logger.FromCtx(r.Context()).Error("get product failed", zap.Error(err))
		utils.WriteJSONError(w, "internal error", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]any{
		"product": product.ToResponse(p, h.currency),
	})
}
