package rest

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"codespace-shop/internal/auth"
	"codespace-shop/internal/logger"
	"codespace-shop/internal/order"
	"codespace-shop/internal/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type adminHandler struct {
	admin  *auth.Admin
	seeder Seeder
	orders order.Service
}

type loginRequest struct {
	Password string `json:"password"`
}

func (h *adminHandler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSONError(w, "bad request", http.StatusBadRequest)
		return
	}

	token, err := h.admin.Login(r.Context(), req.Password)
	if err != nil {
		utils.WriteJSONError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.AccessTokenCookie,
		Value:    token,
		Path:     "/api/admin",
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   int(auth.TokenTTL.Seconds()),
	})
	utils.WriteJSON(w, http.StatusOK, map[string]string{"token": token})
}

func (h *adminHandler) seed(w http.ResponseWriter, r *http.Request) {
	log := logger.FromCtx(r.Context())
	if role, ok := utils.RoleFromContext(r.Context()); ok {
		log = log.With(zap.String("role", role))
	}

	if h.seeder == nil {
		utils.WriteJSONError(w, "seeding unavailable", http.StatusServiceUnavailable)
		return
	}

	inserted, err := h.seeder.Run(r.Context())
	if err != nil {
		log.Error("seed failed", zap.Error(err))
		utils.WriteJSONError(w, "internal error", http.StatusInternalServerError)
		return
	}

	log.Info("catalog seeded", zap.Int("inserted", inserted))
	utils.WriteJSON(w, http.StatusOK, map[string]int{"inserted": inserted})
}

type orderItemResponse struct {
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
	Quantity    int    `json:"quantity"`
	PriceCents  int64  `json:"priceCents"`
}

type orderResponse struct {
	ID         string              `json:"id"`
	Email      string              `json:"email"`
	TotalCents int64               `json:"totalCents"`
	Status     string              `json:"status"`
	CreatedAt  string              `json:"createdAt"`
	Items      []orderItemResponse `json:"items"`
}

func (h *adminHandler) getOrder(w http.ResponseWriter, r *http.Request) {
	o, err := h.orders.GetOrder(r.Context(), chi.URLParam(r, "id"))
	switch {
	case errors.Is(err, order.ErrOrderNotFound):
		utils.WriteJSONError(w, "not found", http.StatusNotFound)
		return
	case err != nil:
		logger.FromCtx(r.Context()).Error("get order failed", zap.Error(err))
		utils.WriteJSONError(w, "internal error", http.StatusInternalServerError)
		return
	}

	resp := orderResponse{
		ID:         o.ID,
		Email:      o.Email,
		TotalCents: o.TotalCents,
		Status:     string(o.Status),
		CreatedAt:  o.CreatedAt.UTC().Format(time.RFC3339),
		Items:      make([]orderItemResponse, 0, len(o.Items)),
	}
	for _, it := range o.Items {
		resp.Items = append(resp.Items, orderItemResponse{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			PriceCents:  it.PriceCents,
		})
	}

	utils.WriteJSON(w, http.StatusOK, resp)
}
