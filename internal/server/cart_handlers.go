package server

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/alebedeva/cardforge/internal/cart"
	"github.com/alebedeva/cardforge/internal/domain"
	"github.com/alebedeva/cardforge/internal/pricing"
)

type cartResponse struct {
	Key       string            `json:"key"`
	Items     []domain.LineItem `json:"items"`
	ItemCount int               `json:"item_count"`
	Subtotal  int64             `json:"subtotal"`
}

func cartState(key string, c *cart.Cart) cartResponse {
	return cartResponse{
		Key:       key,
		Items:     c.Items(),
		ItemCount: c.ItemCount(),
		Subtotal:  c.Total(),
	}
}

func (s *Server) openCart(w http.ResponseWriter, r *http.Request) (*cart.Cart, string, bool) {
	key := mux.Vars(r)["key"]
	if key == "" {
		respondError(w, http.StatusBadRequest, "Missing cart key")
		return nil, "", false
	}

	c, err := cart.Open(s.carts, key)
	if err != nil {
		s.logger.Error("failed to open cart", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Failed to load cart")
		return nil, "", false
	}
	return c, key, true
}

func (s *Server) handleGetCart(w http.ResponseWriter, r *http.Request) {
	c, key, ok := s.openCart(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, cartState(key, c))
}

func (s *Server) handleAddCartItem(w http.ResponseWriter, r *http.Request) {
	c, key, ok := s.openCart(w, r)
	if !ok {
		return
	}

	var req struct {
		CardID        string                `json:"card_id"`
		Quantity      int                   `json:"quantity"`
		Customization *domain.Customization `json:"customization"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.CardID == "" {
		respondError(w, http.StatusBadRequest, "Missing card_id")
		return
	}

	card, err := s.catalog.Get(req.CardID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	customization := domain.PlaceholderCustomization(card)
	if req.Customization != nil {
		customization = *req.Customization
	}

	item, err := c.AddItem(domain.LineItem{
		CardID:        card.ID,
		CardTitle:     card.Title,
		Customization: customization,
		Quantity:      req.Quantity,
		UnitPrice:     card.PriceMinor,
	})
	if err != nil {
		s.logger.Error("failed to add cart item", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Failed to save cart")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"item": item,
		"cart": cartState(key, c),
	})
}

func (s *Server) handleUpdateCartItem(w http.ResponseWriter, r *http.Request) {
	c, key, ok := s.openCart(w, r)
	if !ok {
		return
	}
	itemID := mux.Vars(r)["itemID"]

	var req struct {
		Quantity      *int                  `json:"quantity"`
		Customization *domain.Customization `json:"customization"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Quantity == nil && req.Customization == nil {
		respondError(w, http.StatusBadRequest, "Nothing to update")
		return
	}

	if req.Customization != nil {
		if err := c.UpdateCustomization(itemID, *req.Customization); err != nil {
			s.logger.Error("failed to update cart item", zap.Error(err))
			respondError(w, http.StatusInternalServerError, "Failed to save cart")
			return
		}
	}
	if req.Quantity != nil {
		if err := c.UpdateQuantity(itemID, *req.Quantity); err != nil {
			s.logger.Error("failed to update cart item", zap.Error(err))
			respondError(w, http.StatusInternalServerError, "Failed to save cart")
			return
		}
	}

	respondJSON(w, http.StatusOK, cartState(key, c))
}

func (s *Server) handleRemoveCartItem(w http.ResponseWriter, r *http.Request) {
	c, key, ok := s.openCart(w, r)
	if !ok {
		return
	}

	if err := c.RemoveItem(mux.Vars(r)["itemID"]); err != nil {
		s.logger.Error("failed to remove cart item", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Failed to save cart")
		return
	}
	respondJSON(w, http.StatusOK, cartState(key, c))
}

func (s *Server) handleClearCart(w http.ResponseWriter, r *http.Request) {
	c, key, ok := s.openCart(w, r)
	if !ok {
		return
	}

	if err := c.Clear(); err != nil {
		s.logger.Error("failed to clear cart", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Failed to save cart")
		return
	}
	respondJSON(w, http.StatusOK, cartState(key, c))
}

func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	c, _, ok := s.openCart(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, pricing.QuoteFor(c.Items()))
}
