package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/alebedeva/cardforge/internal/cart"
	"github.com/alebedeva/cardforge/internal/domain"
	"github.com/alebedeva/cardforge/internal/metrics"
	"github.com/alebedeva/cardforge/internal/pricing"
)

func (s *Server) handleCheckout(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CartKey         string          `json:"cart_key"`
		Customer        domain.Customer `json:"customer"`
		ShippingAddress domain.Address  `json:"shipping_address"`
		VideoMessageURL string          `json:"video_message_url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.CartKey == "" {
		respondError(w, http.StatusBadRequest, "Missing cart_key")
		return
	}
	if req.Customer.Email == "" {
		respondError(w, http.StatusBadRequest, "Missing customer email")
		return
	}

	c, err := cart.Open(s.carts, req.CartKey)
	if err != nil {
		s.logger.Error("failed to open cart", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Failed to load cart")
		return
	}

	items := c.Items()
	quote := pricing.QuoteFor(items)

	order, err := s.orders.CreateOrder(r.Context(), domain.OrderDraft{
		Items:           items,
		Customer:        req.Customer,
		ShippingAddress: req.ShippingAddress,
		VideoMessageURL: req.VideoMessageURL,
		Subtotal:        quote.Subtotal,
		ShippingCost:    quote.ShippingCost,
		Tax:             quote.Tax,
		Total:           quote.Total,
	})
	if err != nil {
		metrics.OperationErrorsTotal.WithLabelValues("checkout").Inc()
		respondDomainError(w, err)
		return
	}
	metrics.OrdersCreatedTotal.Inc()

	if err := c.Clear(); err != nil {
		s.logger.Warn("failed to clear cart after checkout",
			zap.String("cart_key", req.CartKey),
			zap.Error(err),
		)
	}

	respondJSON(w, http.StatusCreated, order)
}

func (s *Server) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	orderID := mux.Vars(r)["id"]
	if orderID == "" {
		respondError(w, http.StatusBadRequest, "Missing order ID")
		return
	}

	order, err := s.orders.GetOrder(r.Context(), orderID)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, order)
}

func (s *Server) handleUserOrders(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userID"]
	if userID == "" {
		respondError(w, http.StatusBadRequest, "Missing user ID")
		return
	}

	orders, err := s.orders.GetUserOrders(r.Context(), userID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	// Guest orders placed with the account's email show up here too.
	if email := r.URL.Query().Get("email"); email != "" {
		byEmail, err := s.orders.GetOrdersByEmail(r.Context(), email)
		if err != nil {
			respondDomainError(w, err)
			return
		}
		seen := make(map[string]struct{}, len(orders))
		for _, o := range orders {
			seen[o.ID] = struct{}{}
		}
		for _, o := range byEmail {
			if _, ok := seen[o.ID]; !ok {
				orders = append(orders, o)
			}
		}
	}

	respondJSON(w, http.StatusOK, orders)
}

func (s *Server) handleAdminListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := s.orders.GetAllOrders(r.Context())
	if err != nil {
		respondDomainError(w, err)
		return
	}

	if status := r.URL.Query().Get("status"); status != "" {
		filtered := orders[:0]
		for _, o := range orders {
			if string(o.Status) == status {
				filtered = append(filtered, o)
			}
		}
		orders = filtered
	}

	respondJSON(w, http.StatusOK, orders)
}

func (s *Server) handleAdminUpdateStatus(w http.ResponseWriter, r *http.Request) {
	orderID := mux.Vars(r)["id"]
	if orderID == "" {
		respondError(w, http.StatusBadRequest, "Missing order ID")
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	status := domain.OrderStatus(strings.ToLower(req.Status))
	if !status.Valid() {
		respondError(w, http.StatusBadRequest, "Unknown status: "+req.Status)
		return
	}

	order, err := s.orders.UpdateOrderStatus(r.Context(), orderID, status)
	if err != nil {
		metrics.OperationErrorsTotal.WithLabelValues("update_status").Inc()
		respondDomainError(w, err)
		return
	}
	metrics.OrderStatusUpdatesTotal.WithLabelValues(string(status)).Inc()

	respondJSON(w, http.StatusOK, order)
}
