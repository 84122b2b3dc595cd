package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"
)

func (s *Server) auditLogMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		entry := AuditLogEntry{
			Timestamp: time.Now(),
			Method:    r.Method,
			Path:      r.URL.Path,
			Handler:   getHandlerName(r.URL.Path, r.Method),
		}

		if username, _, ok := r.BasicAuth(); ok {
			entry.UserID = username
		}

		if strings.Contains(r.URL.Path, "/orders/") {
			parts := strings.Split(r.URL.Path, "/")
			for i, part := range parts {
				if part == "orders" && i+1 < len(parts) {
					entry.OrderID = parts[i+1]
					break
				}
			}
		}

		var requestBody []byte
		if r.Body != nil {
			requestBody, _ = io.ReadAll(r.Body)
			r.Body = io.NopCloser(bytes.NewBuffer(requestBody))
			entry.Request = string(requestBody)

			if entry.OrderID != "" && strings.HasSuffix(r.URL.Path, "/status") {
				var statusRequest struct {
					Status string `json:"status"`
				}
				if err := json.Unmarshal(requestBody, &statusRequest); err == nil {
					if order, err := s.orders.GetOrder(r.Context(), entry.OrderID); err == nil {
						entry.OldStatus = string(order.Status)
						entry.NewStatus = statusRequest.Status
					}
				}
			}
		}

		wrw := newResponseWriterWrapper(w)

		next.ServeHTTP(wrw, r)

		entry.StatusCode = wrw.GetStatusCode()
		entry.Response = string(wrw.GetBody())

		s.AuditManager.LogEntry(r.Context(), entry)
	})
}

func getHandlerName(path string, method string) string {
	switch {
	case strings.HasPrefix(path, "/cards"):
		if strings.Count(path, "/") > 1 {
			return "handleGetCard"
		}
		return "handleListCards"
	case strings.HasPrefix(path, "/editor/sessions"):
		switch {
		case strings.HasSuffix(path, "/commit"):
			return "handleCommit"
		case strings.HasSuffix(path, "/undo"):
			return "handleUndo"
		case strings.HasSuffix(path, "/redo"):
			return "handleRedo"
		case strings.HasSuffix(path, "/reset"):
			return "handleReset"
		case strings.HasSuffix(path, "/state"):
			return "handleSessionState"
		case method == http.MethodDelete:
			return "handleCloseSession"
		default:
			return "handleOpenSession"
		}
	case strings.HasPrefix(path, "/cart/"):
		switch {
		case strings.HasSuffix(path, "/quote"):
			return "handleQuote"
		case strings.Contains(path, "/items"):
			switch method {
			case http.MethodPost:
				return "handleAddCartItem"
			case http.MethodDelete:
				return "handleRemoveCartItem"
			default:
				return "handleUpdateCartItem"
			}
		default:
			if method == http.MethodDelete {
				return "handleClearCart"
			}
			return "handleGetCart"
		}
	case path == "/checkout":
		return "handleCheckout"
	case strings.HasPrefix(path, "/orders/"):
		return "handleGetOrder"
	case strings.HasPrefix(path, "/users/"):
		return "handleUserOrders"
	case strings.HasPrefix(path, "/studio/"):
		switch {
		case strings.HasSuffix(path, "/refine"):
			return "handleRefineImage"
		case strings.HasSuffix(path, "/text"):
			return "handleGenerateText"
		case strings.HasSuffix(path, "/image"):
			return "handleGenerateImage"
		default:
			return "handleQRCode"
		}
	case strings.HasPrefix(path, "/admin/orders"):
		switch {
		case strings.HasSuffix(path, "/status"):
			return "handleAdminUpdateStatus"
		case strings.Count(path, "/") > 2:
			return "handleGetOrder"
		default:
			return "handleAdminListOrders"
		}
	case strings.HasPrefix(path, "/admin/cards"):
		switch method {
		case http.MethodPost:
			return "handleAdminCreateCard"
		case http.MethodDelete:
			return "handleAdminDeleteCard"
		default:
			return "handleAdminUpdateCard"
		}
	}
	return "unknown"
}
