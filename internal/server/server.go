//go:generate mockgen -source ./server.go -destination=./mocks/server.go -package=mock_server
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/alebedeva/cardforge/internal/cart"
	"github.com/alebedeva/cardforge/internal/catalog"
	"github.com/alebedeva/cardforge/internal/domain"
	"github.com/alebedeva/cardforge/internal/editor"
	"github.com/alebedeva/cardforge/internal/genai"
	"github.com/alebedeva/cardforge/internal/moderation"
	"github.com/alebedeva/cardforge/internal/storage"
)

type OrderStorage interface {
	CreateOrder(ctx context.Context, draft domain.OrderDraft) (*domain.Order, error)
	GetOrder(ctx context.Context, id string) (*domain.Order, error)
	UpdateOrderStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error)
	GetAllOrders(ctx context.Context) ([]domain.Order, error)
	GetUserOrders(ctx context.Context, userID string) ([]domain.Order, error)
	GetOrdersByEmail(ctx context.Context, email string) ([]domain.Order, error)
}

type UserValidator interface {
	ValidateUser(ctx context.Context, username, password string) (bool, error)
}

type Generator interface {
	GenerateText(ctx context.Context, req genai.TextRequest) (*genai.TextResult, error)
	GenerateImage(ctx context.Context, req genai.ImageRequest) (*genai.ImageResult, error)
	RefineImage(ctx context.Context, req genai.RefineRequest) (*genai.ImageResult, error)
}

type Server struct {
	catalog      *catalog.Catalog
	carts        cart.Store
	sessions     *editor.SessionManager
	orders       OrderStorage
	users        UserValidator
	generator    Generator
	logger       *zap.Logger
	server       *http.Server
	AuditManager *AuditManager
}

func New(cat *catalog.Catalog, carts cart.Store, sessions *editor.SessionManager, orders OrderStorage, users UserValidator, generator Generator, logger *zap.Logger) *Server {
	return &Server{
		catalog:      cat,
		carts:        carts,
		sessions:     sessions,
		orders:       orders,
		users:        users,
		generator:    generator,
		logger:       logger,
		AuditManager: NewAuditManager(2, 5, 500*time.Millisecond, logger),
	}
}

func (s *Server) Run(ctx context.Context, port string, readTimeout, writeTimeout time.Duration) error {
	router := s.setupRoutes()

	s.server = &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	s.AuditManager.Start(ctx)

	go s.handleShutdown()

	s.logger.Info("server starting", zap.String("port", port))
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleShutdown() {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	sig := <-signals
	s.logger.Info("received signal, shutting down", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil {
		s.logger.Error("server shutdown failed", zap.Error(err))
	}
}

func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.server.Shutdown(ctx); err != nil {
		return err
	}
	s.AuditManager.Shutdown(ctx)
	s.logger.Info("server shutdown completed")
	return nil
}

func (s *Server) setupRoutes() http.Handler {
	router := mux.NewRouter()

	router.HandleFunc("/cards", s.handleListCards).Methods(http.MethodGet)
	router.HandleFunc("/cards/{id}", s.handleGetCard).Methods(http.MethodGet)

	router.HandleFunc("/editor/sessions", s.handleOpenSession).Methods(http.MethodPost)
	router.HandleFunc("/editor/sessions/{id}", s.handleCloseSession).Methods(http.MethodDelete)
	router.HandleFunc("/editor/sessions/{id}/state", s.handleSessionState).Methods(http.MethodGet)
	router.HandleFunc("/editor/sessions/{id}/commit", s.handleCommit).Methods(http.MethodPost)
	router.HandleFunc("/editor/sessions/{id}/undo", s.handleUndo).Methods(http.MethodPost)
	router.HandleFunc("/editor/sessions/{id}/redo", s.handleRedo).Methods(http.MethodPost)
	router.HandleFunc("/editor/sessions/{id}/reset", s.handleReset).Methods(http.MethodPost)

	router.HandleFunc("/cart/{key}", s.handleGetCart).Methods(http.MethodGet)
	router.HandleFunc("/cart/{key}", s.handleClearCart).Methods(http.MethodDelete)
	router.HandleFunc("/cart/{key}/items", s.handleGetCart).Methods(http.MethodGet)
	router.HandleFunc("/cart/{key}/items", s.handleAddCartItem).Methods(http.MethodPost)
	router.HandleFunc("/cart/{key}/items/{itemID}", s.handleUpdateCartItem).Methods(http.MethodPut)
	router.HandleFunc("/cart/{key}/items/{itemID}", s.handleRemoveCartItem).Methods(http.MethodDelete)
	router.HandleFunc("/cart/{key}/quote", s.handleQuote).Methods(http.MethodGet)

	router.HandleFunc("/checkout", s.handleCheckout).Methods(http.MethodPost)
	router.HandleFunc("/orders/{id}", s.handleGetOrder).Methods(http.MethodGet)
	router.HandleFunc("/users/{userID}/orders", s.handleUserOrders).Methods(http.MethodGet)

	router.HandleFunc("/studio/generate/text", s.handleGenerateText).Methods(http.MethodPost)
	router.HandleFunc("/studio/generate/image", s.handleGenerateImage).Methods(http.MethodPost)
	router.HandleFunc("/studio/generate/image/refine", s.handleRefineImage).Methods(http.MethodPost)
	router.HandleFunc("/studio/qr", s.handleQRCode).Methods(http.MethodPost)

	admin := router.PathPrefix("/admin").Subrouter()
	admin.Use(s.basicAuthMiddleware)
	admin.HandleFunc("/orders", s.handleAdminListOrders).Methods(http.MethodGet)
	admin.HandleFunc("/orders/{id}", s.handleGetOrder).Methods(http.MethodGet)
	admin.HandleFunc("/orders/{id}/status", s.handleAdminUpdateStatus).Methods(http.MethodPut)
	admin.HandleFunc("/cards", s.handleAdminCreateCard).Methods(http.MethodPost)
	admin.HandleFunc("/cards/{id}", s.handleAdminUpdateCard).Methods(http.MethodPut)
	admin.HandleFunc("/cards/{id}", s.handleAdminDeleteCard).Methods(http.MethodDelete)

	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	return s.auditLogMiddleware(router)
}

func (s *Server) basicAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username, password, ok := r.BasicAuth()
		if !ok {
			w.Header().Set("WWW-Authenticate", `Basic realm="Restricted"`)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		valid, err := s.users.ValidateUser(r.Context(), username, password)
		if err != nil || !valid {
			w.Header().Set("WWW-Authenticate", `Basic realm="Restricted"`)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondDomainError maps sentinel errors from the inner layers onto HTTP
// status codes. Unknown errors stay opaque 500s so internals do not leak.
func respondDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, catalog.ErrCardNotFound),
		errors.Is(err, editor.ErrSessionNotFound),
		errors.Is(err, storage.ErrOrderNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, storage.ErrEmptyOrder):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, moderation.ErrContentPolicy):
		respondError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, genai.ErrExternalService):
		respondError(w, http.StatusBadGateway, "Generation service is unavailable, please try again")
	default:
		respondError(w, http.StatusInternalServerError, "Internal server error")
	}
}
