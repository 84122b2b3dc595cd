package server

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/alebedeva/cardforge/internal/domain"
	"github.com/alebedeva/cardforge/internal/editor"
)

type sessionStateResponse struct {
	SessionID     string               `json:"session_id"`
	CardID        string               `json:"card_id"`
	Customization domain.Customization `json:"customization"`
	CanUndo       bool                 `json:"can_undo"`
	CanRedo       bool                 `json:"can_redo"`
	HistoryLen    int                  `json:"history_len"`
}

func sessionState(id string, h *editor.History) sessionStateResponse {
	return sessionStateResponse{
		SessionID:     id,
		CardID:        h.CardID(),
		Customization: h.Current(),
		CanUndo:       h.CanUndo(),
		CanRedo:       h.CanRedo(),
		HistoryLen:    h.Len(),
	}
}

func (s *Server) handleOpenSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CardID string `json:"card_id"`
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

	sessionID := s.sessions.Open(card)

	var state sessionStateResponse
	_ = s.sessions.With(sessionID, func(h *editor.History) {
		state = sessionState(sessionID, h)
	})
	respondJSON(w, http.StatusCreated, state)
}

func (s *Server) handleCloseSession(w http.ResponseWriter, r *http.Request) {
	s.sessions.Close(mux.Vars(r)["id"])
	respondJSON(w, http.StatusOK, map[string]string{
		"message": "Session closed",
	})
}

func (s *Server) handleSessionState(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	var state sessionStateResponse
	err := s.sessions.With(sessionID, func(h *editor.History) {
		state = sessionState(sessionID, h)
	})
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, state)
}

func (s *Server) handleCommit(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	var cust domain.Customization
	if err := json.NewDecoder(r.Body).Decode(&cust); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var state sessionStateResponse
	err := s.sessions.With(sessionID, func(h *editor.History) {
		h.Commit(cust)
		state = sessionState(sessionID, h)
	})
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, state)
}

func (s *Server) handleUndo(w http.ResponseWriter, r *http.Request) {
	s.handleHistoryStep(w, r, func(h *editor.History) { h.Undo() })
}

func (s *Server) handleRedo(w http.ResponseWriter, r *http.Request) {
	s.handleHistoryStep(w, r, func(h *editor.History) { h.Redo() })
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	s.handleHistoryStep(w, r, func(h *editor.History) { h.Reset() })
}

func (s *Server) handleHistoryStep(w http.ResponseWriter, r *http.Request, step func(*editor.History)) {
	sessionID := mux.Vars(r)["id"]

	var state sessionStateResponse
	err := s.sessions.With(sessionID, func(h *editor.History) {
		step(h)
		state = sessionState(sessionID, h)
	})
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, state)
}
