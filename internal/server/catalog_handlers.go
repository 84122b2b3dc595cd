package server

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/alebedeva/cardforge/internal/domain"
)

func (s *Server) handleListCards(w http.ResponseWriter, r *http.Request) {
	cards := s.catalog.List()
	if occasion := r.URL.Query().Get("occasion"); occasion != "" {
		filtered := cards[:0]
		for _, card := range cards {
			if card.Occasion == occasion {
				filtered = append(filtered, card)
			}
		}
		cards = filtered
	}
	respondJSON(w, http.StatusOK, cards)
}

func (s *Server) handleGetCard(w http.ResponseWriter, r *http.Request) {
	cardID := mux.Vars(r)["id"]
	if cardID == "" {
		respondError(w, http.StatusBadRequest, "Missing card ID")
		return
	}

	card, err := s.catalog.Get(cardID)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, card)
}

func (s *Server) handleAdminCreateCard(w http.ResponseWriter, r *http.Request) {
	var card domain.Card
	if err := json.NewDecoder(r.Body).Decode(&card); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if card.ID == "" || card.Title == "" || card.PriceMinor <= 0 {
		respondError(w, http.StatusBadRequest, "Missing id, title or price")
		return
	}

	s.catalog.Insert(card)
	respondJSON(w, http.StatusCreated, map[string]string{
		"message": "Card created successfully",
		"id":      card.ID,
	})
}

func (s *Server) handleAdminUpdateCard(w http.ResponseWriter, r *http.Request) {
	cardID := mux.Vars(r)["id"]

	var card domain.Card
	if err := json.NewDecoder(r.Body).Decode(&card); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	card.ID = cardID

	if err := s.catalog.Update(card); err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"message": "Card updated successfully",
	})
}

func (s *Server) handleAdminDeleteCard(w http.ResponseWriter, r *http.Request) {
	cardID := mux.Vars(r)["id"]

	if err := s.catalog.Delete(cardID); err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"message": "Card deleted successfully",
	})
}
