package server

import (
	"encoding/json"
	"net/http"

	"github.com/alebedeva/cardforge/internal/genai"
	"github.com/alebedeva/cardforge/internal/qr"
)

func (s *Server) handleGenerateText(w http.ResponseWriter, r *http.Request) {
	var req genai.TextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Prompt == "" {
		respondError(w, http.StatusBadRequest, "Missing prompt")
		return
	}

	result, err := s.generator.GenerateText(r.Context(), req)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleGenerateImage(w http.ResponseWriter, r *http.Request) {
	var req genai.ImageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Prompt == "" {
		respondError(w, http.StatusBadRequest, "Missing prompt")
		return
	}

	result, err := s.generator.GenerateImage(r.Context(), req)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleRefineImage(w http.ResponseWriter, r *http.Request) {
	var req genai.RefineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.PreviousResponseID == "" {
		respondError(w, http.StatusBadRequest, "Missing previous_response_id")
		return
	}
	if req.RefinementPrompt == "" {
		respondError(w, http.StatusBadRequest, "Missing refinement_prompt")
		return
	}

	result, err := s.generator.RefineImage(r.Context(), req)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// handleQRCode renders a QR code for a video-message link as a data URL, so
// the preview can be embedded straight into the card proof.
func (s *Server) handleQRCode(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Target string `json:"target"`
		Size   int    `json:"size"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Target == "" {
		respondError(w, http.StatusBadRequest, "Missing target")
		return
	}

	var (
		dataURL string
		err     error
	)
	if req.Size > 0 {
		dataURL, err = qr.DataURLSized(req.Target, req.Size)
	} else {
		dataURL, err = qr.DataURL(req.Target)
	}
	if err != nil {
		respondError(w, http.StatusBadRequest, "Error: "+err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"data_url": dataURL,
	})
}
