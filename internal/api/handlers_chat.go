package api

import (
	"encoding/json"
	"net/http"
	"strings"
)

const maxQuestionLen = 4000

type chatRequest struct {
	Question string `json:"question"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	job, result := s.completedDocument(w, r)
	if result == nil {
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	question := strings.TrimSpace(req.Question)
	if question == "" {
		jsonError(w, "question is required", http.StatusBadRequest)
		return
	}
	if len(question) > maxQuestionLen {
		jsonError(w, "question too long", http.StatusBadRequest)
		return
	}

	answer, err := s.chat.Ask(r.Context(), result.Text, question)
	if err != nil {
		s.log.Error("chat failed", "document_id", job.ID, "error", err)
		jsonError(w, err.Error(), http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"answer": answer})
}
