package api

import (
	"encoding/json"
	"net/http"
)

func (s *Server) handleLLMStats(w http.ResponseWriter, r *http.Request) {
	resp := map[string]any{
		"ocr": map[string]any{
			"model": s.ocr.Model(),
			"stats": s.ocr.Stats.Snapshot(),
		},
		"chat": map[string]any{
			"model": s.chat.Model(),
			"stats": s.chat.Stats.Snapshot(),
		},
		"queue_depth": s.orchestrator.QueueDepth(),
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
