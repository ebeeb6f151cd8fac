package httpapi

import (
	"encoding/json"
	"net/http"

	"immojobs-engine/internal/secrets"
)

type SecretsHandler struct{}

type setOpenAIKeyReq struct {
	APIKey string `json:"api_key"`
}

func (h SecretsHandler) SetOpenAIKey(w http.ResponseWriter, r *http.Request) {
	var req setOpenAIKeyReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	if err := secrets.SetOpenAIKey(req.APIKey); err != nil {
		http.Error(w, "failed to store API key: "+err.Error(), http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
