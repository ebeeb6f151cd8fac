package httpapi

import (
	"encoding/json"
	"net/http"
	"sync/atomic"

	"immojobs-engine/internal/collect"
	"immojobs-engine/internal/config"
	"immojobs-engine/internal/events"
	"immojobs-engine/internal/salary"
	"immojobs-engine/internal/secrets"
)

const defaultFeePercent = 25

type SalaryHandler struct {
	Col    *collect.Collector
	CfgVal *atomic.Value // stores config.Config
	Hub    *events.Hub
}

type estimateReq struct {
	Index int `json:"index"`
}

type estimateResp struct {
	Index    int     `json:"index"`
	Title    string  `json:"title"`
	Company  string  `json:"company"`
	Salary   float64 `json:"salary"`
	Fee      float64 `json:"fee"`
	Currency string  `json:"currency"`
	Error    string  `json:"error,omitempty"`
}

// Estimate asks the model for an annual salary figure for one job in
// the collection. Estimation failures degrade to a zero figure so the
// UI never blocks on a flaky API.
func (h SalaryHandler) Estimate(w http.ResponseWriter, r *http.Request) {
	var req estimateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	jobs := h.Col.Snapshot()
	if req.Index < 0 || req.Index >= len(jobs) {
		WriteError(w, r, http.StatusBadRequest, "bad_index", "job index out of range")
		return
	}
	job := jobs[req.Index]

	key, err := secrets.GetOpenAIKey()
	if err != nil {
		WriteError(w, r, http.StatusBadRequest, "no_api_key", err.Error())
		return
	}

	cfg := h.CfgVal.Load().(config.Config)
	fee := cfg.Salary.FeePercent
	if fee == 0 {
		fee = defaultFeePercent
	}

	resp := estimateResp{
		Index:    req.Index,
		Title:    job.Title,
		Company:  job.Company,
		Currency: "EUR",
	}

	est, err := salary.New(key, cfg.Salary.Model, fee).Evaluate(r.Context(), job.Title, job.Company)
	if err != nil {
		resp.Error = err.Error()
		writeJSON(w, resp)
		return
	}

	resp.Salary = est.Salary
	resp.Fee = est.Fee
	h.Col.Enrich(req.Index, est.Salary, est.Fee)

	reqID := RequestIDFrom(r.Context())
	h.Hub.Publish(events.MakeEvent(reqID, events.TypeSalaryEstimated, 1, resp))
	writeJSON(w, resp)
}
