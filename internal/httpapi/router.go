package httpapi

import "net/http"

// NewMux returns the raw mux so main() can still attach /shutdown (needs srv+token).
func NewMux(d Deps) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: HealthHandler{}.Health,
	}))

	// Jobs
	jh := JobsHandler{Col: d.Col}
	mux.HandleFunc("/jobs", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: jh.List,
	}))
	mux.HandleFunc("/jobs/export", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: jh.Export,
	}))

	// Config
	ch := ConfigHandler{
		CfgVal:      d.CfgVal,
		UserCfgPath: d.UserCfgPath,
		LoadCfg:     d.LoadCfg,
	}
	mux.HandleFunc("/config", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Get,
		http.MethodPut: ch.Put,
	}))
	mux.HandleFunc("/config/path", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Path,
	}))

	// Secrets
	sh := SecretsHandler{}
	mux.HandleFunc("/api/secrets/openai", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: sh.SetOpenAIKey,
	}))

	// Scrape (pointer receiver: handler owns the cancel func)
	sch := &ScrapeHandler{
		CfgVal:       d.CfgVal,
		ScrapeStatus: d.ScrapeStatus,
		Hub:          d.Hub,
		RunScrape:    d.RunScrape,
	}
	mux.HandleFunc("/scrape/status", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: sch.Status,
	}))
	mux.HandleFunc("/scrape/run", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: sch.Run,
	}))
	mux.HandleFunc("/scrape/cancel", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: sch.Cancel,
	}))

	// Salary estimation
	slh := SalaryHandler{Col: d.Col, CfgVal: d.CfgVal, Hub: d.Hub}
	mux.HandleFunc("/salary/estimate", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: slh.Estimate,
	}))

	// SSE events
	eh := EventsHandler{Hub: d.Hub}
	mux.HandleFunc("/events", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: eh.ServeSSE,
	}))

	return mux
}
