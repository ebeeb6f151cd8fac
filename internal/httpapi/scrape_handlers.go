package httpapi

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"immojobs-engine/internal/config"
	"immojobs-engine/internal/domain"
	"immojobs-engine/internal/events"
	"immojobs-engine/internal/scrape"
	"immojobs-engine/internal/scrape/types"
)

type ScrapeHandler struct {
	CfgVal       *atomic.Value // config.Config
	ScrapeStatus *atomic.Value // types.Status
	Hub          *events.Hub
	RunScrape    func(ctx context.Context, cfg config.Config, onNewJob func(domain.Job)) (scrape.Result, error)

	mu     sync.Mutex
	cancel context.CancelFunc
}

func (h *ScrapeHandler) Status(w http.ResponseWriter, r *http.Request) {
	st := h.ScrapeStatus.Load().(types.Status)
	writeJSON(w, st)
}

func (h *ScrapeHandler) Run(w http.ResponseWriter, r *http.Request) {
	st := h.ScrapeStatus.Load().(types.Status)
	if st.Running {
		writeJSON(w, map[string]any{"ok": false, "msg": "already running"})
		return
	}

	h.ScrapeStatus.Store(types.Status{
		LastRunAt: time.Now().Format(time.RFC3339),
		Running:   true,
		LastOkAt:  st.LastOkAt,
	})

	ctx, cancel := context.WithCancel(context.Background())
	h.mu.Lock()
	h.cancel = cancel
	h.mu.Unlock()

	reqID := RequestIDFrom(r.Context())
	go func() {
		defer func() {
			h.mu.Lock()
			h.cancel = nil
			h.mu.Unlock()
			cancel()
		}()

		cfg := h.CfgVal.Load().(config.Config)
		h.Hub.Publish(events.MakeEvent(reqID, events.TypeScrapeStarted, 1, nil))

		res, err := h.RunScrape(ctx, cfg, func(j domain.Job) {
			h.Hub.Publish(events.MakeEvent(reqID, events.TypeJobAdded, 1, j))
		})

		now := time.Now().Format(time.RFC3339)
		next := h.ScrapeStatus.Load().(types.Status)
		next.Running = false
		next.LastRunAt = now
		next.LastAdded = res.Added
		next.LastRemoved = res.Removed
		if err != nil {
			next.LastError = err.Error()
		} else {
			next.LastError = ""
			next.LastOkAt = now
		}
		h.ScrapeStatus.Store(next)

		switch {
		case err != nil:
			h.Hub.Publish(events.MakeEvent(reqID, events.TypeScrapeFinished, 1, map[string]any{"error": err.Error()}))
		case res.Interrupted:
			h.Hub.Publish(events.MakeEvent(reqID, events.TypeScrapeCancelled, 1, res))
		default:
			h.Hub.Publish(events.MakeEvent(reqID, events.TypeScrapeFinished, 1, res))
		}
	}()

	writeJSON(w, map[string]any{"ok": true})
}

func (h *ScrapeHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	cancel := h.cancel
	h.mu.Unlock()

	if cancel == nil {
		writeJSON(w, map[string]any{"ok": false, "msg": "not running"})
		return
	}
	cancel()
	writeJSON(w, map[string]any{"ok": true})
}
