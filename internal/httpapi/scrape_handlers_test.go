package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"immojobs-engine/internal/config"
	"immojobs-engine/internal/domain"
	"immojobs-engine/internal/events"
	"immojobs-engine/internal/scrape"
	"immojobs-engine/internal/scrape/types"
)

func newScrapeHandler(run func(ctx context.Context, cfg config.Config, onNewJob func(domain.Job)) (scrape.Result, error)) *ScrapeHandler {
	var cfgVal, statusVal atomic.Value
	cfgVal.Store(config.Config{})
	statusVal.Store(types.Status{})

	return &ScrapeHandler{
		CfgVal:       &cfgVal,
		ScrapeStatus: &statusVal,
		Hub:          events.NewHub(),
		RunScrape:    run,
	}
}

func waitForIdle(t *testing.T, h *ScrapeHandler) types.Status {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		st := h.ScrapeStatus.Load().(types.Status)
		if !st.Running {
			return st
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("scrape never finished")
	return types.Status{}
}

func TestScrapeRunUpdatesStatus(t *testing.T) {
	done := make(chan struct{})
	h := newScrapeHandler(func(ctx context.Context, cfg config.Config, onNewJob func(domain.Job)) (scrape.Result, error) {
		defer close(done)
		onNewJob(domain.Job{Title: "Agent immobilier"})
		return scrape.Result{Added: 1, Removed: 2}, nil
	})

	rec := httptest.NewRecorder()
	h.Run(rec, httptest.NewRequest(http.MethodPost, "/scrape/run", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	<-done
	st := waitForIdle(t, h)
	assert.Equal(t, 1, st.LastAdded)
	assert.Equal(t, 2, st.LastRemoved)
	assert.Empty(t, st.LastError)
	assert.NotEmpty(t, st.LastOkAt)
}

func TestScrapeRunRejectsConcurrent(t *testing.T) {
	release := make(chan struct{})
	h := newScrapeHandler(func(ctx context.Context, cfg config.Config, onNewJob func(domain.Job)) (scrape.Result, error) {
		<-release
		return scrape.Result{}, nil
	})

	rec := httptest.NewRecorder()
	h.Run(rec, httptest.NewRequest(http.MethodPost, "/scrape/run", nil))

	rec2 := httptest.NewRecorder()
	h.Run(rec2, httptest.NewRequest(http.MethodPost, "/scrape/run", nil))

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec2.Body.Bytes(), &resp))
	assert.Equal(t, false, resp["ok"])

	close(release)
	waitForIdle(t, h)
}

func TestScrapeCancel(t *testing.T) {
	started := make(chan struct{})
	h := newScrapeHandler(func(ctx context.Context, cfg config.Config, onNewJob func(domain.Job)) (scrape.Result, error) {
		close(started)
		<-ctx.Done()
		return scrape.Result{Interrupted: true}, nil
	})

	h.Run(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/scrape/run", nil))
	<-started

	rec := httptest.NewRecorder()
	h.Cancel(rec, httptest.NewRequest(http.MethodPost, "/scrape/cancel", nil))

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["ok"])

	waitForIdle(t, h)
}

func TestScrapeCancelWhenIdle(t *testing.T) {
	h := newScrapeHandler(nil)

	rec := httptest.NewRecorder()
	h.Cancel(rec, httptest.NewRequest(http.MethodPost, "/scrape/cancel", nil))

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, false, resp["ok"])
}

func TestScrapeRunRecordsError(t *testing.T) {
	h := newScrapeHandler(func(ctx context.Context, cfg config.Config, onNewJob func(domain.Job)) (scrape.Result, error) {
		return scrape.Result{}, assert.AnError
	})

	h.Run(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/scrape/run", nil))

	st := waitForIdle(t, h)
	assert.Equal(t, assert.AnError.Error(), st.LastError)
	assert.Empty(t, st.LastOkAt)
}
