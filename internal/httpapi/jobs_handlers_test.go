package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"immojobs-engine/internal/classify"
	"immojobs-engine/internal/collect"
	"immojobs-engine/internal/domain"
	"immojobs-engine/internal/vocab"
)

func seededCollector(t *testing.T) *collect.Collector {
	t.Helper()
	v := vocab.Default()
	col := collect.New(classify.New(v), v.StopWords)
	col.Seed([]domain.Job{
		{Title: "Agent immobilier", Company: "Century 21", Location: "Paris", Source: "Indeed",
			ScrapedDate: time.Now().Format("2006-01-02")},
		{Title: "Asset Manager", Company: "Gecina", Location: "Paris 8e", Source: "LinkedIn",
			ScrapedDate: time.Now().AddDate(0, 0, -10).Format("2006-01-02")},
		{Title: "Gestionnaire de copropriété", Company: "Foncia", Location: "Paris", Source: "APEC"},
	})
	return col
}

func TestJobsList(t *testing.T) {
	h := JobsHandler{Col: seededCollector(t)}

	req := httptest.NewRequest(http.MethodGet, "/jobs", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Jobs  []domain.Job `json:"jobs"`
		Total int          `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.Total)
	assert.Len(t, resp.Jobs, 3)
}

func TestJobsListFilters(t *testing.T) {
	h := JobsHandler{Col: seededCollector(t)}

	tests := []struct {
		name  string
		query string
		want  int
	}{
		{"free text on title", "?q=agent", 1},
		{"free text on company", "?q=foncia", 1},
		{"source filter case insensitive", "?source=linkedin", 1},
		{"text and source combined", "?q=paris&source=APEC", 1},
		{"no match", "?q=plombier", 0},
		// 10-day-old record falls outside a week; the undated one is kept.
		{"since last week", "?since=1week", 2},
		{"since last month", "?since=1month", 3},
		{"since with source", "?since=1week&source=Indeed", 1},
		{"unknown since ignored", "?since=yesterday", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/jobs"+tt.query, nil)
			rec := httptest.NewRecorder()
			h.List(rec, req)

			var resp struct {
				Total int `json:"total"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.want, resp.Total)
		})
	}
}

func TestJobsExportCSV(t *testing.T) {
	h := JobsHandler{Col: seededCollector(t)}

	req := httptest.NewRequest(http.MethodGet, "/jobs/export?format=csv", nil)
	rec := httptest.NewRecorder()
	h.Export(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "jobs.csv")

	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	assert.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "title,company,location"))
}

func TestJobsExportBadFormat(t *testing.T) {
	h := JobsHandler{Col: seededCollector(t)}

	req := httptest.NewRequest(http.MethodGet, "/jobs/export?format=xml", nil)
	rec := httptest.NewRecorder()
	h.Export(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMethodMux(t *testing.T) {
	mux := NewMux(Deps{Col: seededCollector(t)})

	req := httptest.NewRequest(http.MethodDelete, "/jobs", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
