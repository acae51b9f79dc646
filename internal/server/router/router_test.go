package router

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayurtrace/regulator/internal/domain/models"
	"github.com/ayurtrace/regulator/internal/repository/memory"
	"github.com/ayurtrace/regulator/internal/server/handlers"
	"github.com/ayurtrace/regulator/internal/service/drafting"
	"github.com/ayurtrace/regulator/internal/service/inspection"
	"github.com/ayurtrace/regulator/internal/service/recall"
	"github.com/ayurtrace/regulator/internal/service/tracking"
)

type fakeGenerator struct {
	text string
	err  error
}

func (g *fakeGenerator) Generate(context.Context, string) (string, error) {
	if g.err != nil {
		return "", g.err
	}
	return g.text, nil
}

func newTestRouter(t *testing.T, gen *fakeGenerator) *gin.Engine {
	t.Helper()

	repo, err := memory.NewBatchRepository(memory.SeedBatches(), nil)
	require.NoError(t, err)
	alerts := memory.NewAlertStore(nil)

	trackingSvc := tracking.NewService(repo, nil)
	draftingSvc := drafting.NewService(gen, nil)
	orchestrator := recall.NewOrchestrator(trackingSvc, draftingSvc, alerts, true, nil)
	inspectionSvc := inspection.NewService(trackingSvc, draftingSvc, alerts, nil)

	return New(Handlers{
		Batches:     handlers.NewBatchHandler(trackingSvc, nil),
		Alerts:      handlers.NewAlertHandler(alerts, nil),
		Recalls:     handlers.NewRecallHandler(orchestrator, nil),
		Drafts:      handlers.NewDraftHandler(draftingSvc, alerts, nil),
		Inspections: handlers.NewInspectionHandler(inspectionSvc, nil),
	}, nil)
}

func doJSON(t *testing.T, engine *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestListBatchesAndStats(t *testing.T) {
	engine := newTestRouter(t, &fakeGenerator{text: "draft"})

	rec := doJSON(t, engine, http.MethodGet, "/api/v1/batches", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var listResp struct {
		Batches []models.Batch `json:"batches"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listResp))
	assert.Len(t, listResp.Batches, 6)

	rec = doJSON(t, engine, http.MethodGet, "/api/v1/stats", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var stats models.Stats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, 6, stats.TotalBatches)
	assert.Equal(t, "83.3%", stats.ComplianceRate)
}

func TestGetBatchNotFound(t *testing.T) {
	engine := newTestRouter(t, &fakeGenerator{text: "draft"})

	rec := doJSON(t, engine, http.MethodGet, "/api/v1/batches/NOPE-XX-999", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRecallWorkflowOverHTTP(t *testing.T) {
	engine := newTestRouter(t, &fakeGenerator{text: "URGENT RECALL NOTICE"})

	rec := doJSON(t, engine, http.MethodPost, "/api/v1/batches/BRA-RJ-003/recall", "")
	require.Equal(t, http.StatusCreated, rec.Code)

	// Empty reason is refused at the validation gate.
	rec = doJSON(t, engine, http.MethodPost, "/api/v1/batches/BRA-RJ-003/recall/draft", `{"reason":""}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, engine, http.MethodPost, "/api/v1/batches/BRA-RJ-003/recall/draft", `{"reason":"Pesticide levels exceed limits"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var wf recall.Workflow
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &wf))
	assert.Equal(t, recall.StateAwaitingCommunicationApproval, wf.State)
	assert.Equal(t, "URGENT RECALL NOTICE", wf.Communication)

	rec = doJSON(t, engine, http.MethodPost, "/api/v1/batches/BRA-RJ-003/recall/confirm", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var confirmResp struct {
		Batch    models.Batch    `json:"batch"`
		Workflow recall.Workflow `json:"workflow"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &confirmResp))
	assert.Equal(t, models.StatusRecalled, confirmResp.Batch.Status)
	assert.Equal(t, recall.StateCompleted, confirmResp.Workflow.State)

	// The recall raised a danger alert.
	rec = doJSON(t, engine, http.MethodGet, "/api/v1/alerts", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var alertsResp struct {
		Alerts []models.Alert `json:"alerts"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &alertsResp))
	require.Len(t, alertsResp.Alerts, 1)
	assert.Equal(t, models.AlertDanger, alertsResp.Alerts[0].Type)
}

func TestRecallDraftFailureSurfacesBadGateway(t *testing.T) {
	engine := newTestRouter(t, &fakeGenerator{err: errors.New("quota exceeded")})

	rec := doJSON(t, engine, http.MethodPost, "/api/v1/batches/BRA-RJ-003/recall", "")
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, engine, http.MethodPost, "/api/v1/batches/BRA-RJ-003/recall/draft", `{"reason":"contamination"}`)
	assert.Equal(t, http.StatusBadGateway, rec.Code)

	// The workflow is still open and retryable.
	rec = doJSON(t, engine, http.MethodGet, "/api/v1/batches/BRA-RJ-003/recall", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var wf recall.Workflow
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &wf))
	assert.Equal(t, recall.StateAwaitingJustification, wf.State)
}

func TestRecallCancelOverHTTP(t *testing.T) {
	engine := newTestRouter(t, &fakeGenerator{text: "draft"})

	rec := doJSON(t, engine, http.MethodPost, "/api/v1/batches/BRA-RJ-003/recall", "")
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, engine, http.MethodDelete, "/api/v1/batches/BRA-RJ-003/recall", "")
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, engine, http.MethodGet, "/api/v1/batches/BRA-RJ-003/recall", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRuleDraftOverHTTP(t *testing.T) {
	engine := newTestRouter(t, &fakeGenerator{text: "AYUSH Ministry Directive - 2024/03-A"})

	rec := doJSON(t, engine, http.MethodPost, "/api/v1/drafts/rule", `{"topic":"mandatory geo-tagging"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Directive string `json:"directive"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Directive, "Directive")

	rec = doJSON(t, engine, http.MethodPost, "/api/v1/drafts/rule", `{"topic":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestScheduleInspectionOverHTTP(t *testing.T) {
	engine := newTestRouter(t, &fakeGenerator{text: "verify pesticide levels"})

	rec := doJSON(t, engine, http.MethodGet, "/api/v1/inspections/eligible", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var eligibleResp struct {
		Batches []models.Batch `json:"batches"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &eligibleResp))
	require.Len(t, eligibleResp.Batches, 1)

	rec = doJSON(t, engine, http.MethodPost, "/api/v1/inspections", `{"batch_id":"BRA-RJ-003","suggest":true}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Batch models.Batch `json:"batch"`
		Notes string       `json:"notes"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "verify pesticide levels", resp.Notes)
	assert.Equal(t, models.StatusTesting, resp.Batch.Status)

	// Shipped batches cannot be inspected.
	rec = doJSON(t, engine, http.MethodPost, "/api/v1/inspections", `{"batch_id":"ASH-UP-001"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDismissAlertOverHTTP(t *testing.T) {
	engine := newTestRouter(t, &fakeGenerator{text: "draft"})

	rec := doJSON(t, engine, http.MethodDelete, "/api/v1/alerts/UNKNOWN", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestHealthz(t *testing.T) {
	engine := newTestRouter(t, &fakeGenerator{text: "draft"})

	rec := doJSON(t, engine, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}
