package api

import (
	"bytes"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deepcheck/common/models"
	"deepcheck/detector"
	"deepcheck/history"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newTestRouter builds a router whose first analysis verdict is manipulated.
func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()

	rng := rand.New(rand.NewSource(42))
	toggle := detector.NewToggle(rng)
	toggle.Seed(false) // next verdict: manipulated
	engine := detector.NewEngine(detector.WithRand(rng), detector.WithToggle(toggle))

	store, err := history.Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	handler := NewHandler(engine, store, time.Minute, "DeepCheck Analysis Report")

	router := gin.New()
	handler.RegisterRoutes(router.Group("/api/v1"))
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeResult(t *testing.T, w *httptest.ResponseRecorder) models.DetectionResult {
	t.Helper()
	var res models.DetectionResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	return res
}

func TestAnalyzeImageEndpoint(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/analyze/image",
		models.AnalyzeRequest{Source: "https://example.com/photo.jpg"})
	require.Equal(t, http.StatusOK, w.Code)

	res := decodeResult(t, w)
	assert.NotEmpty(t, res.ID)
	assert.Equal(t, models.MediaTypeImage, res.Metadata.MediaType)
	assert.True(t, res.IsManipulated)
	assert.NotEmpty(t, res.Analysis.HighlightedAreas)
}

func TestAnalyzeEndpointsAlternate(t *testing.T) {
	router := newTestRouter(t)

	first := decodeResult(t, doJSON(t, router, http.MethodPost, "/api/v1/analyze/image",
		models.AnalyzeRequest{Source: "https://example.com/a.jpg"}))
	second := decodeResult(t, doJSON(t, router, http.MethodPost, "/api/v1/analyze/image",
		models.AnalyzeRequest{Source: "https://example.com/b.jpg"}))

	assert.NotEqual(t, first.IsManipulated, second.IsManipulated)
}

func TestAnalyzeImageBadRequest(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/analyze/image", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAnalyzeWebcamEndpoint(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/analyze/webcam",
		models.WebcamRequest{StreamID: "stream-1"})
	require.Equal(t, http.StatusOK, w.Code)

	res := decodeResult(t, w)
	assert.Equal(t, models.MediaTypeVideo, res.Metadata.MediaType)
	assert.Equal(t, 5, res.Metadata.FrameCount)
}

func TestGetResultRoundTrip(t *testing.T) {
	router := newTestRouter(t)

	analyzed := decodeResult(t, doJSON(t, router, http.MethodPost, "/api/v1/analyze/audio",
		models.AnalyzeRequest{Source: "https://example.com/voice.mp3"}))

	w := doJSON(t, router, http.MethodGet, "/api/v1/results/"+analyzed.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	fetched := decodeResult(t, w)
	assert.Equal(t, analyzed.ID, fetched.ID)
	assert.Equal(t, analyzed.Confidence, fetched.Confidence)
}

func TestGetResultNotFound(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/v1/results/no-such-id", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetReportEndpoint(t *testing.T) {
	router := newTestRouter(t)

	analyzed := decodeResult(t, doJSON(t, router, http.MethodPost, "/api/v1/analyze/image",
		models.AnalyzeRequest{Source: "https://example.com/photo.jpg"}))

	w := doJSON(t, router, http.MethodGet, "/api/v1/results/"+analyzed.ID+"/report", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), analyzed.ID)
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF-")))
}

func TestHistoryEndpoints(t *testing.T) {
	router := newTestRouter(t)

	first := decodeResult(t, doJSON(t, router, http.MethodPost, "/api/v1/analyze/image",
		models.AnalyzeRequest{Source: "https://example.com/a.jpg"}))
	second := decodeResult(t, doJSON(t, router, http.MethodPost, "/api/v1/analyze/video",
		models.AnalyzeRequest{Source: "https://example.com/b.mp4"}))

	w := doJSON(t, router, http.MethodGet, "/api/v1/history", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.HistoryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 2, resp.Total)

	ids := []string{resp.Entries[0].ID, resp.Entries[1].ID}
	assert.Contains(t, ids, first.ID)
	assert.Contains(t, ids, second.ID)

	export := doJSON(t, router, http.MethodGet, "/api/v1/history/export", nil)
	require.Equal(t, http.StatusOK, export.Code)
	assert.Equal(t, "text/csv", export.Header().Get("Content-Type"))

	lines := strings.Split(strings.TrimSpace(export.Body.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "id,timestamp,media_type"))
	assert.Contains(t, export.Body.String(), first.ID)
	assert.Contains(t, export.Body.String(), second.ID)
}
