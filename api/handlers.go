package api

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"

	"deepcheck/common/models"
	"deepcheck/detector"
	"deepcheck/history"
	"deepcheck/report"
)

// Handler serves the detection API. Every successful analysis is cached for
// result/report lookup and appended to the history log.
type Handler struct {
	engine      *detector.Engine
	store       *history.Store
	results     *cache.Cache
	reportTitle string
	log         *logrus.Entry
}

// NewHandler wires the engine, history store and result cache together.
func NewHandler(engine *detector.Engine, store *history.Store, resultTTL time.Duration, reportTitle string) *Handler {
	return &Handler{
		engine:      engine,
		store:       store,
		results:     cache.New(resultTTL, 2*resultTTL),
		reportTitle: reportTitle,
		log:         logrus.WithField("component", "api"),
	}
}

// RegisterRoutes attaches the API routes to the router group.
func (h *Handler) RegisterRoutes(apiV1 *gin.RouterGroup) {
	apiV1.POST("/analyze/image", h.handleAnalyzeImage)
	apiV1.POST("/analyze/video", h.handleAnalyzeVideo)
	apiV1.POST("/analyze/audio", h.handleAnalyzeAudio)
	apiV1.POST("/analyze/webcam", h.handleAnalyzeWebcam)
	apiV1.GET("/results/:id", h.handleGetResult)
	apiV1.GET("/results/:id/report", h.handleGetReport)
	apiV1.GET("/history", h.handleHistory)
	apiV1.GET("/history/export", h.handleHistoryExport)
}

// handleAnalyzeImage processes image analysis requests
// @Summary      Analyze an image
// @Description  Run deepfake detection against an image URI
// @Tags         analyze
// @Accept       json
// @Produce      json
// @Param        request body models.AnalyzeRequest true "Image source to analyze"
// @Success      200 {object} models.DetectionResult
// @Failure      400 {object} models.ErrorResponse
// @Router       /analyze/image [post]
func (h *Handler) handleAnalyzeImage(c *gin.Context) {
	var request models.AnalyzeRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.finishAnalysis(c, func() (*models.DetectionResult, error) {
		return h.engine.AnalyzeImage(c.Request.Context(), request.Source)
	})
}

// handleAnalyzeVideo processes video analysis requests
// @Summary      Analyze a video
// @Description  Run deepfake detection against a video URI
// @Tags         analyze
// @Accept       json
// @Produce      json
// @Param        request body models.AnalyzeRequest true "Video source to analyze"
// @Success      200 {object} models.DetectionResult
// @Failure      400 {object} models.ErrorResponse
// @Router       /analyze/video [post]
func (h *Handler) handleAnalyzeVideo(c *gin.Context) {
	var request models.AnalyzeRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.finishAnalysis(c, func() (*models.DetectionResult, error) {
		return h.engine.AnalyzeVideo(c.Request.Context(), request.Source)
	})
}

// handleAnalyzeAudio processes audio analysis requests
// @Summary      Analyze an audio recording
// @Description  Run deepfake detection against an audio URI
// @Tags         analyze
// @Accept       json
// @Produce      json
// @Param        request body models.AnalyzeRequest true "Audio source to analyze"
// @Success      200 {object} models.DetectionResult
// @Failure      400 {object} models.ErrorResponse
// @Router       /analyze/audio [post]
func (h *Handler) handleAnalyzeAudio(c *gin.Context) {
	var request models.AnalyzeRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.finishAnalysis(c, func() (*models.DetectionResult, error) {
		return h.engine.AnalyzeAudio(c.Request.Context(), request.Source)
	})
}

// handleAnalyzeWebcam processes webcam capture analysis requests
// @Summary      Analyze a webcam capture
// @Description  Run deepfake detection against a captured webcam stream
// @Tags         analyze
// @Accept       json
// @Produce      json
// @Param        request body models.WebcamRequest true "Webcam stream to analyze"
// @Success      200 {object} models.DetectionResult
// @Failure      400 {object} models.ErrorResponse
// @Router       /analyze/webcam [post]
func (h *Handler) handleAnalyzeWebcam(c *gin.Context) {
	var request models.WebcamRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.finishAnalysis(c, func() (*models.DetectionResult, error) {
		return h.engine.AnalyzeWebcam(c.Request.Context(), request.StreamID)
	})
}

// finishAnalysis runs the analysis, caches the result and records the
// history entry. With the default fallback policy the engine never fails;
// the error branch only fires under a propagate policy.
func (h *Handler) finishAnalysis(c *gin.Context, analyze func() (*models.DetectionResult, error)) {
	result, err := analyze()
	if err != nil {
		c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Status:  http.StatusBadGateway,
			Message: "Analysis backend unavailable",
			Error:   err.Error(),
		})
		return
	}
	h.results.SetDefault(result.ID, result)
	if err := h.store.Append(result.Entry()); err != nil {
		h.log.WithError(err).Warn("failed to record analysis entry")
	}
	c.JSON(http.StatusOK, result)
}

// handleGetResult returns a recent result by ID
// @Summary      Get a recent analysis result
// @Tags         results
// @Produce      json
// @Param        id path string true "Result ID"
// @Success      200 {object} models.DetectionResult
// @Failure      404 {object} models.ErrorResponse
// @Router       /results/{id} [get]
func (h *Handler) handleGetResult(c *gin.Context) {
	id := c.Param("id")
	v, ok := h.results.Get(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "result not found or expired"})
		return
	}
	c.JSON(http.StatusOK, v.(*models.DetectionResult))
}

// handleGetReport renders a PDF report for a recent result
// @Summary      Download a PDF report for a recent result
// @Tags         results
// @Produce      application/pdf
// @Param        id path string true "Result ID"
// @Success      200 {file} binary
// @Failure      404 {object} models.ErrorResponse
// @Router       /results/{id}/report [get]
func (h *Handler) handleGetReport(c *gin.Context) {
	id := c.Param("id")
	v, ok := h.results.Get(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "result not found or expired"})
		return
	}
	result := v.(*models.DetectionResult)

	var buf bytes.Buffer
	if err := report.Write(&buf, h.reportTitle, result); err != nil {
		h.log.WithError(err).Error("failed to render report")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to render report"})
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=deepcheck-%s.pdf", result.ID))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

// handleHistory lists recent analysis entries
// @Summary      List recent analyses
// @Tags         history
// @Produce      json
// @Param        limit query int false "Maximum entries to return (default: 50)"
// @Success      200 {object} models.HistoryResponse
// @Router       /history [get]
func (h *Handler) handleHistory(c *gin.Context) {
	limit := 50
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	entries, err := h.store.Recent(limit)
	if err != nil {
		h.log.WithError(err).Error("failed to read history")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read history"})
		return
	}
	c.JSON(http.StatusOK, models.HistoryResponse{Entries: entries, Total: len(entries)})
}

// handleHistoryExport downloads the full analysis log as CSV
// @Summary      Export the analysis log as CSV
// @Tags         history
// @Produce      text/csv
// @Success      200 {file} binary
// @Router       /history/export [get]
func (h *Handler) handleHistoryExport(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.store.WriteCSV(&buf); err != nil {
		h.log.WithError(err).Error("failed to export history")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to export history"})
		return
	}
	c.Header("Content-Disposition", "attachment; filename=deepcheck-history.csv")
	c.Data(http.StatusOK, "text/csv", buf.Bytes())
}
