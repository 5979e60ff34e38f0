// Package server exposes the break-even analysis pipeline as a JSON API.
// Callers are expected to supply records already scoped to one farm and
// authorized upstream; no tenant filtering happens here.
package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/okonta/poultry-breakeven/internal/analysis"
	"github.com/okonta/poultry-breakeven/pkg/breakeven"
	"github.com/okonta/poultry-breakeven/pkg/datetime"
	"github.com/okonta/poultry-breakeven/pkg/output"
	"github.com/okonta/poultry-breakeven/pkg/records"
	"github.com/okonta/poultry-breakeven/pkg/validation"
)

type handler struct {
	logger  *zap.Logger
	svc     *analysis.Service
	version string
}

// NewRouter wires the gin engine with the API routes and middlewares.
func NewRouter(logger *zap.Logger, cfg *Config, version string) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	if version == "" {
		version = "dev"
	}

	h := &handler{logger: logger, svc: analysis.NewService(logger), version: version}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestIDMiddleware())
	r.Use(zapLoggerMiddleware(logger))
	if cfg != nil && cfg.BodySizeBytes() > 0 {
		r.Use(bodyLimitMiddleware(cfg.BodySizeBytes()))
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.GET("/version", h.handleVersion)

	v1 := api.Group("/v1")
	v1.POST("/analysis", h.handleAnalysis)
	v1.POST("/breakeven", h.handleBreakEven)
	v1.POST("/aggregates", h.handleAggregates)

	logger.Info("router initialized")
	return r
}

type analysisRequest struct {
	Sales            []records.SaleRecord    `json:"sales"`
	Expenses         []records.ExpenseRecord `json:"expenses"`
	TimeframeMonths  int                     `json:"timeframeMonths"`
	ProjectionMonths int                     `json:"projectionMonths"`
	AsOf             string                  `json:"asOf"`
}

type analysisResponse struct {
	Params     breakeven.Params   `json:"params"`
	Quality    breakeven.Quality  `json:"dataQuality"`
	Results    *breakeven.Results `json:"results,omitempty"`
	Aggregates interface{}        `json:"aggregates"`
	CSV        string             `json:"csv,omitempty"`
	Duration   string             `json:"duration"`
}

func (h *handler) handleAnalysis(c *gin.Context) {
	start := time.Now()

	var req analysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), "server.handleAnalysis")
		return
	}

	if req.TimeframeMonths == 0 {
		req.TimeframeMonths = 6
	}
	if err := validation.ValidateTimeframe(req.TimeframeMonths); err != nil {
		h.respondError(c, http.StatusBadRequest, err.Error(), "server.handleAnalysis")
		return
	}

	asOf, err := parseAsOf(req.AsOf)
	if err != nil {
		h.respondError(c, http.StatusBadRequest, err.Error(), "server.handleAnalysis")
		return
	}

	report := h.svc.Analyze(analysis.Request{
		Sales:            req.Sales,
		Expenses:         req.Expenses,
		TimeframeMonths:  req.TimeframeMonths,
		ProjectionMonths: req.ProjectionMonths,
		AsOf:             asOf,
	})

	elapsed := time.Since(start)
	response := analysisResponse{
		Params:     report.Params,
		Quality:    report.Quality,
		Results:    report.Results,
		Aggregates: report.Aggregates,
		Duration:   elapsed.String(),
	}
	if report.Results != nil {
		response.CSV = output.CsvString(report.Results)
	}

	h.logger.Info("analysis computed",
		zap.String("op", "server.handleAnalysis"),
		zap.String("requestId", requestID(c)),
		zap.Int("sales", len(req.Sales)),
		zap.Int("expenses", len(req.Expenses)),
		zap.Bool("sufficient", report.Quality.HasSufficientData),
		zap.Duration("duration", elapsed),
	)

	c.JSON(http.StatusOK, response)
}

type breakEvenRequest struct {
	breakeven.Params
	AsOf string `json:"asOf"`
}

func (h *handler) handleBreakEven(c *gin.Context) {
	var req breakEvenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), "server.handleBreakEven")
		return
	}

	asOf, err := parseAsOf(req.AsOf)
	if err != nil {
		h.respondError(c, http.StatusBadRequest, err.Error(), "server.handleBreakEven")
		return
	}

	results, err := h.svc.Project(req.Params, asOf)
	if err != nil {
		status := http.StatusInternalServerError
		if analysis.IsParamError(err) {
			status = http.StatusUnprocessableEntity
		}
		h.respondError(c, status, err.Error(), "server.handleBreakEven")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"results": results,
		"csv":     output.CsvString(results),
	})
}

type aggregatesRequest struct {
	Sales    []records.SaleRecord    `json:"sales"`
	Expenses []records.ExpenseRecord `json:"expenses"`
}

func (h *handler) handleAggregates(c *gin.Context) {
	var req aggregatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), "server.handleAggregates")
		return
	}

	fill := c.Query("fill") == "1" || c.Query("fill") == "true"
	aggregates := h.svc.Aggregates(req.Sales, req.Expenses, fill)
	c.JSON(http.StatusOK, gin.H{"aggregates": aggregates})
}

func (h *handler) handleVersion(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"version": h.version})
}

func (h *handler) respondError(c *gin.Context, status int, msg string, op string) {
	h.logger.Error("request failed",
		zap.String("op", op),
		zap.String("requestId", requestID(c)),
		zap.Int("status", status),
		zap.String("error", msg),
	)
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}

// parseAsOf accepts an optional bare date or timestamp and defaults to the
// current UTC instant when absent.
func parseAsOf(value string) (time.Time, error) {
	if value == "" {
		return time.Now().UTC(), nil
	}
	t, err := datetime.ParseRecordDate(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid asOf date %q", value)
	}
	return t, nil
}

const requestIDKey = "requestId"

func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-Id")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Writer.Header().Set("X-Request-Id", id)
		c.Next()
	}
}

func requestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("requestId", requestID(c)),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}

func bodyLimitMiddleware(limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		}
		c.Next()
	}
}
