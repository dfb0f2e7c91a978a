package handler

import (
	"log/slog"
	"time"

	json "github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"

	"retention-engine/internal/engine"
	"retention-engine/internal/metrics"
	"retention-engine/internal/model"
)

const (
	pathEvaluate = "/retention-policies/evaluate"
	pathResolve  = "/retention-policies/resolve"
	pathHealth   = "/health"
	pathMetrics  = "/metrics"
)

// Handler routes HTTP requests to the engine.
type Handler struct {
	engine  *engine.Engine
	logger  *slog.Logger
	metrics fasthttp.RequestHandler
}

// New creates a handler. When m is nil the /metrics endpoint answers 404.
func New(e *engine.Engine, m *metrics.Metrics, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	h := &Handler{engine: e, logger: logger.With("component", "http")}
	if reg := m.Registry(); reg != nil {
		h.metrics = fasthttpadaptor.NewFastHTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	}
	return h
}

func (h *Handler) Handle(ctx *fasthttp.RequestCtx) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			h.logger.Error("request panicked", "path", string(ctx.Path()), "panic", r)
			writeError(ctx, fasthttp.StatusInternalServerError, "Internal server error")
		}
	}()

	switch string(ctx.Path()) {
	case pathEvaluate:
		if h.allow(ctx, fasthttp.MethodPost) {
			h.handleEvaluate(ctx)
		}
	case pathResolve:
		if h.allow(ctx, fasthttp.MethodPost) {
			h.handleResolve(ctx)
		}
	case pathHealth:
		if h.allow(ctx, fasthttp.MethodGet) {
			writeJSON(ctx, fasthttp.StatusOK, map[string]string{"status": "ok"})
		}
	case pathMetrics:
		if h.metrics == nil {
			writeError(ctx, fasthttp.StatusNotFound, "Metrics are disabled")
		} else if h.allow(ctx, fasthttp.MethodGet) {
			h.metrics(ctx)
		}
	default:
		writeError(ctx, fasthttp.StatusNotFound, "Not found")
	}

	h.logger.Debug("request served",
		"method", string(ctx.Method()),
		"path", string(ctx.Path()),
		"status", ctx.Response.StatusCode(),
		"duration_ms", time.Since(start).Milliseconds(),
	)
}

func (h *Handler) allow(ctx *fasthttp.RequestCtx, method string) bool {
	if string(ctx.Method()) != method {
		ctx.Response.Header.Set("Allow", method)
		writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed")
		return false
	}
	return true
}

func (h *Handler) handleEvaluate(ctx *fasthttp.RequestCtx) {
	var req model.EvaluationRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if len(req.Defendants) == 0 {
		writeError(ctx, fasthttp.StatusBadRequest, "At least one defendant is required")
		return
	}

	writeJSON(ctx, fasthttp.StatusOK, h.engine.Process(ctx, &req))
}

func (h *Handler) handleResolve(ctx *fasthttp.RequestCtx) {
	var req model.ResolveRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if len(req.Policies) == 0 {
		writeError(ctx, fasthttp.StatusBadRequest, "At least one policy is required")
		return
	}
	for _, p := range req.Policies {
		if !p.PolicyType.Valid() {
			writeError(ctx, fasthttp.StatusBadRequest, "Unknown policy type: "+string(p.PolicyType))
			return
		}
	}

	resolved, err := h.engine.ResolvePriority(req.Policies)
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, err.Error())
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, resolved)
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, v interface{}) {
	b, err := json.Marshal(v)
	if err != nil {
		writeError(ctx, fasthttp.StatusInternalServerError, "Failed to encode response")
		return
	}
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(b)
}

func writeError(ctx *fasthttp.RequestCtx, status int, message string) {
	b, _ := json.Marshal(model.ErrorResponse{
		Status:  status,
		Message: message,
	})
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(b)
}
