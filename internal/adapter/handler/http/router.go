package http

import (
	"github.com/fasthttp/router"
	"github.com/google/uuid"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

// RegisterRoutes sets up the routes for the asset handler and common health checks.
func RegisterRoutes(r *router.Router, h *AssetHandler, logger *zap.Logger) {
	logger.Info("Setting up application-specific routes...")

	r.GET("/assets", h.GetAssets)
	r.GET("/assets/sendable", h.GetSendable)
	r.GET("/assets/buyable", h.GetBuyable)
	r.GET("/assets/ranked", h.GetRanked)
	r.GET("/assets/providers", h.GetProviders)
	r.GET("/assets/availability", h.GetAvailability)
	r.PUT("/network", h.SelectNetwork)
	r.PUT("/account", h.SelectAccount)

	logger.Info("Setting up health check route...")
	r.GET("/health", func(ctx *fasthttp.RequestCtx) {
		ctx.SetStatusCode(fasthttp.StatusOK)
		ctx.SetBodyString("OK")
	})

	logger.Info("All routes registered.")
}

const requestIDHeader = "X-Request-ID"

// LoggingMiddleware logs every incoming request and tags it with a request id,
// reusing the caller's X-Request-ID when one is sent.
func LoggingMiddleware(logger *zap.Logger, next fasthttp.RequestHandler) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		requestID := string(ctx.Request.Header.Peek(requestIDHeader))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		logger.Info("Request received",
			zap.String("requestId", requestID),
			zap.ByteString("method", ctx.Method()),
			zap.ByteString("uri", ctx.RequestURI()))
		next(ctx)
		ctx.Response.Header.Set(requestIDHeader, requestID)
		logger.Debug("Request completed",
			zap.String("requestId", requestID),
			zap.Int("status", ctx.Response.StatusCode()))
	}
}
