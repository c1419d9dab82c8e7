package http

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"wallet-assets/internal/application"
	"wallet-assets/internal/application/port"
	"wallet-assets/internal/domain/entity"
	"wallet-assets/internal/pkg/apperrors"
)

type AssetHandler struct {
	service port.AssetService
	logger  *zap.Logger
}

func NewAssetHandler(service port.AssetService, logger *zap.Logger) *AssetHandler {
	return &AssetHandler{
		service: service,
		logger:  logger.Named("AssetHandler"),
	}
}

type providersResponse struct {
	Ramp []entity.Token `json:"rampAssetOptions"`
	Wyre []entity.Token `json:"wyreAssetOptions"`
}

type selectNetworkRequest struct {
	ChainID string `json:"chainId"`
}

type selectAccountRequest struct {
	Address string `json:"address"`
}

// GetAssets handles requests for the full asset view
func (h *AssetHandler) GetAssets(ctx *fasthttp.RequestCtx) {
	view, ok := h.view(ctx)
	if !ok {
		return
	}
	h.writeJSON(ctx, view)
}

// GetSendable handles requests for the sendable assets on the selected network
func (h *AssetHandler) GetSendable(ctx *fasthttp.RequestCtx) {
	view, ok := h.view(ctx)
	if !ok {
		return
	}
	h.writeJSON(ctx, view.SendableAssets)
}

// GetBuyable handles requests for the buyable assets on the selected network
func (h *AssetHandler) GetBuyable(ctx *fasthttp.RequestCtx) {
	view, ok := h.view(ctx)
	if !ok {
		return
	}
	h.writeJSON(ctx, view.BuyableAssets)
}

// GetRanked handles requests for the sendable assets ordered by fiat value
func (h *AssetHandler) GetRanked(ctx *fasthttp.RequestCtx) {
	view, ok := h.view(ctx)
	if !ok {
		return
	}
	h.writeJSON(ctx, view.RankedAssets)
}

// GetProviders handles requests for the ramp and wyre lists, one entry per symbol
func (h *AssetHandler) GetProviders(ctx *fasthttp.RequestCtx) {
	view, ok := h.view(ctx)
	if !ok {
		return
	}
	h.writeJSON(ctx, providersResponse{
		Ramp: application.UniqueAssets(view.RampAssets),
		Wyre: application.UniqueAssets(view.WyreAssets),
	})
}

// GetAvailability handles requests for which providers sell a symbol
func (h *AssetHandler) GetAvailability(ctx *fasthttp.RequestCtx) {
	symbol := string(ctx.QueryArgs().Peek("symbol"))
	availability, err := h.service.Availability(ctx, symbol)
	if err != nil {
		h.fail(ctx, "Failed to get availability", err, zap.String("symbol", symbol))
		return
	}
	h.writeJSON(ctx, availability)
}

// SelectNetwork handles requests that change the selected network
func (h *AssetHandler) SelectNetwork(ctx *fasthttp.RequestCtx) {
	var req selectNetworkRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.logger.Warn("Failed to decode select network request", zap.Error(err))
		ctx.Error("Bad Request: Invalid JSON body", fasthttp.StatusBadRequest)
		return
	}
	if err := h.service.SelectNetwork(ctx, req.ChainID); err != nil {
		h.fail(ctx, "Failed to select network", err, zap.String("chainId", req.ChainID))
		return
	}
	ctx.SetStatusCode(fasthttp.StatusNoContent)
}

// SelectAccount handles requests that change the selected account
func (h *AssetHandler) SelectAccount(ctx *fasthttp.RequestCtx) {
	var req selectAccountRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.logger.Warn("Failed to decode select account request", zap.Error(err))
		ctx.Error("Bad Request: Invalid JSON body", fasthttp.StatusBadRequest)
		return
	}
	if err := h.service.SelectAccount(ctx, req.Address); err != nil {
		h.fail(ctx, "Failed to select account", err, zap.String("address", req.Address))
		return
	}
	ctx.SetStatusCode(fasthttp.StatusNoContent)
}

func (h *AssetHandler) view(ctx *fasthttp.RequestCtx) (entity.AssetView, bool) {
	view, err := h.service.View(ctx)
	if err != nil {
		h.fail(ctx, "Failed to derive asset view", err)
		return entity.AssetView{}, false
	}
	return view, true
}

func (h *AssetHandler) fail(ctx *fasthttp.RequestCtx, msg string, err error, fields ...zap.Field) {
	status := statusFor(err)
	fields = append(fields, zap.Error(err), zap.Int("status", status))
	if status >= fasthttp.StatusInternalServerError {
		h.logger.Error(msg, fields...)
		ctx.Error("Internal Server Error", status)
		return
	}
	h.logger.Warn(msg, fields...)
	ctx.Error(fasthttp.StatusMessage(status)+": "+strings.TrimSpace(err.Error()), status)
}

func (h *AssetHandler) writeJSON(ctx *fasthttp.RequestCtx, v any) {
	ctx.SetContentType("application/json")
	if err := json.NewEncoder(ctx).Encode(v); err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
		// Response already started, can't set error code
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return fasthttp.StatusNotFound
	case errors.Is(err, apperrors.ErrInvalidInput):
		return fasthttp.StatusBadRequest
	default:
		return fasthttp.StatusInternalServerError
	}
}
