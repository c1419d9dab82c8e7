package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	dto "wallet-assets/internal/adapter/storage/backend/dto"
	"wallet-assets/internal/config"
	"wallet-assets/internal/domain/entity"
	domainRepo "wallet-assets/internal/domain/repository"
	"wallet-assets/internal/pkg/apperrors"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

// Compile-time check
var _ domainRepo.PurchasableAssetRepository = (*Repository)(nil)

// Repository fetches the buyable-token registry from the wallet backend.
type Repository struct {
	client  *fasthttp.Client
	url     string
	timeout time.Duration
	logger  *zap.Logger
}

// NewRepository creates a new wallet backend repository instance.
func NewRepository(cfg config.BackendConfig, logger *zap.Logger) *Repository {
	return &Repository{
		client:  &fasthttp.Client{},
		url:     cfg.URL,
		timeout: cfg.GetTimeout(),
		logger:  logger.Named("BackendStorage"),
	}
}

// GetPurchasableAssets fetches the registry tokens from the configured URL.
// The request is abandoned as soon as ctx is done.
func (r *Repository) GetPurchasableAssets(ctx context.Context) ([]entity.Token, error) {
	timeout := r.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining > 0 && remaining < timeout {
			timeout = remaining
		}
	}

	r.logger.Debug("Fetching purchasable assets", zap.String("url", r.url), zap.Duration("timeout", timeout))

	done := make(chan fetchResult, 1)
	go func() { done <- r.fetch(timeout) }()

	var res fetchResult
	select {
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			r.logger.Warn("Purchasable assets request timed out", zap.Duration("timeout", timeout))
			return nil, fmt.Errorf("%w: request to %s timed out after %v: %w",
				apperrors.ErrTimeout, r.url, timeout, ctx.Err(),
			)
		}
		r.logger.Info("Purchasable assets request abandoned", zap.Error(ctx.Err()))
		return nil, fmt.Errorf("%w: request to %s abandoned: %w",
			apperrors.ErrExternalServiceFailure, r.url, ctx.Err(),
		)
	case res = <-done:
	}

	if res.err != nil {
		if errors.Is(res.err, fasthttp.ErrTimeout) {
			r.logger.Warn("Purchasable assets request timed out", zap.Duration("timeout", timeout), zap.Error(res.err))
			return nil, fmt.Errorf("%w: request to %s timed out after %v: %v",
				apperrors.ErrTimeout, r.url, timeout, res.err,
			)
		}
		r.logger.Error("Failed to execute purchasable assets request", zap.Error(res.err))
		return nil, fmt.Errorf("%w: request to %s failed: %v", apperrors.ErrExternalServiceFailure, r.url, res.err)
	}

	if res.status == fasthttp.StatusNotFound {
		r.logger.Warn("Wallet backend reported registry not found", zap.Int("statusCode", res.status))
		return nil, fmt.Errorf("%w: purchasable assets registry not found (%s)", apperrors.ErrNotFound, r.url)
	}

	if res.status != fasthttp.StatusOK {
		r.logger.Error(
			"Wallet backend returned non-OK status",
			zap.Int("statusCode", res.status),
			zap.ByteString("body", res.body),
		)
		return nil, fmt.Errorf("%w: wallet backend returned status %d",
			apperrors.ErrExternalServiceFailure, res.status,
		)
	}

	if res.gunzipErr != nil {
		r.logger.Error("Failed to gunzip purchasable assets response", zap.Error(res.gunzipErr))
		return nil, fmt.Errorf("%w: failed to decompress registry response: %v",
			apperrors.ErrExternalServiceFailure, res.gunzipErr,
		)
	}

	body := res.body
	raw, err := decodeTokenList(body)
	if err != nil {
		r.logger.Error("Failed to unmarshal purchasable assets response",
			zap.Error(err), zap.ByteString("bodySample", body[:min(1024, len(body))]),
		)
		return nil, fmt.Errorf("%w: failed to parse registry response: %v",
			apperrors.ErrExternalServiceFailure, err,
		)
	}

	tokens := toDomainTokens(raw, r.logger)
	r.logger.Info("Fetched purchasable assets",
		zap.Int("rawCount", len(raw)), zap.Int("count", len(tokens)),
	)
	return tokens, nil
}

// fetchResult holds a response copied out of the pooled fasthttp objects.
type fetchResult struct {
	status    int
	body      []byte
	gunzipErr error
	err       error
}

// fetch performs one GET with its own pooled request and response, so a
// caller that stops waiting never races with their release.
func (r *Repository) fetch(timeout time.Duration) fetchResult {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(r.url)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set(fasthttp.HeaderAcceptEncoding, "gzip")

	if err := r.client.DoTimeout(req, resp, timeout); err != nil {
		return fetchResult{err: err}
	}

	res := fetchResult{status: resp.StatusCode()}
	if res.status == fasthttp.StatusOK && bytes.EqualFold(resp.Header.Peek(fasthttp.HeaderContentEncoding), []byte("gzip")) {
		res.body, res.gunzipErr = resp.BodyGunzip()
		return res
	}
	res.body = append([]byte(nil), resp.Body()...)
	return res
}

// decodeTokenList accepts `[...]` or `{"tokens": [...]}`.
func decodeTokenList(body []byte) ([]dto.TokenRaw, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var wrapped dto.TokenListRaw
		if err := json.Unmarshal(trimmed, &wrapped); err != nil {
			return nil, err
		}
		return wrapped.Tokens, nil
	}
	var list []dto.TokenRaw
	if err := json.Unmarshal(trimmed, &list); err != nil {
		return nil, err
	}
	return list, nil
}
