package application

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"wallet-assets/internal/domain"
	"wallet-assets/internal/domain/entity"
	domainRepo "wallet-assets/internal/domain/repository"

	"go.uber.org/zap"
)

// FailurePolicy decides what a failed fetch does to the visible buy options.
type FailurePolicy string

// Failure policies.
const (
	// RetainOnFailure keeps the previous options and only logs the error.
	RetainOnFailure FailurePolicy = "retain"
	// SurfaceFailure keeps the previous options and exposes the error in BuyStatus.
	SurfaceFailure FailurePolicy = "surface"
)

// ParseFailurePolicy maps a config value to a policy, defaulting to retain.
func ParseFailurePolicy(s string) FailurePolicy {
	if strings.EqualFold(strings.TrimSpace(s), string(SurfaceFailure)) {
		return SurfaceFailure
	}
	return RetainOnFailure
}

// FetchResult is the outcome of one purchasable-assets fetch.
type FetchResult struct {
	Generation uint64
	ChainID    entity.ChainID
	Registry   []entity.Token
	Buyable    []entity.Token
	Err        error
	Applied    bool
}

// BuyOptionsRefresher runs the buy-options refresh. Every Refresh starts a
// new generation; a completed fetch is applied only while its generation is
// still current and the refresher is open.
type BuyOptionsRefresher struct {
	source     domainRepo.PurchasableAssetRepository
	ramp       []entity.Token
	iconScheme string
	policy     FailurePolicy
	timeout    time.Duration
	onResult   func(FetchResult)
	logger     *zap.Logger

	rootCtx context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup

	mu         sync.Mutex
	generation uint64
	closed     bool
	options    BuyOptions
}

// RefresherConfig configures a BuyOptionsRefresher.
type RefresherConfig struct {
	RampAssets []entity.Token
	IconScheme string
	Policy     FailurePolicy
	Timeout    time.Duration
	// OnResult, when set, receives every completed fetch, applied or not.
	OnResult func(FetchResult)
}

// NewBuyOptionsRefresher creates an idle refresher.
func NewBuyOptionsRefresher(
	rootCtx context.Context,
	source domainRepo.PurchasableAssetRepository,
	cfg RefresherConfig,
	logger *zap.Logger,
) *BuyOptionsRefresher {
	ctx, cancel := context.WithCancel(rootCtx)
	policy := cfg.Policy
	if policy == "" {
		policy = RetainOnFailure
	}
	return &BuyOptionsRefresher{
		source:     source,
		ramp:       copyTokens(cfg.RampAssets),
		iconScheme: strings.TrimRight(cfg.IconScheme, "/"),
		policy:     policy,
		timeout:    cfg.Timeout,
		onResult:   cfg.OnResult,
		logger:     logger.Named("BuyOptionsRefresher"),
		rootCtx:    ctx,
		cancel:     cancel,
		options: BuyOptions{
			Status: entity.BuyStatus{State: entity.BuyStateIdle},
		},
	}
}

// Refresh starts a fetch for network and returns its generation. Options
// for another chain are replaced by the native asset until a result lands.
func (r *BuyOptionsRefresher) Refresh(network entity.Network) uint64 {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return 0
	}
	r.generation++
	gen := r.generation
	if r.options.Status.ChainID != network.ChainID {
		r.options.Buyable = []entity.Token{entity.MakeNetworkAsset(network)}
	}
	r.options.Status = entity.BuyStatus{
		State:      entity.BuyStateLoading,
		Generation: gen,
		ChainID:    network.ChainID,
	}
	r.wg.Add(1)
	r.mu.Unlock()

	r.logger.Debug("Refreshing buy options",
		zap.Uint64("generation", gen), zap.String("chainId", network.ChainID.String()))

	go r.fetch(gen, network)
	return gen
}

// Options returns a copy of the current buy options.
func (r *BuyOptionsRefresher) Options() BuyOptions {
	r.mu.Lock()
	defer r.mu.Unlock()
	return BuyOptions{
		Buyable: cloneOrNil(r.options.Buyable),
		Wyre:    cloneOrNil(r.options.Wyre),
		Status:  r.options.Status,
	}
}

// Close stops applying results and cancels in-flight fetches.
func (r *BuyOptionsRefresher) Close() {
	r.mu.Lock()
	r.closed = true
	r.mu.Unlock()
	r.cancel()
}

// Wait blocks until every started fetch has completed.
func (r *BuyOptionsRefresher) Wait() {
	r.wg.Wait()
}

func (r *BuyOptionsRefresher) fetch(gen uint64, network entity.Network) {
	defer r.wg.Done()

	ctx := r.rootCtx
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	result := FetchResult{Generation: gen, ChainID: network.ChainID}
	tokens, err := r.source.GetPurchasableAssets(ctx)
	if err != nil {
		result.Err = fmt.Errorf("%w: %w", domain.ErrUpstreamSourceFailure, err)
	} else {
		result.Registry = r.tagRegistryTokens(tokens)
		all := append(copyTokens(result.Registry), r.ramp...)
		result.Buyable = AssetsByNetwork(all, network.ChainID)
	}

	r.apply(&result)

	if r.onResult != nil {
		r.onResult(result)
	}
}

func (r *BuyOptionsRefresher) apply(result *FetchResult) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		r.logger.Debug("Dropping buy options result after close", zap.Uint64("generation", result.Generation))
		return
	}
	if result.Generation != r.generation {
		r.logger.Debug("Dropping stale buy options result",
			zap.Uint64("generation", result.Generation),
			zap.Uint64("current", r.generation),
			zap.String("chainId", result.ChainID.String()),
			zap.Error(domain.ErrStaleResult))
		return
	}

	result.Applied = true
	if result.Err != nil {
		r.logger.Error("Failed to fetch purchasable assets",
			zap.Uint64("generation", result.Generation),
			zap.String("chainId", result.ChainID.String()),
			zap.Error(result.Err))
		r.options.Status.State = entity.BuyStateFailed
		if r.policy == SurfaceFailure {
			r.options.Status.LastError = result.Err.Error()
		}
		return
	}

	r.options = BuyOptions{
		Buyable: result.Buyable,
		Wyre:    result.Registry,
		Status: entity.BuyStatus{
			State:      entity.BuyStateReady,
			Generation: result.Generation,
			ChainID:    result.ChainID,
		},
	}
	r.logger.Debug("Applied buy options",
		zap.Uint64("generation", result.Generation),
		zap.Int("buyable", len(result.Buyable)),
		zap.Int("registry", len(result.Registry)))
}

// tagRegistryTokens pins registry tokens to mainnet and points their logos
// at the local icon scheme.
func (r *BuyOptionsRefresher) tagRegistryTokens(tokens []entity.Token) []entity.Token {
	out := make([]entity.Token, len(tokens))
	for i, t := range tokens {
		t.ChainID = entity.MainnetChainID
		t.Logo = r.iconScheme + "/" + t.Logo
		out[i] = t
	}
	return out
}

func cloneOrNil(tokens []entity.Token) []entity.Token {
	if tokens == nil {
		return nil
	}
	return copyTokens(tokens)
}
