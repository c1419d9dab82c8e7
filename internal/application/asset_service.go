package application

import (
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"strconv"
	"strings"
	"time"

	"wallet-assets/internal/application/port"
	"wallet-assets/internal/config"
	"wallet-assets/internal/domain"
	"wallet-assets/internal/domain/entity"
	domainRepo "wallet-assets/internal/domain/repository"
	"wallet-assets/internal/pkg/apperrors"

	"go.uber.org/zap"
)

// Compile-time check to ensure assetService implements AssetService
var _ port.AssetService = (*assetService)(nil)

// assetService implements port.AssetService on top of the wallet store.
type assetService struct {
	store       domainRepo.WalletStore
	cacheRepo   domainRepo.CacheRepository
	refresher   *BuyOptionsRefresher
	rampAssets  []entity.Token
	logger      *zap.Logger
	unsubscribe func()
}

// NewAssetService wires the store subscription and starts the first
// buy-options refresh for the currently selected network.
func NewAssetService(
	rootCtx context.Context,
	store domainRepo.WalletStore,
	assetRepo domainRepo.PurchasableAssetRepository,
	cacheRepo domainRepo.CacheRepository,
	rampAssets []entity.Token,
	logger *zap.Logger,
	cfg config.Config,
) port.AssetService {
	s := &assetService{
		store:      store,
		cacheRepo:  cacheRepo,
		rampAssets: copyTokens(rampAssets),
		logger:     logger.Named("AssetService"),
	}

	source := &cachedPurchasableAssets{
		repo:   assetRepo,
		cache:  cacheRepo,
		ttl:    cfg.Cache.GetDefaultExpiration(),
		logger: s.logger,
	}
	s.refresher = NewBuyOptionsRefresher(rootCtx, source, RefresherConfig{
		RampAssets: rampAssets,
		IconScheme: cfg.Backend.IconScheme,
		Policy:     ParseFailurePolicy(cfg.Buy.FailurePolicy),
		Timeout:    cfg.Backend.GetTimeout(),
	}, logger)

	s.unsubscribe = store.Subscribe(s.onStateChange)

	if selected := store.Snapshot().SelectedNetwork; selected.ChainID != "" {
		s.refresher.Refresh(selected)
	}
	return s
}

func (s *assetService) onStateChange(state entity.WalletState, change entity.Change) {
	if !change.Has(entity.ChangeNetwork) {
		return
	}
	if state.SelectedNetwork.ChainID == "" {
		s.logger.Debug("Skipping buy options refresh", zap.Error(domain.ErrNoNetworkSelected))
		return
	}
	s.refresher.Refresh(state.SelectedNetwork)
}

// View derives the asset view for the current snapshot, memoized by a
// structural hash of the inputs.
func (s *assetService) View(ctx context.Context) (entity.AssetView, error) {
	snapshot := s.store.Snapshot()
	buy := s.refresher.Options()

	key, err := viewKey(snapshot, buy.Status)
	if err != nil {
		s.logger.Warn("Failed to hash wallet snapshot, deriving without memo", zap.Error(err))
		return s.derive(snapshot, buy), nil
	}

	view, found, err := s.cacheRepo.GetView(ctx, key)
	if err != nil {
		s.logger.Warn("Cache error when getting asset view", zap.Error(err))
	}
	if found {
		return view, nil
	}

	view = s.derive(snapshot, buy)
	if err := s.cacheRepo.SetView(ctx, key, view); err != nil {
		s.logger.Warn("Failed to memoize asset view", zap.Error(err))
	}
	return view, nil
}

func (s *assetService) derive(snapshot entity.WalletState, buy BuyOptions) entity.AssetView {
	return DeriveAssetView(AggregatorInput{
		State:      snapshot,
		Buy:        buy,
		RampAssets: s.rampAssets,
	})
}

// SelectNetwork validates chainID and selects the network in the store.
func (s *assetService) SelectNetwork(ctx context.Context, chainID string) error {
	id, err := entity.NewChainID(chainID)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	if err := s.store.SelectNetwork(ctx, id); err != nil {
		return fmt.Errorf("select network %s: %w", id, err)
	}
	s.logger.Info("Selected network", zap.String("chainId", id.String()))
	return nil
}

// SelectAccount selects the account with address in the store.
func (s *assetService) SelectAccount(ctx context.Context, address string) error {
	address = strings.TrimSpace(address)
	if address == "" {
		return fmt.Errorf("%w: empty account address", apperrors.ErrInvalidInput)
	}
	if err := s.store.SelectAccount(ctx, address); err != nil {
		return fmt.Errorf("select account %s: %w", address, err)
	}
	s.logger.Info("Selected account", zap.String("address", address))
	return nil
}

// Availability reports which providers list symbol in the current view.
func (s *assetService) Availability(ctx context.Context, symbol string) (entity.ProviderAvailability, error) {
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		return entity.ProviderAvailability{}, fmt.Errorf("%w: empty symbol", apperrors.ErrInvalidInput)
	}
	view, err := s.View(ctx)
	if err != nil {
		return entity.ProviderAvailability{}, err
	}
	return Availability(symbol, view), nil
}

// Close releases the store subscription and stops applying fetch results.
func (s *assetService) Close() {
	s.unsubscribe()
	s.refresher.Close()
	s.refresher.Wait()
	s.logger.Info("Asset service closed")
}

// viewKey hashes everything a view depends on. The generation and state
// cover the buy options, which only change together with them.
func viewKey(snapshot entity.WalletState, status entity.BuyStatus) (string, error) {
	b, err := json.Marshal(snapshot)
	if err != nil {
		return "", err
	}
	h := fnv.New64a()
	_, _ = h.Write(b)
	_, _ = h.Write([]byte(strconv.FormatUint(status.Generation, 10)))
	_, _ = h.Write([]byte(status.State))
	_, _ = h.Write([]byte(status.ChainID))
	_, _ = h.Write([]byte(status.LastError))
	return strconv.FormatUint(h.Sum64(), 16), nil
}

// cachedPurchasableAssets serves the registry from cache before asking the backend.
type cachedPurchasableAssets struct {
	repo   domainRepo.PurchasableAssetRepository
	cache  domainRepo.CacheRepository
	ttl    time.Duration
	logger *zap.Logger
}

var _ domainRepo.PurchasableAssetRepository = (*cachedPurchasableAssets)(nil)

func (c *cachedPurchasableAssets) GetPurchasableAssets(ctx context.Context) ([]entity.Token, error) {
	tokens, found, err := c.cache.GetPurchasableAssets(ctx)
	if err != nil {
		c.logger.Warn("Cache error when getting purchasable assets", zap.Error(err))
	}
	if found {
		c.logger.Debug("Purchasable assets served from cache", zap.Int("count", len(tokens)))
		return tokens, nil
	}

	tokens, err = c.repo.GetPurchasableAssets(ctx)
	if err != nil {
		return nil, err
	}
	if err := c.cache.SetPurchasableAssets(ctx, tokens, c.ttl); err != nil {
		c.logger.Warn("Failed to cache purchasable assets", zap.Error(err))
	}
	return tokens, nil
}
