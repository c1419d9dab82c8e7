package application

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"wallet-assets/internal/adapter/storage/memory"
	"wallet-assets/internal/application/port"
	"wallet-assets/internal/config"
	"wallet-assets/internal/domain"
	"wallet-assets/internal/domain/entity"
	"wallet-assets/internal/pkg/apperrors"
)

type countingSource struct {
	calls  atomic.Int32
	tokens []entity.Token
	err    error
}

func (s *countingSource) GetPurchasableAssets(_ context.Context) ([]entity.Token, error) {
	s.calls.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	return append([]entity.Token(nil), s.tokens...), nil
}

func testConfig() config.Config {
	return config.Config{
		Cache: config.CacheConfig{
			DefaultExpiration: time.Minute,
			CleanupInterval:   time.Minute,
			ViewExpiration:    time.Minute,
		},
		Backend: config.BackendConfig{
			Timeout:    time.Second,
			IconScheme: iconScheme,
		},
		Buy: config.BuyConfig{FailurePolicy: "surface"},
	}
}

func newTestService(t *testing.T, src *countingSource) (port.AssetService, *memory.WalletStore) {
	t.Helper()
	logger := zap.NewNop()
	cfg := testConfig()
	store := memory.NewWalletStore(testState(), logger)
	cacheRepo := memory.NewCacheRepository(cfg.Cache, logger)

	svc := NewAssetService(context.Background(), store, src, cacheRepo, []entity.Token{rampEth, rampMatic}, logger, cfg)
	t.Cleanup(svc.Close)
	return svc, store
}

func waitForBuyStatus(t *testing.T, svc port.AssetService, chainID entity.ChainID, state entity.BuyState) entity.AssetView {
	t.Helper()
	var view entity.AssetView
	require.Eventually(t, func() bool {
		v, err := svc.View(context.Background())
		if err != nil {
			return false
		}
		view = v
		return v.BuyStatus.ChainID == chainID && v.BuyStatus.State == state
	}, 2*time.Second, 5*time.Millisecond)
	return view
}

func TestAssetService_InitialRefresh(t *testing.T) {
	src := &countingSource{tokens: registryTokens()}
	svc, _ := newTestService(t, src)

	view := waitForBuyStatus(t, svc, entity.MainnetChainID, entity.BuyStateReady)

	assert.Equal(t, []entity.Token{zrx, bat}, view.SendableAssets)
	assert.Equal(t, []entity.Token{bat, zrx}, view.RankedAssets)
	assert.Equal(t, []entity.Token{rampEth, rampMatic}, view.RampAssets)
	assert.Len(t, view.WyreAssets, 2)
	require.Len(t, view.BuyableAssets, 3)
	assert.Equal(t, "BAT", view.BuyableAssets[0].Symbol)
	assert.Equal(t, iconScheme+"/bat.png", view.BuyableAssets[0].Logo)
	assert.Equal(t, rampEth, view.BuyableAssets[2])
}

func TestAssetService_SelectNetworkRefreshesBuyOptions(t *testing.T) {
	src := &countingSource{tokens: registryTokens()}
	svc, _ := newTestService(t, src)
	waitForBuyStatus(t, svc, entity.MainnetChainID, entity.BuyStateReady)

	require.NoError(t, svc.SelectNetwork(context.Background(), "0x89"))

	view := waitForBuyStatus(t, svc, entity.PolygonMainnetChainID, entity.BuyStateReady)
	assert.Equal(t, []entity.Token{rampMatic}, view.BuyableAssets)
	assert.Equal(t, []entity.Token{usdcPolygon}, view.SendableAssets)
	assert.Equal(t, uint64(2), view.BuyStatus.Generation)

	// the registry is served from cache on the second refresh
	assert.Equal(t, int32(1), src.calls.Load())
}

func TestAssetService_SelectNetworkErrors(t *testing.T) {
	svc, _ := newTestService(t, &countingSource{tokens: registryTokens()})

	err := svc.SelectNetwork(context.Background(), "0xzz")
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

	err = svc.SelectNetwork(context.Background(), "0x38")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.ErrorIs(t, err, domain.ErrNetworkNotFound)
}

func TestAssetService_SelectAccount(t *testing.T) {
	svc, store := newTestService(t, &countingSource{tokens: registryTokens()})

	require.NoError(t, svc.SelectAccount(context.Background(), "0x7D66C9DDAED3115D93BD1790332F3CD06CF52B14"))
	assert.NotNil(t, store.Snapshot().SelectedAccount)

	err := svc.SelectAccount(context.Background(), " ")
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

	err = svc.SelectAccount(context.Background(), "0x0000000000000000000000000000000000000001")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestAssetService_ViewFollowsStoreChanges(t *testing.T) {
	svc, store := newTestService(t, &countingSource{tokens: registryTokens()})
	waitForBuyStatus(t, svc, entity.MainnetChainID, entity.BuyStateReady)

	first, err := svc.View(context.Background())
	require.NoError(t, err)
	again, err := svc.View(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, again)

	store.SetSpotPrices([]entity.SpotPrice{{FromAsset: "ZRX", ToAsset: "USD", Price: "1"}})
	acc := testAccount()
	acc.TokenBalances[zrx.BalanceKey()] = "1000000000000000000"
	store.SetAccounts([]entity.Account{*acc})

	updated, err := svc.View(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []entity.Token{zrx, bat}, updated.RankedAssets)
}

func TestAssetService_SurfacesFetchFailure(t *testing.T) {
	svc, _ := newTestService(t, &countingSource{err: apperrors.ErrExternalServiceFailure})

	view := waitForBuyStatus(t, svc, entity.MainnetChainID, entity.BuyStateFailed)

	assert.Equal(t, []entity.Token{entity.MakeNetworkAsset(ethereum)}, view.BuyableAssets)
	assert.Contains(t, view.BuyStatus.LastError, apperrors.ErrExternalServiceFailure.Error())
}

func TestAssetService_Availability(t *testing.T) {
	svc, _ := newTestService(t, &countingSource{tokens: registryTokens()})
	waitForBuyStatus(t, svc, entity.MainnetChainID, entity.BuyStateReady)

	got, err := svc.Availability(context.Background(), "bat")
	require.NoError(t, err)
	assert.Equal(t, []entity.Provider{entity.ProviderWyre}, got.Providers)

	got, err = svc.Availability(context.Background(), "ETH")
	require.NoError(t, err)
	assert.Equal(t, []entity.Provider{entity.ProviderRamp}, got.Providers)

	_, err = svc.Availability(context.Background(), "")
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestViewKey_ChangesWithInputs(t *testing.T) {
	state := testState()
	status := entity.BuyStatus{State: entity.BuyStateReady, Generation: 1, ChainID: entity.MainnetChainID}

	base, err := viewKey(state, status)
	require.NoError(t, err)

	same, err := viewKey(state.Clone(), status)
	require.NoError(t, err)
	assert.Equal(t, base, same)

	status.Generation = 2
	next, err := viewKey(state, status)
	require.NoError(t, err)
	assert.NotEqual(t, base, next)

	state.SpotPrices = nil
	other, err := viewKey(state, entity.BuyStatus{State: entity.BuyStateReady, Generation: 1, ChainID: entity.MainnetChainID})
	require.NoError(t, err)
	assert.NotEqual(t, base, other)
}
