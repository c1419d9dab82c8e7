package repository

import (
	"context"
	"time"

	"wallet-assets/internal/domain/entity"
)

// CacheRepository defines the interface for caching fetched and derived asset data.
type CacheRepository interface {
	// GetPurchasableAssets retrieves the cached registry tokens.
	GetPurchasableAssets(ctx context.Context) ([]entity.Token, bool, error)

	// SetPurchasableAssets stores the registry tokens in the cache with a specified TTL.
	SetPurchasableAssets(ctx context.Context, tokens []entity.Token, ttl time.Duration) error

	// GetView retrieves a memoized asset view by its snapshot key.
	GetView(ctx context.Context, key string) (entity.AssetView, bool, error)

	// SetView memoizes an asset view under its snapshot key.
	SetView(ctx context.Context, key string, view entity.AssetView) error
}

// WalletStore defines the single-writer wallet-state store read by the aggregator.
type WalletStore interface {
	// Snapshot returns a deep copy of the current wallet state.
	Snapshot() entity.WalletState

	// Subscribe registers fn for every state change and returns its unsubscribe function.
	Subscribe(fn func(state entity.WalletState, change entity.Change)) (unsubscribe func())

	// SelectNetwork makes the network with the given chain id the selected one.
	SelectNetwork(ctx context.Context, chainID entity.ChainID) error

	// SelectAccount makes the account with the given address the selected one.
	SelectAccount(ctx context.Context, address string) error
}
