package port

import (
	"context"

	"wallet-assets/internal/domain/entity"
)

// AssetService defines the interface for deriving asset views from wallet state.
type AssetService interface {
	// View returns the asset lists derived from the current wallet snapshot.
	View(ctx context.Context) (entity.AssetView, error)

	// SelectNetwork changes the selected network, which triggers a buy-options refresh.
	SelectNetwork(ctx context.Context, chainID string) error

	// SelectAccount changes the selected account.
	SelectAccount(ctx context.Context, address string) error

	// Availability reports which on-ramp providers list the given symbol.
	Availability(ctx context.Context, symbol string) (entity.ProviderAvailability, error)

	// Close stops applying buy-options results and releases subscriptions.
	Close()
}
