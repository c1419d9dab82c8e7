package repository

import (
	"context"

	"wallet-assets/internal/domain/entity"
)

// PurchasableAssetRepository defines the interface for the wallet backend's buyable-token registry.
type PurchasableAssetRepository interface {
	// GetPurchasableAssets retrieves the tokens the registry provider supports.
	GetPurchasableAssets(ctx context.Context) ([]entity.Token, error)
}
