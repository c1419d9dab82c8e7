package seed

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	dto "wallet-assets/internal/adapter/storage/seed/dto"
	"wallet-assets/internal/config"
	"wallet-assets/internal/domain/entity"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

//go:embed ramp_assets.yaml
var defaultRampAssets []byte

// Loader reads YAML seed files.
type Loader struct {
	cfg    config.SeedConfig
	logger *zap.Logger
}

// NewLoader creates a new seed loader.
func NewLoader(cfg config.SeedConfig, logger *zap.Logger) *Loader {
	return &Loader{
		cfg:    cfg,
		logger: logger.Named("SeedLoader"),
	}
}

// RampAssets returns the fixed ramp-provider asset list, from the configured
// file or the embedded default.
func (l *Loader) RampAssets() ([]entity.Token, error) {
	data := defaultRampAssets
	source := "embedded"
	if path := strings.TrimSpace(l.cfg.RampAssetsPath); path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read ramp assets file: %w", err)
		}
		data = b
		source = path
	}

	tokens, err := ParseAssetList(data)
	if err != nil {
		return nil, fmt.Errorf("ramp assets (%s): %w", source, err)
	}
	l.logger.Info("Loaded ramp asset list", zap.String("source", source), zap.Int("count", len(tokens)))
	return tokens, nil
}

// Wallet returns the initial wallet state. Without a configured seed file
// the state is empty.
func (l *Loader) Wallet() (entity.WalletState, error) {
	path := strings.TrimSpace(l.cfg.WalletPath)
	if path == "" {
		l.logger.Info("No wallet seed configured, starting with empty state")
		return entity.WalletState{}, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return entity.WalletState{}, fmt.Errorf("read wallet seed file: %w", err)
	}
	state, err := ParseWallet(b)
	if err != nil {
		return entity.WalletState{}, fmt.Errorf("wallet seed (%s): %w", path, err)
	}
	l.logger.Info("Loaded wallet seed",
		zap.String("path", path),
		zap.Int("networks", len(state.Networks)),
		zap.Int("accounts", len(state.Accounts)),
		zap.Int("visibleTokens", len(state.VisibleTokens)),
	)
	return state, nil
}

// ParseAssetList decodes a provider asset list document.
func ParseAssetList(data []byte) ([]entity.Token, error) {
	var raw dto.AssetListRaw
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("unmarshal asset list: %w", err)
	}
	return toDomainTokens(raw.Assets)
}

// ParseWallet decodes a wallet seed document.
func ParseWallet(data []byte) (entity.WalletState, error) {
	var raw dto.WalletRaw
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return entity.WalletState{}, fmt.Errorf("unmarshal wallet seed: %w", err)
	}
	return toDomainWallet(raw)
}
