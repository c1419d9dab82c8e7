package entity

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// ChainID identifies a network. EVM chains use hex quantities ("0x1"); other
// chains may use opaque identifiers (e.g. "f" for Filecoin).
type ChainID string

// Well-known chain IDs.
const (
	MainnetChainID          ChainID = "0x1"
	PolygonMainnetChainID   ChainID = "0x89"
	BinanceSmartChainID     ChainID = "0x38"
	AvalancheMainnetChainID ChainID = "0xa86a"
	FantomMainnetChainID    ChainID = "0xfa"
	CeloMainnetChainID      ChainID = "0xa4ec"
	OptimismMainnetChainID  ChainID = "0xa"
	SolanaMainnetChainID    ChainID = "0x65"
	FilecoinMainnetChainID  ChainID = "f"
	FilecoinTestnetChainID  ChainID = "t"
)

// NewChainID creates a new ChainID instance.
func NewChainID(raw string) (ChainID, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return "", fmt.Errorf("chain id cannot be empty")
	}
	if strings.HasPrefix(s, "0x") {
		if _, err := hexutil.DecodeUint64(s); err != nil {
			return "", fmt.Errorf("invalid hex chain id '%s': %w", raw, err)
		}
	}
	return ChainID(s), nil
}

// String returns the string representation of the ChainID.
func (c ChainID) String() string {
	return string(c)
}

// ValidateContractAddress checks 0x-prefixed addresses as EVM addresses.
// Empty addresses (native assets) and non-EVM addresses pass through.
func ValidateContractAddress(addr string) error {
	a := strings.TrimSpace(addr)
	if a == "" {
		return nil
	}
	if strings.HasPrefix(a, "0x") || strings.HasPrefix(a, "0X") {
		if !common.IsHexAddress(a) {
			return fmt.Errorf("invalid contract address: %q", addr)
		}
	}
	return nil
}
