package entity

import "strings"

// Token identifies a fungible or non-fungible asset on a specific chain.
type Token struct {
	ContractAddress string  `json:"contractAddress"`
	Name            string  `json:"name"`
	Symbol          string  `json:"symbol"`
	Decimals        int32   `json:"decimals"`
	Logo            string  `json:"logo"`
	IsFungible      bool    `json:"isErc20"`
	IsNonFungible   bool    `json:"isErc721"`
	Visible         bool    `json:"visible"`
	TokenID         string  `json:"tokenId"`
	CoingeckoID     string  `json:"coingeckoId"`
	ChainID         ChainID `json:"chainId"`
}

// IsNative reports whether the token is the native currency of its chain.
func (t Token) IsNative() bool {
	return t.ContractAddress == ""
}

// BalanceKey is the key under which an account stores the token balance.
func (t Token) BalanceKey() string {
	return strings.ToLower(t.ContractAddress)
}

// SameAs compares tokens by contract address (case-insensitive) and chain.
func (t Token) SameAs(other Token) bool {
	return t.ChainID == other.ChainID && strings.EqualFold(t.ContractAddress, other.ContractAddress)
}

// Network describes a chain and its native currency.
type Network struct {
	ChainID    ChainID `json:"chainId"`
	Name       string  `json:"chainName"`
	Symbol     string  `json:"symbol"`
	SymbolName string  `json:"symbolName"`
	Decimals   int32   `json:"decimals"`
}

// Account holds balances in base units, keyed by lowercased contract address.
type Account struct {
	Address       string            `json:"address"`
	Name          string            `json:"name"`
	NativeBalance string            `json:"balance"`
	TokenBalances map[string]string `json:"tokenBalanceRegistry"`
}

// SpotPrice is a point-in-time fiat price for a symbol.
type SpotPrice struct {
	FromAsset string `json:"fromAsset"`
	ToAsset   string `json:"toAsset"`
	Price     string `json:"price"`
}

// Provider names an on-ramp service.
type Provider string

// Known on-ramp providers.
const (
	ProviderRamp Provider = "ramp"
	ProviderWyre Provider = "wyre"
)
