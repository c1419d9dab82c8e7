// Package valuation converts base-unit balances into fiat amounts.
package valuation

import (
	"github.com/shopspring/decimal"

	"wallet-assets/internal/domain/entity"
)

// BalanceLookup resolves the balance an account holds for a token.
type BalanceLookup interface {
	GetBalance(account entity.Account, token entity.Token) string
}

// FiatConverter converts a base-unit balance into a fiat amount.
type FiatConverter interface {
	ComputeFiatAmount(balance, symbol string, decimals int32) decimal.Decimal
}

// AccountBalances is the BalanceLookup over an account's balance registry.
type AccountBalances struct{}

// GetBalance returns the native balance for native tokens and the registry
// entry otherwise. A missing entry yields "".
func (AccountBalances) GetBalance(account entity.Account, token entity.Token) string {
	if token.IsNative() {
		return account.NativeBalance
	}
	if account.TokenBalances == nil {
		return ""
	}
	return account.TokenBalances[token.BalanceKey()]
}

// Pricing converts balances using a list of spot prices.
type Pricing struct {
	prices map[string]decimal.Decimal
}

// NewPricing indexes spot prices by symbol. Prices that do not parse are
// dropped; the first entry wins for duplicate symbols.
func NewPricing(spotPrices []entity.SpotPrice) *Pricing {
	p := &Pricing{prices: make(map[string]decimal.Decimal, len(spotPrices))}
	for _, sp := range spotPrices {
		if _, exists := p.prices[sp.FromAsset]; exists {
			continue
		}
		price, err := decimal.NewFromString(sp.Price)
		if err != nil {
			continue
		}
		p.prices[sp.FromAsset] = price
	}
	return p
}

// FindAssetPrice returns the spot price for symbol. Matching is case-sensitive.
func (p *Pricing) FindAssetPrice(symbol string) (decimal.Decimal, bool) {
	price, ok := p.prices[symbol]
	return price, ok
}

// ComputeFiatAmount returns balance scaled by decimals times the spot price.
// A missing price or an empty/unparsable balance is worth zero.
func (p *Pricing) ComputeFiatAmount(balance, symbol string, decimals int32) decimal.Decimal {
	price, ok := p.FindAssetPrice(symbol)
	if !ok || balance == "" {
		return decimal.Zero
	}
	amount, err := decimal.NewFromString(balance)
	if err != nil {
		return decimal.Zero
	}
	return amount.Shift(-decimals).Mul(price)
}
