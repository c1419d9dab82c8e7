package application

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"wallet-assets/internal/domain/entity"
	"wallet-assets/internal/domain/valuation"
)

// BuyOptions is the output of the buy-options refresh at one point in time.
type BuyOptions struct {
	Buyable []entity.Token
	Wyre    []entity.Token
	Status  entity.BuyStatus
}

// AggregatorInput is one immutable snapshot of everything the view depends on.
// Balances and Prices default to the account registry and the snapshot's
// spot prices.
type AggregatorInput struct {
	State      entity.WalletState
	Buy        BuyOptions
	RampAssets []entity.Token
	Balances   valuation.BalanceLookup
	Prices     valuation.FiatConverter
}

// DeriveAssetView computes every asset list from in. It never mutates its
// inputs and returns equal views for equal inputs.
func DeriveAssetView(in AggregatorInput) entity.AssetView {
	balances := in.Balances
	if balances == nil {
		balances = valuation.AccountBalances{}
	}
	prices := in.Prices
	if prices == nil {
		prices = valuation.NewPricing(in.State.SpotPrices)
	}

	sendable := AssetsByNetwork(in.State.VisibleTokens, in.State.SelectedNetwork.ChainID)

	return entity.AssetView{
		SendableAssets: sendable,
		BuyableAssets:  buyableAssets(in.Buy, in.State.SelectedNetwork),
		RampAssets:     copyTokens(in.RampAssets),
		WyreAssets:     copyTokens(in.Buy.Wyre),
		RankedAssets:   RankByFiatValue(in.State.SelectedAccount, sendable, balances, prices),
		BuyStatus:      in.Buy.Status,
	}
}

// AssetsByNetwork keeps the tokens on chainID, preserving order.
func AssetsByNetwork(tokens []entity.Token, chainID entity.ChainID) []entity.Token {
	out := make([]entity.Token, 0, len(tokens))
	for _, t := range tokens {
		if t.ChainID == chainID {
			out = append(out, t)
		}
	}
	return out
}

// RankByFiatValue sorts a copy of assets by descending fiat value. Equal
// values keep their input order. Without an account the result is empty.
func RankByFiatValue(
	account *entity.Account,
	assets []entity.Token,
	balances valuation.BalanceLookup,
	prices valuation.FiatConverter,
) []entity.Token {
	if account == nil || len(assets) == 0 {
		return []entity.Token{}
	}

	type ranked struct {
		token entity.Token
		value decimal.Decimal
	}
	items := make([]ranked, len(assets))
	for i, t := range assets {
		balance := balances.GetBalance(*account, t)
		items[i] = ranked{token: t, value: prices.ComputeFiatAmount(balance, t.Symbol, t.Decimals)}
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].value.GreaterThan(items[j].value)
	})

	out := make([]entity.Token, len(items))
	for i, it := range items {
		out[i] = it.token
	}
	return out
}

// UniqueAssets drops tokens whose symbol (case-insensitive) was already seen.
func UniqueAssets(tokens []entity.Token) []entity.Token {
	seen := make(map[string]struct{}, len(tokens))
	out := make([]entity.Token, 0, len(tokens))
	for _, t := range tokens {
		key := strings.ToLower(t.Symbol)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, t)
	}
	return out
}

// Availability reports which providers list symbol in view.
func Availability(symbol string, view entity.AssetView) entity.ProviderAvailability {
	out := entity.ProviderAvailability{
		Symbol:    symbol,
		Providers: []entity.Provider{},
		Ramp:      containsSymbol(view.RampAssets, symbol),
		Wyre:      containsSymbol(view.WyreAssets, symbol),
	}
	if out.Ramp {
		out.Providers = append(out.Providers, entity.ProviderRamp)
	}
	if out.Wyre {
		out.Providers = append(out.Providers, entity.ProviderWyre)
	}
	return out
}

func containsSymbol(tokens []entity.Token, symbol string) bool {
	for _, t := range tokens {
		if strings.EqualFold(t.Symbol, symbol) {
			return true
		}
	}
	return false
}

// buyableAssets falls back to the native asset until options for the
// selected chain exist.
func buyableAssets(buy BuyOptions, network entity.Network) []entity.Token {
	if buy.Buyable == nil || buy.Status.ChainID != network.ChainID {
		return []entity.Token{entity.MakeNetworkAsset(network)}
	}
	return copyTokens(buy.Buyable)
}

func copyTokens(tokens []entity.Token) []entity.Token {
	return append(make([]entity.Token, 0, len(tokens)), tokens...)
}
