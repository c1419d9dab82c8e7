package valuation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"wallet-assets/internal/domain/entity"
)

const batAddress = "0x0D8775F648430679A709E98d2b0Cb6250d2887EF"

func TestAccountBalances_GetBalance(t *testing.T) {
	account := entity.Account{
		NativeBalance: "1000",
		TokenBalances: map[string]string{"0x0d8775f648430679a709e98d2b0cb6250d2887ef": "42"},
	}
	lookup := AccountBalances{}

	assert.Equal(t, "1000", lookup.GetBalance(account, entity.Token{Symbol: "ETH"}))
	assert.Equal(t, "42", lookup.GetBalance(account, entity.Token{Symbol: "BAT", ContractAddress: batAddress}))
	assert.Equal(t, "", lookup.GetBalance(account, entity.Token{Symbol: "ZRX", ContractAddress: "0xE41d2489571d322189246DaFA5ebDe1F4699F498"}))
	assert.Equal(t, "", lookup.GetBalance(entity.Account{}, entity.Token{Symbol: "BAT", ContractAddress: batAddress}))
}

func TestPricing_FindAssetPrice(t *testing.T) {
	p := NewPricing([]entity.SpotPrice{
		{FromAsset: "BAT", ToAsset: "USD", Price: "0.85"},
		{FromAsset: "BAT", ToAsset: "USD", Price: "9"},
		{FromAsset: "ZRX", ToAsset: "USD", Price: "not-a-number"},
	})

	price, ok := p.FindAssetPrice("BAT")
	assert.True(t, ok)
	assert.True(t, price.Equal(decimal.RequireFromString("0.85")))

	_, ok = p.FindAssetPrice("bat")
	assert.False(t, ok, "symbol match is case-sensitive")

	_, ok = p.FindAssetPrice("ZRX")
	assert.False(t, ok, "unparsable prices are dropped")
}

func TestPricing_ComputeFiatAmount(t *testing.T) {
	p := NewPricing([]entity.SpotPrice{
		{FromAsset: "BAT", ToAsset: "USD", Price: "0.85"},
		{FromAsset: "ETH", ToAsset: "USD", Price: "2954.12"},
	})

	tests := []struct {
		name     string
		balance  string
		symbol   string
		decimals int32
		want     string
	}{
		{name: "bat", balance: "238699740940532500", symbol: "BAT", decimals: 18, want: "0.202894779799452625"},
		{name: "one eth", balance: "1000000000000000000", symbol: "ETH", decimals: 18, want: "2954.12"},
		{name: "zero balance", balance: "0", symbol: "BAT", decimals: 18, want: "0"},
		{name: "empty balance", balance: "", symbol: "BAT", decimals: 18, want: "0"},
		{name: "bad balance", balance: "abc", symbol: "BAT", decimals: 18, want: "0"},
		{name: "no price", balance: "1000", symbol: "ZRX", decimals: 18, want: "0"},
		{name: "zero decimals", balance: "3", symbol: "BAT", decimals: 0, want: "2.55"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.ComputeFiatAmount(tt.balance, tt.symbol, tt.decimals)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s want %s", got, tt.want)
		})
	}
}
