package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewChainID(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    ChainID
		wantErr bool
	}{
		{name: "mainnet", raw: "0x1", want: MainnetChainID},
		{name: "normalizes case and space", raw: " 0xA86A ", want: AvalancheMainnetChainID},
		{name: "filecoin opaque id", raw: "f", want: FilecoinMainnetChainID},
		{name: "empty", raw: "  ", wantErr: true},
		{name: "bad hex", raw: "0xzz", wantErr: true},
		{name: "leading zero", raw: "0x01", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewChainID(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateContractAddress(t *testing.T) {
	assert.NoError(t, ValidateContractAddress(""))
	assert.NoError(t, ValidateContractAddress("0x0D8775F648430679A709E98d2b0Cb6250d2887EF"))
	assert.NoError(t, ValidateContractAddress("Es9vMFrzaCERmJfrF4H2FYD4KCoNkY11McCe8BenwNYB"))
	assert.Error(t, ValidateContractAddress("0x1234"))
}

func TestToken_SameAs(t *testing.T) {
	a := Token{ContractAddress: "0x0D8775F648430679A709E98d2b0Cb6250d2887EF", ChainID: MainnetChainID}
	b := Token{ContractAddress: "0x0d8775f648430679a709e98d2b0cb6250d2887ef", ChainID: MainnetChainID}
	c := Token{ContractAddress: "0x0d8775f648430679a709e98d2b0cb6250d2887ef", ChainID: PolygonMainnetChainID}

	assert.True(t, a.SameAs(b))
	assert.False(t, a.SameAs(c))
	assert.Equal(t, "0x0d8775f648430679a709e98d2b0cb6250d2887ef", a.BalanceKey())
	assert.False(t, a.IsNative())
	assert.True(t, Token{}.IsNative())
}

func TestMakeNetworkAsset(t *testing.T) {
	tests := []struct {
		name     string
		network  Network
		wantLogo string
	}{
		{
			name:     "ethereum by symbol",
			network:  Network{ChainID: MainnetChainID, Symbol: "ETH", SymbolName: "Ethereum", Decimals: 18},
			wantLogo: EthereumIcon,
		},
		{
			name:     "polygon by chain",
			network:  Network{ChainID: PolygonMainnetChainID, Symbol: "MATIC", SymbolName: "Polygon", Decimals: 18},
			wantLogo: PolygonIcon,
		},
		{
			name:     "optimism by chain wins over symbol",
			network:  Network{ChainID: OptimismMainnetChainID, Symbol: "ETH", SymbolName: "Ether", Decimals: 18},
			wantLogo: OptimismIcon,
		},
		{
			name:     "solana by lowercase symbol",
			network:  Network{ChainID: SolanaMainnetChainID, Symbol: "sol", SymbolName: "Solana", Decimals: 9},
			wantLogo: SolanaIcon,
		},
		{
			name:     "filecoin",
			network:  Network{ChainID: FilecoinMainnetChainID, Symbol: "FIL", SymbolName: "Filecoin", Decimals: 18},
			wantLogo: FilecoinIcon,
		},
		{
			name:     "unknown",
			network:  Network{ChainID: "0x539", Symbol: "GO", SymbolName: "Local", Decimals: 18},
			wantLogo: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MakeNetworkAsset(tt.network)
			assert.Equal(t, Token{
				Name:     tt.network.SymbolName,
				Symbol:   tt.network.Symbol,
				Logo:     tt.wantLogo,
				Decimals: tt.network.Decimals,
				Visible:  true,
				ChainID:  tt.network.ChainID,
			}, got)
			assert.True(t, got.IsNative())
		})
	}
}

func TestWalletState_CloneIsDeep(t *testing.T) {
	acc := Account{Address: "0xabc", TokenBalances: map[string]string{"0x1": "5"}}
	state := WalletState{
		SelectedAccount: &acc,
		Accounts:        []Account{acc},
		Networks:        []Network{{ChainID: MainnetChainID}},
		VisibleTokens:   []Token{{Symbol: "ETH"}},
		SpotPrices:      []SpotPrice{{FromAsset: "ETH", Price: "1"}},
	}

	clone := state.Clone()
	clone.SelectedAccount.TokenBalances["0x1"] = "6"
	clone.Accounts[0].TokenBalances["0x1"] = "7"
	clone.Networks[0].Name = "changed"
	clone.VisibleTokens[0].Symbol = "BAT"
	clone.SpotPrices[0].Price = "2"

	assert.Equal(t, "5", state.SelectedAccount.TokenBalances["0x1"])
	assert.Equal(t, "5", state.Accounts[0].TokenBalances["0x1"])
	assert.Empty(t, state.Networks[0].Name)
	assert.Equal(t, "ETH", state.VisibleTokens[0].Symbol)
	assert.Equal(t, "1", state.SpotPrices[0].Price)
}

func TestChange_Has(t *testing.T) {
	c := ChangeNetwork | ChangeSpotPrices
	assert.True(t, c.Has(ChangeNetwork))
	assert.True(t, c.Has(ChangeSpotPrices))
	assert.False(t, c.Has(ChangeAccount))
}
