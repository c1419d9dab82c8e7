package seed_dto

// TokenRaw is a token as written in YAML seed files.
type TokenRaw struct {
	ContractAddress string `yaml:"contract_address"`
	Name            string `yaml:"name"`
	Symbol          string `yaml:"symbol"`
	Logo            string `yaml:"logo"`
	IsErc20         bool   `yaml:"is_erc20"`
	IsErc721        bool   `yaml:"is_erc721"`
	Decimals        int32  `yaml:"decimals"`
	Visible         *bool  `yaml:"visible,omitempty"`
	TokenID         string `yaml:"token_id"`
	CoingeckoID     string `yaml:"coingecko_id"`
	ChainID         string `yaml:"chain_id"`
}

// AssetListRaw is the root of a provider asset list file.
type AssetListRaw struct {
	Assets []TokenRaw `yaml:"assets"`
}

// NetworkRaw is a network as written in the wallet seed.
type NetworkRaw struct {
	ChainID    string `yaml:"chain_id"`
	Name       string `yaml:"name"`
	Symbol     string `yaml:"symbol"`
	SymbolName string `yaml:"symbol_name"`
	Decimals   int32  `yaml:"decimals"`
}

// AccountRaw is an account as written in the wallet seed.
type AccountRaw struct {
	Address  string            `yaml:"address"`
	Name     string            `yaml:"name"`
	Balance  string            `yaml:"balance"`
	Balances map[string]string `yaml:"token_balances"`
}

// SpotPriceRaw is a spot price as written in the wallet seed.
type SpotPriceRaw struct {
	FromAsset string `yaml:"from_asset"`
	ToAsset   string `yaml:"to_asset"`
	Price     string `yaml:"price"`
}

// WalletRaw is the root of the wallet seed file.
type WalletRaw struct {
	Networks        []NetworkRaw   `yaml:"networks"`
	SelectedNetwork string         `yaml:"selected_network"`
	Accounts        []AccountRaw   `yaml:"accounts"`
	SelectedAccount string         `yaml:"selected_account"`
	VisibleTokens   []TokenRaw     `yaml:"visible_tokens"`
	SpotPrices      []SpotPriceRaw `yaml:"spot_prices"`
}
