package backend_dto

// TokenRaw is a buyable token as returned by the wallet backend registry.
type TokenRaw struct {
	ContractAddress string `json:"contractAddress"`
	Name            string `json:"name"`
	Symbol          string `json:"symbol"`
	Logo            string `json:"logo"`
	IsErc20         bool   `json:"isErc20"`
	IsErc721        bool   `json:"isErc721"`
	Decimals        int32  `json:"decimals"`
	Visible         bool   `json:"visible"`
	TokenID         string `json:"tokenId"`
	CoingeckoID     string `json:"coingeckoId"`
	ChainID         string `json:"chainId,omitempty"`
}

// TokenListRaw accepts both a bare array and an object wrapping the tokens.
type TokenListRaw struct {
	Tokens []TokenRaw `json:"tokens"`
}
