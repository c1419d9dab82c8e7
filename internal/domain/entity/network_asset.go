package entity

import "strings"

// Logo references for native assets.
const (
	OptimismIcon  = "chrome://wallet/optimism.png"
	PolygonIcon   = "chrome://erc-token-images/matic.png"
	BNBIcon       = "chrome://wallet/bnb.png"
	AvalancheIcon = "chrome://erc-token-images/avax.png"
	FantomIcon    = "chrome://wallet/fantom.png"
	CeloIcon      = "chrome://wallet/celo.png"
	SolanaIcon    = "chrome://wallet/sol.png"
	FilecoinIcon  = "chrome://wallet/filecoin.png"
	EthereumIcon  = "chrome://erc-token-images/eth.png"
)

// MakeNetworkAsset synthesizes the native token of a network.
func MakeNetworkAsset(network Network) Token {
	return Token{
		ContractAddress: "",
		Name:            network.SymbolName,
		Symbol:          network.Symbol,
		Logo:            nativeLogo(network),
		IsFungible:      false,
		IsNonFungible:   false,
		Decimals:        network.Decimals,
		Visible:         true,
		ChainID:         network.ChainID,
	}
}

func nativeLogo(network Network) string {
	switch network.ChainID {
	case OptimismMainnetChainID:
		return OptimismIcon
	case PolygonMainnetChainID:
		return PolygonIcon
	case BinanceSmartChainID:
		return BNBIcon
	case AvalancheMainnetChainID:
		return AvalancheIcon
	case FantomMainnetChainID:
		return FantomIcon
	case CeloMainnetChainID:
		return CeloIcon
	}

	switch strings.ToUpper(network.Symbol) {
	case "SOL":
		return SolanaIcon
	case "FIL":
		return FilecoinIcon
	case "ETH":
		return EthereumIcon
	default:
		return ""
	}
}
