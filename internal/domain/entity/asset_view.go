package entity

// BuyState is the state of the buy-options refresh.
type BuyState string

// Buy-options refresh states.
const (
	BuyStateIdle    BuyState = "idle"
	BuyStateLoading BuyState = "loading"
	BuyStateReady   BuyState = "ready"
	BuyStateFailed  BuyState = "failed"
)

// BuyStatus describes the refresh that produced the buyable assets.
type BuyStatus struct {
	State      BuyState `json:"state"`
	Generation uint64   `json:"generation"`
	ChainID    ChainID  `json:"chainId"`
	LastError  string   `json:"lastError,omitempty"`
}

// AssetView is the set of asset lists derived from one wallet snapshot.
type AssetView struct {
	SendableAssets []Token   `json:"sendAssetOptions"`
	BuyableAssets  []Token   `json:"buyAssetOptions"`
	RampAssets     []Token   `json:"rampAssetOptions"`
	WyreAssets     []Token   `json:"wyreAssetOptions"`
	RankedAssets   []Token   `json:"panelUserAssetList"`
	BuyStatus      BuyStatus `json:"buyStatus"`
}

// ProviderAvailability reports which on-ramp providers list an asset.
type ProviderAvailability struct {
	Symbol    string     `json:"symbol"`
	Providers []Provider `json:"providers"`
	Ramp      bool       `json:"isAvailableOnRamp"`
	Wyre      bool       `json:"isAvailableOnWyre"`
}

// Clone returns a copy of the view that shares no slices with v.
func (v AssetView) Clone() AssetView {
	out := v
	out.SendableAssets = cloneTokens(v.SendableAssets)
	out.BuyableAssets = cloneTokens(v.BuyableAssets)
	out.RampAssets = cloneTokens(v.RampAssets)
	out.WyreAssets = cloneTokens(v.WyreAssets)
	out.RankedAssets = cloneTokens(v.RankedAssets)
	return out
}

func cloneTokens(tokens []Token) []Token {
	if tokens == nil {
		return nil
	}
	return append(make([]Token, 0, len(tokens)), tokens...)
}
