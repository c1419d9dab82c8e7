package entity

// WalletState is the read contract of the wallet store.
type WalletState struct {
	SelectedAccount *Account    `json:"selectedAccount,omitempty"`
	Networks        []Network   `json:"networkList"`
	SelectedNetwork Network     `json:"selectedNetwork"`
	Accounts        []Account   `json:"accounts"`
	VisibleTokens   []Token     `json:"userVisibleTokensInfo"`
	SpotPrices      []SpotPrice `json:"spotPrices"`
}

// Clone returns a deep copy so that readers never share memory with the store.
func (s WalletState) Clone() WalletState {
	out := WalletState{
		SelectedNetwork: s.SelectedNetwork,
		Networks:        append([]Network(nil), s.Networks...),
		VisibleTokens:   append([]Token(nil), s.VisibleTokens...),
		SpotPrices:      append([]SpotPrice(nil), s.SpotPrices...),
	}
	if s.Accounts != nil {
		out.Accounts = make([]Account, len(s.Accounts))
		for i, a := range s.Accounts {
			out.Accounts[i] = a.Clone()
		}
	}
	if s.SelectedAccount != nil {
		a := s.SelectedAccount.Clone()
		out.SelectedAccount = &a
	}
	return out
}

// Clone returns a deep copy of the account.
func (a Account) Clone() Account {
	out := a
	if a.TokenBalances != nil {
		out.TokenBalances = make(map[string]string, len(a.TokenBalances))
		for k, v := range a.TokenBalances {
			out.TokenBalances[k] = v
		}
	}
	return out
}

// Change is a bitmask of the parts of WalletState touched by a mutation.
type Change uint8

// Change flags.
const (
	ChangeNetwork Change = 1 << iota
	ChangeNetworkList
	ChangeAccount
	ChangeVisibleTokens
	ChangeSpotPrices
)

// Has reports whether c includes flag.
func (c Change) Has(flag Change) bool {
	return c&flag != 0
}
