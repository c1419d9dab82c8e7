package seed

import (
	"fmt"
	"strings"

	dto "wallet-assets/internal/adapter/storage/seed/dto"
	"wallet-assets/internal/domain/entity"
	"wallet-assets/internal/pkg/apperrors"
)

func toDomainToken(raw dto.TokenRaw) (entity.Token, error) {
	if strings.TrimSpace(raw.Symbol) == "" {
		return entity.Token{}, fmt.Errorf("%w: token without symbol", apperrors.ErrInvalidInput)
	}
	chainID, err := entity.NewChainID(raw.ChainID)
	if err != nil {
		return entity.Token{}, fmt.Errorf("%w: token %s: %v", apperrors.ErrInvalidInput, raw.Symbol, err)
	}
	if err := entity.ValidateContractAddress(raw.ContractAddress); err != nil {
		return entity.Token{}, fmt.Errorf("%w: token %s: %v", apperrors.ErrInvalidInput, raw.Symbol, err)
	}
	visible := true
	if raw.Visible != nil {
		visible = *raw.Visible
	}
	return entity.Token{
		ContractAddress: strings.TrimSpace(raw.ContractAddress),
		Name:            raw.Name,
		Symbol:          raw.Symbol,
		Decimals:        raw.Decimals,
		Logo:            raw.Logo,
		IsFungible:      raw.IsErc20,
		IsNonFungible:   raw.IsErc721,
		Visible:         visible,
		TokenID:         raw.TokenID,
		CoingeckoID:     raw.CoingeckoID,
		ChainID:         chainID,
	}, nil
}

func toDomainTokens(raw []dto.TokenRaw) ([]entity.Token, error) {
	tokens := make([]entity.Token, 0, len(raw))
	for i, r := range raw {
		t, err := toDomainToken(r)
		if err != nil {
			return nil, fmt.Errorf("token #%d: %w", i, err)
		}
		tokens = append(tokens, t)
	}
	return tokens, nil
}

func toDomainNetwork(raw dto.NetworkRaw) (entity.Network, error) {
	chainID, err := entity.NewChainID(raw.ChainID)
	if err != nil {
		return entity.Network{}, fmt.Errorf("%w: network %s: %v", apperrors.ErrInvalidInput, raw.Name, err)
	}
	return entity.Network{
		ChainID:    chainID,
		Name:       raw.Name,
		Symbol:     raw.Symbol,
		SymbolName: raw.SymbolName,
		Decimals:   raw.Decimals,
	}, nil
}

// toDomainAccount lowercases balance keys so lookups by Token.BalanceKey hit.
func toDomainAccount(raw dto.AccountRaw) entity.Account {
	balances := make(map[string]string, len(raw.Balances))
	for addr, bal := range raw.Balances {
		balances[strings.ToLower(strings.TrimSpace(addr))] = bal
	}
	return entity.Account{
		Address:       raw.Address,
		Name:          raw.Name,
		NativeBalance: raw.Balance,
		TokenBalances: balances,
	}
}

func toDomainWallet(raw dto.WalletRaw) (entity.WalletState, error) {
	var state entity.WalletState

	for _, n := range raw.Networks {
		network, err := toDomainNetwork(n)
		if err != nil {
			return entity.WalletState{}, err
		}
		state.Networks = append(state.Networks, network)
	}
	if len(state.Networks) > 0 {
		state.SelectedNetwork = state.Networks[0]
	}
	if raw.SelectedNetwork != "" {
		want, err := entity.NewChainID(raw.SelectedNetwork)
		if err != nil {
			return entity.WalletState{}, fmt.Errorf("%w: selected_network: %v", apperrors.ErrInvalidInput, err)
		}
		found := false
		for _, n := range state.Networks {
			if n.ChainID == want {
				state.SelectedNetwork = n
				found = true
				break
			}
		}
		if !found {
			return entity.WalletState{}, fmt.Errorf("%w: selected_network %s is not in networks", apperrors.ErrInvalidInput, want)
		}
	}

	for _, a := range raw.Accounts {
		state.Accounts = append(state.Accounts, toDomainAccount(a))
	}
	if raw.SelectedAccount != "" {
		for _, a := range state.Accounts {
			if strings.EqualFold(a.Address, raw.SelectedAccount) {
				acc := a.Clone()
				state.SelectedAccount = &acc
				break
			}
		}
		if state.SelectedAccount == nil {
			return entity.WalletState{}, fmt.Errorf("%w: selected_account %s is not in accounts", apperrors.ErrInvalidInput, raw.SelectedAccount)
		}
	}

	tokens, err := toDomainTokens(raw.VisibleTokens)
	if err != nil {
		return entity.WalletState{}, fmt.Errorf("visible_tokens: %w", err)
	}
	state.VisibleTokens = tokens

	for _, p := range raw.SpotPrices {
		state.SpotPrices = append(state.SpotPrices, entity.SpotPrice{
			FromAsset: p.FromAsset,
			ToAsset:   p.ToAsset,
			Price:     p.Price,
		})
	}
	return state, nil
}
