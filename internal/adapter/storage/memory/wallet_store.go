package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"wallet-assets/internal/domain"
	"wallet-assets/internal/domain/entity"
	domainRepo "wallet-assets/internal/domain/repository"
	"wallet-assets/internal/pkg/apperrors"

	"go.uber.org/zap"
)

// Compile-time check
var _ domainRepo.WalletStore = (*WalletStore)(nil)

type subscriber struct {
	id uint64
	fn func(entity.WalletState, entity.Change)
}

// WalletStore is the single-writer wallet-state store. Every mutation
// publishes a fresh snapshot to subscribers in registration order.
type WalletStore struct {
	mu     sync.Mutex
	state  entity.WalletState
	subs   []subscriber
	nextID uint64
	logger *zap.Logger

	// serializes mutate+notify so subscribers observe changes in order
	writeMu sync.Mutex
}

// NewWalletStore creates a store holding a copy of initial.
func NewWalletStore(initial entity.WalletState, logger *zap.Logger) *WalletStore {
	return &WalletStore{
		state:  initial.Clone(),
		logger: logger.Named("WalletStore"),
	}
}

// Snapshot returns a deep copy of the current state.
func (s *WalletStore) Snapshot() entity.WalletState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Subscribe registers fn for state changes. fn runs on the writer's
// goroutine and must not mutate the store.
func (s *WalletStore) Subscribe(fn func(entity.WalletState, entity.Change)) func() {
	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscriber{id: id, fn: fn})
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			for i, sub := range s.subs {
				if sub.id == id {
					s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
					return
				}
			}
		})
	}
}

// SelectNetwork selects the network with chainID from the network list.
func (s *WalletStore) SelectNetwork(_ context.Context, chainID entity.ChainID) error {
	return s.mutate(func(st *entity.WalletState) (entity.Change, error) {
		for _, n := range st.Networks {
			if n.ChainID == chainID {
				st.SelectedNetwork = n
				return entity.ChangeNetwork, nil
			}
		}
		return 0, fmt.Errorf("%w: %w: chain %s", apperrors.ErrNotFound, domain.ErrNetworkNotFound, chainID)
	})
}

// SelectAccount selects the account with address (case-insensitive).
func (s *WalletStore) SelectAccount(_ context.Context, address string) error {
	return s.mutate(func(st *entity.WalletState) (entity.Change, error) {
		for _, a := range st.Accounts {
			if strings.EqualFold(a.Address, address) {
				acc := a.Clone()
				st.SelectedAccount = &acc
				return entity.ChangeAccount, nil
			}
		}
		return 0, fmt.Errorf("%w: %w: %s", apperrors.ErrNotFound, domain.ErrAccountNotFound, address)
	})
}

// SetAccounts replaces the account list. The selected account is refreshed
// from the new list, or cleared when it is no longer present.
func (s *WalletStore) SetAccounts(accounts []entity.Account) {
	_ = s.mutate(func(st *entity.WalletState) (entity.Change, error) {
		st.Accounts = make([]entity.Account, len(accounts))
		for i, a := range accounts {
			st.Accounts[i] = a.Clone()
		}
		if st.SelectedAccount != nil {
			addr := st.SelectedAccount.Address
			st.SelectedAccount = nil
			for _, a := range st.Accounts {
				if strings.EqualFold(a.Address, addr) {
					acc := a.Clone()
					st.SelectedAccount = &acc
					break
				}
			}
		}
		return entity.ChangeAccount, nil
	})
}

// SetNetworks replaces the network list.
func (s *WalletStore) SetNetworks(networks []entity.Network) {
	_ = s.mutate(func(st *entity.WalletState) (entity.Change, error) {
		st.Networks = append([]entity.Network(nil), networks...)
		return entity.ChangeNetworkList, nil
	})
}

// SetVisibleTokens replaces the user's visible-token list.
func (s *WalletStore) SetVisibleTokens(tokens []entity.Token) {
	_ = s.mutate(func(st *entity.WalletState) (entity.Change, error) {
		st.VisibleTokens = append([]entity.Token(nil), tokens...)
		return entity.ChangeVisibleTokens, nil
	})
}

// SetSpotPrices replaces the spot-price list.
func (s *WalletStore) SetSpotPrices(prices []entity.SpotPrice) {
	_ = s.mutate(func(st *entity.WalletState) (entity.Change, error) {
		st.SpotPrices = append([]entity.SpotPrice(nil), prices...)
		return entity.ChangeSpotPrices, nil
	})
}

// Replace swaps the whole state.
func (s *WalletStore) Replace(state entity.WalletState) {
	_ = s.mutate(func(st *entity.WalletState) (entity.Change, error) {
		*st = state.Clone()
		return entity.ChangeNetwork | entity.ChangeNetworkList | entity.ChangeAccount |
			entity.ChangeVisibleTokens | entity.ChangeSpotPrices, nil
	})
}

func (s *WalletStore) mutate(fn func(*entity.WalletState) (entity.Change, error)) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	change, err := fn(&s.state)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	snapshot := s.state.Clone()
	subs := append([]subscriber(nil), s.subs...)
	s.mu.Unlock()

	s.logger.Debug("Wallet state changed",
		zap.Uint8("change", uint8(change)),
		zap.String("selectedChainId", snapshot.SelectedNetwork.ChainID.String()),
		zap.Int("subscribers", len(subs)),
	)
	for _, sub := range subs {
		sub.fn(snapshot.Clone(), change)
	}
	return nil
}
