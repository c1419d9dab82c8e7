package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"wallet-assets/internal/domain"
	"wallet-assets/internal/domain/entity"
	"wallet-assets/internal/pkg/apperrors"
)

type notification struct {
	state  entity.WalletState
	change entity.Change
}

func seededState() entity.WalletState {
	acc := entity.Account{Address: "0xAbC0000000000000000000000000000000000001", TokenBalances: map[string]string{"0x1": "1"}}
	return entity.WalletState{
		Networks: []entity.Network{
			{ChainID: entity.MainnetChainID, Symbol: "ETH"},
			{ChainID: entity.PolygonMainnetChainID, Symbol: "MATIC"},
		},
		SelectedNetwork: entity.Network{ChainID: entity.MainnetChainID, Symbol: "ETH"},
		Accounts:        []entity.Account{acc},
		SelectedAccount: &acc,
	}
}

func TestWalletStore_SnapshotIsACopy(t *testing.T) {
	store := NewWalletStore(seededState(), zap.NewNop())

	snap := store.Snapshot()
	snap.SelectedAccount.TokenBalances["0x1"] = "changed"
	snap.Networks[0].Symbol = "changed"

	again := store.Snapshot()
	assert.Equal(t, "1", again.SelectedAccount.TokenBalances["0x1"])
	assert.Equal(t, "ETH", again.Networks[0].Symbol)
}

func TestWalletStore_SelectNetworkNotifies(t *testing.T) {
	store := NewWalletStore(seededState(), zap.NewNop())
	var got []notification
	unsubscribe := store.Subscribe(func(s entity.WalletState, c entity.Change) {
		got = append(got, notification{state: s, change: c})
	})
	defer unsubscribe()

	require.NoError(t, store.SelectNetwork(context.Background(), entity.PolygonMainnetChainID))

	require.Len(t, got, 1)
	assert.True(t, got[0].change.Has(entity.ChangeNetwork))
	assert.Equal(t, entity.PolygonMainnetChainID, got[0].state.SelectedNetwork.ChainID)
	assert.Equal(t, entity.PolygonMainnetChainID, store.Snapshot().SelectedNetwork.ChainID)
}

func TestWalletStore_SelectUnknownNetwork(t *testing.T) {
	store := NewWalletStore(seededState(), zap.NewNop())
	calls := 0
	store.Subscribe(func(entity.WalletState, entity.Change) { calls++ })

	err := store.SelectNetwork(context.Background(), entity.BinanceSmartChainID)

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.ErrorIs(t, err, domain.ErrNetworkNotFound)
	assert.Zero(t, calls)
	assert.Equal(t, entity.MainnetChainID, store.Snapshot().SelectedNetwork.ChainID)
}

func TestWalletStore_SelectAccount(t *testing.T) {
	store := NewWalletStore(seededState(), zap.NewNop())

	require.NoError(t, store.SelectAccount(context.Background(), "0xabc0000000000000000000000000000000000001"))
	assert.Equal(t, "0xAbC0000000000000000000000000000000000001", store.Snapshot().SelectedAccount.Address)

	err := store.SelectAccount(context.Background(), "0xdef")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestWalletStore_SetAccountsRefreshesSelection(t *testing.T) {
	store := NewWalletStore(seededState(), zap.NewNop())

	updated := entity.Account{Address: "0xabc0000000000000000000000000000000000001", TokenBalances: map[string]string{"0x1": "2"}}
	store.SetAccounts([]entity.Account{updated})
	assert.Equal(t, "2", store.Snapshot().SelectedAccount.TokenBalances["0x1"])

	store.SetAccounts([]entity.Account{{Address: "0x0000000000000000000000000000000000000002"}})
	assert.Nil(t, store.Snapshot().SelectedAccount)
}

func TestWalletStore_Unsubscribe(t *testing.T) {
	store := NewWalletStore(seededState(), zap.NewNop())
	var first, second []entity.Change
	unsubscribeFirst := store.Subscribe(func(_ entity.WalletState, c entity.Change) { first = append(first, c) })
	store.Subscribe(func(_ entity.WalletState, c entity.Change) { second = append(second, c) })

	store.SetSpotPrices([]entity.SpotPrice{{FromAsset: "ETH", Price: "1"}})
	unsubscribeFirst()
	unsubscribeFirst()
	store.SetVisibleTokens([]entity.Token{{Symbol: "ETH"}})
	store.SetNetworks([]entity.Network{{ChainID: entity.MainnetChainID}})

	assert.Equal(t, []entity.Change{entity.ChangeSpotPrices}, first)
	assert.Equal(t, []entity.Change{entity.ChangeSpotPrices, entity.ChangeVisibleTokens, entity.ChangeNetworkList}, second)
}

func TestWalletStore_Replace(t *testing.T) {
	store := NewWalletStore(entity.WalletState{}, zap.NewNop())
	var change entity.Change
	store.Subscribe(func(_ entity.WalletState, c entity.Change) { change = c })

	store.Replace(seededState())

	assert.True(t, change.Has(entity.ChangeNetwork))
	assert.True(t, change.Has(entity.ChangeAccount))
	assert.Equal(t, seededState(), store.Snapshot())
}
