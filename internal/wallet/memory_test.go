package wallet_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cyphera/kaia-bot/internal/wallet"
	"github.com/cyphera/kaia-bot/internal/walletconnect"
)

func TestMemoryStore_GetAbsent(t *testing.T) {
	store := wallet.NewMemoryStore()

	binding, err := store.Get(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Nil(t, binding)
}

func TestMemoryStore_SetAndGet(t *testing.T) {
	store := wallet.NewMemoryStore()
	ctx := context.Background()

	err := store.Set(ctx, "user-1", &wallet.Binding{
		Kind:    wallet.KindWalletConnect,
		Address: "0xabc",
		Topic:   "topic-1",
	})
	require.NoError(t, err)

	binding, err := store.Get(ctx, "user-1")
	require.NoError(t, err)
	require.NotNil(t, binding)
	assert.Equal(t, wallet.KindWalletConnect, binding.Kind)
	assert.Equal(t, "0xabc", binding.Address)
	assert.Equal(t, "topic-1", binding.Topic)
}

func TestMemoryStore_SetReplaces(t *testing.T) {
	store := wallet.NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "user-1", &wallet.Binding{Kind: wallet.KindWalletConnect, Address: "0xold"}))
	require.NoError(t, store.Set(ctx, "user-1", &wallet.Binding{Kind: wallet.KindKaiaWallet, Address: "0xnew"}))

	binding, err := store.Get(ctx, "user-1")
	require.NoError(t, err)
	require.NotNil(t, binding)
	assert.Equal(t, wallet.KindKaiaWallet, binding.Kind)
	assert.Equal(t, "0xnew", binding.Address)
}

func TestMemoryStore_Remove(t *testing.T) {
	store := wallet.NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "user-1", &wallet.Binding{Kind: wallet.KindKaiaWallet, Address: "0xabc"}))
	require.NoError(t, store.Remove(ctx, "user-1"))

	binding, err := store.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.Nil(t, binding)

	// Removing an absent binding is not an error.
	assert.NoError(t, store.Remove(ctx, "user-2"))
}

func TestMemoryStore_GetReturnsCopy(t *testing.T) {
	store := wallet.NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "user-1", &wallet.Binding{Kind: wallet.KindKaiaWallet, Address: "0xabc"}))

	binding, err := store.Get(ctx, "user-1")
	require.NoError(t, err)
	binding.Address = "0xmutated"

	fresh, err := store.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "0xabc", fresh.Address)
}

func TestBinding_WalletName(t *testing.T) {
	wc := wallet.Binding{
		Kind: wallet.KindWalletConnect,
		Peer: &walletconnect.PeerMetadata{Name: "MetaMask"},
	}
	assert.Equal(t, "MetaMask", wc.WalletName())

	anonymous := wallet.Binding{Kind: wallet.KindWalletConnect}
	assert.Equal(t, "wallet", anonymous.WalletName())

	kaia := wallet.Binding{Kind: wallet.KindKaiaWallet}
	assert.Equal(t, "Kaia Wallet", kaia.WalletName())
}
