// Package wallet holds the per-user wallet binding and the stores that
// persist it for the lifetime of a connection.
package wallet

import (
	"github.com/cyphera/kaia-bot/internal/walletconnect"
)

// Kind tags which connection path produced a binding.
type Kind string

const (
	// KindWalletConnect is a direct peer session over the pairing protocol.
	KindWalletConnect Kind = "walletconnect"
	// KindKaiaWallet is a custodial Kaia Wallet connection.
	KindKaiaWallet Kind = "kaia"
)

// Binding is the wallet a chat user currently has connected. A user has at
// most one binding at a time; connecting again requires disconnecting
// first. Topic and Peer are only set for KindWalletConnect.
type Binding struct {
	Kind    Kind                        `json:"kind"`
	Address string                      `json:"address"`
	Topic   string                      `json:"topic,omitempty"`
	Peer    *walletconnect.PeerMetadata `json:"peer,omitempty"`
}

// WalletName returns the display name of the connected wallet.
func (b *Binding) WalletName() string {
	switch b.Kind {
	case KindWalletConnect:
		if b.Peer != nil && b.Peer.Name != "" {
			return b.Peer.Name
		}
		return "wallet"
	case KindKaiaWallet:
		return "Kaia Wallet"
	}
	return "wallet"
}
