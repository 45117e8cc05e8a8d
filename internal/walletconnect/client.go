// Package walletconnect defines the surface the bot needs from a wallet
// pairing protocol implementation: open a handshake, route requests to an
// approved session, and tear sessions down. The relay transport behind it
// is an external collaborator injected at startup.
package walletconnect

import (
	"context"
	"encoding/json"
)

// Namespace describes the capabilities a handshake requires from the peer.
type Namespace struct {
	Methods []string `json:"methods"`
	Chains  []string `json:"chains"`
	Events  []string `json:"events"`
}

// ConnectParams carries the required namespaces of a handshake.
type ConnectParams struct {
	RequiredNamespaces map[string]Namespace `json:"requiredNamespaces"`
}

// Approval suspends until the remote peer approves or rejects the
// handshake. It honors ctx cancellation.
type Approval func(ctx context.Context) (*Session, error)

// ConnectResult is the pairing URI to present to the user plus the
// approval suspension.
type ConnectResult struct {
	URI      string
	Approval Approval
}

// MethodCall is a JSON-RPC style call routed to the peer wallet.
type MethodCall struct {
	Method string      `json:"method"`
	Params interface{} `json:"params"`
}

// SignClient is the pairing protocol client.
type SignClient interface {
	// Connect opens a handshake and returns the pairing URI together with
	// the approval suspension.
	Connect(ctx context.Context, params ConnectParams) (*ConnectResult, error)

	// Request sends a method call over an approved session. The call
	// suspends until the peer responds (signs or rejects).
	Request(ctx context.Context, topic, chainID string, call MethodCall) (json.RawMessage, error)

	// Disconnect tears a session down.
	Disconnect(ctx context.Context, topic, reason string) error

	// Session returns the live session for a topic, if any.
	Session(topic string) (*Session, bool)
}

// RequiredEIP155Namespaces builds the namespace set the bot asks every
// wallet for: transaction sending and message signing on the given chain.
func RequiredEIP155Namespaces(chainID string) ConnectParams {
	return ConnectParams{
		RequiredNamespaces: map[string]Namespace{
			"eip155": {
				Methods: []string{
					"eth_sendTransaction",
					"eth_signTransaction",
					"eth_sign",
					"personal_sign",
					"eth_signTypedData",
				},
				Chains: []string{chainID},
				Events: []string{"chainChanged", "accountsChanged"},
			},
		},
	}
}
