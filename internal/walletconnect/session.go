package walletconnect

import (
	"strings"
	"time"
)

// Redirect holds the deep-link targets a peer wallet advertises for
// returning the user to the app after an action.
type Redirect struct {
	Native    string `json:"native,omitempty"`
	Universal string `json:"universal,omitempty"`
}

// PeerMetadata is the descriptive record the remote wallet sends on
// session approval.
type PeerMetadata struct {
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	URL         string    `json:"url,omitempty"`
	Icons       []string  `json:"icons,omitempty"`
	Redirect    *Redirect `json:"redirect,omitempty"`
}

// Session is an approved pairing with a remote wallet. Accounts are CAIP-10
// identifiers, e.g. "eip155:1001:0xabc...".
type Session struct {
	Topic    string       `json:"topic"`
	Expiry   int64        `json:"expiry"`
	Peer     PeerMetadata `json:"peer"`
	Accounts []string     `json:"accounts"`
}

// Expired reports whether the session's expiry timestamp has passed.
func (s *Session) Expired(now time.Time) bool {
	return s.Expiry > 0 && now.Unix() >= s.Expiry
}

// AccountAddress extracts the plain account address from the first session
// account, or "" when the session exposes none.
func (s *Session) AccountAddress() string {
	if len(s.Accounts) == 0 {
		return ""
	}
	parts := strings.Split(s.Accounts[0], ":")
	return parts[len(parts)-1]
}
