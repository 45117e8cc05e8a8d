package kaiawallet

import (
	"net/url"

	httpclient "github.com/cyphera/kaia-bot/internal/client/http"
)

const (
	// DefaultAPIBaseURL is the production Kaia Wallet Web API endpoint.
	DefaultAPIBaseURL = "https://api.kaiawallet.io/api/v1/k"

	// DeepLinkScheme opens the Kaia Wallet app on a prepared request.
	deepLinkFormat = "kaikas://wallet/api?request_key="
)

// RequestType identifies the kind of operation a prepared request performs.
type RequestType string

const (
	RequestTypeAuth            RequestType = "auth"
	RequestTypeSendValue       RequestType = "send_value"
	RequestTypeExecuteContract RequestType = "execute_contract"
)

// Status is the lifecycle state of a prepared request.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusCanceled  Status = "canceled"
)

// Client calls the Kaia Wallet Web API. The API is asynchronous: a prepare
// call returns a request key, the wallet app picks the request up through a
// deep link, and the outcome is read back from the result endpoint.
type Client struct {
	httpClient *httpclient.Client
	chainID    string
	appName    string
}

// NewClient creates a Kaia Wallet API client for the given chain.
func NewClient(baseURL, chainID, appName string) *Client {
	if baseURL == "" {
		baseURL = DefaultAPIBaseURL
	}
	return &Client{
		httpClient: httpclient.NewClient(
			httpclient.WithBaseURL(baseURL),
		),
		chainID: chainID,
		appName: appName,
	}
}

// DeepLink returns the kaikas:// link that opens the wallet app on the
// prepared request.
func DeepLink(requestKey string) string {
	return deepLinkFormat + url.QueryEscape(requestKey)
}
