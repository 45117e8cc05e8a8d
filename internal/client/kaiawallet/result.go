package kaiawallet

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
)

// ResultPayload is the type-specific outcome of a completed request.
// KlaytnAddress is set for auth results; SignedTx/TxHash for send_value and
// execute_contract results.
type ResultPayload struct {
	KlaytnAddress string `json:"klaytn_address,omitempty"`
	SignedTx      string `json:"signed_tx,omitempty"`
	TxHash        string `json:"tx_hash,omitempty"`
}

// Result is the body returned by GET /result/{requestKey}.
type Result struct {
	Status         Status        `json:"status"`
	Type           RequestType   `json:"type"`
	ChainID        string        `json:"chain_id"`
	RequestKey     string        `json:"request_key"`
	ExpirationTime int64         `json:"expiration_time"`
	Result         ResultPayload `json:"result"`
}

// Terminal reports whether the request has reached a final status.
func (r *Result) Terminal() bool {
	return r.Status == StatusCompleted || r.Status == StatusCanceled
}

// GetResult fetches the current status of a prepared request.
func (c *Client) GetResult(ctx context.Context, requestKey string) (*Result, error) {
	resp, err := c.httpClient.Get(ctx, fmt.Sprintf("result/%s", requestKey))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get result for request %s", requestKey)
	}

	var result Result
	if err := c.httpClient.ProcessJSONResponse(resp, &result); err != nil {
		return nil, errors.Wrap(err, "failed to process result response")
	}

	return &result, nil
}
