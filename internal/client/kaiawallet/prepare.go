package kaiawallet

import (
	"context"

	"github.com/pkg/errors"
)

// BappInfo identifies the requesting application to the wallet app.
type BappInfo struct {
	Name string `json:"name"`
}

// Transaction describes the on-chain operation a prepared request should
// carry. For send_value only To/Value (and optionally From) are set; for
// execute_contract the ABI of the target method and its JSON-encoded
// parameter list are included as well.
type Transaction struct {
	From   string `json:"from,omitempty"`
	To     string `json:"to"`
	Value  string `json:"value"`
	ABI    string `json:"abi,omitempty"`
	Params string `json:"params,omitempty"`
}

// PrepareRequest is the body of POST /prepare.
type PrepareRequest struct {
	Type        RequestType  `json:"type"`
	ChainID     string       `json:"chain_id"`
	Bapp        BappInfo     `json:"bapp"`
	Transaction *Transaction `json:"transaction,omitempty"`
}

// PrepareResponse is the body returned by POST /prepare.
type PrepareResponse struct {
	RequestKey     string `json:"request_key"`
	Status         Status `json:"status"`
	ExpirationTime int64  `json:"expiration_time"`
}

// Prepare registers a request with the wallet API and returns its request key.
func (c *Client) Prepare(ctx context.Context, reqType RequestType, tx *Transaction) (string, error) {
	request := PrepareRequest{
		Type:        reqType,
		ChainID:     c.chainID,
		Bapp:        BappInfo{Name: c.appName},
		Transaction: tx,
	}

	resp, err := c.httpClient.Post(ctx, "prepare", request)
	if err != nil {
		return "", errors.Wrapf(err, "failed to prepare %s request", reqType)
	}

	var response PrepareResponse
	if err := c.httpClient.ProcessJSONResponse(resp, &response); err != nil {
		return "", errors.Wrap(err, "failed to process prepare response")
	}
	if response.RequestKey == "" {
		return "", errors.New("prepare response missing request key")
	}

	return response.RequestKey, nil
}

// PrepareAuth registers a wallet-connection challenge.
func (c *Client) PrepareAuth(ctx context.Context) (string, error) {
	return c.Prepare(ctx, RequestTypeAuth, nil)
}

// PrepareSendValue registers a plain value transfer.
func (c *Client) PrepareSendValue(ctx context.Context, from, to, valueHex string) (string, error) {
	return c.Prepare(ctx, RequestTypeSendValue, &Transaction{
		From:  from,
		To:    to,
		Value: valueHex,
	})
}

// PrepareExecuteContract registers a contract-method invocation. methodABI is
// the JSON ABI fragment of the target method and params its JSON-encoded
// argument list, both passed through to the wallet app verbatim.
func (c *Client) PrepareExecuteContract(ctx context.Context, to, methodABI, params, valueHex string) (string, error) {
	return c.Prepare(ctx, RequestTypeExecuteContract, &Transaction{
		To:     to,
		Value:  valueHex,
		ABI:    methodABI,
		Params: params,
	})
}
