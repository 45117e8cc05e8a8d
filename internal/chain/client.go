// Package chain wraps the JSON-RPC node the bot reads gas parameters and
// contract state from. Transactions themselves are never submitted here;
// signing and submission happen inside the user's wallet.
package chain

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/ethclient"
	"go.uber.org/zap"

	"github.com/cyphera/kaia-bot/internal/logger"
)

// CallMsg describes a transaction for gas estimation.
type CallMsg struct {
	From  string
	To    string
	Value *big.Int
	Data  []byte
}

// RPC is the node surface the bot depends on.
type RPC interface {
	// GasPrice returns the suggested gas price as a hex quantity string.
	GasPrice(ctx context.Context) (string, error)

	// EstimateGas returns the gas estimate for msg as a hex quantity string.
	EstimateGas(ctx context.Context, msg CallMsg) (string, error)

	// CallContract executes a read-only contract call.
	CallContract(ctx context.Context, to string, data []byte) ([]byte, error)
}

// Client is the ethclient-backed RPC implementation.
type Client struct {
	eth    *ethclient.Client
	logger *zap.Logger
}

// Dial connects to the RPC endpoint.
func Dial(rpcEndpoint string) (*Client, error) {
	eth, err := ethclient.Dial(rpcEndpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RPC endpoint: %w", err)
	}
	return &Client{eth: eth, logger: logger.Log}, nil
}

// Close releases the underlying RPC connection.
func (c *Client) Close() {
	c.eth.Close()
}

// GasPrice returns the node's suggested gas price as a hex quantity.
func (c *Client) GasPrice(ctx context.Context) (string, error) {
	price, err := c.eth.SuggestGasPrice(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to get gas price: %w", err)
	}
	return hexutil.EncodeBig(price), nil
}

// EstimateGas estimates gas for the given call and returns it as a hex
// quantity.
func (c *Client) EstimateGas(ctx context.Context, msg CallMsg) (string, error) {
	callMsg := ethereum.CallMsg{
		From:  common.HexToAddress(msg.From),
		Value: msg.Value,
		Data:  msg.Data,
	}
	if msg.To != "" {
		to := common.HexToAddress(msg.To)
		callMsg.To = &to
	}

	gas, err := c.eth.EstimateGas(ctx, callMsg)
	if err != nil {
		c.logger.Error("gas estimation failed",
			zap.String("from", msg.From),
			zap.String("to", msg.To),
			zap.Error(err))
		return "", fmt.Errorf("failed to estimate gas: %w", err)
	}
	return hexutil.EncodeUint64(gas), nil
}

// CallContract executes a read-only call against a contract.
func (c *Client) CallContract(ctx context.Context, to string, data []byte) ([]byte, error) {
	addr := common.HexToAddress(to)
	out, err := c.eth.CallContract(ctx, ethereum.CallMsg{To: &addr, Data: data}, nil)
	if err != nil {
		return nil, fmt.Errorf("contract call failed: %w", err)
	}
	return out, nil
}
