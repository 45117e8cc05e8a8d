package services

import (
	"context"
	"time"

	"github.com/cyphera/kaia-bot/internal/client/kaiawallet"
)

// CustodialClient is the slice of the Kaia Wallet API the services use.
// *kaiawallet.Client satisfies it; tests substitute a mock.
type CustodialClient interface {
	PrepareAuth(ctx context.Context) (string, error)
	PrepareSendValue(ctx context.Context, from, to, valueHex string) (string, error)
	PrepareExecuteContract(ctx context.Context, to, methodABI, params, valueHex string) (string, error)
	PollResult(ctx context.Context, requestKey string, expected kaiawallet.RequestType, maxAttempts int, interval time.Duration) (*kaiawallet.Result, error)
}
