package kaiawallet

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/cyphera/kaia-bot/internal/logger"
)

// ErrPollExhausted is returned when a request never reaches a terminal
// status within the allowed number of attempts. Callers must surface this
// as a timeout, which is distinct from an explicit cancellation.
var ErrPollExhausted = errors.New("kaiawallet: polling attempts exhausted")

// PollResult polls the result endpoint until the request reaches a terminal
// status or maxAttempts is used up. Transport errors during individual
// attempts are logged and the loop continues; only exhausting all attempts
// fails the poll. A completed result whose type does not match expected is
// not trusted and polling continues.
func (c *Client) PollResult(ctx context.Context, requestKey string, expected RequestType, maxAttempts int, interval time.Duration) (*Result, error) {
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		result, err := c.GetResult(ctx, requestKey)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			logger.Warn("polling attempt failed",
				zap.String("request_key", requestKey),
				zap.Int("attempt", attempt),
				zap.Error(err))
		} else {
			switch result.Status {
			case StatusCanceled:
				return result, nil
			case StatusCompleted:
				if result.Type == expected {
					return result, nil
				}
				logger.Warn("completed result has unexpected type",
					zap.String("request_key", requestKey),
					zap.String("expected", string(expected)),
					zap.String("got", string(result.Type)))
			}
		}

		if attempt == maxAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(interval):
		}
	}

	logger.Info("polling exhausted without terminal status",
		zap.String("request_key", requestKey),
		zap.Int("max_attempts", maxAttempts))
	return nil, ErrPollExhausted
}
