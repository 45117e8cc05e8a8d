package line

import (
	"context"
	"fmt"
	"io"

	httpclient "github.com/cyphera/kaia-bot/internal/client/http"
)

const defaultAPIBaseURL = "https://api.line.me/v2/bot"

// Sender delivers messages to a chat user. The bot core only ever needs
// this one operation from the messaging platform.
type Sender interface {
	SendMessage(ctx context.Context, to string, messages []Message) error
}

// Client is the LINE Messaging API push client.
type Client struct {
	httpClient *httpclient.Client
}

// NewClient creates a messaging client authenticated with the channel
// access token.
func NewClient(channelAccessToken string, opts ...Option) *Client {
	c := &Client{}
	cfg := clientConfig{baseURL: defaultAPIBaseURL}
	for _, opt := range opts {
		opt(&cfg)
	}
	c.httpClient = httpclient.NewClient(
		httpclient.WithBaseURL(cfg.baseURL),
		httpclient.WithDefaultHeader("Authorization", "Bearer "+channelAccessToken),
	)
	return c
}

type clientConfig struct {
	baseURL string
}

// Option customizes the client.
type Option func(*clientConfig)

// WithBaseURL overrides the API endpoint, used in tests.
func WithBaseURL(baseURL string) Option {
	return func(c *clientConfig) {
		c.baseURL = baseURL
	}
}

type pushRequest struct {
	To       string    `json:"to"`
	Messages []Message `json:"messages"`
}

// SendMessage pushes up to five messages to a user.
func (c *Client) SendMessage(ctx context.Context, to string, messages []Message) error {
	resp, err := c.httpClient.Post(ctx, "message/push", pushRequest{
		To:       to,
		Messages: messages,
	})
	if err != nil {
		return fmt.Errorf("failed to push message: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
