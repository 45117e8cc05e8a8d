// Package certificate calls the external donation-certificate rendering
// service. Certificate generation is a soft step: a failure here never
// invalidates the donation it belongs to.
package certificate

import (
	"context"
	"fmt"

	httpclient "github.com/cyphera/kaia-bot/internal/client/http"
)

// Generator renders a donation certificate for a confirmed transaction and
// returns a URL of the pinned image.
type Generator interface {
	Generate(ctx context.Context, txHash string) (string, error)
}

// Client talks to the certificate web service.
type Client struct {
	httpClient *httpclient.Client
}

// NewClient creates a certificate service client. baseURL points at the
// service root, e.g. https://donation.example.com.
func NewClient(baseURL string) *Client {
	return &Client{
		httpClient: httpclient.NewClient(
			httpclient.WithBaseURL(baseURL),
		),
	}
}

type generateRequest struct {
	TxHash string `json:"txHash"`
}

type generateResponse struct {
	ImageURL string `json:"imageUrl"`
	Error    string `json:"error,omitempty"`
}

// Generate asks the service to render and pin the certificate for txHash.
// The service looks the DonationMade event up from the receipt, so the
// transaction must already be mined.
func (c *Client) Generate(ctx context.Context, txHash string) (string, error) {
	resp, err := c.httpClient.Post(ctx, "api/generate-certificate", generateRequest{TxHash: txHash})
	if err != nil {
		return "", fmt.Errorf("failed to request certificate generation: %w", err)
	}

	var response generateResponse
	if err := c.httpClient.ProcessJSONResponse(resp, &response); err != nil {
		return "", fmt.Errorf("failed to process certificate response: %w", err)
	}
	if response.ImageURL == "" {
		return "", fmt.Errorf("certificate service returned no image url: %s", response.Error)
	}

	return response.ImageURL, nil
}
