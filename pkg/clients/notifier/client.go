package notifier

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/mamadbah2/silotrack/internal/domain/models"
)

// Client publishes inventory snapshot reports to an external webhook.
type Client interface {
	PublishSnapshot(ctx context.Context, snapshot models.InventorySnapshot, summary string) error
}

// WebhookClient is a resty-backed implementation of Client.
type WebhookClient struct {
	httpClient *resty.Client
	url        string
}

// NewWebhookClient builds a webhook notifier for the provided URL.
func NewWebhookClient(url string) *WebhookClient {
	restyClient := resty.New()
	restyClient.
		SetHeader("Content-Type", "application/json").
		SetTimeout(15 * time.Second)

	return &WebhookClient{
		httpClient: restyClient,
		url:        url,
	}
}

type snapshotPayload struct {
	Summary  string                   `json:"summary"`
	Snapshot models.InventorySnapshot `json:"snapshot"`
}

// PublishSnapshot POSTs the snapshot and its rendered summary to the webhook.
func (c *WebhookClient) PublishSnapshot(ctx context.Context, snapshot models.InventorySnapshot, summary string) error {
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(snapshotPayload{Summary: summary, Snapshot: snapshot}).
		Post(c.url)
	if err != nil {
		return fmt.Errorf("webhook request failed: %w", err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		return fmt.Errorf("webhook rejected snapshot: status %d", resp.StatusCode())
	}

	return nil
}
