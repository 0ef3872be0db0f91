package alerts

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"inventra-system/internal/services/inventory"
)

// Notifier posts low-stock alerts to a configured webhook.
type Notifier struct {
	httpClient *resty.Client
	webhookURL string
}

// NewNotifier returns nil when no webhook URL is configured; the scheduler
// treats a nil notifier as log-only.
func NewNotifier(webhookURL string) *Notifier {
	if webhookURL == "" {
		return nil
	}

	restyClient := resty.New()
	restyClient.
		SetHeader("Content-Type", "application/json").
		SetTimeout(15 * time.Second)

	return &Notifier{
		httpClient: restyClient,
		webhookURL: webhookURL,
	}
}

type lowStockPayload struct {
	Alert     string                   `json:"alert"`
	Threshold int64                    `json:"threshold"`
	Items     []inventory.LowStockItem `json:"items"`
	Timestamp time.Time                `json:"timestamp"`
}

func (n *Notifier) SendLowStockAlert(ctx context.Context, threshold int64, items []inventory.LowStockItem) error {
	payload := lowStockPayload{
		Alert:     "low_stock",
		Threshold: threshold,
		Items:     items,
		Timestamp: time.Now(),
	}

	resp, err := n.httpClient.R().
		SetContext(ctx).
		SetBody(payload).
		Post(n.webhookURL)
	if err != nil {
		return fmt.Errorf("failed to post low-stock alert: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("low-stock webhook returned status %d", resp.StatusCode())
	}
	return nil
}
