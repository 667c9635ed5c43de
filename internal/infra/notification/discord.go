package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"kiosk/internal/usecase"
)

const postTimeout = 5 * time.Second

// Discord WebhookへのLow-stock通知。
// URL未設定なら何もしない（local / test 用）。失敗は呼び出し側に返すが、
// 購入処理はそれを握りつぶす前提のbest-effortチャネル。
type DiscordNotifier struct {
	webhookURL string
	username   string
	client     *http.Client
}

func NewDiscordNotifier(webhookURL string) *DiscordNotifier {
	return &DiscordNotifier{
		webhookURL: webhookURL,
		username:   "Lab-Kiosk",
		client:     &http.Client{Timeout: postTimeout},
	}
}

type discordPayload struct {
	Content  string `json:"content"`
	Username string `json:"username,omitempty"`
}

func (n *DiscordNotifier) NotifyLowStock(ctx context.Context, alert usecase.LowStockAlert) error {
	if n.webhookURL == "" {
		log.Printf("DISCORD_WEBHOOK_URL is not set, skip low stock notification: jan=%s", alert.JANCode)
		return nil
	}

	content := fmt.Sprintf("在庫低下: %s (JAN:%s) 残り %d", alert.ProductName, alert.JANCode, alert.Remaining)

	body, err := json.Marshal(discordPayload{Content: content, Username: n.username})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.webhookURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("discord webhook returned %d", resp.StatusCode)
	}
	return nil
}
