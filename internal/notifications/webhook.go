/*-------------------------------------------------------------------------
 *
 * webhook.go
 *    Webhook delivery channel for approval notifications
 *
 * Posts approval lifecycle notifications to a tenant-configured HTTP
 * endpoint, typically a team chat integration.
 *
 * Copyright (c) 2024-2026, Botivate, Inc. <support@botivate.in>
 *
 * IDENTIFICATION
 *    HR-Support/internal/notifications/webhook.go
 *
 *-------------------------------------------------------------------------
 */

package notifications

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/teamai-botivate/HR-Support/internal/db"
)

/* WebhookDeliverer pushes stored notifications to an HTTP endpoint */
type WebhookDeliverer struct {
	url        string
	httpClient *http.Client
}

/* NewWebhookDeliverer creates a webhook channel for the given endpoint */
func NewWebhookDeliverer(url string, timeout time.Duration) *WebhookDeliverer {
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &WebhookDeliverer{
		url: url,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (w *WebhookDeliverer) Name() string {
	return "webhook"
}

/* Deliver posts one notification as JSON */
func (w *WebhookDeliverer) Deliver(ctx context.Context, n *db.Notification) error {
	if w.url == "" {
		return fmt.Errorf("webhook URL is required")
	}

	payload := map[string]interface{}{
		"tenant_id": n.TenantID,
		"target":    n.TargetEmployeeID,
		"type":      n.NotificationType,
		"title":     n.Title,
		"message":   n.Message,
	}
	if n.RelatedRequestID != nil {
		payload["request_id"] = n.RelatedRequestID.String()
	}

	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("webhook payload serialization failed: error=%w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", w.url, bytes.NewReader(payloadJSON))
	if err != nil {
		return fmt.Errorf("webhook request creation failed: url='%s', error=%w", w.url, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "HR-Support/1.0")

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("webhook request failed: url='%s', error=%w", w.url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook request failed: url='%s', status_code=%d", w.url, resp.StatusCode)
	}
	return nil
}
