package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// chatbotTimeout bounds the single outbound integration call; the webhook is
// the only request in the system with a hard timeout policy.
const chatbotTimeout = 10 * time.Second

// ChatbotClient forwards dashboard chat messages to the chatbot webhook
type ChatbotClient struct {
	webhookURL string
	httpClient *http.Client
}

// NewChatbotClient creates a new chatbot webhook client
func NewChatbotClient(webhookURL string) *ChatbotClient {
	return &ChatbotClient{
		webhookURL: webhookURL,
		httpClient: &http.Client{Timeout: chatbotTimeout},
	}
}

// Send posts a message to the chatbot webhook, aborting after the timeout
func (c *ChatbotClient) Send(ctx context.Context, sessionID, message string) error {
	payload, err := json.Marshal(map[string]string{
		"session_id": sessionID,
		"message":    message,
	})
	if err != nil {
		return fmt.Errorf("failed to encode chatbot payload: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, chatbotTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build chatbot request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call chatbot webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("chatbot webhook returned status %d", resp.StatusCode)
	}

	return nil
}
