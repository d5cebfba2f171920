/*-------------------------------------------------------------------------
 *
 * llm.go
 *    HTTP client for the chat-completions classifier/summarizer backend
 *
 * Copyright (c) 2024-2026, Botivate, Inc. <support@botivate.in>
 *
 * IDENTIFICATION
 *    HR-Support/internal/classify/llm.go
 *
 *-------------------------------------------------------------------------
 */

package classify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/teamai-botivate/HR-Support/internal/config"
	"github.com/teamai-botivate/HR-Support/internal/metrics"
)

const classifyPrompt = `You are an intent classifier for an HR support assistant.
Classify the employee message into one or more of these intents:
greeting, policy_query, data_query, data_update, leave_request, resignation,
grievance, approval_action, status_check, support, general.
Respond with ONLY a comma-separated list of intent labels, most specific first.`

/* LLMClient talks to an OpenAI-compatible chat completions endpoint.
 * It implements both Classifier and Completer. */
type LLMClient struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
}

/* NewLLMClient creates a client from configuration */
func NewLLMClient(cfg config.LLMConfig) *LLMClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &LLMClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		client:  &http.Client{Timeout: timeout},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

/* Classify returns the raw comma-separated label string for a message */
func (c *LLMClient) Classify(ctx context.Context, text, sessionSummary string) (string, error) {
	messages := []chatMessage{{Role: "system", Content: classifyPrompt}}
	if sessionSummary != "" {
		messages = append(messages, chatMessage{
			Role:    "system",
			Content: "Conversation so far: " + sessionSummary,
		})
	}
	messages = append(messages, chatMessage{Role: "user", Content: text})

	raw, err := c.chat(ctx, messages)
	if err != nil {
		metrics.RecordClassifierCall("error")
		return "", fmt.Errorf("classify: %w", err)
	}
	metrics.RecordClassifierCall("ok")
	return raw, nil
}

/* Complete produces a free-text completion for a prompt */
func (c *LLMClient) Complete(ctx context.Context, prompt string) (string, error) {
	return c.chat(ctx, []chatMessage{{Role: "user", Content: prompt}})
}

func (c *LLMClient) chat(ctx context.Context, messages []chatMessage) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: 0,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := c.baseURL + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("backend returned status=%d body=%s", resp.StatusCode, truncate(string(data), 200))
	}

	var parsed chatResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("backend error: %s", parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("backend returned no choices")
	}
	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
