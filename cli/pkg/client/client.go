/*-------------------------------------------------------------------------
 *
 * client.go
 *    HTTP client for the HR support API
 *
 * Copyright (c) 2024-2026, Botivate, Inc. <support@botivate.in>
 *
 * IDENTIFICATION
 *    HR-Support/cli/pkg/client/client.go
 *
 *-------------------------------------------------------------------------
 */

package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

type Approval struct {
	ID           string                 `json:"id"`
	EmployeeID   string                 `json:"employee_id"`
	EmployeeName *string                `json:"employee_name,omitempty"`
	RequestType  string                 `json:"request_type"`
	Details      map[string]interface{} `json:"details,omitempty"`
	Summary      *string                `json:"summary,omitempty"`
	Status       string                 `json:"status"`
	Priority     string                 `json:"priority"`
	AssignedRole string                 `json:"assigned_role"`
	DecidedBy    *string                `json:"decided_by,omitempty"`
	DecisionNote *string                `json:"decision_note,omitempty"`
	ReminderSent bool                   `json:"reminder_sent"`
	Escalated    bool                   `json:"escalated"`
	CreatedAt    string                 `json:"created_at"`
}

type Notification struct {
	ID               string  `json:"id"`
	Title            string  `json:"title"`
	Message          string  `json:"message"`
	NotificationType string  `json:"notification_type"`
	RelatedRequestID *string `json:"related_request_id,omitempty"`
	IsRead           bool    `json:"is_read"`
	CreatedAt        string  `json:"created_at"`
}

type LoginResult struct {
	Token        string `json:"token"`
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name,omitempty"`
	Role         string `json:"role"`
	ExpiresIn    int64  `json:"expires_in"`
}

type SweepResult struct {
	Scanned       int `json:"scanned"`
	RemindersSent int `json:"reminders_sent"`
	Escalations   int `json:"escalations"`
	Failures      int `json:"failures"`
}

func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *Client) Login(employeeID, password string) (*LoginResult, error) {
	body, err := json.Marshal(map[string]string{
		"employee_id": employeeID,
		"password":    password,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := c.makeRequest("POST", "/api/v1/auth/login", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var result LoginResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &result, nil
}

func (c *Client) ListPendingApprovals() ([]Approval, error) {
	resp, err := c.makeRequest("GET", "/api/v1/approvals/pending", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var approvals []Approval
	if err := json.NewDecoder(resp.Body).Decode(&approvals); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return approvals, nil
}

func (c *Client) GetApproval(id string) (*Approval, error) {
	resp, err := c.makeRequest("GET", fmt.Sprintf("/api/v1/approvals/%s", id), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var approval Approval
	if err := json.NewDecoder(resp.Body).Decode(&approval); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &approval, nil
}

func (c *Client) DecideApproval(id, status, note string) (*Approval, error) {
	body, err := json.Marshal(map[string]string{
		"status": status,
		"note":   note,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := c.makeRequest("POST", fmt.Sprintf("/api/v1/approvals/%s/decision", id), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var approval Approval
	if err := json.NewDecoder(resp.Body).Decode(&approval); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &approval, nil
}

func (c *Client) RunSweep() (*SweepResult, error) {
	resp, err := c.makeRequest("POST", "/api/v1/approvals/sweep", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var result SweepResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &result, nil
}

func (c *Client) ListNotifications() ([]Notification, error) {
	resp, err := c.makeRequest("GET", "/api/v1/notifications", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var notifications []Notification
	if err := json.NewDecoder(resp.Body).Decode(&notifications); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return notifications, nil
}

func (c *Client) MarkNotificationRead(id string) error {
	resp, err := c.makeRequest("POST", fmt.Sprintf("/api/v1/notifications/%s/read", id), nil)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

func (c *Client) makeRequest(method, path string, body io.Reader) (*http.Response, error) {
	url := c.baseURL + path
	req, err := http.NewRequest(method, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, fmt.Errorf("API error: status %d, body: %s", resp.StatusCode, string(body))
	}

	return resp, nil
}
