/*-------------------------------------------------------------------------
 *
 * rest.go
 *    REST gateway adapter for the external record store
 *
 * The employee dataset lives behind a small HTTP bridge (the spreadsheet
 * gateway). This adapter speaks its JSON API; it performs no retries --
 * failures surface immediately to the caller.
 *
 * Copyright (c) 2024-2026, Botivate, Inc. <support@botivate.in>
 *
 * IDENTIFICATION
 *    HR-Support/internal/records/rest.go
 *
 *-------------------------------------------------------------------------
 */

package records

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

/* RESTAdapter implements Adapter over the record gateway HTTP API */
type RESTAdapter struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

/* NewRESTAdapter creates a new gateway-backed adapter */
func NewRESTAdapter(baseURL, apiKey string, timeout time.Duration) *RESTAdapter {
	if timeout == 0 {
		timeout = 20 * time.Second
	}
	return &RESTAdapter{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (a *RESTAdapter) do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("record gateway payload serialization failed: %w", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("record gateway request creation failed: path='%s', error=%w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "HR-Support/1.0")
	if a.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+a.apiKey)
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("record gateway request failed: path='%s', error=%w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrRecordNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("record gateway request failed: path='%s', status_code=%d", path, resp.StatusCode)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("record gateway response decode failed: path='%s', error=%w", path, err)
		}
	}
	return nil
}

/* GetHeaders returns the field names of the data source */
func (a *RESTAdapter) GetHeaders(ctx context.Context) ([]string, error) {
	var out struct {
		Headers []string `json:"headers"`
	}
	if err := a.do(ctx, http.MethodGet, "/headers", nil, &out); err != nil {
		return nil, err
	}
	return out.Headers, nil
}

/* GetAll fetches every record */
func (a *RESTAdapter) GetAll(ctx context.Context) ([]Record, error) {
	var out struct {
		Records []Record `json:"records"`
	}
	if err := a.do(ctx, http.MethodGet, "/records", nil, &out); err != nil {
		return nil, err
	}
	return out.Records, nil
}

/* GetByKey fetches a single record by key field value */
func (a *RESTAdapter) GetByKey(ctx context.Context, keyField, keyValue string) (Record, error) {
	var out struct {
		Record Record `json:"record"`
	}
	path := fmt.Sprintf("/records/%s?field=%s", url.PathEscape(keyValue), url.QueryEscape(keyField))
	err := a.do(ctx, http.MethodGet, path, nil, &out)
	if err == ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return out.Record, nil
}

/* GetByFilter fetches records matching all filter pairs */
func (a *RESTAdapter) GetByFilter(ctx context.Context, filters map[string]string) ([]Record, error) {
	var out struct {
		Records []Record `json:"records"`
	}
	body := map[string]interface{}{"filters": filters}
	if err := a.do(ctx, http.MethodPost, "/records/query", body, &out); err != nil {
		return nil, err
	}
	return out.Records, nil
}

/* SetFields updates one record; the gateway creates unknown fields */
func (a *RESTAdapter) SetFields(ctx context.Context, keyField, keyValue string, updates map[string]interface{}) (bool, error) {
	body := map[string]interface{}{
		"key_field": keyField,
		"updates":   updates,
	}
	path := fmt.Sprintf("/records/%s", url.PathEscape(keyValue))
	if err := a.do(ctx, http.MethodPatch, path, body, nil); err != nil {
		return false, err
	}
	return true, nil
}

/* AddField adds a new field to the data source */
func (a *RESTAdapter) AddField(ctx context.Context, name string, defaults []interface{}) (bool, error) {
	body := map[string]interface{}{
		"name":     name,
		"defaults": defaults,
	}
	if err := a.do(ctx, http.MethodPost, "/fields", body, nil); err != nil {
		return false, err
	}
	return true, nil
}

/* CreateRecord appends a new record */
func (a *RESTAdapter) CreateRecord(ctx context.Context, data map[string]interface{}) (bool, error) {
	if err := a.do(ctx, http.MethodPost, "/records", map[string]interface{}{"record": data}, nil); err != nil {
		return false, err
	}
	return true, nil
}
