// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package extract talks to the document extraction service that turns
// uploaded industry documents, price lists, and catalog pages into
// structured knowledge entries.
package extract

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"landingpress/internal/models"
)

// Entry is one structured item returned by the extraction service.
type Entry struct {
	Kind        models.KnowledgeKind `json:"kind"`
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Price       *string              `json:"price,omitempty"`
}

// Extractor converts documents into knowledge entries. The HTTP client
// is the production implementation; tests substitute fakes.
type Extractor interface {
	ExtractFile(ctx context.Context, filename string, r io.Reader) ([]Entry, error)
	ExtractURL(ctx context.Context, pageURL string) ([]Entry, error)
}

// Client calls the extraction service over HTTP.
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewClient creates an extraction client for the given service endpoint.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 120 * time.Second},
	}
}

// ExtractFile uploads a document as multipart form data and returns the
// extracted entries.
func (c *Client) ExtractFile(ctx context.Context, filename string, r io.Reader) ([]Entry, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("document", filename)
	if err != nil {
		return nil, fmt.Errorf("extract multipart: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, fmt.Errorf("extract copy: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("extract multipart close: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/extract/file", &buf)
	if err != nil {
		return nil, fmt.Errorf("extract request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	return c.do(req)
}

// ExtractURL asks the service to fetch and extract a public page.
func (c *Client) ExtractURL(ctx context.Context, pageURL string) ([]Entry, error) {
	payload, err := json.Marshal(map[string]string{"url": pageURL})
	if err != nil {
		return nil, fmt.Errorf("extract marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/extract/url", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("extract request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req)
}

func (c *Client) do(req *http.Request) ([]Entry, error) {
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("extract http: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("extract read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("extraction service error (status %d): %s", resp.StatusCode, string(body))
	}

	var result struct {
		Entries []Entry `json:"entries"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("extract unmarshal: %w", err)
	}

	return result.Entries, nil
}
