// Package api talks to the part-request backend and the part-search backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/Rorical/RoriParts/internal/apperr"
	"github.com/Rorical/RoriParts/internal/catalog"
	"github.com/Rorical/RoriParts/internal/models"
)

const userAgent = "RoriParts/1.0"

// Client calls one backend rooted at a base URL.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient returns a client for baseURL. A non-positive timeout falls back to
// 30 seconds.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// BaseURL returns the root all paths are resolved against.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Options loads the options of a vehicle level. Makes ignore parentID. Years are
// derived locally and never fetched.
func (c *Client) Options(ctx context.Context, level int, parentID string) ([]models.SelectableItem, error) {
	switch level {
	case models.LevelMake:
		return c.vehicles(ctx, "load makes", "/vehicles/makes")
	case models.LevelModel:
		return c.vehicles(ctx, "load models", "/vehicles/models/"+url.PathEscape(parentID))
	case models.LevelSubmodel:
		return c.vehicles(ctx, "load submodels", "/vehicles/submodels/"+url.PathEscape(parentID))
	case models.LevelEngine:
		return c.engines(ctx, parentID)
	default:
		return nil, fmt.Errorf("level %d has no endpoint", level)
	}
}

func (c *Client) vehicles(ctx context.Context, op, path string) ([]models.SelectableItem, error) {
	var records []models.VehicleRecord
	if err := c.do(ctx, op, http.MethodGet, path, nil, &records); err != nil {
		return nil, err
	}
	items := make([]models.SelectableItem, len(records))
	for i, r := range records {
		items[i] = r.Item()
	}
	return items, nil
}

func (c *Client) engines(ctx context.Context, submodelID string) ([]models.SelectableItem, error) {
	var records []models.EngineRecord
	if err := c.do(ctx, "load engines", http.MethodGet, "/vehicles/engines/"+url.PathEscape(submodelID), nil, &records); err != nil {
		return nil, err
	}
	items := make([]models.SelectableItem, len(records))
	for i, r := range records {
		items[i] = r.Item()
	}
	return items, nil
}

// SubmitPartRequest posts a part request and returns the stored request id. A 2xx
// answer without request_id is a failure.
func (c *Client) SubmitPartRequest(ctx context.Context, payload models.PartRequestPayload) (models.PartRequestResponse, error) {
	const op = "submit part request"
	var raw struct {
		Status    string `json:"status"`
		RequestID *int64 `json:"request_id"`
	}
	if err := c.do(ctx, op, http.MethodPost, "/part-request", payload, &raw); err != nil {
		return models.PartRequestResponse{}, err
	}
	if raw.RequestID == nil {
		return models.PartRequestResponse{}, &apperr.NetworkError{Op: op, Err: errors.New("response has no request_id")}
	}
	return models.PartRequestResponse{Status: raw.Status, RequestID: *raw.RequestID}, nil
}

// SearchPart looks up offers for a free text term or OEM code.
func (c *Client) SearchPart(ctx context.Context, query string) (models.PartSearchResult, error) {
	var result models.PartSearchResult
	path := "/api/part?q=" + url.QueryEscape(query)
	err := c.do(ctx, "search part", http.MethodGet, path, nil, &result)
	return result, err
}

// FetchCatalog downloads cars.json.
func (c *Client) FetchCatalog(ctx context.Context) (*catalog.Catalog, error) {
	var cat catalog.Catalog
	if err := c.do(ctx, "load catalog", http.MethodGet, "/cars.json", nil, &cat); err != nil {
		return nil, err
	}
	return &cat, nil
}

// do performs one request. Transport failures, non-2xx statuses and undecodable
// bodies all come back as *apperr.NetworkError.
func (c *Client) do(ctx context.Context, op, method, path string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: failed to marshal JSON: %w", op, err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("%s: failed to create request: %w", op, err)
	}

	requestID := ulid.Make().String()
	req.Header.Set("X-Request-Id", requestID)
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("request_id=%s method=%s path=%s error=%v", requestID, method, path, err)
		return &apperr.NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	log.Printf("request_id=%s method=%s path=%s status=%d duration=%s",
		requestID, method, path, resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused
		_, _ = io.Copy(io.Discard, resp.Body)
		return &apperr.NetworkError{Op: op, Status: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &apperr.NetworkError{Op: op, Err: fmt.Errorf("invalid response: %w", err)}
	}
	return nil
}
