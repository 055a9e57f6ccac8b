package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sublimeanger/vintifi-sub000/internal/models"
)

// OptimizerClient calls the Listing Optimisation Service over HTTP.
type OptimizerClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

func NewOptimizerClient(httpClient *http.Client, baseURL, apiKey string) *OptimizerClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}
	return &OptimizerClient{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     apiKey,
	}
}

func (c *OptimizerClient) Optimize(ctx context.Context, req models.OptimizationRequest) (models.OptimizationResult, error) {
	if c == nil || strings.TrimSpace(c.baseURL) == "" {
		return models.OptimizationResult{}, errors.New("optimizer client is not configured")
	}

	body, err := json.Marshal(req)
	if err != nil {
		return models.OptimizationResult{}, fmt.Errorf("marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1/listing-optimizations", strings.TrimRight(c.baseURL, "/"))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return models.OptimizationResult{}, fmt.Errorf("create request: %w", err)
	}

	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return models.OptimizationResult{}, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return models.OptimizationResult{}, fmt.Errorf("optimizer service error: status %d: %s", resp.StatusCode, string(data))
	}

	var parsed models.OptimizationResult
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return models.OptimizationResult{}, fmt.Errorf("decode response: %w", err)
	}

	if parsed.OptimizedTitle == "" && parsed.OptimizedDescription == "" {
		return models.OptimizationResult{}, errors.New("optimizer returned an empty result")
	}

	return parsed, nil
}
