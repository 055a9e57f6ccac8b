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

// PricingClient calls the Market Pricing Service over HTTP.
type PricingClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

func NewPricingClient(httpClient *http.Client, baseURL, apiKey string) *PricingClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &PricingClient{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     apiKey,
	}
}

func (c *PricingClient) Assess(ctx context.Context, req models.PricingRequest) (models.PriceAssessment, error) {
	if c == nil || strings.TrimSpace(c.baseURL) == "" {
		return models.PriceAssessment{}, errors.New("pricing client is not configured")
	}

	body, err := json.Marshal(req)
	if err != nil {
		return models.PriceAssessment{}, fmt.Errorf("marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1/price-suggestions", strings.TrimRight(c.baseURL, "/"))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return models.PriceAssessment{}, fmt.Errorf("create request: %w", err)
	}

	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return models.PriceAssessment{}, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return models.PriceAssessment{}, fmt.Errorf("pricing service error: status %d: %s", resp.StatusCode, string(data))
	}

	var parsed models.PriceAssessment
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return models.PriceAssessment{}, fmt.Errorf("decode response: %w", err)
	}

	if parsed.RecommendedPrice <= 0 {
		return models.PriceAssessment{}, errors.New("pricing service returned no recommendation")
	}

	return parsed, nil
}
