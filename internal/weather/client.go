// Package weather looks up current conditions for a station's coordinates
// from the configured weather API. Lookups carry a hard timeout; callers are
// expected to drop the fields on error rather than fail their request.
package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/modubox/lockerhub/backend-go/internal/config"
)

// Snapshot is the subset of the weather response merged into station details
type Snapshot struct {
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
}

// Client is the HTTP client for the weather API
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	logger     *slog.Logger
}

// ErrDisabled is returned when no API key is configured
var ErrDisabled = errors.New("weather lookups disabled: no API key configured")

// NewClient creates a weather API client with the configured timeout
func NewClient(cfg *config.Config, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.WeatherTimeout) * time.Second,
		},
		baseURL: cfg.WeatherAPIURL,
		apiKey:  cfg.WeatherAPIKey,
		logger:  logger,
	}
}

// apiResponse mirrors the provider's payload shape
type apiResponse struct {
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity float64 `json:"humidity"`
	} `json:"main"`
}

// Current fetches the current temperature and humidity for the coordinates
func (c *Client) Current(ctx context.Context, latitude, longitude float64) (*Snapshot, error) {
	if c.apiKey == "" {
		return nil, ErrDisabled
	}

	query := url.Values{}
	query.Set("lat", strconv.FormatFloat(latitude, 'f', -1, 64))
	query.Set("lon", strconv.FormatFloat(longitude, 'f', -1, 64))
	query.Set("appid", c.apiKey)
	query.Set("units", "metric")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build weather request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("weather request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.logger.Warn("⚠️ [Weather] Non-OK response from weather API",
			"status", resp.StatusCode,
			"body", string(body),
		)
		return nil, fmt.Errorf("weather API returned status %d", resp.StatusCode)
	}

	var parsed apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode weather response: %w", err)
	}

	return &Snapshot{
		Temperature: parsed.Main.Temp,
		Humidity:    parsed.Main.Humidity,
	}, nil
}
