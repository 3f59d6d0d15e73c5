// Package geocoding はOpenWeatherのジオコーディングAPIクライアント。
package geocoding

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/Nyukimin/otenkibot/internal/domain/area"
)

const defaultBaseURL = "https://api.openweathermap.org/geo/1.0"

// countryHint は日本国内に限定するためのクエリ接尾辞。
const countryHint = ",JP"

// Client は area.Geocoder の実装。
type Client struct {
	client *resty.Client
	apiKey string
	logger *slog.Logger
}

// NewClient はOpenWeatherのジオコーダを作る。
func NewClient(apiKey string, timeout time.Duration, logger *slog.Logger) *Client {
	client := resty.New().
		SetBaseURL(defaultBaseURL).
		SetTimeout(timeout).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond).
		SetRetryMaxWaitTime(2 * time.Second)

	return &Client{
		client: client,
		apiKey: apiKey,
		logger: logger,
	}
}

// SetBaseURL はテスト用にエンドポイントを差し替える。
func (c *Client) SetBaseURL(baseURL string) {
	c.client.SetBaseURL(baseURL)
}

type directResult struct {
	Name  string  `json:"name"`
	State string  `json:"state"`
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
}

// Geocode は国ヒント付き・limit=1 で正引きし、最初の候補を返す。
// 候補なしは (nil, nil)。
func (c *Client) Geocode(ctx context.Context, query string) (*area.GeocodeResult, error) {
	var results []directResult

	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"q":     query + countryHint,
			"limit": "1",
			"appid": c.apiKey,
		}).
		SetResult(&results).
		Get("/direct")
	if err != nil {
		return nil, fmt.Errorf("geocode request: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("geocode API status %d: %s", resp.StatusCode(), resp.String())
	}

	if len(results) == 0 {
		c.logger.Debug("geocoder returned no candidates", "query", query)
		return nil, nil
	}

	r := results[0]
	return &area.GeocodeResult{
		PlaceName: r.Name,
		Region:    r.State,
		Lat:       r.Lat,
		Lon:       r.Lon,
	}, nil
}
