package openweather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/yanqian/venuecast/internal/domain/weather"
)

const defaultBaseURL = "https://api.openweathermap.org/data/2.5/weather"

// Client fetches current conditions from an OpenWeather-compatible API.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	circuit    *gobreaker.CircuitBreaker
}

// NewClient builds the provider client. Outbound calls run behind a circuit
// breaker so a flapping upstream fails fast instead of stalling requests.
func NewClient(apiKey, baseURL string) *Client {
	u := strings.TrimSpace(baseURL)
	if u == "" {
		u = defaultBaseURL
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(u, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		circuit: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "openweather",
			MaxRequests: 5,
			Interval:    1 * time.Minute,
			Timeout:     2 * time.Minute,
		}),
	}
}

// Current retrieves the observation for a coordinate.
func (c *Client) Current(ctx context.Context, lat, lng float64) (weather.Observation, error) {
	if c.apiKey == "" {
		return weather.Observation{}, fmt.Errorf("openweather api key is not configured")
	}

	values := url.Values{}
	values.Set("appid", c.apiKey)
	values.Set("units", "metric")
	values.Set("lat", fmt.Sprintf("%f", lat))
	values.Set("lon", fmt.Sprintf("%f", lng))
	endpoint := fmt.Sprintf("%s?%s", c.baseURL, values.Encode())

	body, err := c.circuit.Execute(func() (interface{}, error) {
		return c.fetch(ctx, endpoint)
	})
	if err != nil {
		return weather.Observation{}, err
	}

	var payload currentResponse
	if err := json.Unmarshal(body.([]byte), &payload); err != nil {
		return weather.Observation{}, fmt.Errorf("decode weather response: %w", err)
	}
	return payload.toObservation(), nil
}

func (c *Client) fetch(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build weather request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("weather request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, fmt.Errorf("weather request error: status=%d body=%s", resp.StatusCode, string(payload))
	}
	return io.ReadAll(resp.Body)
}

type currentResponse struct {
	Dt      int64 `json:"dt"`
	Weather []struct {
		ID int `json:"id"`
	} `json:"weather"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  int     `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Clouds struct {
		All int `json:"all"`
	} `json:"clouds"`
	Visibility int `json:"visibility"`
	Sys        struct {
		Sunrise int64 `json:"sunrise"`
		Sunset  int64 `json:"sunset"`
	} `json:"sys"`
	Timezone int `json:"timezone"`
}

func (r currentResponse) toObservation() weather.Observation {
	obs := weather.Observation{
		TemperatureC:      r.Main.Temp,
		FeelsLikeC:        r.Main.FeelsLike,
		WindSpeedMS:       r.Wind.Speed,
		CloudCoverPct:     r.Clouds.All,
		HumidityPct:       r.Main.Humidity,
		VisibilityM:       r.Visibility,
		TimezoneOffsetSec: r.Timezone,
	}
	if len(r.Weather) > 0 {
		obs.ConditionCode = r.Weather[0].ID
	}
	if r.Dt > 0 {
		obs.ObservedAt = time.Unix(r.Dt, 0).UTC()
	} else {
		obs.ObservedAt = time.Now().UTC()
	}
	if r.Sys.Sunrise > 0 {
		obs.Sunrise = time.Unix(r.Sys.Sunrise, 0).UTC()
	}
	if r.Sys.Sunset > 0 {
		obs.Sunset = time.Unix(r.Sys.Sunset, 0).UTC()
	}
	return obs
}
