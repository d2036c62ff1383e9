package places

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

	"github.com/yanqian/venuecast/internal/domain/venue"
)

const defaultBaseURL = "https://maps.googleapis.com/maps/api/place"

// Client fetches candidate venues from a Places-compatible nearby search
// API and maps them into domain records.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	circuit    *gobreaker.CircuitBreaker
}

// NewClient builds the provider client.
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
			Name:        "places",
			MaxRequests: 5,
			Interval:    1 * time.Minute,
			Timeout:     2 * time.Minute,
		}),
	}
}

// Nearby retrieves venues around a coordinate.
func (c *Client) Nearby(ctx context.Context, lat, lng, radiusKm float64) ([]venue.Venue, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("places api key is not configured")
	}

	values := url.Values{}
	values.Set("key", c.apiKey)
	values.Set("location", fmt.Sprintf("%f,%f", lat, lng))
	values.Set("radius", fmt.Sprintf("%d", int(radiusKm*1000)))
	endpoint := fmt.Sprintf("%s/nearbysearch/json?%s", c.baseURL, values.Encode())

	body, err := c.circuit.Execute(func() (interface{}, error) {
		return c.fetch(ctx, endpoint)
	})
	if err != nil {
		return nil, err
	}

	var payload searchResponse
	if err := json.Unmarshal(body.([]byte), &payload); err != nil {
		return nil, fmt.Errorf("decode venue response: %w", err)
	}
	if payload.Status != "" && payload.Status != "OK" && payload.Status != "ZERO_RESULTS" {
		return nil, fmt.Errorf("venue api error: %s", payload.Status)
	}

	venues := make([]venue.Venue, 0, len(payload.Results))
	for _, r := range payload.Results {
		venues = append(venues, r.toVenue())
	}
	return venues, nil
}

func (c *Client) fetch(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build venue request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("venue request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, fmt.Errorf("venue request error: status=%d body=%s", resp.StatusCode, string(payload))
	}
	return io.ReadAll(resp.Body)
}

type searchResponse struct {
	Status  string   `json:"status"`
	Results []result `json:"results"`
}

type result struct {
	PlaceID  string `json:"place_id"`
	Name     string `json:"name"`
	Vicinity string `json:"vicinity"`
	Geometry struct {
		Location struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"location"`
	} `json:"geometry"`
	Types            []string `json:"types"`
	Rating           *float64 `json:"rating"`
	UserRatingsTotal int      `json:"user_ratings_total"`
	PriceLevel       *int     `json:"price_level"`
	BusinessStatus   string   `json:"business_status"`
	UTCOffset        *int     `json:"utc_offset"`
	OpeningHours     *struct {
		OpenNow *bool `json:"open_now"`
		Periods []struct {
			Open struct {
				Day  int    `json:"day"`
				Time string `json:"time"`
			} `json:"open"`
			Close *struct {
				Day  int    `json:"day"`
				Time string `json:"time"`
			} `json:"close"`
		} `json:"periods"`
		WeekdayText []string `json:"weekday_text"`
	} `json:"opening_hours"`
	WheelchairAccessibleEntrance *bool `json:"wheelchair_accessible_entrance"`
	OutdoorSeating               bool  `json:"outdoor_seating"`
}

func (r result) toVenue() venue.Venue {
	v := venue.Venue{
		ID:                   r.PlaceID,
		Name:                 r.Name,
		Address:              r.Vicinity,
		Location:             venue.LatLng{Lat: r.Geometry.Location.Lat, Lng: r.Geometry.Location.Lng},
		Types:                r.Types,
		Rating:               r.Rating,
		RatingCount:          r.UserRatingsTotal,
		PriceLevel:           r.PriceLevel,
		BusinessStatus:       venue.BusinessStatus(r.BusinessStatus),
		WheelchairAccessible: r.WheelchairAccessibleEntrance,
		OutdoorSeating:       r.OutdoorSeating,
		UTCOffsetMinutes:     r.UTCOffset,
	}
	if r.OpeningHours != nil {
		hours := &venue.OpeningHours{
			OpenNow:     r.OpeningHours.OpenNow,
			WeekdayText: r.OpeningHours.WeekdayText,
		}
		for _, p := range r.OpeningHours.Periods {
			period := venue.Period{
				Open: venue.TimePoint{Day: p.Open.Day, Time: p.Open.Time},
			}
			if p.Close != nil {
				period.Close = &venue.TimePoint{Day: p.Close.Day, Time: p.Close.Time}
			}
			hours.Periods = append(hours.Periods, period)
		}
		v.Hours = hours
	}
	return v
}
