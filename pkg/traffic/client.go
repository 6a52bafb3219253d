package traffic

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"civic-voice-be/pkg/capability"
)

const (
	routesURL       = "https://routes.googleapis.com/directions/v2:computeRoutes"
	routesFieldMask = "routes.duration,routes.distanceMeters,routes.polyline.encodedPolyline,routes.legs.steps.trafficCondition"
)

// Route-level traffic conditions, worst last.
const (
	ConditionUnspecified = "TRAFFIC_UNSPECIFIED"
	ConditionClear       = "CLEAR"
	ConditionModerate    = "MODERATE"
	ConditionHeavy       = "HEAVY"
	ConditionSevere      = "SEVERE"
)

var (
	ErrMissingOrigin      = errors.New("origin is required")
	ErrMissingDestination = errors.New("destination is required")
	ErrNoRoute            = errors.New("no routes found")
)

type TrafficData struct {
	Origin           string `json:"origin"`
	Destination      string `json:"destination"`
	DurationSeconds  int    `json:"durationSeconds"`
	DurationText     string `json:"durationText"`
	DistanceMeters   int    `json:"distanceMeters"`
	DistanceText     string `json:"distanceText"`
	TrafficCondition string `json:"trafficCondition"`
	Polyline         string `json:"polyline,omitempty"`
}

// TrafficLookup reports current conditions between two places.
type TrafficLookup interface {
	GetConditions(ctx context.Context, origin, destination string) (*TrafficData, error)
}

type RoutesClient struct {
	apiKey     string
	BaseURL    string
	TravelMode string
	Client     *http.Client
}

func NewRoutesClient(apiKey string) *RoutesClient {
	return &RoutesClient{
		apiKey:     apiKey,
		BaseURL:    routesURL,
		TravelMode: "DRIVE",
		Client:     &http.Client{Timeout: 15 * time.Second},
	}
}

type address struct {
	Address string `json:"address"`
}

type routesRequest struct {
	Origin                   address `json:"origin"`
	Destination              address `json:"destination"`
	TravelMode               string  `json:"travelMode"`
	RoutingPreference        string  `json:"routingPreference"`
	ComputeAlternativeRoutes bool    `json:"computeAlternativeRoutes"`
	LanguageCode             string  `json:"languageCode"`
	Units                    string  `json:"units"`
}

type routesResponse struct {
	Routes []struct {
		Duration       string `json:"duration"`
		DistanceMeters int    `json:"distanceMeters"`
		Polyline       struct {
			EncodedPolyline string `json:"encodedPolyline"`
		} `json:"polyline"`
		Legs []struct {
			Steps []struct {
				TrafficCondition string `json:"trafficCondition"`
			} `json:"steps"`
		} `json:"legs"`
	} `json:"routes"`
}

func (c *RoutesClient) GetConditions(ctx context.Context, origin, destination string) (*TrafficData, error) {
	if strings.TrimSpace(origin) == "" {
		return nil, ErrMissingOrigin
	}
	if strings.TrimSpace(destination) == "" {
		return nil, ErrMissingDestination
	}
	if c.apiKey == "" {
		return nil, fmt.Errorf("routes api: %w", capability.ErrNotConfigured)
	}

	payload, err := json.Marshal(routesRequest{
		Origin:            address{Address: origin},
		Destination:       address{Address: destination},
		TravelMode:        c.TravelMode,
		RoutingPreference: "TRAFFIC_AWARE",
		LanguageCode:      "en-US",
		Units:             "METRIC",
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Goog-Api-Key", c.apiKey)
	req.Header.Set("X-Goog-FieldMask", routesFieldMask)

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("routes api: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("routes api: status %d: %s", resp.StatusCode, string(raw))
	}

	var out routesResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("routes api: decode: %w", err)
	}
	if len(out.Routes) == 0 {
		return nil, ErrNoRoute
	}

	route := out.Routes[0]
	if route.Duration == "" || route.DistanceMeters == 0 {
		return nil, fmt.Errorf("routes api: incomplete route data")
	}

	seconds, err := parseDuration(route.Duration)
	if err != nil {
		return nil, fmt.Errorf("routes api: %w", err)
	}

	var steps []string
	if len(route.Legs) > 0 {
		for _, s := range route.Legs[0].Steps {
			steps = append(steps, s.TrafficCondition)
		}
	}

	return &TrafficData{
		Origin:           origin,
		Destination:      destination,
		DurationSeconds:  seconds,
		DurationText:     FormatDuration(seconds),
		DistanceMeters:   route.DistanceMeters,
		DistanceText:     FormatDistance(route.DistanceMeters),
		TrafficCondition: WorstCondition(steps),
		Polyline:         route.Polyline.EncodedPolyline,
	}, nil
}

// parseDuration reads the API's "123s" / "123.45s" format.
func parseDuration(d string) (int, error) {
	f, err := strconv.ParseFloat(strings.TrimSuffix(d, "s"), 64)
	if err != nil {
		return 0, fmt.Errorf("bad duration %q", d)
	}
	return int(f), nil
}

// WorstCondition picks the most severe step condition.
func WorstCondition(steps []string) string {
	rank := map[string]int{
		ConditionClear:    1,
		ConditionModerate: 2,
		ConditionHeavy:    3,
		ConditionSevere:   4,
	}
	worst := ConditionUnspecified
	for _, s := range steps {
		if rank[s] > rank[worst] {
			worst = s
		}
	}
	return worst
}

func FormatDuration(seconds int) string {
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60

	if hours > 0 {
		if minutes > 0 {
			return fmt.Sprintf("%d hr %d %s", hours, minutes, plural(minutes, "min", "mins"))
		}
		return fmt.Sprintf("%d %s", hours, plural(hours, "hr", "hrs"))
	}
	if minutes > 0 {
		return fmt.Sprintf("%d %s", minutes, plural(minutes, "min", "mins"))
	}
	return fmt.Sprintf("%d %s", seconds, plural(seconds, "sec", "secs"))
}

func FormatDistance(meters int) string {
	if meters >= 1000 {
		return fmt.Sprintf("%.1f km", float64(meters)/1000)
	}
	return fmt.Sprintf("%d m", meters)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
