package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/wortheat/wortheat-backend/pkg/config"
	pkgerrors "github.com/wortheat/wortheat-backend/pkg/errors"
	"github.com/wortheat/wortheat-backend/pkg/logger"
	"github.com/wortheat/wortheat-backend/pkg/enums"
)

var (
	errAPIKeyRequired = errors.New("weather api key is required")
	errLoggerRequired = errors.New("weather logger is required")
)

// Client fetches current conditions for a city and maps them to the
// coarse buckets used by recommendations.
type Client struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
	logger     *logger.Logger
}

// Conditions is the normalized weather snapshot.
type Conditions struct {
	City        string
	Description string
	TempCelsius float64
	Kind        enums.WeatherKind
}

type currentResponse struct {
	Current struct {
		TempC     float64 `json:"temp_c"`
		Condition struct {
			Text string `json:"text"`
		} `json:"condition"`
	} `json:"current"`
	Location struct {
		Name string `json:"name"`
	} `json:"location"`
}

// NewClient validates credentials and returns a conditions fetcher.
func NewClient(ctx context.Context, cfg config.WeatherConfig, logg *logger.Logger) (*Client, error) {
	if logg == nil {
		return nil, errLoggerRequired
	}
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errAPIKeyRequired
	}
	c := &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		logger:     logg,
	}
	logg.Info(ctx, "weather client initialized")
	return c, nil
}

// Current fetches the current conditions for the given city.
func (c *Client) Current(ctx context.Context, city string) (*Conditions, error) {
	if strings.TrimSpace(city) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "city is required")
	}

	endpoint := fmt.Sprintf("%s/v1/current.json?key=%s&q=%s", c.baseURL, url.QueryEscape(c.apiKey), url.QueryEscape(city))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build weather request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUpstream, err, "weather provider unreachable")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUpstream, err, "reading weather response")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, pkgerrors.New(pkgerrors.CodeUpstream, fmt.Sprintf("weather provider returned status %d", resp.StatusCode))
	}

	var parsed currentResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUpstream, err, "decoding weather response")
	}

	cond := &Conditions{
		City:        parsed.Location.Name,
		Description: parsed.Current.Condition.Text,
		TempCelsius: parsed.Current.TempC,
		Kind:        ClassifyConditions(parsed.Current.Condition.Text, parsed.Current.TempC),
	}
	return cond, nil
}

// ClassifyConditions maps a free-text condition plus temperature to a coarse
// weather bucket. Substring checks run on the lowercased description; rain
// wins over everything else, cold applies below 15C.
func ClassifyConditions(description string, tempC float64) enums.WeatherKind {
	desc := strings.ToLower(description)
	switch {
	case strings.Contains(desc, "rain") || strings.Contains(desc, "drizzle") || strings.Contains(desc, "thunder"):
		return enums.WeatherRainy
	case tempC < 15:
		return enums.WeatherCold
	case strings.Contains(desc, "cloud") || strings.Contains(desc, "overcast") || strings.Contains(desc, "mist") || strings.Contains(desc, "fog"):
		return enums.WeatherCloudy
	case strings.Contains(desc, "sun") || strings.Contains(desc, "clear"):
		return enums.WeatherSunny
	default:
		return enums.WeatherNormal
	}
}
