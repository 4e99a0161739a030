package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/i474232898/clima/internal/weather"
)

const (
	// DefaultOpenWeatherURL is the current-weather endpoint of OpenWeatherMap.
	DefaultOpenWeatherURL = "https://api.openweathermap.org/data/2.5/weather"
	defaultLang           = "es"
)

// OpenWeatherConfig configures an OpenWeatherProvider.
type OpenWeatherConfig struct {
	APIKey  string
	BaseURL string
	Lang    string
	// Breaker enables a circuit breaker around the lookup. Off by default.
	Breaker bool
}

// OpenWeatherProvider implements the weather.Provider interface for OpenWeatherMap.
type OpenWeatherProvider struct {
	name    string
	apiKey  string
	baseURL string
	lang    string
	httpCfg HTTPClientConfig
}

var _ weather.Provider = (*OpenWeatherProvider)(nil)

func NewOpenWeatherProvider(client *http.Client, cfg OpenWeatherConfig) *OpenWeatherProvider {
	p := &OpenWeatherProvider{
		name:    "openweathermap",
		apiKey:  cfg.APIKey,
		baseURL: cfg.BaseURL,
		lang:    cfg.Lang,
		httpCfg: HTTPClientConfig{Client: client},
	}
	if p.baseURL == "" {
		p.baseURL = DefaultOpenWeatherURL
	}
	if p.lang == "" {
		p.lang = defaultLang
	}
	if cfg.Breaker {
		p.httpCfg.Breaker = NewBreaker("openweather")
	}
	return p
}

func (p *OpenWeatherProvider) Name() string {
	return p.name
}

// Current looks up the current weather for city. A failure status reported
// by the API (cod >= 400) maps to weather.ErrNotFound; anything that keeps
// us from reading an answer maps to weather.ErrTransport.
func (p *OpenWeatherProvider) Current(ctx context.Context, city string) (weather.Reading, error) {
	if p.apiKey == "" {
		return weather.Reading{}, fmt.Errorf("%w: openweather api key is not configured", weather.ErrTransport)
	}

	values := url.Values{}
	values.Set("q", city)
	values.Set("lang", p.lang)
	values.Set("units", "metric")
	values.Set("appid", p.apiKey)

	u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return weather.Reading{}, fmt.Errorf("%w: %v", weather.ErrTransport, err)
	}

	resp, err := doRequest(p.httpCfg, req)
	if err != nil {
		return weather.Reading{}, fmt.Errorf("%w: %v", weather.ErrTransport, err)
	}
	defer resp.Body.Close()

	var payload openWeatherPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return weather.Reading{}, fmt.Errorf("%w: decode response: %v", weather.ErrTransport, err)
	}

	// cod is the authoritative status; the HTTP status only stands in when it is missing.
	code := resp.StatusCode
	if payload.Cod != nil {
		code = int(*payload.Cod)
	}
	if code >= 400 {
		return weather.Reading{}, fmt.Errorf("%w: %q (cod %d)", weather.ErrNotFound, city, code)
	}

	var cond string
	if len(payload.Weather) > 0 {
		cond = payload.Weather[0].Main
	}

	return weather.Reading{
		CityName:    payload.Name,
		CurrentTemp: payload.Main.Temp,
		MinTemp:     payload.Main.TempMin,
		MaxTemp:     payload.Main.TempMax,
		HumidityPct: payload.Main.Humidity,
		Condition:   cond,
	}, nil
}

type openWeatherPayload struct {
	Cod  *statusCode `json:"cod"`
	Name string      `json:"name"`
	Main struct {
		Temp     float64 `json:"temp"`
		TempMin  float64 `json:"temp_min"`
		TempMax  float64 `json:"temp_max"`
		Humidity float64 `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Main string `json:"main"`
	} `json:"weather"`
}

// statusCode accepts cod both as a number (200) and as a string ("404");
// OpenWeatherMap uses the latter on error responses.
type statusCode int

func (s *statusCode) UnmarshalJSON(b []byte) error {
	var n int
	if err := json.Unmarshal(b, &n); err == nil {
		*s = statusCode(n)
		return nil
	}

	var str string
	if err := json.Unmarshal(b, &str); err != nil {
		return fmt.Errorf("invalid cod %s", b)
	}
	n, err := strconv.Atoi(str)
	if err != nil {
		return fmt.Errorf("invalid cod %q", str)
	}
	*s = statusCode(n)
	return nil
}
