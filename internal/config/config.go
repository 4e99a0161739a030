package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/i474232898/clima/internal/common"
)

var validate = validator.New()

// UIConfig configures the weather UI and its view-model.
type UIConfig struct {
	// OpenWeatherAPIKey is never compiled in; it must come from the environment.
	OpenWeatherAPIKey string `validate:"required"`
	OpenWeatherURL    string `validate:"required,url"`
	Lang              string `validate:"required"`

	DefaultCity string   `validate:"required"`
	NavCities   []string `validate:"dive,required"`

	// RecorderURL is the full URL of the history endpoint.
	RecorderURL string `validate:"required,url"`

	HTTPTimeout time.Duration `validate:"gt=0"`

	// RefreshInterval re-fetches the selected city periodically (0 = disabled).
	RefreshInterval time.Duration `validate:"gte=0"`

	// Breaker puts a circuit breaker around weather lookups.
	Breaker bool

	// IconDir is served under /iconos when set.
	IconDir string

	Port string `validate:"required,numeric"`
}

// RecorderConfig configures the History Recorder Service.
type RecorderConfig struct {
	Port string `validate:"required,numeric"`

	StoreDriver     string        `validate:"oneof=mongo sqlite3 mysql memory"`
	MongoURI        string        `validate:"required_if=StoreDriver mongo"`
	MongoDatabase   string        `validate:"required_if=StoreDriver mongo"`
	MongoCollection string        `validate:"required_if=StoreDriver mongo"`
	SQLDSN          string        `validate:"required_if=StoreDriver mysql"`
	StoreTimeout    time.Duration `validate:"gt=0"`

	AllowOrigins string `validate:"required"`
}

// LoadUI reads the UI configuration from the environment with sensible defaults.
func LoadUI() (*UIConfig, error) {
	loadDotEnv()
	cfg := &UIConfig{}

	cfg.OpenWeatherAPIKey = os.Getenv("OPENWEATHER_API_KEY")
	cfg.OpenWeatherURL = getenvDefault("OPENWEATHER_URL", "https://api.openweathermap.org/data/2.5/weather")
	cfg.Lang = getenvDefault("WEATHER_LANG", "es")
	cfg.DefaultCity = getenvDefault("DEFAULT_CITY", "Tucuman")
	cfg.NavCities = common.SplitList(getenvDefault("NAV_CITIES", "Salta,Tucuman,Argentina"))
	cfg.RecorderURL = getenvDefault("RECORDER_URL", "http://localhost:3001/HistorialCiudades")
	cfg.IconDir = os.Getenv("ICON_DIR")
	cfg.Port = getenvDefault("UI_PORT", "8080")

	var err error
	if cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", "10s"); err != nil {
		return nil, err
	}
	if cfg.RefreshInterval, err = getenvDuration("REFRESH_INTERVAL", "0"); err != nil {
		return nil, err
	}
	if cfg.Breaker, err = getenvBool("WEATHER_BREAKER", false); err != nil {
		return nil, err
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid ui config: %w", err)
	}
	return cfg, nil
}

// LoadRecorder reads the recorder configuration from the environment with sensible defaults.
func LoadRecorder() (*RecorderConfig, error) {
	loadDotEnv()
	cfg := &RecorderConfig{}

	cfg.Port = getenvDefault("PORT", "3001")
	cfg.StoreDriver = getenvDefault("STORE_DRIVER", "mongo")
	cfg.MongoURI = getenvDefault("MONGO_URI", "mongodb://localhost:27017")
	cfg.MongoDatabase = getenvDefault("MONGO_DATABASE", "HistorialCiudades")
	cfg.MongoCollection = getenvDefault("MONGO_COLLECTION", "historials")
	cfg.SQLDSN = os.Getenv("SQL_DSN")
	if cfg.SQLDSN == "" && cfg.StoreDriver == "sqlite3" {
		cfg.SQLDSN = "historial.db"
	}
	cfg.AllowOrigins = getenvDefault("CORS_ALLOW_ORIGINS", "*")

	var err error
	if cfg.StoreTimeout, err = getenvDuration("STORE_TIMEOUT", "5s"); err != nil {
		return nil, err
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid recorder config: %w", err)
	}
	return cfg, nil
}

func loadDotEnv() {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func getenvBool(key string, def bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}
