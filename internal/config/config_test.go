package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"OPENWEATHER_API_KEY", "OPENWEATHER_URL", "WEATHER_LANG", "DEFAULT_CITY", "NAV_CITIES",
		"RECORDER_URL", "HTTP_TIMEOUT", "REFRESH_INTERVAL", "WEATHER_BREAKER", "ICON_DIR", "UI_PORT",
		"PORT", "STORE_DRIVER", "MONGO_URI", "MONGO_DATABASE", "MONGO_COLLECTION", "SQL_DSN",
		"CORS_ALLOW_ORIGINS", "STORE_TIMEOUT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadUIDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENWEATHER_API_KEY", "secret")

	cfg, err := LoadUI()
	require.NoError(t, err)

	assert.Equal(t, "secret", cfg.OpenWeatherAPIKey)
	assert.Equal(t, "https://api.openweathermap.org/data/2.5/weather", cfg.OpenWeatherURL)
	assert.Equal(t, "es", cfg.Lang)
	assert.Equal(t, "Tucuman", cfg.DefaultCity)
	assert.Equal(t, []string{"Salta", "Tucuman", "Argentina"}, cfg.NavCities)
	assert.Equal(t, "http://localhost:3001/HistorialCiudades", cfg.RecorderURL)
	assert.Equal(t, 10*time.Second, cfg.HTTPTimeout)
	assert.Zero(t, cfg.RefreshInterval)
	assert.False(t, cfg.Breaker)
	assert.Equal(t, "8080", cfg.Port)
}

func TestLoadUIOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENWEATHER_API_KEY", "secret")
	t.Setenv("DEFAULT_CITY", "Salta")
	t.Setenv("NAV_CITIES", "Jujuy, Salta")
	t.Setenv("REFRESH_INTERVAL", "5m")
	t.Setenv("WEATHER_BREAKER", "true")
	t.Setenv("UI_PORT", "9090")

	cfg, err := LoadUI()
	require.NoError(t, err)

	assert.Equal(t, "Salta", cfg.DefaultCity)
	assert.Equal(t, []string{"Jujuy", "Salta"}, cfg.NavCities)
	assert.Equal(t, 5*time.Minute, cfg.RefreshInterval)
	assert.True(t, cfg.Breaker)
	assert.Equal(t, "9090", cfg.Port)
}

func TestLoadUIRequiresAPIKey(t *testing.T) {
	clearEnv(t)

	_, err := LoadUI()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OpenWeatherAPIKey")
}

func TestLoadUIRejectsBadValues(t *testing.T) {
	cases := map[string]string{
		"HTTP_TIMEOUT":     "soon",
		"REFRESH_INTERVAL": "-1m",
		"WEATHER_BREAKER":  "maybe",
		"RECORDER_URL":     "not a url",
		"UI_PORT":          "http",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("OPENWEATHER_API_KEY", "secret")
			t.Setenv(key, value)

			_, err := LoadUI()
			assert.Error(t, err)
		})
	}
}

func TestLoadRecorderDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadRecorder()
	require.NoError(t, err)

	assert.Equal(t, "3001", cfg.Port)
	assert.Equal(t, "mongo", cfg.StoreDriver)
	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoURI)
	assert.Equal(t, "HistorialCiudades", cfg.MongoDatabase)
	assert.Equal(t, "historials", cfg.MongoCollection)
	assert.Equal(t, "*", cfg.AllowOrigins)
	assert.Equal(t, 5*time.Second, cfg.StoreTimeout)
}

func TestLoadRecorderSQLite(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORE_DRIVER", "sqlite3")

	cfg, err := LoadRecorder()
	require.NoError(t, err)
	assert.Equal(t, "historial.db", cfg.SQLDSN)
}

func TestLoadRecorderRejectsBadValues(t *testing.T) {
	t.Run("unknown driver", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("STORE_DRIVER", "redis")
		_, err := LoadRecorder()
		assert.Error(t, err)
	})

	t.Run("mysql without dsn", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("STORE_DRIVER", "mysql")
		_, err := LoadRecorder()
		assert.Error(t, err)
	})

	t.Run("bad timeout", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("STORE_TIMEOUT", "0s")
		_, err := LoadRecorder()
		assert.Error(t, err)
	})
}
