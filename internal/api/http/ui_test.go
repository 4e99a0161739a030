package httpapi

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/clima/internal/viewmodel"
	"github.com/i474232898/clima/internal/weather"
)

type stubViewModel struct {
	mu     sync.Mutex
	state  viewmodel.State
	cities []string
}

func (s *stubViewModel) SetCity(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cities = append(s.cities, name)
	s.state.City = name
}

func (s *stubViewModel) State() viewmodel.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *stubViewModel) Cities() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.cities...)
}

func newUIApp(vm CityViewModel) *fiber.App {
	app := NewApp("weather-ui")
	RegisterUIRoutes(app, vm, []string{"Salta", "Tucuman", "Argentina"}, "")
	return app
}

func getBody(t *testing.T, app *fiber.App, target string) (*http.Response, string) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil))
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(raw)
}

func TestPageLoading(t *testing.T) {
	app := newUIApp(&stubViewModel{state: viewmodel.State{City: "Tucuman", Loading: true}})

	resp, body := getBody(t, app, "/")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	assert.Contains(t, body, "Cargando...")
	assert.Contains(t, body, `http-equiv="refresh"`)
	for _, city := range []string{"Salta", "Tucuman", "Argentina"} {
		assert.Contains(t, body, `href="/ciudad/`+city+`"`)
	}
}

func TestPageNotFound(t *testing.T) {
	app := newUIApp(&stubViewModel{state: viewmodel.State{City: "Atlantida", Error: true}})

	_, body := getBody(t, app, "/")
	assert.Contains(t, body, "No se encontró la ciudad...")
	assert.NotContains(t, body, "Cargando...")
	assert.NotContains(t, body, "tarjeta-clima")
}

func TestPageWeatherCard(t *testing.T) {
	app := newUIApp(&stubViewModel{state: viewmodel.State{
		City: "Salta",
		Reading: &weather.Reading{
			CityName:    "Salta",
			CurrentTemp: 21.5,
			MinTemp:     15,
			MaxTemp:     26,
			HumidityPct: 40,
			Condition:   "Thunderstorm",
		},
	}})

	_, body := getBody(t, app, "/")
	assert.Contains(t, body, "<h2>Salta</h2>")
	assert.Contains(t, body, "<strong>21.5</strong>")
	assert.Contains(t, body, "Mínima: 15&deg;C / Máxima: 26&deg;C")
	assert.Contains(t, body, "Humedad: 40%")
	assert.Contains(t, body, `src="/iconos/thunderstorms.svg"`)
	assert.NotContains(t, body, `http-equiv="refresh"`)
}

func TestNavLinkSelectsCity(t *testing.T) {
	vm := &stubViewModel{}
	app := newUIApp(vm)

	resp, _ := getBody(t, app, "/ciudad/San%20Miguel%20de%20Tucum%C3%A1n")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))
	assert.Equal(t, []string{"San Miguel de Tucumán"}, vm.Cities())
}

func TestSearchSelectsCity(t *testing.T) {
	vm := &stubViewModel{}
	app := newUIApp(vm)

	resp, _ := getBody(t, app, "/buscar?ciudad=Jujuy")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)

	resp, _ = getBody(t, app, "/buscar?ciudad=")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)

	assert.Equal(t, []string{"Jujuy", ""}, vm.Cities())
}

func TestStateEndpoint(t *testing.T) {
	app := newUIApp(&stubViewModel{state: viewmodel.State{
		City:    "Salta",
		Reading: &weather.Reading{CityName: "Salta", Condition: "Mist"},
	}})

	resp, body := getBody(t, app, "/api/estado")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out map[string]any
	require.NoError(t, json.Unmarshal([]byte(body), &out))
	assert.Equal(t, "Salta", out["ciudad"])
	assert.Equal(t, false, out["cargando"])
	assert.Equal(t, false, out["error"])
	assert.Equal(t, "mist.svg", out["icono"])
	clima, ok := out["clima"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Mist", clima["condicion"])
}
