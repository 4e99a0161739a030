package httpapi

import (
	"context"
	"errors"
	"log"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/clima/internal/history"
)

const (
	msgCitySaved     = "Ciudad guardada en el historial"
	msgInternalError = "Error interno del servidor"
)

var errCityNotCastable = errors.New("ciudad cannot be cast to a string")

// CityRecorder persists one history record per call.
type CityRecorder interface {
	Record(ctx context.Context, ciudad *string) (history.Record, error)
}

// RegisterRoutes wires the History Recorder endpoint into the Fiber app.
// Each write is bounded by timeout.
func RegisterRoutes(app *fiber.App, recorder CityRecorder, timeout time.Duration) {
	app.Post("/HistorialCiudades", func(c *fiber.Ctx) error {
		var body map[string]json.RawMessage
		// Only JSON bodies are parsed; anything else reads as an empty object.
		if c.Is("json") && len(c.Body()) > 0 {
			if err := json.Unmarshal(c.Body(), &body); err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "invalid JSON body")
			}
		}

		ciudad, err := coerceCiudad(body["ciudad"])
		if err == nil {
			ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
			defer cancel()
			_, err = recorder.Record(ctx, ciudad)
		}
		if err != nil {
			log.Printf("ERROR: failed to save city to history: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": msgInternalError,
			})
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"mensaje": msgCitySaved,
		})
	})
}

// coerceCiudad applies the same loose string casting the history collection
// has always had: strings pass through, numbers and booleans become their
// text form, null or a missing field leaves the city absent.
func coerceCiudad(raw json.RawMessage) (*string, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}

	var s string
	switch t := v.(type) {
	case nil:
		return nil, nil
	case string:
		s = t
	case float64:
		s = strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		s = strconv.FormatBool(t)
	default:
		return nil, errCityNotCastable
	}
	return &s, nil
}
