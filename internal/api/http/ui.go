package httpapi

import (
	"embed"
	"html/template"
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/clima/internal/viewmodel"
)

//go:embed templates/index.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

// CityViewModel is the part of the view-model the UI drives.
type CityViewModel interface {
	SetCity(name string)
	State() viewmodel.State
}

type pageData struct {
	Nav   []string
	State viewmodel.State
}

type stateResponse struct {
	viewmodel.State
	Icon string `json:"icono,omitempty"`
}

// RegisterUIRoutes wires the weather page, the nav/search actions and the
// state endpoint into the Fiber app. Icons are served from iconDir when set.
func RegisterUIRoutes(app *fiber.App, vm CityViewModel, navCities []string, iconDir string) {
	app.Get("/", func(c *fiber.Ctx) error {
		c.Type("html", "utf-8")
		return pageTemplate.Execute(c, pageData{
			Nav:   navCities,
			State: vm.State(),
		})
	})

	// Nav click.
	app.Get("/ciudad/:nombre", func(c *fiber.Ctx) error {
		name, err := url.PathUnescape(c.Params("nombre"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid city name")
		}
		vm.SetCity(name)
		return c.Redirect("/", fiber.StatusSeeOther)
	})

	// Search submit. An empty search is passed through; the provider rejects it.
	app.Get("/buscar", func(c *fiber.Ctx) error {
		vm.SetCity(c.Query("ciudad"))
		return c.Redirect("/", fiber.StatusSeeOther)
	})

	app.Get("/api/estado", func(c *fiber.Ctx) error {
		s := vm.State()
		return c.JSON(stateResponse{State: s, Icon: s.Icon()})
	})

	if iconDir != "" {
		app.Static("/iconos", iconDir)
	}
}
