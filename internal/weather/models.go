package weather

import "strings"

// Condition is the short classification the provider reports in weather[0].main.
type Condition string

const (
	ConditionThunderstorm Condition = "thunderstorm"
	ConditionDrizzle      Condition = "drizzle"
	ConditionRain         Condition = "rain"
	ConditionSnow         Condition = "snow"
	ConditionClear        Condition = "clear"
	ConditionClouds       Condition = "clouds"
	ConditionMist         Condition = "mist"
)

// DefaultIcon is shown for any condition outside the known set.
const DefaultIcon = "overcast.svg"

var conditionIcons = map[Condition]string{
	ConditionThunderstorm: "thunderstorms.svg",
	ConditionDrizzle:      "drizzle.svg",
	ConditionRain:         "rain.svg",
	ConditionSnow:         "snow.svg",
	ConditionClear:        "clear.svg",
	ConditionClouds:       "clouds.svg",
	ConditionMist:         "mist.svg",
}

// Reading is the current weather for a single city as returned by a provider.
// It lives only in memory and is replaced by the next query.
type Reading struct {
	CityName    string  `json:"ciudad"`
	CurrentTemp float64 `json:"temperatura"`
	MinTemp     float64 `json:"minima"`
	MaxTemp     float64 `json:"maxima"`
	HumidityPct float64 `json:"humedad"`
	Condition   string  `json:"condicion"`
}

// Icon returns the icon file for the reading's condition.
func (r Reading) Icon() string {
	return IconFor(r.Condition)
}

// IconFor maps a condition code to its icon file. Matching ignores case.
func IconFor(code string) string {
	if icon, ok := conditionIcons[Condition(strings.ToLower(code))]; ok {
		return icon
	}
	return DefaultIcon
}
