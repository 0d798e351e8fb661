package enums

import "fmt"

// WeatherKind is the coarse weather bucket used by the recommendation scorer.
type WeatherKind string

const (
	WeatherRainy  WeatherKind = "rainy"
	WeatherSunny  WeatherKind = "sunny"
	WeatherCloudy WeatherKind = "cloudy"
	WeatherCold   WeatherKind = "cold"
	WeatherNormal WeatherKind = "normal"
)

var validWeatherKinds = []WeatherKind{
	WeatherRainy,
	WeatherSunny,
	WeatherCloudy,
	WeatherCold,
	WeatherNormal,
}

// String implements fmt.Stringer.
func (w WeatherKind) String() string {
	return string(w)
}

// IsValid reports whether the value is a known WeatherKind.
func (w WeatherKind) IsValid() bool {
	for _, candidate := range validWeatherKinds {
		if candidate == w {
			return true
		}
	}
	return false
}

// ParseWeatherKind converts raw input into a WeatherKind.
func ParseWeatherKind(value string) (WeatherKind, error) {
	for _, candidate := range validWeatherKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid weather kind %q", value)
}
