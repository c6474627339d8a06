package thermal

import "math"

// Irradiance returns solar irradiance in W/m² for a fractional hour of
// day: zero at night, a sinusoidal arc peaking near solar noon.
func Irradiance(hourOfDay float64) float64 {
	if hourOfDay < 6.0 || hourOfDay > 18.5 {
		return 0
	}
	solarAngle := math.Pi * (hourOfDay - 6.0) / 12.5
	return math.Max(0, 950.0*math.Sin(solarAngle))
}

// Occupancy estimates how many people are in a room at the given
// fractional hour, keyed by room name.
func Occupancy(hourOfDay float64, roomName string) float64 {
	switch roomName {
	case "Bedroom":
		switch {
		case hourOfDay >= 22.0 || hourOfDay < 7.0:
			return 2.0
		case hourOfDay < 9.0:
			return 1.0
		}
		return 0
	case "Living Room":
		switch {
		case hourOfDay >= 7.0 && hourOfDay < 9.0:
			return 2.0
		case hourOfDay >= 9.0 && hourOfDay < 16.0:
			return 0.5
		case hourOfDay >= 16.0 && hourOfDay < 23.0:
			return 3.0
		}
		return 0
	case "Kitchen":
		switch {
		case hourOfDay >= 6.0 && hourOfDay < 9.0:
			return 1.5
		case hourOfDay >= 11.0 && hourOfDay < 14.0:
			return 1.5
		case hourOfDay >= 17.0 && hourOfDay < 21.0:
			return 2.0
		}
		return 0
	case "Garage":
		if (hourOfDay >= 7.0 && hourOfDay < 8.0) || (hourOfDay >= 17.0 && hourOfDay < 18.0) {
			return 1.0
		}
		return 0
	}
	return 0.5
}
