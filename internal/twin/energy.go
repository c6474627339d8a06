package twin

import "math"

// EnergyTotals is the serialized view of the accumulator.
type EnergyTotals struct {
	CurrentPowerKW float64 `json:"current_power_kw"`
	TotalEnergyKWh float64 `json:"total_energy_kwh"`
	Cost           float64 `json:"cost"`
	CO2Kg          float64 `json:"co2_kg"`
	PeakPowerKW    float64 `json:"peak_power_kw"`
}

// energyAccumulator integrates instantaneous total power over elapsed
// time into running totals. Totals never decrease.
type energyAccumulator struct {
	totalEnergyKWh float64
	cost           float64
	co2Kg          float64
	peakPowerKW    float64

	tariffPerKWh     float64
	emissionKgPerKWh float64
}

func (a *energyAccumulator) accumulate(powerKW, dtSeconds float64) {
	if powerKW < 0 || dtSeconds <= 0 {
		return
	}
	energy := powerKW * dtSeconds / 3600
	a.totalEnergyKWh = math.Round((a.totalEnergyKWh+energy)*10000) / 10000
	a.cost = math.Round(a.totalEnergyKWh*a.tariffPerKWh*100) / 100
	a.co2Kg = math.Round(a.totalEnergyKWh*a.emissionKgPerKWh*100) / 100
	a.peakPowerKW = math.Round(math.Max(a.peakPowerKW, powerKW)*1000) / 1000
}

func (a *energyAccumulator) totals(currentPowerKW float64) EnergyTotals {
	return EnergyTotals{
		CurrentPowerKW: math.Round(currentPowerKW*1000) / 1000,
		TotalEnergyKWh: a.totalEnergyKWh,
		Cost:           a.cost,
		CO2Kg:          a.co2Kg,
		PeakPowerKW:    a.peakPowerKW,
	}
}
