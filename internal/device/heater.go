package device

import "math"

// HeaterState is the live computed state of the storage-tank water heater.
type HeaterState struct {
	WaterTempC      float64 `json:"water_temp_c"`
	TargetTempC     float64 `json:"target_temp_c"`
	Status          string  `json:"status"` // heating / standby / off
	PowerKW         float64 `json:"power_kw"`
	ElementOn       bool    `json:"element_on"`
	HeatLossRateKW  float64 `json:"heat_loss_rate_kw"`
	EnergyStoredKWh float64 `json:"energy_stored_kwh"`
}

// Heater models a tank water heater with a thermostat dead-band.
//
// Heat balance: dT/dt = (Q_heater - Q_loss) / thermal mass, with the
// element switching on below target-deadBand and off at/above target.
// Standby loss is proportional to the temperature above ambient.
type Heater struct {
	ID     int
	RoomID int
	Name   string

	state HeaterState
}

const (
	heaterElementPowerKW = 3.0
	heaterEfficiency     = 0.95
	// 200 L tank: 200 kg * 4.186 kJ/(kg*K) = 837.2 kJ/K = 0.2325 kWh/K
	heaterThermalMassKWhPerK = 0.2325
	heaterLossCoeffKWPerK    = 0.002 // well-insulated tank
	heaterDeadBandC          = 3.0
	heaterAmbientC           = 28.0
)

func NewHeater(id, roomID int, name string) *Heater {
	return &Heater{
		ID:     id,
		RoomID: roomID,
		Name:   name,
		state: HeaterState{
			WaterTempC:  45.0,
			TargetTempC: 60.0,
			Status:      "on",
		},
	}
}

// Step advances the heater by dtSeconds. A statusOverride of "off"
// forces the element off regardless of tank temperature; any other
// value leaves the thermostat in control.
func (h *Heater) Step(dtSeconds float64, statusOverride string) HeaterState {
	dtHours := dtSeconds / 3600

	if statusOverride == "off" {
		h.state.Status = "off"
		h.state.ElementOn = false
		h.state.PowerKW = 0
	} else {
		if h.state.WaterTempC < h.state.TargetTempC-heaterDeadBandC {
			h.state.ElementOn = true
		} else if h.state.WaterTempC >= h.state.TargetTempC {
			h.state.ElementOn = false
		}

		if h.state.ElementOn {
			h.state.Status = "heating"
			h.state.PowerKW = heaterElementPowerKW
		} else {
			h.state.Status = "standby"
			h.state.PowerKW = 0
		}
	}

	var qInput float64
	if h.state.ElementOn {
		qInput = h.state.PowerKW * heaterEfficiency
	}

	qLoss := heaterLossCoeffKWPerK * math.Max(0, h.state.WaterTempC-heaterAmbientC)
	h.state.HeatLossRateKW = math.Round(qLoss*10000) / 10000

	dT := (qInput - qLoss) * dtHours / heaterThermalMassKWhPerK
	h.state.WaterTempC = round2(math.Max(heaterAmbientC, h.state.WaterTempC+dT))

	h.state.EnergyStoredKWh = round2(heaterThermalMassKWhPerK * (h.state.WaterTempC - heaterAmbientC))

	return h.state
}

func (h *Heater) State() HeaterState { return h.state }

func (h *Heater) CurrentPowerKW() float64 { return h.state.PowerKW }

// ElementOn reports whether the heating element is currently active.
func (h *Heater) ElementOn() bool { return h.state.ElementOn }
