package device

import "math"

// ClimateState is the live computed state of one split AC unit.
type ClimateState struct {
	SetpointC         float64 `json:"setpoint_c"`
	RoomTempC         float64 `json:"room_temp_c"`
	Status            string  `json:"status"`
	PowerKW           float64 `json:"power_kw"`
	CoolingOutputKW   float64 `json:"cooling_output_kw"`
	COP               float64 `json:"cop"`
	CompressorLoadPct float64 `json:"compressor_load_pct"`
	RuntimeMinutes    float64 `json:"runtime_minutes"`
	CyclesToday       int     `json:"cycles_today"`
}

// ClimateUnit models a simplified inverter AC.
//
// COP degrades with outdoor temperature above the rating point, power
// draw is proportional to cooling demand, and the compressor modulates
// between 30% and 100% rather than cycling on/off.
type ClimateUnit struct {
	ID     int
	RoomID int
	Name   string

	state ClimateState
	wasOn bool
}

const (
	climateRatedPowerKW     = 1.8
	climateCOPNominal       = 3.2 // at 35°C outside, 24°C inside
	climateCOPFloor         = 1.5
	climateCOPDeratePerK    = 0.05
	climateRefOutdoorC      = 35.0
	climateMinCompressorPct = 30.0 // inverter minimum modulation
	climateGainPctPerK      = 20.0
)

func NewClimateUnit(id, roomID int, name string) *ClimateUnit {
	return &ClimateUnit{
		ID:     id,
		RoomID: roomID,
		Name:   name,
		state: ClimateState{
			SetpointC: 24.0,
			RoomTempC: 25.0,
			Status:    "on",
			COP:       climateCOPNominal,
		},
	}
}

// Step advances the unit by dtSeconds. roomTempC is the room model's
// pre-step temperature.
func (c *ClimateUnit) Step(dtSeconds, roomTempC, outsideTempC, setpointC float64, status string) ClimateState {
	c.state.SetpointC = setpointC
	c.state.RoomTempC = roomTempC
	c.state.Status = status

	if status != "on" {
		c.state.PowerKW = 0
		c.state.CoolingOutputKW = 0
		c.state.CompressorLoadPct = 0
		if c.wasOn {
			c.state.CyclesToday++
		}
		c.wasOn = false
		return c.state
	}

	if !c.wasOn {
		c.state.CyclesToday++
	}
	c.wasOn = true

	deltaOutdoor := math.Max(0, outsideTempC-climateRefOutdoorC)
	c.state.COP = math.Max(climateCOPFloor, climateCOPNominal-climateCOPDeratePerK*deltaOutdoor)

	// P-controller on the room error, floored at the inverter minimum.
	tempError := roomTempC - setpointC
	var compressorPct float64
	if tempError <= 0 {
		compressorPct = climateMinCompressorPct
	} else {
		compressorPct = math.Min(100, climateMinCompressorPct+tempError*climateGainPctPerK)
	}
	c.state.CompressorLoadPct = compressorPct

	c.state.PowerKW = round3(climateRatedPowerKW * compressorPct / 100)
	c.state.CoolingOutputKW = round3(c.state.PowerKW * c.state.COP)
	c.state.RuntimeMinutes += dtSeconds / 60

	return c.state
}

// CoolingKW returns the thermal cooling output fed to the room model.
func (c *ClimateUnit) CoolingKW() float64 {
	return c.state.CoolingOutputKW
}

func (c *ClimateUnit) State() ClimateState { return c.state }

func (c *ClimateUnit) CurrentPowerKW() float64 { return c.state.PowerKW }

// SetInitial applies seed values before the first step.
func (c *ClimateUnit) SetInitial(setpointC, roomTempC float64, status string) {
	if setpointC > 0 {
		c.state.SetpointC = setpointC
	}
	c.state.RoomTempC = roomTempC
	if status != "" {
		c.state.Status = status
	}
}
