// Package thermal implements the per-room lumped-parameter heat
// balance of the digital twin:
//
//	dT_room/dt = [ Q_wall + Q_solar + Q_occupancy + Q_devices - Q_cooling ] / C_thermal
//
// with Q_wall = (T_out - T_room) / R_wall, Q_solar from irradiance on
// the window area, and ~100 W of body heat per occupant.
package thermal

import "math"

// RoomState is the computed thermal state of one room.
type RoomState struct {
	RoomID            int     `json:"room_id"`
	RoomName          string  `json:"room_name"`
	CurrentTempC      float64 `json:"current_temp_c"`
	TempTrendCPerHour float64 `json:"temp_trend_c_per_hour"`
	HumidityPct       float64 `json:"humidity_pct"`
	ComfortStatus     string  `json:"comfort_status"` // comfortable / warm / cool / out_of_band
	HeatGainKW        float64 `json:"heat_gain_kw"`
	CoolingOutputKW   float64 `json:"cooling_output_kw"`
	MinutesToSetpoint float64 `json:"minutes_to_setpoint"`
}

type roomProps struct {
	rWall        float64 // thermal resistance [K/kW]
	cThermal     float64 // thermal mass [kWh/K]
	windowAreaM2 float64
	shgc         float64 // solar heat gain coefficient
}

// Fixed per-room constants, keyed by room name.
var roomProperties = map[string]roomProps{
	"Living Room": {rWall: 4.5, cThermal: 0.45, windowAreaM2: 6.0, shgc: 0.25},
	"Bedroom":     {rWall: 5.0, cThermal: 0.35, windowAreaM2: 3.0, shgc: 0.20},
	"Kitchen":     {rWall: 4.0, cThermal: 0.30, windowAreaM2: 2.0, shgc: 0.25},
	"Garage":      {rWall: 2.5, cThermal: 0.60, windowAreaM2: 0.5, shgc: 0.15},
}

var defaultRoomProps = roomProps{rWall: 4.0, cThermal: 0.35, windowAreaM2: 3.0, shgc: 0.22}

const occupantHeatKW = 0.1 // ~100 W per person

// Room integrates the heat balance for a single room.
type Room struct {
	props roomProps
	state RoomState
}

func NewRoom(id int, name string, initialTempC float64) *Room {
	props, ok := roomProperties[name]
	if !ok {
		props = defaultRoomProps
	}
	return &Room{
		props: props,
		state: RoomState{
			RoomID:        id,
			RoomName:      name,
			CurrentTempC:  initialTempC,
			HumidityPct:   55.0,
			ComfortStatus: "comfortable",
		},
	}
}

// Name returns the room's display name, used for occupancy lookup.
func (r *Room) Name() string { return r.state.RoomName }

// TempC returns the current computed room temperature.
func (r *Room) TempC() float64 { return r.state.CurrentTempC }

func (r *Room) State() RoomState { return r.state }

// Step advances the room temperature by dtSeconds.
//
// The integrated temperature is deliberately unclamped: it is bounded
// in practice by the orchestrator's step-size cap and by physical
// inputs, and a hard clamp would hide mis-seeded devices.
func (r *Room) Step(dtSeconds, outsideTempC, solarWPerM2, occupants, deviceHeatKW, coolingKW, comfortMinC, comfortMaxC float64) RoomState {
	dtHours := dtSeconds / 3600
	temp := r.state.CurrentTempC

	qWall := (outsideTempC - temp) / r.props.rWall
	qSolar := solarWPerM2 / 1000 * r.props.windowAreaM2 * r.props.shgc
	qOccupancy := occupants * occupantHeatKW

	totalHeatGain := qWall + qSolar + qOccupancy + deviceHeatKW
	netHeat := totalHeatGain - coolingKW

	dT := netHeat * dtHours / r.props.cThermal
	newTemp := temp + dT

	var trend float64
	if dtSeconds > 0 {
		trend = dT / dtHours
	}

	r.state.CurrentTempC = round2(newTemp)
	r.state.TempTrendCPerHour = round2(trend)
	r.state.HeatGainKW = round3(totalHeatGain)
	r.state.CoolingOutputKW = round3(coolingKW)

	// Humidity heuristic: hotter outdoors raises the base, occupants
	// add moisture, active cooling dries the air.
	baseHumidity := 50.0
	if outsideTempC > 35 {
		baseHumidity = 60.0
	}
	var coolingEffect float64
	if coolingKW > 0 {
		coolingEffect = -5.0
	}
	r.state.HumidityPct = round1(clamp(baseHumidity+occupants*2+coolingEffect, 30, 80))

	switch {
	case newTemp >= comfortMinC && newTemp <= comfortMaxC:
		r.state.ComfortStatus = "comfortable"
	case newTemp < comfortMinC:
		r.state.ComfortStatus = "cool"
	default:
		r.state.ComfortStatus = "warm"
	}
	if newTemp < comfortMinC-2 || newTemp > comfortMaxC+2 {
		r.state.ComfortStatus = "out_of_band"
	}

	// Minutes to the band midpoint, only while actively cooling down.
	r.state.MinutesToSetpoint = 0
	if coolingKW > 0 && trend < 0 {
		setpoint := (comfortMinC + comfortMaxC) / 2
		if newTemp > setpoint {
			r.state.MinutesToSetpoint = round1(math.Abs((newTemp-setpoint)/trend) * 60)
		}
	}

	return r.state
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }

func round2(v float64) float64 { return math.Round(v*100) / 100 }

func round3(v float64) float64 { return math.Round(v*1000) / 1000 }
