package device

import "math"

// ChargerState is the live computed state of the EV charger.
type ChargerState struct {
	SoCPct              float64 `json:"soc_pct"`
	Status              string  `json:"status"` // charging / standby / complete
	PowerKW             float64 `json:"power_kw"`
	MaxChargeRateKW     float64 `json:"max_charge_rate_kw"`
	BatteryCapacityKWh  float64 `json:"battery_capacity_kwh"`
	EnergyDeliveredKWh  float64 `json:"energy_delivered_kwh"`
	TimeToTargetMinutes float64 `json:"time_to_target_minutes"`
}

// Charger models EV charging with a simplified CC-CV curve: constant
// current at the full rated rate up to 80% SoC, then a linear constant
// voltage taper down to 20% of the rated rate at 100%.
type Charger struct {
	ID     int
	RoomID int
	Name   string

	state ChargerState
}

const (
	chargeEfficiency = 0.92
	cvTaperStartSoC  = 80.0
	cvTaperFloor     = 0.2
)

func NewCharger(id, roomID int, name string) *Charger {
	return &Charger{
		ID:     id,
		RoomID: roomID,
		Name:   name,
		state: ChargerState{
			SoCPct:             45.0,
			Status:             "standby",
			MaxChargeRateKW:    7.0,
			BatteryCapacityKWh: 60.0,
		},
	}
}

// Step advances the charger by dtSeconds. departureTime is carried for
// callers that schedule around it; it does not affect the charge curve.
func (c *Charger) Step(dtSeconds float64, pluggedIn bool, targetSoC float64, departureTime string) ChargerState {
	dtHours := dtSeconds / 3600

	if !pluggedIn || c.state.SoCPct >= 100 {
		c.state.PowerKW = 0
		if c.state.SoCPct >= targetSoC {
			c.state.Status = "complete"
		} else {
			c.state.Status = "standby"
		}
		return c.state
	}

	if c.state.SoCPct >= targetSoC {
		c.state.PowerKW = 0
		c.state.Status = "complete"
		return c.state
	}

	chargeRate := c.state.MaxChargeRateKW
	if c.state.SoCPct >= cvTaperStartSoC {
		taper := (c.state.SoCPct - cvTaperStartSoC) / (100 - cvTaperStartSoC)
		chargeRate = c.state.MaxChargeRateKW * math.Max(cvTaperFloor, 1-(1-cvTaperFloor)*taper)
	}

	c.state.PowerKW = round3(chargeRate)
	c.state.Status = "charging"

	energyStep := chargeRate * chargeEfficiency * dtHours
	c.state.EnergyDeliveredKWh += energyStep

	socIncrement := energyStep / c.state.BatteryCapacityKWh * 100
	c.state.SoCPct = math.Min(100, round2(c.state.SoCPct+socIncrement))

	remainingKWh := (targetSoC - c.state.SoCPct) / 100 * c.state.BatteryCapacityKWh
	if chargeRate > 0 && remainingKWh > 0 {
		hoursRemaining := remainingKWh / (chargeRate * chargeEfficiency)
		c.state.TimeToTargetMinutes = round1(hoursRemaining * 60)
	} else {
		c.state.TimeToTargetMinutes = 0
	}

	return c.state
}

func (c *Charger) State() ChargerState { return c.state }

func (c *Charger) CurrentPowerKW() float64 { return c.state.PowerKW }

// SetSoC overrides the state of charge, used at seeding.
func (c *Charger) SetSoC(pct float64) {
	c.state.SoCPct = pct
}
