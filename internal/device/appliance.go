package device

// ApplianceState is the live computed state of the washer/dryer.
type ApplianceState struct {
	Status             string  `json:"status"` // off / washing / rinsing / spinning / drying / complete
	PowerKW            float64 `json:"power_kw"`
	CyclePhase         string  `json:"cycle_phase"`
	ProgressPct        float64 `json:"progress_pct"`
	TimeRemainingMin   float64 `json:"time_remaining_min"`
	EnergyThisCycleKWh float64 `json:"energy_this_cycle_kwh"`
}

type cyclePhase struct {
	name    string
	minutes float64
	powerKW float64
}

var appliancePhases = []cyclePhase{
	{"washing", 15, 0.5},
	{"rinsing", 10, 0.3},
	{"spinning", 10, 0.8},
	{"drying", 30, 2.0},
}

func totalCycleMinutes() float64 {
	var total float64
	for _, p := range appliancePhases {
		total += p.minutes
	}
	return total
}

// Appliance models a washer/dryer as a strict state machine over the
// fixed phase table: each phase has a fixed duration and power draw,
// and once the cumulative elapsed time passes the last phase the
// machine halts in "complete" until the next start trigger.
type Appliance struct {
	ID     int
	RoomID int
	Name   string

	state      ApplianceState
	elapsedMin float64
	running    bool
}

func NewAppliance(id, roomID int, name string) *Appliance {
	return &Appliance{
		ID:     id,
		RoomID: roomID,
		Name:   name,
		state: ApplianceState{
			Status:     "off",
			CyclePhase: "idle",
		},
	}
}

// StartCycle begins a new wash+dry cycle, resetting cycle energy.
func (a *Appliance) StartCycle() {
	a.running = true
	a.elapsedMin = 0
	a.state.EnergyThisCycleKWh = 0
	a.state.Status = appliancePhases[0].name
}

// Running reports whether a cycle is in progress.
func (a *Appliance) Running() bool { return a.running }

// Step advances the appliance by dtSeconds. triggerStart starts a new
// cycle only when the machine is not already running.
func (a *Appliance) Step(dtSeconds float64, triggerStart bool) ApplianceState {
	if triggerStart && !a.running {
		a.StartCycle()
	}

	if !a.running {
		a.state.Status = "off"
		a.state.PowerKW = 0
		a.state.CyclePhase = "idle"
		a.state.ProgressPct = 0
		a.state.TimeRemainingMin = 0
		return a.state
	}

	totalMin := totalCycleMinutes()
	a.elapsedMin += dtSeconds / 60

	var cumulative float64
	for _, phase := range appliancePhases {
		if a.elapsedMin <= cumulative+phase.minutes {
			a.state.CyclePhase = phase.name
			a.state.Status = phase.name
			a.state.PowerKW = phase.powerKW
			a.state.ProgressPct = round1(a.elapsedMin / totalMin * 100)
			a.state.TimeRemainingMin = round1(totalMin - a.elapsedMin)
			a.state.EnergyThisCycleKWh += phase.powerKW * (dtSeconds / 60 / 60)
			return a.state
		}
		cumulative += phase.minutes
	}

	// Past the last phase: cycle complete.
	a.running = false
	a.state.Status = "complete"
	a.state.PowerKW = 0
	a.state.CyclePhase = "complete"
	a.state.ProgressPct = 100
	a.state.TimeRemainingMin = 0
	return a.state
}

func (a *Appliance) State() ApplianceState { return a.state }

func (a *Appliance) CurrentPowerKW() float64 { return a.state.PowerKW }
