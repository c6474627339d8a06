// Package twin holds the orchestrator of the home digital twin: a
// continuously-stepped physics model of every room and device, advanced
// in lockstep whenever a telemetry reading arrives.
package twin

import (
	"errors"
	"math"
	"strconv"
	"sync"
	"time"

	"horizon/internal/device"
	"horizon/internal/model"
	"horizon/internal/thermal"
)

// ErrNotInitialized is returned by callers that were handed no twin,
// typically because the seed payload was missing at startup.
var ErrNotInitialized = errors.New("twin not initialized")

// Environment holds the current outdoor conditions driving the models.
type Environment struct {
	OutsideTempC        float64 `json:"outside_temp_c"`
	SolarIrradianceWM2  float64 `json:"solar_irradiance_w_m2"`
	WindSpeedMS         float64 `json:"wind_speed_ms"`
	HumidityPct         float64 `json:"humidity_pct"`
	GridCarbonIntensity float64 `json:"grid_carbon_intensity"` // kg CO2 / kWh
}

// Config carries the twin's tunables. Zero values fall back to defaults.
type Config struct {
	TariffPerKWh     float64
	EmissionKgPerKWh float64
	MaxStepSeconds   float64
	Clock            Clock
}

// Result is the computed response for one ingested reading.
type Result struct {
	DeviceID int              `json:"device_id"`
	RoomID   int              `json:"room_id,omitempty"`
	Type     model.DeviceType `json:"type,omitempty"`
	Err      string           `json:"error,omitempty"`
	Computed any              `json:"computed,omitempty"`
}

// Unknown reports whether the reading referenced a device the twin
// does not model.
func (r Result) Unknown() bool { return r.Err != "" }

// DeviceSnapshot is one device's entry in a full snapshot.
type DeviceSnapshot struct {
	DeviceID int              `json:"device_id"`
	RoomID   int              `json:"room_id"`
	Type     model.DeviceType `json:"type"`
	Name     string           `json:"name"`
	State    any              `json:"state"`
}

// ComfortSummary aggregates comfort over the climate-controlled rooms.
type ComfortSummary struct {
	CompliancePct    float64 `json:"compliance_pct"`
	ComfortBand      string  `json:"comfort_band"`
	RoomsComfortable int     `json:"rooms_comfortable"`
	RoomsTotal       int     `json:"rooms_total"`
}

// Snapshot is an immutable, point-in-time view of the whole twin.
// It is assembled on demand and safe to serialize directly.
type Snapshot struct {
	Timestamp      string              `json:"timestamp"`
	HomeName       string              `json:"home_name"`
	Environment    Environment         `json:"environment"`
	Rooms          []thermal.RoomState `json:"rooms"`
	Devices        []DeviceSnapshot    `json:"devices"`
	Energy         EnergyTotals        `json:"energy"`
	ComfortSummary ComfortSummary      `json:"comfort_summary"`
	StepCount      int                 `json:"twin_step_count"`
	UptimeSeconds  float64             `json:"twin_uptime_seconds"`
}

// deviceModel is the capability every device kind implements.
type deviceModel interface {
	CurrentPowerKW() float64
}

const (
	heaterWasteHeatKW      = 0.1
	applianceWasteFraction = 0.15
)

// Twin is the single point of mutation for the environment, all device
// and room models, and the energy accumulator. One instance exists per
// service, owned by the composition root; every Ingest and Snapshot is
// a critical section against its mutex.
type Twin struct {
	mu sync.Mutex

	clock    Clock
	homeName string

	rooms     map[int]*thermal.Room
	roomOrder []int

	devices     map[int]deviceModel
	deviceRoom  map[int]int
	deviceType  map[int]model.DeviceType
	deviceName  map[int]string
	deviceOrder []int

	env    Environment
	energy energyAccumulator
	prefs  model.Preferences

	maxStepSeconds float64
	stepCount      int
	startTime      time.Time
	lastStep       time.Time
}

// New builds the twin from the seed payload.
func New(seed model.SeedData, cfg Config) *Twin {
	if cfg.TariffPerKWh == 0 {
		cfg.TariffPerKWh = 0.38
	}
	if cfg.EmissionKgPerKWh == 0 {
		cfg.EmissionKgPerKWh = 0.45
	}
	if cfg.MaxStepSeconds == 0 {
		cfg.MaxStepSeconds = 60
	}
	if cfg.Clock == nil {
		cfg.Clock = systemClock{}
	}

	prefs := seed.Preferences
	if prefs.ComfortMinC == 0 && prefs.ComfortMaxC == 0 {
		prefs.ComfortMinC, prefs.ComfortMaxC = 22.0, 26.0
	}
	if prefs.EVTargetSoC == 0 {
		prefs.EVTargetSoC = 80.0
	}
	if prefs.EVDepartureTime == "" {
		prefs.EVDepartureTime = "07:30"
	}

	outside := seed.OutsideTempC
	if outside == 0 {
		outside = 36.0
	}

	now := cfg.Clock.Now()
	t := &Twin{
		clock:      cfg.Clock,
		homeName:   seed.HomeName,
		rooms:      make(map[int]*thermal.Room),
		devices:    make(map[int]deviceModel),
		deviceRoom: make(map[int]int),
		deviceType: make(map[int]model.DeviceType),
		deviceName: make(map[int]string),
		env: Environment{
			OutsideTempC:        outside,
			SolarIrradianceWM2:  500.0,
			WindSpeedMS:         2.0,
			HumidityPct:         55.0,
			GridCarbonIntensity: cfg.EmissionKgPerKWh,
		},
		energy: energyAccumulator{
			tariffPerKWh:     cfg.TariffPerKWh,
			emissionKgPerKWh: cfg.EmissionKgPerKWh,
		},
		prefs:          prefs,
		maxStepSeconds: cfg.MaxStepSeconds,
		startTime:      now,
		lastStep:       now,
	}

	midComfort := (prefs.ComfortMinC + prefs.ComfortMaxC) / 2
	for _, room := range seed.Rooms {
		// Conditioned rooms start at mid-comfort; the garage tracks
		// the outdoors.
		initialTemp := midComfort
		if room.Name == "Garage" {
			initialTemp = math.Min(outside, midComfort+4)
		}
		t.rooms[room.ID] = thermal.NewRoom(room.ID, room.Name, initialTemp)
		t.roomOrder = append(t.roomOrder, room.ID)
	}

	for _, dev := range seed.Devices {
		var m deviceModel
		switch dev.Type {
		case model.DeviceClimate:
			unit := device.NewClimateUnit(dev.ID, dev.RoomID, dev.Name)
			unit.SetInitial(dev.Setpoint, midComfort, dev.Status)
			m = unit
		case model.DeviceCharger:
			m = device.NewCharger(dev.ID, dev.RoomID, dev.Name)
		case model.DeviceHeater:
			m = device.NewHeater(dev.ID, dev.RoomID, dev.Name)
		case model.DeviceAppliance:
			m = device.NewAppliance(dev.ID, dev.RoomID, dev.Name)
		default:
			continue
		}
		t.devices[dev.ID] = m
		t.deviceRoom[dev.ID] = dev.RoomID
		t.deviceType[dev.ID] = dev.Type
		t.deviceName[dev.ID] = dev.Name
		t.deviceOrder = append(t.deviceOrder, dev.ID)
	}

	return t
}

// Ingest feeds one telemetry reading into the twin, advancing the
// targeted device and every room by the elapsed wall-clock time.
// A reading for an unknown device returns a tagged result and leaves
// all state untouched.
func (t *Twin) Ingest(sample model.Telemetry) Result {
	t.mu.Lock()
	defer t.mu.Unlock()

	dm, ok := t.devices[sample.DeviceID]
	if !ok {
		return Result{DeviceID: sample.DeviceID, Err: "unknown device"}
	}

	now := t.clock.Now()
	dt := now.Sub(t.lastStep).Seconds()
	if dt < 0 {
		dt = 0
	}
	if dt > t.maxStepSeconds {
		dt = t.maxStepSeconds
	}
	t.lastStep = now
	t.stepCount++

	// A climate unit's temperature reading is its ambient sensor, so
	// treat it as an updated outdoor estimate.
	if sample.TempC != nil && t.deviceType[sample.DeviceID] == model.DeviceClimate {
		t.env.OutsideTempC = *sample.TempC
	}

	hour := hourOfDay(now.UTC())
	t.env.SolarIrradianceWM2 = thermal.Irradiance(hour)

	// Device before rooms: the climate unit consumes the room's
	// pre-step temperature, the room then consumes the unit's cooling.
	res := t.stepDevice(dm, sample, dt)
	t.stepRooms(dt, hour)
	t.energy.accumulate(t.totalPowerLocked(), dt)

	return res
}

func (t *Twin) stepDevice(dm deviceModel, sample model.Telemetry, dt float64) Result {
	id := sample.DeviceID
	roomID := t.deviceRoom[id]

	switch m := dm.(type) {
	case *device.ClimateUnit:
		roomTemp := 25.0
		if room, ok := t.rooms[roomID]; ok {
			roomTemp = room.TempC()
		}
		status := sample.Status
		if status == "" {
			status = m.State().Status
		}
		st := m.Step(dt, roomTemp, t.env.OutsideTempC, m.State().SetpointC, status)
		return Result{DeviceID: id, RoomID: roomID, Type: model.DeviceClimate, Computed: st}

	case *device.Charger:
		status := sample.Status
		if status == "" {
			status = m.State().Status
		}
		plugged := status == "charging" || status == "on" || status == "standby"
		st := m.Step(dt, plugged && sample.PowerKW > 0.01, t.prefs.EVTargetSoC, t.prefs.EVDepartureTime)
		return Result{DeviceID: id, RoomID: roomID, Type: model.DeviceCharger, Computed: st}

	case *device.Heater:
		st := m.Step(dt, sample.Status)
		return Result{DeviceID: id, RoomID: roomID, Type: model.DeviceHeater, Computed: st}

	case *device.Appliance:
		trigger := (sample.Status == "on" || sample.PowerKW > 0.1) && !m.Running()
		st := m.Step(dt, trigger)
		return Result{DeviceID: id, RoomID: roomID, Type: model.DeviceAppliance, Computed: st}
	}

	return Result{DeviceID: id, RoomID: roomID}
}

func (t *Twin) stepRooms(dt, hour float64) {
	for _, rid := range t.roomOrder {
		room := t.rooms[rid]

		var coolingKW, deviceHeatKW float64
		for _, did := range t.deviceOrder {
			if t.deviceRoom[did] != rid {
				continue
			}
			switch m := t.devices[did].(type) {
			case *device.ClimateUnit:
				coolingKW += m.CoolingKW()
			case *device.Heater:
				if m.ElementOn() {
					deviceHeatKW += heaterWasteHeatKW
				}
			case *device.Appliance:
				if p := m.CurrentPowerKW(); p > 0 {
					deviceHeatKW += p * applianceWasteFraction
				}
			}
		}

		occupants := thermal.Occupancy(hour, room.Name())
		room.Step(dt, t.env.OutsideTempC, t.env.SolarIrradianceWM2, occupants,
			deviceHeatKW, coolingKW, t.prefs.ComfortMinC, t.prefs.ComfortMaxC)
	}
}

func (t *Twin) totalPowerLocked() float64 {
	var total float64
	for _, m := range t.devices {
		total += m.CurrentPowerKW()
	}
	return total
}

// Snapshot assembles the full computed state of the twin.
func (t *Twin) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.clock.Now()

	rooms := make([]thermal.RoomState, 0, len(t.roomOrder))
	comfortOK, roomsWithClimate := 0, 0
	for _, rid := range t.roomOrder {
		rs := t.rooms[rid].State()
		rooms = append(rooms, rs)

		hasClimate := false
		for _, did := range t.deviceOrder {
			if t.deviceRoom[did] == rid && t.deviceType[did] == model.DeviceClimate {
				hasClimate = true
				break
			}
		}
		if hasClimate {
			roomsWithClimate++
			if rs.ComfortStatus == "comfortable" || rs.ComfortStatus == "cool" {
				comfortOK++
			}
		}
	}

	devices := make([]DeviceSnapshot, 0, len(t.deviceOrder))
	for _, did := range t.deviceOrder {
		devices = append(devices, DeviceSnapshot{
			DeviceID: did,
			RoomID:   t.deviceRoom[did],
			Type:     t.deviceType[did],
			Name:     t.deviceName[did],
			State:    t.deviceStateLocked(did),
		})
	}

	compliance := 1.0
	if roomsWithClimate > 0 {
		compliance = float64(comfortOK) / float64(roomsWithClimate)
	}

	env := t.env
	env.SolarIrradianceWM2 = math.Round(env.SolarIrradianceWM2*10) / 10

	return Snapshot{
		Timestamp:   now.UTC().Format(time.RFC3339),
		HomeName:    t.homeName,
		Environment: env,
		Rooms:       rooms,
		Devices:     devices,
		Energy:      t.energy.totals(t.totalPowerLocked()),
		ComfortSummary: ComfortSummary{
			CompliancePct:    math.Round(compliance*1000) / 10,
			ComfortBand:      formatBand(t.prefs.ComfortMinC, t.prefs.ComfortMaxC),
			RoomsComfortable: comfortOK,
			RoomsTotal:       roomsWithClimate,
		},
		StepCount:     t.stepCount,
		UptimeSeconds: math.Round(now.Sub(t.startTime).Seconds()*10) / 10,
	}
}

func (t *Twin) deviceStateLocked(id int) any {
	switch m := t.devices[id].(type) {
	case *device.ClimateUnit:
		return m.State()
	case *device.Charger:
		return m.State()
	case *device.Heater:
		return m.State()
	case *device.Appliance:
		return m.State()
	}
	return nil
}

// UpdatePreferences mutates the comfort band and EV targets without
// touching any physical state.
func (t *Twin) UpdatePreferences(p model.Preferences) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.prefs = p
}

// Preferences returns the current preference bundle.
func (t *Twin) Preferences() model.Preferences {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.prefs
}

func hourOfDay(tm time.Time) float64 {
	return float64(tm.Hour()) + float64(tm.Minute())/60
}

func formatBand(minC, maxC float64) string {
	return strconv.FormatFloat(minC, 'f', -1, 64) + "-" + strconv.FormatFloat(maxC, 'f', -1, 64) + "°C"
}
