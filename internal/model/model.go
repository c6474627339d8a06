package model

import "time"

type DeviceType string

const (
	DeviceClimate   DeviceType = "ac"
	DeviceCharger   DeviceType = "ev_charger"
	DeviceHeater    DeviceType = "water_heater"
	DeviceAppliance DeviceType = "washer_dryer"
)

// DeviceCatalog maps every known DeviceType to a display name.
var DeviceCatalog = map[DeviceType]string{
	DeviceClimate:   "Split AC Unit",
	DeviceCharger:   "EV Charger",
	DeviceHeater:    "Water Heater",
	DeviceAppliance: "Washer/Dryer",
}

// Room is a physical room of the home, as supplied by the seed payload.
type Room struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Device describes one device and its fixed room assignment.
type Device struct {
	ID       int        `json:"id"`
	RoomID   int        `json:"room_id"`
	Type     DeviceType `json:"type"`
	Name     string     `json:"name"`
	Status   string     `json:"status"`
	PowerKW  float64    `json:"power_kw"`
	Setpoint float64    `json:"setpoint"`
}

// Preferences holds the comfort band and EV charging targets.
type Preferences struct {
	ComfortMinC     float64 `json:"comfort_min_c"`
	ComfortMaxC     float64 `json:"comfort_max_c"`
	EVTargetSoC     float64 `json:"ev_target_soc"`
	EVDepartureTime string  `json:"ev_departure_time"`
}

// SeedData is the initialization payload the twin is built from.
type SeedData struct {
	HomeName     string      `json:"home_name"`
	Rooms        []Room      `json:"rooms"`
	Devices      []Device    `json:"devices"`
	Preferences  Preferences `json:"preferences"`
	OutsideTempC float64     `json:"outside_temp_c"`
}

// Telemetry is one reading fed into the twin. TempC and Status are
// optional; a zero Timestamp means "now".
type Telemetry struct {
	DeviceID  int       `json:"device_id"`
	PowerKW   float64   `json:"power_kw"`
	TempC     *float64  `json:"temp_c,omitempty"`
	Status    string    `json:"status,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
