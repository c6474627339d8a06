package device

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeater_ElementOnBelowDeadBand(t *testing.T) {
	h := NewHeater(4, 3, "Water Heater")

	// Starts at 45°C, well below 60 - 3.
	st := h.Step(60, "")
	assert.True(t, st.ElementOn)
	assert.Equal(t, "heating", st.Status)
	assert.InDelta(t, 3.0, st.PowerKW, 0.001)
}

func TestHeater_HysteresisToggling(t *testing.T) {
	h := NewHeater(4, 3, "Water Heater")

	// Heat up to the target. 3 kW * 0.95 into 0.2325 kWh/K moves
	// ~0.2°C per minute, so a few hours of minutes is plenty.
	sawOff := false
	var maxTemp float64
	for i := 0; i < 600; i++ {
		st := h.Step(60, "")
		if st.WaterTempC > maxTemp {
			maxTemp = st.WaterTempC
		}
		if st.WaterTempC < 57 && !sawOff {
			assert.True(t, st.ElementOn, "element must heat below 57°C, temp %.2f", st.WaterTempC)
		}
		if st.WaterTempC >= 60 {
			// Next step must see the element off.
			next := h.Step(60, "")
			assert.False(t, next.ElementOn)
			sawOff = true
			break
		}
	}
	require.True(t, sawOff, "tank never reached target")
	// One integration step's overshoot at most (~0.21°C per 60s step).
	assert.LessOrEqual(t, maxTemp, 60.3)
}

func TestHeater_ReheatsAfterDroppingBelowDeadBand(t *testing.T) {
	h := NewHeater(4, 3, "Water Heater")

	// Drive to target.
	for i := 0; i < 600 && h.State().WaterTempC < 60; i++ {
		h.Step(60, "")
	}
	h.Step(60, "")
	require.False(t, h.ElementOn())

	// Standby losses only; element stays off until 57°C.
	for i := 0; i < 100000 && h.State().WaterTempC >= 57; i++ {
		st := h.Step(60, "")
		if st.WaterTempC >= 57 {
			assert.False(t, st.ElementOn)
		}
	}
	st := h.Step(60, "")
	assert.True(t, st.ElementOn)
}

func TestHeater_OffOverride(t *testing.T) {
	h := NewHeater(4, 3, "Water Heater")

	st := h.Step(60, "off")
	assert.Equal(t, "off", st.Status)
	assert.False(t, st.ElementOn)
	assert.Equal(t, 0.0, st.PowerKW)
}

func TestHeater_AmbientFloor(t *testing.T) {
	h := NewHeater(4, 3, "Water Heater")

	// Forced off for a very long time: tank cools toward ambient but
	// never below it.
	for i := 0; i < 5000; i++ {
		h.Step(3600, "off")
	}
	assert.GreaterOrEqual(t, h.State().WaterTempC, 28.0)
}

func TestHeater_StoredEnergyAboveAmbient(t *testing.T) {
	h := NewHeater(4, 3, "Water Heater")

	st := h.Step(60, "")
	want := 0.2325 * (st.WaterTempC - 28.0)
	assert.InDelta(t, want, st.EnergyStoredKWh, 0.01)
}
