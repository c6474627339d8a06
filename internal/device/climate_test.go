package device

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClimate_OffProducesNothing(t *testing.T) {
	c := NewClimateUnit(1, 1, "Living Room AC")

	st := c.Step(60, 27, 38, 24, "off")
	assert.Equal(t, 0.0, st.PowerKW)
	assert.Equal(t, 0.0, st.CoolingOutputKW)
	assert.Equal(t, 0.0, st.CompressorLoadPct)
}

func TestClimate_CycleCountsOnTransitions(t *testing.T) {
	c := NewClimateUnit(1, 1, "Living Room AC")

	c.Step(60, 27, 38, 24, "on")
	assert.Equal(t, 1, c.State().CyclesToday)

	// Staying on does not add cycles.
	c.Step(60, 27, 38, 24, "on")
	assert.Equal(t, 1, c.State().CyclesToday)

	// Transition away from "on" adds one.
	c.Step(60, 27, 38, 24, "off")
	assert.Equal(t, 2, c.State().CyclesToday)

	// Staying off does not.
	c.Step(60, 27, 38, 24, "off")
	assert.Equal(t, 2, c.State().CyclesToday)
}

func TestClimate_COPBounds(t *testing.T) {
	c := NewClimateUnit(1, 1, "AC")

	for _, outside := range []float64{20, 30, 35, 40, 50, 80} {
		st := c.Step(60, 27, outside, 24, "on")
		assert.GreaterOrEqual(t, st.COP, 1.5, "outside %.0f", outside)
		assert.LessOrEqual(t, st.COP, 3.2, "outside %.0f", outside)
	}

	// Nominal at or below the 35°C reference.
	st := c.Step(60, 27, 30, 24, "on")
	assert.InDelta(t, 3.2, st.COP, 0.001)

	// Degrades 0.05 per degree above reference.
	st = c.Step(60, 27, 40, 24, "on")
	assert.InDelta(t, 2.95, st.COP, 0.001)
}

func TestClimate_CompressorBounds(t *testing.T) {
	c := NewClimateUnit(1, 1, "AC")

	for _, roomTemp := range []float64{20, 24, 25, 27, 30, 45} {
		st := c.Step(60, roomTemp, 38, 24, "on")
		assert.GreaterOrEqual(t, st.CompressorLoadPct, 30.0, "room %.0f", roomTemp)
		assert.LessOrEqual(t, st.CompressorLoadPct, 100.0, "room %.0f", roomTemp)
	}

	// At or below setpoint: inverter minimum.
	st := c.Step(60, 23, 38, 24, "on")
	assert.InDelta(t, 30, st.CompressorLoadPct, 0.001)

	// 1°C error: 30 + 20.
	st = c.Step(60, 25, 38, 24, "on")
	assert.InDelta(t, 50, st.CompressorLoadPct, 0.001)

	// Large error saturates at 100%.
	st = c.Step(60, 32, 38, 24, "on")
	assert.InDelta(t, 100, st.CompressorLoadPct, 0.001)
}

func TestClimate_CoolingIsThermalNotElectrical(t *testing.T) {
	c := NewClimateUnit(1, 1, "AC")

	st := c.Step(60, 25, 36, 24, "on")
	// 50% load of 1.8 kW rated = 0.9 kW electrical.
	assert.InDelta(t, 0.9, st.PowerKW, 0.001)
	// Cooling is electrical draw times COP (3.15 at 36°C outside).
	assert.InDelta(t, 0.9*3.15, st.CoolingOutputKW, 0.01)
	assert.InDelta(t, st.CoolingOutputKW, c.CoolingKW(), 0.0001)
}

func TestClimate_RuntimeAccumulates(t *testing.T) {
	c := NewClimateUnit(1, 1, "AC")

	c.Step(60, 27, 38, 24, "on")
	c.Step(90, 27, 38, 24, "on")
	assert.InDelta(t, 2.5, c.State().RuntimeMinutes, 0.001)

	// Off steps do not accumulate runtime.
	c.Step(600, 27, 38, 24, "off")
	assert.InDelta(t, 2.5, c.State().RuntimeMinutes, 0.001)
}
