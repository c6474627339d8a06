// Package device holds the per-device physics models of the digital
// twin. Each model owns its state and is advanced with a Step call; the
// orchestrator feeds inputs and reads computed state back.
package device

import "math"

func round1(v float64) float64 { return math.Round(v*10) / 10 }

func round2(v float64) float64 { return math.Round(v*100) / 100 }

func round3(v float64) float64 { return math.Round(v*1000) / 1000 }
