// Package history keeps a bounded in-memory record of accepted
// telemetry samples per device, for the recent-telemetry API. It is
// not persistence: a restart starts empty, like the twin itself.
package history

import (
	"sort"
	"sync"
	"time"

	"horizon/internal/model"
)

// History holds samples per device, ordered by arrival.
type History struct {
	mu        sync.RWMutex
	perDevice int
	samples   map[int][]model.Telemetry
}

func New(perDevice int) *History {
	if perDevice <= 0 {
		perDevice = 500
	}
	return &History{
		perDevice: perDevice,
		samples:   make(map[int][]model.Telemetry),
	}
}

// Add records one sample, evicting the oldest once the per-device
// bound is reached.
func (h *History) Add(sample model.Telemetry) {
	h.mu.Lock()
	defer h.mu.Unlock()

	buf := h.samples[sample.DeviceID]
	if len(buf) >= h.perDevice {
		buf = buf[1:]
	}
	h.samples[sample.DeviceID] = append(buf, sample)
}

// Count returns the number of retained samples for a device.
func (h *History) Count(deviceID int) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.samples[deviceID])
}

// Recent returns up to n most recent samples for a device, oldest first.
func (h *History) Recent(deviceID, n int) []model.Telemetry {
	h.mu.RLock()
	defer h.mu.RUnlock()

	buf := h.samples[deviceID]
	if n <= 0 || n > len(buf) {
		n = len(buf)
	}
	out := make([]model.Telemetry, n)
	copy(out, buf[len(buf)-n:])
	return out
}

// InRange returns samples with timestamps in [start, end), assuming
// per-device arrival order matches timestamp order.
func (h *History) InRange(deviceID int, start, end time.Time) []model.Telemetry {
	h.mu.RLock()
	defer h.mu.RUnlock()

	buf := h.samples[deviceID]
	if len(buf) == 0 {
		return nil
	}

	startIdx := sort.Search(len(buf), func(i int) bool {
		return !buf[i].Timestamp.Before(start)
	})
	endIdx := sort.Search(len(buf), func(i int) bool {
		return !buf[i].Timestamp.Before(end)
	})
	if startIdx >= endIdx {
		return nil
	}

	out := make([]model.Telemetry, endIdx-startIdx)
	copy(out, buf[startIdx:endIdx])
	return out
}
