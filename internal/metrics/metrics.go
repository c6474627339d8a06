// Package metrics registers the service's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// IngestTotal counts accepted telemetry readings by device type.
	IngestTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "horizon_ingest_total",
		Help: "Accepted telemetry readings, by device type.",
	}, []string{"device_type"})

	// UnknownDeviceTotal counts readings rejected for an unknown device id.
	UnknownDeviceTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "horizon_ingest_unknown_device_total",
		Help: "Telemetry readings referencing a device the twin does not model.",
	})

	// WSClients tracks currently connected WebSocket clients.
	WSClients = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "horizon_ws_clients",
		Help: "Currently connected WebSocket clients.",
	})
)
