package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// SetupPrometheus creates the service registry with the runtime collectors and
// a constant gauge labeled with the deployed version.
func SetupPrometheus(namespace, subsystem, versionInfo string) *prometheus.Registry {
	promRegistry := prometheus.NewRegistry()

	promRegistry.MustRegister(
		collectors.NewBuildInfoCollector(),
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{Namespace: namespace}),
	)

	versionGauge := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace:   namespace,
		Subsystem:   subsystem,
		Name:        "version_info",
		Help:        "Always 1, labeled with the running service version",
		ConstLabels: prometheus.Labels{"version": versionInfo},
	})
	versionGauge.Set(1)
	promRegistry.MustRegister(versionGauge)

	return promRegistry
}
