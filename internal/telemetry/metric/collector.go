package metric

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// registerCollectors attaches the standard runtime collectors and the
// service info gauge to the registry.
//
// @design DS-0402
func registerCollectors(reg *prometheus.Registry, cfg Config) {
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	version := cfg.Version
	if version == "" {
		version = "dev"
	}

	// Constant gauge pinned to 1. Joins the service name and version
	// onto any series in PromQL.
	info := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: cfg.Namespace,
		Name:      "service_info",
		Help:      "Service identity. Always 1; labels carry the service name and version.",
	}, []string{"service", "version"})
	reg.MustRegister(info)
	info.WithLabelValues(cfg.Service, version).Set(1)
}
