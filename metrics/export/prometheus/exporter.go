package prometheus

import (
	"net/http"

	goAuthz "github.com/MrEthical07/goAuthz"
	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Exporter owns a registry holding a Collector, for hosts that do not run
// their own.
type Exporter struct {
	registry  *promclient.Registry
	collector *Collector
}

// NewExporter reads from m, usually middleware.Extractor.Metrics().
func NewExporter(m *goAuthz.Metrics) *Exporter {
	return newExporter(NewCollector(m))
}

// NewExporterFromSource reads from any snapshot source.
func NewExporterFromSource(source metricsSource) *Exporter {
	return newExporter(NewCollectorFromSource(source))
}

func newExporter(c *Collector) *Exporter {
	reg := promclient.NewRegistry()
	reg.MustRegister(c)
	return &Exporter{registry: reg, collector: c}
}

// Registry returns the exporter's registry so hosts can add their own
// collectors to the same endpoint.
func (e *Exporter) Registry() *promclient.Registry { return e.registry }

// Handler serves the registry in the Prometheus exposition format.
func (e *Exporter) Handler() http.Handler {
	return promhttp.HandlerFor(e.registry, promhttp.HandlerOpts{})
}
