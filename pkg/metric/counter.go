package metric

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type IncrementalCounter interface {
	Increment(val ...string)
}

type Counter struct {
	Name string
	Help string

	vec *prometheus.CounterVec
}

func (c *Counter) Increment(val ...string) {
	c.vec.WithLabelValues(val...).Inc()
}

func NewCounterWithRegistry(reg prometheus.Registerer, name, help string, labels ...string) IncrementalCounter {
	counter := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      name,
		Help:      help,
	}, labels)

	reg.MustRegister(counter)

	return &Counter{
		Name: name,
		Help: help,
		vec:  counter,
	}
}

// Setter records the latest value of a measurement.
type Setter interface {
	Set(v float64, val ...string)
}

type Gauge struct {
	Name string
	Help string

	vec *prometheus.GaugeVec
}

func (g *Gauge) Set(v float64, val ...string) {
	g.vec.WithLabelValues(val...).Set(v)
}

func NewGaugeWithRegistry(reg prometheus.Registerer, name, help string, labels ...string) Setter {
	gauge := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: Namespace,
		Name:      name,
		Help:      help,
	}, labels)

	reg.MustRegister(gauge)

	return &Gauge{
		Name: name,
		Help: help,
		vec:  gauge,
	}
}

// GetHandlerForRegistry returns an HTTP handler for serving Prometheus metrics from a custom registry.
func GetHandlerForRegistry(reg prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

type nop struct{}

func (nop) Increment(...string)     {}
func (nop) Set(float64, ...string) {}
