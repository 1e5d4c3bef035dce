// Package metrics exposes calculation counters and histograms in the
// Prometheus text format.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

// Observer receives calculation events from the engine.
type Observer interface {
	ObserveCalculation(useCaseID, scenario string, annualValue float64)
	ObserveScenarioFallback(useCaseID string)
	ObserveRequest(route string, d time.Duration)
}

// Noop discards every observation.
type Noop struct{}

func (Noop) ObserveCalculation(string, string, float64) {}
func (Noop) ObserveScenarioFallback(string)              {}
func (Noop) ObserveRequest(string, time.Duration)        {}

type Prometheus struct {
	registry     *prometheus.Registry
	calculations *prometheus.CounterVec
	fallbacks    *prometheus.CounterVec
	duration     *prometheus.HistogramVec
	annualValue  *prometheus.HistogramVec
}

// NewPrometheus registers the collectors on a private registry.
func NewPrometheus() *Prometheus {
	p := &Prometheus{
		registry: prometheus.NewRegistry(),
		calculations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "roi_calculations_total",
			Help: "Use case calculations performed.",
		}, []string{"use_case", "scenario"}),
		fallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "roi_scenario_fallbacks_total",
			Help: "Calculations whose requested scenario was not defined.",
		}, []string{"use_case"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "roi_request_duration_seconds",
			Help:    "Time spent serving a request.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		annualValue: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "roi_annual_value",
			Help:    "Annual value produced per calculation.",
			Buckets: prometheus.ExponentialBuckets(1000, 10, 7),
		}, []string{"use_case"}),
	}
	p.registry.MustRegister(p.calculations, p.fallbacks, p.duration, p.annualValue)
	return p
}

func (p *Prometheus) ObserveCalculation(useCaseID, scenario string, annualValue float64) {
	p.calculations.WithLabelValues(useCaseID, scenario).Inc()
	p.annualValue.WithLabelValues(useCaseID).Observe(annualValue)
}

func (p *Prometheus) ObserveScenarioFallback(useCaseID string) {
	p.fallbacks.WithLabelValues(useCaseID).Inc()
}

func (p *Prometheus) ObserveRequest(route string, d time.Duration) {
	p.duration.WithLabelValues(route).Observe(d.Seconds())
}

func (p *Prometheus) Registry() *prometheus.Registry {
	return p.registry
}

// Handler serves the registry for scraping.
func (p *Prometheus) Handler() fasthttp.RequestHandler {
	return fasthttpadaptor.NewFastHTTPHandler(promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{}))
}
