package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters and gauges for the control tower.
type Metrics struct {
	Movements     *prometheus.CounterVec // labels: kind={landed,took_off}
	Rejections    *prometheus.CounterVec // labels: operation={land,take_off}, reason
	Forecasts     *prometheus.CounterVec // labels: condition={clear,stormy}
	PlanesParked  prometheus.Gauge
	Capacity      prometheus.Gauge
	PublishErrors prometheus.Counter
}

// NewMetrics creates and registers all tower metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	return NewMetricsWith(prometheus.DefaultRegisterer)
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return NewMetricsWith(prometheus.NewRegistry())
}

// NewMetricsWith creates the tower metrics and registers them with reg.
func NewMetricsWith(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Movements: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "airport",
			Name:      "movements_total",
			Help:      "Successful landings and take-offs.",
		}, []string{"kind"}),
		Rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "airport",
			Name:      "rejections_total",
			Help:      "Refused landings and take-offs by reason.",
		}, []string{"operation", "reason"}),
		Forecasts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "airport",
			Name:      "forecasts_total",
			Help:      "Weather forecasts issued by condition.",
		}, []string{"condition"}),
		PlanesParked: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "airport",
			Name:      "planes_parked",
			Help:      "Planes currently parked at the airport.",
		}),
		Capacity: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "airport",
			Name:      "capacity",
			Help:      "Configured airport capacity.",
		}),
		PublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "airport",
			Name:      "movement_publish_errors_total",
			Help:      "Movements that could not be published.",
		}),
	}

	reg.MustRegister(
		m.Movements,
		m.Rejections,
		m.Forecasts,
		m.PlanesParked,
		m.Capacity,
		m.PublishErrors,
	)

	return m
}
