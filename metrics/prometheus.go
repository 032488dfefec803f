package metrics

import (
	"time"

	"github.com/pkg/errors"
	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	reg           *prom.Registry
	pages         *prom.CounterVec
	outputBytes   prom.Counter
	buildDuration prom.Histogram
}

// NewPrometheusRecorder constructs and registers the build metrics on reg,
// or on a fresh registry when reg is nil.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		reg: reg,
		pages: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "crank",
			Name:      "pages_total",
			Help:      "Pages processed by result",
		}, []string{"result"}),
		outputBytes: prom.NewCounter(prom.CounterOpts{
			Namespace: "crank",
			Name:      "output_bytes_total",
			Help:      "Bytes of HTML written",
		}),
		buildDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: "crank",
			Name:      "build_duration_seconds",
			Help:      "Total build duration",
			Buckets:   prom.DefBuckets,
		}),
	}
	reg.MustRegister(pr.pages, pr.outputBytes, pr.buildDuration)
	return pr
}

func (p *PrometheusRecorder) IncPage(result string) {
	p.pages.WithLabelValues(result).Inc()
}

func (p *PrometheusRecorder) AddOutputBytes(n int) {
	p.outputBytes.Add(float64(n))
}

func (p *PrometheusRecorder) ObserveBuildDuration(d time.Duration) {
	p.buildDuration.Observe(d.Seconds())
}

// WriteTextfile writes every registered metric to path in the Prometheus
// text format.
func (p *PrometheusRecorder) WriteTextfile(path string) error {
	return errors.Wrapf(prom.WriteToTextfile(path, p.reg), "writing metrics to %s", path)
}
