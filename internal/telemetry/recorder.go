// Package telemetry mirrors a running Coordinator's statistics
// surface into Prometheus gauges, the way intel-cri-resource-manager
// exports its resource-manager state via
// contrib.go.opencensus.io/exporter/prometheus and
// github.com/prometheus/client_golang. This is additive
// instrumentation on top of the stats the coordinator already
// maintains; it does not change engine semantics or touch frames.
package telemetry

import (
	"github.com/biscuit-labs/pagingsim/internal/mmu"
	"github.com/prometheus/client_golang/prometheus"
)

// Recorder exposes simulators' counters as Prometheus gauges labeled
// by simulator name, so one Recorder can carry both engines. Its
// gauges are registered under a caller-supplied registry so the CLI's
// serve command can mount them at /metrics.
type Recorder struct {
	registry *prometheus.Registry

	clock         *prometheus.GaugeVec
	thrashing     *prometheus.GaugeVec
	swap          *prometheus.GaugeVec
	fragBytes     *prometheus.GaugeVec
	pageFaults    *prometheus.GaugeVec
	pageHits      *prometheus.GaugeVec
	pagesEvicted  *prometheus.GaugeVec
	pagesCreated  *prometheus.GaugeVec
	instructions  *prometheus.GaugeVec
}

// NewRecorder builds a Recorder and registers its gauges under
// registry. Each gauge is labeled by "sim", the simulator name
// (typically "OPT" or the user algorithm's name), so OPT and the user
// arm can be graphed side by side.
func NewRecorder(registry *prometheus.Registry) *Recorder {
	mk := func(name, help string) *prometheus.GaugeVec {
		gv := prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "pagingsim",
			Name:      name,
			Help:      help,
		}, []string{"sim"})
		registry.MustRegister(gv)
		return gv
	}
	return &Recorder{
		registry:     registry,
		clock:        mk("clock", "Simulated clock, in cost units."),
		thrashing:    mk("thrashing_time", "Cumulative simulated time attributed to faults."),
		swap:         mk("pages_in_swap", "Number of live pages currently swapped out."),
		fragBytes:    mk("internal_fragmentation_bytes", "Bytes lost to internal fragmentation."),
		pageFaults:   mk("page_faults_total", "Page faults observed so far."),
		pageHits:     mk("page_hits_total", "Page hits observed so far."),
		pagesEvicted: mk("pages_evicted_total", "Pages evicted so far."),
		pagesCreated: mk("pages_created_total", "Pages created so far."),
		instructions: mk("instructions_total", "Instructions processed so far."),
	}
}

// Observe updates every gauge from e's current state.
func (r *Recorder) Observe(e *mmu.Engine) {
	labels := prometheus.Labels{"sim": e.Name}
	r.clock.With(labels).Set(float64(e.Clock))
	r.thrashing.With(labels).Set(float64(e.ThrashingTime))
	r.swap.With(labels).Set(float64(e.SwapCount))
	r.fragBytes.With(labels).Set(float64(e.FragBytes))
	r.pageFaults.With(labels).Set(float64(e.Stats.PageFaults))
	r.pageHits.With(labels).Set(float64(e.Stats.PageHits))
	r.pagesEvicted.With(labels).Set(float64(e.Stats.PagesEvicted))
	r.pagesCreated.With(labels).Set(float64(e.Stats.PagesCreated))
	r.instructions.With(labels).Set(float64(e.Stats.TotalInstructions))
}
