// Package metrics exposes the counters of a running hunt to Prometheus and
// as a JSON status page.
package metrics

import (
	"math/big"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/Amr-9/BalanceHunter/internal/pipeline"
)

const namespace = "balancehunter"

// Source provides the current run snapshot.
type Source interface {
	Stats() pipeline.Snapshot
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func() pipeline.Snapshot

// Stats calls f.
func (f SourceFunc) Stats() pipeline.Snapshot { return f() }

// NewRegistry registers the run metrics of src, labelled with the network,
// plus the Go runtime collectors.
func NewRegistry(src Source, network string) *prometheus.Registry {
	reg := prometheus.NewRegistry()
	labels := prometheus.Labels{"network": network}

	counter := func(name, help string, value func(pipeline.Snapshot) float64) prometheus.Collector {
		return prometheus.NewCounterFunc(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        name,
			Help:        help,
			ConstLabels: labels,
		}, func() float64 { return value(src.Stats()) })
	}
	gauge := func(name, help string, value func(pipeline.Snapshot) float64) prometheus.Collector {
		return prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        name,
			Help:        help,
			ConstLabels: labels,
		}, func() float64 { return value(src.Stats()) })
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),

		counter("guesses_total", "Candidates generated.",
			func(s pipeline.Snapshot) float64 { return float64(s.Attempts) }),
		counter("verified_total", "Candidates whose balance lookup completed.",
			func(s pipeline.Snapshot) float64 { return float64(s.Verified) }),
		counter("lookup_failures_total", "Balance lookups that failed and counted as zero.",
			func(s pipeline.Snapshot) float64 { return float64(s.LookupFailures) }),
		counter("funded_total", "Verified identifiers holding a positive balance.",
			func(s pipeline.Snapshot) float64 { return float64(s.Funded) }),
		gauge("elapsed_seconds", "Time since generation started.",
			func(s pipeline.Snapshot) float64 { return s.Elapsed.Seconds() }),
		gauge("guess_rate", "Average candidates generated per second.",
			func(s pipeline.Snapshot) float64 { return s.GuessRate }),
		gauge("best_match_length", "Longest prefix match seen so far.",
			func(s pipeline.Snapshot) float64 { return float64(s.BestLength) }),
		gauge("difficulty_percent", "Best match length as a percentage of the identifier length.",
			func(s pipeline.Snapshot) float64 { return s.Difficulty() }),
		gauge("queue_depth", "Candidates waiting for a balance lookup.",
			func(s pipeline.Snapshot) float64 { return float64(s.Pending) }),
		gauge("total_balance_base_units", "Sum of all verified balances in base units.",
			func(s pipeline.Snapshot) float64 { return toFloat(s.TotalBalance) }),
	)
	return reg
}

func toFloat(v *big.Int) float64 {
	if v == nil {
		return 0
	}
	f, _ := new(big.Float).SetInt(v).Float64()
	return f
}
