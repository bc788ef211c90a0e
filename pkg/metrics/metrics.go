package metrics

import (
	"fmt"
	"github.com/prometheus/client_golang/prometheus"
)

var builtInCollectors = make(map[string]InitCollector)

type InitCollector func() (prometheus.Collector, error)

func RegisterCollector(name string, init InitCollector) error {
	if _, found := builtInCollectors[name]; found {
		return fmt.Errorf("Collector %s already registered", name)
	}

	builtInCollectors[name] = init

	return nil
}

// NewMetricGatherer builds a fresh Prometheus registry from the currently
// registered collectors. Each call gets its own registry and calls every
// registered InitCollector again, so calling it more than once (Start is
// idempotent and may run again from a configuration notifier) never
// registers a collector against a registry that already has it. An
// InitCollector may return the same collector instance on every call.
func NewMetricGatherer() (prometheus.Gatherer, error) {
	reg := prometheus.NewPedanticRegistry()

	collectors := make([]prometheus.Collector, 0, len(builtInCollectors))
	for _, cb := range builtInCollectors {
		c, err := cb()
		if err != nil {
			return nil, err
		}
		collectors = append(collectors, c)
	}

	reg.MustRegister(collectors...)

	return reg, nil
}
