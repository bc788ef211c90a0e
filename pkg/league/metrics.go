// Copyright 2022 Intel Corporation. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package league

import (
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/pcm-project/pcm-resmgr/pkg/metrics"
)

// Prometheus metric descriptor indices and descriptor table, following the
// Describe/Poll(observe)/Collect split used elsewhere for policy metrics.
const (
	teamCountDesc = iota
	totalThroughputDesc
	teamSizeDesc
	teamThroughputDesc
	ceilingIterationsDesc
	storageTierIterationsDesc
)

var descriptors = []*prometheus.Desc{
	teamCountDesc: prometheus.NewDesc(
		"league_teams", "Number of teams in the most recently planned league.", nil, nil),
	totalThroughputDesc: prometheus.NewDesc(
		"league_total_throughput", "Total throughput of the most recently planned league.", nil, nil),
	teamSizeDesc: prometheus.NewDesc(
		"league_team_size", "Host count of a team in the most recently planned league.",
		[]string{"team"}, nil),
	teamThroughputDesc: prometheus.NewDesc(
		"league_team_throughput", "Total throughput of a team in the most recently planned league.",
		[]string{"team"}, nil),
	ceilingIterationsDesc: prometheus.NewDesc(
		"league_ceiling_iterations", "Ceiling search iterations explored by the most recent Plan call.", nil, nil),
	storageTierIterationsDesc: prometheus.NewDesc(
		"league_storage_tier_iterations", "Storage-tier search iterations explored by the most recent Plan call.", nil, nil),
}

// teamSample is a minimal, GC-friendly snapshot of one accepted team: just
// enough to report gauges for, without holding on to the Host slice itself.
type teamSample struct {
	size       int
	throughput float64
}

// Collector exposes the outcome of the most recent Plan call as Prometheus
// gauges. It is safe for concurrent Observe/Collect calls.
type Collector struct {
	mu                    sync.Mutex
	teams                 []teamSample
	totalThroughput       float64
	ceilingIterations     int
	storageTierIterations int
}

// DefaultCollector is the collector Plan callers should feed via Observe and
// the one registered with pkg/metrics by this package's init.
var DefaultCollector = &Collector{}

// Observe records the outcome of a planning call, including the search
// effort behind it, for later collection.
func (c *Collector) Observe(lg *League, stats *searchStats) {
	if lg == nil {
		return
	}

	teams := lg.Teams()
	samples := make([]teamSample, len(teams))
	for i, t := range teams {
		samples[i] = teamSample{size: t.Size(), throughput: t.TotalThroughput()}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.teams = samples
	c.totalThroughput = lg.TotalThroughput()
	if stats != nil {
		c.ceilingIterations = stats.ceilingIterations
		c.storageTierIterations = stats.storageTierIterations
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	for _, d := range descriptors {
		ch <- d
	}
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.mu.Lock()
	teams := make([]teamSample, len(c.teams))
	copy(teams, c.teams)
	total := c.totalThroughput
	ceilingIterations := c.ceilingIterations
	storageTierIterations := c.storageTierIterations
	c.mu.Unlock()

	ch <- prometheus.MustNewConstMetric(descriptors[teamCountDesc], prometheus.GaugeValue, float64(len(teams)))
	ch <- prometheus.MustNewConstMetric(descriptors[totalThroughputDesc], prometheus.GaugeValue, total)
	ch <- prometheus.MustNewConstMetric(descriptors[ceilingIterationsDesc], prometheus.GaugeValue, float64(ceilingIterations))
	ch <- prometheus.MustNewConstMetric(descriptors[storageTierIterationsDesc], prometheus.GaugeValue, float64(storageTierIterations))

	for i, t := range teams {
		label := strconv.Itoa(i)
		ch <- prometheus.MustNewConstMetric(descriptors[teamSizeDesc], prometheus.GaugeValue, float64(t.size), label)
		ch <- prometheus.MustNewConstMetric(descriptors[teamThroughputDesc], prometheus.GaugeValue, t.throughput, label)
	}
}

func init() {
	metrics.RegisterCollector("league", func() (prometheus.Collector, error) {
		return DefaultCollector, nil
	})
}
