// Copyright 2019-2020 Intel Corporation. All Rights Reserved.
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

package instrumentation

import (
	"sync"

	pclient "github.com/prometheus/client_golang/prometheus"
	model "github.com/prometheus/client_model/go"
)

// gatherers is a trivial wrapper around prometheus Gatherers, letting
// callers register additional Gatherers after exporter startup.
type gatherers struct {
	sync.RWMutex
	gatherers pclient.Gatherers
}

// dynamicGatherers collects Gatherers registered via RegisterGatherer, on
// top of the ones pkg/metrics already aggregates from its collector
// registry (league.DefaultCollector among them).
var dynamicGatherers = &gatherers{gatherers: pclient.Gatherers{}}

// Register registers a new gatherer.
func (g *gatherers) Register(gatherer pclient.Gatherer) {
	g.Lock()
	defer g.Unlock()
	g.gatherers = append(g.gatherers, gatherer)
}

// Gather implements the pclient.Gatherer interface.
func (g *gatherers) Gather() ([]*model.MetricFamily, error) {
	g.RLock()
	defer g.RUnlock()
	return g.gatherers.Gather()
}

// RegisterGatherer registers an externally built Prometheus Gatherer to be
// merged into the /metrics endpoint's output alongside the built-in
// collectors pkg/metrics already knows about.
func RegisterGatherer(g pclient.Gatherer) {
	dynamicGatherers.Register(g)
}
