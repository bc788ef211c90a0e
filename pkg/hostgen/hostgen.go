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

// Package hostgen builds the host pools the planner runs against: either a
// synthetic pool sampled from per-tier throughput distributions, or the
// fixed 23-host fixture pool used for repeatable tests and demos.
package hostgen

import (
	"math/rand"

	"github.com/pcm-project/pcm-resmgr/pkg/league"
)

// Tier describes one class of synthetic host (CPU, GPU, NPU, ...): Count
// hosts are drawn from a normal distribution with the given mean and
// standard deviation, truncated to +/-4 standard deviations.
type Tier struct {
	Mean   float64
	StdDev float64
	Count  int
}

// SyntheticConfig selects which tiers to draw and how many hosts to draw
// from each, plus the storage capacity shared by every generated host.
type SyntheticConfig struct {
	CPU Tier
	GPU Tier
	NPU Tier

	EnableCPU bool
	EnableGPU bool
	EnableNPU bool

	OuterStorage float64
	InnerStorage float64
}

// DefaultSyntheticConfig returns the tier parameters of the original
// generator: CPU ~N(1e10, 1e9) x100, GPU ~N(1e11, 1e10) x50, NPU ~N(1e12,
// 1e11) x20, all three tiers enabled, storage 10/10.
func DefaultSyntheticConfig() SyntheticConfig {
	return SyntheticConfig{
		CPU:          Tier{Mean: 1e10, StdDev: 1e9, Count: 100},
		GPU:          Tier{Mean: 1e11, StdDev: 1e10, Count: 50},
		NPU:          Tier{Mean: 1e12, StdDev: 1e11, Count: 20},
		EnableCPU:    true,
		EnableGPU:    true,
		EnableNPU:    true,
		OuterStorage: 10,
		InnerStorage: 10,
	}
}

// GenerateSynthetic draws a host pool from cfg using rng as the source of
// randomness. Identities are assigned monotonically starting at 1 and are
// shared across tiers, so a pool with all three tiers enabled has unique
// ids 1..170. rng must be supplied by the caller (never the global source)
// so a fixed seed reproduces the exact same pool.
func GenerateSynthetic(cfg SyntheticConfig, rng *rand.Rand) []league.Host {
	var hosts []league.Host
	id := 1

	draw := func(tier Tier) {
		for i := 0; i < tier.Count; i++ {
			throughput := tier.Mean + truncatedNormal(rng)*tier.StdDev
			hosts = append(hosts, league.NewHost(id, throughput, cfg.OuterStorage, cfg.InnerStorage))
			id++
		}
	}

	if cfg.EnableCPU {
		draw(cfg.CPU)
	}
	if cfg.EnableGPU {
		draw(cfg.GPU)
	}
	if cfg.EnableNPU {
		draw(cfg.NPU)
	}

	return hosts
}

// truncatedNormal draws a standard normal sample, resampling any draw whose
// magnitude exceeds 4 standard deviations.
func truncatedNormal(rng *rand.Rand) float64 {
	for {
		z := rng.NormFloat64()
		if z > -4 && z < 4 {
			return z
		}
	}
}

// GenerateFixture returns the deterministic 23-host pool {1.0, 0.9, 0.6} U
// 0.2x20, storages (10, 10), ids 1..23.
func GenerateFixture() []league.Host {
	hosts := make([]league.Host, 0, 23)
	id := 1

	add := func(throughput float64) {
		hosts = append(hosts, league.NewHost(id, throughput, 10, 10))
		id++
	}

	add(1.0)
	add(0.9)
	add(0.6)
	for i := 0; i < 20; i++ {
		add(0.2)
	}

	return hosts
}
