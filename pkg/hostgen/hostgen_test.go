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

package hostgen_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pcm-project/pcm-resmgr/pkg/hostgen"
	"github.com/pcm-project/pcm-resmgr/pkg/league"
)

func TestGenerateFixtureIsExact(t *testing.T) {
	hosts := hostgen.GenerateFixture()
	require.Len(t, hosts, 23)

	want := []float64{1.0, 0.9, 0.6}
	for i := 0; i < 20; i++ {
		want = append(want, 0.2)
	}

	for i, h := range hosts {
		require.Equal(t, i+1, h.ID)
		require.InDelta(t, want[i], h.Throughput, 1e-12)
		require.Equal(t, 10.0, h.OuterStorage)
		require.Equal(t, 10.0, h.InnerStorage)
	}
}

func TestGenerateFixtureIsDeterministic(t *testing.T) {
	require.Equal(t, hostgen.GenerateFixture(), hostgen.GenerateFixture())
}

func TestGenerateSyntheticIsDeterministicUnderFixedSeed(t *testing.T) {
	cfg := hostgen.DefaultSyntheticConfig()

	a := hostgen.GenerateSynthetic(cfg, rand.New(rand.NewSource(42)))
	b := hostgen.GenerateSynthetic(cfg, rand.New(rand.NewSource(42)))

	require.Equal(t, a, b)
}

func TestGenerateSyntheticAssignsUniqueMonotonicIDs(t *testing.T) {
	cfg := hostgen.DefaultSyntheticConfig()
	hosts := hostgen.GenerateSynthetic(cfg, rand.New(rand.NewSource(7)))

	require.Len(t, hosts, cfg.CPU.Count+cfg.GPU.Count+cfg.NPU.Count)
	for i, h := range hosts {
		require.Equal(t, i+1, h.ID)
	}
}

func TestGenerateSyntheticRespectsTierSelection(t *testing.T) {
	cfg := hostgen.DefaultSyntheticConfig()
	cfg.EnableGPU = false
	cfg.EnableNPU = false

	hosts := hostgen.GenerateSynthetic(cfg, rand.New(rand.NewSource(1)))
	require.Len(t, hosts, cfg.CPU.Count)
}

func TestGenerateSyntheticTruncatesOutliers(t *testing.T) {
	cfg := hostgen.SyntheticConfig{
		CPU:          hostgen.Tier{Mean: 0, StdDev: 1, Count: 2000},
		EnableCPU:    true,
		OuterStorage: 10,
		InnerStorage: 10,
	}
	hosts := hostgen.GenerateSynthetic(cfg, rand.New(rand.NewSource(3)))
	for _, h := range hosts {
		require.True(t, h.Throughput > -4 && h.Throughput < 4)
	}
}

func TestRegistrySourcesAreDiscoverable(t *testing.T) {
	list := hostgen.List()
	require.Contains(t, list, "fixture: the deterministic 23-host reference pool")

	create, ok := hostgen.Get("fixture")
	require.True(t, ok)
	require.Len(t, create(nil), 23)

	_, ok = hostgen.Get("does-not-exist")
	require.False(t, ok)
}

func TestRegisterRejectsDuplicateNames(t *testing.T) {
	err := hostgen.Register("fixture", "duplicate", func(*rand.Rand) []league.Host { return nil })
	require.Error(t, err)
}
