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

package hostgen

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/pcm-project/pcm-resmgr/pkg/league"
)

// CreateFn produces a host pool given a seeded random source. Fixture
// sources ignore rng entirely; synthetic sources consume it.
type CreateFn func(rng *rand.Rand) []league.Host

type source struct {
	name        string
	description string
	create      CreateFn
}

var sources = map[string]*source{}

func sourceError(format string, args ...interface{}) error {
	return fmt.Errorf("hostgen: "+format, args...)
}

// Register registers a named host source for discovery via Get/List.
// Registering the same name twice is a programmer error.
func Register(name, description string, create CreateFn) error {
	if o, ok := sources[name]; ok {
		return sourceError("source %q already registered (%s)", name, o.description)
	}
	sources[name] = &source{name: name, description: description, create: create}
	return nil
}

// Get returns the named source's generator function, or false if no such
// source is registered.
func Get(name string) (CreateFn, bool) {
	s, ok := sources[name]
	if !ok {
		return nil, false
	}
	return s.create, true
}

// List returns "name: description" lines for every registered source, in
// sorted order, for commands like -list-host-sources.
func List() []string {
	names := make([]string, 0, len(sources))
	for name := range sources {
		names = append(names, name)
	}
	sort.Strings(names)

	lines := make([]string, 0, len(names))
	for _, name := range names {
		lines = append(lines, fmt.Sprintf("%s: %s", name, sources[name].description))
	}
	return lines
}

func init() {
	Register("fixture", "the deterministic 23-host reference pool", func(*rand.Rand) []league.Host {
		return GenerateFixture()
	})
	Register("synthetic", "truncated-normal CPU/GPU/NPU tiers with default parameters", func(rng *rand.Rand) []league.Host {
		return GenerateSynthetic(DefaultSyntheticConfig(), rng)
	})
}
