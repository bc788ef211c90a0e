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

import "fmt"

// Host is an immutable descriptor of a compute resource: a throughput rate
// and two storage capacities, plus a stable identity used only for
// tie-breaking and diagnostics. The planner addresses hosts by reference; it
// never mutates or copies the values a Host points at.
type Host struct {
	// Throughput is the host's compute rate, in opaque but consistent units.
	Throughput float64
	// OuterStorage is the host's capacity for an outer-data shard.
	OuterStorage float64
	// InnerStorage is the host's capacity for an inner-data shard.
	InnerStorage float64
	// ID uniquely identifies the host within a planning run.
	ID int
}

// NewHost constructs a Host descriptor.
func NewHost(id int, throughput, outerStorage, innerStorage float64) Host {
	return Host{
		Throughput:   throughput,
		OuterStorage: outerStorage,
		InnerStorage: innerStorage,
		ID:           id,
	}
}

// String returns a short human-readable identification of the host.
func (h Host) String() string {
	return fmt.Sprintf("host#%d(throughput=%.4g, outer=%.4g, inner=%.4g)",
		h.ID, h.Throughput, h.OuterStorage, h.InnerStorage)
}

// GoString returns a Go-syntax representation of the host, for %#v and
// debugger/panic output.
func (h Host) GoString() string {
	return fmt.Sprintf("league.Host{ID:%d, Throughput:%v, OuterStorage:%v, InnerStorage:%v}",
		h.ID, h.Throughput, h.OuterStorage, h.InnerStorage)
}
