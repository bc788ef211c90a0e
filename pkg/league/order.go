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

import "sort"

// SortHosts returns a new slice containing hosts ordered by descending
// throughput, ties broken by ascending ID. This is the only ordering the
// planner ever imposes on a host pool; the input slice is left untouched.
func SortHosts(hosts []Host) []Host {
	sorted := make([]Host, len(hosts))
	copy(sorted, hosts)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Throughput != sorted[j].Throughput {
			return sorted[i].Throughput > sorted[j].Throughput
		}
		return sorted[i].ID < sorted[j].ID
	})
	return sorted
}
