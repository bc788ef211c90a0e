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

package league_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pcm-project/pcm-resmgr/pkg/league"
)

func TestSortHostsOrder(t *testing.T) {
	hosts := []league.Host{
		league.NewHost(3, 0.5, 10, 10),
		league.NewHost(1, 1.0, 10, 10),
		league.NewHost(2, 1.0, 10, 10),
		league.NewHost(4, 0.9, 10, 10),
	}

	sorted := league.SortHosts(hosts)

	require.Equal(t, []int{1, 2, 4, 3}, idsOf(sorted), "descending throughput, ties by ascending id")
}

func TestSortHostsIdempotent(t *testing.T) {
	hosts := []league.Host{
		league.NewHost(1, 0.2, 10, 10),
		league.NewHost(2, 0.6, 10, 10),
		league.NewHost(3, 0.9, 10, 10),
	}

	once := league.SortHosts(hosts)
	twice := league.SortHosts(once)

	require.Equal(t, idsOf(once), idsOf(twice))
}

func TestSortHostsDoesNotMutateInput(t *testing.T) {
	hosts := []league.Host{
		league.NewHost(1, 0.2, 10, 10),
		league.NewHost(2, 0.9, 10, 10),
	}
	original := idsOf(hosts)

	league.SortHosts(hosts)

	require.Equal(t, original, idsOf(hosts))
}

func idsOf(hosts []league.Host) []int {
	ids := make([]int, len(hosts))
	for i, h := range hosts {
		ids[i] = h.ID
	}
	return ids
}
