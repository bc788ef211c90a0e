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

func TestLeagueAddSetsReferenceOnlyOnce(t *testing.T) {
	lg := league.NewLeague()

	t1 := league.NewTeam()
	t1.Add(league.NewHost(1, 2.0, 10, 10))
	lg.Add(t1)

	ref, ok := lg.ReferenceThroughput()
	require.True(t, ok)
	require.Equal(t, 2.0, ref)

	t2 := league.NewTeam()
	t2.Add(league.NewHost(2, 5.0, 10, 10))
	lg.Add(t2)

	ref, ok = lg.ReferenceThroughput()
	require.True(t, ok)
	require.Equal(t, 2.0, ref, "reference throughput must not change after the first team")
	require.Equal(t, 7.0, lg.TotalThroughput())
	require.Equal(t, 2, lg.Size())
}

func TestLeagueAddDeepCopies(t *testing.T) {
	lg := league.NewLeague()

	tm := league.NewTeam()
	tm.Add(league.NewHost(1, 1.0, 10, 10))
	lg.Add(tm)

	tm.Add(league.NewHost(2, 9.0, 10, 10))

	accepted := lg.Teams()[0]
	require.Equal(t, 1, accepted.Size(), "mutating the candidate after admission must not alias the league's copy")
	require.Equal(t, 1.0, accepted.TotalThroughput())
}

func TestLeagueClear(t *testing.T) {
	lg := league.NewLeague()
	tm := league.NewTeam()
	tm.Add(league.NewHost(1, 1.0, 10, 10))
	lg.Add(tm)

	lg.Clear()

	require.True(t, lg.Empty())
	_, ok := lg.ReferenceThroughput()
	require.False(t, ok)
}
