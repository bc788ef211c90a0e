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

func TestTeamAddAggregates(t *testing.T) {
	tm := league.NewTeam()
	tm.Add(league.NewHost(1, 1.0, 10, 10))
	tm.Add(league.NewHost(2, 2.0, 10, 10))

	require.Equal(t, 2, tm.Size())
	require.Equal(t, 3.0, tm.TotalThroughput())
	require.Equal(t, 2.0, tm.MaxThroughput())
	require.Equal(t, 1.5, tm.MeanThroughput())
	require.Equal(t, 1.0, tm.MinThroughput())
}

func TestTeamRemoveLastIf(t *testing.T) {
	tm := league.NewTeam()
	h1 := league.NewHost(1, 1.0, 10, 10)
	h2 := league.NewHost(2, 2.0, 10, 10)
	tm.Add(h1)
	tm.Add(h2)

	// not the last member: no-op
	tm.RemoveLastIf(h1)
	require.Equal(t, 2, tm.Size())

	// the last member: popped
	tm.RemoveLastIf(h2)
	require.Equal(t, 1, tm.Size())
	require.Equal(t, 1.0, tm.TotalThroughput())
	require.Equal(t, 1.0, tm.MaxThroughput())
}

func TestTeamRemoveFirst(t *testing.T) {
	tm := league.NewTeam()
	tm.Add(league.NewHost(1, 1.0, 10, 10))
	tm.Add(league.NewHost(2, 2.0, 10, 10))

	require.NoError(t, tm.RemoveFirst())
	require.Equal(t, 1, tm.Size())
	require.Equal(t, 2.0, tm.TotalThroughput())
}

func TestTeamRemoveFirstEmpty(t *testing.T) {
	tm := league.NewTeam()
	require.ErrorIs(t, tm.RemoveFirst(), league.ErrEmptyTeam)
}

func TestTeamPruneInnerIdempotent(t *testing.T) {
	tm := league.NewTeam()
	tm.Add(league.NewHost(1, 1.0, 10, 0.4))
	tm.Add(league.NewHost(2, 1.0, 10, 10))
	tm.Add(league.NewHost(3, 1.0, 10, 10))

	// needed = sizeInner/size = 3/3 = 1.0: host 1 (inner=0.4) evicted.
	removed := tm.PruneInner(3)
	require.True(t, removed)
	require.Equal(t, 2, tm.Size())

	// needed is now 3/2 = 1.5, still satisfied by the remaining two hosts
	// (inner=10 each): a second pass is a fixed point.
	removed = tm.PruneInner(3)
	require.False(t, removed)
	require.Equal(t, 2, tm.Size())
}

func TestTeamPruneInnerEmpty(t *testing.T) {
	tm := league.NewTeam()
	require.False(t, tm.PruneInner(100))
}

func TestTeamClearResetsAggregates(t *testing.T) {
	tm := league.NewTeam()
	tm.Add(league.NewHost(1, 1.0, 10, 10))
	tm.Clear()

	require.Equal(t, 0, tm.Size())
	require.Equal(t, 0.0, tm.TotalThroughput())
	require.Equal(t, 0.0, tm.MaxThroughput())
	require.True(t, tm.Empty())
}

func TestTeamCloneIsIndependent(t *testing.T) {
	tm := league.NewTeam()
	tm.Add(league.NewHost(1, 1.0, 10, 10))

	clone := tm.Clone()
	tm.Add(league.NewHost(2, 2.0, 10, 10))

	require.Equal(t, 1, clone.Size(), "clone must not see later mutations of the original")
	require.Equal(t, 2, tm.Size())
}
