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
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pcm-project/pcm-resmgr/pkg/league"
)

// fixturePool is the 23-host reference pool: three distinguished high
// throughput hosts plus twenty identical low throughput hosts, each with
// outer/inner storage of 10.
func fixturePool() []league.Host {
	hosts := []league.Host{
		league.NewHost(1, 1.0, 10, 10),
		league.NewHost(2, 0.9, 10, 10),
		league.NewHost(3, 0.6, 10, 10),
	}
	for i := 0; i < 20; i++ {
		hosts = append(hosts, league.NewHost(4+i, 0.2, 10, 10))
	}
	return hosts
}

func fixtureParams() league.JobParams {
	return league.JobParams{
		MaxHostsPerTeam: 20,
		MaxTeams:        4,
		MaxVarHosts:     1.5,
		MaxVarTeams:     1.4,
		SizeOuter:       10,
		SizeInner:       10,
		Aggressive:      false,
	}
}

func totalHostThroughput(hosts []league.Host) float64 {
	var sum float64
	for _, h := range hosts {
		sum += h.Throughput
	}
	return sum
}

func TestPlanEmptyHostsYieldsEmptyLeague(t *testing.T) {
	lg, err := league.Plan(nil, fixtureParams(), nil)
	require.NoError(t, err)
	require.True(t, lg.Empty())
}

func TestPlanNilTracerIsSafe(t *testing.T) {
	_, err := league.Plan(fixturePool(), fixtureParams(), nil)
	require.NoError(t, err)
}

func TestPlanTeamsRespectStructuralBounds(t *testing.T) {
	pool := fixturePool()
	params := fixtureParams()

	lg, err := league.Plan(pool, params, nil)
	require.NoError(t, err)

	require.LessOrEqual(t, lg.Size(), params.MaxTeams)
	for _, tm := range lg.Teams() {
		require.LessOrEqual(t, tm.Size(), params.MaxHostsPerTeam)
		require.False(t, tm.Empty())
	}
}

func TestPlanNeverAssignsAHostTwice(t *testing.T) {
	lg, err := league.Plan(fixturePool(), fixtureParams(), nil)
	require.NoError(t, err)

	seen := map[int]bool{}
	for _, tm := range lg.Teams() {
		for _, h := range tm.Members() {
			require.False(t, seen[h.ID], "host %d assigned to more than one team", h.ID)
			seen[h.ID] = true
		}
	}
}

func TestPlanTotalThroughputNeverExceedsPool(t *testing.T) {
	pool := fixturePool()
	lg, err := league.Plan(pool, fixtureParams(), nil)
	require.NoError(t, err)
	require.LessOrEqual(t, lg.TotalThroughput(), totalHostThroughput(pool))
}

func TestPlanIsDeterministicUnderInputPermutation(t *testing.T) {
	pool := fixturePool()
	params := fixtureParams()

	base, err := league.Plan(pool, params, nil)
	require.NoError(t, err)

	shuffled := append([]league.Host(nil), pool...)
	rnd := rand.New(rand.NewSource(1))
	rnd.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	again, err := league.Plan(shuffled, params, nil)
	require.NoError(t, err)

	require.Equal(t, base.Size(), again.Size())
	require.InDelta(t, base.TotalThroughput(), again.TotalThroughput(), 1e-9)
}

func TestPlanRepeatedCallsAgree(t *testing.T) {
	pool := fixturePool()
	params := fixtureParams()

	first, err := league.Plan(pool, params, nil)
	require.NoError(t, err)
	second, err := league.Plan(pool, params, nil)
	require.NoError(t, err)

	require.Equal(t, first.Size(), second.Size())
	require.InDelta(t, first.TotalThroughput(), second.TotalThroughput(), 1e-9)
}

func TestPlanSingleHostBelowOuterFloorYieldsEmptyLeague(t *testing.T) {
	params := fixtureParams()
	hosts := []league.Host{league.NewHost(1, 1.0, 1, 10)}

	lg, err := league.Plan(hosts, params, nil)
	require.NoError(t, err)
	require.True(t, lg.Empty(), "a host below every candidate outer-storage floor cannot form a team")
}

func TestPlanHomogeneousPoolFormsASingleTeam(t *testing.T) {
	params := fixtureParams()
	hosts := make([]league.Host, 0, 5)
	for i := 0; i < 5; i++ {
		hosts = append(hosts, league.NewHost(i+1, 1.0, 10, 10))
	}

	lg, err := league.Plan(hosts, params, nil)
	require.NoError(t, err)
	require.Equal(t, 1, lg.Size())
	require.Equal(t, 5, lg.Teams()[0].Size())
}

type recordingTracer struct {
	events []string
}

func (r *recordingTracer) Event(label string, args ...interface{}) {
	r.events = append(r.events, label)
}

func TestPlanWithTracerRecordsEvents(t *testing.T) {
	tr := &recordingTracer{}
	_, err := league.Plan(fixturePool(), fixtureParams(), tr)
	require.NoError(t, err)
	require.NotEmpty(t, tr.events)
}

// requireHomogeneity checks property 3 for every team in lg.
func requireHomogeneity(t *testing.T, lg *league.League, maxVarHosts float64) {
	t.Helper()
	for i, tm := range lg.Teams() {
		if tm.MinThroughput() == 0 {
			continue
		}
		ratio := tm.MaxThroughput() / tm.MinThroughput()
		require.LessOrEqualf(t, ratio, maxVarHosts,
			"team %d homogeneity ratio %v exceeds max_var_hosts %v", i, ratio, maxVarHosts)
	}
}

// requireTeamToLeagueRatio checks property 4, and property 5 when
// enforceUpper is true.
func requireTeamToLeagueRatio(t *testing.T, lg *league.League, maxVarTeams float64, enforceUpper bool) {
	t.Helper()
	reference, ok := lg.ReferenceThroughput()
	if !ok {
		return
	}
	for i, tm := range lg.Teams() {
		if i == 0 {
			continue
		}
		require.GreaterOrEqualf(t, tm.TotalThroughput(), reference/maxVarTeams,
			"team %d total throughput %v below reference/max_var_teams", i, tm.TotalThroughput())
		if enforceUpper {
			require.LessOrEqualf(t, tm.TotalThroughput(), reference*maxVarTeams,
				"team %d total throughput %v exceeds reference*max_var_teams", i, tm.TotalThroughput())
		}
	}
}

// requireStorageFloors checks property 6: every host's outer storage must
// meet the league-wide floor and its inner storage the team-wide floor.
func requireStorageFloors(t *testing.T, lg *league.League, sizeOuter, sizeInner float64) {
	t.Helper()
	teamCount := float64(lg.Size())
	for _, tm := range lg.Teams() {
		teamSize := float64(tm.Size())
		for _, h := range tm.Members() {
			require.GreaterOrEqualf(t, h.OuterStorage, sizeOuter/teamCount,
				"host %d outer storage %v below floor", h.ID, h.OuterStorage)
			require.GreaterOrEqualf(t, h.InnerStorage, sizeInner/teamSize,
				"host %d inner storage %v below floor", h.ID, h.InnerStorage)
		}
	}
}

// TestPlanS3FullPlanFormsANonEmptyLeague is spec scenario S3: a full Plan
// call over the fixture pool forms at least one team.
func TestPlanS3FullPlanFormsANonEmptyLeague(t *testing.T) {
	lg, err := league.Plan(fixturePool(), fixtureParams(), nil)
	require.NoError(t, err)
	require.GreaterOrEqual(t, lg.Size(), 1)

	requireHomogeneity(t, lg, fixtureParams().MaxVarHosts)
	requireTeamToLeagueRatio(t, lg, fixtureParams().MaxVarTeams, true)
	requireStorageFloors(t, lg, fixtureParams().SizeOuter, fixtureParams().SizeInner)
}

// TestPlanS4ImpossibleInnerBudgetPrunesSmallTeams is spec scenario S4: with
// size_inner raised to 100, any team with fewer than 10 members needs more
// inner storage per host than the fixture pool provides and gets pruned;
// whatever league comes out, every surviving host must still clear its
// team's inner-storage floor.
func TestPlanS4ImpossibleInnerBudgetPrunesSmallTeams(t *testing.T) {
	params := fixtureParams()
	params.SizeInner = 100

	lg, err := league.Plan(fixturePool(), params, nil)
	require.NoError(t, err)

	requireStorageFloors(t, lg, params.SizeOuter, params.SizeInner)
}

// TestPlanS5ForcedEvictionDoesNotHang is spec scenario S5: dropping host
// #1's inner storage to 0.5 can force prune_inner to evict it from any team
// that forms around it; the planner must still terminate and return a
// valid league rather than loop indefinitely re-admitting and re-pruning it.
func TestPlanS5ForcedEvictionDoesNotHang(t *testing.T) {
	pool := fixturePool()
	pool[0].InnerStorage = 0.5
	params := fixtureParams()

	done := make(chan struct{})
	var lg *league.League
	var err error
	go func() {
		lg, err = league.Plan(pool, params, nil)
		close(done)
	}()

	select {
	case <-done:
		require.NoError(t, err)
		requireStorageFloors(t, lg, params.SizeOuter, params.SizeInner)
	case <-time.After(5 * time.Second):
		t.Fatal("Plan did not return: forced eviction of host #1 appears to loop indefinitely")
	}
}

// TestPlanS6AggressiveRelaxesTheUpperBoundButNotTheLowerOne is spec scenario
// S6: with aggressive=true, property 5 (the per-team upper bound) need not
// hold, property 4 (the lower bound) still must, and total throughput must
// be at least as good as the aggressive=false run.
func TestPlanS6AggressiveRelaxesTheUpperBoundButNotTheLowerOne(t *testing.T) {
	base, err := league.Plan(fixturePool(), fixtureParams(), nil)
	require.NoError(t, err)

	aggressiveParams := fixtureParams()
	aggressiveParams.Aggressive = true

	lg, err := league.Plan(fixturePool(), aggressiveParams, nil)
	require.NoError(t, err)

	requireTeamToLeagueRatio(t, lg, aggressiveParams.MaxVarTeams, false)
	require.GreaterOrEqual(t, lg.TotalThroughput(), base.TotalThroughput())
}
