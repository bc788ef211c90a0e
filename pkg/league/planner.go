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

// searchStats counts how many iterations of the ceiling search (4.F) and
// the storage-tier search (4.E) a single Plan call explored, for the
// Prometheus gauges in metrics.go.
type searchStats struct {
	ceilingIterations     int
	storageTierIterations int
}

// Plan is the planner's single entry point: given a snapshot of the host
// pool and a job's structural parameters, it returns the best league the
// three-level nested search can find. An empty pool yields an empty league;
// no other input produces an error except a logic bug surfacing as
// ErrEmptyTeam.
func Plan(hosts []Host, params JobParams, tracer Tracer) (*League, error) {
	stats := &searchStats{}

	if len(hosts) == 0 {
		lg := NewLeague()
		DefaultCollector.Observe(lg, stats)
		return lg, nil
	}

	lg, err := findTeamSetTop(hosts, params, tracer, stats)
	if err != nil {
		return nil, err
	}
	DefaultCollector.Observe(lg, stats)
	return lg, nil
}

// findTeamSetTop is the ceiling search (4.F). It sweeps the maximum
// team-throughput ceiling upward, cumulatively, over the top-ranked hosts,
// and keeps the best league by total throughput.
func findTeamSetTop(hosts []Host, params JobParams, tracer Tracer, stats *searchStats) (*League, error) {
	sorted := SortHosts(hosts)

	best := NewLeague()

	limit := params.MaxHostsPerTeam
	if len(sorted) < limit {
		limit = len(sorted)
	}

	var ceiling float64
	for i := 0; i < limit; i++ {
		stats.ceilingIterations++
		ceiling += sorted[i].Throughput

		candidate, err := findTeamSetTwo(sorted, params, ceiling, tracer, stats)
		if err != nil {
			return nil, err
		}

		if candidate.TotalThroughput() > best.TotalThroughput() {
			best = candidate
		}

		if !candidate.Empty() {
			first := candidate.Teams()[0]
			if first.Size() < i+1 {
				// The ceiling is no longer the binding constraint on the
				// first team; raising it further cannot enlarge any team.
				break
			}
		}
	}

	return best, nil
}

// findTeamSetTwo is the storage-tier search (4.E). It tightens the outer
// storage floor as the team-count target i shrinks from max_teams down to 1,
// returning the first league whose team count reaches i.
func findTeamSetTwo(hosts []Host, params JobParams, ceiling float64, tracer Tracer, stats *searchStats) (*League, error) {
	for i := params.MaxTeams; i >= 1; i-- {
		stats.storageTierIterations++
		outerFloor := params.SizeOuter / float64(i)

		candidate, err := findTeamSet(hosts, params, ceiling, outerFloor, tracer)
		if err != nil {
			return nil, err
		}
		if candidate.Size() >= i {
			return candidate, nil
		}
	}
	return NewLeague(), nil
}

// findTeamSet is the team-formation pass (4.D): a single forward sweep over
// the sorted hosts, maintaining one candidate team and deciding, host by
// host, whether to extend, finalize, or restart it. hosts must already be
// sorted per 4.G; the caller (findTeamSetTwo, via findTeamSetTop) guarantees
// this.
func findTeamSet(hosts []Host, params JobParams, ceiling, outerFloor float64, tracer Tracer) (*League, error) {
	if tracer == nil {
		tracer = noopTracer{}
	}

	lg := NewLeague()
	c := NewTeam()

	for _, h := range hosts {
		if lg.Size() >= params.MaxTeams {
			break
		}
		if h.OuterStorage < outerFloor {
			continue
		}

		var (
			terminate bool
			err       error
		)
		if lg.Empty() {
			err = stepEmptyLeague(lg, c, h, params, ceiling, tracer)
		} else {
			reference, _ := lg.ReferenceThroughput()
			terminate, err = stepWithReference(lg, c, h, params, ceiling, reference, tracer)
		}
		if err != nil {
			return nil, err
		}
		if terminate {
			return lg, nil
		}
	}

	if !c.Empty() && lg.Size() < params.MaxTeams {
		c.PruneInner(params.SizeInner)
		if reference, hasReference := lg.ReferenceThroughput(); !hasReference || c.TotalThroughput() > reference/params.MaxVarTeams {
			lg.Add(c)
		}
	}

	return lg, nil
}

// stepEmptyLeague decides what to do with host h against candidate c when
// the league has no reference throughput yet (4.D, Regime A): only the
// ceiling and the per-team homogeneity bound constrain the first team. It
// loops internally for the "redo" outcome the source expresses as a goto: a
// mutation (pruning) can change which branch applies to the same host.
func stepEmptyLeague(lg *League, c *Team, h Host, params JobParams, ceiling float64, tracer Tracer) error {
	for {
		switch {
		case !c.Empty() && h.Throughput < c.MaxThroughput()/params.MaxVarHosts:
			tracer.Event("add-team-1", h.ID)
			if c.PruneInner(params.SizeInner) {
				continue
			}
			lg.Add(c)
			c.Clear()
			c.Add(h)
			return nil

		case c.TotalThroughput()+h.Throughput > ceiling:
			tracer.Event("add-team-2", h.ID)
			if !c.Empty() {
				if c.PruneInner(params.SizeInner) {
					continue
				}
				lg.Add(c)
			}
			c.Clear()
			c.Add(h)
			return nil

		default:
			c.Add(h)
			if c.Size() == params.MaxHostsPerTeam {
				tracer.Event("add-team-3", h.ID)
				if c.PruneInner(params.SizeInner) {
					c.RemoveLastIf(h)
					continue
				}
				lg.Add(c)
				c.Clear()
				return nil
			}
			return nil
		}
	}
}

// stepWithReference decides what to do with host h against candidate c once
// the league has a reference throughput (4.D, Regime B): both the ceiling
// and the cross-team homogeneity bound constrain every subsequent team. It
// returns terminate=true when the sweep must stop early because c can
// neither grow nor be admitted.
func stepWithReference(lg *League, c *Team, h Host, params JobParams, ceiling, reference float64, tracer Tracer) (bool, error) {
	for {
		x := c.TotalThroughput() + h.Throughput
		overflows := x > ceiling || (!params.Aggressive && x > reference*params.MaxVarTeams)

		switch {
		case overflows:
			tracer.Event("add-team-4", h.ID)
			if c.PruneInner(params.SizeInner) {
				continue
			}
			if c.TotalThroughput() < reference/params.MaxVarTeams {
				if err := c.RemoveFirst(); err != nil {
					return false, err
				}
				continue
			}
			lg.Add(c)
			c.Clear()
			c.Add(h)
			return false, nil

		case h.Throughput < c.MaxThroughput()/params.MaxVarHosts:
			tracer.Event("add-team-5", h.ID)
			if c.PruneInner(params.SizeInner) {
				continue
			}
			if c.Empty() {
				c.Add(h)
				return false, nil
			}
			if c.TotalThroughput() < reference/params.MaxVarTeams {
				if err := c.RemoveFirst(); err != nil {
					return false, err
				}
				continue
			}
			lg.Add(c)
			c.Clear()
			c.Add(h)
			return false, nil

		default:
			c.Add(h)
			if c.PruneInner(params.SizeInner) {
				tracer.Event("add-team-6", h.ID)
				return false, nil
			}
			if c.TotalThroughput() >= reference {
				tracer.Event("add-team-7", h.ID)
				lg.Add(c)
				c.Clear()
				return false, nil
			}
			if c.Size() == params.MaxHostsPerTeam {
				tracer.Event("add-team-8", h.ID)
				if c.TotalThroughput() > reference/params.MaxVarTeams {
					lg.Add(c)
					c.Clear()
					return false, nil
				}
				return true, nil
			}
			return false, nil
		}
	}
}
