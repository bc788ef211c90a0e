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

import (
	"github.com/hashicorp/go-multierror"
)

// JobParams is the immutable planning configuration for one call to Plan.
type JobParams struct {
	// MaxHostsPerTeam caps the number of hosts any one team may hold.
	MaxHostsPerTeam int
	// MaxTeams caps the number of teams a league may hold.
	MaxTeams int
	// MaxVarHosts is the maximum tolerated max/min throughput ratio within a team.
	MaxVarHosts float64
	// MaxVarTeams is the maximum tolerated ratio between a team's total and
	// the league's reference throughput.
	MaxVarTeams float64
	// SizeOuter is the total outer-data size divided among teams.
	SizeOuter float64
	// SizeInner is the total inner-data size divided among a team's hosts.
	SizeInner float64
	// Aggressive suppresses the cross-team upper-bound check while extending
	// a team, favoring this job's throughput over later jobs' headroom.
	Aggressive bool
}

// Validate reports every structural problem with p, aggregated with
// go-multierror so a caller sees all of them at once instead of just the
// first.
func (p JobParams) Validate() error {
	var errs *multierror.Error

	if p.MaxHostsPerTeam <= 0 {
		errs = multierror.Append(errs, paramError("max_hosts_per_team must be positive, got %d", p.MaxHostsPerTeam))
	}
	if p.MaxTeams <= 0 {
		errs = multierror.Append(errs, paramError("max_teams must be positive, got %d", p.MaxTeams))
	}
	if p.MaxVarHosts < 1 {
		errs = multierror.Append(errs, paramError("max_var_hosts must be >= 1, got %v", p.MaxVarHosts))
	}
	if p.MaxVarTeams < 1 {
		errs = multierror.Append(errs, paramError("max_var_teams must be >= 1, got %v", p.MaxVarTeams))
	}
	if p.SizeOuter < 0 {
		errs = multierror.Append(errs, paramError("size_outer must be >= 0, got %v", p.SizeOuter))
	}
	if p.SizeInner < 0 {
		errs = multierror.Append(errs, paramError("size_inner must be >= 0, got %v", p.SizeInner))
	}

	return errs.ErrorOrNil()
}
