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

	"github.com/pcm-project/pcm-resmgr/pkg/league"
	"github.com/pcm-project/pcm-resmgr/pkg/testutils"
)

func validParams() league.JobParams {
	return league.JobParams{
		MaxHostsPerTeam: 20,
		MaxTeams:        4,
		MaxVarHosts:     1.5,
		MaxVarTeams:     1.4,
		SizeOuter:       10,
		SizeInner:       10,
	}
}

func TestJobParamsValidateOK(t *testing.T) {
	testutils.VerifyError(t, validParams().Validate(), 0, nil)
}

func TestJobParamsValidateAggregatesAllErrors(t *testing.T) {
	p := league.JobParams{
		MaxHostsPerTeam: 0,
		MaxTeams:        -1,
		MaxVarHosts:     0.5,
		MaxVarTeams:     0.9,
		SizeOuter:       -1,
		SizeInner:       -1,
	}
	testutils.VerifyError(t, p.Validate(), 6, []string{
		"max_hosts_per_team",
		"max_teams",
		"max_var_hosts",
		"max_var_teams",
		"size_outer",
		"size_inner",
	})
}
