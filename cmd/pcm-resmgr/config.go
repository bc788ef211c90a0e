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

package main

import (
	"flag"
	"fmt"

	"github.com/pkg/errors"

	"github.com/pcm-project/pcm-resmgr/pkg/config"
	"github.com/pcm-project/pcm-resmgr/pkg/hostgen"
	"github.com/pcm-project/pcm-resmgr/pkg/league"
)

// Config is the planner's job configuration: the knobs of a JobParams plus
// the selection of which host source to draw the input pool from. Unlike
// the logger's and instrumentation's options, this is a one-shot CLI with
// no daemon to reconfigure later, so a single struct instance doubles as
// both the defaults and the runtime value.
type Config struct {
	// HostSource names a source registered in pkg/hostgen (see -list-host-sources).
	HostSource string
	// Seed seeds the random source passed to the host source.
	Seed int64

	MaxHostsPerTeam int
	MaxTeams        int
	MaxVarHosts     float64
	MaxVarTeams     float64
	SizeOuter       float64
	SizeInner       float64
	Aggressive      bool
}

// params converts the configuration into the league.JobParams the planner expects.
func (c *Config) params() league.JobParams {
	return league.JobParams{
		MaxHostsPerTeam: c.MaxHostsPerTeam,
		MaxTeams:        c.MaxTeams,
		MaxVarHosts:     c.MaxVarHosts,
		MaxVarTeams:     c.MaxVarTeams,
		SizeOuter:       c.SizeOuter,
		SizeInner:       c.SizeInner,
		Aggressive:      c.Aggressive,
	}
}

// defaultConfig returns a new Config instance initialized to defaults.
func defaultConfig() interface{} {
	return &Config{
		HostSource:      "fixture",
		Seed:            1,
		MaxHostsPerTeam: 20,
		MaxTeams:        8,
		MaxVarHosts:     1.5,
		MaxVarTeams:     1.4,
		SizeOuter:       10,
		SizeInner:       10,
		Aggressive:      false,
	}
}

// Our runtime configuration.
var cfg = defaultConfig().(*Config)

const configHelp = `
Job parameters for team formation.

HostSource selects which pkg/hostgen source the input host pool is drawn
from (run with -list-host-sources to see what's registered). The rest of
the fields mirror league.JobParams: MaxHostsPerTeam and MaxTeams bound the
shape of the resulting league, MaxVarHosts and MaxVarTeams bound how much
throughput may vary within a team and across teams, and SizeOuter/SizeInner
are the outer- and inner-data sizes the teams and their hosts must fit.

These can be set individually from the command line (--max-teams, ...), or
together as JSON via --planner.planner. The command reads no configuration
file.
`

// configNotify validates the configuration whenever it changes.
func configNotify(event config.Event, source config.Source) error {
	if err := cfg.params().Validate(); err != nil {
		return errors.Wrap(err, "invalid planner configuration")
	}
	if _, ok := hostgen.Get(cfg.HostSource); !ok {
		return errors.Wrapf(fmt.Errorf("unknown host source %q", cfg.HostSource),
			"invalid planner configuration (see -list-host-sources)")
	}
	return nil
}

// Register us for command line parsing and configuration handling.
func init() {
	flag.StringVar(&cfg.HostSource, "host-source", cfg.HostSource,
		"host pool source to draw from (see -list-host-sources)")
	flag.Int64Var(&cfg.Seed, "seed", cfg.Seed,
		"random seed for synthetic host generation")
	flag.IntVar(&cfg.MaxHostsPerTeam, "max-hosts-per-team", cfg.MaxHostsPerTeam,
		"maximum hosts a single team may hold")
	flag.IntVar(&cfg.MaxTeams, "max-teams", cfg.MaxTeams,
		"maximum teams a league may hold")
	flag.Float64Var(&cfg.MaxVarHosts, "max-var-hosts", cfg.MaxVarHosts,
		"maximum tolerated max/min throughput ratio within a team")
	flag.Float64Var(&cfg.MaxVarTeams, "max-var-teams", cfg.MaxVarTeams,
		"maximum tolerated ratio between a team's total and the league's reference throughput")
	flag.Float64Var(&cfg.SizeOuter, "size-outer", cfg.SizeOuter,
		"total outer-data size divided among teams")
	flag.Float64Var(&cfg.SizeInner, "size-inner", cfg.SizeInner,
		"total inner-data size divided among a team's hosts")
	flag.BoolVar(&cfg.Aggressive, "aggressive", cfg.Aggressive,
		"suppress the cross-team upper-bound check while extending a team")

	config.Register("planner", configHelp, cfg, defaultConfig, config.WithUnsetVarsKept(), config.WithNotify(configNotify))
}
