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
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"

	"sigs.k8s.io/yaml"

	"github.com/pcm-project/pcm-resmgr/pkg/config"
	"github.com/pcm-project/pcm-resmgr/pkg/hostgen"
	"github.com/pcm-project/pcm-resmgr/pkg/instrumentation"
	"github.com/pcm-project/pcm-resmgr/pkg/league"
	logger "github.com/pcm-project/pcm-resmgr/pkg/log"

	// Pull in the built-in Prometheus collectors (the planner's
	// team/league formation stats among them) by side effect.
	_ "github.com/pcm-project/pcm-resmgr/pkg/metrics/register"
)

var log = logger.NewLogger("pcm-resmgr")

var (
	listHostSources bool
	printConfig     bool
)

func init() {
	flag.BoolVar(&listHostSources, "list-host-sources", false,
		"list registered host pool sources and exit")
	flag.BoolVar(&printConfig, "print-config", false,
		"print the effective planner configuration as YAML and exit")
}

func main() {
	if err := config.ParseCmdline(); err != nil {
		log.Fatal("failed to parse configuration: %v", err)
	}

	if listHostSources {
		for _, line := range hostgen.List() {
			fmt.Println(line)
		}
		return
	}

	// config.Notify silently drops a notifier's error unless ErrorHandling
	// is set, so re-validate explicitly rather than trust ParseCmdline.
	if err := configNotify(config.UpdateEvent, config.CommandLine); err != nil {
		log.Fatal("invalid configuration: %v", err)
	}

	if printConfig {
		data, err := yaml.Marshal(cfg)
		if err != nil {
			log.Fatal("failed to marshal configuration: %v", err)
		}
		os.Stdout.Write(data)
		return
	}

	if err := instrumentation.Start(); err != nil {
		log.Fatal("failed to set up instrumentation: %v", err)
	}
	defer instrumentation.Stop()

	create, _ := hostgen.Get(cfg.HostSource)
	hosts := create(rand.New(rand.NewSource(cfg.Seed)))

	_, span := instrumentation.StartSpan(context.Background(), "plan")
	defer span()

	result, err := league.Plan(hosts, cfg.params(), league.LoggingTracer{})
	if err != nil {
		log.Fatal("failed to plan league from %d hosts: %v", len(hosts), err)
	}

	printLeague(result)
}

func printLeague(lg *league.League) {
	fmt.Printf("formed %d team(s) from %.2f total throughput\n",
		lg.Size(), lg.TotalThroughput())

	for i, team := range lg.Teams() {
		fmt.Printf("team %d: %d host(s), total throughput %.2f\n",
			i, team.Size(), team.TotalThroughput())
		for _, h := range team.Members() {
			fmt.Printf("  %s\n", h.String())
		}
	}
}
