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
	"time"

	logger "github.com/pcm-project/pcm-resmgr/pkg/log"
)

const logSource = "league"

var log = logger.NewLogger(logSource)

// traceLog is rate-limited so a pathological run (thousands of hosts,
// thousands of redo decisions) never turns diagnostics into the dominant
// cost of planning.
var traceLog = logger.RateLimit(log, logger.Interval(100*time.Millisecond))

// Tracer receives an optional diagnostic event for every acceptance point
// and early termination the formation pass reaches. Labels are
// implementation-defined and stable only within one build; callers should
// never assert on their content, only on whether tracing ran at all.
type Tracer interface {
	Event(label string, args ...interface{})
}

// noopTracer discards every event; it is the default when no Tracer is given.
type noopTracer struct{}

func (noopTracer) Event(string, ...interface{}) {}

// LoggingTracer emits each event as a rate-limited debug line through
// pkg/log, labeled the way the original decision branches were ("add-team-1"
// through "add-team-8"), mirroring the reference implementation's debug
// prints without committing tests to their exact text.
type LoggingTracer struct{}

func (LoggingTracer) Event(label string, args ...interface{}) {
	if !log.DebugEnabled() {
		return
	}
	traceLog.Debug("%s %v", label, args)
}
