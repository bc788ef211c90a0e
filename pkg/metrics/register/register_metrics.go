// Package register pulls in the built-in metrics collectors by side
// effect, so that importing it is enough to populate the metrics
// registry without every binary having to know the collector list.
package register

import (
	// Pull in the planner's collector (team/league formation stats).
	_ "github.com/pcm-project/pcm-resmgr/pkg/league"
)
