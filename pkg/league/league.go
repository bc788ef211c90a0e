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

// League is the ordered collection of teams a planning call has accepted,
// together with the reference throughput that anchors the cross-team
// homogeneity check for the remainder of that pass.
type League struct {
	teams             []*Team
	totalThroughput   float64
	referenceThroughput float64
	hasReference      bool
}

// NewLeague returns an empty league.
func NewLeague() *League {
	return &League{}
}

// Teams returns the accepted teams in admission order. The slice is owned by
// the caller.
func (l *League) Teams() []*Team {
	out := make([]*Team, len(l.teams))
	copy(out, l.teams)
	return out
}

// Size returns the number of accepted teams.
func (l *League) Size() int {
	return len(l.teams)
}

// Empty reports whether the league has no accepted teams.
func (l *League) Empty() bool {
	return len(l.teams) == 0
}

// TotalThroughput is the sum of accepted teams' totals.
func (l *League) TotalThroughput() float64 {
	return l.totalThroughput
}

// ReferenceThroughput returns the first accepted team's total throughput,
// captured at acceptance time, and whether the league has one yet (it does
// iff the league is non-empty).
func (l *League) ReferenceThroughput() (float64, bool) {
	return l.referenceThroughput, l.hasReference
}

// Add deep-copies team and appends it to the league. If the league was
// previously empty, the copy's total throughput becomes the league's
// reference throughput.
func (l *League) Add(team *Team) {
	accepted := team.Clone()
	if !l.hasReference {
		l.referenceThroughput = accepted.TotalThroughput()
		l.hasReference = true
	}
	l.teams = append(l.teams, accepted)
	l.totalThroughput += accepted.TotalThroughput()
}

// Clear empties the league and forgets its reference throughput.
func (l *League) Clear() {
	l.teams = nil
	l.totalThroughput = 0
	l.referenceThroughput = 0
	l.hasReference = false
}
