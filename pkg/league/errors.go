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
	"errors"
	"fmt"
)

// ErrEmptyTeam is returned by Team.RemoveFirst when called on a team with
// no members. Seeing it escape Plan indicates a bug in the formation pass,
// not a planning outcome: every caller of RemoveFirst is expected to have
// already verified the team is non-empty.
var ErrEmptyTeam = errors.New("league: remove_first called on an empty team")

func paramError(format string, args ...interface{}) error {
	return fmt.Errorf("league: "+format, args...)
}
