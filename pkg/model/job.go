/*
Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package model

import (
	"fmt"

	"github.com/bagline/bagsort/pkg/feature"
)

// Job is a unit of production demand: a bag count due by a calendar day,
// with feature requirements a candidate machine must satisfy.
type Job struct {
	ID       int64
	Bags     int
	DueBy    YMD
	Features feature.Set
}

func (j Job) FeatureSet() feature.Set { return j.Features }

// DeadlineMinutes returns the job's due date expressed as integer minutes
// after origin's midnight.
func (j Job) DeadlineMinutes(origin YMD) int64 {
	return j.DueBy.MinutesFrom(origin)
}

// Validate checks the invariants the engine assumes hold for every job:
// a positive bag count and a deadline not before the scheduling origin.
func (j Job) Validate(origin YMD) error {
	if j.Bags <= 0 {
		return fmt.Errorf("job %d: bags must be positive, got %d", j.ID, j.Bags)
	}
	if j.DeadlineMinutes(origin) < 0 {
		return fmt.Errorf("job %d: due date %+v is before scheduling origin %+v", j.ID, j.DueBy, origin)
	}
	return nil
}
