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

// Machine is a production unit with a bags-per-hour speed and a feature
// profile describing what kinds of jobs it can run.
type Machine struct {
	ID               int64
	SpeedBagsPerHour int
	Features         feature.Set
}

func (m Machine) FeatureSet() feature.Set { return m.Features }

// Validate checks that the machine's speed is usable as a CP-model
// divisor.
func (m Machine) Validate() error {
	if m.SpeedBagsPerHour <= 0 {
		return fmt.Errorf("machine %d: speed must be positive, got %d", m.ID, m.SpeedBagsPerHour)
	}
	return nil
}

// Downtime is a maintenance interval on a specific machine during which no
// job may run. Start and End are half-open minutes since the scheduling
// origin: [Start, End).
type Downtime struct {
	MachineID int64
	Start     int64
	End       int64
}

func (d Downtime) Validate() error {
	if d.End <= d.Start {
		return fmt.Errorf("machine %d: downtime end %d must be after start %d", d.MachineID, d.End, d.Start)
	}
	return nil
}
