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

// Package cpsched builds and solves one CP-SAT instance per scheduling
// request: job placement, speed-dependent duration, downtime avoidance,
// and same-machine non-overlap, with a makespan-minimizing objective.
package cpsched

// lengthMinutes is the single rule used everywhere a job duration is
// computed or checked: ceil(bags * 60 / speed), done in integer
// arithmetic so the CP model never depends on floating point.
func lengthMinutes(bags int, speedBagsPerHour int) int64 {
	b := int64(bags) * 60
	s := int64(speedBagsPerHour)
	return (b + s - 1) / s
}
