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

import "fmt"

// Availability is the flat breakpoint encoding of a union of half-open
// minute intervals [a0,b0), [a1,b1), ... during which a job may start.
// It is stored exactly as it arrives on the wire: a flat, ascending list
// of breakpoints, an even number of them.
type Availability []int64

// DefaultHorizonDays and DefaultDailyOpenMinutes document the constants
// named in spec §6/§8: a 10-day horizon with the first 12 hours of each
// day open for job starts.
const (
	DefaultHorizonDays      = 10
	DefaultDailyOpenMinutes = 12 * 60
	MinutesPerDay           = 24 * 60
)

// DefaultAvailability builds the documented default availability: 10 days
// of 1440 minutes each, with the first 12 hours of each day open.
func DefaultAvailability() Availability {
	a := make(Availability, 0, DefaultHorizonDays*2)
	for d := 0; d < DefaultHorizonDays; d++ {
		dayStart := int64(d * MinutesPerDay)
		a = append(a, dayStart, dayStart+DefaultDailyOpenMinutes)
	}
	return a
}

// Validate checks that the breakpoint list is well-formed: an even number
// of entries, each interval non-empty, and ascending so later code can
// assume sorted, disjoint intervals.
func (a Availability) Validate() error {
	if len(a)%2 != 0 {
		return fmt.Errorf("availability: odd number of breakpoints (%d)", len(a))
	}
	for i := 0; i < len(a); i += 2 {
		if a[i] >= a[i+1] {
			return fmt.Errorf("availability: interval [%d,%d) is empty or inverted", a[i], a[i+1])
		}
		if i > 0 && a[i] < a[i-1] {
			return fmt.Errorf("availability: breakpoints are not ascending at index %d", i)
		}
	}
	return nil
}

// Intervals returns the breakpoint list as [2]int64 half-open intervals.
func (a Availability) Intervals() [][2]int64 {
	out := make([][2]int64, 0, len(a)/2)
	for i := 0; i < len(a); i += 2 {
		out = append(out, [2]int64{a[i], a[i+1]})
	}
	return out
}

// Contains reports whether minute t lies within the availability union.
func (a Availability) Contains(t int64) bool {
	for i := 0; i < len(a); i += 2 {
		if t >= a[i] && t < a[i+1] {
			return true
		}
	}
	return false
}
