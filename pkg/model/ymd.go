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

// Package model holds the request-scoped entities the scheduling engine
// operates on: jobs, machines, downtime, worker availability, and the
// schedule produced from them.
package model

import "time"

const minutesPerDay = 24 * 60

// YMD is a calendar day, used for the scheduling origin and job due dates.
type YMD struct {
	Year  int
	Month int
	Day   int
}

// Days returns the number of whole days from o to y (y - o), using UTC
// midnight comparisons so calendar arithmetic (month lengths, leap years)
// is handled by the standard library rather than hand-rolled.
func (o YMD) Days(y YMD) int64 {
	from := time.Date(o.Year, time.Month(o.Month), o.Day, 0, 0, 0, 0, time.UTC)
	to := time.Date(y.Year, time.Month(y.Month), y.Day, 0, 0, 0, 0, time.UTC)
	return int64(to.Sub(from).Hours() / 24)
}

// MinutesFrom returns the number of minutes from origin to the start of
// day d, i.e. (d - origin) * minutesPerDay.
func (d YMD) MinutesFrom(origin YMD) int64 {
	return origin.Days(d) * minutesPerDay
}
