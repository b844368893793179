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
	"sort"

	"go.uber.org/multierr"
)

// Entry is one scheduled job on a machine: a half-open [Start, End)
// interval in minutes since the scheduling origin.
type Entry struct {
	JobID int64
	Start int64
	End   int64
}

// Schedule maps machine ID to its ordered, non-overlapping job entries.
type Schedule map[int64][]Entry

// SortEntries sorts every machine's entry list by Start ascending, the
// ordering guarantee spec §5 requires of the final output.
func (s Schedule) SortEntries() {
	for _, entries := range s {
		sort.SliceStable(entries, func(i, j int) bool { return entries[i].Start < entries[j].Start })
	}
}

// JobCount returns the total number of scheduled job entries across all
// machines.
func (s Schedule) JobCount() int {
	n := 0
	for _, entries := range s {
		n += len(entries)
	}
	return n
}

// Request is the fully parsed, validated input to one scheduling call:
// the scheduling origin day, worker availability, machines, their
// downtime windows, and the jobs to place.
type Request struct {
	Origin    YMD
	Available Availability
	Machines  []Machine
	Downtimes map[int64][]Downtime // machine ID -> sorted-by-start downtimes
	Jobs      []Job
}

// Validate aggregates every structural problem with the request instead
// of stopping at the first one, matching this codebase's existing
// practice (pkg/feature's callers, via pkg/engine) of reporting every
// independent validation failure from a single bad request.
//
// A zero-length Machines or Jobs slice is not itself an error: per
// spec §8, zero jobs (or zero machines, which forces every job's
// candidate list empty) is a well-formed request that resolves to the
// Infeasible/empty-schedule path downstream, not a malformed-input
// rejection here.
func (r Request) Validate() error {
	var errs error
	if err := r.Available.Validate(); err != nil {
		errs = multierr.Append(errs, err)
	}
	seenMachines := make(map[int64]bool, len(r.Machines))
	for _, m := range r.Machines {
		if seenMachines[m.ID] {
			errs = multierr.Append(errs, duplicateMachineErr(m.ID))
		}
		seenMachines[m.ID] = true
		errs = multierr.Append(errs, m.Validate())
	}
	for machineID, downtimes := range r.Downtimes {
		if !seenMachines[machineID] {
			errs = multierr.Append(errs, unknownDowntimeMachineErr(machineID))
		}
		for _, d := range downtimes {
			errs = multierr.Append(errs, d.Validate())
		}
	}
	seenJobs := make(map[int64]bool, len(r.Jobs))
	for _, j := range r.Jobs {
		if seenJobs[j.ID] {
			errs = multierr.Append(errs, duplicateJobErr(j.ID))
		}
		seenJobs[j.ID] = true
		errs = multierr.Append(errs, j.Validate(r.Origin))
	}
	return errs
}
