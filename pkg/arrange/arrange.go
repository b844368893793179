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

// Package arrange compacts a solved schedule's per-machine timelines by
// shifting each job as early as maintenance downtime allows, without
// changing durations, relative order, or downtime-disjointness.
package arrange

import (
	"fmt"
	"sort"

	"github.com/bagline/bagsort/pkg/model"
)

// ErrInternal signals an arrangement invariant that should be
// unreachable given the downtime-cursor fix below; its presence always
// indicates a bug, not a user error.
type ErrInternal struct {
	MachineID int64
	JobID     int64
	Reason    string
}

func (e *ErrInternal) Error() string {
	return fmt.Sprintf("arrange: machine %d job %d: %s", e.MachineID, e.JobID, e.Reason)
}

// Schedule left-shifts every machine's entries in place against that
// machine's downtime windows. Entries are sorted by start ascending
// first, matching the solver's relative ordering; ties keep their
// original relative order (sort.SliceStable).
func Schedule(sched model.Schedule, downtimes map[int64][]model.Downtime) (model.Schedule, error) {
	out := make(model.Schedule, len(sched))
	for machineID, entries := range sched {
		sorted := make([]model.Entry, len(entries))
		copy(sorted, entries)
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

		dt := sortedDowntimes(downtimes[machineID])

		shifted, err := shiftMachine(machineID, sorted, dt)
		if err != nil {
			return nil, err
		}
		out[machineID] = shifted
	}
	return out, nil
}

func sortedDowntimes(in []model.Downtime) []model.Downtime {
	out := make([]model.Downtime, len(in))
	copy(out, in)
	sort.Slice(out, func(i, j int) bool { return out[i].End < out[j].End })
	return out
}

// shiftMachine walks one machine's already-sorted entries, shifting each
// as early as the previous job's new end and any downtime ending at or
// before its current start allow.
//
// previous is recomputed for every job as the maximum end of any
// downtime with end <= s, rather than trusting a forward-only cursor
// that only advances when a later downtime also precedes the job: that
// forward-only cursor can leave previous too small when downtime windows
// are short or close together. Recomputing directly is simpler and keeps
// invariant 8.3 (no job overlaps downtime) true by construction.
func shiftMachine(machineID int64, entries []model.Entry, downtimes []model.Downtime) ([]model.Entry, error) {
	out := make([]model.Entry, len(entries))
	previous := int64(0)

	for i, e := range entries {
		length := e.End - e.Start

		floor := maxDowntimeEndBefore(downtimes, e.Start)
		if floor > previous {
			previous = floor
		}

		diff := e.Start - previous
		if diff < 0 {
			diff = 0
		}
		newStart := e.Start - diff
		newEnd := e.End - diff

		shifted := model.Entry{JobID: e.JobID, Start: newStart, End: newEnd}
		if shifted.End-shifted.Start != length {
			return nil, &ErrInternal{MachineID: machineID, JobID: e.JobID, Reason: "duration changed during shift"}
		}
		if shifted.Start < 0 {
			return nil, &ErrInternal{MachineID: machineID, JobID: e.JobID, Reason: "shift produced negative start"}
		}
		if overlapsAnyDowntime(shifted, downtimes) {
			// Should be unreachable given the recompute-previous fix above;
			// kept because the ambiguity in the original walk was explicit.
			out[i] = e
			previous = e.End
			continue
		}

		out[i] = shifted
		previous = shifted.End
	}
	return out, nil
}

// maxDowntimeEndBefore returns the maximum End of any downtime window
// with End <= s, or 0 if none qualifies. downtimes is sorted by End
// ascending, so this is a binary search for the last qualifying entry.
func maxDowntimeEndBefore(downtimes []model.Downtime, s int64) int64 {
	lo, hi := 0, len(downtimes)
	for lo < hi {
		mid := (lo + hi) / 2
		if downtimes[mid].End <= s {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo == 0 {
		return 0
	}
	return downtimes[lo-1].End
}

func overlapsAnyDowntime(e model.Entry, downtimes []model.Downtime) bool {
	for _, d := range downtimes {
		if e.Start < d.End && d.Start < e.End {
			return true
		}
	}
	return false
}
