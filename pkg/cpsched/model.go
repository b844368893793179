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

package cpsched

import (
	"github.com/google/or-tools/ortools/sat/go/cpmodel"

	"github.com/bagline/bagsort/pkg/model"
)

// MaxMakespanMinutes bounds the objective variable a priori: 12 days of
// 1440 minutes, the documented makespan bound (two days beyond the
// 10-day default availability horizon).
const MaxMakespanMinutes = 12 * 24 * 60

// jobVars bundles the per-job CP-SAT variables the builder produces, kept
// around so the driver can read back the solved values by job ID.
type jobVars struct {
	job      model.Job
	start    cpmodel.IntVar
	end      cpmodel.IntVar
	length   cpmodel.IntVar
	machine  cpmodel.IntVar
	interval cpmodel.IntervalVar
}

// Built is the CP-SAT instance for one request along with enough
// bookkeeping to translate a solver response back into job placements.
type Built struct {
	Builder *cpmodel.CpModelBuilder
	Jobs    []jobVars
}

// Build translates a validated request plus its precomputed per-job
// candidate machine lists into one CP-SAT model: start/end/length/machine
// variables per job, speed-binding and downtime-avoidance constraints
// under reified machine selection, pairwise same-machine non-overlap, and
// a makespan-minimizing objective.
func Build(req model.Request, candidates map[int64][]model.Machine) Built {
	b := cpmodel.NewCpModelBuilder()

	startDomain := availabilityDomain(req.Available)

	jobs := make([]jobVars, 0, len(req.Jobs))
	ends := make([]cpmodel.LinearArgument, 0, len(req.Jobs))

	for _, job := range req.Jobs {
		deadline := job.DeadlineMinutes(req.Origin)
		start := b.NewIntVarFromDomain(startDomain)
		end := b.NewIntVarFromDomain(cpmodel.NewDomain(0, deadline))
		length := b.NewIntVarFromDomain(cpmodel.NewDomain(0, MaxMakespanMinutes))
		machine := b.NewIntVarFromDomain(machineIDDomain(candidates[job.ID]))
		interval := b.NewIntervalVar(start, length, end)

		jv := jobVars{job: job, start: start, end: end, length: length, machine: machine, interval: interval}

		for _, m := range candidates[job.ID] {
			sel := b.NewBoolVar()
			b.AddEquality(machine, cpmodel.NewConstant(m.ID)).OnlyEnforceIf(sel)
			b.AddNotEqual(machine, cpmodel.NewConstant(m.ID)).OnlyEnforceIf(sel.Not())

			dur := lengthMinutes(job.Bags, m.SpeedBagsPerHour)
			b.AddEquality(length, cpmodel.NewConstant(dur)).OnlyEnforceIf(sel)

			for _, dt := range req.Downtimes[m.ID] {
				before := b.NewBoolVar()
				after := b.NewBoolVar()
				b.AddGreaterOrEqual(cpmodel.NewConstant(dt.Start), end).OnlyEnforceIf(before)
				b.AddGreaterThan(end, cpmodel.NewConstant(dt.Start)).OnlyEnforceIf(before.Not())
				b.AddLessOrEqual(cpmodel.NewConstant(dt.End), start).OnlyEnforceIf(after)
				b.AddGreaterThan(cpmodel.NewConstant(dt.End), start).OnlyEnforceIf(after.Not())

				disjoint := b.NewBoolVar()
				b.AddBoolOr(before, after).OnlyEnforceIf(disjoint)
				b.AddBoolAnd(before.Not(), after.Not()).OnlyEnforceIf(disjoint.Not())
				b.AddImplication(sel, disjoint)
			}
		}

		jobs = append(jobs, jv)
		ends = append(ends, end)
	}

	for i := 0; i < len(jobs); i++ {
		for j := i + 1; j < len(jobs); j++ {
			g1, g2 := jobs[i], jobs[j]
			eq := b.NewBoolVar()
			b.AddEquality(g1.machine, g2.machine).OnlyEnforceIf(eq)
			b.AddNotEqual(g1.machine, g2.machine).OnlyEnforceIf(eq.Not())

			firstThenSecond := b.NewBoolVar()
			secondThenFirst := b.NewBoolVar()
			b.AddLessOrEqual(g1.end, g2.start).OnlyEnforceIf(firstThenSecond)
			b.AddGreaterThan(g1.end, g2.start).OnlyEnforceIf(firstThenSecond.Not())
			b.AddLessOrEqual(g2.end, g1.start).OnlyEnforceIf(secondThenFirst)
			b.AddGreaterThan(g2.end, g1.start).OnlyEnforceIf(secondThenFirst.Not())

			disj := b.NewBoolVar()
			b.AddBoolOr(firstThenSecond, secondThenFirst).OnlyEnforceIf(disj)
			b.AddBoolAnd(firstThenSecond.Not(), secondThenFirst.Not()).OnlyEnforceIf(disj.Not())
			b.AddImplication(eq, disj)
		}
	}

	makespan := b.NewIntVarFromDomain(cpmodel.NewDomain(0, MaxMakespanMinutes))
	b.AddMaxEquality(makespan, ends)
	b.Minimize(makespan)

	return Built{Builder: b, Jobs: jobs}
}

// availabilityDomain turns the flat breakpoint encoding into a cpmodel
// Domain covering the union of half-open intervals, inclusive ranges as
// the CP-SAT domain API expects (end minus one minute).
//
// An empty Availability (zero open intervals) has no legal start time for
// any job: mirror machineIDDomain's treatment of an empty candidate list
// and hand back the empty domain rather than indexing intervals[0], so the
// solver reports Infeasible instead of the builder panicking.
func availabilityDomain(a model.Availability) cpmodel.Domain {
	intervals := a.Intervals()
	if len(intervals) == 0 {
		return cpmodel.NewDomainFromValues(nil)
	}
	d := cpmodel.NewDomain(intervals[0][0], intervals[0][1]-1)
	for _, iv := range intervals[1:] {
		d = d.UnionWithDomain(cpmodel.NewDomain(iv[0], iv[1]-1))
	}
	return d
}

// machineIDDomain returns the domain of candidate machine IDs for a job.
// A Domain is a set of values, so feature.Candidates' input order is not
// kept in it; the driver reads the chosen machine back by ID value, not
// by position.
func machineIDDomain(candidates []model.Machine) cpmodel.Domain {
	ids := make([]int64, len(candidates))
	for i, m := range candidates {
		ids[i] = m.ID
	}
	return cpmodel.NewDomainFromValues(ids)
}
