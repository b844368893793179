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
	"context"
	"errors"
	"time"

	"github.com/avast/retry-go"
	"github.com/google/or-tools/ortools/sat/go/cpmodel"
	cmpb "github.com/google/or-tools/ortools/sat/proto/cpmodel"
	sppb "github.com/google/or-tools/ortools/sat/proto/satparameters"

	"github.com/bagline/bagsort/pkg/model"
)

// ErrInfeasible is returned when the solver reaches no usable solution
// within its time budget: status is neither OPTIMAL nor FEASIBLE, or the
// extracted schedule turns out empty. It carries no job-level detail;
// pkg/engine is responsible for translating it into the empty-schedule
// contract on the wire.
var ErrInfeasible = errors.New("cpsched: solver produced no feasible schedule")

// Solve runs the built CP-SAT model with a wall-clock budget and decodes
// a feasible or optimal response into a raw per-machine schedule. When
// ctx carries a deadline, the budget is capped at the time remaining
// until it. The solver call is wrapped in retry.Do with Attempts(1), so it
// is made exactly once: a solver error is returned to the caller, and
// infeasibility is a terminal result.
func Solve(ctx context.Context, built Built, budget time.Duration) (model.Schedule, error) {
	m, err := built.Builder.Model()
	if err != nil {
		return nil, err
	}
	if deadline, ok := ctx.Deadline(); ok {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return nil, ErrInfeasible
		}
		if budget <= 0 || remaining < budget {
			budget = remaining
		}
	}
	params := solverParameters(budget)

	var response *cmpb.CpSolverResponse
	err = retry.Do(
		func() error {
			resp, solveErr := cpmodel.SolveCpModelWithSatParameters(m, params)
			if solveErr != nil {
				return solveErr
			}
			response = resp
			return nil
		},
		retry.Attempts(1),
		retry.Context(ctx),
	)
	if err != nil {
		return nil, err
	}

	status := response.GetStatus()
	if status != cmpb.CpSolverStatus_OPTIMAL && status != cmpb.CpSolverStatus_FEASIBLE {
		return nil, ErrInfeasible
	}

	schedule := make(model.Schedule)
	for _, jv := range built.Jobs {
		start := cpmodel.SolutionIntegerValue(response, jv.start)
		end := cpmodel.SolutionIntegerValue(response, jv.end)
		machineID := cpmodel.SolutionIntegerValue(response, jv.machine)
		schedule[machineID] = append(schedule[machineID], model.Entry{
			JobID: jv.job.ID,
			Start: start,
			End:   end,
		})
	}
	if schedule.JobCount() == 0 {
		return nil, ErrInfeasible
	}
	schedule.SortEntries()
	return schedule, nil
}

// solverParameters builds the SatParameters carrying the wall-clock
// budget; a non-positive budget leaves the solver's own default in
// place.
func solverParameters(budget time.Duration) *sppb.SatParameters {
	params := &sppb.SatParameters{}
	if budget > 0 {
		seconds := budget.Seconds()
		params.MaxTimeInSeconds = &seconds
	}
	return params
}
