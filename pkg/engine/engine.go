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

package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mitchellh/hashstructure/v2"
	gocache "github.com/patrickmn/go-cache"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/bagline/bagsort/pkg/arrange"
	"github.com/bagline/bagsort/pkg/cpsched"
	"github.com/bagline/bagsort/pkg/feature"
	"github.com/bagline/bagsort/pkg/metrics"
	"github.com/bagline/bagsort/pkg/model"
	"github.com/bagline/bagsort/pkg/schedulerconfig"
)

// Scheduler is stateless across calls to Solve beyond a best-effort
// compatibility cache: callers may construct one per request or reuse
// one across sequential requests safely.
type Scheduler struct {
	log   *zap.SugaredLogger
	cfg   schedulerconfig.Config
	cache *gocache.Cache
}

// New builds a Scheduler. log may be nil, in which case a no-op logger
// is used.
func New(log *zap.SugaredLogger, cfg schedulerconfig.Config) *Scheduler {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Scheduler{
		log:   log,
		cfg:   cfg,
		cache: gocache.New(5*time.Minute, 10*time.Minute),
	}
}

// Solve runs one scheduling request: validate, pre-flight feature-match,
// build and solve the CP-SAT model, and left-shift arrange the result.
// Infeasibility of any kind is reported as an empty, non-error schedule;
// only malformed input and internal bugs are returned as Go errors.
func (s *Scheduler) Solve(ctx context.Context, req model.Request) (sched model.Schedule, err error) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Errorw("recovered panic during solve", "panic", r)
			err = &ErrInternal{Cause: fmt.Errorf("%v", r)}
			sched = nil
		}
	}()

	if err := req.Validate(); err != nil {
		return nil, &ErrMalformedInput{Cause: err}
	}

	if len(req.Available.Intervals()) == 0 && len(req.Jobs) > 0 {
		s.log.Infow("availability has no open intervals, reporting infeasible", "job_count", len(req.Jobs))
		metrics.InfeasibleTotal.WithLabelValues("no_availability").Inc()
		return model.Schedule{}, nil
	}

	candidates := s.candidateMachines(req)
	infeasibleJobs := lo.Filter(req.Jobs, func(j model.Job, _ int) bool { return len(candidates[j.ID]) == 0 })
	if len(infeasibleJobs) > 0 {
		jobIDs := lo.Map(infeasibleJobs, func(j model.Job, _ int) int64 { return j.ID })
		s.log.Infow("jobs have no compatible machine, reporting infeasible", "job_ids", jobIDs)
		metrics.InfeasibleTotal.WithLabelValues("no_candidate_machine").Inc()
		return model.Schedule{}, nil
	}

	built := cpsched.Build(req, candidates)

	start := time.Now()
	raw, err := cpsched.Solve(ctx, built, s.cfg.SolverBudget)
	metrics.SolveDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		if errors.Is(err, cpsched.ErrInfeasible) {
			reason := "infeasible"
			if ctx.Err() != nil {
				reason = "timeout"
				s.log.Infow("solver exhausted its time budget", "budget", s.cfg.SolverBudget)
			}
			metrics.InfeasibleTotal.WithLabelValues(reason).Inc()
			return model.Schedule{}, nil
		}
		s.log.Errorw("solver call failed", "error", err)
		return nil, &ErrInternal{Cause: err}
	}

	arranged, err := arrange.Schedule(raw, req.Downtimes)
	if err != nil {
		s.log.Errorw("arrangement invariant violated", "error", err)
		return nil, &ErrInternal{Cause: err}
	}

	metrics.JobsScheduledTotal.Add(float64(arranged.JobCount()))
	s.log.Debugw("solved schedule", "jobs", arranged.JobCount(), "machines", len(arranged))
	return arranged, nil
}

// candidateMachines computes, for every job, the ordered list of
// compatible machines, memoizing per-job-feature-set/machine-fleet
// results behind a hashstructure-derived key since the fleet is
// constant within one request but candidate computation is O(jobs *
// machines * features).
func (s *Scheduler) candidateMachines(req model.Request) map[int64][]model.Machine {
	out := make(map[int64][]model.Machine, len(req.Jobs))
	for _, job := range req.Jobs {
		key, err := hashstructure.Hash(struct {
			Job      feature.Set
			Machines []model.Machine
		}{Job: job.Features, Machines: req.Machines}, hashstructure.FormatV2, nil)
		if err != nil {
			out[job.ID] = feature.Candidates(job.Features, req.Machines)
			continue
		}
		cacheKey := fmt.Sprintf("%d", key)
		if cached, ok := s.cache.Get(cacheKey); ok {
			out[job.ID] = cached.([]model.Machine)
			continue
		}
		result := feature.Candidates(job.Features, req.Machines)
		s.cache.SetDefault(cacheKey, result)
		out[job.ID] = result
	}
	return out
}
