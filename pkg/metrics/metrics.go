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

// Package metrics holds the Prometheus collectors the scheduling engine
// emits, registered on a private registry: this process has no
// controller-runtime manager to own a cluster-wide one.
package metrics

import "github.com/prometheus/client_golang/prometheus"

const Namespace = "bagsort"

var (
	SolveDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: Namespace,
		Subsystem: "solve",
		Name:      "duration_seconds",
		Help:      "Time spent solving the already-built CP-SAT model for one scheduling request.",
		Buckets:   prometheus.ExponentialBuckets(0.01, 2, 16),
	})

	InfeasibleTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "solve",
			Name:      "infeasible_total",
			Help:      "Number of scheduling requests that produced no feasible schedule. Labeled by reason.",
		},
		[]string{
			"reason",
		},
	)

	JobsScheduledTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: Namespace,
		Subsystem: "solve",
		Name:      "jobs_scheduled_total",
		Help:      "Number of jobs placed on a machine across all successful scheduling requests.",
	})
)

// Registry is a private registry rather than prometheus.DefaultRegisterer:
// cmd/bagsort is a one-shot CLI with no HTTP server of its own, so a
// caller that does expose a /metrics endpoint registers this explicitly.
var Registry = prometheus.NewRegistry()

func MustRegister() {
	Registry.MustRegister(SolveDuration, InfeasibleTotal, JobsScheduledTotal)
}
