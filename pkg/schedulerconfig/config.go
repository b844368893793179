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

// Package schedulerconfig holds the tunable constants of the scheduling
// engine: the solver time budget and the default availability horizon.
package schedulerconfig

import (
	"os"
	"strconv"
	"time"

	"github.com/imdario/mergo"
)

// Config carries the knobs documented in spec §6: a solver wall-clock
// budget and a 10-day/12-hour-open availability horizon. Only
// SolverBudget is read by the engine; a request that omits `available`
// gets model.DefaultAvailability() from pkg/wire, which does not read
// HorizonDays or DailyOpenMinutes.
type Config struct {
	SolverBudget     time.Duration
	HorizonDays      int
	DailyOpenMinutes int
}

// Defaults returns the documented constants: a 200 second solver budget,
// a 10-day horizon, and a 12-hour open window per day.
func Defaults() Config {
	return Config{
		SolverBudget:     200 * time.Second,
		HorizonDays:      10,
		DailyOpenMinutes: 12 * 60,
	}
}

// FromEnv layers BAGSORT_-prefixed environment overrides onto Defaults()
// using mergo, the same merge-onto-defaults pattern this codebase's
// teacher lineage uses for settings overlays.
func FromEnv() (Config, error) {
	cfg := Defaults()
	override := Config{}

	if v, ok := os.LookupEnv("BAGSORT_SOLVER_BUDGET_SECONDS"); ok {
		seconds, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, err
		}
		override.SolverBudget = time.Duration(seconds) * time.Second
	}
	if v, ok := os.LookupEnv("BAGSORT_HORIZON_DAYS"); ok {
		days, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, err
		}
		override.HorizonDays = days
	}
	if v, ok := os.LookupEnv("BAGSORT_DAILY_OPEN_MINUTES"); ok {
		minutes, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, err
		}
		override.DailyOpenMinutes = minutes
	}

	if err := mergo.Merge(&cfg, override, mergo.WithOverride); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
