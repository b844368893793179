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

package model_test

import (
	"testing"

	"go.uber.org/multierr"

	"github.com/bagline/bagsort/pkg/model"
)

func TestYMDMinutesFrom(t *testing.T) {
	origin := model.YMD{Year: 2026, Month: 1, Day: 1}

	cases := []struct {
		name string
		day  model.YMD
		want int64
	}{
		{"same day", model.YMD{Year: 2026, Month: 1, Day: 1}, 0},
		{"next day", model.YMD{Year: 2026, Month: 1, Day: 2}, 24 * 60},
		{"crosses month", model.YMD{Year: 2026, Month: 2, Day: 1}, 31 * 24 * 60},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.day.MinutesFrom(origin); got != tc.want {
				t.Errorf("MinutesFrom() = %d, want %d", got, tc.want)
			}
		})
	}

	leapOrigin := model.YMD{Year: 2028, Month: 2, Day: 28}
	afterLeapDay := model.YMD{Year: 2028, Month: 3, Day: 1}
	if got := afterLeapDay.MinutesFrom(leapOrigin); got != 2*24*60 {
		t.Errorf("leap day MinutesFrom() = %d, want %d", got, 2*24*60)
	}
}

func TestJobValidate(t *testing.T) {
	origin := model.YMD{Year: 2026, Month: 1, Day: 1}

	if err := (model.Job{ID: 1, Bags: 100, DueBy: origin}).Validate(origin); err != nil {
		t.Errorf("expected valid job, got %v", err)
	}
	if err := (model.Job{ID: 2, Bags: 0, DueBy: origin}).Validate(origin); err == nil {
		t.Error("expected error for zero bags")
	}
	past := model.YMD{Year: 2025, Month: 12, Day: 31}
	if err := (model.Job{ID: 3, Bags: 10, DueBy: past}).Validate(origin); err == nil {
		t.Error("expected error for due date before origin")
	}
}

func TestMachineValidate(t *testing.T) {
	if err := (model.Machine{ID: 1, SpeedBagsPerHour: 60}).Validate(); err != nil {
		t.Errorf("expected valid machine, got %v", err)
	}
	if err := (model.Machine{ID: 2, SpeedBagsPerHour: 0}).Validate(); err == nil {
		t.Error("expected error for zero speed")
	}
}

func TestDowntimeValidate(t *testing.T) {
	if err := (model.Downtime{MachineID: 1, Start: 10, End: 20}).Validate(); err != nil {
		t.Errorf("expected valid downtime, got %v", err)
	}
	if err := (model.Downtime{MachineID: 1, Start: 20, End: 20}).Validate(); err == nil {
		t.Error("expected error for empty downtime window")
	}
	if err := (model.Downtime{MachineID: 1, Start: 30, End: 20}).Validate(); err == nil {
		t.Error("expected error for inverted downtime window")
	}
}

func TestAvailabilityDefaultAndValidate(t *testing.T) {
	a := model.DefaultAvailability()
	if err := a.Validate(); err != nil {
		t.Fatalf("default availability should validate, got %v", err)
	}
	if len(a) != model.DefaultHorizonDays*2 {
		t.Errorf("expected %d breakpoints, got %d", model.DefaultHorizonDays*2, len(a))
	}
	if !a.Contains(0) {
		t.Error("expected minute 0 to be available")
	}
	if a.Contains(model.DefaultDailyOpenMinutes) {
		t.Error("expected minute at the close boundary to be unavailable")
	}
}

func TestAvailabilityValidateRejectsMalformed(t *testing.T) {
	if err := (model.Availability{0, 10, 5}).Validate(); err == nil {
		t.Error("expected error for odd breakpoint count")
	}
	if err := (model.Availability{10, 10}).Validate(); err == nil {
		t.Error("expected error for empty interval")
	}
	if err := (model.Availability{0, 10, 5, 20}).Validate(); err == nil {
		t.Error("expected error for non-ascending breakpoints")
	}
}

func TestScheduleSortEntriesAndJobCount(t *testing.T) {
	sched := model.Schedule{
		1: {
			{JobID: 3, Start: 100, End: 150},
			{JobID: 1, Start: 0, End: 50},
			{JobID: 2, Start: 50, End: 100},
		},
	}
	sched.SortEntries()
	entries := sched[1]
	for i := 1; i < len(entries); i++ {
		if entries[i-1].Start > entries[i].Start {
			t.Fatalf("entries not sorted: %+v", entries)
		}
	}
	if got := sched.JobCount(); got != 3 {
		t.Errorf("JobCount() = %d, want 3", got)
	}
}

func TestRequestValidateAggregatesErrors(t *testing.T) {
	origin := model.YMD{Year: 2026, Month: 1, Day: 1}
	req := model.Request{
		Origin:    origin,
		Available: model.DefaultAvailability(),
		Machines: []model.Machine{
			{ID: 1, SpeedBagsPerHour: 60},
			{ID: 1, SpeedBagsPerHour: 30}, // duplicate id
		},
		Downtimes: map[int64][]model.Downtime{
			99: {{MachineID: 99, Start: 0, End: 10}}, // unknown machine
		},
		Jobs: []model.Job{
			{ID: 1, Bags: 10, DueBy: origin},
		},
	}
	err := req.Validate()
	if err == nil {
		t.Fatal("expected aggregated validation errors")
	}
	if got := len(multierr.Errors(err)); got != 2 {
		t.Errorf("expected 2 aggregated errors (duplicate machine, unknown downtime machine), got %d: %v", got, err)
	}
}

func TestRequestValidateAcceptsWellFormedRequest(t *testing.T) {
	origin := model.YMD{Year: 2026, Month: 1, Day: 1}
	req := model.Request{
		Origin:    origin,
		Available: model.DefaultAvailability(),
		Machines: []model.Machine{
			{ID: 1, SpeedBagsPerHour: 60},
		},
		Jobs: []model.Job{
			{ID: 1, Bags: 10, DueBy: origin},
		},
	}
	if err := req.Validate(); err != nil {
		t.Errorf("expected no error, got %v", err)
	}
}

// Zero jobs (and zero machines, separately) are well-formed requests per
// spec §8's "Zero jobs -> {}" boundary case: Validate must let them
// through so the engine's Infeasible/empty-schedule path handles them,
// rather than rejecting them as malformed input.
func TestRequestValidateAllowsEmptyJobs(t *testing.T) {
	origin := model.YMD{Year: 2026, Month: 1, Day: 1}
	req := model.Request{
		Origin:    origin,
		Available: model.DefaultAvailability(),
		Machines: []model.Machine{
			{ID: 1, SpeedBagsPerHour: 60},
		},
		Jobs: []model.Job{},
	}
	if err := req.Validate(); err != nil {
		t.Errorf("expected no error for zero jobs, got %v", err)
	}
}

func TestRequestValidateAllowsEmptyMachines(t *testing.T) {
	origin := model.YMD{Year: 2026, Month: 1, Day: 1}
	req := model.Request{
		Origin:    origin,
		Available: model.DefaultAvailability(),
		Machines:  []model.Machine{},
		Jobs: []model.Job{
			{ID: 1, Bags: 10, DueBy: origin},
		},
	}
	if err := req.Validate(); err != nil {
		t.Errorf("expected no error for zero machines, got %v", err)
	}
}
