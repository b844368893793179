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

// Package wire implements the request/response JSON contract at the
// scheduling engine's boundary: decoding a request document into
// pkg/model types and encoding a pkg/model.Schedule back out.
package wire

import (
	"fmt"
	"sort"

	jsoniter "github.com/json-iterator/go"

	"github.com/bagline/bagsort/pkg/feature"
	"github.com/bagline/bagsort/pkg/model"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrMalformedInput wraps the reason a request document failed to
// decode into a usable model.Request: not a structured object, missing
// a required field, or a field of the wrong shape.
type ErrMalformedInput struct {
	Reason string
}

func (e *ErrMalformedInput) Error() string { return fmt.Sprintf("malformed input: %s", e.Reason) }

type requestDoc struct {
	YMD       [3]int        `json:"ymd"`
	Available []int64       `json:"available"`
	Downtime  []downtimeDoc `json:"downtime"`
	Machines  []machineDoc  `json:"machines"`
	Jobs      []jobDoc      `json:"jobs"`
}

type downtimeDoc struct {
	ID    int64   `json:"id"`
	Times []int64 `json:"times"`
}

type machineDoc struct {
	ID       int64                      `json:"id"`
	Speed    int                        `json:"speed"`
	Features map[string]jsoniter.RawMessage `json:"features"`
}

type jobDoc struct {
	ID       int64                      `json:"id"`
	Bags     int                        `json:"bags"`
	YMD      [3]int                     `json:"ymd"`
	Features map[string]jsoniter.RawMessage `json:"features"`
}

// DecodeRequest parses a request document per spec §6. Required fields
// are `ymd`, `machines`, and `jobs`; an absent or empty `available` is
// filled with model.DefaultAvailability().
func DecodeRequest(data []byte) (*model.Request, error) {
	var doc requestDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &ErrMalformedInput{Reason: err.Error()}
	}
	if doc.YMD == [3]int{} {
		return nil, &ErrMalformedInput{Reason: "missing required field \"ymd\""}
	}
	if doc.Machines == nil {
		return nil, &ErrMalformedInput{Reason: "missing required field \"machines\""}
	}
	if doc.Jobs == nil {
		return nil, &ErrMalformedInput{Reason: "missing required field \"jobs\""}
	}

	origin := model.YMD{Year: doc.YMD[0], Month: doc.YMD[1], Day: doc.YMD[2]}

	machines := make([]model.Machine, 0, len(doc.Machines))
	for _, m := range doc.Machines {
		feats, err := decodeFeatures(m.Features)
		if err != nil {
			return nil, &ErrMalformedInput{Reason: fmt.Sprintf("machine %d: %s", m.ID, err)}
		}
		machines = append(machines, model.Machine{ID: m.ID, SpeedBagsPerHour: m.Speed, Features: feats})
	}

	jobs := make([]model.Job, 0, len(doc.Jobs))
	for _, j := range doc.Jobs {
		feats, err := decodeFeatures(j.Features)
		if err != nil {
			return nil, &ErrMalformedInput{Reason: fmt.Sprintf("job %d: %s", j.ID, err)}
		}
		dueBy := model.YMD{Year: j.YMD[0], Month: j.YMD[1], Day: j.YMD[2]}
		jobs = append(jobs, model.Job{ID: j.ID, Bags: j.Bags, DueBy: dueBy, Features: feats})
	}

	downtimes := make(map[int64][]model.Downtime, len(doc.Downtime))
	for _, dt := range doc.Downtime {
		if len(dt.Times)%2 != 0 {
			return nil, &ErrMalformedInput{Reason: fmt.Sprintf("downtime for machine %d has an odd number of times", dt.ID)}
		}
		for i := 0; i < len(dt.Times); i += 2 {
			downtimes[dt.ID] = append(downtimes[dt.ID], model.Downtime{
				MachineID: dt.ID,
				Start:     dt.Times[i],
				End:       dt.Times[i+1],
			})
		}
	}

	available := model.Availability(doc.Available)
	if len(available) == 0 {
		available = model.DefaultAvailability()
	}

	return &model.Request{
		Origin:    origin,
		Available: available,
		Machines:  machines,
		Downtimes: downtimes,
		Jobs:      jobs,
	}, nil
}

// decodeFeatures reads the feature.Value shapes allowed on the wire: a
// JSON boolean, or a 2-element integer array. Anything else is ignored,
// treating the feature as absent for that entity (per spec §6).
func decodeFeatures(raw map[string]jsoniter.RawMessage) (feature.Set, error) {
	set := make(feature.Set, len(raw))
	for key, v := range raw {
		var b bool
		if err := json.Unmarshal(v, &b); err == nil {
			set[key] = feature.Bool(b)
			continue
		}
		var rng []int64
		if err := json.Unmarshal(v, &rng); err == nil && len(rng) == 2 {
			set[key] = feature.Range(rng[0], rng[1])
			continue
		}
		// Unrecognized shape: feature is treated as absent.
	}
	return set, nil
}

// responseEntry mirrors the `{ "id", "start", "end" }` shape of spec §6.
type responseEntry struct {
	ID    int64 `json:"id"`
	Start int64 `json:"start"`
	End   int64 `json:"end"`
}

// EncodeResponse renders a schedule as a machine-id-keyed object of
// sorted entry arrays. A nil or empty schedule encodes to `{}`, the
// shared representation for both "no jobs" and "infeasible" (spec §6).
func EncodeResponse(sched model.Schedule) ([]byte, error) {
	out := make(map[string][]responseEntry, len(sched))
	for machineID, entries := range sched {
		list := make([]responseEntry, 0, len(entries))
		for _, e := range entries {
			list = append(list, responseEntry{ID: e.JobID, Start: e.Start, End: e.End})
		}
		sort.SliceStable(list, func(i, j int) bool { return list[i].Start < list[j].Start })
		out[fmt.Sprintf("%d", machineID)] = list
	}
	return json.Marshal(out)
}
