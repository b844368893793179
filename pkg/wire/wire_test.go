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

package wire_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/bagline/bagsort/pkg/model"
	"github.com/bagline/bagsort/pkg/wire"
)

func TestDecodeRequestHappyPath(t *testing.T) {
	doc := []byte(`{
		"ymd": [2024, 1, 1],
		"available": [0, 720],
		"downtime": [{"id": 1, "times": [30, 90]}],
		"machines": [{"id": 1, "speed": 60, "features": {"hot": true}}],
		"jobs": [{"id": 10, "bags": 30, "ymd": [2024, 1, 2], "features": {"hot": true}}]
	}`)

	req, err := wire.DecodeRequest(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Origin != (model.YMD{Year: 2024, Month: 1, Day: 1}) {
		t.Errorf("Origin = %+v", req.Origin)
	}
	if len(req.Machines) != 1 || req.Machines[0].SpeedBagsPerHour != 60 {
		t.Errorf("Machines = %+v", req.Machines)
	}
	if len(req.Jobs) != 1 || req.Jobs[0].Bags != 30 {
		t.Errorf("Jobs = %+v", req.Jobs)
	}
	if len(req.Downtimes[1]) != 1 || req.Downtimes[1][0].Start != 30 || req.Downtimes[1][0].End != 90 {
		t.Errorf("Downtimes[1] = %+v", req.Downtimes[1])
	}
	if !req.Machines[0].Features["hot"].Bool {
		t.Error("expected hot=true feature to decode")
	}
}

func TestDecodeRequestRangeFeature(t *testing.T) {
	doc := []byte(`{
		"ymd": [2024, 1, 1],
		"machines": [{"id": 1, "speed": 60, "features": {"temp": [40, 80]}}],
		"jobs": [{"id": 1, "bags": 10, "ymd": [2024, 1, 2], "features": {"temp": [50, 70]}}]
	}`)
	req, err := wire.DecodeRequest(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v := req.Jobs[0].Features["temp"]
	if !v.IsRange || v.Lo != 50 || v.Hi != 70 {
		t.Errorf("temp feature = %+v", v)
	}
}

func TestDecodeRequestDefaultsAvailabilityWhenOmitted(t *testing.T) {
	doc := []byte(`{
		"ymd": [2024, 1, 1],
		"machines": [{"id": 1, "speed": 60}],
		"jobs": [{"id": 1, "bags": 10, "ymd": [2024, 1, 2]}]
	}`)
	req, err := wire.DecodeRequest(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(req.Available) == 0 {
		t.Error("expected default availability to be filled in")
	}
}

// S6: malformed input missing "machines".
func TestDecodeRequestMissingMachinesIsMalformed(t *testing.T) {
	doc := []byte(`{"ymd": [2024, 1, 1], "jobs": []}`)
	_, err := wire.DecodeRequest(doc)
	if err == nil {
		t.Fatal("expected malformed input error")
	}
	var malformed *wire.ErrMalformedInput
	if !errors.As(err, &malformed) {
		t.Errorf("expected *wire.ErrMalformedInput, got %T", err)
	}
}

func TestDecodeRequestNotAnObjectIsMalformed(t *testing.T) {
	_, err := wire.DecodeRequest([]byte(`[1,2,3]`))
	if err == nil {
		t.Fatal("expected malformed input error")
	}
}

func TestEncodeResponseEmptySchedule(t *testing.T) {
	out, err := wire.EncodeResponse(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(out) != "{}" {
		t.Errorf("got %s, want {}", out)
	}
}

func TestEncodeResponseSortedByStart(t *testing.T) {
	sched := model.Schedule{
		1: {
			{JobID: 11, Start: 30, End: 60},
			{JobID: 10, Start: 0, End: 30},
		},
	}
	out, err := wire.EncodeResponse(sched)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var decoded map[string][]struct {
		ID    int64 `json:"id"`
		Start int64 `json:"start"`
		End   int64 `json:"end"`
	}
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	entries := decoded["1"]
	if len(entries) != 2 || entries[0].ID != 10 || entries[0].Start != 0 || entries[0].End != 30 {
		t.Errorf("entries = %+v", entries)
	}
	if len(entries) == 2 && (entries[1].ID != 11 || entries[1].Start != 30 || entries[1].End != 60) {
		t.Errorf("entries = %+v", entries)
	}
}
