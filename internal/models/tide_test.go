package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestPredictionsForDay(t *testing.T) {
	loc, _ := time.LoadLocation("America/Los_Angeles")

	tests := []struct {
		name   string
		events []TidePrediction
		date   time.Time
		want   int // number of events expected
	}{
		{
			name: "typical day with 2 highs and 2 lows",
			events: []TidePrediction{
				{Time: time.Date(2025, 11, 27, 6, 30, 0, 0, loc), Type: TideLow, Height: 0.5},
				{Time: time.Date(2025, 11, 27, 12, 45, 0, 0, loc), Type: TideHigh, Height: 5.2},
				{Time: time.Date(2025, 11, 27, 18, 15, 0, 0, loc), Type: TideLow, Height: 0.8},
				{Time: time.Date(2025, 11, 28, 0, 30, 0, 0, loc), Type: TideHigh, Height: 5.0},
			},
			date: time.Date(2025, 11, 27, 0, 0, 0, 0, loc),
			want: 3,
		},
		{
			name: "event exactly at midnight belongs to the new day",
			events: []TidePrediction{
				{Time: time.Date(2025, 11, 27, 0, 0, 0, 0, loc), Type: TideHigh, Height: 9.1},
				{Time: time.Date(2025, 11, 28, 0, 0, 0, 0, loc), Type: TideLow, Height: 1.0},
			},
			date: time.Date(2025, 11, 27, 15, 0, 0, 0, loc),
			want: 1,
		},
		{
			name: "no events for given day",
			events: []TidePrediction{
				{Time: time.Date(2025, 11, 26, 12, 0, 0, 0, loc), Type: TideHigh, Height: 5.0},
				{Time: time.Date(2025, 11, 28, 12, 0, 0, 0, loc), Type: TideHigh, Height: 5.0},
			},
			date: time.Date(2025, 11, 27, 0, 0, 0, 0, loc),
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PredictionsForDay(tt.events, tt.date)
			if len(got) != tt.want {
				t.Errorf("PredictionsForDay() returned %d events, want %d", len(got), tt.want)
			}
		})
	}
}

func TestSortPredictions_DoesNotMutateInput(t *testing.T) {
	a := TidePrediction{Time: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
	b := TidePrediction{Time: time.Date(2025, 1, 1, 6, 0, 0, 0, time.UTC)}
	in := []TidePrediction{a, b}

	out := SortPredictions(in)

	if !out[0].Time.Equal(b.Time) || !out[1].Time.Equal(a.Time) {
		t.Errorf("SortPredictions() not ascending: %v", out)
	}
	if !in[0].Time.Equal(a.Time) {
		t.Error("SortPredictions() reordered its input")
	}
}

func TestParseTimestamp(t *testing.T) {
	loc, _ := time.LoadLocation("America/Los_Angeles")
	want := time.Date(2025, 11, 27, 6, 30, 0, 0, loc)

	inputs := []string{
		"2025-11-27 06:30",
		"2025-11-27T06:30",
		"2025-11-27T06:30:00",
		"2025-11-27T06:30:00-08:00",
	}
	for _, in := range inputs {
		got, err := ParseTimestamp(in, loc)
		if err != nil {
			t.Errorf("ParseTimestamp(%q) error = %v", in, err)
			continue
		}
		if !got.Equal(want) {
			t.Errorf("ParseTimestamp(%q) = %v, want %v", in, got, want)
		}
	}

	if _, err := ParseTimestamp("yesterday", loc); err == nil {
		t.Error("ParseTimestamp(\"yesterday\") expected error")
	}
}

func TestTidePrediction_JSON(t *testing.T) {
	loc, _ := time.LoadLocation("America/Los_Angeles")
	p := TidePrediction{
		Time:     time.Date(2025, 11, 27, 12, 45, 0, 0, loc),
		Height:   9.87,
		Type:     TideHigh,
		Time12hr: "12:45 PM",
	}

	data, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	want := `{"time":"2025-11-27T12:45:00-08:00","height":9.87,"type":"H","time_12hr":"12:45 PM"}`
	if string(data) != want {
		t.Errorf("Marshal() = %s, want %s", data, want)
	}

	var back TidePrediction
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if !back.Time.Equal(p.Time) || back.Height != p.Height || !back.IsHigh() {
		t.Errorf("Unmarshal() = %+v, want %+v", back, p)
	}

	if err := json.Unmarshal([]byte(`{"time":"soon","height":1,"type":"L"}`), &back); err == nil {
		t.Error("Unmarshal() with bad time expected error")
	}
}

func TestUnknownStatus(t *testing.T) {
	s := UnknownStatus()
	if s.Percentage != 0.5 || !s.IsRising || s.HasPredictions || s.Direction != "Unknown" {
		t.Errorf("UnknownStatus() = %+v", s)
	}
}
