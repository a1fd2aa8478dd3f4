package models

import (
	"encoding/json"
	"testing"
)

func TestWeatherSnapshot_NullableFields(t *testing.T) {
	body := `{"temperature":null,"temperature_unit":"F","conditions":"Fog","wind_speed":"N/A","wind_direction":"N/A","wind_direction_degrees":null,"visibility":"0.2 mi"}`

	var w WeatherSnapshot
	if err := json.Unmarshal([]byte(body), &w); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if w.Temperature != nil {
		t.Errorf("Temperature = %v, want nil", *w.Temperature)
	}
	if w.WindDirectionDegrees != nil {
		t.Error("WindDirectionDegrees should be nil")
	}
	if w.WindSpeed != NotReported {
		t.Errorf("WindSpeed = %q, want %q", w.WindSpeed, NotReported)
	}
	if w.Visibility != "0.2 mi" {
		t.Errorf("Visibility = %q", w.Visibility)
	}
}

func TestEnvelope_OK(t *testing.T) {
	tests := []struct {
		body string
		want bool
	}{
		{`{"status":"ok","data":{}}`, true},
		{`{"status":"error","message":"Failed to fetch tide data"}`, false},
		{`{}`, false},
	}

	for _, tt := range tests {
		var env Envelope
		if err := json.Unmarshal([]byte(tt.body), &env); err != nil {
			t.Fatalf("Unmarshal(%s) error = %v", tt.body, err)
		}
		if env.OK() != tt.want {
			t.Errorf("Envelope(%s).OK() = %v, want %v", tt.body, env.OK(), tt.want)
		}
	}
}
