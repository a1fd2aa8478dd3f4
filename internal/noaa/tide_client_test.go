package noaa

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ngmaloney/tidewatch/internal/models"
)

const predictionsFixture = `{
  "predictions": [
    {"t": "2025-06-01 03:12", "v": "0.514", "type": "L"},
    {"t": "2025-06-01 09:47", "v": "10.437", "type": "H"},
    {"t": "2025-06-01 bad", "v": "1.0", "type": "L"},
    {"t": "2025-06-01 15:20", "v": "x", "type": "L"},
    {"t": "2025-06-01 21:05", "v": "11.996", "type": "H"}
  ]
}`

const waterLevelFixture = `{
  "metadata": {"id": "9447130", "name": "Seattle"},
  "data": [
    {"t": "2025-06-01 18:54", "v": "6.781", "s": "0.010", "f": "0,0,0,0", "q": "p"},
    {"t": "2025-06-01 19:00", "v": "6.905", "s": "0.012", "f": "0,0,0,0", "q": "p"}
  ]
}`

type recorded struct {
	source string
	err    error
}

type fakeRecorder struct {
	calls []recorded
}

func (f *fakeRecorder) ObserveUpstream(source string, _ time.Time, err error) {
	f.calls = append(f.calls, recorded{source, err})
}

func pacific(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/Los_Angeles")
	if err != nil {
		t.Fatalf("LoadLocation: %v", err)
	}
	return loc
}

func TestNewTideClient(t *testing.T) {
	client := NewTideClient(Options{})

	if client == nil {
		t.Fatal("NewTideClient() returned nil")
	}

	if client.baseURL != "https://api.tidesandcurrents.noaa.gov/api/prod/datagetter" {
		t.Errorf("baseURL = %s, unexpected value", client.baseURL)
	}

	if client.application != "TideWatch" {
		t.Errorf("application = %s, want TideWatch", client.application)
	}

	if client.httpClient.Timeout != 30*time.Second {
		t.Errorf("timeout = %v, want 30s", client.httpClient.Timeout)
	}
}

func TestNOAATideClient_GetPredictions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		want := map[string]string{
			"station":     "9447130",
			"product":     "predictions",
			"datum":       "MLLW",
			"interval":    "hilo",
			"time_zone":   "lst_ldt",
			"units":       "english",
			"begin_date":  "20250531",
			"end_date":    "20250608",
			"application": "TideWatch",
		}
		for k, v := range want {
			if query.Get(k) != v {
				t.Errorf("%s param = %s, want %s", k, query.Get(k), v)
			}
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(predictionsFixture))
	}))
	defer server.Close()

	rec := &fakeRecorder{}
	client := NewTideClient(Options{BaseURL: server.URL, Recorder: rec})

	loc := pacific(t)
	begin := time.Date(2025, 5, 31, 0, 0, 0, 0, loc)
	end := time.Date(2025, 6, 8, 0, 0, 0, 0, loc)

	preds, err := client.GetPredictions(context.Background(), "9447130", begin, end)
	if err != nil {
		t.Fatalf("GetPredictions() error = %v", err)
	}

	// Rows with unparseable time or height are skipped.
	if len(preds) != 3 {
		t.Fatalf("len(preds) = %d, want 3", len(preds))
	}

	first := preds[0]
	if first.Type != models.TideLow {
		t.Errorf("first type = %v, want L", first.Type)
	}
	if first.Height != 0.51 {
		t.Errorf("first height = %v, want 0.51", first.Height)
	}
	if !first.Time.Equal(time.Date(2025, 6, 1, 3, 12, 0, 0, loc)) {
		t.Errorf("first time = %v", first.Time)
	}

	if preds[1].Type != models.TideHigh || preds[1].Height != 10.44 {
		t.Errorf("second = %+v, want H 10.44", preds[1])
	}
	if preds[2].Height != 12 {
		t.Errorf("third height = %v, want 12", preds[2].Height)
	}

	if len(rec.calls) != 1 || rec.calls[0].source != "noaa_predictions" || rec.calls[0].err != nil {
		t.Errorf("recorder calls = %+v", rec.calls)
	}
}

func TestNOAATideClient_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error": {"message": "No Predictions data was found."}}`))
	}))
	defer server.Close()

	client := NewTideClient(Options{BaseURL: server.URL})
	now := time.Now()

	if _, err := client.GetPredictions(context.Background(), "1", now, now); err == nil {
		t.Error("Expected error for NOAA error body, got nil")
	}
}

func TestNOAATideClient_ErrorHandling(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("Station not found"))
	}))
	defer server.Close()

	rec := &fakeRecorder{}
	client := NewTideClient(Options{BaseURL: server.URL, Recorder: rec})

	startDate := time.Now()
	endDate := startDate.Add(3 * 24 * time.Hour)

	_, err := client.GetPredictions(context.Background(), "invalid", startDate, endDate)
	if err == nil {
		t.Error("Expected error for invalid station, got nil")
	}
	if len(rec.calls) != 1 || rec.calls[0].err == nil {
		t.Errorf("recorder should see the failure, got %+v", rec.calls)
	}
}

func TestNOAATideClient_GetWaterLevel(t *testing.T) {
	loc := pacific(t)
	now := time.Date(2025, 6, 1, 12, 5, 0, 0, loc) // 19:05 GMT

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		if query.Get("product") != "water_level" {
			t.Errorf("product = %s, want water_level", query.Get("product"))
		}
		if query.Get("time_zone") != "gmt" {
			t.Errorf("time_zone = %s, want gmt", query.Get("time_zone"))
		}
		if query.Get("begin_date") != "20250601 18:35" {
			t.Errorf("begin_date = %s, want 20250601 18:35", query.Get("begin_date"))
		}
		if query.Get("end_date") != "20250601 19:05" {
			t.Errorf("end_date = %s, want 20250601 19:05", query.Get("end_date"))
		}
		w.Write([]byte(waterLevelFixture))
	}))
	defer server.Close()

	client := NewTideClient(Options{BaseURL: server.URL})
	level, err := client.GetWaterLevel(context.Background(), "9447130", now)
	if err != nil {
		t.Fatalf("GetWaterLevel() error = %v", err)
	}

	if level.Height != 6.91 {
		t.Errorf("Height = %v, want 6.91", level.Height)
	}
	if got := level.Time.Format("2006-01-02 15:04 MST"); got != "2025-06-01 12:00 PDT" {
		t.Errorf("Time = %s, want 2025-06-01 12:00 PDT", got)
	}
	if level.Unit != "ft" || level.Station != "9447130" {
		t.Errorf("unexpected level %+v", level)
	}
}

func TestNOAATideClient_GetWaterLevelEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": []}`))
	}))
	defer server.Close()

	client := NewTideClient(Options{BaseURL: server.URL})
	_, err := client.GetWaterLevel(context.Background(), "9447130", time.Now())
	if err != ErrNoData {
		t.Errorf("err = %v, want ErrNoData", err)
	}
}
