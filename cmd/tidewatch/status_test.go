package main

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngmaloney/tidewatch/internal/dashboard"
)

var healthyRoutes = map[string]string{
	"/api/health":    `{"status":"ok","timestamp":"2025-06-01T12:00:00Z","location":"Maple Grove Beach"}`,
	"/api/config":    `{"status":"ok","location":{"name":"Maple Grove Beach","station_id":"9447130"}}`,
	"/api/tide":      `{"status":"ok","data":{"predictions":[{"time":"2025-06-01T03:12:00-07:00","height":1.2,"type":"L"}],"status":{"direction":"Rising"}}}`,
	"/api/weather":   `{"status":"ok","data":{"conditions":"Partly Cloudy"}}`,
	"/api/astronomy": `{"status":"ok","data":{"sunrise":"5:11 AM","moon_phase":"Waxing Crescent"}}`,
}

func statusClient(t *testing.T, routes map[string]string) *dashboard.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := routes[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"status":"error","message":"Failed to fetch data"}`))
			return
		}
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return dashboard.NewClient(srv.URL, time.Second, time.Second, nil)
}

func TestRunProbes_Healthy(t *testing.T) {
	color.NoColor = true
	probes := runProbes(context.Background(), statusClient(t, healthyRoutes))
	require.Len(t, probes, 5)
	for _, p := range probes {
		assert.NoError(t, p.err, p.name)
	}
	assert.Equal(t, "1 predictions, rising", probes[2].detail)

	var buf bytes.Buffer
	require.NoError(t, printProbes(&buf, "http://kiosk:3001", probes))
	out := buf.String()
	assert.Contains(t, out, "Backend: http://kiosk:3001")
	assert.Contains(t, out, "ENDPOINT")
	assert.Contains(t, out, "Partly Cloudy")
	assert.Contains(t, out, "sunrise 5:11 AM, Waxing Crescent")
	assert.NoError(t, probeExit(probes))
}

func TestRunProbes_Degraded(t *testing.T) {
	color.NoColor = true
	routes := map[string]string{}
	for k, v := range healthyRoutes {
		routes[k] = v
	}
	delete(routes, "/api/weather")

	probes := runProbes(context.Background(), statusClient(t, routes))
	require.Len(t, probes, 5)
	assert.Error(t, probes[3].err)

	var buf bytes.Buffer
	require.NoError(t, printProbes(&buf, "x", probes))
	assert.Contains(t, buf.String(), "failed")

	var ece *exitCodeError
	require.True(t, errors.As(probeExit(probes), &ece))
	assert.Equal(t, ExitDegraded, ece.code)
	assert.Equal(t, "1 of 5 endpoints failed", ece.msg)
}

func TestRunProbes_Unreachable(t *testing.T) {
	client := dashboard.NewClient("http://127.0.0.1:1", time.Second, 200*time.Millisecond, nil)
	probes := runProbes(context.Background(), client)
	require.Len(t, probes, 1)

	var ece *exitCodeError
	require.True(t, errors.As(probeExit(probes), &ece))
	assert.Equal(t, ExitUnreachable, ece.code)
}

func TestVersionCmd(t *testing.T) {
	var buf bytes.Buffer
	versionCmd.SetOut(&buf)
	versionCmd.Run(versionCmd, nil)
	assert.Equal(t, "tidewatch dev\n", buf.String())
}
