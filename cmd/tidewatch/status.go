package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ngmaloney/tidewatch/internal/dashboard"
)

var statusBackend string

// statusCmd probes a running backend the way the dashboard does.
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check that the backend answers every dashboard endpoint",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	statusCmd.Flags().StringVar(&statusBackend, "backend", "", "backend base URL (defaults to dashboard.backend_url)")
}

// probe is one row of the status table.
type probe struct {
	name   string
	detail string
	err    error
}

func runStatus(cmd *cobra.Command, _ []string) error {
	backend := statusBackend
	if backend == "" {
		backend = cfg.Dashboard.BackendURL
	}
	client := dashboard.NewClient(backend, cfg.Dashboard.FetchTimeout, cfg.Dashboard.ProbeTimeout, zap.NewNop().Sugar())

	probes := runProbes(cmd.Context(), client)
	if err := printProbes(cmd.OutOrStdout(), backend, probes); err != nil {
		return err
	}
	return probeExit(probes)
}

func runProbes(ctx context.Context, client *dashboard.Client) []probe {
	var probes []probe

	err := client.Health(ctx)
	probes = append(probes, probe{name: "health", err: err})
	if err != nil {
		return probes
	}

	loc, err := client.Config(ctx)
	probes = append(probes, probe{name: "config", detail: loc.Name, err: err})

	tide, err := client.Tide(ctx)
	p := probe{name: "tide", err: err}
	if err == nil {
		p.detail = fmt.Sprintf("%d predictions, %s", len(tide.Predictions), strings.ToLower(tide.Status.Direction))
	}
	probes = append(probes, p)

	w, err := client.Weather(ctx)
	p = probe{name: "weather", err: err}
	if err == nil {
		p.detail = w.Conditions
	}
	probes = append(probes, p)

	a, err := client.Astronomy(ctx)
	p = probe{name: "astronomy", err: err}
	if err == nil {
		p.detail = fmt.Sprintf("sunrise %s, %s", a.Sunrise, a.MoonPhase)
	}
	probes = append(probes, p)

	return probes
}

func printProbes(w io.Writer, backend string, probes []probe) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	bold := color.New(color.Bold)
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)

	_, _ = fmt.Fprintf(tw, "Backend: %s (%s)\n\n", backend, time.Now().Format(time.Kitchen))
	_, _ = fmt.Fprintln(tw, bold.Sprint("ENDPOINT")+"\t"+bold.Sprint("STATUS")+"\t"+bold.Sprint("DETAIL"))
	for _, p := range probes {
		status := green.Sprint("ok")
		detail := p.detail
		if p.err != nil {
			status = red.Sprint("failed")
			detail = p.err.Error()
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", p.name, status, detail)
	}
	return tw.Flush()
}

// probeExit maps probe results to an exit code.
func probeExit(probes []probe) error {
	if len(probes) == 0 || probes[0].err != nil {
		return &exitCodeError{code: ExitUnreachable, msg: "backend unreachable"}
	}
	failed := 0
	for _, p := range probes {
		if p.err != nil {
			failed++
		}
	}
	if failed > 0 {
		return &exitCodeError{code: ExitDegraded, msg: fmt.Sprintf("%d of %d endpoints failed", failed, len(probes))}
	}
	return nil
}
