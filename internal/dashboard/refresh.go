package dashboard

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
)

// OutlookDays is the length of the sun and moon strip.
const OutlookDays = 3

// Fetcher turns a domain and request stamp into a Result.
type Fetcher struct {
	client *Client
	now    func() time.Time
}

// NewFetcher wraps client. now stamps successful results.
func NewFetcher(client *Client, now func() time.Time) *Fetcher {
	if now == nil {
		now = time.Now
	}
	return &Fetcher{client: client, now: now}
}

// Fetch runs one request. Failures are reported in the Result, never
// returned.
func (f *Fetcher) Fetch(ctx context.Context, d Domain, seq uint64) Result {
	r := Result{Domain: d, Seq: seq}
	switch d {
	case DomainConfig:
		r.Value, r.Err = f.client.Config(ctx)
	case DomainHealth:
		r.Err = f.client.Health(ctx)
	case DomainTide:
		r.Value, r.Err = f.client.Tide(ctx)
	case DomainWeather:
		r.Value, r.Err = f.client.Weather(ctx)
	case DomainAstronomy:
		r.Value, r.Err = f.client.Astronomy(ctx)
	case DomainOutlook:
		r.Value, r.Err = f.client.Outlook(ctx, OutlookDays)
	default:
		r.Err = fmt.Errorf("unknown domain %q", d)
	}
	if r.Err != nil {
		r.Value = nil
	}
	r.At = f.now()
	return r
}

// Request is a domain plus the stamp it was issued with.
type Request struct {
	Domain Domain
	Seq    uint64
}

// FetchAll runs reqs concurrently and returns their results in request
// order. It waits for every fetch; one failure does not cancel the others.
func (f *Fetcher) FetchAll(ctx context.Context, reqs []Request) []Result {
	results := make([]Result, len(reqs))
	var g errgroup.Group
	for i, req := range reqs {
		g.Go(func() error {
			results[i] = f.Fetch(ctx, req.Domain, req.Seq)
			return nil
		})
	}
	_ = g.Wait()
	return results
}
