package otp

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"
)

// PlanRequest describes one trip-planning query.
type PlanRequest struct {
	From LatLon
	To   LatLon
	// Modes is the OTP mode set, e.g. WALK,TRANSIT. Empty means the engine
	// default.
	Modes           []string
	Date            time.Time
	ArriveBy        bool
	MaxWalkDistance float64
	NumItineraries  int
	Wheelchair      bool
}

// values renders the request as plan endpoint query parameters.
func (r PlanRequest) values() url.Values {
	q := url.Values{}
	q.Set("fromPlace", r.From.String())
	q.Set("toPlace", r.To.String())
	if len(r.Modes) > 0 {
		q.Set("mode", strings.Join(r.Modes, ","))
	}
	if !r.Date.IsZero() {
		q.Set("date", planDate(r.Date))
		q.Set("time", planClock(r.Date))
	}
	q.Set("arriveBy", strconv.FormatBool(r.ArriveBy))
	if r.MaxWalkDistance > 0 {
		q.Set("maxWalkDistance", strconv.FormatFloat(r.MaxWalkDistance, 'f', -1, 64))
	}
	if r.NumItineraries > 0 {
		q.Set("numItineraries", strconv.Itoa(r.NumItineraries))
	}
	if r.Wheelchair {
		q.Set("wheelchair", "true")
	}
	return q
}

// Plan asks the engine for itineraries between two places. A routing failure
// reported by the engine comes back as a *PlanError.
func (c *Connection) Plan(req PlanRequest) (*TripPlan, error) {
	body, status, err := c.get("/plan", req.values())
	if err != nil {
		return nil, err
	}
	var env planEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		if status != http.StatusOK {
			return nil, fmt.Errorf("HTTP %d from %s/plan", status, c.RouterURL())
		}
		return nil, fmt.Errorf("parsing plan response: %w", err)
	}
	if env.Error != nil {
		return nil, env.Error
	}
	if env.Plan == nil {
		return nil, fmt.Errorf("plan response carried neither a plan nor an error")
	}
	return env.Plan, nil
}

// BatchResult pairs one request's outcome with its position in the input.
type BatchResult struct {
	Index int
	Plan  *TripPlan
	Err   error
}

// PlanBatch runs many plan requests through a bounded worker pool and returns
// the results in input order. workers <= 0 falls back to serial execution.
func (c *Connection) PlanBatch(reqs []PlanRequest, workers int) []BatchResult {
	if workers <= 0 {
		workers = 1
	}
	if workers > len(reqs) {
		workers = len(reqs)
	}
	results := make([]BatchResult, len(reqs))
	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				plan, err := c.Plan(reqs[i])
				results[i] = BatchResult{Index: i, Plan: plan, Err: err}
			}
		}()
	}
	for i := range reqs {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	return results
}
