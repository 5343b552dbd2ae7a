package healthcheck

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"
)

// Component statuses.
const (
	StatusUp   = "up"
	StatusDown = "down"
)

// DefaultTimeout bounds one round of checks.
const DefaultTimeout = 2 * time.Second

// Result is the state of one component.
type Result struct {
	Status  string `json:"status"`
	Details any    `json:"details,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Up builds a healthy result.
func Up(details any) Result {
	return Result{Status: StatusUp, Details: details}
}

// Down builds an unhealthy result.
func Down(err error, details any) Result {
	r := Result{Status: StatusDown, Details: details}
	if err != nil {
		r.Error = err.Error()
	}
	return r
}

// Checker reports the state of one component.
type Checker func(ctx context.Context) Result

// Report is the body of GET /health.
type Report struct {
	Status     string            `json:"status"`
	Components map[string]Result `json:"components"`
}

// HealthCheck is the health check handler.
type HealthCheck struct {
	mu       sync.RWMutex
	checkers map[string]Checker
	timeout  time.Duration
}

// New creates a HealthCheck. A non-positive timeout uses DefaultTimeout.
func New(timeout time.Duration) *HealthCheck {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HealthCheck{
		checkers: map[string]Checker{},
		timeout:  timeout,
	}
}

// Register adds or replaces the checker of a component.
func (hc *HealthCheck) Register(name string, checker Checker) {
	hc.mu.Lock()
	defer hc.mu.Unlock()
	hc.checkers[name] = checker
}

// Check runs every checker concurrently.
func (hc *HealthCheck) Check(ctx context.Context) Report {
	ctx, cancel := context.WithTimeout(ctx, hc.timeout)
	defer cancel()

	hc.mu.RLock()
	checkers := make(map[string]Checker, len(hc.checkers))
	for name, checker := range hc.checkers {
		checkers[name] = checker
	}
	hc.mu.RUnlock()

	var (
		mu     sync.Mutex
		wg     sync.WaitGroup
		report = Report{Status: StatusUp, Components: make(map[string]Result, len(checkers))}
	)
	for name, checker := range checkers {
		wg.Add(1)
		go func(name string, checker Checker) {
			defer wg.Done()
			result := checker(ctx)

			mu.Lock()
			defer mu.Unlock()
			report.Components[name] = result
			if result.Status != StatusUp {
				report.Status = StatusDown
			}
		}(name, checker)
	}
	wg.Wait()

	return report
}

// Handler is used to control the flow of GET /health endpoint
func (hc *HealthCheck) Handler(h http.Handler) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		if IsHealthCheckRequest(r) {
			hc.ServeHTTP(w, r)

			return
		}

		h.ServeHTTP(w, r)
	}

	return http.HandlerFunc(fn)
}

// ServeHTTP serve http request for health check
func (hc *HealthCheck) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	report := hc.Check(r.Context())

	status := http.StatusOK
	if report.Status != StatusUp {
		status = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(report)
}

// IsHealthCheckRequest is used to check if the request is a health check request
func IsHealthCheckRequest(r *http.Request) bool {
	return r.Method == "GET" && r.URL.Path == "/health"
}
