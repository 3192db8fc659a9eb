// Package health implements Kubernetes-style liveness and readiness probes.
//
// Registered checks run periodically in the background. Thresholds guard
// against flapping: a check flips to unhealthy only after failing
// consecutively failureThreshold times, and back to healthy after
// successThreshold consecutive passes.
package health

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

// CheckFunc probes one component. A nil return means healthy.
type CheckFunc func(ctx context.Context) error

type probe struct {
	name    string
	timeout time.Duration
	check   CheckFunc

	failureThreshold int
	successThreshold int

	// healthy and lastErr are read by HTTP handlers on arbitrary goroutines.
	healthy atomic.Bool
	lastErr atomic.Pointer[error]

	// counters are touched only by the single runner goroutine.
	fails int
	oks   int
}

func (p *probe) run(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	err := p.check(ctx)
	p.lastErr.Store(&err)

	if err != nil {
		p.oks = 0
		p.fails++
		if p.fails >= p.failureThreshold {
			p.healthy.Store(false)
		}
		return
	}

	p.fails = 0
	p.oks++
	if p.oks >= p.successThreshold {
		p.healthy.Store(true)
	}
}

func (p *probe) failure() (string, bool) {
	if p.healthy.Load() {
		return "", false
	}
	if errp := p.lastErr.Load(); errp != nil && *errp != nil {
		return (*errp).Error(), true
	}
	return "check is unhealthy", true
}

// Health tracks liveness and readiness probes for a service.
type Health struct {
	ready atomic.Bool

	mu        sync.RWMutex
	liveness  []*probe
	readiness []*probe
	cancel    context.CancelFunc
}

// New creates a Health in the not-ready state. Call SetReady(true) once
// initialization completes.
func New() *Health {
	return &Health{}
}

func newProbe(name string, timeout time.Duration, check CheckFunc) *probe {
	p := &probe{
		name:             name,
		timeout:          timeout,
		check:            check,
		failureThreshold: 3,
		successThreshold: 1,
	}
	// Assumed healthy until the first results arrive.
	p.healthy.Store(true)
	return p
}

// AddLivenessCheck registers a check deciding whether the process should be
// restarted.
func (h *Health) AddLivenessCheck(name string, timeout time.Duration, check CheckFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.liveness = append(h.liveness, newProbe(name, timeout, check))
}

// AddReadinessCheck registers a check deciding whether the service may
// receive traffic.
func (h *Health) AddReadinessCheck(name string, timeout time.Duration, check CheckFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.readiness = append(h.readiness, newProbe(name, timeout, check))
}

// Start runs all registered probes on a single background goroutine at the
// given interval, beginning with an immediate pass.
func (h *Health) Start(ctx context.Context, interval time.Duration) {
	ctx, cancel := context.WithCancel(ctx)

	h.mu.Lock()
	h.cancel = cancel
	probes := make([]*probe, 0, len(h.liveness)+len(h.readiness))
	probes = append(probes, h.liveness...)
	probes = append(probes, h.readiness...)
	h.mu.Unlock()

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for _, p := range probes {
			p.run(ctx)
		}
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				for _, p := range probes {
					p.run(ctx)
				}
			}
		}
	}()
}

// Stop cancels the background probe runner. Safe to call repeatedly.
func (h *Health) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.cancel != nil {
		h.cancel()
		h.cancel = nil
	}
}

// SetReady flips the manual readiness gate. Set false during graceful
// shutdown to drain traffic before the listener closes.
func (h *Health) SetReady(ready bool) {
	h.ready.Store(ready)
}

// IsReady reports whether the service is marked ready and every readiness
// probe is passing.
func (h *Health) IsReady() bool {
	if !h.ready.Load() {
		return false
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, p := range h.readiness {
		if _, failed := p.failure(); failed {
			return false
		}
	}
	return true
}

type statusResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// LiveEndpoint serves the /livez probe.
func (h *Health) LiveEndpoint(w http.ResponseWriter, _ *http.Request) {
	h.mu.RLock()
	probes := append([]*probe(nil), h.liveness...)
	h.mu.RUnlock()

	writeStatus(w, failures(probes))
}

// ReadyEndpoint serves the /readyz probe. It fails while the manual
// readiness gate is down, regardless of probe results.
func (h *Health) ReadyEndpoint(w http.ResponseWriter, _ *http.Request) {
	h.mu.RLock()
	probes := append([]*probe(nil), h.readiness...)
	h.mu.RUnlock()

	fs := failures(probes)
	if !h.ready.Load() {
		fs["_readiness"] = "service is not ready"
	}
	writeStatus(w, fs)
}

func failures(probes []*probe) map[string]string {
	fs := make(map[string]string)
	for _, p := range probes {
		if msg, failed := p.failure(); failed {
			fs[p.name] = msg
		}
	}
	return fs
}

func writeStatus(w http.ResponseWriter, fs map[string]string) {
	w.Header().Set("Content-Type", "application/json")

	resp := statusResponse{Status: "ok"}
	code := http.StatusOK
	if len(fs) > 0 {
		resp = statusResponse{Status: "unhealthy", Checks: fs}
		code = http.StatusServiceUnavailable
	}

	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(resp)
}
