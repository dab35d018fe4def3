// Package remediation implements the remediation dispatcher (C5):
// the component the cascade engine calls exactly when a package's
// stored state transitions into Error. It issues a reconcile RPC to
// the external remediation service, at-least-once, with bounded
// exponential backoff and a dedup window that collapses repeated
// triggers while the package remains in Error.
package remediation

import (
	"context"
	"sync"
	"time"

	"github.com/cascadeio/cascade/pkg/log"
	"github.com/cascadeio/cascade/pkg/metrics"
	"github.com/cascadeio/cascade/pkg/rpc"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// backoffSchedule is the fixed retry schedule named in the
// concurrency design: 250ms, 1s, 5s, then a steady 30s cap.
var backoffSchedule = []time.Duration{
	250 * time.Millisecond,
	1 * time.Second,
	5 * time.Second,
}

const backoffCap = 30 * time.Second

var logger = log.WithComponent(log.ComponentRemediation)

// delayFor returns the backoff delay before retry attempt n (1-indexed).
func delayFor(attempt int) time.Duration {
	if attempt-1 < len(backoffSchedule) {
		return backoffSchedule[attempt-1]
	}
	return backoffCap
}

// Reconciler is the subset of the remediation client this dispatcher
// needs; satisfied by *rpc.RemediationClient and by test doubles.
type Reconciler interface {
	Reconcile(ctx context.Context, req *rpc.ReconcileRequest) (*rpc.ReconcileResponse, error)
}

// Dispatcher implements cascade.Remediator.
type Dispatcher struct {
	client     Reconciler
	cooldown   time.Duration
	callDelay  time.Duration // per-attempt RPC deadline
	shutdownCh chan struct{}
	wg         sync.WaitGroup

	mu      sync.Mutex
	inFlight map[string]time.Time // packageName -> last trigger time, while an attempt is outstanding or cooling down
}

// Config holds dispatcher tuning knobs.
type Config struct {
	// Cooldown is how long repeated triggers for the same package
	// collapse into the single outstanding call.
	Cooldown time.Duration
	// CallTimeout bounds each individual reconcile RPC attempt.
	CallTimeout time.Duration
}

// New builds a dispatcher over client. Zero-valued Config fields fall
// back to the defaults named in the concurrency design (30s cooldown,
// 10s per-call timeout).
func New(client Reconciler, cfg Config) *Dispatcher {
	if cfg.Cooldown <= 0 {
		cfg.Cooldown = 30 * time.Second
	}
	if cfg.CallTimeout <= 0 {
		cfg.CallTimeout = 10 * time.Second
	}
	return &Dispatcher{
		client:     client,
		cooldown:   cfg.Cooldown,
		callDelay:  cfg.CallTimeout,
		shutdownCh: make(chan struct{}),
		inFlight:   make(map[string]time.Time),
	}
}

// Trigger implements cascade.Remediator. It is fire-and-forget from
// the caller's perspective: the retry loop runs on its own goroutine
// and Trigger returns immediately, whether or not this call started
// a new attempt or was collapsed into an outstanding one.
func (d *Dispatcher) Trigger(ctx context.Context, packageName string) {
	if !d.shouldDispatch(packageName) {
		logger.Debug().Str("package", packageName).Msg("remediation trigger collapsed into outstanding dedup window")
		return
	}

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		d.dispatchWithRetry(packageName)
	}()
}

// shouldDispatch reports whether this trigger starts a new dispatch,
// recording the attempt if so. Repeated triggers within the cooldown
// window collapse into the one already running.
func (d *Dispatcher) shouldDispatch(packageName string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if last, ok := d.inFlight[packageName]; ok && time.Since(last) < d.cooldown {
		return false
	}
	d.inFlight[packageName] = time.Now()
	return true
}

// dispatchWithRetry retries the reconcile RPC with bounded exponential
// backoff until it succeeds, the trigger window goes stale (no Trigger
// call has renewed it within four cooldown periods), or the dispatcher
// is shut down.
func (d *Dispatcher) dispatchWithRetry(packageName string) {
	attempt := 0
	for {
		attempt++

		callCtx, cancel := context.WithTimeout(context.Background(), d.callDelay)
		_, err := d.client.Reconcile(callCtx, &rpc.ReconcileRequest{
			PackageName:   packageName,
			ObservedState: "Error",
			TriggeredAt:   timestamppb.Now(),
		})
		cancel()

		if err == nil {
			metrics.RemediationRequestsTotal.Inc()
			return
		}

		metrics.RemediationFailuresTotal.Inc()
		logger.Warn().Err(err).Str("package", packageName).Int("attempt", attempt).Msg("reconcile RPC failed")

		select {
		case <-time.After(delayFor(attempt)):
		case <-d.shutdownCh:
			logger.Warn().Str("package", packageName).Msg("remediation retry abandoned on shutdown")
			return
		}

		// Give up once four cooldown periods have elapsed without a
		// fresh trigger renewing the window: the package likely left
		// Error and the next transition, if any, will dispatch anew.
		d.mu.Lock()
		last, tracked := d.inFlight[packageName]
		stale := tracked && time.Since(last) > d.cooldown*4
		d.mu.Unlock()
		if stale {
			logger.Warn().Str("package", packageName).Msg("remediation retry abandoned, trigger window expired")
			return
		}
	}
}

// Shutdown cancels any in-flight retry loops and waits for them to
// return. Retries otherwise run until success or until the trigger
// window goes stale.
func (d *Dispatcher) Shutdown() {
	close(d.shutdownCh)
	d.wg.Wait()
}
