package fetch

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/zoobzio/capitan"
	"github.com/zoobzio/clockz"
	"github.com/zoobzio/hookz"
	"github.com/zoobzio/metricz"
	"github.com/zoobzio/tracez"
)

// Metric keys for the RetryingResolver.
const (
	MetricAttemptsTotal  = metricz.Key("fetch.attempts.total")
	MetricSuccessesTotal = metricz.Key("fetch.successes.total")
	MetricFailuresTotal  = metricz.Key("fetch.failures.total")
	MetricAttemptCurrent = metricz.Key("fetch.attempt.current")
)

// Span names and tags for the RetryingResolver.
const (
	SpanResolve = tracez.Key("fetch.resolve")
	SpanAttempt = tracez.Key("fetch.attempt")

	TagURI         = tracez.Tag("fetch.uri")
	TagMaxAttempts = tracez.Tag("fetch.max_attempts")
	TagAttempt     = tracez.Tag("fetch.attempt")
	TagStatus      = tracez.Tag("fetch.status")
	TagSuccess     = tracez.Tag("fetch.success")
	TagError       = tracez.Tag("fetch.error")
)

// Hook event keys for the RetryingResolver.
const (
	EventAttempt   = hookz.Key("fetch.attempt")
	EventSuccess   = hookz.Key("fetch.success")
	EventExhausted = hookz.Key("fetch.exhausted")
)

// AttemptEvent is emitted via hookz for each attempt and for the final
// success/exhaustion outcome, mirroring pipz's RetryEvent/BackoffEvent
// shape.
type AttemptEvent struct {
	URI           string
	AttemptNumber int
	MaxAttempts   int
	Status        int
	Err           error
	Success       bool
	Timestamp     time.Time
}

// ResolverOption configures a RetryingResolver at construction time.
type ResolverOption func(*RetryingResolver)

// WithClock overrides the resolver's clock, for deterministic retry tests.
func WithClock(clock clockz.Clock) ResolverOption {
	return func(r *RetryingResolver) { r.clock = clock }
}

// WithPropagator attaches a captured diagnostic-context snapshot the
// resolver applies around every attempt.
func WithPropagator(p *Propagator) ResolverOption {
	return func(r *RetryingResolver) { r.propagator = p }
}

// WithConfigurators registers request-configurator callbacks, run in
// order before every attempt.
func WithConfigurators(cfgs ...Configurator) ResolverOption {
	return func(r *RetryingResolver) { r.configurators = cfgs }
}

// RetryingResolver executes a Request against a TransportFactory with
// bounded retry over 5xx responses and transport errors (C9).
type RetryingResolver struct {
	mu sync.RWMutex

	factory       TransportFactory
	propagator    *Propagator
	configurators []Configurator
	maxAttempts   int
	retryInterval time.Duration
	clock         clockz.Clock

	metrics *metricz.Registry
	tracer  *tracez.Tracer
	hooks   *hookz.Hooks[AttemptEvent]
}

// NewRetryingResolver creates a resolver with the given attempt budget
// (clamped to at least 1) and inter-attempt sleep.
func NewRetryingResolver(factory TransportFactory, maxAttempts int, retryInterval time.Duration, opts ...ResolverOption) *RetryingResolver {
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	metrics := metricz.New()
	metrics.Counter(MetricAttemptsTotal)
	metrics.Counter(MetricSuccessesTotal)
	metrics.Counter(MetricFailuresTotal)
	metrics.Gauge(MetricAttemptCurrent)

	r := &RetryingResolver{
		factory:       factory,
		maxAttempts:   maxAttempts,
		retryInterval: retryInterval,
		clock:         clockz.RealClock,
		metrics:       metrics,
		tracer:        tracez.New(),
		hooks:         hookz.New[AttemptEvent](),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// OnAttempt registers a handler called after each attempt completes.
func (r *RetryingResolver) OnAttempt(handler func(context.Context, AttemptEvent) error) error {
	_, err := r.hooks.Hook(EventAttempt, handler)
	return err
}

// OnSuccess registers a handler called when an attempt succeeds.
func (r *RetryingResolver) OnSuccess(handler func(context.Context, AttemptEvent) error) error {
	_, err := r.hooks.Hook(EventSuccess, handler)
	return err
}

// OnExhausted registers a handler called when all attempts fail.
func (r *RetryingResolver) OnExhausted(handler func(context.Context, AttemptEvent) error) error {
	_, err := r.hooks.Hook(EventExhausted, handler)
	return err
}

// Metrics returns the resolver's metrics registry.
func (r *RetryingResolver) Metrics() *metricz.Registry { return r.metrics }

// Tracer returns the resolver's tracer.
func (r *RetryingResolver) Tracer() *tracez.Tracer { return r.tracer }

// Close shuts down the resolver's observability components.
func (r *RetryingResolver) Close() error {
	r.tracer.Close()
	r.hooks.Close()
	return nil
}

// Do executes req, retrying per the resolver's policy. req may be
// executed at most once.
func (r *RetryingResolver) Do(ctx context.Context, req *Request) (*Response, error) {
	if err := req.markExecuted(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	maxAttempts := r.maxAttempts
	retryInterval := r.retryInterval
	clock := r.clock
	propagator := r.propagator
	configurators := r.configurators
	r.mu.RUnlock()

	ctx, span := r.tracer.StartSpan(ctx, SpanResolve)
	span.SetTag(TagURI, req.URI())
	span.SetTag(TagMaxAttempts, fmt.Sprintf("%d", maxAttempts))
	defer span.Finish()

	req.mu.Lock()
	if err := req.preparedLocked(ctx, r.factory); err != nil {
		req.mu.Unlock()
		return nil, err
	}
	prepared := req.prepared
	req.mu.Unlock()

	var lastErr error
	var lastStatus int

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		r.metrics.Gauge(MetricAttemptCurrent).Set(float64(attempt))
		attemptCtx, attemptSpan := r.tracer.StartSpan(ctx, SpanAttempt)
		attemptSpan.SetTag(TagAttempt, fmt.Sprintf("%d", attempt))
		r.metrics.Counter(MetricAttemptsTotal).Inc()

		for _, cfg := range configurators {
			cfg(prepared)
		}

		callCtx := attemptCtx
		if propagator != nil {
			swapped := propagator.Apply(attemptCtx)
			if swapped != attemptCtx {
				capitan.Info(ctx, SignalMDCSwap, FieldFetchURI.Field(req.URI()))
			}
			callCtx = swapped
		}
		injectContextHeaders(prepared, CurrentMDC(callCtx))

		resp, err := prepared.Execute(callCtx)
		status := 0
		if resp != nil {
			status = resp.StatusCode
		}
		success := err == nil && status < 500

		attemptSpan.SetTag(TagSuccess, fmt.Sprintf("%v", success))
		if err != nil {
			attemptSpan.SetTag(TagError, err.Error())
		}
		if resp != nil {
			attemptSpan.SetTag(TagStatus, fmt.Sprintf("%d", status))
		}
		attemptSpan.Finish()

		if r.hooks.ListenerCount(EventAttempt) > 0 {
			_ = r.hooks.Emit(ctx, EventAttempt, AttemptEvent{ //nolint:errcheck
				URI: req.URI(), AttemptNumber: attempt, MaxAttempts: maxAttempts,
				Status: status, Err: err, Success: success, Timestamp: clock.Now(),
			})
		}
		capitan.Info(ctx, SignalFetchAttempt, FieldFetchURI.Field(req.URI()), FieldFetchAttempt.Field(attempt), FieldFetchStatus.Field(status))

		if success {
			r.metrics.Counter(MetricSuccessesTotal).Inc()
			r.metrics.Gauge(MetricAttemptCurrent).Set(0)
			span.SetTag(TagSuccess, "true")
			if r.hooks.ListenerCount(EventSuccess) > 0 {
				_ = r.hooks.Emit(ctx, EventSuccess, AttemptEvent{ //nolint:errcheck
					URI: req.URI(), AttemptNumber: attempt, MaxAttempts: maxAttempts,
					Status: status, Success: true, Timestamp: clock.Now(),
				})
			}
			return resp, nil
		}

		lastErr, lastStatus = err, status
		if attempt == maxAttempts {
			break
		}

		capitan.Warn(ctx, SignalFetchRetryWait, FieldFetchURI.Field(req.URI()), FieldFetchAttempt.Field(attempt))
		select {
		case <-callCtx.Done():
			r.metrics.Gauge(MetricAttemptCurrent).Set(0)
			return nil, &Error{Kind: InterruptedDuringRetry, URI: req.URI(), Cause: callCtx.Err()}
		case <-clock.After(retryInterval):
		}
	}

	r.metrics.Counter(MetricFailuresTotal).Inc()
	r.metrics.Gauge(MetricAttemptCurrent).Set(0)
	span.SetTag(TagSuccess, "false")

	if r.hooks.ListenerCount(EventExhausted) > 0 {
		_ = r.hooks.Emit(ctx, EventExhausted, AttemptEvent{ //nolint:errcheck
			URI: req.URI(), MaxAttempts: maxAttempts, Status: lastStatus, Err: lastErr, Timestamp: clock.Now(),
		})
	}
	capitan.Error(ctx, SignalFetchExhausted, FieldFetchURI.Field(req.URI()), FieldFetchStatus.Field(lastStatus))

	if lastErr != nil {
		return nil, &Error{Kind: RetryExhaustedTransport, URI: req.URI(), Cause: lastErr}
	}
	return nil, &Error{Kind: RetryExhausted5xx, URI: req.URI(), Status: lastStatus}
}
