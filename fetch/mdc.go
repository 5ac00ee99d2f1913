package fetch

import "context"

// Well-known diagnostic-context keys. Values at these keys drive the
// request-header injection described in §4.7.
const (
	MDCJobID         = "jobId"
	MDCApplicationID = "applicationId"
)

// MDC is an immutable diagnostic-context snapshot: a keyed string map
// correlating log lines and request headers across asynchronous work.
type MDC map[string]string

type mdcKeyType struct{}

var mdcKey mdcKeyType

// WithMDC returns a copy of ctx carrying mdc as the current diagnostic
// context.
func WithMDC(ctx context.Context, mdc MDC) context.Context {
	return context.WithValue(ctx, mdcKey, mdc)
}

// CurrentMDC returns the diagnostic context attached to ctx, or nil if
// none has been set.
func CurrentMDC(ctx context.Context) MDC {
	m, _ := ctx.Value(mdcKey).(MDC)
	return m
}

// Propagator captures a diagnostic-context snapshot at request-factory
// creation time and applies it around request execution.
//
// Because context.Context is immutable, the documented save/swap/restore
// contract (C10) needs no explicit restore step: Apply only ever returns a
// new, derived context for the call about to be made — the caller's own
// context value is never touched, so resuming it after the call already
// satisfies "restore on all exit paths".
type Propagator struct {
	snapshot MDC
}

// NewPropagator captures snapshot as the context this propagator applies.
func NewPropagator(snapshot MDC) *Propagator {
	return &Propagator{snapshot: snapshot}
}

// Apply returns a context carrying the propagator's captured snapshot if
// it differs from ctx's current diagnostic context; otherwise it returns
// ctx unchanged. Swapping only on a genuine difference is the documented
// intent — the source this was ported from swaps only when the snapshot
// and current context are equal, which is inverted and not reproduced
// here.
func (p *Propagator) Apply(ctx context.Context) context.Context {
	if p.snapshot == nil {
		return ctx
	}
	if mdcEqual(CurrentMDC(ctx), p.snapshot) {
		return ctx
	}
	return WithMDC(ctx, p.snapshot)
}

func mdcEqual(a, b MDC) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if b[k] != v {
			return false
		}
	}
	return true
}

// injectContextHeaders sets X-Request-ID/X-Job-ID/X-Application-ID on
// prepared from mdc's jobId/applicationId entries, if present. Called
// before every attempt, not just the first, so late-bound context is
// observed on retries.
func injectContextHeaders(prepared PreparedRequest, mdc MDC) {
	if mdc == nil {
		return
	}
	h := prepared.Header()
	if jobID := mdc[MDCJobID]; jobID != "" {
		h["X-Request-ID"] = []string{jobID}
		h["X-Job-ID"] = []string{jobID}
	}
	if appID := mdc[MDCApplicationID]; appID != "" {
		h["X-Application-ID"] = []string{appID}
	}
}
