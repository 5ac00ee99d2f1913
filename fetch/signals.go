package fetch

import "github.com/zoobzio/capitan"

// Signal constants for the retrying HTTP resolver, namespaced per the
// teacher's own <connector>.<event> convention.
const (
	SignalFetchAttempt   capitan.Signal = "fetch.retry.attempt"
	SignalFetchRetryWait capitan.Signal = "fetch.retry.wait"
	SignalFetchExhausted capitan.Signal = "fetch.retry.exhausted"
	SignalMDCSwap        capitan.Signal = "fetch.mdc.swap"
)

var (
	FieldFetchURI     = capitan.NewStringKey("uri")
	FieldFetchAttempt = capitan.NewIntKey("attempt")
	FieldFetchStatus  = capitan.NewIntKey("status")
)
