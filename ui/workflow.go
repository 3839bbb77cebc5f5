package ui

import (
	"context"
	"errors"

	"scribetui/api"
)

// requestPhase names the lifecycle states every async screen moves through.
// Exactly one holds at a time; while pending, the screen's controls are
// disabled and no second request can be started.
type requestPhase int

const (
	phaseIdle requestPhase = iota
	phaseValidating
	phasePending
	phaseSucceeded
	phaseFailed
)

// inflight tracks a workflow's single outstanding request. Results are
// tagged with a generation number; a result whose generation no longer
// matches is from a torn-down screen and must be dropped, never applied.
type inflight struct {
	phase  requestPhase
	gen    int
	cancel context.CancelFunc
	errMsg string
}

// start cancels any previous request, bumps the generation and enters
// pending. The returned context is cancelled by teardown.
func (f *inflight) start() (context.Context, int) {
	if f.cancel != nil {
		f.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	f.gen++
	f.cancel = cancel
	f.phase = phasePending
	f.errMsg = ""
	return ctx, f.gen
}

// stale reports whether a result message belongs to a superseded request.
func (f *inflight) stale(gen int) bool {
	return gen != f.gen
}

func (f *inflight) pending() bool {
	return f.phase == phasePending
}

func (f *inflight) release() {
	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
}

func (f *inflight) succeed() {
	f.phase = phaseSucceeded
	f.errMsg = ""
	f.release()
}

func (f *inflight) fail(msg string) {
	f.phase = phaseFailed
	f.errMsg = msg
	f.release()
}

// reset returns to idle, clearing any error. Called when the user edits a
// field after a failure.
func (f *inflight) reset() {
	f.phase = phaseIdle
	f.errMsg = ""
}

// teardown cancels the in-flight request (if any) and invalidates its
// generation so a late response cannot touch the screen.
func (f *inflight) teardown() {
	f.release()
	f.gen++
	f.phase = phaseIdle
	f.errMsg = ""
}

const networkErrorMessage = "Network error, please try again"

// canceledResult reports whether an error came from our own cancellation;
// such results are dropped, never shown.
func canceledResult(err error) bool {
	return errors.Is(err, context.Canceled)
}

// remoteErrorMessage maps a request error to what the user sees: the server
// message verbatim, the generic fallback when the body carried none, or the
// fixed network message for transport failures.
func remoteErrorMessage(err error, generic string) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		if apiErr.Message != "" {
			return apiErr.Message
		}
		return generic
	}
	return networkErrorMessage
}
