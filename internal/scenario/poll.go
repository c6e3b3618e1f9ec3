package scenario

import (
	"context"
	"time"

	apperrors "github.com/webgrid/gridsmoke/internal/errors"
	"github.com/webgrid/gridsmoke/internal/webdriver"
)

const (
	// DefaultPollInterval is the delay between polled find attempts.
	DefaultPollInterval = 500 * time.Millisecond
	// DefaultPollTimeout bounds how long a polled locate keeps retrying.
	DefaultPollTimeout = 20 * time.Second
)

// PollPolicy parameterizes a polled locate. Polling is an explicit retry
// loop local to the locate step; it never mutates session-wide wait
// configuration beyond disabling the implicit wait, so poll behavior stays
// a pure function of these inputs.
type PollPolicy struct {
	// Interval is the delay between find attempts.
	Interval time.Duration
	// Timeout bounds the whole poll; exceeding it is a terminal failure.
	Timeout time.Duration
}

// withDefaults fills zero fields with the package defaults.
func (p PollPolicy) withDefaults() PollPolicy {
	if p.Interval <= 0 {
		p.Interval = DefaultPollInterval
	}
	if p.Timeout <= 0 {
		p.Timeout = DefaultPollTimeout
	}
	return p
}

// PollElements repeatedly attempts to find elements matching the selector on
// a fixed interval until at least one matches or the poll timeout elapses.
// The session's implicit wait is disabled first so the only waiting is the
// explicit loop. Pages whose relevant content renders asynchronously after
// initial load need this.
//
// A remote "no such element" response counts as a miss and is retried; any
// other error is terminal immediately.
func PollElements(ctx context.Context, sess webdriver.Session, by, selector string, p PollPolicy) ([]webdriver.Element, error) {
	p = p.withDefaults()
	if err := sess.SetImplicitWait(ctx, 0); err != nil {
		return nil, err
	}

	deadline := time.Now().Add(p.Timeout)
	for {
		elems, err := sess.FindElements(ctx, by, selector)
		if err != nil && !webdriver.IsNoSuchElement(err) {
			return nil, err
		}
		if len(elems) > 0 {
			return elems, nil
		}
		if time.Now().Add(p.Interval).After(deadline) {
			return nil, apperrors.NotFoundError{Selector: selector, Waited: p.Timeout}
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(p.Interval):
		}
	}
}

// FirstMatching scans elements in order and returns the first one whose text
// satisfies match. It is not an error for only a subset of the elements to
// match; found reports whether any did.
func FirstMatching(ctx context.Context, elems []webdriver.Element, match func(text string) bool) (el webdriver.Element, found bool, err error) {
	for _, candidate := range elems {
		text, err := candidate.Text(ctx)
		if err != nil {
			return nil, false, err
		}
		if match(text) {
			return candidate, true, nil
		}
	}
	return nil, false, nil
}
