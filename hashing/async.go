package hashing

import "context"

// MakeContext runs h.Make on a separate goroutine and waits for it or for
// ctx, whichever finishes first.
//
// bcrypt cannot be interrupted.  When ctx ends first MakeContext returns
// ctx.Err() at once and the computation finishes in the background; its
// result is discarded.
func MakeContext(ctx context.Context, h Hasher, password string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return offload(ctx, func() (string, error) { return h.Make(password) }, nil)
}

// VerifyContext runs h.Verify on a separate goroutine and waits for it or
// for ctx.  An abandoned verification reports [Failed] with ctx.Err().
func VerifyContext(ctx context.Context, h Hasher, password, hash string) (Outcome, error) {
	if err := ctx.Err(); err != nil {
		return Failed, err
	}
	return offload(ctx, func() (Outcome, error) { return h.Verify(password, hash) }, nil)
}

// Limiter caps the number of hash computations running at once, so a burst
// of logins cannot occupy every CPU.
//
// A slot is held until the underlying computation returns, including after
// the caller's context has ended.
type Limiter struct {
	h     Hasher
	slots chan struct{}
}

// NewLimiter returns a Limiter that runs at most n concurrent operations on h.
// n below 1 is treated as 1.
func NewLimiter(h Hasher, n int) *Limiter {
	if n < 1 {
		n = 1
	}
	return &Limiter{h: h, slots: make(chan struct{}, n)}
}

// Make waits for a free slot and then behaves like [MakeContext].
func (l *Limiter) Make(ctx context.Context, password string) (string, error) {
	if err := l.acquire(ctx); err != nil {
		return "", err
	}
	return offload(ctx, func() (string, error) { return l.h.Make(password) }, l.release)
}

// Verify waits for a free slot and then behaves like [VerifyContext].
func (l *Limiter) Verify(ctx context.Context, password, hash string) (Outcome, error) {
	if err := l.acquire(ctx); err != nil {
		return Failed, err
	}
	return offload(ctx, func() (Outcome, error) { return l.h.Verify(password, hash) }, l.release)
}

// InFlight returns the number of slots currently held.
func (l *Limiter) InFlight() int { return len(l.slots) }

func (l *Limiter) acquire(ctx context.Context) error {
	select {
	case l.slots <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (l *Limiter) release() { <-l.slots }

// offload runs fn on a new goroutine and calls after, if set, once fn has
// returned.  The result channel is buffered so an abandoned goroutine never
// blocks.
func offload[T any](ctx context.Context, fn func() (T, error), after func()) (T, error) {
	type result struct {
		v   T
		err error
	}
	done := make(chan result, 1)
	go func() {
		if after != nil {
			defer after()
		}
		v, err := fn()
		done <- result{v, err}
	}()
	select {
	case r := <-done:
		return r.v, r.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
