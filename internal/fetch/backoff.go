package fetch

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/cenkalti/backoff/v5"
)

// RetryDelay returns the jittered exponential delay before retrying the given
// attempt: floor((2^attempt + rand[0,1)) * 1000) milliseconds.
func RetryDelay(attempt int) time.Duration {
	return retryDelay(attempt, rand.Float64(), time.Second)
}

// retryDelay computes the delay for attempt with the given jitter in [0,1).
// unit is the length of one backoff step; production uses one second.
func retryDelay(attempt int, jitter float64, unit time.Duration) time.Duration {
	steps := math.Floor((math.Pow(2, float64(attempt)) + jitter) * 1000)
	return time.Duration(steps) * unit / 1000
}

// attemptBackOff is a backoff.BackOff driven by the request attempt count.
// It stops once the attempt count exceeds MaxAttempt.
type attemptBackOff struct {
	first   int
	attempt int
	delay   func(attempt int) time.Duration
}

var _ backoff.BackOff = (*attemptBackOff)(nil)

func newAttemptBackOff(first int, delay func(int) time.Duration) *attemptBackOff {
	return &attemptBackOff{first: first, attempt: first, delay: delay}
}

func (b *attemptBackOff) NextBackOff() time.Duration {
	if b.attempt > MaxAttempt {
		return backoff.Stop
	}
	d := b.delay(b.attempt)
	b.attempt++
	return d
}

func (b *attemptBackOff) Reset() {
	b.attempt = b.first
}
