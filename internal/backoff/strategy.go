package backoff

import (
	"math/rand"
	"time"
)

// Strategy computes the delay before a retry attempt.
type Strategy interface {
	// Calculate returns the backoff duration for the given attempt number
	// and parameters. Attempt numbering starts at 0.
	Calculate(attempt int, initialBackoff, maxBackoff time.Duration, multiplier, jitter float64) time.Duration
}

// ExponentialJitter grows the delay by multiplier each attempt and adds
// uniform jitter scaled by the jitter factor.
type ExponentialJitter struct{}

func (ExponentialJitter) Calculate(attempt int, initialBackoff, maxBackoff time.Duration, multiplier, jitter float64) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	// Cap the exponent to avoid overflow.
	if attempt > 30 {
		attempt = 30
	}

	delay := time.Duration(float64(initialBackoff) * pow(multiplier, attempt))
	if delay < 0 || delay > maxBackoff {
		delay = maxBackoff
	}

	jitter = clampJitter(jitter)
	if jitter > 0 {
		amount := time.Duration(float64(delay) * jitter * rand.Float64())
		if delay+amount > maxBackoff {
			delay = maxBackoff
		} else {
			delay += amount
		}
	}
	return delay
}

// DecorrelatedJitter implements AWS-style decorrelated jitter: a random delay
// between the base and base*3^attempt, capped at maxBackoff. It spreads
// retries of competing callers more evenly than exponential jitter.
type DecorrelatedJitter struct{}

func (DecorrelatedJitter) Calculate(attempt int, initialBackoff, maxBackoff time.Duration, multiplier, jitter float64) time.Duration {
	if attempt <= 0 {
		return initialBackoff
	}
	if attempt > 10 {
		attempt = 10
	}

	base := float64(initialBackoff)
	upper := base * pow(3.0, attempt)
	if upper > float64(maxBackoff) || upper < 0 {
		upper = float64(maxBackoff)
	}
	if upper < base {
		upper = base
	}

	delay := time.Duration(base + rand.Float64()*(upper-base))
	if delay < 0 || delay > maxBackoff {
		delay = maxBackoff
	}
	return delay
}

func clampJitter(jitter float64) float64 {
	if jitter < 0 {
		return 0
	}
	if jitter > 1 {
		return 1
	}
	return jitter
}

func pow(base float64, exponent int) float64 {
	result := 1.0
	for i := 0; i < exponent; i++ {
		result *= base
	}
	return result
}
