package backoff

import "time"

// Calculator binds a Strategy to the retry parameters shared by the client
// and retry policies, so the backoff math lives in one place.
type Calculator struct {
	strategy Strategy
}

// NewCalculator creates a calculator using the given strategy.
func NewCalculator(strategy Strategy) *Calculator {
	return &Calculator{strategy: strategy}
}

// Calculate computes the backoff duration for the given attempt.
func (c *Calculator) Calculate(attempt int, initialBackoff, maxBackoff time.Duration, multiplier, jitter float64) time.Duration {
	return c.strategy.Calculate(attempt, initialBackoff, maxBackoff, multiplier, jitter)
}

// NewExponentialJitterCalculator returns a calculator with the default
// exponential jitter strategy.
func NewExponentialJitterCalculator() *Calculator {
	return NewCalculator(ExponentialJitter{})
}

// NewDecorrelatedJitterCalculator returns a calculator with AWS-style
// decorrelated jitter.
func NewDecorrelatedJitterCalculator() *Calculator {
	return NewCalculator(DecorrelatedJitter{})
}
