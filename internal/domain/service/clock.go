package service

import "time"

// Clock abstracts wall-clock reads so the battle state machine and the
// achievement evaluator stay deterministic under test.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}
