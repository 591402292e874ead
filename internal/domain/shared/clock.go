package shared

// StepClock is the scheduler-owned discrete step counter
type StepClock struct {
	t int
}

// NewStepClock creates a clock starting at step 0
func NewStepClock() *StepClock {
	return &StepClock{}
}

// Time returns the current step
func (c *StepClock) Time() int {
	return c.t
}

// Advance moves the clock forward one step and returns the new time
func (c *StepClock) Advance() int {
	c.t++
	return c.t
}
