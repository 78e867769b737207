package ladder

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBudget(t *testing.T) {
	start := time.Now()
	clock := start
	b := &Budget{start: start, total: 9 * time.Second, now: func() time.Time { return clock }}

	assert.Equal(t, 9*time.Second, b.Remaining())
	assert.Equal(t, start.Add(9*time.Second), b.Deadline())
	assert.Equal(t, 2500*time.Millisecond, b.AttemptTimeout(2500*time.Millisecond, 250*time.Millisecond))

	clock = start.Add(8 * time.Second)
	assert.Equal(t, time.Second, b.Remaining())
	assert.Equal(t, 750*time.Millisecond, b.AttemptTimeout(2500*time.Millisecond, 250*time.Millisecond))

	clock = start.Add(10 * time.Second)
	assert.Equal(t, time.Duration(0), b.Remaining())
	assert.Equal(t, time.Duration(0), b.AttemptTimeout(time.Second, 250*time.Millisecond))
}

func TestBudget_Clamp(t *testing.T) {
	start := time.Now()
	b := NewBudget(start, 9*time.Second)

	assert.Same(t, b, b.Clamp(time.Time{}, false))
	assert.Same(t, b, b.Clamp(start.Add(20*time.Second), true))

	clamped := b.Clamp(start.Add(3*time.Second), true)
	assert.Equal(t, start.Add(3*time.Second), clamped.Deadline())
}
