package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAttemptLimiterLocksAfterLimit(t *testing.T) {
	l := NewAttemptLimiter(3, time.Minute)

	assert.False(t, l.IsLimited("alice"))
	l.Fail("alice")
	l.Fail("alice")
	assert.False(t, l.IsLimited("alice"))
	l.Fail("alice")
	assert.True(t, l.IsLimited("alice"))

	// Keys are independent.
	assert.False(t, l.IsLimited("bob"))
}

func TestAttemptLimiterReset(t *testing.T) {
	l := NewAttemptLimiter(3, time.Minute)
	for i := 0; i < 3; i++ {
		l.Fail("alice")
	}
	assert.True(t, l.IsLimited("alice"))

	l.Reset("alice")
	assert.False(t, l.IsLimited("alice"))
}

func TestAttemptLimiterWindowExpiry(t *testing.T) {
	l := NewAttemptLimiter(2, 10*time.Millisecond)
	l.Fail("alice")
	l.Fail("alice")
	assert.True(t, l.IsLimited("alice"))

	time.Sleep(20 * time.Millisecond)
	assert.False(t, l.IsLimited("alice"))

	// A failure after expiry starts a fresh window.
	l.Fail("alice")
	assert.False(t, l.IsLimited("alice"))
}
