package ratelimit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllow_WithinBurst(t *testing.T) {
	krl := New(1, 3)
	defer krl.Stop()

	for i := range 3 {
		assert.True(t, krl.Allow("10.0.0.1"), "request %d within burst should pass", i)
	}
	assert.False(t, krl.Allow("10.0.0.1"), "request past burst should be rejected")
}

func TestAllow_IndependentKeys(t *testing.T) {
	krl := New(1, 1)
	defer krl.Stop()

	assert.True(t, krl.Allow("10.0.0.1"))
	assert.False(t, krl.Allow("10.0.0.1"))

	// A different key has its own bucket.
	assert.True(t, krl.Allow("10.0.0.2"))
}

func TestStop_Idempotent(t *testing.T) {
	krl := New(1, 1)
	krl.Stop()
	assert.NotPanics(t, func() { krl.Stop() })
}
