package framework

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBucketTake(t *testing.T) {
	now := time.Unix(1000, 0)
	b := NewBucket(10 * time.Second)
	b.now = func() time.Time { return now }

	_, ok := b.Take(1)
	require.True(t, ok)

	wait, ok := b.Take(1)
	assert.False(t, ok)
	assert.Equal(t, 10*time.Second, wait)

	// Other users have their own cooldown.
	_, ok = b.Take(2)
	assert.True(t, ok)

	now = now.Add(10 * time.Second)
	_, ok = b.Take(1)
	assert.True(t, ok)
}
