package memcache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheSetGet(t *testing.T) {
	c := New(time.Minute, 0)
	defer c.Close()

	c.Set("menu:r1", []string{"tacos"}, 0)
	v, ok := c.Get("menu:r1")
	require.True(t, ok)
	assert.Equal(t, []string{"tacos"}, v)

	_, ok = c.Get("menu:r2")
	assert.False(t, ok)
}

func TestCacheExpiry(t *testing.T) {
	c := New(time.Minute, 0)
	defer c.Close()

	base := time.Now()
	c.now = func() time.Time { return base }
	c.Set("key", "value", 10*time.Second)

	_, ok := c.Get("key")
	require.True(t, ok)

	c.now = func() time.Time { return base.Add(11 * time.Second) }
	_, ok = c.Get("key")
	assert.False(t, ok)
	assert.Zero(t, c.Len())
}

func TestCacheDeleteAndFlush(t *testing.T) {
	c := New(time.Minute, 0)
	defer c.Close()

	c.Set("a", 1, 0)
	c.Set("b", 2, 0)
	c.Delete("a")
	_, ok := c.Get("a")
	assert.False(t, ok)

	c.Flush()
	assert.Zero(t, c.Len())
}
