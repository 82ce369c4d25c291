package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("s3cret!")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret!", hash)
	assert.True(t, CheckPasswordHash("s3cret!", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}

func TestCacheExpiry(t *testing.T) {
	c, err := NewCache(2, time.Minute)
	require.NoError(t, err)

	hits, misses := 0, 0
	c.OnHit = func() { hits++ }
	c.OnMiss = func() { misses++ }

	c.Set("a", 1)
	assert.Equal(t, 1, c.Get("a"))

	c.SetWithTTL("b", 2, -time.Second)
	assert.Nil(t, c.Get("b"))
	assert.Equal(t, 1, c.Len(), "expired entries are evicted on read")

	c.Delete("a")
	assert.Nil(t, c.Get("a"))

	assert.Equal(t, 1, hits)
	assert.Equal(t, 2, misses)
}

func TestCacheEvictsLeastRecentlyUsed(t *testing.T) {
	c, err := NewCache(2, time.Minute)
	require.NoError(t, err)

	c.Set("a", 1)
	c.Set("b", 2)
	c.Get("a")
	c.Set("c", 3)

	assert.Nil(t, c.Get("b"))
	assert.Equal(t, 1, c.Get("a"))
	assert.Equal(t, 3, c.Get("c"))
}

func TestRenderMarkdown(t *testing.T) {
	out := string(RenderMarkdown("# Launch\n\nWe **raised** a seed round.<script>alert(1)</script>"))
	assert.Contains(t, out, "<h1")
	assert.Contains(t, out, "<strong>raised</strong>")
	assert.NotContains(t, out, "<script>")
	assert.Empty(t, string(RenderMarkdown("")))
}
