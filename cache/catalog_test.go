package cache

import (
	"context"
	"net/url"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCatalog(t *testing.T) (*Catalog, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewCatalog(client, time.Minute), mr
}

func TestKeyIgnoresParameterOrder(t *testing.T) {
	a := url.Values{"tipo": {"CASA"}, "q": {"ponta verde"}}
	b := url.Values{"q": {"ponta verde"}, "tipo": {"CASA"}}

	assert.Equal(t, Key("properties", a), Key("properties", b))
	assert.NotEqual(t, Key("properties", a), Key("state", a))
	assert.NotEqual(t, Key("properties", a), Key("properties", url.Values{"tipo": {"APARTAMENTO"}}))
	assert.Regexp(t, `^catalog:[0-9a-f]{64}$`, Key("properties", nil))
}

func TestKeyDoesNotReorderCallerValues(t *testing.T) {
	q := url.Values{"tipo": {"SOBRADO", "CASA"}}
	_ = Key("properties", q)
	assert.Equal(t, []string{"SOBRADO", "CASA"}, q["tipo"])
}

func TestGetSetAndTTL(t *testing.T) {
	c, mr := newTestCatalog(t)
	ctx := context.Background()
	key := Key("properties", nil)

	_, ok := c.Get(ctx, key)
	assert.False(t, ok)

	c.Set(ctx, key, []byte(`[]`))
	got, ok := c.Get(ctx, key)
	require.True(t, ok)
	assert.Equal(t, `[]`, string(got))
	assert.Equal(t, time.Minute, mr.TTL(key))

	mr.FastForward(2 * time.Minute)
	_, ok = c.Get(ctx, key)
	assert.False(t, ok)
}

func TestInvalidateOnlyTouchesCatalogKeys(t *testing.T) {
	c, mr := newTestCatalog(t)
	ctx := context.Background()

	for i := 0; i < 250; i++ {
		c.Set(ctx, Key("properties", url.Values{"page": {strconv.Itoa(i)}}), []byte("x"))
	}
	require.NoError(t, mr.Set("prime_auth", "true"))

	n, err := c.Invalidate(ctx)
	require.NoError(t, err)
	assert.Equal(t, 250, n)
	assert.Equal(t, []string{"prime_auth"}, mr.Keys())

	n, err = c.Invalidate(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestNilCatalog(t *testing.T) {
	var c *Catalog
	ctx := context.Background()

	c.Set(ctx, "k", []byte("v"))
	_, ok := c.Get(ctx, "k")
	assert.False(t, ok)
	n, err := c.Invalidate(ctx)
	assert.NoError(t, err)
	assert.Zero(t, n)
}
