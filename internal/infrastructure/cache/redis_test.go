package cache

import (
	"bytes"
	"context"
	"log"
	"net"
	"testing"
	"time"

	"github.com/akinankarali/upwork-job-api/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRedis_DisabledBypassesCache(t *testing.T) {
	var buf bytes.Buffer
	r := NewRedis(config.RedisConfig{TTL: 0}, log.New(&buf, "", 0))

	assert.False(t, r.Enabled())
	assert.Equal(t, DefaultTTL, r.TTL())
	assert.Contains(t, buf.String(), "cache disabled")

	require.NoError(t, r.SetJSON(context.Background(), "k", []string{"a"}, time.Minute))

	var out []string
	hit, err := r.GetJSON(context.Background(), "k", &out)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Nil(t, out)

	assert.Error(t, r.Ping(context.Background()))
	assert.NoError(t, r.Close())
}

func TestNewRedis_UnreachableBypassesCache(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	_, port, _ := net.SplitHostPort(ln.Addr().String())
	require.NoError(t, ln.Close())

	var buf bytes.Buffer
	r := NewRedis(config.RedisConfig{Host: "127.0.0.1", Port: port, TTL: 30 * time.Second}, log.New(&buf, "", 0))

	assert.False(t, r.Enabled())
	assert.Equal(t, 30*time.Second, r.TTL())
	assert.Contains(t, buf.String(), "bypassing cache")

	hit, err := r.GetJSON(context.Background(), "k", &[]string{})
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestNilRedisIsSafe(t *testing.T) {
	var r *Redis
	assert.False(t, r.Enabled())
	assert.Equal(t, DefaultTTL, r.TTL())
	assert.NoError(t, r.SetJSON(context.Background(), "k", 1, 0))
	hit, err := r.GetJSON(context.Background(), "k", new(int))
	assert.NoError(t, err)
	assert.False(t, hit)
}
