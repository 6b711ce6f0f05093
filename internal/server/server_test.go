package server

import (
	"context"
	"testing"

	"github.com/deppfellow/opsboard/internal/database"
	"github.com/deppfellow/opsboard/internal/lib/job"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShutdownOrder(t *testing.T) {
	s := &Server{
		Job:   &job.JobService{},
		DB:    &database.Database{},
		Redis: redis.NewClient(&redis.Options{Addr: "localhost:0"}),
	}
	t.Cleanup(func() { _ = s.Redis.Close() })

	names := make([]string, 0, 3)
	for _, c := range s.closers() {
		names = append(names, c.name)
	}

	assert.Equal(t, []string{"job service", "database connection", "redis client"}, names)
}

func TestShutdownWithoutResources(t *testing.T) {
	s := &Server{}

	assert.Empty(t, s.closers())
	require.NoError(t, s.Shutdown(context.Background()))
}

func TestStartWithoutHTTPServer(t *testing.T) {
	s := &Server{}

	assert.EqualError(t, s.Start(), "HTTP server not initialized")
}
