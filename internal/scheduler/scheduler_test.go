package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingRefresher struct {
	calls atomic.Int32
}

func (r *countingRefresher) FetchWeather(context.Context) {
	r.calls.Add(1)
}

func TestSchedulerDisabled(t *testing.T) {
	r := &countingRefresher{}
	s := New(0, r)

	require.NoError(t, s.Start())
	defer s.Stop()

	assert.Equal(t, 0, s.Jobs())
}

func TestSchedulerRefreshes(t *testing.T) {
	r := &countingRefresher{}
	s := New(20*time.Millisecond, r)

	require.NoError(t, s.Start())
	defer s.Stop()

	assert.Equal(t, 1, s.Jobs())
	assert.Eventually(t, func() bool { return r.calls.Load() >= 2 }, 2*time.Second, 10*time.Millisecond)
}
