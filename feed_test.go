package tramline

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theoremus-urban-solutions/tramline/config"
	"github.com/theoremus-urban-solutions/tramline/tracking"
)

// scriptedSource replays ticks and errors, cancelling the poll loop after
// the last step.
type scriptedSource struct {
	mu     sync.Mutex
	steps  []func() (tracking.Tick, error)
	calls  int
	cancel context.CancelFunc
}

func (s *scriptedSource) Next(ctx context.Context) (tracking.Tick, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.calls
	s.calls++
	if i >= len(s.steps) {
		return tracking.Tick{}, ctx.Err()
	}
	if i == len(s.steps)-1 {
		defer s.cancel()
	}
	return s.steps[i]()
}

func TestPoll_AppliesSnapshotsAndSurvivesFailures(t *testing.T) {
	svc := newTestService(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	src := &scriptedSource{cancel: cancel, steps: []func() (tracking.Tick, error){
		func() (tracking.Tick, error) { return tickOf(100, "v1", "red"), nil },
		func() (tracking.Tick, error) { return tracking.Tick{}, errors.New("connection reset") },
		func() (tracking.Tick, error) { return tickOf(50, "v9", "red"), nil },
		func() (tracking.Tick, error) { return tickOf(120, "v1", "red", "v2", "blue"), nil },
	}}

	done := make(chan error, 1)
	go func() { done <- Poll(ctx, src, time.Millisecond, svc) }()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("poll loop did not stop")
	}

	markers := svc.Markers()
	require.Len(t, markers, 2)
	assert.Equal(t, "v1", markers[0].ID)
	assert.Equal(t, "v2", markers[1].ID)
	assert.Equal(t, int64(120), svc.FeedTimestamp())
	assert.Equal(t, uint64(2), svc.Seq())
	t.Logf("✓ %d snapshots applied after %d reads", svc.Ticks(), src.calls)
}

func TestPoll_RejectsNonPositiveInterval(t *testing.T) {
	err := Poll(context.Background(), &scriptedSource{}, 0, newTestService(t))
	assert.Error(t, err)
}

func TestRunFeed(t *testing.T) {
	svc := newTestService(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.NoError(t, RunFeed(ctx, config.FeedConfig{Kind: "none"}, nil, svc))
	assert.Error(t, RunFeed(ctx, config.FeedConfig{Kind: "carrier-pigeon"}, nil, svc))
}
