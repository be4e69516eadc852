package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type countingObserver struct {
	mu      sync.Mutex
	calls   map[string]int
	errs    int
	dropped int
}

func (o *countingObserver) ObserveRemote(op string, _ time.Duration, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.calls == nil {
		o.calls = map[string]int{}
	}
	o.calls[op]++
	if err != nil {
		o.errs++
	}
}

func (o *countingObserver) ObserveSyncDropped(string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.dropped++
}

func TestRemoteSync_CloseDrainsQueue(t *testing.T) {
	obs := &countingObserver{}
	rs := NewRemoteSync(16, time.Second, nil, obs)

	var mu sync.Mutex
	var ran []int
	for i := 0; i < 5; i++ {
		i := i
		rs.Enqueue("update", func(context.Context) error {
			mu.Lock()
			defer mu.Unlock()
			ran = append(ran, i)
			return nil
		})
	}
	rs.Start()
	rs.Close()

	assert.Equal(t, []int{0, 1, 2, 3, 4}, ran)
	assert.Equal(t, 5, obs.calls["update"])
}

func TestRemoteSync_FullInboxDrops(t *testing.T) {
	obs := &countingObserver{}
	rs := NewRemoteSync(1, time.Second, nil, obs)

	noop := func(context.Context) error { return nil }
	rs.Enqueue("create", noop)
	rs.Enqueue("create", noop)

	assert.Equal(t, 1, obs.dropped)
	rs.Close()
}

func TestRemoteSync_EnqueueAfterCloseIsDropped(t *testing.T) {
	obs := &countingObserver{}
	rs := NewRemoteSync(4, time.Second, nil, obs)
	rs.Start()
	rs.Close()

	rs.Enqueue("delete", func(context.Context) error { return nil })
	assert.Equal(t, 1, obs.dropped)
}

func TestRemoteSync_JobTimeoutAndErrorsAreSwallowed(t *testing.T) {
	obs := &countingObserver{}
	rs := NewRemoteSync(4, 20*time.Millisecond, nil, obs)
	rs.Start()

	rs.Enqueue("update", func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})
	rs.Enqueue("delete", func(context.Context) error { return errors.New("boom") })
	rs.Close()

	assert.Equal(t, 2, obs.errs)
}
