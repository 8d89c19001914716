package querycache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

func newTestCache(stale time.Duration) (*Cache, *fakeClock) {
	clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	return New(stale, WithClock(clock.Now)), clock
}

func counter(calls *int32, value string) func(context.Context) (string, error) {
	return func(context.Context) (string, error) {
		n := atomic.AddInt32(calls, 1)
		return value + "-" + string(rune('0'+n)), nil
	}
}

func TestFetch_FreshHitSkipsCall(t *testing.T) {
	c, _ := newTestCache(time.Minute)
	ctx := context.Background()
	var calls int32

	v, err := Fetch(ctx, c, "projects", counter(&calls, "v"))
	require.NoError(t, err)
	require.Equal(t, "v-1", v)

	v, err = Fetch(ctx, c, "projects", counter(&calls, "v"))
	require.NoError(t, err)
	require.Equal(t, "v-1", v)
	require.EqualValues(t, 1, calls)
	require.Equal(t, Fresh, c.State("projects"))
}

func TestFetch_StaleAfterWindow(t *testing.T) {
	c, clock := newTestCache(time.Minute)
	ctx := context.Background()
	var calls int32

	_, err := Fetch(ctx, c, "projects", counter(&calls, "v"))
	require.NoError(t, err)

	clock.Advance(time.Minute)
	require.Equal(t, Stale, c.State("projects"))

	v, err := Fetch(ctx, c, "projects", counter(&calls, "v"))
	require.NoError(t, err)
	require.Equal(t, "v-2", v)
	require.Equal(t, Fresh, c.State("projects"))
}

func TestInvalidate_ForcesRefetch(t *testing.T) {
	c, _ := newTestCache(time.Hour)
	ctx := context.Background()
	var calls int32

	_, err := Fetch(ctx, c, "projects", counter(&calls, "v"))
	require.NoError(t, err)

	c.Invalidate("projects")
	require.Equal(t, Invalidated, c.State("projects"))
	old, ok := c.Peek("projects")
	require.True(t, ok)
	require.Equal(t, "v-1", old)

	v, err := Fetch(ctx, c, "projects", counter(&calls, "v"))
	require.NoError(t, err)
	require.Equal(t, "v-2", v)
}

func TestInvalidatePrefix(t *testing.T) {
	c, _ := newTestCache(time.Hour)
	c.Set("projects", "list")
	c.Set(Key("projects", "p1"), "detail")
	c.Set("projectsx", "other")

	c.InvalidatePrefix("projects")
	require.Equal(t, Invalidated, c.State("projects"))
	require.Equal(t, Invalidated, c.State("projects/p1"))
	require.Equal(t, Fresh, c.State("projectsx"))
}

func TestRemove_DropsEntry(t *testing.T) {
	c, _ := newTestCache(time.Hour)
	c.Set("projects/p1", "detail")

	c.Remove("projects/p1")
	require.Equal(t, Missing, c.State("projects/p1"))
	_, ok := c.Peek("projects/p1")
	require.False(t, ok)
	require.Equal(t, 0, c.Len())
}

func TestFetch_ErrorNotCached(t *testing.T) {
	c, clock := newTestCache(time.Minute)
	ctx := context.Background()
	c.Set("stats", "old")
	clock.Advance(2 * time.Minute)

	boom := errors.New("boom")
	_, err := Fetch(ctx, c, "stats", func(context.Context) (string, error) { return "", boom })
	require.ErrorIs(t, err, boom)

	v, ok := c.Peek("stats")
	require.True(t, ok)
	require.Equal(t, "old", v)
	require.Equal(t, Stale, c.State("stats"))
}

func TestFetch_ConcurrentCallersShareFlight(t *testing.T) {
	c, _ := newTestCache(time.Minute)
	ctx := context.Background()
	var calls int32
	release := make(chan struct{})

	fn := func(context.Context) (string, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return "shared", nil
	}

	var wg sync.WaitGroup
	results := make([]string, 5)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := Fetch(ctx, c, "projects", fn)
			require.NoError(t, err)
			results[i] = v
		}(i)
	}

	require.Eventually(t, func() bool { return atomic.LoadInt32(&calls) == 1 }, time.Second, time.Millisecond)
	time.Sleep(10 * time.Millisecond)
	close(release)
	wg.Wait()

	require.EqualValues(t, 1, calls)
	for _, v := range results {
		require.Equal(t, "shared", v)
	}
}

func TestQuery_InvalidationDuringFlightSkipsCommit(t *testing.T) {
	c, _ := newTestCache(time.Hour)
	ctx := context.Background()
	started := make(chan struct{})
	release := make(chan struct{})
	committed := false

	done := make(chan string)
	go func() {
		v, err := Query(ctx, c, "projects", func(context.Context) (string, error) {
			close(started)
			<-release
			return "before-mutation", nil
		}, func(string) { committed = true })
		require.NoError(t, err)
		done <- v
	}()

	<-started
	c.Invalidate("projects")
	close(release)

	require.Equal(t, "before-mutation", <-done)
	require.False(t, committed)
	require.Equal(t, Missing, c.State("projects"))
}

func TestFetch_CallerCancelDiscardsButFlightCommits(t *testing.T) {
	c, _ := newTestCache(time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	release := make(chan struct{})
	finished := make(chan struct{})

	go func() {
		defer close(finished)
		_, err := Fetch(ctx, c, "stats", func(context.Context) (string, error) {
			<-release
			return "late", nil
		})
		require.ErrorIs(t, err, context.Canceled)
	}()

	cancel()
	<-finished
	close(release)

	require.Eventually(t, func() bool { return c.State("stats") == Fresh }, time.Second, time.Millisecond)
	v, _ := c.Peek("stats")
	require.Equal(t, "late", v)
}

func TestRefetch_IgnoresFreshEntry(t *testing.T) {
	c, _ := newTestCache(time.Hour)
	c.Set("stats", "cached")

	v, err := Refetch(context.Background(), c, "stats", func(context.Context) (string, error) {
		return "server", nil
	}, nil)
	require.NoError(t, err)
	require.Equal(t, "server", v)

	stored, _ := c.Peek("stats")
	require.Equal(t, "server", stored)
}

func TestInvalidatePrefix_FencesFirstFetchInFlight(t *testing.T) {
	for _, tc := range []struct {
		name       string
		invalidate func(*Cache)
	}{
		{"prefix", func(c *Cache) { c.InvalidatePrefix("projects") }},
		{"clear", func(c *Cache) { c.Clear() }},
	} {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := newTestCache(time.Hour)
			started := make(chan struct{})
			release := make(chan struct{})
			done := make(chan string)

			go func() {
				v, err := Fetch(context.Background(), c, "projects/p1", func(context.Context) (string, error) {
					close(started)
					<-release
					return "before-mutation", nil
				})
				require.NoError(t, err)
				done <- v
			}()

			<-started
			tc.invalidate(c)
			close(release)

			require.Equal(t, "before-mutation", <-done)
			require.Equal(t, Missing, c.State("projects/p1"))

			var calls int32
			v, err := Fetch(context.Background(), c, "projects/p1", counter(&calls, "after"))
			require.NoError(t, err)
			require.Equal(t, "after-1", v)
			require.Equal(t, Fresh, c.State("projects/p1"))
		})
	}
}

func TestRemove_ForgetsGenerationsOnceIdle(t *testing.T) {
	c, _ := newTestCache(time.Hour)
	ctx := context.Background()
	var calls int32

	for _, key := range []string{"projects/p1", "projects/p2", "projects/p3"} {
		_, err := Fetch(ctx, c, key, counter(&calls, key))
		require.NoError(t, err)
		c.Remove(key)
	}

	started := make(chan struct{})
	release := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		_, err := Fetch(ctx, c, "projects/p4", func(context.Context) (string, error) {
			close(started)
			<-release
			return "raced", nil
		})
		require.NoError(t, err)
	}()
	<-started
	c.Remove("projects/p4")

	c.mu.Lock()
	require.Len(t, c.gens, 1)
	require.Equal(t, 1, c.inflight["projects/p4"])
	c.mu.Unlock()

	close(release)
	<-done

	c.mu.Lock()
	defer c.mu.Unlock()
	require.Empty(t, c.gens)
	require.Empty(t, c.inflight)
	require.NotContains(t, c.entries, "projects/p4")
}
