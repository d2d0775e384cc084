package task

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSchedule_RunsAfterDelay(t *testing.T) {
	r := NewRegistry()
	defer r.Close()

	var ran atomic.Int32
	r.Schedule("overlay:a", 10*time.Millisecond, func(ctx context.Context) {
		ran.Add(1)
	})

	assert.True(t, r.Pending("overlay:a"))
	assert.Eventually(t, func() bool { return ran.Load() == 1 }, time.Second, 5*time.Millisecond)
	assert.Eventually(t, func() bool { return !r.Pending("overlay:a") }, time.Second, 5*time.Millisecond)
}

func TestSchedule_RescheduleReplacesPendingTask(t *testing.T) {
	r := NewRegistry()
	defer r.Close()

	var first, second atomic.Int32
	r.Schedule("k", 50*time.Millisecond, func(ctx context.Context) { first.Add(1) })
	r.Schedule("k", 10*time.Millisecond, func(ctx context.Context) { second.Add(1) })

	assert.Eventually(t, func() bool { return second.Load() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, int32(0), first.Load())
}

func TestCancel_PreventsRun(t *testing.T) {
	r := NewRegistry()
	defer r.Close()

	var ran atomic.Int32
	r.Schedule("k", 20*time.Millisecond, func(ctx context.Context) { ran.Add(1) })

	assert.True(t, r.Cancel("k"))
	assert.False(t, r.Cancel("k"))
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(0), ran.Load())
}

func TestCancel_CancelsRunningContext(t *testing.T) {
	r := NewRegistry()
	defer r.Close()

	started := make(chan struct{})
	done := make(chan error, 1)
	r.Schedule("analysis:s1", 0, func(ctx context.Context) {
		close(started)
		<-ctx.Done()
		done <- ctx.Err()
	})

	<-started
	r.Cancel("analysis:s1")

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("task context was not cancelled")
	}
}

func TestCancelPrefix(t *testing.T) {
	r := NewRegistry()
	defer r.Close()

	noop := func(ctx context.Context) {}
	r.Schedule("s1:overlay", time.Minute, noop)
	r.Schedule("s1:analysis", time.Minute, noop)
	r.Schedule("s2:overlay", time.Minute, noop)

	assert.Equal(t, 2, r.CancelPrefix("s1:"))
	assert.Equal(t, 1, r.Len())
	assert.True(t, r.Pending("s2:overlay"))
}

func TestClose_WaitsForRunningTasks(t *testing.T) {
	r := NewRegistry()

	var finished atomic.Bool
	started := make(chan struct{})
	r.Schedule("k", 0, func(ctx context.Context) {
		close(started)
		<-ctx.Done()
		finished.Store(true)
	})

	<-started
	r.Close()
	assert.True(t, finished.Load())
	assert.Equal(t, 0, r.Len())
}

func TestScheduleVersion_OlderVersionNeverReplacesNewer(t *testing.T) {
	r := NewRegistry()
	defer r.Close()

	var older, newer atomic.Int32
	assert.True(t, r.ScheduleVersion("overlay", 2, 20*time.Millisecond, func(ctx context.Context) { newer.Add(1) }))
	assert.False(t, r.ScheduleVersion("overlay", 1, 20*time.Millisecond, func(ctx context.Context) { older.Add(1) }))

	assert.Eventually(t, func() bool { return newer.Load() == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, int32(0), older.Load())
}

func TestScheduleVersion_NewerOrEqualVersionReplaces(t *testing.T) {
	r := NewRegistry()
	defer r.Close()

	var first, second, third atomic.Int32
	r.ScheduleVersion("k", 1, 30*time.Millisecond, func(ctx context.Context) { first.Add(1) })
	assert.True(t, r.ScheduleVersion("k", 1, 30*time.Millisecond, func(ctx context.Context) { second.Add(1) }))
	assert.True(t, r.ScheduleVersion("k", 3, 10*time.Millisecond, func(ctx context.Context) { third.Add(1) }))

	assert.Eventually(t, func() bool { return third.Load() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(0), first.Load())
	assert.Equal(t, int32(0), second.Load())
}

func TestCancelVersion_SparesNewerTask(t *testing.T) {
	r := NewRegistry()
	defer r.Close()

	noop := func(ctx context.Context) {}
	r.ScheduleVersion("analysis", 5, time.Minute, noop)

	assert.False(t, r.CancelVersion("analysis", 4))
	assert.True(t, r.Pending("analysis"))
	assert.True(t, r.CancelVersion("analysis", 5))
	assert.False(t, r.Pending("analysis"))
}
