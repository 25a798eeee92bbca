package server

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimerScheduler_Fires(t *testing.T) {
	s := newTimerScheduler()
	fired := make(chan string, 1)

	s.Schedule("ABCD", 10*time.Millisecond, func() { fired <- "ABCD" })
	assert.Equal(t, 1, s.Pending())

	select {
	case key := <-fired:
		assert.Equal(t, "ABCD", key)
	case <-time.After(time.Second):
		t.Fatal("task did not fire")
	}
	assert.Eventually(t, func() bool { return s.Pending() == 0 }, time.Second, 5*time.Millisecond)
}

func TestTimerScheduler_Cancel(t *testing.T) {
	s := newTimerScheduler()
	var fired atomic.Bool

	s.Schedule("ABCD", 20*time.Millisecond, func() { fired.Store(true) })
	s.Cancel("ABCD")
	s.Cancel("WXYZ") // unknown keys are ignored

	time.Sleep(50 * time.Millisecond)
	assert.False(t, fired.Load())
	assert.Zero(t, s.Pending())
}

func TestTimerScheduler_RescheduleReplaces(t *testing.T) {
	s := newTimerScheduler()
	var first, second atomic.Int32

	s.Schedule("ABCD", 20*time.Millisecond, func() { first.Add(1) })
	s.Schedule("ABCD", 20*time.Millisecond, func() { second.Add(1) })
	assert.Equal(t, 1, s.Pending())

	assert.Eventually(t, func() bool { return second.Load() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	assert.Zero(t, first.Load())
}

func TestTimerScheduler_StopAll(t *testing.T) {
	s := newTimerScheduler()
	var fired atomic.Int32

	for _, key := range []string{"AAAA", "BBBB", "CCCC"} {
		s.Schedule(key, 20*time.Millisecond, func() { fired.Add(1) })
	}
	s.StopAll()

	time.Sleep(50 * time.Millisecond)
	assert.Zero(t, fired.Load())
	assert.Zero(t, s.Pending())
}
