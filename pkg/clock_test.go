package pkg

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClockString(t *testing.T) {
	cl := NewClock(5*time.Minute, 0)
	assert.Equal(t, "5:00", cl.String())

	cl.Remaining = 65*time.Second + 900*time.Millisecond
	assert.Equal(t, "1:05", cl.String())

	cl.Remaining = -time.Second
	assert.Equal(t, "0:00", cl.String())
}

func TestClockPausedIgnoresElapse(t *testing.T) {
	cl := NewClock(time.Minute, 0)
	cl.Elapse(10 * time.Second)
	assert.Equal(t, time.Minute, cl.Remaining)

	cl.Resume()
	cl.Elapse(10 * time.Second)
	assert.Equal(t, 50*time.Second, cl.Remaining)

	cl.Pause()
	cl.Elapse(10 * time.Second)
	assert.Equal(t, 50*time.Second, cl.Remaining)
}

func TestClockTickAndExpire(t *testing.T) {
	cl := NewClock(time.Second, 2*time.Second)
	cl.Resume()
	cl.Tick()
	assert.Equal(t, 3*time.Second, cl.Remaining)

	cl.Elapse(3 * time.Second)
	assert.True(t, cl.Expired())

	cl.Reset()
	assert.Equal(t, time.Second, cl.Remaining)
	assert.True(t, cl.Paused)
}

func TestClockSetKeepsRunning(t *testing.T) {
	cl := NewClock(time.Minute, 0)
	cl.Resume()
	cl.Set(TimeControlOptions[1])

	assert.False(t, cl.Paused)
	assert.Equal(t, 10*time.Minute, cl.Remaining)
	assert.Equal(t, 2*time.Second, cl.Increment)
}
