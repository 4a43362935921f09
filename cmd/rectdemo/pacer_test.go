package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFramePacer_SleepsUntilDue(t *testing.T) {
	start := time.Unix(0, 0)
	now := start
	var slept []time.Duration
	p := &framePacer{
		interval: 10 * time.Millisecond,
		next:     start.Add(10 * time.Millisecond),
		now:      func() time.Time { return now },
		sleep:    func(d time.Duration) { slept = append(slept, d) },
	}

	now = start.Add(4 * time.Millisecond)
	p.wait()
	assert.Equal(t, []time.Duration{6 * time.Millisecond}, slept)
	assert.Equal(t, start.Add(20*time.Millisecond), p.next)
}

func TestFramePacer_LateFrameDoesNotCatchUp(t *testing.T) {
	start := time.Unix(0, 0)
	now := start.Add(35 * time.Millisecond)
	slept := 0
	p := &framePacer{
		interval: 10 * time.Millisecond,
		next:     start.Add(10 * time.Millisecond),
		now:      func() time.Time { return now },
		sleep:    func(time.Duration) { slept++ },
	}

	p.wait()
	assert.Zero(t, slept)
	assert.Equal(t, now.Add(10*time.Millisecond), p.next)
}

func TestNewFramePacer_DefaultInterval(t *testing.T) {
	p := newFramePacer(0)
	assert.Equal(t, time.Second/60, p.interval)
}
