package app

import (
	"sync/atomic"
	"time"
)

// Metrics counts rendered frames and derives uptime and frame rate. It is
// safe for concurrent use.
type Metrics struct {
	frames    atomic.Uint64
	uptime    atomic.Uint64 // whole seconds, as of the last Tick
	lastFrame atomic.Int64  // nanoseconds spent in the last frame
	startTime time.Time
	now       func() time.Time
}

// NewMetrics creates a frame counter starting now.
func NewMetrics() *Metrics {
	return newMetricsWithClock(time.Now)
}

func newMetricsWithClock(now func() time.Time) *Metrics {
	return &Metrics{
		startTime: now(),
		now:       now,
	}
}

// Tick counts one frame and refreshes the uptime.
func (m *Metrics) Tick() {
	m.frames.Add(1)
	m.uptime.Store(uint64(m.now().Sub(m.startTime) / time.Second))
}

// RecordFrame stores how long the last frame took to produce.
func (m *Metrics) RecordFrame(d time.Duration) {
	m.lastFrame.Store(d.Nanoseconds())
}

// Frames returns the number of ticks so far.
func (m *Metrics) Frames() uint64 {
	return m.frames.Load()
}

// Uptime returns whole seconds between start and the last Tick.
func (m *Metrics) Uptime() uint64 {
	return m.uptime.Load()
}

// FPS returns frames per second of uptime, or 0 during the first second.
func (m *Metrics) FPS() uint64 {
	up := m.Uptime()
	if up == 0 {
		return 0
	}
	return m.Frames() / up
}

// LastFrame returns the duration of the last recorded frame.
func (m *Metrics) LastFrame() time.Duration {
	return time.Duration(m.lastFrame.Load())
}
