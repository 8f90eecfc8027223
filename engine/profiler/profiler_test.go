package profiler

import (
	"bytes"
	"log"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func TestTickLogsOncePerInterval(t *testing.T) {
	var buf bytes.Buffer
	clock := &fakeClock{t: time.Unix(0, 0)}
	p := NewProfiler(
		WithLogger(log.New(&buf, "", 0)),
		WithClock(clock.now),
		WithTag(func() string { return "Deferred" }),
	)

	clock.advance(400 * time.Millisecond)
	assert.False(t, p.Tick())
	clock.advance(200 * time.Millisecond)
	assert.False(t, p.Tick())
	clock.advance(400 * time.Millisecond)
	assert.True(t, p.Tick())

	out := buf.String()
	assert.Contains(t, out, "[Profiler Deferred] FPS: 3.00")
	assert.Contains(t, out, "Frame: 200.00-400.00 ms")

	buf.Reset()
	clock.advance(500 * time.Millisecond)
	assert.False(t, p.Tick())
	assert.Empty(t, buf.String())
}

func TestWithIntervalIgnoresNonPositive(t *testing.T) {
	p := NewProfiler(WithInterval(0))
	assert.Equal(t, time.Second, p.updateInterval)

	p = NewProfiler(WithInterval(250 * time.Millisecond))
	assert.Equal(t, 250*time.Millisecond, p.updateInterval)
}
