package cmd

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/assert"
)

// every fires at a sub-second period, which cron specs cannot express.
type every time.Duration

func (e every) Next(t time.Time) time.Time { return t.Add(time.Duration(e)) }

func TestNewScheduler_SkipsOverlap(t *testing.T) {
	var running, maxRunning, runs atomic.Int32
	scheduler := newScheduler()
	scheduler.Schedule(every(5*time.Millisecond), cron.FuncJob(func() {
		n := running.Add(1)
		for {
			m := maxRunning.Load()
			if n <= m || maxRunning.CompareAndSwap(m, n) {
				break
			}
		}
		runs.Add(1)
		time.Sleep(40 * time.Millisecond)
		running.Add(-1)
	}))

	scheduler.Start()
	time.Sleep(200 * time.Millisecond)
	<-scheduler.Stop().Done()

	assert.Positive(t, runs.Load())
	assert.Equal(t, int32(1), maxRunning.Load(), "refreshes must never overlap")
}
