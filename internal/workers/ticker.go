package workers

import (
	"context"
	"sync"
	"time"
)

// tickerJob calls tick every interval on a background goroutine.
type tickerJob struct {
	interval  time.Duration
	immediate bool
	tick      func(ctx context.Context)

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func newTickerJob(interval time.Duration, immediate bool, tick func(ctx context.Context)) *tickerJob {
	return &tickerJob{interval: interval, immediate: immediate, tick: tick}
}

// Start stops any previously running loop, then launches a new one. When
// immediate is set the first tick runs right away.
func (j *tickerJob) Start(ctx context.Context) {
	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(j.interval)
		defer t.Stop()

		if j.immediate {
			j.tick(jobCtx)
		}

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				j.tick(jobCtx)
			}
		}
	}()
}

// Stop cancels the loop and waits for it to exit.
func (j *tickerJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}
