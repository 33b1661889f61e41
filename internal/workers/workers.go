package workers

import "context"

// Workers starts and stops a set of workers together.
type Workers struct {
	workers []Worker
}

// NewWorkers aggregates ws. Nil workers are skipped.
func NewWorkers(ws ...Worker) *Workers {
	agg := &Workers{}
	for _, w := range ws {
		if w != nil {
			agg.workers = append(agg.workers, w)
		}
	}
	return agg
}

// Start starts every worker in order.
func (w *Workers) Start(ctx context.Context) {
	for _, worker := range w.workers {
		worker.Start(ctx)
	}
}

// Stop stops every worker in reverse order.
func (w *Workers) Stop() {
	for i := len(w.workers) - 1; i >= 0; i-- {
		w.workers[i].Stop()
	}
}
