package operator

import (
	"context"
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/ledger-server/internal/operator/actions"
	"github.com/carson-networks/ledger-server/internal/storage"
)

const queueSize = 1000

// ErrStopped is returned by Process once Stop has been called.
var ErrStopped = errors.New("operator: stopped")

// OperatorDelegator manages the queue, starts/stops Operators (workers), and enqueues items.
// With a single worker every write is serialized; with more, writers on
// different accounts run in parallel and per-account locks keep writes on
// the same account exclusive.
type OperatorDelegator struct {
	storage    *storage.Storage
	logger     *logrus.Logger
	queue      chan ActionItem
	numWorkers int
	wg         sync.WaitGroup
	stopOnce   sync.Once

	stateMu sync.RWMutex
	stopped bool
}

func NewOperatorDelegator(s *storage.Storage, numWorkers int, logger *logrus.Logger) *OperatorDelegator {
	if numWorkers < 1 {
		numWorkers = 1
	}
	return &OperatorDelegator{
		storage:    s,
		logger:     logger,
		queue:      make(chan ActionItem, queueSize),
		numWorkers: numWorkers,
	}
}

func (d *OperatorDelegator) Start() {
	d.logger.WithField("workers", d.numWorkers).Info("OperatorDelegator.Start")
	for i := 0; i < d.numWorkers; i++ {
		d.wg.Add(1)
		op := NewOperator(d.storage, d.queue, d.logger)
		go func() {
			defer d.wg.Done()
			op.Run()
		}()
	}
}

// Stop closes the queue and waits for queued items to finish.
func (d *OperatorDelegator) Stop() {
	d.stopOnce.Do(func() {
		d.stateMu.Lock()
		d.stopped = true
		close(d.queue)
		d.stateMu.Unlock()

		d.wg.Wait()
		d.logger.Info("OperatorDelegator.Stop")
	})
}

// Process enqueues action and waits for its result. ctx bounds only the
// wait for queue space; once queued the action runs to completion, unless
// ctx is already done when a worker picks it up.
func (d *OperatorDelegator) Process(ctx context.Context, action actions.IAction) error {
	respCh := make(chan ActionItemResponse, 1)
	item := ActionItem{
		ctx:      ctx,
		action:   action,
		response: respCh,
	}

	d.stateMu.RLock()
	if d.stopped {
		d.stateMu.RUnlock()
		return ErrStopped
	}
	select {
	case d.queue <- item:
		d.stateMu.RUnlock()
	case <-ctx.Done():
		d.stateMu.RUnlock()
		return ctx.Err()
	}

	resp := <-respCh
	return resp.err
}
