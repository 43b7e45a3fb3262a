package app

import (
	"context"
	"sync"

	"github.com/mezonai/coins/exception"
	"github.com/mezonai/coins/types"
)

const (
	defaultCheckWorkers = 32
	maxCheckWorkers     = 64
)

// BatchChecker runs CheckTx for many transactions at once. Every transaction is checked
// against its own copy of the same state snapshot, so results do not depend on each other.
type BatchChecker struct {
	app         *App
	workerCount int
	mu          sync.RWMutex
}

func NewBatchChecker(a *App) *BatchChecker {
	return &BatchChecker{
		app:         a,
		workerCount: defaultCheckWorkers,
	}
}

// SetWorkerCount allows tuning checker parallelism at runtime.
func (bc *BatchChecker) SetWorkerCount(n int) {
	if n <= 0 {
		return
	}
	if n > maxCheckWorkers {
		n = maxCheckWorkers
	}
	bc.mu.Lock()
	bc.workerCount = n
	bc.mu.Unlock()
}

// CheckAll returns one result per transaction, in input order. Transactions not started
// before ctx is done report ctx.Err().
func (bc *BatchChecker) CheckAll(ctx context.Context, txs []types.Transaction, fields map[string]interface{}) []error {
	bc.mu.RLock()
	workers := bc.workerCount
	bc.mu.RUnlock()

	snapshot := bc.app.State()
	results := make([]error, len(txs))

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, workers)
	for i := range txs {
		wg.Add(1)
		go func(index int) {
			defer wg.Done()

			select {
			case semaphore <- struct{}{}:
			case <-ctx.Done():
				results[index] = ctx.Err()
				return
			}
			defer func() { <-semaphore }()

			scratch := snapshot.Clone()
			results[index] = exception.SafeCall("CheckTx", func() error {
				return bc.app.coins.RunTransactionHandlers(scratch, txs[index], fields)
			})
		}(i)
	}

	wg.Wait()
	return results
}
