// Package worker provides a generic, context-aware worker pool.
//
// The pool processes items of any type T with a fixed processor function:
//
//	pool := worker.NewPool(4, 64, func(ctx context.Context, task Task) error {
//		return task.Run(ctx)
//	})
//	if err := pool.Start(ctx); err != nil { ... }
//	for _, task := range tasks {
//		if err := pool.Submit(task); err != nil { ... }
//	}
//	if err := pool.Stop(5 * time.Second); err != nil { ... }
//
// Submit is non-blocking: when the queue is full the item is dropped and
// ErrQueueFull returned, so callers decide whether to back off or fail.
// Stop closes the queue and drains in-flight work before returning.
//
// With WithMetricsRegistry the pool registers queue depth, throughput and
// processing-duration metrics under the given prefix.
package worker
