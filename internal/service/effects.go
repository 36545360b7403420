package service

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// sideEffect is a named best-effort action fired alongside a primary
// operation, such as recording points or dispatching a notification.
type sideEffect struct {
	name string
	fn   func(context.Context) error
}

// runSideEffects executes the effects concurrently and waits for all of
// them. Each failure is logged on its own; no effect can fail another
// effect or the primary operation that triggered them.
func runSideEffects(ctx context.Context, log *zap.Logger, effects ...sideEffect) {
	if len(effects) == 0 {
		return
	}
	var wg sync.WaitGroup
	for _, e := range effects {
		wg.Add(1)
		go func(e sideEffect) {
			defer wg.Done()
			if err := e.fn(ctx); err != nil {
				log.Warn("side effect failed",
					zap.String("effect", e.name),
					zap.Error(err))
			}
		}(e)
	}
	wg.Wait()
}
