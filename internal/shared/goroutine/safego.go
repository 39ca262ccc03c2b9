// Package goroutine runs background work with panic recovery.
package goroutine

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"stockdesk/internal/shared/logger"
)

// SafeGo launches fn in a goroutine; a panic is logged with its stack instead of crashing the process.
func SafeGo(log logger.Interface, name string, fn func()) {
	go func() {
		defer recoverAndLog(log, name)
		fn()
	}()
}

// Every runs fn on each tick until ctx is done. The returned channel closes when the loop exits.
func Every(ctx context.Context, log logger.Interface, name string, interval time.Duration, fn func(context.Context)) <-chan struct{} {
	done := make(chan struct{})
	SafeGo(log, name, func() {
		defer close(done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				runOnce(ctx, log, name, fn)
			}
		}
	})
	return done
}

func runOnce(ctx context.Context, log logger.Interface, name string, fn func(context.Context)) {
	defer recoverAndLog(log, name)
	fn(ctx)
}

func recoverAndLog(log logger.Interface, name string) {
	if r := recover(); r != nil {
		log.Errorw("goroutine panicked",
			"goroutine", name,
			"panic", fmt.Sprintf("%v", r),
			"stack", string(debug.Stack()),
		)
	}
}
