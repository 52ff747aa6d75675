package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/repeater/v2"
)

// Supervise runs fn and restarts it after delay whenever it fails or panics, up to restarts
// times. It returns nil once fn finishes cleanly or ctx is canceled, otherwise the last error.
func Supervise(ctx context.Context, name string, restarts int, delay time.Duration, fn func(ctx context.Context) error) error {
	if restarts < 0 {
		restarts = 0
	}
	attempt := 0
	err := repeater.NewFixed(restarts+1, delay).Do(ctx, func() error {
		attempt++
		if attempt > 1 {
			lgr.Printf("[INFO] restarting %s, attempt %d", name, attempt)
		}
		err := safeRun(ctx, fn)
		if err != nil && ctx.Err() == nil {
			lgr.Printf("[WARN] %s failed: %v", name, err)
			return err
		}
		return nil
	})
	if err != nil && (errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)) {
		return nil
	}
	return err
}

func safeRun(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn(ctx)
}
