package utils

import (
	"context"
	"time"
)

// Retry runs fn up to attempts times, sleeping base, 2*base, 4*base... between
// tries. A retry only happens while retryIf reports the error as transient;
// other errors return immediately. Context cancellation wins over the backoff
// sleep so a batch deadline is never exceeded by waiting.
func Retry(ctx context.Context, attempts int, base time.Duration, retryIf func(error) bool, fn func() error) error {
	if attempts < 1 {
		attempts = 1
	}
	var err error
	delay := base
	for i := 0; i < attempts; i++ {
		if err = fn(); err == nil {
			return nil
		}
		if retryIf != nil && !retryIf(err) {
			return err
		}
		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return err
		case <-time.After(delay):
		}
		delay *= 2
	}
	return err
}
