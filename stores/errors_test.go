package stores

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"testing"
	"time"
)

type fakeNetError struct{}

func (fakeNetError) Error() string   { return "network unavailable" }
func (fakeNetError) Timeout() bool   { return true }
func (fakeNetError) Temporary() bool { return true }

func TestIsColdStart(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"bad conn sentinel", driver.ErrBadConn, true},
		{"wrapped bad conn", fmt.Errorf("query: %w", driver.ErrBadConn), true},
		{"net error", fakeNetError{}, true},
		{"dial refused", errors.New("dial tcp 10.0.0.5:3306: connect: connection refused"), true},
		{"driver invalid connection", errors.New("invalid connection"), true},
		{"pool exhausted", errors.New("Error 1040: Too many connections"), true},
		{"io timeout", errors.New("read tcp 10.0.0.5:3306: i/o timeout"), true},
		{"sql syntax error", errors.New("Error 1064: You have an error in your SQL syntax"), false},
		{"duplicate key", errors.New("Error 1062: Duplicate entry"), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsColdStart(tc.err); got != tc.want {
				t.Errorf("IsColdStart(%v) = %v, want %v", tc.err, got, tc.want)
			}
		})
	}
}

func TestIsTransient(t *testing.T) {
	if !IsTransient(context.DeadlineExceeded) {
		t.Error("deadline exceeded should be transient")
	}
	wrapped := fmt.Errorf("count visits: %w", context.DeadlineExceeded)
	if !IsTransient(wrapped) {
		t.Error("wrapped deadline exceeded should be transient")
	}
	if !IsTransient(driver.ErrBadConn) {
		t.Error("cold start errors should be transient")
	}
	if IsTransient(errors.New("Error 1064: syntax error")) {
		t.Error("query-level errors should not be transient")
	}
	if IsTransient(nil) {
		t.Error("nil is not transient")
	}

	// cancellation is not retried; the caller gave up
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	<-time.After(time.Millisecond)
	if IsTransient(ctx.Err()) {
		t.Error("context.Canceled should not be transient")
	}
}
