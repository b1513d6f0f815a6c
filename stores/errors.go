package stores

import (
	"context"
	"database/sql/driver"
	"errors"
	"net"
	"strings"
)

// coldStartMarkers are substrings the MySQL driver produces while a managed
// database is suspended or still resuming.
var coldStartMarkers = []string{
	"connection refused",
	"invalid connection",
	"bad connection",
	"i/o timeout",
	"dial tcp",
	"connection reset by peer",
	"too many connections",
}

// IsColdStart reports whether the error looks like the backing store being
// unreachable or resuming from sleep, as opposed to a query-level failure.
func IsColdStart(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, driver.ErrBadConn) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range coldStartMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

// IsTransient reports whether a retry with backoff is worth attempting.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	return IsColdStart(err)
}
