package netutil

import (
	"context"
	"errors"
	"net"
	"net/url"
	"syscall"
	"testing"
)

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestShouldRetry(t *testing.T) {
	cases := []struct {
		name  string
		err   error
		retry bool
	}{
		{"nil", nil, false},
		{"timeout", timeoutErr{}, true},
		{"dial", &net.OpError{Op: "dial", Err: errors.New("refused")}, true},
		{"conn reset", syscall.ECONNRESET, true},
		{"wrapped reset", &net.OpError{Op: "read", Err: syscall.ECONNRESET}, true},
		{"url timeout", &url.Error{Op: "Post", Err: timeoutErr{}}, true},
		{"api error", errors.New("telegram: Bad Request (400)"), false},
		{"canceled", context.Canceled, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ShouldRetry(tc.err); got != tc.retry {
				t.Fatalf("ShouldRetry(%v) = %v, expected %v", tc.err, got, tc.retry)
			}
		})
	}
}
