package enrich

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestForwardCancelFiresOnContextEnd(t *testing.T) {
	t.Parallel()

	ctx, cancelCtx := context.WithCancel(context.Background())
	done := make(chan struct{})
	var canceled atomic.Bool

	go forwardCancel(ctx, done, func() { canceled.Store(true) })

	cancelCtx()
	require.Eventually(t, canceled.Load, time.Second, 5*time.Millisecond)
}

func TestForwardCancelExitsWithFetch(t *testing.T) {
	t.Parallel()

	done := make(chan struct{})
	var canceled atomic.Bool
	exited := make(chan struct{})

	go func() {
		forwardCancel(context.Background(), done, func() { canceled.Store(true) })
		close(exited)
	}()

	close(done)
	select {
	case <-exited:
	case <-time.After(time.Second):
		t.Fatal("goroutine still parked after fetch completion")
	}
	require.False(t, canceled.Load())
}

func TestHostLabel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want string
	}{
		{"https://Example.com/contact", "example.com"},
		{"acme.example", "acme.example"},
		{"http://%", "unknown"},
		{"", "unknown"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, hostLabel(tt.raw), "hostLabel(%q)", tt.raw)
	}
}
