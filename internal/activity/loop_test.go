package activity

import (
	"context"
	"sync"
	"testing"
	"time"
)

type recordingToucher struct {
	mu      sync.Mutex
	batches [][]int64
}

func (r *recordingToucher) TouchActivity(ctx context.Context, ids []int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.batches = append(r.batches, append([]int64(nil), ids...))
	return nil
}

func (r *recordingToucher) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.batches)
}

func TestLoopTouchesActiveUsers(t *testing.T) {
	toucher := &recordingToucher{}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	go func() {
		Loop(ctx, toucher, func() []int64 { return []int64{1, 2} }, 10*time.Millisecond)
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for toucher.count() < 2 {
		select {
		case <-deadline:
			t.Fatal("loop did not touch users in time")
		case <-time.After(5 * time.Millisecond):
		}
	}
	cancel()
	<-done

	toucher.mu.Lock()
	defer toucher.mu.Unlock()
	if got := toucher.batches[0]; len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Fatalf("first batch = %v, want [1 2]", got)
	}
}

func TestLoopSkipsEmptyBatches(t *testing.T) {
	toucher := &recordingToucher{}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	go func() {
		Loop(ctx, toucher, func() []int64 { return nil }, 5*time.Millisecond)
		close(done)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()
	<-done

	if n := toucher.count(); n != 0 {
		t.Fatalf("toucher called %d times for empty audience", n)
	}
}
