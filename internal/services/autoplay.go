package services

import (
	"context"
	"sync"
	"time"
)

// StepFunc advances a carousel by one autoplay step and returns the new
// index and whether it moved. It must do its own locking.
type StepFunc func() (index int, moved bool)

// Autoplayer drives a StepFunc on a fixed interval and fans each move out
// to its subscribers. At most one ticker runs per Autoplayer; Restart
// replaces it.
type Autoplayer struct {
	step StepFunc

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}

	subsMu sync.Mutex
	subs   map[chan int]struct{}
}

// NewAutoplayer creates a stopped Autoplayer
func NewAutoplayer(step StepFunc) *Autoplayer {
	return &Autoplayer{
		step: step,
		subs: make(map[chan int]struct{}),
	}
}

// Subscribe returns a channel delivering the index after each step that
// moved, and a func that detaches it. A slow reader only sees the most
// recent value.
func (a *Autoplayer) Subscribe() (<-chan int, func()) {
	ch := make(chan int, 1)

	a.subsMu.Lock()
	a.subs[ch] = struct{}{}
	a.subsMu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			a.subsMu.Lock()
			delete(a.subs, ch)
			a.subsMu.Unlock()
		})
	}
}

// Subscribers returns how many channels are attached
func (a *Autoplayer) Subscribers() int {
	a.subsMu.Lock()
	defer a.subsMu.Unlock()
	return len(a.subs)
}

// Restart stops any running ticker and starts a new one with delay.
// A non-positive delay leaves autoplay stopped.
func (a *Autoplayer) Restart(ctx context.Context, delay time.Duration) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.stopLocked()
	if delay <= 0 {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	a.cancel = cancel
	a.done = done

	go a.run(ctx, delay, done)
}

// Stop halts the ticker and waits for its goroutine to exit
func (a *Autoplayer) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.stopLocked()
}

func (a *Autoplayer) stopLocked() {
	if a.cancel == nil {
		return
	}
	a.cancel()
	<-a.done
	a.cancel = nil
	a.done = nil
}

func (a *Autoplayer) run(ctx context.Context, delay time.Duration, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(delay)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if index, moved := a.step(); moved {
				a.publish(index)
			}
		}
	}
}

func (a *Autoplayer) publish(index int) {
	a.subsMu.Lock()
	defer a.subsMu.Unlock()
	for ch := range a.subs {
		sendLatest(ch, index)
	}
}

// sendLatest delivers v on a one-slot channel, replacing a stale value
func sendLatest(ch chan int, v int) {
	select {
	case ch <- v:
		return
	default:
	}
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- v:
	default:
	}
}
