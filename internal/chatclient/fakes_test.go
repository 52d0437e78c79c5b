package chatclient

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/nunajera/portfolio-backend/internal"
)

// fakeClock fires timers only when advanced.
type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	seq    int
	timers []*fakeTimer
}

type fakeTimer struct {
	clock   *fakeClock
	due     time.Time
	seq     int
	f       func()
	stopped bool
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	t := &fakeTimer{clock: c, due: c.now.Add(d), seq: c.seq, f: f}
	c.timers = append(c.timers, t)
	return t
}

func (t *fakeTimer) Stop() bool {
	c := t.clock
	c.mu.Lock()
	defer c.mu.Unlock()
	if t.stopped {
		return false
	}
	t.stopped = true
	for i, other := range c.timers {
		if other == t {
			c.timers = append(c.timers[:i], c.timers[i+1:]...)
			break
		}
	}
	return true
}

// Advance moves time forward, running due timers in order. Callbacks run
// without the clock lock held so they can schedule more timers.
func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now.Add(d)
	c.mu.Unlock()

	for {
		c.mu.Lock()
		idx := -1
		for i, t := range c.timers {
			if t.due.After(target) {
				continue
			}
			if idx < 0 || t.due.Before(c.timers[idx].due) || (t.due.Equal(c.timers[idx].due) && t.seq < c.timers[idx].seq) {
				idx = i
			}
		}
		if idx < 0 {
			c.now = target
			c.mu.Unlock()
			return
		}
		next := c.timers[idx]
		c.timers = append(c.timers[:idx], c.timers[idx+1:]...)
		next.stopped = true
		c.now = next.due
		c.mu.Unlock()

		next.f()
	}
}

func (c *fakeClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.timers)
}

type chatCall struct {
	message string
	history []internal.HistoryEntry
}

type chatResult struct {
	reply string
	err   error
}

// fakeTransport records calls and blocks each one until a result is
// pushed or its context is cancelled.
type fakeTransport struct {
	mu      sync.Mutex
	calls   []chatCall
	results chan chatResult
	started chan struct{}
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{
		results: make(chan chatResult, 8),
		started: make(chan struct{}, 8),
	}
}

func (f *fakeTransport) Chat(ctx context.Context, message string, history []internal.HistoryEntry) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, chatCall{message: message, history: history})
	f.mu.Unlock()
	f.started <- struct{}{}

	select {
	case r := <-f.results:
		return r.reply, r.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (f *fakeTransport) Calls() []chatCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]chatCall, len(f.calls))
	copy(out, f.calls)
	return out
}

type fakeClipboard struct {
	text string
	err  error
}

func (c *fakeClipboard) WriteAll(text string) error {
	if c.err != nil {
		return c.err
	}
	c.text = text
	return nil
}

type fakeNavigator struct {
	calls []string
}

func (n *fakeNavigator) Download(path string) error {
	n.calls = append(n.calls, "download:"+path)
	return nil
}

func (n *fakeNavigator) ScrollTo(section string) error {
	n.calls = append(n.calls, "scroll:"+section)
	return nil
}

func (n *fakeNavigator) OpenURL(url string) error {
	if url == "" {
		return errors.New("empty url")
	}
	n.calls = append(n.calls, "open:"+url)
	return nil
}

func sequentialIDs() func() string {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("msg-%d", n)
	}
}
