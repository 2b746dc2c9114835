package session

import (
	"sync"
	"time"
)

// TimerID identifies a scheduled callback within one arena. Zero means none.
type TimerID uint64

// Timers is an arena of one-shot callbacks owned by a single run.
//
// Expired timers post their id to the fired channel; the run goroutine calls
// Dispatch, so callbacks never run concurrently with a tick. CancelAll
// releases every outstanding timer at once.
type Timers struct {
	mu        sync.Mutex
	fired     chan TimerID
	closed    chan struct{}
	closeOnce sync.Once
	next      TimerID
	pending   map[TimerID]*time.Timer
	callbacks map[TimerID]func()
}

// NewTimers creates an empty arena.
func NewTimers() *Timers {
	return &Timers{
		fired:     make(chan TimerID, 16),
		closed:    make(chan struct{}),
		pending:   make(map[TimerID]*time.Timer),
		callbacks: make(map[TimerID]func()),
	}
}

// Fired returns the channel of expired timer ids.
func (t *Timers) Fired() <-chan TimerID {
	return t.fired
}

// After schedules fn to be dispatched after d. It returns 0 once the arena
// has been cancelled.
func (t *Timers) After(d time.Duration, fn func()) TimerID {
	t.mu.Lock()
	defer t.mu.Unlock()

	select {
	case <-t.closed:
		return 0
	default:
	}

	t.next++
	id := t.next
	t.callbacks[id] = fn
	t.pending[id] = time.AfterFunc(d, func() {
		select {
		case t.fired <- id:
		case <-t.closed:
		}
	})
	return id
}

// Dispatch runs the callback for id if it is still scheduled.
func (t *Timers) Dispatch(id TimerID) {
	t.mu.Lock()
	fn, ok := t.callbacks[id]
	delete(t.callbacks, id)
	delete(t.pending, id)
	t.mu.Unlock()

	if ok {
		fn()
	}
}

// Cancel drops a scheduled callback. Unknown ids are ignored.
func (t *Timers) Cancel(id TimerID) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if tm, ok := t.pending[id]; ok {
		tm.Stop()
	}
	delete(t.pending, id)
	delete(t.callbacks, id)
}

// CancelAll drops every callback and refuses new ones.
func (t *Timers) CancelAll() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.closeOnce.Do(func() {
		close(t.closed)
	})
	for id, tm := range t.pending {
		tm.Stop()
		delete(t.pending, id)
	}
	for id := range t.callbacks {
		delete(t.callbacks, id)
	}
}

// Len returns how many callbacks are still scheduled.
func (t *Timers) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.callbacks)
}
