package session

import (
	"testing"
	"time"
)

func TestTimersDispatchOnFire(t *testing.T) {
	tm := NewTimers()
	ran := false
	id := tm.After(5*time.Millisecond, func() { ran = true })
	if id == 0 {
		t.Fatal("After returned 0 on a live arena")
	}

	select {
	case got := <-tm.Fired():
		if got != id {
			t.Errorf("fired id = %d, expected %d", got, id)
		}
		tm.Dispatch(got)
	case <-time.After(time.Second):
		t.Fatal("timer never fired")
	}
	if !ran {
		t.Error("callback did not run on Dispatch")
	}
	if tm.Len() != 0 {
		t.Errorf("Len() = %d, expected 0", tm.Len())
	}
}

func TestTimersCancel(t *testing.T) {
	tm := NewTimers()
	ran := false
	id := tm.After(10*time.Millisecond, func() { ran = true })
	tm.Cancel(id)
	tm.Cancel(id)
	tm.Cancel(999)

	select {
	case got := <-tm.Fired():
		t.Errorf("cancelled timer %d fired", got)
	case <-time.After(50 * time.Millisecond):
	}

	// A dispatch racing a cancel is a no-op
	tm.Dispatch(id)
	if ran {
		t.Error("cancelled callback ran")
	}
}

func TestTimersCancelAll(t *testing.T) {
	tm := NewTimers()
	count := 0
	for i := 0; i < 5; i++ {
		tm.After(time.Hour, func() { count++ })
	}
	if tm.Len() != 5 {
		t.Fatalf("Len() = %d, expected 5", tm.Len())
	}

	tm.CancelAll()
	tm.CancelAll()
	if tm.Len() != 0 {
		t.Errorf("Len() after CancelAll = %d, expected 0", tm.Len())
	}
	if id := tm.After(time.Millisecond, func() { count++ }); id != 0 {
		t.Errorf("After on a cancelled arena = %d, expected 0", id)
	}
	for id := TimerID(1); id <= 5; id++ {
		tm.Dispatch(id)
	}
	if count != 0 {
		t.Errorf("%d callbacks ran after CancelAll", count)
	}
}
