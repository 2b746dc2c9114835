package session

import (
	"sync"
	"sync/atomic"

	"github.com/vovakirdan/waterrun/internal/config"
	"github.com/vovakirdan/waterrun/internal/games/waterrun"
)

// Update is one message delivered through a ChannelSink.
type Update interface {
	// Epoch is the sink epoch the update was sent in.
	Epoch() uint64
	update()
}

// Stamp records the sink epoch of an update.
type Stamp struct {
	epoch uint64
}

func (s Stamp) Epoch() uint64 { return s.epoch }

// FrameUpdate carries the latest view of the world.
type FrameUpdate struct {
	Stamp
	Frame   waterrun.Frame
	Overlay waterrun.Overlay
}

// StartedUpdate is sent when a run starts.
type StartedUpdate struct {
	Stamp
	Difficulty config.Difficulty
}

// EndedUpdate is sent when a run ends in game over.
type EndedUpdate struct {
	Stamp
	Summary Summary
}

// MilestoneUpdate is sent when a milestone is announced.
type MilestoneUpdate struct {
	Stamp
	Kind  waterrun.MilestoneKind
	Value int
}

// DeliveryUpdate is sent after a successful delivery.
type DeliveryUpdate struct {
	Stamp
	ID    waterrun.EntityID
	Total int
}

func (FrameUpdate) update() {}
func (StartedUpdate) update() {}
func (EndedUpdate) update() {}
func (MilestoneUpdate) update() {}
func (DeliveryUpdate) update() {}

// ChannelSink is a ViewSink that forwards updates over a buffered channel.
// Used by the TUI layer to bridge the run goroutine with Bubble Tea.
//
// Every update is stamped with the epoch current when it was sent. A reader
// that calls Reset after stopping a run can drop anything older, including
// updates a pending receive already took off the channel.
type ChannelSink struct {
	updates  chan Update
	done     chan struct{}
	doneOnce sync.Once
	epoch    atomic.Uint64
}

// NewChannelSink creates a sink. bufferSize controls how many updates can be
// buffered before the oldest are dropped.
func NewChannelSink(bufferSize int) *ChannelSink {
	if bufferSize < 1 {
		bufferSize = 64
	}
	return &ChannelSink{
		updates: make(chan Update, bufferSize),
		done:    make(chan struct{}),
	}
}

// Updates returns the channel to receive updates from.
func (c *ChannelSink) Updates() <-chan Update {
	return c.updates
}

// Done returns a channel closed by Close.
func (c *ChannelSink) Done() <-chan struct{} {
	return c.done
}

// Epoch returns the current epoch.
func (c *ChannelSink) Epoch() uint64 {
	return c.epoch.Load()
}

// Reset starts a new epoch and discards buffered updates. Call it once the
// previous run has stopped sending.
func (c *ChannelSink) Reset() uint64 {
	e := c.epoch.Add(1)
	for {
		select {
		case <-c.updates:
		default:
			return e
		}
	}
}

func (c *ChannelSink) stamp() Stamp {
	return Stamp{epoch: c.epoch.Load()}
}

// Close stops delivery. Safe to call multiple times.
func (c *ChannelSink) Close() {
	c.doneOnce.Do(func() {
		close(c.done)
	})
}

// send never blocks. If the buffer is full, the oldest update is dropped.
func (c *ChannelSink) send(u Update) {
	select {
	case <-c.done:
		return
	default:
	}

	select {
	case c.updates <- u:
	default:
		select {
		case <-c.updates:
		default:
		}
		select {
		case c.updates <- u:
		default:
		}
	}
}

func (c *ChannelSink) Frame(f waterrun.Frame, ov waterrun.Overlay) {
	c.send(FrameUpdate{Stamp: c.stamp(), Frame: f, Overlay: ov})
}

func (c *ChannelSink) RunStarted(d config.Difficulty) {
	c.send(StartedUpdate{Stamp: c.stamp(), Difficulty: d})
}

func (c *ChannelSink) RunEnded(sum Summary) {
	c.send(EndedUpdate{Stamp: c.stamp(), Summary: sum})
}

func (c *ChannelSink) MilestoneReached(kind waterrun.MilestoneKind, value int) {
	c.send(MilestoneUpdate{Stamp: c.stamp(), Kind: kind, Value: value})
}

func (c *ChannelSink) DeliverySucceeded(id waterrun.EntityID, total int) {
	c.send(DeliveryUpdate{Stamp: c.stamp(), ID: id, Total: total})
}
