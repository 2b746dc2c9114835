// Package tui is the terminal front end: a Bubble Tea start screen with a
// difficulty picker, the live run view, the run board, and a Wish SSH server
// that gives every connection its own run session.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/waterrun/internal/session"
)

// UpdateMsg wraps one session update for the Bubble Tea loop.
type UpdateMsg struct {
	Update session.Update
}

// sinkClosedMsg is sent once the channel sink is closed.
type sinkClosedMsg struct{}

// listenCmd waits for the next session update. The model re-issues it after
// every UpdateMsg so exactly one listener is pending.
func listenCmd(sink *session.ChannelSink) tea.Cmd {
	return func() tea.Msg {
		select {
		case u := <-sink.Updates():
			return UpdateMsg{Update: u}
		case <-sink.Done():
			return sinkClosedMsg{}
		}
	}
}
