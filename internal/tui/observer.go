package tui

import "github.com/mmcdole/marquee/internal/domain"

// ChannelObserver adapts domain.SessionObserver to a channel for Bubble Tea.
type ChannelObserver struct {
	ch chan<- domain.SessionChange
}

// NewChannelObserver creates a new channel-based observer.
func NewChannelObserver(ch chan<- domain.SessionChange) *ChannelObserver {
	return &ChannelObserver{ch: ch}
}

// OnSessionChange sends the change to the channel (non-blocking if full).
func (o *ChannelObserver) OnSessionChange(change domain.SessionChange) {
	select {
	case o.ch <- change:
	default: // Non-blocking if channel full
	}
}
