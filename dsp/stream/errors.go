package stream

import "errors"

var (
	// ErrOverrun is returned by Notify when an event arrives before the
	// previous one was drained.
	ErrOverrun = errors.New("stream: notification overrun")
	// ErrTransfer marks a failure reported by the transfer engine.
	ErrTransfer = errors.New("stream: transfer error")
	// ErrDeadline marks a block that was not processed within its period.
	ErrDeadline = errors.New("stream: deadline missed")
	// ErrStopped is returned by Notify after the scheduler has faulted.
	ErrStopped = errors.New("stream: scheduler stopped")
)
