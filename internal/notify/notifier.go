package notify

import "context"

// Notifier tells school staff that something needs their attention,
// currently new contact form messages.
type Notifier interface {
	NotifyStaff(ctx context.Context, msg string)
}

// Noop is a no-op notifier.
type Noop struct{}

func (Noop) NotifyStaff(context.Context, string) {}

// Func adapts a plain function to Notifier.
type Func func(ctx context.Context, msg string)

func (f Func) NotifyStaff(ctx context.Context, msg string) { f(ctx, msg) }
