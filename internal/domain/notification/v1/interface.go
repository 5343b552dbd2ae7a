package notificationv1

import "context"

// Publisher delivers execution events. Delivery is fire-and-forget for callers.
//
//go:generate mockgen -source interface.go -destination=mock/interface_mock.go -package=notificationv1_mock
type Publisher interface {
	PublishExecution(ctx context.Context, event *ExecutionEvent) error
	Close() error
}
