package notify

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/GlebRadaev/gymslot/pkg/workerpool"
)

//go:generate mockgen -source=dispatcher.go -destination=mock_dispatcher.go -package=notify

type Sink interface {
	Send(ctx context.Context, event Event) error
}

const sendTimeout = 5 * time.Second

// Dispatcher delivers events asynchronously. Emit never blocks and never fails
// the caller; a full queue or a failing sink only produces a log line.
type Dispatcher struct {
	sink Sink
	pool workerpool.WorkerPoolI
}

func NewDispatcher(sink Sink, workers, queueSize int) *Dispatcher {
	return &Dispatcher{
		sink: sink,
		pool: workerpool.NewWorkerPool(workers, queueSize),
	}
}

func (d *Dispatcher) Emit(_ context.Context, event Event) {
	err := d.pool.TryAddTask(func() error {
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		defer cancel()
		if err := d.sink.Send(ctx, event); err != nil {
			return fmt.Errorf("send %s for booking %d: %w", event.Type, event.BookingID, err)
		}
		return nil
	})
	if err != nil {
		zap.L().Warn("Notification dropped",
			zap.String("event_type", string(event.Type)),
			zap.Int64("booking_id", event.BookingID),
			zap.Int64("user_id", event.UserID),
			zap.Error(err))
	}
}

// Close waits for queued notifications to be delivered.
func (d *Dispatcher) Close() {
	d.pool.Close()
}

// LogSink writes events to the application log; used when no broker is configured.
type LogSink struct{}

func (LogSink) Send(_ context.Context, event Event) error {
	zap.L().Info("Notification",
		zap.String("event_id", event.ID.String()),
		zap.String("event_type", string(event.Type)),
		zap.Int64("user_id", event.UserID),
		zap.Int64("booking_id", event.BookingID),
		zap.String("message", event.Message))
	return nil
}
