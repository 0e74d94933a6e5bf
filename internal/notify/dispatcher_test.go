package notify

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"

	"github.com/GlebRadaev/gymslot/pkg/workerpool"
)

func TestDispatcher_Emit(t *testing.T) {
	ctrl := gomock.NewController(t)
	sink := NewMockSink(ctrl)
	d := NewDispatcher(sink, 2, 8)

	event := NewEvent(BookingConfirmed, 1, 42, "booking confirmed", time.Now())
	delivered := make(chan Event, 1)
	sink.EXPECT().Send(gomock.Any(), event).DoAndReturn(func(_ context.Context, e Event) error {
		delivered <- e
		return nil
	})

	d.Emit(context.Background(), event)

	select {
	case got := <-delivered:
		assert.Equal(t, event.ID, got.ID)
	case <-time.After(time.Second):
		t.Fatal("event was not delivered")
	}
	d.Close()
}

func TestDispatcher_SinkFailureIsSwallowed(t *testing.T) {
	ctrl := gomock.NewController(t)
	sink := NewMockSink(ctrl)
	d := NewDispatcher(sink, 1, 1)

	sink.EXPECT().Send(gomock.Any(), gomock.Any()).Return(errors.New("broker down"))

	d.Emit(context.Background(), NewEvent(BookingCancelled, 1, 42, "booking cancelled", time.Now()))
	d.Close()
}

func TestDispatcher_EmitAfterClose(t *testing.T) {
	ctrl := gomock.NewController(t)
	sink := NewMockSink(ctrl)
	d := NewDispatcher(sink, 1, 1)
	d.Close()

	assert.NotPanics(t, func() {
		d.Emit(context.Background(), NewEvent(BookingCancelled, 1, 42, "booking cancelled", time.Now()))
	})
}

func TestDispatcher_FullQueueDrops(t *testing.T) {
	ctrl := gomock.NewController(t)
	sink := NewMockSink(ctrl)
	d := &Dispatcher{sink: sink, pool: workerpool.NewWorkerPool(1, 0)}

	release := make(chan struct{})
	started := make(chan struct{})
	sink.EXPECT().Send(gomock.Any(), gomock.Any()).DoAndReturn(func(context.Context, Event) error {
		close(started)
		<-release
		return nil
	}).Times(1)

	first := NewEvent(TokensRefunded, 1, 42, "refunded", time.Now())
	require.Eventually(t, func() bool {
		d.Emit(context.Background(), first)
		select {
		case <-started:
			return true
		default:
			return false
		}
	}, time.Second, time.Millisecond)

	done := make(chan struct{})
	go func() {
		d.Emit(context.Background(), NewEvent(TokensRefunded, 2, 43, "refunded", time.Now()))
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Emit blocked on a full queue")
	}

	close(release)
	d.Close()
}

func TestRabbitSink_Send(t *testing.T) {
	ctrl := gomock.NewController(t)
	pub := NewMockPublisher(ctrl)
	sink := &RabbitSink{ch: pub, exchange: "gym.events"}

	event := NewEvent(BookingCancelled, 1, 42, "booking cancelled", time.Date(2024, 3, 10, 11, 0, 0, 0, time.UTC))
	pub.EXPECT().PublishWithContext(gomock.Any(), "gym.events", "booking.cancelled", false, false, gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _ string, _, _ bool, msg amqp.Publishing) error {
			assert.Equal(t, "application/json", msg.ContentType)
			assert.Equal(t, event.ID.String(), msg.MessageId)

			var got Event
			require.NoError(t, json.Unmarshal(msg.Body, &got))
			assert.Equal(t, event.BookingID, got.BookingID)
			assert.Equal(t, event.Type, got.Type)
			return nil
		})

	require.NoError(t, sink.Send(context.Background(), event))
}

func TestRabbitSink_SendError(t *testing.T) {
	ctrl := gomock.NewController(t)
	pub := NewMockPublisher(ctrl)
	sink := &RabbitSink{ch: pub, exchange: "gym.events"}

	pub.EXPECT().PublishWithContext(gomock.Any(), gomock.Any(), gomock.Any(), false, false, gomock.Any()).
		Return(amqp.ErrClosed)

	assert.ErrorIs(t, sink.Send(context.Background(), NewEvent(BookingConfirmed, 1, 1, "", time.Now())), amqp.ErrClosed)
}

func TestLogSink(t *testing.T) {
	assert.NoError(t, LogSink{}.Send(context.Background(), NewEvent(BookingConfirmed, 1, 1, "ok", time.Now())))
}
