package eventbus

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type testEvent struct{ name string }

func (e testEvent) Name() string { return e.name }

func TestBus_PublishDeliversToSubscribers(t *testing.T) {
	bus := New(zap.NewNop())

	received := make(chan Event, 1)
	bus.Subscribe("item.created", func(ctx context.Context, event Event) error {
		received <- event
		return nil
	})

	bus.Publish(context.Background(), testEvent{name: "item.created"})

	select {
	case e := <-received:
		assert.Equal(t, "item.created", e.Name())
	case <-time.After(2 * time.Second):
		t.Fatal("событие не доставлено")
	}
}

func TestBus_PublishIgnoresUnrelatedEvents(t *testing.T) {
	bus := New(zap.NewNop())

	var calls int64
	bus.Subscribe("item.created", func(ctx context.Context, event Event) error {
		atomic.AddInt64(&calls, 1)
		return nil
	})

	bus.Publish(context.Background(), testEvent{name: "item.deleted"})
	time.Sleep(50 * time.Millisecond)

	assert.Equal(t, int64(0), atomic.LoadInt64(&calls))
}

func TestBus_ListenerErrorDoesNotAffectOthers(t *testing.T) {
	bus := New(zap.NewNop())

	done := make(chan struct{})
	bus.Subscribe("sync.tick", func(ctx context.Context, event Event) error {
		return fmt.Errorf("обработчик упал")
	})
	bus.Subscribe("sync.tick", func(ctx context.Context, event Event) error {
		close(done)
		return nil
	})

	bus.Publish(context.Background(), testEvent{name: "sync.tick"})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("второй обработчик не был вызван")
	}
}
