// ABOUTME: Tests for the generic fan-out broadcaster
// ABOUTME: Covers subscribe, publish, slow consumers, context-driven unsubscribe, and Close

package events

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBroadcaster_SingleSubscriberReceivesValue(t *testing.T) {
	b := NewBroadcaster[string](0, nil)
	defer b.Close()

	ch, _ := b.Subscribe(t.Context())

	b.Publish("hello")

	select {
	case received := <-ch:
		assert.Equal(t, "hello", received)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for value")
	}
}

func TestBroadcaster_MultipleSubscribersReceiveSameValue(t *testing.T) {
	b := NewBroadcaster[int](0, nil)
	defer b.Close()

	ctx := t.Context()

	ch1, _ := b.Subscribe(ctx)
	ch2, _ := b.Subscribe(ctx)
	ch3, _ := b.Subscribe(ctx)

	b.Publish(7)

	for i, ch := range []<-chan int{ch1, ch2, ch3} {
		select {
		case received := <-ch:
			assert.Equal(t, 7, received, "subscriber %d got wrong value", i)
		case <-time.After(time.Second):
			t.Fatalf("subscriber %d timed out", i)
		}
	}
}

func TestBroadcaster_PreservesPublishOrder(t *testing.T) {
	b := NewBroadcaster[int](0, nil)
	defer b.Close()

	ch, _ := b.Subscribe(t.Context())

	for i := 0; i < 10; i++ {
		b.Publish(i)
	}

	for want := 0; want < 10; want++ {
		select {
		case got := <-ch:
			require.Equal(t, want, got)
		case <-time.After(time.Second):
			t.Fatalf("timed out waiting for value %d", want)
		}
	}
}

func TestBroadcaster_UnsubscribeDetachesOnlyOneConsumer(t *testing.T) {
	b := NewBroadcaster[string](0, nil)
	defer b.Close()

	ctx := t.Context()

	ch1, subID1 := b.Subscribe(ctx)
	ch2, _ := b.Subscribe(ctx)

	b.Unsubscribe(subID1)

	// ch1 is closed
	_, open := <-ch1
	assert.False(t, open, "unsubscribed channel should be closed")

	// ch2 still receives
	b.Publish("still here")
	select {
	case received := <-ch2:
		assert.Equal(t, "still here", received)
	case <-time.After(time.Second):
		t.Fatal("remaining subscriber timed out")
	}
}

func TestBroadcaster_SlowConsumerDoesNotBlockPublisher(t *testing.T) {
	b := NewBroadcaster[int](4, nil)
	defer b.Close()

	ctx := t.Context()

	// Subscribe but never read from ch1 (slow consumer)
	_, _ = b.Subscribe(ctx)
	ch2, _ := b.Subscribe(ctx)

	// Publish more values than the buffer size to overflow ch1
	done := make(chan struct{})
	go func() {
		for i := 0; i < 20; i++ {
			b.Publish(i)
		}
		close(done)
	}()

	select {
	case <-done:
		// Publisher was not blocked by the slow consumer
	case <-time.After(2 * time.Second):
		t.Fatal("publisher blocked by slow consumer")
	}

	// The active subscriber still got the first values
	select {
	case got := <-ch2:
		assert.Equal(t, 0, got)
	case <-time.After(time.Second):
		t.Fatal("active subscriber timed out")
	}
}

func TestBroadcaster_ContextCancellationUnsubscribes(t *testing.T) {
	b := NewBroadcaster[int](0, nil)
	defer b.Close()

	ctx, cancel := context.WithCancel(t.Context())
	ch, _ := b.Subscribe(ctx)

	require.Equal(t, 1, b.SubscriberCount())

	cancel()

	// Cleanup happens on a goroutine; wait for the channel to close
	select {
	case _, open := <-ch:
		assert.False(t, open, "channel should be closed after context cancellation")
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for unsubscription")
	}
	assert.Equal(t, 0, b.SubscriberCount())
}

func TestBroadcaster_CloseClosesAllSubscribers(t *testing.T) {
	b := NewBroadcaster[int](0, nil)

	ctx := t.Context()
	ch1, _ := b.Subscribe(ctx)
	ch2, _ := b.Subscribe(ctx)

	b.Close()

	_, open1 := <-ch1
	_, open2 := <-ch2
	assert.False(t, open1)
	assert.False(t, open2)

	// Publishing after close is a no-op, not a panic
	b.Publish(1)

	// Subscribing after close yields a closed channel
	ch3, _ := b.Subscribe(ctx)
	_, open3 := <-ch3
	assert.False(t, open3)
}

// Publishers must never send on a channel that Unsubscribe or Close has
// already closed. Small buffers keep the channels full so the send path
// overlaps the close path as often as possible; run with -race.
func TestBroadcaster_ConcurrentPublishUnsubscribeDoesNotPanic(t *testing.T) {
	for iter := 0; iter < 200; iter++ {
		b := NewBroadcaster[int](1, nil)

		ids := make([]string, 8)
		for i := range ids {
			_, ids[i] = b.Subscribe(context.Background())
		}

		var wg sync.WaitGroup
		for i := 0; i < 4; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < 20; j++ {
					b.Publish(j)
				}
			}()
		}
		for _, id := range ids {
			wg.Add(1)
			go func(id string) {
				defer wg.Done()
				b.Unsubscribe(id)
			}(id)
		}
		wg.Wait()

		b.Close()
	}
}

// Context cancellation unsubscribes on a background goroutine, so the
// resulting close races host-signal publishes in normal operation.
func TestBroadcaster_ContextCancelDuringPublishDoesNotPanic(t *testing.T) {
	b := NewBroadcaster[int](1, nil)
	defer b.Close()

	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
				b.Publish(1)
			}
		}
	}()

	for i := 0; i < 100; i++ {
		ctx, cancel := context.WithCancel(context.Background())
		ch, _ := b.Subscribe(ctx)
		go func() {
			for range ch {
			}
		}()
		cancel()
	}

	require.Eventually(t, func() bool {
		return b.SubscriberCount() == 0
	}, 5*time.Second, 10*time.Millisecond)

	close(stop)
	wg.Wait()
}

func TestBroadcaster_ConcurrentSubscribePublish(t *testing.T) {
	b := NewBroadcaster[int](0, nil)
	defer b.Close()

	ctx := t.Context()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			ch, id := b.Subscribe(ctx)
			go func() {
				for range ch {
				}
			}()
			time.Sleep(10 * time.Millisecond)
			b.Unsubscribe(id)
		}()
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				b.Publish(n*50 + j)
			}
		}(i)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("concurrent subscribe/publish deadlocked")
	}
}
