package pubsub

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestListenCmd_ReceivesEvent(t *testing.T) {
	broker := NewBroker[string]()
	defer broker.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := broker.Subscribe(ctx)

	broker.Publish("hello world")

	cmd := ListenCmd(ctx, ch)
	msg := cmd()

	// Should receive the event as tea.Msg
	event, ok := msg.(Event[string])
	require.True(t, ok, "msg should be Event[string]")
	require.Equal(t, "hello world", event.Payload)
}

func TestListenCmd_ContextCancelled(t *testing.T) {
	broker := NewBroker[string]()
	defer broker.Close()

	ctx, cancel := context.WithCancel(context.Background())
	ch := broker.Subscribe(ctx)

	// Cancel context before executing command
	cancel()
	time.Sleep(20 * time.Millisecond) // Wait for cleanup

	cmd := ListenCmd(ctx, ch)
	msg := cmd()

	require.Nil(t, msg, "should return nil when context cancelled")
}

func TestListenCmd_ChannelClosed(t *testing.T) {
	ch := make(chan Event[string])
	close(ch)

	ctx := context.Background()

	cmd := ListenCmd(ctx, ch)
	msg := cmd()

	require.Nil(t, msg, "should return nil when channel closed")
}

func TestContinuousListener_Listen(t *testing.T) {
	broker := NewBroker[int]()
	defer broker.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	listener := NewContinuousListener(ctx, broker)

	broker.Publish(1)
	broker.Publish(2)
	broker.Publish(3)

	// Each Listen() call returns a cmd that receives the next event in order
	for want := 1; want <= 3; want++ {
		cmd := listener.Listen()
		msg := cmd()

		event, ok := msg.(Event[int])
		require.True(t, ok, "msg should be Event[int]")
		require.Equal(t, want, event.Payload)
	}
}
