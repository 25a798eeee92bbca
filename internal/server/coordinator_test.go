package server

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentFrame struct {
	connID string
	data   []byte
}

// fakeTransport records every frame the coordinator delivers.
type fakeTransport struct {
	mu     sync.Mutex
	frames []sentFrame
}

func (f *fakeTransport) Send(connID string, data []byte) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.frames = append(f.frames, sentFrame{connID: connID, data: data})
	return true
}

func (f *fakeTransport) sent() []sentFrame {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]sentFrame, len(f.frames))
	copy(out, f.frames)
	return out
}

type handlerFunc func(Event) []Outbound

func (h handlerFunc) Handle(ev Event) []Outbound { return h(ev) }

func startCoordinator(t *testing.T, h Handler) (*Coordinator, *fakeTransport, context.CancelFunc) {
	t.Helper()
	tr := &fakeTransport{}
	c := NewCoordinator(tr, 16)
	ctx, cancel := context.WithCancel(context.Background())
	go c.Run(ctx, h)
	t.Cleanup(func() {
		cancel()
		<-c.Done()
	})
	return c, tr, cancel
}

// Test: Outbound is encoded once and fanned out to every recipient
// Why: Broadcasts go through a single marshal
func TestCoordinator_DeliversToEveryRecipient(t *testing.T) {
	assert := assert.New(t)

	h := handlerFunc(func(ev Event) []Outbound {
		in := ev.(Inbound)
		return []Outbound{roomcast([]string{in.ConnID, "other"}, MsgPong, struct{}{})}
	})
	c, tr, _ := startCoordinator(t, h)

	require.True(t, c.Post(Inbound{ConnID: "c1", Message: ClientMessage{Type: MsgPing}}))
	require.NoError(t, c.Do(context.Background(), func() {}))

	frames := tr.sent()
	require.Len(t, frames, 2)
	assert.Equal("c1", frames[0].connID)
	assert.Equal("other", frames[1].connID)

	var msg ServerMessage
	require.NoError(t, json.Unmarshal(frames[0].data, &msg))
	assert.Equal(MsgPong, msg.Type)
	assert.Equal(frames[0].data, frames[1].data)
}

// Test: Events are handled one at a time in arrival order
// Why: The engine is not safe for concurrent use
func TestCoordinator_SerializesEvents(t *testing.T) {
	var (
		order   []string
		running int
		maxSeen int
	)
	h := handlerFunc(func(ev Event) []Outbound {
		running++
		maxSeen = max(maxSeen, running)
		order = append(order, ev.(Disconnected).ConnID)
		running--
		return nil
	})
	c, _, _ := startCoordinator(t, h)

	for _, id := range []string{"a", "b", "c", "d"} {
		require.True(t, c.Post(Disconnected{ConnID: id}))
	}

	var got []string
	require.NoError(t, c.Do(context.Background(), func() {
		got = append(got, order...)
	}))

	assert.Equal(t, []string{"a", "b", "c", "d"}, got)
	assert.Equal(t, 1, maxSeen)
}

// Test: Post and Do fail once the loop has stopped
// Why: Read loops and HTTP handlers must not block on a dead coordinator
func TestCoordinator_Stopped(t *testing.T) {
	c, _, cancel := startCoordinator(t, handlerFunc(func(Event) []Outbound { return nil }))

	cancel()
	select {
	case <-c.Done():
	case <-time.After(time.Second):
		t.Fatal("coordinator did not stop")
	}

	assert.False(t, c.Post(Disconnected{ConnID: "c1"}))
	assert.ErrorIs(t, c.Do(context.Background(), func() {}), ErrCoordinatorStopped)
}

// Test: Do honours its context
// Why: /rooms must not hang when the coordinator is backed up
func TestCoordinator_DoContextCancelled(t *testing.T) {
	block := make(chan struct{})
	h := handlerFunc(func(Event) []Outbound {
		<-block
		return nil
	})
	c, _, _ := startCoordinator(t, h)
	defer close(block)

	require.True(t, c.Post(Disconnected{ConnID: "slow"}))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, c.Do(ctx, func() {}), context.DeadlineExceeded)
}

// Test: Unencodable payloads are skipped, later messages still go out
// Why: One bad message must not stall the loop
func TestCoordinator_SkipsUnencodableMessages(t *testing.T) {
	h := handlerFunc(func(Event) []Outbound {
		return []Outbound{
			unicast("c1", "bad", make(chan int)),
			unicast("c1", MsgPong, struct{}{}),
		}
	})
	c, tr, _ := startCoordinator(t, h)

	require.True(t, c.Post(Disconnected{ConnID: "c1"}))
	require.NoError(t, c.Do(context.Background(), func() {}))

	frames := tr.sent()
	require.Len(t, frames, 1)
	assert.JSONEq(t, `{"type":"pong","payload":{}}`, string(frames[0].data))
}
