package realtime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/fieldsafe-service/internal/observability"
)

func newTestRegistry() *Registry {
	return NewRegistry(zap.NewNop(), observability.NewMetrics())
}

func receiveFrame(t *testing.T, conn *Connection) Event {
	t.Helper()
	select {
	case ev := <-conn.Frames():
		return ev
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for frame")
		return Event{}
	}
}

func assertNoFrame(t *testing.T, conn *Connection) {
	t.Helper()
	select {
	case ev := <-conn.Frames():
		t.Fatalf("unexpected frame delivered: %+v", ev)
	default:
	}
}

func TestSendToDeliversToRegisteredConnection(t *testing.T) {
	registry := newTestRegistry()
	conn := NewConnection("U1", 4)
	registry.Register(conn)

	require.True(t, registry.SendTo("U1", NewEvent("status_changed", map[string]string{"form": "jha-12"})))

	ev := receiveFrame(t, conn)
	assert.Equal(t, "status_changed", ev.Type)
	assert.NotEmpty(t, ev.ID)
	assert.False(t, ev.Timestamp.IsZero())
	assertNoFrame(t, conn)
}

func TestSendToUnknownIdentity(t *testing.T) {
	registry := newTestRegistry()
	assert.False(t, registry.SendTo("nobody", Ping()))
}

// register(id, A); register(id, B); sendTo(id, e) delivers to B only.
func TestRegisterReplaces(t *testing.T) {
	registry := newTestRegistry()
	connA := NewConnection("U1", 4)
	connB := NewConnection("U1", 4)

	registry.Register(connA)
	registry.Register(connB)
	assert.Equal(t, 1, registry.Len())

	require.True(t, registry.SendTo("U1", NewEvent("note", nil)))
	assertNoFrame(t, connA)
	ev := receiveFrame(t, connB)
	assert.Equal(t, "note", ev.Type)
}

// A replaced connection's teardown must not evict its successor.
func TestStaleUnregisterKeepsReplacement(t *testing.T) {
	registry := newTestRegistry()
	connA := NewConnection("U1", 4)
	connB := NewConnection("U1", 4)

	registry.Register(connA)
	registry.Register(connB)
	registry.Unregister("U1", connA)

	assert.Equal(t, 1, registry.Len())
	assert.True(t, registry.SendTo("U1", Ping()))
}

func TestUnregisterIdempotent(t *testing.T) {
	registry := newTestRegistry()
	conn := NewConnection("U1", 4)
	registry.Register(conn)

	registry.Unregister("U1", nil)
	registry.Unregister("U1", nil)

	assert.Equal(t, 0, registry.Len())
	assert.False(t, registry.SendTo("U1", Ping()))
}

func TestSendToClosedConnectionEvicts(t *testing.T) {
	registry := newTestRegistry()
	conn := NewConnection("U1", 4)
	registry.Register(conn)
	conn.Close()

	assert.False(t, registry.SendTo("U1", Ping()))
	assert.Equal(t, 0, registry.Len())
}

func TestSendToFullBufferEvicts(t *testing.T) {
	registry := newTestRegistry()
	conn := NewConnection("U1", 1)
	registry.Register(conn)

	require.True(t, registry.SendTo("U1", NewEvent("a", nil)))
	// nobody drains; the next delivery fails and evicts
	assert.False(t, registry.SendTo("U1", NewEvent("b", nil)))
	assert.Equal(t, 0, registry.Len())
}

// Broadcast keeps delivering to live channels when one fails, returns a
// count excluding the failure, and evicts the failed channel.
func TestBroadcastFaultIsolation(t *testing.T) {
	registry := newTestRegistry()
	healthy1 := NewConnection("U1", 4)
	healthy2 := NewConnection("U2", 4)
	dead := NewConnection("U3", 4)
	registry.Register(healthy1)
	registry.Register(healthy2)
	registry.Register(dead)
	dead.Close()

	delivered := registry.Broadcast(NewEvent("site_alert", map[string]string{"severity": "high"}))

	assert.Equal(t, 2, delivered)
	assert.Equal(t, 2, registry.Len())
	assert.Equal(t, "site_alert", receiveFrame(t, healthy1).Type)
	assert.Equal(t, "site_alert", receiveFrame(t, healthy2).Type)
}

// Open a connection, push one event, tear down, and verify the identity is
// gone without error.
func TestConnectionLifecycle(t *testing.T) {
	registry := newTestRegistry()
	conn := NewConnection("U1", 4)
	registry.Register(conn)

	require.True(t, registry.SendTo("U1", Ping()))
	ev := receiveFrame(t, conn)
	assert.Equal(t, FramePing, ev.Type)
	assertNoFrame(t, conn)

	registry.Unregister("U1", nil)
	assert.False(t, registry.SendTo("U1", Ping()))

	select {
	case <-conn.Done():
	default:
		t.Fatal("unregister should close the connection")
	}
}

func TestConnectionCloseIdempotent(t *testing.T) {
	conn := NewConnection("U1", 1)
	conn.Close()
	conn.Close()

	assert.False(t, conn.deliver(Ping()))
}
