package realtime

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/fieldsafe-service/internal/observability"
)

// Connection is a live push channel bound to exactly one principal identity.
// Its lifecycle is Open -> (Closed | Failed); both are terminal and both end
// in eviction from the registry. Reconnection is a brand-new Connection.
type Connection struct {
	principalID string
	openedAt    time.Time
	frames      chan Event
	done        chan struct{}
	closeOnce   sync.Once
}

// NewConnection creates an open connection for the identity. The buffer
// absorbs bursts; a full buffer counts as delivery failure rather than
// blocking the sender.
func NewConnection(principalID string, buffer int) *Connection {
	if buffer <= 0 {
		buffer = 16
	}
	return &Connection{
		principalID: principalID,
		openedAt:    time.Now(),
		frames:      make(chan Event, buffer),
		done:        make(chan struct{}),
	}
}

// PrincipalID returns the identity this connection is bound to.
func (c *Connection) PrincipalID() string {
	return c.principalID
}

// OpenedAt returns when the connection was created.
func (c *Connection) OpenedAt() time.Time {
	return c.openedAt
}

// Frames returns the channel the owning stream task reads frames from.
func (c *Connection) Frames() <-chan Event {
	return c.frames
}

// Done is closed once the connection reaches a terminal state.
func (c *Connection) Done() <-chan struct{} {
	return c.done
}

// Close marks the connection terminal. Safe to call from any goroutine and
// more than once; the frames channel is never closed so a concurrent deliver
// can never panic.
func (c *Connection) Close() {
	c.closeOnce.Do(func() { close(c.done) })
}

// deliver attempts a non-blocking handoff of one frame.
func (c *Connection) deliver(ev Event) bool {
	select {
	case <-c.done:
		return false
	default:
	}
	select {
	case c.frames <- ev:
		return true
	case <-c.done:
		return false
	default:
		return false
	}
}

// Registry is the in-memory directory mapping a principal identity to its
// open push channel. All state is guarded by one mutex; delivery never
// happens while the lock is held.
type Registry struct {
	mu      sync.Mutex
	conns   map[string]*Connection
	logger  *zap.Logger
	metrics *observability.Metrics
}

// NewRegistry builds an empty registry.
func NewRegistry(logger *zap.Logger, metrics *observability.Metrics) *Registry {
	return &Registry{
		conns:   make(map[string]*Connection),
		logger:  logger,
		metrics: metrics,
	}
}

// Register stores the connection under its principal identity. An existing
// entry is unconditionally replaced; the transport that owns the old
// connection remains responsible for closing it. The new connection becomes
// the sole target of future sends for that identity.
func (r *Registry) Register(conn *Connection) {
	r.mu.Lock()
	r.conns[conn.principalID] = conn
	size := len(r.conns)
	r.mu.Unlock()

	r.metrics.SetOpenConnections(size)
	r.logger.Debug("connection registered",
		zap.String("principal_id", conn.principalID),
		zap.Int("open_connections", size))
}

// Unregister removes the entry for principalID. When conn is non-nil the
// entry is removed only if it still is that exact connection, so a replaced
// connection's teardown can never evict its successor. Removing an absent
// identity is a no-op.
func (r *Registry) Unregister(principalID string, conn *Connection) {
	r.mu.Lock()
	current, ok := r.conns[principalID]
	if ok && (conn == nil || current == conn) {
		delete(r.conns, principalID)
	} else {
		ok = false
	}
	size := len(r.conns)
	r.mu.Unlock()

	if !ok {
		return
	}
	current.Close()
	r.metrics.SetOpenConnections(size)
	r.logger.Debug("connection unregistered",
		zap.String("principal_id", principalID),
		zap.Int("open_connections", size))
}

// SendTo attempts best-effort delivery of one frame to the identity's
// connection. Any delivery failure evicts the entry and returns false; there
// is no retry and no queueing.
func (r *Registry) SendTo(principalID string, ev Event) bool {
	r.mu.Lock()
	conn, ok := r.conns[principalID]
	r.mu.Unlock()
	if !ok {
		r.metrics.RecordDelivery(false)
		return false
	}

	if !conn.deliver(ev) {
		r.evict(principalID, conn, ev.Type)
		r.metrics.RecordDelivery(false)
		return false
	}
	r.metrics.RecordDelivery(true)
	return true
}

// Broadcast attempts delivery to every registered connection over a
// consistent snapshot of the identity set, evicting any that fail, and
// returns the number of successful deliveries.
func (r *Registry) Broadcast(ev Event) int {
	r.mu.Lock()
	snapshot := make(map[string]*Connection, len(r.conns))
	for id, conn := range r.conns {
		snapshot[id] = conn
	}
	r.mu.Unlock()

	delivered := 0
	for id, conn := range snapshot {
		if conn.deliver(ev) {
			delivered++
			r.metrics.RecordDelivery(true)
			continue
		}
		r.evict(id, conn, ev.Type)
		r.metrics.RecordDelivery(false)
	}
	return delivered
}

// Len reports the number of live connections.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.conns)
}

// evict removes a dead connection, but only if it is still the registered
// one for the identity.
func (r *Registry) evict(principalID string, conn *Connection, frameType string) {
	r.mu.Lock()
	if current, ok := r.conns[principalID]; ok && current == conn {
		delete(r.conns, principalID)
	}
	size := len(r.conns)
	r.mu.Unlock()

	conn.Close()
	r.metrics.SetOpenConnections(size)
	r.logger.Info("connection evicted after failed delivery",
		zap.String("principal_id", principalID),
		zap.String("frame_type", frameType))
}
