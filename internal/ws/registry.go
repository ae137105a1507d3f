package ws

import (
	"log/slog"
	"sync"
)

// Conn is a live duplex channel to one subscriber. The transport layer
// wraps its concrete connection (a WebSocket) in this interface; the
// registry never sees the transport directly.
type Conn interface {
	// Send delivers one serialized event to the subscriber.
	Send(data []byte) error

	// Close tears the connection down. Safe to call more than once.
	Close() error
}

// Registry tracks live connections per subject ID and delivers
// notification events to them. A subject may own any number of
// concurrent connections (multiple devices or tabs).
//
// One mutex guards the subject map and every delivery iteration, so a
// connection can never be written mid-removal. Critical sections perform
// no blocking I/O beyond the per-connection transport write, and a
// failed write removes that connection without aborting delivery to its
// siblings.
type Registry struct {
	mu          sync.Mutex
	connections map[int64][]Conn
	logger      *slog.Logger
}

// NewRegistry creates an empty connection registry.
func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		connections: make(map[int64][]Conn),
		logger:      logger.With(slog.String("component", "connection_registry")),
	}
}

// Register records the connection under the subject's connection set.
// Multiple concurrent registrations for the same subject are all retained.
func (r *Registry) Register(conn Conn, subjectID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.connections[subjectID] = append(r.connections[subjectID], conn)
	r.logger.Debug("connection registered",
		"subject_id", subjectID,
		"subject_connections", len(r.connections[subjectID]))
}

// Unregister removes the connection from the subject's set. If the set
// becomes empty the subject entry is removed entirely. Unknown
// connections are ignored.
func (r *Registry) Unregister(conn Conn, subjectID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.removeLocked(conn, subjectID)
}

// removeLocked drops conn from subjectID's set. Callers must hold r.mu.
func (r *Registry) removeLocked(conn Conn, subjectID int64) {
	conns, ok := r.connections[subjectID]
	if !ok {
		return
	}

	for i, c := range conns {
		if c == conn {
			conns = append(conns[:i], conns[i+1:]...)
			break
		}
	}

	if len(conns) == 0 {
		delete(r.connections, subjectID)
	} else {
		r.connections[subjectID] = conns
	}
}

// Broadcast delivers the payload to every registered connection. Order
// across subjects is unspecified; per-connection order follows the
// order of Broadcast calls. Connections whose send fails are removed
// and closed; the failure does not stop the fan-out.
func (r *Registry) Broadcast(payload []byte) {
	r.deliver(payload, nil)
}

// SendTo delivers the payload only to connections registered under the
// given subject ID. No-op if none are registered.
func (r *Registry) SendTo(subjectID int64, payload []byte) {
	r.deliver(payload, &subjectID)
}

type deadConn struct {
	conn      Conn
	subjectID int64
}

func (r *Registry) deliver(payload []byte, only *int64) {
	var dead []deadConn

	r.mu.Lock()
	for subjectID, conns := range r.connections {
		if only != nil && subjectID != *only {
			continue
		}
		for _, conn := range conns {
			if err := conn.Send(payload); err != nil {
				r.logger.Warn("failed to deliver event, dropping connection",
					"subject_id", subjectID,
					"error", err)
				dead = append(dead, deadConn{conn: conn, subjectID: subjectID})
			}
		}
	}
	for _, d := range dead {
		r.removeLocked(d.conn, d.subjectID)
	}
	r.mu.Unlock()

	// Close outside the critical section; transports may block on close.
	for _, d := range dead {
		if err := d.conn.Close(); err != nil {
			r.logger.Debug("failed to close dropped connection",
				"subject_id", d.subjectID,
				"error", err)
		}
	}
}

// Len reports the number of live connections across all subjects.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for _, conns := range r.connections {
		n += len(conns)
	}
	return n
}

// Subjects reports the number of subject IDs with at least one
// registered connection.
func (r *Registry) Subjects() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.connections)
}
