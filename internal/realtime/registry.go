package realtime

import (
	"sync"
	"time"

	"github.com/Rohan-debug788/SkillSwap/pkg/monitoring"
)

// Conn is one live real-time connection of an authenticated user.
// Send must not block.
type Conn interface {
	ID() string
	UserID() string
	Send(evt Event) bool
}

// Registry maps users to their live connections. Every read and write goes
// through one mutex so no caller sees a half-updated connection set.
type Registry struct {
	mu       sync.RWMutex
	conns    map[string]map[string]Conn
	lastSeen map[string]time.Time
	now      func() time.Time
}

func NewRegistry() *Registry {
	return &Registry{
		conns:    make(map[string]map[string]Conn),
		lastSeen: make(map[string]time.Time),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Register adds conn under userID and reports whether it is the user's first.
func (r *Registry) Register(userID string, conn Conn) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	set, ok := r.conns[userID]
	if !ok {
		set = make(map[string]Conn)
		r.conns[userID] = set
	}
	if _, dup := set[conn.ID()]; dup {
		return false
	}
	set[conn.ID()] = conn

	monitoring.WSConnections.Inc()
	if len(set) == 1 {
		monitoring.OnlineUsers.Inc()
		return true
	}
	return false
}

// Unregister removes conn. When it was the user's last connection it returns
// true and the recorded last-seen time.
func (r *Registry) Unregister(userID string, conn Conn) (bool, time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	set, ok := r.conns[userID]
	if !ok {
		return false, time.Time{}
	}
	if _, ok := set[conn.ID()]; !ok {
		return false, time.Time{}
	}
	delete(set, conn.ID())
	monitoring.WSConnections.Dec()

	if len(set) > 0 {
		return false, time.Time{}
	}
	delete(r.conns, userID)
	monitoring.OnlineUsers.Dec()

	seen := r.now()
	r.lastSeen[userID] = seen
	return true, seen
}

// ConnectionsFor returns a snapshot of userID's connections.
func (r *Registry) ConnectionsFor(userID string) []Conn {
	r.mu.RLock()
	defer r.mu.RUnlock()

	set := r.conns[userID]
	out := make([]Conn, 0, len(set))
	for _, c := range set {
		out = append(out, c)
	}
	return out
}

func (r *Registry) IsOnline(userID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.conns[userID]) > 0
}

// LastSeen returns when userID's last connection closed in this process.
func (r *Registry) LastSeen(userID string) (time.Time, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.lastSeen[userID]
	return t, ok
}

// OnlineUsers returns every user with at least one connection.
func (r *Registry) OnlineUsers() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(r.conns))
	for id := range r.conns {
		out = append(out, id)
	}
	return out
}

func (r *Registry) ConnectionCount(userID string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.conns[userID])
}
