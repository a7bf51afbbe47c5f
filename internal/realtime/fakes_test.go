package realtime

import (
	"context"
	"sync"
	"time"

	"github.com/Rohan-debug788/SkillSwap/pkg/errors"
)

type fakeConn struct {
	id     string
	userID string

	mu     sync.Mutex
	events []Event
}

func newFakeConn(id, userID string) *fakeConn {
	return &fakeConn{id: id, userID: userID}
}

func (c *fakeConn) ID() string     { return c.id }
func (c *fakeConn) UserID() string { return c.userID }

func (c *fakeConn) Send(evt Event) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, evt)
	return true
}

func (c *fakeConn) received(event string) []Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []Event
	for _, e := range c.events {
		if e.Event == event {
			out = append(out, e)
		}
	}
	return out
}

func (c *fakeConn) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = nil
}

// staticVerifier accepts tokens of the form "token-<userID>".
type staticVerifier struct{}

func (staticVerifier) Verify(_ context.Context, token string) (string, error) {
	const prefix = "token-"
	if len(token) <= len(prefix) || token[:len(prefix)] != prefix {
		return "", errors.New(errors.ErrCodeUnauthorized, "invalid token")
	}
	return token[len(prefix):], nil
}

type fakeMirror struct {
	mu       sync.Mutex
	online   map[string]bool
	lastSeen map[string]time.Time
}

func newFakeMirror() *fakeMirror {
	return &fakeMirror{online: map[string]bool{}, lastSeen: map[string]time.Time{}}
}

func (m *fakeMirror) SetOnline(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.online[userID] = true
	return nil
}

func (m *fakeMirror) SetOffline(_ context.Context, userID string, lastSeen time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.online[userID] = false
	m.lastSeen[userID] = lastSeen
	return nil
}

func (m *fakeMirror) IsOnline(_ context.Context, userID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.online[userID], nil
}

// slowMirror parks SetOnline until release is closed.
type slowMirror struct {
	*fakeMirror
	entered chan struct{}
	release chan struct{}
}

func newSlowMirror() *slowMirror {
	return &slowMirror{fakeMirror: newFakeMirror(), entered: make(chan struct{}), release: make(chan struct{})}
}

func (m *slowMirror) SetOnline(ctx context.Context, userID string) error {
	close(m.entered)
	<-m.release
	return m.fakeMirror.SetOnline(ctx, userID)
}

func (m *fakeMirror) LastSeen(_ context.Context, userID string) (*time.Time, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.lastSeen[userID]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

type fixedAudience map[string][]string

func (a fixedAudience) RelatedUsers(_ context.Context, userID string) ([]string, error) {
	return a[userID], nil
}

var fixedTime = time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
