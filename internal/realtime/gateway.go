package realtime

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/Rohan-debug788/SkillSwap/internal/config"
	"github.com/Rohan-debug788/SkillSwap/internal/models"
	"github.com/Rohan-debug788/SkillSwap/internal/services"
	"github.com/Rohan-debug788/SkillSwap/pkg/errors"
	"github.com/Rohan-debug788/SkillSwap/pkg/logger"
	"github.com/Rohan-debug788/SkillSwap/pkg/monitoring"
)

const mirrorTimeout = 3 * time.Second

// TokenVerifier resolves a connection credential to a user id.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (string, error)
}

// PresenceMirror persists presence transitions outside the process.
type PresenceMirror interface {
	SetOnline(ctx context.Context, userID string) error
	SetOffline(ctx context.Context, userID string, lastSeen time.Time) error
	IsOnline(ctx context.Context, userID string) (bool, error)
	LastSeen(ctx context.Context, userID string) (*time.Time, error)
}

// AudienceResolver lists the users related to a subject.
type AudienceResolver interface {
	RelatedUsers(ctx context.Context, userID string) ([]string, error)
}

// Gateway routes chat and read-receipt events between live connections and
// broadcasts presence changes. It knows nothing about the transport.
type Gateway struct {
	registry *Registry
	messages *services.MessageService
	verifier TokenVerifier
	mirror   PresenceMirror
	audience AudienceResolver
	scope    string

	// presence transitions of one user are announced in registry order
	presenceMu sync.Mutex
	presence   map[string]*presenceLock
}

type presenceLock struct {
	mu   sync.Mutex
	refs int
}

func NewGateway(registry *Registry, messages *services.MessageService, verifier TokenVerifier) *Gateway {
	return &Gateway{
		registry: registry,
		messages: messages,
		verifier: verifier,
		scope:    config.PresenceScopeGlobal,
		presence: make(map[string]*presenceLock),
	}
}

// lockPresence serializes Connect and Disconnect for userID and returns the unlock func.
func (g *Gateway) lockPresence(userID string) func() {
	g.presenceMu.Lock()
	l, ok := g.presence[userID]
	if !ok {
		l = &presenceLock{}
		g.presence[userID] = l
	}
	l.refs++
	g.presenceMu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		g.presenceMu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(g.presence, userID)
		}
		g.presenceMu.Unlock()
	}
}

// SetPresenceMirror attaches an external presence mirror.
func (g *Gateway) SetPresenceMirror(m PresenceMirror) {
	g.mirror = m
}

// SetPresenceScope selects who hears presence changes. With PresenceScopeRelated
// only users matched with or holding a pending request with the subject do.
func (g *Gateway) SetPresenceScope(scope string, resolver AudienceResolver) {
	g.scope = scope
	g.audience = resolver
}

func (g *Gateway) Registry() *Registry {
	return g.registry
}

// Authenticate verifies a connection credential.
func (g *Gateway) Authenticate(ctx context.Context, token string) (string, error) {
	userID, err := g.verifier.Verify(ctx, token)
	if err != nil {
		logger.Warn("Refused real-time connection", "error", err)
		return "", err
	}
	return userID, nil
}

// Connect registers conn and announces the user if this is their first connection.
func (g *Gateway) Connect(ctx context.Context, conn Conn) {
	userID := conn.UserID()
	unlock := g.lockPresence(userID)
	defer unlock()

	first := g.registry.Register(userID, conn)
	logger.Info("Real-time connection opened", "user_id", userID, "conn_id", conn.ID(), "first", first)

	if !first {
		return
	}
	g.mirrorOnline(ctx, userID)
	g.broadcastStatus(ctx, UserStatusPayload{UserID: userID, Status: models.PresenceOnline})
}

// Disconnect unregisters conn; losing the last connection announces the user offline.
func (g *Gateway) Disconnect(ctx context.Context, conn Conn) {
	userID := conn.UserID()
	unlock := g.lockPresence(userID)
	defer unlock()

	last, lastSeen := g.registry.Unregister(userID, conn)
	logger.Info("Real-time connection closed", "user_id", userID, "conn_id", conn.ID(), "last", last)

	if !last {
		return
	}
	g.mirrorOffline(ctx, userID, lastSeen)
	g.broadcastStatus(ctx, UserStatusPayload{UserID: userID, Status: models.PresenceOffline, LastSeen: &lastSeen})
}

// Dispatch decodes one inbound frame from conn and handles it.
func (g *Gateway) Dispatch(ctx context.Context, conn Conn, raw []byte) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		g.sendError(conn, "", errors.New(errors.ErrCodeValidation, "malformed event"))
		return
	}
	monitoring.WSEventCounter.WithLabelValues(env.Event, "in").Inc()

	switch env.Event {
	case EventSendMessage:
		var p SendMessagePayload
		if err := json.Unmarshal(env.Data, &p); err != nil {
			g.sendError(conn, env.Event, errors.New(errors.ErrCodeValidation, "malformed send_message payload"))
			return
		}
		g.HandleSendMessage(ctx, conn, p)
	case EventMarkRead:
		var p MarkReadPayload
		if err := json.Unmarshal(env.Data, &p); err != nil {
			g.sendError(conn, env.Event, errors.New(errors.ErrCodeValidation, "malformed mark_read payload"))
			return
		}
		g.HandleMarkRead(ctx, conn, p)
	default:
		g.sendError(conn, env.Event, errors.New(errors.ErrCodeValidation, "unknown event"))
	}
}

// HandleSendMessage persists the message, then delivers it to every
// connection of both the sender and the receiver. Nothing is delivered when
// persisting fails; the error goes to the originating connection only.
func (g *Gateway) HandleSendMessage(ctx context.Context, conn Conn, p SendMessagePayload) {
	senderID := conn.UserID()
	msg, err := g.messages.Send(ctx, senderID, p.ReceiverID, p.Content)
	if err != nil {
		logger.Warn("send_message rejected", "user_id", senderID, "receiver_id", p.ReceiverID, "error", err)
		g.sendError(conn, EventSendMessage, err)
		return
	}

	evt := Event{Event: EventNewMessage, Data: msg}
	g.deliver(evt, senderID, msg.ReceiverID)
}

// HandleMarkRead flags the message read and notifies its sender's connections.
// Failures are dropped silently.
func (g *Gateway) HandleMarkRead(ctx context.Context, conn Conn, p MarkReadPayload) {
	msg, err := g.messages.MarkRead(ctx, p.MessageID, conn.UserID())
	if err != nil {
		logger.Debug("mark_read ignored", "user_id", conn.UserID(), "message_id", p.MessageID, "error", err)
		return
	}
	g.deliver(Event{Event: EventMessageRead, Data: MessageReadPayload{MessageID: msg.ID}}, msg.SenderID)
}

// MarkConversationRead marks everything otherID sent to readerID as read and
// sends one message_read per message to otherID's connections.
func (g *Gateway) MarkConversationRead(ctx context.Context, readerID, otherID string) ([]string, error) {
	ids, err := g.messages.MarkConversationRead(ctx, readerID, otherID)
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		g.deliver(Event{Event: EventMessageRead, Data: MessageReadPayload{MessageID: id}}, otherID)
	}
	return ids, nil
}

// Presence reports the live state of userID.
func (g *Gateway) Presence(ctx context.Context, userID string) models.PresenceState {
	state := models.PresenceState{
		UserID:      userID,
		Status:      models.PresenceOffline,
		Connections: g.registry.ConnectionCount(userID),
	}
	if state.Connections > 0 {
		state.Status = models.PresenceOnline
		return state
	}

	if g.mirror != nil {
		// connected to another instance
		online, err := g.mirror.IsOnline(ctx, userID)
		if err != nil {
			logger.Warn("Failed to read presence from mirror", "user_id", userID, "error", err)
		}
		if online {
			state.Status = models.PresenceOnline
			return state
		}
	}

	if seen, ok := g.registry.LastSeen(userID); ok {
		state.LastSeen = &seen
		return state
	}
	if g.mirror != nil {
		seen, err := g.mirror.LastSeen(ctx, userID)
		if err != nil {
			logger.Warn("Failed to read last seen from mirror", "user_id", userID, "error", err)
		}
		state.LastSeen = seen
	}
	return state
}

// deliver sends evt to every live connection of the given users.
func (g *Gateway) deliver(evt Event, userIDs ...string) {
	seen := make(map[string]struct{}, len(userIDs))
	for _, id := range userIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		for _, c := range g.registry.ConnectionsFor(id) {
			if c.Send(evt) {
				monitoring.WSEventCounter.WithLabelValues(evt.Event, "out").Inc()
			}
		}
	}
}

func (g *Gateway) broadcastStatus(ctx context.Context, p UserStatusPayload) {
	var audience []string
	if g.scope == config.PresenceScopeRelated && g.audience != nil {
		related, err := g.audience.RelatedUsers(ctx, p.UserID)
		if err != nil {
			logger.Warn("Failed to resolve presence audience", "user_id", p.UserID, "error", err)
			return
		}
		audience = related
	} else {
		audience = g.registry.OnlineUsers()
	}

	targets := make([]string, 0, len(audience))
	for _, id := range audience {
		if id != p.UserID {
			targets = append(targets, id)
		}
	}
	g.deliver(Event{Event: EventUserStatus, Data: p}, targets...)
}

func (g *Gateway) sendError(conn Conn, event string, err error) {
	code := errors.CodeOf(err)
	message := errors.MessageOf(err, "internal error")
	if code == "" {
		code = errors.ErrCodeInternalError
	}
	if conn.Send(Event{Event: EventError, Data: ErrorPayload{Event: event, Code: code, Message: message}}) {
		monitoring.WSEventCounter.WithLabelValues(EventError, "out").Inc()
	}
}

func (g *Gateway) mirrorOnline(ctx context.Context, userID string) {
	if g.mirror == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), mirrorTimeout)
	defer cancel()
	if err := g.mirror.SetOnline(ctx, userID); err != nil {
		logger.Warn("Failed to mirror online status", "user_id", userID, "error", err)
	}
}

func (g *Gateway) mirrorOffline(ctx context.Context, userID string, lastSeen time.Time) {
	if g.mirror == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), mirrorTimeout)
	defer cancel()
	if err := g.mirror.SetOffline(ctx, userID, lastSeen); err != nil {
		logger.Warn("Failed to mirror offline status", "user_id", userID, "error", err)
	}
}
